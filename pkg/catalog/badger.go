package catalog

import (
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/graphcatalog/searchplanner/pkg/model"
)

// indexedValue is stored for every key present in the Badger catalog;
// its content doesn't matter, only key presence does.
var indexedValue = []byte{1}

// BadgerIndexCatalog is a Port backed by an embedded github.com/dgraph-io/badger/v4
// store, for deployments that persist the index inventory snapshot
// across restarts instead of reloading it from the schema service
// every time.
type BadgerIndexCatalog struct {
	db *badger.DB
}

// OpenBadgerIndexCatalog opens (creating if necessary) a Badger store
// at dir to back an index catalog.
func OpenBadgerIndexCatalog(dir string) (*BadgerIndexCatalog, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerIndexCatalog{db: db}, nil
}

// Close releases the underlying Badger store.
func (c *BadgerIndexCatalog) Close() error {
	return c.db.Close()
}

// IsIndexed implements Port.
func (c *BadgerIndexCatalog) IsIndexed(qn model.QualifiedAttribute) bool {
	found := false
	_ = c.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(qn))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		found = true
		return nil
	})
	return found
}

// SnapshotKeys implements Port.
func (c *BadgerIndexCatalog) SnapshotKeys() []model.QualifiedAttribute {
	var keys []model.QualifiedAttribute
	_ = c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			keys = append(keys, model.QualifiedAttribute(item.KeyCopy(nil)))
		}
		return nil
	})
	return keys
}

// LoadSnapshot replaces the catalog contents with exactly qns,
// dropping any key not present in the new snapshot. Intended to be
// called after the schema service reports a fresh index inventory.
func (c *BadgerIndexCatalog) LoadSnapshot(qns []model.QualifiedAttribute) error {
	return c.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		var stale [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		for _, qn := range qns {
			if err := txn.Set([]byte(qn), indexedValue); err != nil {
				return err
			}
		}
		return nil
	})
}
