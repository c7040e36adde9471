package catalog

import (
	"sort"
	"sync"

	"github.com/graphcatalog/searchplanner/pkg/model"
)

// InMemory is a Port backed by a plain set, suitable for tests and for
// deployments that reload the full index inventory into memory on
// startup.
type InMemory struct {
	mu      sync.RWMutex
	indexed map[model.QualifiedAttribute]struct{}
}

// NewInMemory creates an InMemory catalog seeded with the given
// qualified attribute names.
func NewInMemory(indexed ...model.QualifiedAttribute) *InMemory {
	c := &InMemory{indexed: make(map[model.QualifiedAttribute]struct{}, len(indexed))}
	for _, qn := range indexed {
		c.indexed[qn] = struct{}{}
	}
	return c
}

// IsIndexed implements Port.
func (c *InMemory) IsIndexed(qn model.QualifiedAttribute) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.indexed[qn]
	return ok
}

// SnapshotKeys implements Port.
func (c *InMemory) SnapshotKeys() []model.QualifiedAttribute {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]model.QualifiedAttribute, 0, len(c.indexed))
	for qn := range c.indexed {
		keys = append(keys, qn)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Add marks qn as indexed. Used by callers that build up the catalog
// incrementally (e.g. from a schema migration event).
func (c *InMemory) Add(qn model.QualifiedAttribute) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.indexed[qn] = struct{}{}
}

// Remove marks qn as no longer indexed.
func (c *InMemory) Remove(qn model.QualifiedAttribute) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.indexed, qn)
}
