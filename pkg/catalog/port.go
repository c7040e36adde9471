// Package catalog implements the Index Catalog Port: the boundary the
// planner uses to decide whether a qualified attribute has a backing
// index, without owning how that index inventory is stored or
// refreshed.
package catalog

import "github.com/graphcatalog/searchplanner/pkg/model"

// Port answers whether a qualified attribute is covered by an index,
// per spec.md §4.2. Implementations may back this with an in-memory
// set, a database, or a cached snapshot.
type Port interface {
	// IsIndexed reports whether qn has a backing index the index
	// engine can filter on.
	IsIndexed(qn model.QualifiedAttribute) bool

	// SnapshotKeys returns every qualified attribute name currently
	// known to be indexed. Used by tests asserting catalog contents
	// rather than individual lookups.
	SnapshotKeys() []model.QualifiedAttribute
}
