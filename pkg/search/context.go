// Package search implements the hybrid catalog search planner: the
// Attribute Classifier, Pushdown Analyzer, Index/Graph/Gremlin
// emitters, and the Processor Chain that composes them into a plan.
package search

import (
	"github.com/graphcatalog/searchplanner/pkg/catalog"
	"github.com/graphcatalog/searchplanner/pkg/config"
	"github.com/graphcatalog/searchplanner/pkg/diagnostics"
	"github.com/graphcatalog/searchplanner/pkg/model"
	"github.com/graphcatalog/searchplanner/pkg/schema"
)

// SearchContext is the planning session: constructed once per
// request from a root type, filter AST, and the schema/catalog
// snapshots, then mutated only by Classify. It is not safe to share
// across concurrent requests (spec.md §5).
type SearchContext struct {
	RootType string
	Filter   model.FilterNode

	Schema  schema.Port
	Catalog catalog.Port
	Limits  config.LimitsConfig

	Diagnostics diagnostics.Sink

	// IndexFiltered, GraphFiltered, EntityAttributes, and AllAttributes
	// are populated by Classify in first-reference order.
	IndexFiltered    []model.QualifiedAttribute
	GraphFiltered    []model.QualifiedAttribute
	EntityAttributes []model.QualifiedAttribute
	AllAttributes    []model.QualifiedAttribute

	indexSet  map[model.QualifiedAttribute]struct{}
	graphSet  map[model.QualifiedAttribute]struct{}
	entitySet map[model.QualifiedAttribute]struct{}
	allSet    map[model.QualifiedAttribute]struct{}

	// qualified caches attributeName -> qualified name for leaves that
	// resolved successfully, so emitters don't re-invoke the Schema
	// Port for every render pass.
	qualified map[string]model.QualifiedAttribute

	classified   bool
	pushdownSafe bool
}

// NewSearchContext constructs a SearchContext. sink may be nil, in
// which case diagnostics are discarded.
func NewSearchContext(rootType string, filter model.FilterNode, schemaPort schema.Port, catalogPort catalog.Port, limits config.LimitsConfig, sink diagnostics.Sink) *SearchContext {
	if sink == nil {
		sink = diagnostics.NopSink{}
	}
	return &SearchContext{
		RootType:    rootType,
		Filter:      filter,
		Schema:      schemaPort,
		Catalog:     catalogPort,
		Limits:      limits,
		Diagnostics: sink,

		indexSet:  make(map[model.QualifiedAttribute]struct{}),
		graphSet:  make(map[model.QualifiedAttribute]struct{}),
		entitySet: make(map[model.QualifiedAttribute]struct{}),
		allSet:    make(map[model.QualifiedAttribute]struct{}),
		qualified: make(map[string]model.QualifiedAttribute),

		pushdownSafe: true,
	}
}

// Classify runs the Attribute Classifier and Pushdown Analyzer as a
// single visitor pass (SPEC_FULL.md §9): it populates the four
// attribute sets and determines whether the AST may be split between
// the index and graph passes. Idempotent: calling it more than once
// is a no-op after the first call.
func (c *SearchContext) Classify() {
	if c.classified {
		return
	}
	c.classified = true

	isEntity := c.Schema.IsEntityType(c.RootType)
	c.walk(&c.Filter, false, isEntity)
}

// PushdownSafe reports whether the AST may be split into an index
// pass plus a graph pass. Only meaningful after Classify has run.
func (c *SearchContext) PushdownSafe() bool {
	return c.pushdownSafe
}

// IsIndexFiltered reports whether qn was classified as index-eligible.
func (c *SearchContext) IsIndexFiltered(qn model.QualifiedAttribute) bool {
	_, ok := c.indexSet[qn]
	return ok
}

// IsGraphFiltered reports whether qn was classified as graph-only.
func (c *SearchContext) IsGraphFiltered(qn model.QualifiedAttribute) bool {
	_, ok := c.graphSet[qn]
	return ok
}

// QualifiedNameOf returns the qualified name resolved for attrName
// during Classify, if resolution succeeded.
func (c *SearchContext) QualifiedNameOf(attrName string) (model.QualifiedAttribute, bool) {
	qn, ok := c.qualified[attrName]
	return qn, ok
}

func (c *SearchContext) walk(node *model.FilterNode, insideOr bool, isEntity bool) {
	if node.IsGroup() {
		childInsideOr := insideOr || node.Combinator == model.CombinatorOR
		for i := range node.Children {
			c.walk(&node.Children[i], childInsideOr, isEntity)
		}
		return
	}
	if !node.IsLeaf() {
		return // empty node, contributes nothing
	}

	qn, err := c.Schema.Qualify(c.RootType, node.AttributeName)
	if err != nil {
		c.Diagnostics.Record(diagnostics.Diagnostic{
			Kind:      diagnostics.KindSchemaResolution,
			Emitter:   "classifier",
			Attribute: node.AttributeName,
			Message:   (&SchemaResolutionError{AttributeName: node.AttributeName}).Error(),
		})
		return
	}

	c.qualified[node.AttributeName] = qn
	c.addTo(c.allSet, &c.AllAttributes, qn)
	if isEntity {
		c.addTo(c.entitySet, &c.EntityAttributes, qn)
	}

	if c.Catalog.IsIndexed(qn) {
		c.addTo(c.indexSet, &c.IndexFiltered, qn)
		return
	}

	c.addTo(c.graphSet, &c.GraphFiltered, qn)
	if insideOr {
		c.pushdownSafe = false
	}
}

func (c *SearchContext) addTo(set map[model.QualifiedAttribute]struct{}, order *[]model.QualifiedAttribute, qn model.QualifiedAttribute) {
	if _, ok := set[qn]; ok {
		return
	}
	set[qn] = struct{}{}
	*order = append(*order, qn)
}
