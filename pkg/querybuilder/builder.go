package querybuilder

import "github.com/graphcatalog/searchplanner/pkg/model"

// Builder is the Graph Query Builder Port. The graph emitter
// (pkg/search) accumulates predicates against it without
// knowing which concrete query language ends up rendered; spec.md
// §4.4 names this boundary so the planner never needs a graph driver
// dependency to build a plan.
type Builder interface {
	// HasComparison adds a value-comparison predicate (LT, GT, LTE,
	// GTE, EQ, NEQ, IN) on qn.
	HasComparison(qn model.QualifiedAttribute, op model.Operator, value any) error

	// HasPattern adds a text-pattern predicate (LIKE, CONTAINS,
	// STARTS_WITH, ENDS_WITH) on qn.
	HasPattern(qn model.QualifiedAttribute, op model.Operator, pattern string) error

	// CreateChildQuery returns a fresh Builder of the same concrete
	// type and provider, for constructing a nested OR branch.
	CreateChildQuery() Builder

	// AddConditionsFrom folds other's accumulated predicates into the
	// receiver as an AND-joined group.
	AddConditionsFrom(other Builder)

	// Or folds children as an OR-joined group into the receiver.
	Or(children []Builder)

	// Build renders the accumulated predicates to query text and its
	// parameter bindings. Build does not execute anything.
	Build() (text string, params map[string]any)
}

// Query is the Graph Query Builder Port's own program type, opaque to
// pkg/search (spec.md's abstraction boundary): the graph emitter
// mutates one through the Builder interface without depending on the
// concrete rendering behind it.
type Query = Builder

