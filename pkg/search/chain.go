package search

import (
	"context"

	"github.com/graphcatalog/searchplanner/pkg/querybuilder"
)

// VertexID identifies a candidate vertex. The core never owns vertex
// representation (spec.md §1's "vertex-to-DTO marshaling ... is out
// of scope"); it is an opaque string handle produced and consumed by
// the caller-supplied Execute/Filter callbacks.
type VertexID string

// Candidates is an ordered candidate vertex sequence, as produced by
// the index pass and narrowed by the graph pass.
type Candidates []VertexID

// Planner is a single stage of the Processor Chain (spec.md §4.6):
// Execute produces an initial candidate set, Filter narrows a
// supplied one. A stage with no successor is terminal.
type Planner interface {
	Execute(ctx context.Context) (Candidates, error)
	Filter(ctx context.Context, candidates Candidates) (Candidates, error)
}

// IndexSearchFunc is the external collaborator that actually runs an
// index query against the index engine. The core never executes
// queries itself (spec.md §1 Non-goal); a nil IndexSearchFunc makes
// the index-then-graph planner's Execute skip the index search and run
// its graph pass with no candidate restriction.
type IndexSearchFunc func(ctx context.Context, query IndexQueryResult, limit int) (Candidates, error)

// GraphFilterFunc is the external collaborator that runs a graph
// query builder program against the graph engine. candidates is nil
// when the graph pass should run unrestricted (a full scan, used by
// the graph-only planner's Execute and by index-then-graph when the
// index pass produced no callback result to restrict against).
type GraphFilterFunc func(ctx context.Context, query GraphQueryResult, candidates Candidates) (Candidates, error)

// Chain is an ordered pipeline of Planner stages (SPEC_FULL.md §9:
// the source's linked addProcessor recursion collapses to a push
// onto this slice).
type Chain struct {
	stages []Planner
}

// NewChain builds a Chain from stages in execution order.
func NewChain(stages ...Planner) *Chain {
	return &Chain{stages: stages}
}

// Run executes the head stage, then threads its result through every
// subsequent stage's Filter. Empty input to a Filter call short-circuits
// the remainder of the chain (spec.md §4.6).
func (c *Chain) Run(ctx context.Context) (Candidates, error) {
	if len(c.stages) == 0 {
		return nil, nil
	}

	candidates, err := c.stages[0].Execute(ctx)
	if err != nil {
		return nil, err
	}

	for _, stage := range c.stages[1:] {
		if len(candidates) == 0 {
			break
		}
		candidates, err = stage.Filter(ctx, candidates)
		if err != nil {
			return nil, err
		}
	}
	return candidates, nil
}

// indexThenGraphPlanner is the chain shape used when
// ctx.PushdownSafe() is true: Execute runs the index pass and narrows a
// non-empty result through the graph pass; Filter narrows a supplied
// candidate set via the graph pass alone.
type indexThenGraphPlanner struct {
	ctx         *SearchContext
	builder     querybuilder.Query
	indexSearch IndexSearchFunc
	graphFilter GraphFilterFunc
}

// NewIndexThenGraphPlanner builds the planner named in SPEC_FULL.md
// §4.6.1 for the case where the Pushdown Analyzer allows a split.
// builder is a fresh, empty querybuilder.Query the graph pass will
// populate on Filter.
func NewIndexThenGraphPlanner(ctx *SearchContext, builder querybuilder.Query, indexSearch IndexSearchFunc, graphFilter GraphFilterFunc) Planner {
	return &indexThenGraphPlanner{ctx: ctx, builder: builder, indexSearch: indexSearch, graphFilter: graphFilter}
}

func (p *indexThenGraphPlanner) Execute(ctx context.Context) (Candidates, error) {
	result, err := EmitIndexQuery(p.ctx)
	if err != nil {
		return nil, err
	}
	if p.indexSearch == nil {
		return p.Filter(ctx, nil)
	}
	candidates, err := p.indexSearch(ctx, result, p.ctx.Limits.MaxResultSize)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return candidates, nil
	}
	return p.Filter(ctx, candidates)
}

func (p *indexThenGraphPlanner) Filter(ctx context.Context, candidates Candidates) (Candidates, error) {
	result, err := EmitGraphQuery(p.ctx, p.builder)
	if err != nil {
		return nil, err
	}
	if p.graphFilter == nil {
		return candidates, nil
	}
	return p.graphFilter(ctx, result, candidates)
}

// graphOnlyPlanner is the chain shape used when ctx.PushdownSafe() is
// false: the index pass is skipped entirely and the full AST goes to
// the graph pass.
type graphOnlyPlanner struct {
	ctx         *SearchContext
	builder     querybuilder.Query
	graphFilter GraphFilterFunc
}

// NewGraphOnlyPlanner builds the planner named in SPEC_FULL.md §4.6.1
// for the case where the Pushdown Analyzer disallows a split.
func NewGraphOnlyPlanner(ctx *SearchContext, builder querybuilder.Query, graphFilter GraphFilterFunc) Planner {
	return &graphOnlyPlanner{ctx: ctx, builder: builder, graphFilter: graphFilter}
}

func (p *graphOnlyPlanner) Execute(ctx context.Context) (Candidates, error) {
	return p.evaluate(ctx, nil)
}

func (p *graphOnlyPlanner) Filter(ctx context.Context, candidates Candidates) (Candidates, error) {
	return p.evaluate(ctx, candidates)
}

func (p *graphOnlyPlanner) evaluate(ctx context.Context, candidates Candidates) (Candidates, error) {
	result, err := EmitGraphQuery(p.ctx, p.builder)
	if err != nil {
		return nil, err
	}
	if p.graphFilter == nil {
		return candidates, nil
	}
	return p.graphFilter(ctx, result, candidates)
}

// classificationOnlyPlanner runs only the Attribute Classifier, for
// callers that need entityAttributes/indexFiltered/graphFiltered
// without emitting a query (e.g. a facet-count precompute step).
type classificationOnlyPlanner struct {
	ctx *SearchContext
}

// NewClassificationOnlyPlanner builds the planner named in
// SPEC_FULL.md §4.6.1.
func NewClassificationOnlyPlanner(ctx *SearchContext) Planner {
	return &classificationOnlyPlanner{ctx: ctx}
}

func (p *classificationOnlyPlanner) Execute(_ context.Context) (Candidates, error) {
	p.ctx.Classify()
	return nil, nil
}

func (p *classificationOnlyPlanner) Filter(_ context.Context, candidates Candidates) (Candidates, error) {
	p.ctx.Classify()
	return candidates, nil
}
