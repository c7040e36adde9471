package search

import (
	"context"
	"testing"

	"github.com/graphcatalog/searchplanner/pkg/model"
	"github.com/graphcatalog/searchplanner/pkg/querybuilder"
)

func TestChainIndexThenGraphPassesResultsThroughFilter(t *testing.T) {
	filter := model.Group(model.CombinatorAND,
		model.Leaf("name", model.OpEQ, "foo"),
		model.Leaf("comment", model.OpContains, "bar"),
	)
	ctx := newFixtureContext("Table", filter)

	root := querybuilder.NewCypherBuilder(querybuilder.ProviderNeo4j, "n")

	var sawIndexQuery, sawGraphQuery bool
	indexSearch := func(_ context.Context, q IndexQueryResult, limit int) (Candidates, error) {
		sawIndexQuery = q.Query != ""
		if limit != ctx.Limits.MaxResultSize {
			t.Errorf("expected limit %d, got %d", ctx.Limits.MaxResultSize, limit)
		}
		return Candidates{"v1", "v2"}, nil
	}
	graphFilter := func(_ context.Context, q GraphQueryResult, candidates Candidates) (Candidates, error) {
		text, _ := q.Builder.Build()
		sawGraphQuery = text != ""
		if len(candidates) != 2 {
			t.Errorf("expected 2 incoming candidates, got %d", len(candidates))
		}
		return candidates[:1], nil
	}

	planner := NewIndexThenGraphPlanner(ctx, root, indexSearch, graphFilter)
	chain := NewChain(planner)

	result, err := chain.Run(context.Background())
	if err != nil {
		t.Fatalf("chain.Run: %v", err)
	}
	if len(result) != 1 || result[0] != "v1" {
		t.Errorf("unexpected result: %v", result)
	}
	if !sawIndexQuery || !sawGraphQuery {
		t.Errorf("expected both index and graph callbacks to observe non-empty queries")
	}
}

func TestChainShortCircuitsOnEmptyIndexResult(t *testing.T) {
	filter := model.Leaf("name", model.OpEQ, "foo")
	ctx := newFixtureContext("Table", filter)
	root := querybuilder.NewCypherBuilder(querybuilder.ProviderNeo4j, "n")

	filterCalled := false
	indexSearch := func(context.Context, IndexQueryResult, int) (Candidates, error) {
		return nil, nil
	}
	graphFilter := func(context.Context, GraphQueryResult, Candidates) (Candidates, error) {
		filterCalled = true
		return nil, nil
	}

	chain := NewChain(NewIndexThenGraphPlanner(ctx, root, indexSearch, graphFilter))
	result, err := chain.Run(context.Background())
	if err != nil {
		t.Fatalf("chain.Run: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("expected an empty result, got %v", result)
	}
	if filterCalled {
		t.Errorf("expected the graph filter stage to be short-circuited on empty index results")
	}
}

func TestGraphOnlyPlannerEvaluatesFullAstOnExecute(t *testing.T) {
	filter := model.Group(model.CombinatorOR,
		model.Leaf("name", model.OpEQ, "foo"),
		model.Leaf("comment", model.OpContains, "bar"),
	)
	ctx := newFixtureContext("Table", filter)
	ctx.Classify()
	if ctx.PushdownSafe() {
		t.Fatalf("expected pushdown to be unsafe")
	}

	root := querybuilder.NewCypherBuilder(querybuilder.ProviderNeo4j, "n")
	var sawFullScan bool
	graphFilter := func(_ context.Context, q GraphQueryResult, candidates Candidates) (Candidates, error) {
		sawFullScan = candidates == nil
		return Candidates{"v1"}, nil
	}

	planner := NewGraphOnlyPlanner(ctx, root, graphFilter)
	result, err := planner.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !sawFullScan {
		t.Errorf("expected Execute to invoke the graph filter with a nil (unrestricted) candidate set")
	}
	if len(result) != 1 {
		t.Errorf("unexpected result: %v", result)
	}
}

func TestClassificationOnlyPlannerPopulatesContextWithoutCandidates(t *testing.T) {
	filter := model.Leaf("name", model.OpEQ, "foo")
	ctx := newFixtureContext("Table", filter)

	planner := NewClassificationOnlyPlanner(ctx)
	result, err := planner.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result != nil {
		t.Errorf("expected no candidates from a classification-only planner, got %v", result)
	}
	if len(ctx.IndexFiltered) != 1 {
		t.Errorf("expected Classify to have run and populated IndexFiltered, got %v", ctx.IndexFiltered)
	}
}
