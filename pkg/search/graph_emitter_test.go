package search

import (
	"strings"
	"testing"

	"github.com/graphcatalog/searchplanner/pkg/diagnostics"
	"github.com/graphcatalog/searchplanner/pkg/model"
	"github.com/graphcatalog/searchplanner/pkg/querybuilder"
)

// Scenario 2 (spec.md §8): root OR of one indexed and one non-indexed
// leaf disallows pushdown; the graph emitter receives the whole AST.
func TestEmitGraphQueryScenario2OrWithNonIndexedLeaf(t *testing.T) {
	filter := model.Group(model.CombinatorOR,
		model.Leaf("name", model.OpEQ, "foo"),
		model.Leaf("comment", model.OpContains, "bar"),
	)
	ctx := newFixtureContext("Table", filter)
	ctx.Classify()

	if ctx.PushdownSafe() {
		t.Fatalf("expected pushdown to be unsafe (comment is not indexed and sits under an OR)")
	}

	root := querybuilder.NewCypherBuilder(querybuilder.ProviderNeo4j, "n")
	result, err := EmitGraphQuery(ctx, root)
	if err != nil {
		t.Fatalf("EmitGraphQuery: %v", err)
	}

	text, params := result.Builder.Build()
	if !strings.Contains(text, " OR ") {
		t.Fatalf("expected an OR-joined clause, got %q", text)
	}
	if !strings.Contains(text, "n.Asset.name = $") {
		t.Errorf("missing name comparison in %q", text)
	}
	if !strings.Contains(text, "n.Asset.comment =~ $") {
		t.Errorf("missing comment regex predicate in %q", text)
	}

	var sawFoo, sawBarRegex bool
	for _, v := range params {
		if v == "foo" {
			sawFoo = true
		}
		if v == ".*bar.*" {
			sawBarRegex = true
		}
	}
	if !sawFoo || !sawBarRegex {
		t.Errorf("unexpected params: %v", params)
	}
}

// Scenario 5 (spec.md §8): IN operator reaching the graph emitter is
// unsupported; the leaf is diagnosed and dropped, and the resulting
// query omits the predicate entirely.
func TestEmitGraphQueryScenario5UnsupportedInOperator(t *testing.T) {
	filter := model.Leaf("comment", model.OpIN, `"a","b"`)
	collector := diagnostics.NewCollector(nil)
	ctx := newFixtureContextWithSink("Table", filter, collector)
	ctx.Classify()

	root := querybuilder.NewCypherBuilder(querybuilder.ProviderNeo4j, "n")
	result, err := EmitGraphQuery(ctx, root)
	if err != nil {
		t.Fatalf("EmitGraphQuery: %v", err)
	}

	text, _ := result.Builder.Build()
	if text != "" {
		t.Errorf("expected no predicate to be emitted, got %q", text)
	}

	entries := collector.Entries()
	if len(entries) != 1 || entries[0].Kind != diagnostics.KindUnsupportedOperator {
		t.Fatalf("expected exactly one unsupported-operator diagnostic, got %v", entries)
	}
}

func TestEmitGraphQuerySkipsIndexHandledLeavesWhenPushdownSafe(t *testing.T) {
	filter := model.Group(model.CombinatorAND,
		model.Leaf("name", model.OpEQ, "foo"),
		model.Leaf("comment", model.OpContains, "bar"),
	)
	ctx := newFixtureContext("Table", filter)
	ctx.Classify()

	if !ctx.PushdownSafe() {
		t.Fatalf("expected pushdown to be safe (non-indexed leaf is on an AND-only path)")
	}

	root := querybuilder.NewCypherBuilder(querybuilder.ProviderNeo4j, "n")
	result, err := EmitGraphQuery(ctx, root)
	if err != nil {
		t.Fatalf("EmitGraphQuery: %v", err)
	}

	text, _ := result.Builder.Build()
	if strings.Contains(text, "Asset.name") {
		t.Errorf("index-handled leaf should not appear in the graph query: %q", text)
	}
	if !strings.Contains(text, "Asset.comment") {
		t.Errorf("non-indexed leaf missing from the graph query: %q", text)
	}
}
