package search

import (
	"github.com/graphcatalog/searchplanner/pkg/model"
	"github.com/graphcatalog/searchplanner/pkg/querybuilder"
)

// GraphQueryResult is the artifact produced by EmitGraphQuery: an
// opaque builder program (spec.md §6), never executed by this
// package.
type GraphQueryResult struct {
	Builder querybuilder.Query
}

// EmitGraphQuery renders ctx.Filter into root via the Graph Query
// Builder Port (spec.md §4.4). When ctx.PushdownSafe() is true, only
// leaves in ctx.GraphFiltered are rendered (index-eligible leaves were
// already handled by the index pass); otherwise the entire AST is
// rendered, since the pushdown analyzer disallowed the split.
//
// LIKE semantics: LIKE is treated as a regex fragment wrapped in
// ".*", identical to CONTAINS (SPEC_FULL.md §9 Open Question #2) —
// this mirrors original_source's getLikeRegex/getContainsRegex, which
// are byte-identical, rather than SQL LIKE wildcard semantics.
func EmitGraphQuery(ctx *SearchContext, root querybuilder.Query) (GraphQueryResult, error) {
	ctx.Classify()

	graphAttrs := graphAttributeSet(ctx)
	if err := emitGraphGroup(ctx, &ctx.Filter, root, graphAttrs); err != nil {
		return GraphQueryResult{}, err
	}
	return GraphQueryResult{Builder: root}, nil
}

func graphAttributeSet(ctx *SearchContext) map[model.QualifiedAttribute]struct{} {
	set := make(map[model.QualifiedAttribute]struct{})
	if ctx.PushdownSafe() {
		for _, qn := range ctx.GraphFiltered {
			set[qn] = struct{}{}
		}
		return set
	}
	for _, qn := range ctx.AllAttributes {
		set[qn] = struct{}{}
	}
	return set
}

func emitGraphGroup(ctx *SearchContext, node *model.FilterNode, builder querybuilder.Query, graphAttrs map[model.QualifiedAttribute]struct{}) error {
	if node.IsLeaf() {
		return emitGraphLeaf(ctx, node, builder, graphAttrs)
	}
	if !node.IsGroup() {
		return nil
	}

	switch node.Combinator {
	case model.CombinatorAND:
		for i := range node.Children {
			child := builder.CreateChildQuery()
			if err := emitGraphGroup(ctx, &node.Children[i], child, graphAttrs); err != nil {
				return err
			}
			builder.AddConditionsFrom(child)
		}
	case model.CombinatorOR:
		children := make([]querybuilder.Builder, 0, len(node.Children))
		for i := range node.Children {
			child := builder.CreateChildQuery()
			if err := emitGraphGroup(ctx, &node.Children[i], child, graphAttrs); err != nil {
				return err
			}
			children = append(children, child)
		}
		builder.Or(children)
	}
	return nil
}

func emitGraphLeaf(ctx *SearchContext, node *model.FilterNode, builder querybuilder.Query, graphAttrs map[model.QualifiedAttribute]struct{}) error {
	qn, ok := ctx.QualifiedNameOf(node.AttributeName)
	if !ok {
		return nil // already diagnosed by the classifier
	}
	if _, ok := graphAttrs[qn]; !ok {
		return nil // handled by the index pass
	}

	switch node.Operator {
	case model.OpLT, model.OpGT, model.OpLTE, model.OpGTE, model.OpEQ, model.OpNEQ:
		return builder.HasComparison(qn, node.Operator, node.Value)

	case model.OpLIKE, model.OpContains:
		return builder.HasPattern(qn, model.OpLIKE, ".*"+node.Value+".*")

	case model.OpEndsWith:
		return builder.HasPattern(qn, model.OpLIKE, ".*"+node.Value)

	case model.OpStartsWith:
		return builder.HasPattern(qn, model.OpStartsWith, node.Value)

	case model.OpIN:
		ctx.Diagnostics.Record(unsupportedOperatorDiagnostic("graph", node))
		return nil

	default:
		return nil
	}
}
