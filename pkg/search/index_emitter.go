package search

import (
	"fmt"
	"strings"

	"github.com/graphcatalog/searchplanner/pkg/diagnostics"
	"github.com/graphcatalog/searchplanner/pkg/model"
)

// typeNamePropertyKey and statePropertyKey name Atlas's
// Constants.TYPE_NAME_PROPERTY_KEY / STATE_PROPERTY_KEY (SPEC_FULL.md
// §4.3.1), kept as the literal index property names the type and
// state clauses are built against.
const (
	typeNamePropertyKey = "__typeName"
	statePropertyKey    = "__state"
)

// indexTemplates is the fixed operator->template table from spec.md
// §4.3, kept as data rather than a switch per SPEC_FULL.md §9's
// design note. qn is substituted first, the escaped value second.
var indexTemplates = map[model.Operator]string{
	model.OpLT:         `v."%s": [* TO %s}`,
	model.OpGT:         `v."%s": {%s TO *]`,
	model.OpLTE:        `v."%s": [* TO %s]`,
	model.OpGTE:        `v."%s": [%s TO *]`,
	model.OpEQ:         `v."%s": %s`,
	model.OpNEQ:        `-v."%s": %s`,
	model.OpIN:         `v."%s": (%s)`,
	model.OpLIKE:       `v."%s": (%s)`,
	model.OpStartsWith: `v."%s": (%s*)`,
	model.OpEndsWith:   `v."%s": (*%s)`,
	model.OpContains:   `v."%s": (*%s*)`,
}

// IndexQueryResult is the artifact produced by EmitIndexQuery.
type IndexQueryResult struct {
	Query string
}

// EmitIndexQuery renders the index-eligible projection of ctx.Filter
// (spec.md §4.3), preceded by the type and state clauses
// (SPEC_FULL.md §4.3.1). It runs ctx.Classify if that has not run yet;
// it does not check ctx.PushdownSafe(), so callers confirm that first.
func EmitIndexQuery(ctx *SearchContext) (IndexQueryResult, error) {
	ctx.Classify()

	var clauses []string

	typeClause := constructTypeClause(ctx.Schema.SubtypeClosure(ctx.RootType))
	if typeClause != "" {
		limit := ctx.Limits.MaxQueryStrLengthTypes
		if !ctx.Schema.IsEntityType(ctx.RootType) {
			limit = ctx.Limits.MaxQueryStrLengthTags
		}
		if limit > 0 && len(typeClause) > limit {
			return IndexQueryResult{}, &LimitsExceededError{Clause: "type", Length: len(typeClause), Max: limit}
		}
		clauses = append(clauses, typeClause)
	}

	clauses = append(clauses, constructStateClause())

	filterClause, err := emitIndexGroup(ctx, &ctx.Filter, true)
	if err != nil {
		return IndexQueryResult{}, err
	}
	if filterClause != "" {
		clauses = append(clauses, filterClause)
	}

	query := strings.Join(clauses, " AND ")

	for _, pattern := range MalformedEmissionPatterns {
		if loc := pattern.FindString(query); loc != "" {
			return IndexQueryResult{}, &MalformedEmissionError{Pattern: pattern.String(), Query: query}
		}
	}

	return IndexQueryResult{Query: query}, nil
}

func constructTypeClause(subtypeClosureQryStr string) string {
	if subtypeClosureQryStr == "" {
		return ""
	}
	return fmt.Sprintf(`v."%s":%s`, typeNamePropertyKey, subtypeClosureQryStr)
}

func constructStateClause() string {
	return fmt.Sprintf(`v."%s":ACTIVE`, statePropertyKey)
}

// emitIndexGroup renders node (Leaf or Group) into index query text.
// isRoot controls whether a Group is wrapped in parentheses (root
// groups are not, per spec.md §4.3).
func emitIndexGroup(ctx *SearchContext, node *model.FilterNode, isRoot bool) (string, error) {
	if node.IsLeaf() {
		return emitIndexLeaf(ctx, node)
	}
	if !node.IsGroup() {
		return "", nil
	}

	var rendered []string
	for i := range node.Children {
		child, err := emitIndexGroup(ctx, &node.Children[i], false)
		if err != nil {
			return "", err
		}
		if child == "" {
			continue
		}
		rendered = append(rendered, child)
	}
	if len(rendered) == 0 {
		return "", nil
	}

	if !isRoot && rendered[0][0] == '-' {
		ctx.Diagnostics.Record(diagnostics.Diagnostic{
			Kind:    diagnostics.KindDroppedLeaf,
			Emitter: "index",
			Message: ErrLeadingNeqInNestedExpression.Error(),
		})
		return "", &MalformedEmissionError{Pattern: ErrLeadingNeqInNestedExpression.Error(), Query: rendered[0]}
	}

	joined := strings.Join(rendered, " "+string(node.Combinator)+" ")
	if isRoot {
		return joined, nil
	}
	return "(" + joined + ")", nil
}

func emitIndexLeaf(ctx *SearchContext, node *model.FilterNode) (string, error) {
	qn, ok := ctx.QualifiedNameOf(node.AttributeName)
	if !ok || !ctx.IsIndexFiltered(qn) {
		return "", nil
	}

	tmpl, ok := indexTemplates[node.Operator]
	if !ok {
		ctx.Diagnostics.Record(unsupportedOperatorDiagnostic("index", node))
		return "", nil
	}

	escaped := model.EscapeIndexQueryValue(node.Value)
	return fmt.Sprintf(tmpl, qn.String(), escaped), nil
}
