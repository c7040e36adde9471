package querybuilder

import (
	"fmt"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/graphcatalog/searchplanner/pkg/model"
)

// comparisonOperators maps the closed comparison operator set to
// Cypher infix operators. Property comparison syntax doesn't vary
// across the providers this module targets, unlike the fulltext CALL
// syntax the teacher's pkg/driver.GetNodesQuery switches on.
var comparisonOperators = map[model.Operator]string{
	model.OpLT:  "<",
	model.OpGT:  ">",
	model.OpLTE: "<=",
	model.OpGTE: ">=",
	model.OpEQ:  "=",
	model.OpNEQ: "<>",
	model.OpIN:  "IN",
}

// patternOperators maps the closed pattern operator set to Cypher
// pattern predicates.
var patternOperators = map[model.Operator]string{
	model.OpLIKE:       "=~",
	model.OpContains:   "CONTAINS",
	model.OpStartsWith: "STARTS WITH",
	model.OpEndsWith:   "ENDS WITH",
}

// CypherBuilder is a Builder that renders Cypher-family query text
// for the given Provider, grounded on the teacher's
// pkg/driver.QueryBuilder (a provider-scoped builder returning query
// text and parameters rather than executing anything).
type CypherBuilder struct {
	provider Provider
	alias    string

	clauses    []string
	params     map[string]any
	paramSeq   *int
}

// NewCypherBuilder creates a root CypherBuilder over node alias n for
// the given provider.
func NewCypherBuilder(provider Provider, alias string) *CypherBuilder {
	seq := 0
	return &CypherBuilder{
		provider: provider,
		alias:    alias,
		params:   make(map[string]any),
		paramSeq: &seq,
	}
}

func (b *CypherBuilder) nextParamName() string {
	*b.paramSeq++
	return fmt.Sprintf("p%d", *b.paramSeq)
}

// HasComparison implements Builder.
func (b *CypherBuilder) HasComparison(qn model.QualifiedAttribute, op model.Operator, value any) error {
	sym, ok := comparisonOperators[op]
	if !ok {
		return fmt.Errorf("querybuilder: %s is not a comparison operator", op)
	}

	name := b.nextParamName()
	b.params[name] = toCypherParam(value)
	b.clauses = append(b.clauses, fmt.Sprintf("%s.%s %s $%s", b.alias, qn.String(), sym, name))
	return nil
}

// HasPattern implements Builder.
func (b *CypherBuilder) HasPattern(qn model.QualifiedAttribute, op model.Operator, pattern string) error {
	sym, ok := patternOperators[op]
	if !ok {
		return fmt.Errorf("querybuilder: %s is not a pattern operator", op)
	}

	name := b.nextParamName()
	b.params[name] = pattern
	b.clauses = append(b.clauses, fmt.Sprintf("%s.%s %s $%s", b.alias, qn.String(), sym, name))
	return nil
}

// CreateChildQuery implements Builder. The child shares the parent's
// parameter sequence counter so parameter names stay unique once the
// child is folded back in via AddConditionsFrom or Or.
func (b *CypherBuilder) CreateChildQuery() Builder {
	return &CypherBuilder{
		provider: b.provider,
		alias:    b.alias,
		params:   make(map[string]any),
		paramSeq: b.paramSeq,
	}
}

// AddConditionsFrom implements Builder.
func (b *CypherBuilder) AddConditionsFrom(other Builder) {
	child, ok := other.(*CypherBuilder)
	if !ok || len(child.clauses) == 0 {
		return
	}
	b.clauses = append(b.clauses, child.joined("AND"))
	for k, v := range child.params {
		b.params[k] = v
	}
}

// Or implements Builder.
func (b *CypherBuilder) Or(children []Builder) {
	parts := make([]string, 0, len(children))
	for _, c := range children {
		child, ok := c.(*CypherBuilder)
		if !ok || len(child.clauses) == 0 {
			continue
		}
		parts = append(parts, child.joined("AND"))
		for k, v := range child.params {
			b.params[k] = v
		}
	}
	if len(parts) == 0 {
		return
	}
	b.clauses = append(b.clauses, "("+strings.Join(parts, " OR ")+")")
}

func (b *CypherBuilder) joined(sep string) string {
	if len(b.clauses) == 1 {
		return b.clauses[0]
	}
	return "(" + strings.Join(b.clauses, " "+sep+" ") + ")"
}

// Build implements Builder.
func (b *CypherBuilder) Build() (string, map[string]any) {
	if len(b.clauses) == 0 {
		return "", b.params
	}
	return b.joined("AND"), b.params
}

// toCypherParam adapts a schema.Port.Normalize result into a
// driver-typed parameter, using
// github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype so a date value
// binds as a native temporal type rather than a string the server
// must reparse, the same typing concern the teacher's
// pkg/driver/type_helpers.go isolates for values flowing the other
// direction (server to Go).
func toCypherParam(value any) any {
	t, ok := value.(time.Time)
	if !ok {
		return value
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return dbtype.Date(t)
	}
	return dbtype.LocalDateTime(t)
}
