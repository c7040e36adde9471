// Package querybuilder implements the Graph Query Builder Port
// (spec.md §4.4): an interface the graph emitter uses to accumulate
// predicates without committing to a single query language, plus a
// concrete Cypher-family renderer that accepts more than one provider.
// Grounded on the teacher's pkg/driver, which switches query text by
// GraphProvider throughout graph_queries.go.
package querybuilder

// Provider names the Cypher-family target a CypherBuilder is created
// for, mirroring the teacher's driver.GraphProvider constants (minus
// FalkorDB, which spec.md's underlying graph model doesn't target).
// CypherBuilder records it but renders the same text and parameter
// types for every provider.
type Provider string

const (
	ProviderNeo4j    Provider = "neo4j"
	ProviderLadybug  Provider = "ladybug"
	ProviderMemgraph Provider = "memgraph"
)

// Valid reports whether p is a known provider.
func (p Provider) Valid() bool {
	switch p {
	case ProviderNeo4j, ProviderLadybug, ProviderMemgraph:
		return true
	default:
		return false
	}
}
