package model

import "strings"

// indexReplacer escapes characters reserved by the index engine's
// Lucene-like query syntax before a value is substituted into a
// template. Defined at package level to avoid rebuilding the replacer
// on every call, mirroring the teacher's package-level luceneReplacer
// in pkg/driver/graph_queries.go.
var indexReplacer = strings.NewReplacer(
	`"`, `\"`,
	`\`, `\\`,
	`+`, `\+`,
	`-`, `\-`,
	`!`, `\!`,
	`(`, `\(`,
	`)`, `\)`,
	`{`, `\{`,
	`}`, `\}`,
	`[`, `\[`,
	`]`, `\]`,
	`^`, `\^`,
	`~`, `\~`,
	`*`, `\*`,
	`?`, `\?`,
	`:`, `\:`,
	`|`, `\|`,
	`&`, `\&`,
)

// EscapeIndexQueryValue runs a raw leaf value through the fixed
// index-query escape routine required by spec.md §4.3 before it is
// substituted into an operator template.
func EscapeIndexQueryValue(value string) string {
	return indexReplacer.Replace(value)
}
