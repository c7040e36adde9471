package search

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/graphcatalog/searchplanner/pkg/model"
)

// SchemaResolutionError records that a leaf's attribute name could
// not be qualified against the root type. It is never returned to the
// caller; it is recorded as a diagnostics.Diagnostic and the leaf is
// dropped, per the recoverable policy for per-leaf data errors.
type SchemaResolutionError struct {
	AttributeName string
}

func (e *SchemaResolutionError) Error() string {
	return fmt.Sprintf("search: cannot resolve attribute %q against the root type", e.AttributeName)
}

// UnsupportedOperatorError records that an operator is not valid for
// the emitter that encountered it (e.g. IN in the graph emitter).
// Like SchemaResolutionError, this is recovered locally: the leaf is
// dropped and a diagnostic recorded, never returned to the caller.
type UnsupportedOperatorError struct {
	Operator model.Operator
	Emitter  string
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("search: operator %s is not supported by the %s emitter", e.Operator, e.Emitter)
}

// MalformedEmissionError is returned from the index emitter when the
// assembled query text matches one of MalformedEmissionPatterns. This
// is a structural failure and fails the whole plan.
type MalformedEmissionError struct {
	Pattern string
	Query   string
}

func (e *MalformedEmissionError) Error() string {
	return fmt.Sprintf("search: emitted index query matches stray-connector pattern %s: %q", e.Pattern, e.Query)
}

// LimitsExceededError is returned when a type or tag clause exceeds
// its configured maximum length. Fails the whole plan.
type LimitsExceededError struct {
	Clause string
	Length int
	Max    int
}

func (e *LimitsExceededError) Error() string {
	return fmt.Sprintf("search: %s clause length %d exceeds configured maximum %d", e.Clause, e.Length, e.Max)
}

// ErrLeadingNeqInNestedExpression's message is carried as the Pattern of
// the MalformedEmissionError returned (not wrapped, so errors.Is does not
// match it) when a NEQ leaf is the first rendered child of a nested (non-root)
// group, a case original_source's SearchProcessor leaves as an open
// TODO because the index engine's parser mishandles it. Spec.md
// conservatively requires a diagnostic rather than a rewrite.
var ErrLeadingNeqInNestedExpression = errors.New("search: NEQ leaf at the start of a nested expression is not representable in the index query language")

// MalformedEmissionPatterns are the stray-connector regexes carried
// over from original_source's STRAY_AND_PATTERN / STRAY_OR_PATTERN /
// STRAY_ELIPSIS_PATTERN. The emitter's join-only-nonempty logic
// should make these unreachable (design note in SPEC_FULL.md §9), but
// the post-emission check in EmitIndexQuery runs them for real, and
// tests assert against them directly per spec.md §8.
var MalformedEmissionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(AND\s+)+\)`),
	regexp.MustCompile(`(OR\s+)+\)`),
	regexp.MustCompile(`(\(\s*)\)`),
}
