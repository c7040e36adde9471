// Package diagnostics implements the side channel spec.md §5/§7 call
// for: per-leaf data errors (unresolved attributes, unsupported
// operators) are recorded here and logged, never surfaced as a
// planning failure.
package diagnostics

import (
	"log/slog"
)

// Kind classifies a recorded Diagnostic.
type Kind string

const (
	KindSchemaResolution    Kind = "schema_resolution"
	KindUnsupportedOperator Kind = "unsupported_operator"
	KindDroppedLeaf         Kind = "dropped_leaf"
)

// Diagnostic is a single recoverable-error event raised while planning
// a filter AST.
type Diagnostic struct {
	Kind      Kind
	Emitter   string // "index", "graph", "gremlin", "classifier"
	Attribute string
	Message   string
}

// Sink receives Diagnostic events as they are raised. Implementations
// must not block the caller for long — planning is CPU-bound and
// short (spec.md §5).
type Sink interface {
	Record(d Diagnostic)
}

// Collector is the default Sink: it logs each diagnostic through a
// structured logger and retains an in-memory slice a caller can
// inspect after planning completes (e.g. to surface a warning banner
// in a UI without changing plan output, per spec.md §5's "does not
// affect plan output").
type Collector struct {
	log     *slog.Logger
	entries []Diagnostic
}

// NewCollector creates a Collector that logs through log.
func NewCollector(log *slog.Logger) *Collector {
	return &Collector{log: log}
}

// Record implements Sink.
func (c *Collector) Record(d Diagnostic) {
	c.entries = append(c.entries, d)

	if c.log == nil {
		return
	}
	c.log.Warn(d.Message,
		"kind", string(d.Kind),
		"emitter", d.Emitter,
		"attribute", d.Attribute,
	)
}

// Entries returns every Diagnostic recorded so far, in emission order.
func (c *Collector) Entries() []Diagnostic {
	return c.entries
}

// NopSink discards every Diagnostic. Useful for tests that don't care
// about the side channel.
type NopSink struct{}

// Record implements Sink.
func (NopSink) Record(Diagnostic) {}
