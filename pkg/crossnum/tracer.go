package crossnum

import (
	"fmt"
	"io"
	"strings"
)

// Tracer observes the decisions the engine makes during a run:
// which clue is resolved next, which candidate values are tried, why
// values are skipped, and how constraint propagation narrows
// candidate sets. Tracing is purely observational.
type Tracer interface {
	// Select is called when the engine picks the next unknown to
	// resolve at the given recursion depth.
	Select(depth int, clue Identifier, detail string)
	// Try is called for each candidate value about to be committed.
	Try(depth int, clue Identifier, value Value)
	// Reject is called when a candidate value is skipped, with the
	// reason ("duplicate", "filter", "constraint", ...).
	Reject(depth int, clue Identifier, value Value, reason string)
	// Narrow is called when propagation shrinks a clue's candidate
	// set from before to after values.
	Narrow(depth int, clue Identifier, cause string, before, after int)
}

// DefaultTracer is a no-op Tracer.
type DefaultTracer struct{}

func (DefaultTracer) Select(_ int, _ Identifier, _ string)          {}
func (DefaultTracer) Try(_ int, _ Identifier, _ Value)              {}
func (DefaultTracer) Reject(_ int, _ Identifier, _ Value, _ string) {}
func (DefaultTracer) Narrow(_ int, _ Identifier, _ string, _, _ int) {
}

// LoggingTracer writes one line per decision, indented by recursion
// depth.
type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Select(depth int, clue Identifier, detail string) {
	fmt.Fprintf(t.Writer, "%s%s %s\n", indent(depth), clue, detail)
}

func (t LoggingTracer) Try(depth int, clue Identifier, value Value) {
	fmt.Fprintf(t.Writer, "%s%s = %s -->\n", indent(depth), clue, value)
}

func (t LoggingTracer) Reject(depth int, clue Identifier, value Value, reason string) {
	fmt.Fprintf(t.Writer, "%s%s = %s [%s]\n", indent(depth), clue, value, reason)
}

func (t LoggingTracer) Narrow(depth int, clue Identifier, cause string, before, after int) {
	fmt.Fprintf(t.Writer, "%s   %s %d -> %d [%s]\n", indent(depth), clue, before, after, cause)
}

func indent(depth int) string {
	return strings.Repeat(" | ", depth)
}
