package crossnum

import (
	"fmt"
)

// Identifier values uniquely identify particular Clues within the
// input to a single solver run.
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// IdentifierFromString returns an Identifier based on a provided
// string.
func IdentifierFromString(s string) Identifier {
	return Identifier(s)
}

// Letter is a single variable appearing in a clue expression.
type Letter rune

func (l Letter) String() string {
	return string(rune(l))
}

// Value is the digit string committed to a clue.
type Value string

func (v Value) String() string {
	return string(v)
}

// Location is a 1-indexed (row, column) grid cell; (1,1) is the top
// left corner.
type Location struct {
	Row    int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.Row, l.Column)
}

// Binding maps expression letters to the integers currently assigned
// to them.
type Binding map[Letter]int

// Candidate is one possible value for a clue. Tag carries
// caller-defined provenance; every comparison made by the solver
// (duplicate checks, crossing checks) considers Value alone.
type Candidate struct {
	Value Value
	Tag   any
}

// Evaluator computes a clue value from a letter binding. Evaluate is
// only called once every letter in Vars is bound; a false second
// return means the expression has no admissible result under the
// binding, which is a normal rejection rather than an error.
type Evaluator interface {
	Vars() []Letter
	Evaluate(b Binding) (Value, bool)
}

// Generator produces the initial candidate values for a clue. It is
// called exactly once per clue per run. A clue without a generator
// stays out of the search until a Fixup hook supplies candidates for
// it.
type Generator func(c *Clue) []Candidate

// CellRule returns the predicate deciding which characters may occupy
// a grid cell. The default rule admits any digit, excluding '0' at
// clue start cells.
type CellRule func(loc Location) func(ch byte) bool

// Predicate is an n-ary relational constraint over clue values,
// applied positionally in registration order.
type Predicate func(values ...Value) bool

// Fixup is invoked after a clue is tentatively assigned in constraint
// mode. It may narrow other clues' candidate sets in unknown, and may
// add a candidate set for a clue that had no generator. Returning
// false rejects the tentative value.
type Fixup func(clue *Clue, known map[*Clue]Candidate, unknown map[*Clue][]Candidate) bool

// Solution is a complete assignment handed to the acceptance check
// and the reporting callback.
type Solution struct {
	// Values maps every solved clue to its committed value.
	Values map[Identifier]Value
	// Letters holds the letter assignment; equation mode only.
	Letters Binding
	// Tags holds the provenance of each committed candidate, for
	// clues whose candidates carried one; constraint mode only.
	Tags map[Identifier]any
}

// Result describes the outcome of one run. A run that exhausts the
// search space without an accepted assignment is a normal outcome,
// not an error: Found is false and Solution is nil.
type Result struct {
	// Found reports whether an assignment was accepted.
	Found bool
	// Steps counts the candidate values tried during the run.
	Steps int
	// Solution is the accepted assignment, recorded for hosts that
	// want it in addition to the reporting callback.
	Solution *Solution
}

// GeometryError reports a malformed clue detected at construction
// time, before any search begins.
type GeometryError struct {
	Clue   Identifier
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("clue %q: %s", e.Clue, e.Reason)
}

// UnknownClueError reports a reference to a clue name that was never
// registered.
type UnknownClueError Identifier

func (e UnknownClueError) Error() string {
	return fmt.Sprintf("unknown clue %q", Identifier(e))
}

// DuplicateClueError reports two clues sharing one name.
type DuplicateClueError Identifier

func (e DuplicateClueError) Error() string {
	return fmt.Sprintf("duplicate clue name %q in input", Identifier(e))
}
