// Package solver exposes the two search engines behind small
// facades: an equation solver for puzzles whose clues are arithmetic
// expressions over letters, and a constraint solver for puzzles
// whose clues carry candidate sets related by predicates.
package solver

import (
	"github.com/puzzle-framework/crossnum/internal/solver"
	"github.com/puzzle-framework/crossnum/pkg/crossnum"
)

type config struct {
	items           []int
	allowDuplicates bool
	cellRule        crossnum.CellRule
	letterValues    crossnum.LetterValues
	fixup           crossnum.Fixup
	accept          func(s *crossnum.Solution) bool
	onSolution      func(s *crossnum.Solution)
	tracer          crossnum.Tracer
	tieBreak        crossnum.TieBreak
	startClues      []crossnum.Identifier
	repeatedMax     int
}

// Option configures a solver facade.
type Option func(c *config)

// WithItems sets the equation-mode item pool: the universe of
// integers a letter may take.
func WithItems(items ...int) Option {
	return func(c *config) {
		c.items = items
	}
}

// WithItemRange sets the item pool to the inclusive range [lo, hi].
func WithItemRange(lo, hi int) Option {
	return func(c *config) {
		c.items = c.items[:0]
		for i := lo; i <= hi; i++ {
			c.items = append(c.items, i)
		}
	}
}

// AllowDuplicates relaxes every distinctness check: two clues may
// commit the same value.
func AllowDuplicates() Option {
	return func(c *config) {
		c.allowDuplicates = true
	}
}

// WithCellRule overrides the per-cell allowed-character rule. The
// default admits any digit, excluding '0' at clue starts.
func WithCellRule(rule crossnum.CellRule) Option {
	return func(c *config) {
		c.cellRule = rule
	}
}

// WithLetterValues replaces the default binding enumeration
// (distinct permutations over the item pool) with a custom one.
func WithLetterValues(lv crossnum.LetterValues) Option {
	return func(c *config) {
		c.letterValues = lv
	}
}

// WithRepeatedLetters allows letters to share values, with no value
// used by more than maxPerItem letters.
func WithRepeatedLetters(maxPerItem int) Option {
	return func(c *config) {
		c.repeatedMax = maxPerItem
	}
}

// WithFixup installs the constraint-mode fixup hook.
func WithFixup(f crossnum.Fixup) Option {
	return func(c *config) {
		c.fixup = f
	}
}

// WithAccept installs the acceptance check invoked on every complete
// assignment. Acceptance ends the run; rejection continues
// backtracking.
func WithAccept(f func(s *crossnum.Solution) bool) Option {
	return func(c *config) {
		c.accept = f
	}
}

// OnSolution installs the reporting callback, invoked exactly once,
// with the accepted assignment.
func OnSolution(f func(s *crossnum.Solution)) Option {
	return func(c *config) {
		c.onSolution = f
	}
}

// WithTracer installs a Tracer observing every engine decision.
func WithTracer(t crossnum.Tracer) Option {
	return func(c *config) {
		c.tracer = t
	}
}

// WithTieBreak overrides the deterministic name-order tie-break
// policy.
func WithTieBreak(t crossnum.TieBreak) Option {
	return func(c *config) {
		c.tieBreak = t
	}
}

// WithRandomTieBreak resolves ties with a seeded random source.
func WithRandomTieBreak(seed int64) Option {
	return func(c *config) {
		c.tieBreak = crossnum.NewRandomTieBreak(seed)
	}
}

// WithStartClues forces the constraint solver to resolve the named
// clues first, in the given order.
func WithStartClues(names ...crossnum.Identifier) Option {
	return func(c *config) {
		c.startClues = names
	}
}

func newConfig(options ...Option) *config {
	c := &config{}
	for _, option := range options {
		option(c)
	}
	if c.letterValues == nil && c.repeatedMax > 0 {
		c.letterValues = solver.RepeatedLetterValues(c.items, c.repeatedMax)
	}
	return c
}
