package solver

import (
	"github.com/puzzle-framework/crossnum/pkg/crossnum"
)

// DefaultCellRule admits any digit, except '0' at clue start cells.
func DefaultCellRule(g *Grid) crossnum.CellRule {
	return func(loc crossnum.Location) func(ch byte) bool {
		if g.IsStart(loc) {
			return func(ch byte) bool { return ch >= '1' && ch <= '9' }
		}
		return func(ch byte) bool { return ch >= '0' && ch <= '9' }
	}
}

// answerFilter is the whole-answer acceptance test for one clue at
// one search step: the value must have the clue's length, must carry
// the pinned character wherever a committed crossing clue already
// fixes a cell, and must satisfy the cell rule everywhere else.
//
// Filters are rebuilt at every step rather than cached, because the
// cell rule may consult external context that changes between runs.
type answerFilter struct {
	length int
	cells  []func(ch byte) bool
}

// newAnswerFilter builds the filter for clue. pinned maps cell index
// to the character fixed by an already-committed crossing clue.
func newAnswerFilter(clue *crossnum.Clue, rule crossnum.CellRule, pinned map[int]byte) *answerFilter {
	cells := make([]func(ch byte) bool, clue.Length())
	for i, loc := range clue.Locations() {
		if want, ok := pinned[i]; ok {
			w := want
			cells[i] = func(ch byte) bool { return ch == w }
			continue
		}
		cells[i] = rule(loc)
	}
	return &answerFilter{length: clue.Length(), cells: cells}
}

func (f *answerFilter) accepts(v crossnum.Value) bool {
	if len(v) != f.length {
		return false
	}
	for i := 0; i < len(v); i++ {
		if !f.cells[i](v[i]) {
			return false
		}
	}
	return true
}
