package solver

import (
	"github.com/puzzle-framework/crossnum/internal/solver"
	"github.com/puzzle-framework/crossnum/pkg/crossnum"
)

// ConstraintSolver solves puzzles whose clues carry candidate-value
// generators related by predicates.
type ConstraintSolver struct {
	engine *solver.ConstraintSolver
}

// NewConstraintSolver builds a constraint-mode solver over the given
// clues. Clues without a generator are excluded from the search
// until a fixup call introduces candidates for them.
func NewConstraintSolver(clues []*crossnum.Clue, options ...Option) (*ConstraintSolver, error) {
	c := newConfig(options...)
	engine, err := solver.NewConstraintSolver(clues, solver.ConstraintConfig{
		AllowDuplicates: c.allowDuplicates,
		CellRule:        c.cellRule,
		Fixup:           c.fixup,
		Accept:          c.accept,
		OnSolution:      c.onSolution,
		Tracer:          c.tracer,
		TieBreak:        c.tieBreak,
	})
	if err != nil {
		return nil, err
	}
	s := &ConstraintSolver{engine: engine}
	if len(c.startClues) > 0 {
		starts, err := resolve(engine.Grid(), c.startClues)
		if err != nil {
			return nil, err
		}
		engine.SetStartClues(starts...)
	}
	return s, nil
}

// AddConstraint registers a relational predicate over the named
// clues. Names are resolved once, here. A single-clue constraint
// pre-filters that clue's initial candidates; a larger one is
// propagated during search whenever exactly one member remains
// unresolved.
func (s *ConstraintSolver) AddConstraint(name string, pred crossnum.Predicate, names ...crossnum.Identifier) error {
	clues, err := resolve(s.engine.Grid(), names)
	if err != nil {
		return err
	}
	s.engine.AddConstraint(name, pred, clues...)
	return nil
}

// AddFilter restricts the named clue's initial candidate set.
func (s *ConstraintSolver) AddFilter(name crossnum.Identifier, pred func(v crossnum.Value) bool) error {
	clue, err := s.engine.Grid().ClueNamed(name)
	if err != nil {
		return err
	}
	s.engine.AddFilter(clue, pred)
	return nil
}

// Solve seeds candidate sets from the clue generators, then searches
// depth-first for the first assignment passing the acceptance check.
// A run with no accepted assignment returns Found == false and a nil
// error.
func (s *ConstraintSolver) Solve() (*crossnum.Result, error) {
	return s.engine.Solve()
}
