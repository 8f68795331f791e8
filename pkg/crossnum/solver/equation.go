package solver

import (
	"github.com/puzzle-framework/crossnum/internal/solver"
	"github.com/puzzle-framework/crossnum/pkg/crossnum"
)

// EquationSolver solves puzzles whose clue values are determined by
// arithmetic expressions over letter variables drawn from a shared
// item pool.
type EquationSolver struct {
	engine *solver.EquationSolver
}

// NewEquationSolver builds an equation-mode solver over the given
// clues. Every clue must carry at least one evaluator; supply the
// letter universe with WithItems or WithItemRange.
func NewEquationSolver(clues []*crossnum.Clue, options ...Option) (*EquationSolver, error) {
	c := newConfig(options...)
	engine, err := solver.NewEquationSolver(clues, solver.EquationConfig{
		Items:           c.items,
		AllowDuplicates: c.allowDuplicates,
		CellRule:        c.cellRule,
		LetterValues:    c.letterValues,
		Accept:          c.accept,
		OnSolution:      c.onSolution,
		Tracer:          c.tracer,
		TieBreak:        c.tieBreak,
	})
	if err != nil {
		return nil, err
	}
	return &EquationSolver{engine: engine}, nil
}

// AddConstraint registers a relational predicate over the named
// clues. Names are resolved once, here; the predicate receives the
// clue values positionally in the given order and is checked during
// search at the first step where all members are bound.
func (s *EquationSolver) AddConstraint(name string, pred crossnum.Predicate, names ...crossnum.Identifier) error {
	clues, err := resolve(s.engine.Grid(), names)
	if err != nil {
		return err
	}
	s.engine.AddConstraint(name, pred, clues...)
	return nil
}

// Solve computes the solving order, then searches depth-first for
// the first assignment passing the acceptance check. A run with no
// accepted assignment returns Found == false and a nil error.
func (s *EquationSolver) Solve() (*crossnum.Result, error) {
	return s.engine.Solve()
}

func resolve(grid *solver.Grid, names []crossnum.Identifier) ([]*crossnum.Clue, error) {
	clues := make([]*crossnum.Clue, len(names))
	for i, name := range names {
		clue, err := grid.ClueNamed(name)
		if err != nil {
			return nil, err
		}
		clues[i] = clue
	}
	return clues, nil
}
