package solver

import (
	"github.com/puzzle-framework/crossnum/pkg/crossnum"
)

// EquationConfig carries the collaborators and options of one
// equation-mode solver. Zero-value fields fall back to defaults:
// digit-only cell rule with no leading zeros, distinct-permutation
// letter enumeration, accept-first acceptance, no-op tracer, and
// name-order tie-breaking.
type EquationConfig struct {
	Items           []int
	AllowDuplicates bool
	CellRule        crossnum.CellRule
	LetterValues    crossnum.LetterValues
	Accept          func(s *crossnum.Solution) bool
	OnSolution      func(s *crossnum.Solution)
	Tracer          crossnum.Tracer
	TieBreak        crossnum.TieBreak
}

// EquationSolver assigns values to clues whose answers are arithmetic
// expressions over letter variables. A solver instance supports one
// run at a time; concurrent runs need independent instances.
type EquationSolver struct {
	grid     *Grid
	registry *Registry
	cfg      EquationConfig
}

// NewEquationSolver indexes the clues and validates that each one
// carries at least one evaluator.
func NewEquationSolver(clues []*crossnum.Clue, cfg EquationConfig) (*EquationSolver, error) {
	grid, err := NewGrid(clues)
	if err != nil {
		return nil, err
	}
	for _, clue := range clues {
		if len(clue.Evaluators()) == 0 {
			return nil, &crossnum.GeometryError{Clue: clue.Name(), Reason: "no evaluators for equation solving"}
		}
	}
	if cfg.CellRule == nil {
		cfg.CellRule = DefaultCellRule(grid)
	}
	if cfg.LetterValues == nil {
		cfg.LetterValues = PermutedLetterValues(cfg.Items)
	}
	if cfg.Tracer == nil {
		cfg.Tracer = crossnum.DefaultTracer{}
	}
	if cfg.TieBreak == nil {
		cfg.TieBreak = crossnum.FirstTieBreak{}
	}
	return &EquationSolver{grid: grid, registry: NewRegistry(), cfg: cfg}, nil
}

// Grid exposes the solver's grid index.
func (s *EquationSolver) Grid() *Grid {
	return s.grid
}

// AddConstraint registers a relational predicate over the given
// clues; it is checked at the first search step where all members
// are bound.
func (s *EquationSolver) AddConstraint(name string, pred crossnum.Predicate, clues ...*crossnum.Clue) {
	s.registry.Add(name, pred, clues...)
}

// Solve plans the solving order once, then performs the depth-first
// search. The run ends at the first accepted assignment.
func (s *EquationSolver) Solve() (*crossnum.Result, error) {
	steps, err := plan(s.grid, s.registry, s.cfg.TieBreak, s.cfg.Tracer)
	if err != nil {
		return nil, err
	}
	run := &equationRun{
		cfg:     s.cfg,
		steps:   steps,
		letters: make(crossnum.Binding),
		values:  make(map[*crossnum.Clue]crossnum.Value),
		dups:    newDupTracker(s.cfg.AllowDuplicates),
	}
	run.solve(0)
	return &crossnum.Result{Found: run.found, Steps: run.stepCount, Solution: run.solution}, nil
}

// equationRun is the mutable state of one run: the committed letter
// bindings and clue values, grown by one step per recursion level
// and shrunk structurally on every exit path.
type equationRun struct {
	cfg       EquationConfig
	steps     []step
	letters   crossnum.Binding
	values    map[*crossnum.Clue]crossnum.Value
	dups      *dupTracker
	stepCount int
	found     bool
	solution  *crossnum.Solution
}

// solve resolves the n-th step of the plan. It returns true when a
// solution was accepted somewhere below, which unwinds the whole
// run.
func (r *equationRun) solve(n int) bool {
	if n == len(r.steps) {
		solution := r.snapshot()
		if r.cfg.Accept != nil && !r.cfg.Accept(solution) {
			return false
		}
		if r.cfg.OnSolution != nil {
			r.cfg.OnSolution(solution)
		}
		r.found = true
		r.solution = solution
		return true
	}

	st := r.steps[n]
	twinValue, isTwin := r.values[st.clue]
	filter := r.filterFor(st)
	r.cfg.Tracer.Select(n, st.clue.Name(), "letters="+lettersString(st.letters))

	accepted := false
	r.cfg.LetterValues(r.letters, st.letters, func(values []int) bool {
		r.stepCount++
		for i, l := range st.letters {
			r.letters[l] = values[i]
		}
		value, ok := st.eval.Evaluate(r.letters)

		if isTwin {
			// A twin repeats a clue already committed by its
			// sibling evaluator; only an exact match survives.
			if !ok || value != twinValue {
				r.cfg.Tracer.Reject(n, st.clue.Name(), value, "twin mismatch")
				return true
			}
		} else {
			if !ok || !filter.accepts(value) {
				r.cfg.Tracer.Reject(n, st.clue.Name(), value, "filter")
				return true
			}
			if r.dups.inUse(value) {
				r.cfg.Tracer.Reject(n, st.clue.Name(), value, "duplicate")
				return true
			}
			r.values[st.clue] = value
			r.dups.add(value)
			if !r.constraintsHold(st) {
				r.cfg.Tracer.Reject(n, st.clue.Name(), value, "constraint")
				r.dups.remove(value)
				delete(r.values, st.clue)
				return true
			}
		}

		r.cfg.Tracer.Try(n, st.clue.Name(), value)
		done := r.solve(n + 1)
		if !isTwin {
			r.dups.remove(value)
			delete(r.values, st.clue)
		}
		if done {
			accepted = true
			return false
		}
		return true
	})

	for _, l := range st.letters {
		delete(r.letters, l)
	}
	return accepted
}

// filterFor builds the acceptance test for the step's answer: cells
// pinned by previously committed crossing clues admit only that
// exact character, every other cell follows the cell rule.
func (r *equationRun) filterFor(st step) *answerFilter {
	pinned := make(map[int]byte, len(st.crossings))
	for _, x := range st.crossings {
		if v, ok := r.values[x.other]; ok && x.otherIndex < len(v) {
			pinned[x.thisIndex] = v[x.otherIndex]
		}
	}
	return newAnswerFilter(st.clue, r.cfg.CellRule, pinned)
}

func (r *equationRun) constraintsHold(st step) bool {
	for _, c := range st.constraints {
		if !c.holds(r.values) {
			return false
		}
	}
	return true
}

func (r *equationRun) snapshot() *crossnum.Solution {
	values := make(map[crossnum.Identifier]crossnum.Value, len(r.values))
	for clue, v := range r.values {
		values[clue.Name()] = v
	}
	letters := make(crossnum.Binding, len(r.letters))
	for l, v := range r.letters {
		letters[l] = v
	}
	return &crossnum.Solution{Values: values, Letters: letters}
}

// PermutedLetterValues is the default binding enumeration: every
// permutation of the unused pool values over the free letters, with
// values distinct across the whole puzzle. The exclusion set is
// captured when enumeration starts.
func PermutedLetterValues(items []int) crossnum.LetterValues {
	return func(bound crossnum.Binding, free []crossnum.Letter, emit func(values []int) bool) {
		if len(free) == 0 {
			emit(nil)
			return
		}
		used := make(map[int]struct{}, len(bound))
		for _, v := range bound {
			used[v] = struct{}{}
		}
		pool := make([]int, 0, len(items))
		for _, v := range items {
			if _, ok := used[v]; !ok {
				pool = append(pool, v)
			}
		}
		permute(pool, len(free), emit)
	}
}

// RepeatedLetterValues enumerates letter assignments from the full
// item pool allowing repeats, with no value used more than
// maxPerItem times across the whole puzzle.
func RepeatedLetterValues(items []int, maxPerItem int) crossnum.LetterValues {
	return func(bound crossnum.Binding, free []crossnum.Letter, emit func(values []int) bool) {
		if len(free) == 0 {
			emit(nil)
			return
		}
		counts := make(map[int]int, len(bound))
		for _, v := range bound {
			counts[v]++
		}
		values := make([]int, len(free))
		var rec func(i int) bool
		rec = func(i int) bool {
			if i == len(free) {
				return emit(values)
			}
			for _, v := range items {
				if counts[v] >= maxPerItem {
					continue
				}
				counts[v]++
				values[i] = v
				ok := rec(i + 1)
				counts[v]--
				if !ok {
					return false
				}
			}
			return true
		}
		rec(0)
	}
}

// permute emits every k-permutation of pool in lexicographic order
// of pool positions. The emitted slice is reused between calls.
func permute(pool []int, k int, emit func(values []int) bool) {
	if k > len(pool) {
		return
	}
	values := make([]int, k)
	taken := make([]bool, len(pool))
	var rec func(i int) bool
	rec = func(i int) bool {
		if i == k {
			return emit(values)
		}
		for j, v := range pool {
			if taken[j] {
				continue
			}
			taken[j] = true
			values[i] = v
			ok := rec(i + 1)
			taken[j] = false
			if !ok {
				return false
			}
		}
		return true
	}
	rec(0)
}
