package solver

import (
	"fmt"
	"sort"

	"github.com/puzzle-framework/crossnum/pkg/crossnum"
)

// ConstraintConfig carries the collaborators and options of one
// constraint-mode solver.
type ConstraintConfig struct {
	AllowDuplicates bool
	CellRule        crossnum.CellRule
	Fixup           crossnum.Fixup
	Accept          func(s *crossnum.Solution) bool
	OnSolution      func(s *crossnum.Solution)
	Tracer          crossnum.Tracer
	TieBreak        crossnum.TieBreak
}

// ConstraintSolver assigns values to clues from per-clue candidate
// sets, narrowing sibling sets as it commits values. A solver
// instance supports one run at a time.
type ConstraintSolver struct {
	grid       *Grid
	registry   *Registry
	filters    map[*crossnum.Clue][]func(v crossnum.Value) bool
	startClues []*crossnum.Clue
	cfg        ConstraintConfig
}

func NewConstraintSolver(clues []*crossnum.Clue, cfg ConstraintConfig) (*ConstraintSolver, error) {
	grid, err := NewGrid(clues)
	if err != nil {
		return nil, err
	}
	if cfg.CellRule == nil {
		cfg.CellRule = DefaultCellRule(grid)
	}
	if cfg.Tracer == nil {
		cfg.Tracer = crossnum.DefaultTracer{}
	}
	if cfg.TieBreak == nil {
		cfg.TieBreak = crossnum.FirstTieBreak{}
	}
	return &ConstraintSolver{
		grid:     grid,
		registry: NewRegistry(),
		filters:  make(map[*crossnum.Clue][]func(v crossnum.Value) bool),
		cfg:      cfg,
	}, nil
}

// Grid exposes the solver's grid index.
func (s *ConstraintSolver) Grid() *Grid {
	return s.grid
}

// AddConstraint registers a relational predicate. A single-clue
// constraint becomes a pre-filter on that clue's initial candidates;
// larger ones participate in propagation during search.
func (s *ConstraintSolver) AddConstraint(name string, pred crossnum.Predicate, clues ...*crossnum.Clue) {
	if len(clues) == 1 {
		s.AddFilter(clues[0], func(v crossnum.Value) bool { return pred(v) })
		return
	}
	s.registry.Add(name, pred, clues...)
}

// AddFilter restricts a clue's initial candidate set to values
// satisfying pred.
func (s *ConstraintSolver) AddFilter(clue *crossnum.Clue, pred func(v crossnum.Value) bool) {
	s.filters[clue] = append(s.filters[clue], pred)
}

// SetStartClues forces the first len(clues) selections, overriding
// fewest-candidates selection for those levels.
func (s *ConstraintSolver) SetStartClues(clues ...*crossnum.Clue) {
	s.startClues = clues
}

// Solve seeds each generator-backed clue's candidate set, then
// performs the depth-first search. Clues without a generator stay
// out of the search until a fixup call introduces candidates for
// them. The run ends at the first accepted assignment.
func (s *ConstraintSolver) Solve() (*crossnum.Result, error) {
	for _, clue := range s.startClues {
		if clue.Generator() == nil {
			return nil, &crossnum.GeometryError{Clue: clue.Name(), Reason: "start clue has no generator"}
		}
	}
	unknown := make(map[*crossnum.Clue][]crossnum.Candidate)
	for _, clue := range s.grid.Clues() {
		gen := clue.Generator()
		if gen == nil {
			continue
		}
		unknown[clue] = s.initialCandidates(clue, gen)
	}
	run := &constraintRun{
		cfg:        s.cfg,
		grid:       s.grid,
		registry:   s.registry,
		startClues: s.startClues,
		known:      make(map[*crossnum.Clue]crossnum.Candidate),
		dups:       newDupTracker(s.cfg.AllowDuplicates),
	}
	run.solve(unknown)
	return &crossnum.Result{Found: run.found, Steps: run.stepCount, Solution: run.solution}, nil
}

// initialCandidates runs the clue's generator once and keeps the
// values passing the per-cell rule and any registered filters,
// sorted for deterministic iteration order.
func (s *ConstraintSolver) initialCandidates(clue *crossnum.Clue, gen crossnum.Generator) []crossnum.Candidate {
	filter := newAnswerFilter(clue, s.cfg.CellRule, nil)
	var result []crossnum.Candidate
next:
	for _, cand := range gen(clue) {
		if !filter.accepts(cand.Value) {
			continue
		}
		for _, pred := range s.filters[clue] {
			if !pred(cand.Value) {
				continue next
			}
		}
		result = append(result, cand)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Value < result[j].Value })
	return result
}

// constraintRun is the state of one run. known is the resolved
// mapping, mutated in place with structural undo; each branch owns
// an independent copy of the unresolved mapping, so failure simply
// returns with the pre-branch state intact.
type constraintRun struct {
	cfg        ConstraintConfig
	grid       *Grid
	registry   *Registry
	startClues []*crossnum.Clue
	known      map[*crossnum.Clue]crossnum.Candidate
	dups       *dupTracker
	stepCount  int
	found      bool
	solution   *crossnum.Solution
}

func (r *constraintRun) solve(unknown map[*crossnum.Clue][]crossnum.Candidate) bool {
	depth := len(r.known)
	if len(unknown) == 0 {
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

	clue, values := r.selectClue(unknown, depth)
	r.cfg.Tracer.Select(depth, clue.Name(), fmt.Sprintf("%d candidates", len(values)))
	if len(values) == 0 {
		return false
	}

	for _, cand := range values {
		r.stepCount++
		v := cand.Value
		if r.dups.inUse(v) {
			r.cfg.Tracer.Reject(depth, clue.Name(), v, "duplicate")
			continue
		}
		r.known[clue] = cand
		r.dups.add(v)

		next := make(map[*crossnum.Clue][]crossnum.Candidate, len(unknown)-1)
		for c, vs := range unknown {
			if c != clue {
				next[c] = vs
			}
		}

		ok := true
		if r.cfg.Fixup != nil && !r.cfg.Fixup(clue, r.known, next) {
			r.cfg.Tracer.Reject(depth, clue.Name(), v, "fixup")
			ok = false
		}
		if ok && !r.propagate(clue, next, depth) {
			r.cfg.Tracer.Reject(depth, clue.Name(), v, "constraint")
			ok = false
		}
		if ok && !r.pruneSiblings(clue, v, next, depth) {
			r.cfg.Tracer.Reject(depth, clue.Name(), v, "crossing")
			ok = false
		}

		if ok {
			r.cfg.Tracer.Try(depth, clue.Name(), v)
			if r.solve(next) {
				return true
			}
		}
		r.dups.remove(v)
		delete(r.known, clue)
	}
	return false
}

// selectClue picks the next clue to resolve: forced start clues
// first, then the unresolved clue with the fewest candidates,
// breaking ties by longest clue and then by policy over name order.
func (r *constraintRun) selectClue(unknown map[*crossnum.Clue][]crossnum.Candidate, depth int) (*crossnum.Clue, []crossnum.Candidate) {
	if depth < len(r.startClues) {
		clue := r.startClues[depth]
		return clue, unknown[clue]
	}

	clues := make([]*crossnum.Clue, 0, len(unknown))
	for c := range unknown {
		clues = append(clues, c)
	}
	sort.Slice(clues, func(i, j int) bool { return clues[i].Name() < clues[j].Name() })

	better := func(a, b *crossnum.Clue) int {
		if d := len(unknown[a]) - len(unknown[b]); d != 0 {
			return d
		}
		return b.Length() - a.Length()
	}
	ties := clues[:1]
	for _, c := range clues[1:] {
		switch cmp := better(c, ties[0]); {
		case cmp < 0:
			ties = ties[:1]
			ties[0] = c
		case cmp == 0:
			ties = append(ties, c)
		}
	}
	clue := ties[r.cfg.TieBreak.Pick(len(ties))]
	return clue, unknown[clue]
}

// propagate handles registered constraints touching the just-
// assigned clue. A constraint with every member resolved is checked
// outright; one with a single unresolved member restricts that
// member's candidate set to values satisfying the predicate. An
// empty restriction rejects the tentative value.
func (r *constraintRun) propagate(clue *crossnum.Clue, unknown map[*crossnum.Clue][]crossnum.Candidate, depth int) bool {
	for _, c := range r.registry.For(clue) {
		members := c.Clues()
		args := make([]crossnum.Value, len(members))
		openIndex := -1
		var open *crossnum.Clue
		for i, m := range members {
			if cand, ok := r.known[m]; ok {
				args[i] = cand.Value
				continue
			}
			if open != nil {
				open = nil
				openIndex = -2 // more than one unresolved member
				break
			}
			open = m
			openIndex = i
		}

		switch {
		case openIndex == -1:
			if !c.pred(args...) {
				return false
			}
		case open != nil:
			before, ok := unknown[open]
			if !ok {
				// The unresolved member has no candidate set yet; it
				// can only enter the search through a fixup call, so
				// the constraint is not checkable here.
				continue
			}
			after := before[:0:0]
			for _, cand := range before {
				args[openIndex] = cand.Value
				if c.pred(args...) {
					after = append(after, cand)
				}
			}
			if len(after) != len(before) {
				r.cfg.Tracer.Narrow(depth, open.Name(), c.Name(), len(before), len(after))
			}
			unknown[open] = after
			if len(after) == 0 {
				return false
			}
		}
	}
	return true
}

// pruneSiblings applies the consequences of committing v to clue:
// every other unresolved clue loses v from its candidate set (unless
// duplicates are allowed), and clues crossing the committed clue
// keep only candidates agreeing with v's character at the shared
// cell. An emptied set rejects the tentative value.
func (r *constraintRun) pruneSiblings(clue *crossnum.Clue, v crossnum.Value, unknown map[*crossnum.Clue][]crossnum.Candidate, depth int) bool {
	for other, before := range unknown {
		crossings := crossingsBetween(other, clue)
		after := before[:0:0]
	candidates:
		for _, cand := range before {
			if !r.cfg.AllowDuplicates && cand.Value == v {
				continue
			}
			for _, x := range crossings {
				if x.thisIndex >= len(cand.Value) || x.otherIndex >= len(v) {
					continue candidates
				}
				if cand.Value[x.thisIndex] != v[x.otherIndex] {
					continue candidates
				}
			}
			after = append(after, cand)
		}
		if len(after) != len(before) {
			r.cfg.Tracer.Narrow(depth, other.Name(), string(clue.Name())+" crossing", len(before), len(after))
			unknown[other] = after
		}
		if len(after) == 0 {
			return false
		}
	}
	return true
}

func (r *constraintRun) snapshot() *crossnum.Solution {
	values := make(map[crossnum.Identifier]crossnum.Value, len(r.known))
	var tags map[crossnum.Identifier]any
	for clue, cand := range r.known {
		values[clue.Name()] = cand.Value
		if cand.Tag != nil {
			if tags == nil {
				tags = make(map[crossnum.Identifier]any)
			}
			tags[clue.Name()] = cand.Tag
		}
	}
	return &crossnum.Solution{Values: values, Tags: tags}
}
