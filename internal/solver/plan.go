package solver

import (
	"fmt"
	"sort"

	"github.com/puzzle-framework/crossnum/pkg/crossnum"
)

// step is one entry of the equation-mode solving order: resolve eval
// (owned by clue), binding the still-free letters. crossings lists
// the cells shared with clues placed earlier in the plan, whose
// committed values pin characters of this clue's answer. constraints
// holds the relational constraints whose members are all bound once
// this step commits.
type step struct {
	clue        *crossnum.Clue
	eval        crossnum.Evaluator
	letters     []crossnum.Letter
	crossings   []crossing
	twin        bool
	constraints []*Constraint
}

// pendingEval tracks one not-yet-ordered evaluator during planning.
// The planner never assigns real values; it only tracks which
// letters and cells would be known by each point of the hypothetical
// order.
type pendingEval struct {
	clue      *crossnum.Clue
	evalIndex int
	eval      crossnum.Evaluator
	free      map[crossnum.Letter]struct{}
	crossings []crossing
	knownLocs map[crossnum.Location]struct{}
	twin      bool
}

// plan computes the order in which evaluators are resolved. The
// ranking is recomputed after every selection: lowest number of free
// letters first, then the largest fraction of the owning clue's
// cells already known, then the longest clue, with remaining ties
// resolved by the tie-break policy over name order.
func plan(g *Grid, registry *Registry, tie crossnum.TieBreak, tracer crossnum.Tracer) ([]step, error) {
	var pending []*pendingEval
	for _, clue := range g.Clues() {
		for i, eval := range clue.Evaluators() {
			free := make(map[crossnum.Letter]struct{})
			for _, l := range eval.Vars() {
				free[l] = struct{}{}
			}
			pending = append(pending, &pendingEval{
				clue:      clue,
				evalIndex: i,
				eval:      eval,
				free:      free,
				knownLocs: make(map[crossnum.Location]struct{}),
			})
		}
	}

	type pendingConstraint struct {
		constraint *Constraint
		waiting    map[*crossnum.Clue]struct{}
	}
	var constraints []*pendingConstraint
	for _, c := range registry.All() {
		waiting := make(map[*crossnum.Clue]struct{})
		for _, clue := range c.Clues() {
			if len(clue.Evaluators()) == 0 {
				return nil, fmt.Errorf("constraint %q references clue %q, which has no evaluators", c.Name(), clue.Name())
			}
			waiting[clue] = struct{}{}
		}
		constraints = append(constraints, &pendingConstraint{constraint: c, waiting: waiting})
	}

	// Canonical order for tie-breaking: clue name, then evaluator
	// position within the clue.
	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].clue.Name() != pending[j].clue.Name() {
			return pending[i].clue.Name() < pending[j].clue.Name()
		}
		return pending[i].evalIndex < pending[j].evalIndex
	})

	result := make([]step, 0, len(pending))
	for len(pending) > 0 {
		best := pickBest(pending, tie)
		chosen := pending[best]
		pending = append(pending[:best], pending[best+1:]...)

		var done []*Constraint
		remaining := constraints[:0]
		for _, pc := range constraints {
			delete(pc.waiting, chosen.clue)
			if len(pc.waiting) == 0 {
				done = append(done, pc.constraint)
			} else {
				remaining = append(remaining, pc)
			}
		}
		constraints = remaining

		letters := make([]crossnum.Letter, 0, len(chosen.free))
		for l := range chosen.free {
			letters = append(letters, l)
		}
		sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })

		tracer.Select(len(result), chosen.clue.Name(),
			fmt.Sprintf("planned letters=%s known=%d/%d", lettersString(letters), len(chosen.knownLocs), chosen.clue.Length()))

		result = append(result, step{
			clue:        chosen.clue,
			eval:        chosen.eval,
			letters:     letters,
			crossings:   chosen.crossings,
			twin:        chosen.twin,
			constraints: done,
		})

		for _, other := range pending {
			for l := range chosen.free {
				delete(other.free, l)
			}
			if other.clue == chosen.clue {
				// A twin of the clue just placed: its whole answer
				// is pinned by the sibling's committed value.
				other.twin = true
				for _, loc := range other.clue.Locations() {
					other.knownLocs[loc] = struct{}{}
				}
				continue
			}
			for _, x := range crossingsBetween(other.clue, chosen.clue) {
				loc := other.clue.Location(x.thisIndex)
				if _, ok := other.knownLocs[loc]; ok {
					continue
				}
				other.knownLocs[loc] = struct{}{}
				other.crossings = append(other.crossings, x)
			}
		}
	}

	if len(constraints) > 0 {
		return nil, fmt.Errorf("constraint %q could not be scheduled", constraints[0].constraint.Name())
	}
	return result, nil
}

// pickBest returns the index of the top-ranked pending evaluator,
// applying the tie-break policy among equally ranked entries.
func pickBest(pending []*pendingEval, tie crossnum.TieBreak) int {
	better := func(a, b *pendingEval) int {
		if d := len(a.free) - len(b.free); d != 0 {
			return d // fewer free letters wins
		}
		fa := float64(len(a.knownLocs)) / float64(a.clue.Length())
		fb := float64(len(b.knownLocs)) / float64(b.clue.Length())
		if fa != fb {
			if fa > fb {
				return -1 // larger known fraction wins
			}
			return 1
		}
		return b.clue.Length() - a.clue.Length() // longer clue wins
	}

	ties := []int{0}
	for i := 1; i < len(pending); i++ {
		switch c := better(pending[i], pending[ties[0]]); {
		case c < 0:
			ties = ties[:1]
			ties[0] = i
		case c == 0:
			ties = append(ties, i)
		}
	}
	return ties[tie.Pick(len(ties))]
}

func lettersString(letters []crossnum.Letter) string {
	s := make([]rune, len(letters))
	for i, l := range letters {
		s[i] = rune(l)
	}
	return string(s)
}
