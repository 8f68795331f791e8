package crossnum

import (
	"math/rand"
)

// TieBreak resolves ties between equally ranked choices in the order
// planner and the constraint-mode clue selector. Choices are always
// presented in a canonical deterministic order (clue name, then
// evaluator position), so a fixed policy makes whole runs
// replayable.
type TieBreak interface {
	// Pick returns the index of the chosen candidate, in [0, n).
	Pick(n int) int
}

// FirstTieBreak deterministically picks the first choice in
// canonical order. This is the default policy.
type FirstTieBreak struct{}

func (FirstTieBreak) Pick(_ int) int {
	return 0
}

// RandomTieBreak picks uniformly using a seeded source, for runs
// that want varied exploration while staying replayable under a
// fixed seed.
type RandomTieBreak struct {
	rnd *rand.Rand
}

func NewRandomTieBreak(seed int64) *RandomTieBreak {
	return &RandomTieBreak{rnd: rand.New(rand.NewSource(seed))}
}

func (t *RandomTieBreak) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	return t.rnd.Intn(n)
}

// LetterValues enumerates candidate assignments for the free letters
// of the next evaluator, given the letters already bound by earlier
// steps. values[i] is the proposed integer for free[i]; emit
// returning false stops the enumeration. The default enumeration
// yields every permutation of the unused item-pool values; supplying
// a custom enumerator replaces it entirely, which is needed when
// letter pools overlap or repeat.
type LetterValues func(bound Binding, free []Letter, emit func(values []int) bool)
