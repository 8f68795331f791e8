package crossnum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/puzzle-framework/crossnum/pkg/crossnum"
)

func TestFirstTieBreak(t *testing.T) {
	assert.Equal(t, 0, crossnum.FirstTieBreak{}.Pick(5))
}

func TestRandomTieBreak(t *testing.T) {
	a := crossnum.NewRandomTieBreak(1)
	b := crossnum.NewRandomTieBreak(1)
	for i := 0; i < 100; i++ {
		pick := a.Pick(7)
		assert.GreaterOrEqual(t, pick, 0)
		assert.Less(t, pick, 7)
		assert.Equal(t, pick, b.Pick(7), "same seed, same sequence")
	}
	assert.Equal(t, 0, a.Pick(1), "a single candidate needs no randomness")
}
