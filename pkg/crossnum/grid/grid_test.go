package grid

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puzzle-framework/crossnum/pkg/crossnum"
)

func at(row, column int) crossnum.Location {
	return crossnum.Location{Row: row, Column: column}
}

func TestRender(t *testing.T) {
	clues := []*crossnum.Clue{
		crossnum.MustClue("1a", true, at(1, 1), 2),
		crossnum.MustClue("1d", false, at(1, 1), 2),
		crossnum.MustClue("3a", true, at(3, 1), 2),
	}
	values := map[crossnum.Identifier]crossnum.Value{
		"1a": "16",
		"1d": "10",
	}

	board, err := Render(clues, values)
	require.NoError(t, err)
	goldie.New(t).Assert(t, "board", []byte(board))
}

func TestRenderClash(t *testing.T) {
	clues := []*crossnum.Clue{
		crossnum.MustClue("1a", true, at(1, 1), 2),
		crossnum.MustClue("1d", false, at(1, 1), 2),
	}
	values := map[crossnum.Identifier]crossnum.Value{
		"1a": "16",
		"1d": "20",
	}

	_, err := Render(clues, values)
	var clash *ClashError
	require.ErrorAs(t, err, &clash)
	assert.Equal(t, at(1, 1), clash.Location)
	assert.Equal(t, byte('1'), clash.A)
	assert.Equal(t, byte('2'), clash.B)
}

func TestRenderLetters(t *testing.T) {
	assert.Equal(t, "A B\n2 8\n", RenderLetters(crossnum.Binding{'B': 8, 'A': 2}))
	assert.Equal(t, "A  B \n2  10\n", RenderLetters(crossnum.Binding{'A': 2, 'B': 10}))
	assert.Equal(t, "", RenderLetters(nil))
}

func TestVerifyVerticallySymmetric(t *testing.T) {
	symmetric := []*crossnum.Clue{
		crossnum.MustClue("1a", true, at(1, 1), 3),
		crossnum.MustClue("1d", false, at(1, 1), 2),
		crossnum.MustClue("2d", false, at(1, 3), 2),
	}
	assert.NoError(t, VerifyVerticallySymmetric(symmetric))

	lopsided := []*crossnum.Clue{
		crossnum.MustClue("1a", true, at(1, 1), 3),
		crossnum.MustClue("1d", false, at(1, 1), 2),
	}
	assert.Error(t, VerifyVerticallySymmetric(lopsided))
}

func TestVerify180Symmetric(t *testing.T) {
	symmetric := []*crossnum.Clue{
		crossnum.MustClue("1a", true, at(1, 1), 2),
		crossnum.MustClue("2a", true, at(2, 1), 2),
	}
	assert.NoError(t, Verify180Symmetric(symmetric))

	lopsided := []*crossnum.Clue{
		crossnum.MustClue("1a", true, at(1, 1), 2),
		crossnum.MustClue("1d", false, at(1, 1), 2),
	}
	assert.Error(t, Verify180Symmetric(lopsided))
}

func TestVerifyFourFoldSymmetric(t *testing.T) {
	// A pinwheel of four length-2 clues on a 3x3 board.
	pinwheel := []*crossnum.Clue{
		crossnum.MustClue("1a", true, at(1, 1), 2),
		crossnum.MustClue("2d", false, at(1, 3), 2),
		crossnum.MustClue("3a", true, at(3, 2), 2),
		crossnum.MustClue("1d", false, at(2, 1), 2),
	}
	assert.NoError(t, VerifyFourFoldSymmetric(pinwheel))

	t.Run("needs a square grid", func(t *testing.T) {
		err := VerifyFourFoldSymmetric([]*crossnum.Clue{
			crossnum.MustClue("1a", true, at(1, 1), 3),
			crossnum.MustClue("1d", false, at(1, 1), 2),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "square")
	})

	t.Run("missing rotation", func(t *testing.T) {
		err := VerifyFourFoldSymmetric([]*crossnum.Clue{
			crossnum.MustClue("1a", true, at(1, 1), 3),
			crossnum.MustClue("1d", false, at(1, 1), 3),
		})
		assert.Error(t, err)
	})
}
