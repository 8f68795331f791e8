package grid

import (
	"fmt"

	"github.com/puzzle-framework/crossnum/pkg/crossnum"
)

type clueStart struct {
	base   crossnum.Location
	length int
	across bool
}

func startSet(clues []*crossnum.Clue) (map[clueStart]struct{}, int, int) {
	starts := make(map[clueStart]struct{}, len(clues))
	maxRow, maxColumn := 0, 0
	for _, clue := range clues {
		starts[clueStart{base: clue.Base(), length: clue.Length(), across: clue.Across()}] = struct{}{}
		for _, loc := range clue.Locations() {
			if loc.Row > maxRow {
				maxRow = loc.Row
			}
			if loc.Column > maxColumn {
				maxColumn = loc.Column
			}
		}
	}
	return starts, maxRow + 1, maxColumn + 1
}

// VerifyVerticallySymmetric checks that every clue has a mirror
// image across the grid's vertical axis.
func VerifyVerticallySymmetric(clues []*crossnum.Clue) error {
	starts, _, maxColumn := startSet(clues)
	for _, clue := range clues {
		end := 0
		if clue.Across() {
			end = clue.Length() - 1
		}
		loc := clue.Location(end)
		mirror := crossnum.Location{Row: loc.Row, Column: maxColumn - loc.Column}
		if _, ok := starts[clueStart{base: mirror, length: clue.Length(), across: clue.Across()}]; !ok {
			return fmt.Errorf("no vertical mirror for %s at %s", clue.Name(), clue.Base())
		}
	}
	return nil
}

// Verify180Symmetric checks that every clue has a 180-degree
// rotational opposite.
func Verify180Symmetric(clues []*crossnum.Clue) error {
	starts, maxRow, maxColumn := startSet(clues)
	for _, clue := range clues {
		loc := clue.Location(clue.Length() - 1)
		opposite := crossnum.Location{Row: maxRow - loc.Row, Column: maxColumn - loc.Column}
		if _, ok := starts[clueStart{base: opposite, length: clue.Length(), across: clue.Across()}]; !ok {
			return fmt.Errorf("no opposite for %s at %s", clue.Name(), clue.Base())
		}
	}
	return nil
}

// VerifyFourFoldSymmetric checks that every clue maps onto another
// clue under a 90-degree clockwise rotation. Across clues rotate to
// down clues and vice versa.
func VerifyFourFoldSymmetric(clues []*crossnum.Clue) error {
	starts, maxRow, maxColumn := startSet(clues)
	if maxRow != maxColumn {
		return fmt.Errorf("grid is %dx%d, four-fold symmetry needs a square", maxRow-1, maxColumn-1)
	}
	for _, clue := range clues {
		end := clue.Length() - 1
		if clue.Across() {
			end = 0
		}
		loc := clue.Location(end)
		rotated := crossnum.Location{Row: loc.Column, Column: maxColumn - loc.Row}
		if _, ok := starts[clueStart{base: rotated, length: clue.Length(), across: !clue.Across()}]; !ok {
			return fmt.Errorf("no rotation for %s at %s", clue.Name(), clue.Base())
		}
	}
	return nil
}
