package solver

import (
	"github.com/puzzle-framework/crossnum/pkg/crossnum"
)

// Grid indexes the clue list by grid cell: which clues cover a
// location, which locations start a clue, and where two clues cross.
// It is built once per solver and read-only afterwards.
type Grid struct {
	clues     []*crossnum.Clue
	byName    map[crossnum.Identifier]*crossnum.Clue
	covering  map[crossnum.Location][]*crossnum.Clue
	starts    map[crossnum.Location]struct{}
	crossings map[crossnum.Location]struct{}
}

// NewGrid indexes clues, rejecting duplicate names.
func NewGrid(clues []*crossnum.Clue) (*Grid, error) {
	g := &Grid{
		clues:     clues,
		byName:    make(map[crossnum.Identifier]*crossnum.Clue, len(clues)),
		covering:  make(map[crossnum.Location][]*crossnum.Clue),
		starts:    make(map[crossnum.Location]struct{}, len(clues)),
		crossings: make(map[crossnum.Location]struct{}),
	}
	for _, clue := range clues {
		if _, ok := g.byName[clue.Name()]; ok {
			return nil, crossnum.DuplicateClueError(clue.Name())
		}
		g.byName[clue.Name()] = clue
		g.starts[clue.Base()] = struct{}{}
		for _, loc := range clue.Locations() {
			g.covering[loc] = append(g.covering[loc], clue)
			if len(g.covering[loc]) > 1 {
				g.crossings[loc] = struct{}{}
			}
		}
	}
	return g, nil
}

// Clues returns the indexed clues in input order.
func (g *Grid) Clues() []*crossnum.Clue {
	return g.clues
}

// ClueNamed resolves a clue name to its typed handle.
func (g *Grid) ClueNamed(name crossnum.Identifier) (*crossnum.Clue, error) {
	clue, ok := g.byName[name]
	if !ok {
		return nil, crossnum.UnknownClueError(name)
	}
	return clue, nil
}

// CluesAt returns the clues covering a location.
func (g *Grid) CluesAt(loc crossnum.Location) []*crossnum.Clue {
	return g.covering[loc]
}

// IsStart reports whether the location is the first cell of at least
// one clue.
func (g *Grid) IsStart(loc crossnum.Location) bool {
	_, ok := g.starts[loc]
	return ok
}

// IsCrossing reports whether two or more clues share the location.
func (g *Grid) IsCrossing(loc crossnum.Location) bool {
	_, ok := g.crossings[loc]
	return ok
}

// crossing records one shared cell between two clues: cell thisIndex
// of the owning clue is cell otherIndex of other.
type crossing struct {
	thisIndex  int
	other      *crossnum.Clue
	otherIndex int
}

// crossingsBetween returns the shared cells of this and other, from
// this's point of view. Distinct clues meet in at most one cell on a
// rectilinear grid, but explicit location lists may produce several.
func crossingsBetween(this, other *crossnum.Clue) []crossing {
	if this == other {
		return nil
	}
	var result []crossing
	for i, loc := range this.Locations() {
		for j, otherLoc := range other.Locations() {
			if loc == otherLoc {
				result = append(result, crossing{thisIndex: i, other: other, otherIndex: j})
			}
		}
	}
	return result
}
