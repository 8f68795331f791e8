// Package grid renders puzzle boards as text and verifies grid
// symmetry.
package grid

import (
	"fmt"
	"sort"
	"strings"

	"github.com/puzzle-framework/crossnum/pkg/crossnum"
)

// ClashError reports two clue values disagreeing at a shared cell.
type ClashError struct {
	Location crossnum.Location
	A, B     byte
}

func (e *ClashError) Error() string {
	return fmt.Sprintf("clash at %s: %c vs %c", e.Location, e.A, e.B)
}

// Render draws the board as text, one row per line: filled cells
// show their character, cells belonging to an unsolved clue show
// '.', and cells outside every clue show '#'. values may be partial
// or nil.
func Render(clues []*crossnum.Clue, values map[crossnum.Identifier]crossnum.Value) (string, error) {
	maxRow, maxColumn := 0, 0
	covered := make(map[crossnum.Location]struct{})
	entries := make(map[crossnum.Location]byte)

	for _, clue := range clues {
		for _, loc := range clue.Locations() {
			covered[loc] = struct{}{}
			if loc.Row > maxRow {
				maxRow = loc.Row
			}
			if loc.Column > maxColumn {
				maxColumn = loc.Column
			}
		}
		v, ok := values[clue.Name()]
		if !ok {
			continue
		}
		for i, loc := range clue.Locations() {
			if i >= len(v) {
				break
			}
			ch := v[i]
			if existing, ok := entries[loc]; ok && existing != ch {
				return "", &ClashError{Location: loc, A: existing, B: ch}
			}
			entries[loc] = ch
		}
	}

	var sb strings.Builder
	for row := 1; row <= maxRow; row++ {
		for column := 1; column <= maxColumn; column++ {
			if column > 1 {
				sb.WriteByte(' ')
			}
			loc := crossnum.Location{Row: row, Column: column}
			switch {
			case !has(covered, loc):
				sb.WriteByte('#')
			case has(entries, loc):
				sb.WriteByte(entries[loc])
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func has[V any](m map[crossnum.Location]V, loc crossnum.Location) bool {
	_, ok := m[loc]
	return ok
}

// RenderLetters formats a letter assignment as two aligned lines,
// letters sorted alphabetically.
func RenderLetters(letters crossnum.Binding) string {
	if len(letters) == 0 {
		return ""
	}
	ordered := make([]crossnum.Letter, 0, len(letters))
	width := 1
	for l, v := range letters {
		ordered = append(ordered, l)
		if w := len(fmt.Sprint(v)); w > width {
			width = w
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })
	var top, bottom []string
	for _, l := range ordered {
		top = append(top, fmt.Sprintf("%-*s", width, l))
		bottom = append(bottom, fmt.Sprintf("%-*d", width, letters[l]))
	}
	return strings.Join(top, " ") + "\n" + strings.Join(bottom, " ") + "\n"
}
