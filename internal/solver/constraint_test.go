package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puzzle-framework/crossnum/pkg/crossnum"
)

func known(values ...crossnum.Value) crossnum.Generator {
	return func(*crossnum.Clue) []crossnum.Candidate {
		result := make([]crossnum.Candidate, len(values))
		for i, v := range values {
			result[i] = crossnum.Candidate{Value: v}
		}
		return result
	}
}

func at(row, column int) crossnum.Location {
	return crossnum.Location{Row: row, Column: column}
}

func TestConstraintPropagation(t *testing.T) {
	// a1 == d1 * d2, with no crossings between the clues. Committing
	// d1=3 and a1=12 must narrow d2 to the single value 4 before d2
	// is ever selected.
	a1 := crossnum.MustClue("a1", true, at(1, 1), 2,
		crossnum.WithGenerator(known("12", "15", "16")))
	d1 := crossnum.MustClue("d1", false, at(3, 1), 1,
		crossnum.WithGenerator(known("3", "4")))
	d2 := crossnum.MustClue("d2", false, at(5, 1), 1,
		crossnum.WithGenerator(known("1", "2", "3", "4", "5", "6", "7", "8", "9")))

	s, err := NewConstraintSolver([]*crossnum.Clue{a1, d1, d2}, ConstraintConfig{})
	require.NoError(t, err)
	s.AddConstraint("product", func(values ...crossnum.Value) bool {
		return atoi(values[0]) == atoi(values[1])*atoi(values[2])
	}, a1, d1, d2)

	result, err := s.Solve()
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, crossnum.Value("12"), result.Solution.Values["a1"])
	assert.Equal(t, crossnum.Value("3"), result.Solution.Values["d1"])
	assert.Equal(t, crossnum.Value("4"), result.Solution.Values["d2"])
}

func atoi(v crossnum.Value) int {
	n := 0
	for i := 0; i < len(v); i++ {
		n = n*10 + int(v[i]-'0')
	}
	return n
}

func TestConstraintCrossingNarrowing(t *testing.T) {
	// 1a and 1d share cell (1,1); committing 1a leaves only the 1d
	// candidates agreeing on the shared character.
	oneAcross := crossnum.MustClue("1a", true, at(1, 1), 2,
		crossnum.WithGenerator(known("34", "56")))
	oneDown := crossnum.MustClue("1d", false, at(1, 1), 2,
		crossnum.WithGenerator(known("39", "57", "58")))

	s, err := NewConstraintSolver([]*crossnum.Clue{oneAcross, oneDown}, ConstraintConfig{})
	require.NoError(t, err)

	result, err := s.Solve()
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, crossnum.Value("34"), result.Solution.Values["1a"])
	assert.Equal(t, crossnum.Value("39"), result.Solution.Values["1d"])
}

func TestConstraintDeadEndBacktracks(t *testing.T) {
	// Every 1d candidate starts with 2, so the 1a candidate "12"
	// empties 1d's set and the search must move on to "21".
	oneAcross := crossnum.MustClue("1a", true, at(1, 1), 2,
		crossnum.WithGenerator(known("12", "21")))
	oneDown := crossnum.MustClue("1d", false, at(1, 1), 2,
		crossnum.WithGenerator(known("23", "24")))

	s, err := NewConstraintSolver([]*crossnum.Clue{oneAcross, oneDown}, ConstraintConfig{})
	require.NoError(t, err)

	result, err := s.Solve()
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, crossnum.Value("21"), result.Solution.Values["1a"])
	assert.Equal(t, crossnum.Value("23"), result.Solution.Values["1d"])
}

func TestConstraintDuplicatePolicy(t *testing.T) {
	type tc struct {
		Name  string
		Allow bool
		WantA crossnum.Value
		WantB crossnum.Value
	}

	for _, tt := range []tc{
		{Name: "distinct required", Allow: false, WantA: "1", WantB: "2"},
		{Name: "duplicates allowed", Allow: true, WantA: "1", WantB: "1"},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			a := crossnum.MustClue("a", true, at(1, 1), 1,
				crossnum.WithGenerator(known("1", "2")))
			b := crossnum.MustClue("b", true, at(3, 3), 1,
				crossnum.WithGenerator(known("1", "2")))

			s, err := NewConstraintSolver([]*crossnum.Clue{a, b}, ConstraintConfig{
				AllowDuplicates: tt.Allow,
			})
			require.NoError(t, err)

			result, err := s.Solve()
			require.NoError(t, err)
			require.True(t, result.Found)
			assert.Equal(t, tt.WantA, result.Solution.Values["a"])
			assert.Equal(t, tt.WantB, result.Solution.Values["b"])
		})
	}
}

func TestConstraintFixupIntroducesClue(t *testing.T) {
	// h has no generator and stays outside the search until the fixup
	// hands it a candidate set. The fixup also vetoes g="4".
	g := crossnum.MustClue("g", true, at(1, 1), 1,
		crossnum.WithGenerator(known("4", "5")))
	h := crossnum.MustClue("h", true, at(3, 1), 1)

	s, err := NewConstraintSolver([]*crossnum.Clue{g, h}, ConstraintConfig{
		Fixup: func(clue *crossnum.Clue, knownValues map[*crossnum.Clue]crossnum.Candidate, unknown map[*crossnum.Clue][]crossnum.Candidate) bool {
			if clue != g {
				return true
			}
			if knownValues[g].Value == "4" {
				return false
			}
			unknown[h] = []crossnum.Candidate{{Value: "7", Tag: "introduced"}}
			return true
		},
	})
	require.NoError(t, err)

	result, err := s.Solve()
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, crossnum.Value("5"), result.Solution.Values["g"])
	assert.Equal(t, crossnum.Value("7"), result.Solution.Values["h"])
	assert.Equal(t, "introduced", result.Solution.Tags["h"])
}

func TestConstraintStartClues(t *testing.T) {
	// b has fewer candidates, but the forced start order selects a
	// first.
	a := crossnum.MustClue("a", true, at(1, 1), 1,
		crossnum.WithGenerator(known("1", "2", "3", "4")))
	b := crossnum.MustClue("b", true, at(3, 3), 1,
		crossnum.WithGenerator(known("5")))

	tracer := &recordingTracer{}
	s, err := NewConstraintSolver([]*crossnum.Clue{a, b}, ConstraintConfig{Tracer: tracer})
	require.NoError(t, err)
	s.SetStartClues(a)

	result, err := s.Solve()
	require.NoError(t, err)
	require.True(t, result.Found)
	require.NotEmpty(t, tracer.selections)
	assert.Equal(t, crossnum.Identifier("a"), tracer.selections[0])

	t.Run("start clue needs a generator", func(t *testing.T) {
		c := crossnum.MustClue("c", true, at(5, 5), 1)
		s, err := NewConstraintSolver([]*crossnum.Clue{a, c}, ConstraintConfig{})
		require.NoError(t, err)
		s.SetStartClues(c)
		_, err = s.Solve()
		var geo *crossnum.GeometryError
		require.ErrorAs(t, err, &geo)
		assert.Equal(t, crossnum.Identifier("c"), geo.Clue)
	})
}

func TestConstraintSingletonFilter(t *testing.T) {
	// A one-clue constraint becomes a seed-time filter.
	a := crossnum.MustClue("a", true, at(1, 1), 1,
		crossnum.WithGenerator(known("1", "2", "3")))

	s, err := NewConstraintSolver([]*crossnum.Clue{a}, ConstraintConfig{})
	require.NoError(t, err)
	s.AddConstraint("even", func(values ...crossnum.Value) bool {
		return atoi(values[0])%2 == 0
	}, a)

	result, err := s.Solve()
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, crossnum.Value("2"), result.Solution.Values["a"])
}

type recordingTracer struct {
	selections []crossnum.Identifier
}

func (r *recordingTracer) Select(depth int, clue crossnum.Identifier, detail string) {
	r.selections = append(r.selections, clue)
}

func (r *recordingTracer) Try(depth int, clue crossnum.Identifier, value crossnum.Value) {}

func (r *recordingTracer) Reject(depth int, clue crossnum.Identifier, value crossnum.Value, reason string) {
}

func (r *recordingTracer) Narrow(depth int, clue crossnum.Identifier, cause string, before, after int) {
}
