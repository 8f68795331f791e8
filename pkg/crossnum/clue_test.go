package crossnum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puzzle-framework/crossnum/pkg/crossnum"
)

func TestNewClue(t *testing.T) {
	type tc struct {
		Name       string
		Build      func() (*crossnum.Clue, error)
		WantLocs   []crossnum.Location
		WantReason string
	}

	for _, tt := range []tc{
		{
			Name: "across run",
			Build: func() (*crossnum.Clue, error) {
				return crossnum.NewClue("1a", true, crossnum.Location{Row: 2, Column: 3}, 3)
			},
			WantLocs: []crossnum.Location{
				{Row: 2, Column: 3}, {Row: 2, Column: 4}, {Row: 2, Column: 5},
			},
		},
		{
			Name: "down run",
			Build: func() (*crossnum.Clue, error) {
				return crossnum.NewClue("1d", false, crossnum.Location{Row: 1, Column: 1}, 2)
			},
			WantLocs: []crossnum.Location{
				{Row: 1, Column: 1}, {Row: 2, Column: 1},
			},
		},
		{
			Name: "explicit locations override base and length",
			Build: func() (*crossnum.Clue, error) {
				return crossnum.NewClue("z", true, crossnum.Location{}, 0,
					crossnum.WithLocations(
						crossnum.Location{Row: 3, Column: 1},
						crossnum.Location{Row: 1, Column: 2},
					))
			},
			WantLocs: []crossnum.Location{
				{Row: 3, Column: 1}, {Row: 1, Column: 2},
			},
		},
		{
			Name: "zero length",
			Build: func() (*crossnum.Clue, error) {
				return crossnum.NewClue("1a", true, crossnum.Location{Row: 1, Column: 1}, 0)
			},
			WantReason: "length must be positive",
		},
		{
			Name: "zero-indexed base",
			Build: func() (*crossnum.Clue, error) {
				return crossnum.NewClue("1a", true, crossnum.Location{Row: 0, Column: 1}, 2)
			},
			WantReason: "locations are 1-indexed",
		},
		{
			Name: "repeated explicit location",
			Build: func() (*crossnum.Clue, error) {
				return crossnum.NewClue("z", true, crossnum.Location{}, 0,
					crossnum.WithLocations(
						crossnum.Location{Row: 1, Column: 1},
						crossnum.Location{Row: 1, Column: 1},
					))
			},
			WantReason: "repeated location (1,1)",
		},
		{
			Name: "empty explicit locations",
			Build: func() (*crossnum.Clue, error) {
				return crossnum.NewClue("z", true, crossnum.Location{}, 0, crossnum.WithLocations())
			},
			WantReason: "empty location list",
		},
		{
			Name: "evaluators and generator are mutually exclusive",
			Build: func() (*crossnum.Clue, error) {
				return crossnum.NewClue("1a", true, crossnum.Location{Row: 1, Column: 1}, 1,
					crossnum.WithEvaluators(nil),
					crossnum.WithGenerator(func(*crossnum.Clue) []crossnum.Candidate { return nil }))
			},
			WantReason: "clue has both evaluators and a generator",
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			clue, err := tt.Build()
			if tt.WantReason != "" {
				var geo *crossnum.GeometryError
				require.ErrorAs(t, err, &geo)
				assert.Equal(t, tt.WantReason, geo.Reason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.WantLocs, clue.Locations())
			assert.Equal(t, tt.WantLocs[0], clue.Base())
			assert.Equal(t, len(tt.WantLocs), clue.Length())
		})
	}
}

func TestMustCluePanics(t *testing.T) {
	assert.Panics(t, func() {
		crossnum.MustClue("bad", true, crossnum.Location{Row: 1, Column: 1}, -1)
	})
}

func TestClueAccessors(t *testing.T) {
	clue := crossnum.MustClue("7d", false, crossnum.Location{Row: 4, Column: 2}, 3,
		crossnum.WithContext("page 12"))
	assert.Equal(t, crossnum.Identifier("7d"), clue.Name())
	assert.False(t, clue.Across())
	assert.Equal(t, crossnum.Location{Row: 5, Column: 2}, clue.Location(1))
	assert.Equal(t, "page 12", clue.Context())
	assert.Equal(t, "<Clue 7d>", clue.String())
}
