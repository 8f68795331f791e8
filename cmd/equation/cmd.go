package equation

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/puzzle-framework/crossnum/pkg/crossnum"
	expr "github.com/puzzle-framework/crossnum/pkg/crossnum/equation"
	"github.com/puzzle-framework/crossnum/pkg/crossnum/grid"
	"github.com/puzzle-framework/crossnum/pkg/crossnum/solver"
)

func NewEquationCommand() *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:   "equation",
		Short: "Solves a built-in equation-mode demo puzzle",
		RunE: func(cmd *cobra.Command, args []string) error {
			return solve(debug)
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "trace every engine decision")
	return cmd
}

func solve(debug bool) error {
	clues := demoClues()

	options := []solver.Option{solver.WithItemRange(1, 9)}
	if debug {
		options = append(options, solver.WithTracer(crossnum.LoggingTracer{Writer: os.Stderr}))
	}
	s, err := solver.NewEquationSolver(clues, options...)
	if err != nil {
		return err
	}

	result, err := s.Solve()
	if err != nil {
		return err
	}
	if !result.Found {
		fmt.Println("no solution found")
		return nil
	}
	board, err := grid.Render(clues, result.Solution.Values)
	if err != nil {
		return err
	}
	fmt.Print(board)
	fmt.Println()
	fmt.Print(grid.RenderLetters(result.Solution.Letters))
	return nil
}

// demoClues is a 2x2 puzzle: every cell is shared by an across and a
// down clue, letters take distinct values from 1 to 9.
func demoClues() []*crossnum.Clue {
	type def struct {
		name       crossnum.Identifier
		across     bool
		base       crossnum.Location
		expression string
	}
	defs := []def{
		{"1a", true, crossnum.Location{Row: 1, Column: 1}, "A*B"},
		{"1d", false, crossnum.Location{Row: 1, Column: 1}, "C!"},
		{"2d", false, crossnum.Location{Row: 1, Column: 2}, "A+B+C+2"},
		{"3a", true, crossnum.Location{Row: 2, Column: 1}, "FB+C"},
	}
	clues := make([]*crossnum.Clue, len(defs))
	for i, d := range defs {
		clues[i] = crossnum.MustClue(d.name, d.across, d.base, 2,
			crossnum.WithEvaluators(expr.Evaluators(d.expression)...))
	}
	return clues
}
