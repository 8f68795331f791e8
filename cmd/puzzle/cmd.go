package puzzle

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/puzzle-framework/crossnum/pkg/crossnum"
	"github.com/puzzle-framework/crossnum/pkg/crossnum/grid"
	"github.com/puzzle-framework/crossnum/pkg/crossnum/solver"
)

func NewPuzzleCommand() *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:   "puzzle <file.yaml>",
		Short: "Solves a puzzle defined in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return solveFile(args[0], debug)
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "trace every engine decision")
	return cmd
}

func solveFile(path string, debug bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	puzzle, err := Load(data)
	if err != nil {
		return err
	}

	var options []solver.Option
	if debug {
		options = append(options, solver.WithTracer(crossnum.LoggingTracer{Writer: os.Stderr}))
	}
	result, err := puzzle.Solve(options...)
	if err != nil {
		return err
	}
	if !result.Found {
		fmt.Println("no solution found")
		return nil
	}

	board, err := grid.Render(puzzle.Clues(), result.Solution.Values)
	if err != nil {
		return err
	}
	fmt.Print(board)
	if len(result.Solution.Letters) > 0 {
		fmt.Println()
		fmt.Print(grid.RenderLetters(result.Solution.Letters))
	}
	return nil
}
