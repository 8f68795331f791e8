package root

import (
	"github.com/spf13/cobra"

	"github.com/puzzle-framework/crossnum/cmd/equation"
	"github.com/puzzle-framework/crossnum/cmd/puzzle"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "crossnum",
		Short: "crossnum is a cross-number puzzle solving framework",
		Long: `A cross-number puzzle solving framework written in Go.
Clue values are found either from arithmetic equations over letters
or from candidate sets related by constraints.`,
	}

	// add sub-commands
	rootCmd.AddCommand(equation.NewEquationCommand())
	rootCmd.AddCommand(puzzle.NewPuzzleCommand())

	return rootCmd
}
