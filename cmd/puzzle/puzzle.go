package puzzle

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/puzzle-framework/crossnum/pkg/crossnum"
	"github.com/puzzle-framework/crossnum/pkg/crossnum/constraint"
	"github.com/puzzle-framework/crossnum/pkg/crossnum/equation"
	"github.com/puzzle-framework/crossnum/pkg/crossnum/generator"
	"github.com/puzzle-framework/crossnum/pkg/crossnum/solver"
)

// File is the YAML schema of a puzzle definition.
type File struct {
	Mode            string          `yaml:"mode"`
	Items           []int           `yaml:"items"`
	ItemRange       *ItemRange      `yaml:"itemRange"`
	AllowDuplicates bool            `yaml:"allowDuplicates"`
	Clues           []ClueDef       `yaml:"clues"`
	Constraints     []ConstraintDef `yaml:"constraints"`
}

type ItemRange struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

type ClueDef struct {
	Name       string   `yaml:"name"`
	Direction  string   `yaml:"direction"`
	Row        int      `yaml:"row"`
	Column     int      `yaml:"column"`
	Length     int      `yaml:"length"`
	Expression string   `yaml:"expression"`
	Generator  string   `yaml:"generator"`
	Values     []string `yaml:"values"`
}

type ConstraintDef struct {
	Name  string   `yaml:"name"`
	Kind  string   `yaml:"kind"`
	Clues []string `yaml:"clues"`
}

var generators = map[string]crossnum.Generator{
	"all":           generator.AllValues,
	"palindromes":   generator.Palindromes,
	"squares":       generator.Squares,
	"cubes":         generator.Cubes,
	"primes":        generator.Primes,
	"notPrimes":     generator.NotPrimes,
	"triangular":    generator.Triangular,
	"fibonacci":     generator.Fibonacci,
	"lucas":         generator.Lucas,
	"sumOfTwoCubes": generator.SumOfTwoCubes,
}

var predicates = map[string]func() crossnum.Predicate{
	"equal":       constraint.Equal,
	"product":     constraint.Product,
	"sum":         constraint.Sum,
	"difference":  constraint.Difference,
	"multipleOf":  constraint.MultipleOf,
	"ascending":   constraint.Ascending,
	"permutation": constraint.Permutation,
}

// Puzzle is a loaded, validated puzzle definition ready to solve.
type Puzzle struct {
	file  File
	clues []*crossnum.Clue
}

// Load parses and validates a YAML puzzle definition.
func Load(data []byte) (*Puzzle, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing puzzle: %w", err)
	}
	if file.Mode != "equation" && file.Mode != "constraint" {
		return nil, fmt.Errorf("mode must be %q or %q, got %q", "equation", "constraint", file.Mode)
	}

	clues := make([]*crossnum.Clue, 0, len(file.Clues))
	for _, def := range file.Clues {
		var options []crossnum.ClueOption
		switch {
		case def.Expression != "":
			exprs, err := equation.Parse(def.Expression)
			if err != nil {
				return nil, err
			}
			evaluators := make([]crossnum.Evaluator, len(exprs))
			for i, e := range exprs {
				evaluators[i] = e
			}
			options = append(options, crossnum.WithEvaluators(evaluators...))
		case def.Generator != "":
			gen, ok := generators[def.Generator]
			if !ok {
				return nil, fmt.Errorf("clue %q: unknown generator %q", def.Name, def.Generator)
			}
			options = append(options, crossnum.WithGenerator(gen))
		case len(def.Values) > 0:
			values := make([]crossnum.Value, len(def.Values))
			for i, v := range def.Values {
				values[i] = crossnum.Value(v)
			}
			options = append(options, crossnum.WithGenerator(generator.Known(values...)))
		}

		var across bool
		switch def.Direction {
		case "across":
			across = true
		case "down":
			across = false
		default:
			return nil, fmt.Errorf("clue %q: direction must be %q or %q, got %q", def.Name, "across", "down", def.Direction)
		}

		clue, err := crossnum.NewClue(crossnum.Identifier(def.Name), across,
			crossnum.Location{Row: def.Row, Column: def.Column}, def.Length, options...)
		if err != nil {
			return nil, err
		}
		clues = append(clues, clue)
	}

	return &Puzzle{file: file, clues: clues}, nil
}

// Clues returns the puzzle's clues in definition order.
func (p *Puzzle) Clues() []*crossnum.Clue {
	return p.clues
}

// Solve runs the solver named by the puzzle's mode and returns the
// outcome.
func (p *Puzzle) Solve(options ...solver.Option) (*crossnum.Result, error) {
	if p.file.ItemRange != nil {
		options = append(options, solver.WithItemRange(p.file.ItemRange.From, p.file.ItemRange.To))
	}
	if len(p.file.Items) > 0 {
		options = append(options, solver.WithItems(p.file.Items...))
	}
	if p.file.AllowDuplicates {
		options = append(options, solver.AllowDuplicates())
	}

	names := func(def ConstraintDef) []crossnum.Identifier {
		ids := make([]crossnum.Identifier, len(def.Clues))
		for i, name := range def.Clues {
			ids[i] = crossnum.Identifier(name)
		}
		return ids
	}

	if p.file.Mode == "equation" {
		s, err := solver.NewEquationSolver(p.clues, options...)
		if err != nil {
			return nil, err
		}
		for _, def := range p.file.Constraints {
			pred, ok := predicates[def.Kind]
			if !ok {
				return nil, fmt.Errorf("constraint %q: unknown kind %q", def.Name, def.Kind)
			}
			if err := s.AddConstraint(def.Name, pred(), names(def)...); err != nil {
				return nil, err
			}
		}
		return s.Solve()
	}

	s, err := solver.NewConstraintSolver(p.clues, options...)
	if err != nil {
		return nil, err
	}
	for _, def := range p.file.Constraints {
		pred, ok := predicates[def.Kind]
		if !ok {
			return nil, fmt.Errorf("constraint %q: unknown kind %q", def.Name, def.Kind)
		}
		if err := s.AddConstraint(def.Name, pred(), names(def)...); err != nil {
			return nil, err
		}
	}
	return s.Solve()
}
