package solver_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/puzzle-framework/crossnum/pkg/crossnum"
	"github.com/puzzle-framework/crossnum/pkg/crossnum/constraint"
	"github.com/puzzle-framework/crossnum/pkg/crossnum/equation"
	"github.com/puzzle-framework/crossnum/pkg/crossnum/generator"
	"github.com/puzzle-framework/crossnum/pkg/crossnum/solver"
)

func TestSolver(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Solver Suite")
}

func at(row, column int) crossnum.Location {
	return crossnum.Location{Row: row, Column: column}
}

// selectRecorder notes the order in which clues are selected.
type selectRecorder struct {
	crossnum.DefaultTracer
	selections []crossnum.Identifier
}

func (r *selectRecorder) Select(_ int, clue crossnum.Identifier, _ string) {
	r.selections = append(r.selections, clue)
}

var _ = Describe("EquationSolver", func() {
	newCrossingPuzzle := func(options ...solver.Option) *solver.EquationSolver {
		clues := []*crossnum.Clue{
			crossnum.MustClue("1a", true, at(1, 1), 2,
				crossnum.WithEvaluators(equation.Evaluators("A*B")...)),
			crossnum.MustClue("1d", false, at(1, 1), 2,
				crossnum.WithEvaluators(equation.Evaluators("A+B")...)),
		}
		s, err := solver.NewEquationSolver(clues, append([]solver.Option{solver.WithItemRange(1, 9)}, options...)...)
		Expect(err).ToNot(HaveOccurred())
		return s
	}

	It("solves a crossing puzzle", func() {
		s := newCrossingPuzzle()
		result, err := s.Solve()
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Found).To(BeTrue())
		Expect(result.Solution.Values).To(Equal(map[crossnum.Identifier]crossnum.Value{
			"1a": "16",
			"1d": "10",
		}))
		Expect(result.Solution.Letters).To(Equal(crossnum.Binding{'A': 2, 'B': 8}))
		Expect(result.Steps).To(BeNumerically(">", 0))
	})

	It("reports the accepted solution exactly once", func() {
		var reported []*crossnum.Solution
		s := newCrossingPuzzle(solver.OnSolution(func(s *crossnum.Solution) {
			reported = append(reported, s)
		}))
		result, err := s.Solve()
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Found).To(BeTrue())
		Expect(reported).To(HaveLen(1))
		Expect(reported[0]).To(Equal(result.Solution))
	})

	It("keeps searching past rejected assignments", func() {
		s := newCrossingPuzzle(solver.WithAccept(func(s *crossnum.Solution) bool {
			return s.Letters['A'] > 2
		}))
		result, err := s.Solve()
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Found).To(BeTrue())
		Expect(result.Solution.Letters['A']).To(BeNumerically(">", 2))
	})

	It("reports exhaustion as a normal outcome", func() {
		clues := []*crossnum.Clue{
			crossnum.MustClue("1a", true, at(1, 1), 3,
				crossnum.WithEvaluators(equation.Evaluators("A+B")...)),
		}
		s, err := solver.NewEquationSolver(clues, solver.WithItemRange(1, 9))
		Expect(err).ToNot(HaveOccurred())
		result, err := s.Solve()
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Found).To(BeFalse())
		Expect(result.Solution).To(BeNil())
	})

	It("checks relational constraints", func() {
		single := func(name crossnum.Identifier, row int, letter string) *crossnum.Clue {
			return crossnum.MustClue(name, true, at(row, 1), 1,
				crossnum.WithEvaluators(equation.Evaluators(letter)...))
		}
		clues := []*crossnum.Clue{single("a", 1, "A"), single("b", 3, "B"), single("c", 5, "C")}
		s, err := solver.NewEquationSolver(clues, solver.WithItemRange(1, 9))
		Expect(err).ToNot(HaveOccurred())
		Expect(s.AddConstraint("product", constraint.Product(), "c", "a", "b")).To(Succeed())

		result, err := s.Solve()
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Found).To(BeTrue())
		Expect(result.Solution.Values["c"]).To(Equal(crossnum.Value("6")))
		Expect(result.Solution.Values["a"]).To(Equal(crossnum.Value("2")))
		Expect(result.Solution.Values["b"]).To(Equal(crossnum.Value("3")))
	})

	It("rejects constraints over unknown clue names", func() {
		s := newCrossingPuzzle()
		err := s.AddConstraint("bad", constraint.Equal(), "1a", "9d")
		Expect(err).To(MatchError(crossnum.UnknownClueError("9d")))
	})

	It("lets letters repeat up to the configured multiplicity", func() {
		clues := []*crossnum.Clue{
			crossnum.MustClue("a", true, at(1, 1), 2,
				crossnum.WithEvaluators(equation.Evaluators("10A+B")...)),
		}
		s, err := solver.NewEquationSolver(clues,
			solver.WithItems(7),
			solver.WithRepeatedLetters(2),
		)
		Expect(err).ToNot(HaveOccurred())
		result, err := s.Solve()
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Found).To(BeTrue())
		Expect(result.Solution.Values["a"]).To(Equal(crossnum.Value("77")))
	})

	It("solves deterministically under a seeded random tie-break", func() {
		run := func() *crossnum.Result {
			s := newCrossingPuzzle(solver.WithRandomTieBreak(42))
			result, err := s.Solve()
			Expect(err).ToNot(HaveOccurred())
			return result
		}
		first, second := run(), run()
		Expect(first.Found).To(BeTrue())
		Expect(second.Solution).To(Equal(first.Solution))
		Expect(second.Steps).To(Equal(first.Steps))
	})
})

var _ = Describe("ConstraintSolver", func() {
	newProductPuzzle := func(options ...solver.Option) *solver.ConstraintSolver {
		clues := []*crossnum.Clue{
			crossnum.MustClue("a1", true, at(1, 1), 2,
				crossnum.WithGenerator(generator.Known("12", "15", "16"))),
			crossnum.MustClue("d1", false, at(3, 1), 1,
				crossnum.WithGenerator(generator.Known("3", "4"))),
			crossnum.MustClue("d2", false, at(5, 1), 1,
				crossnum.WithGenerator(generator.AllValues)),
		}
		s, err := solver.NewConstraintSolver(clues, options...)
		Expect(err).ToNot(HaveOccurred())
		Expect(s.AddConstraint("product", constraint.Product(), "a1", "d1", "d2")).To(Succeed())
		return s
	}

	It("narrows candidate sets through constraints", func() {
		s := newProductPuzzle()
		result, err := s.Solve()
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Found).To(BeTrue())
		Expect(result.Solution.Values).To(Equal(map[crossnum.Identifier]crossnum.Value{
			"a1": "12",
			"d1": "3",
			"d2": "4",
		}))
	})

	It("honors forced start clues", func() {
		tracer := &selectRecorder{}
		s := newProductPuzzle(
			solver.WithStartClues("d2"),
			solver.WithTracer(tracer),
		)
		result, err := s.Solve()
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Found).To(BeTrue())
		Expect(tracer.selections[0]).To(Equal(crossnum.Identifier("d2")))
	})

	It("rejects unknown start clue names", func() {
		clues := []*crossnum.Clue{
			crossnum.MustClue("a", true, at(1, 1), 1,
				crossnum.WithGenerator(generator.Known("5"))),
		}
		_, err := solver.NewConstraintSolver(clues, solver.WithStartClues("zz"))
		Expect(err).To(MatchError(crossnum.UnknownClueError("zz")))
	})

	It("applies single-clue filters at seed time", func() {
		clues := []*crossnum.Clue{
			crossnum.MustClue("a", true, at(1, 1), 1,
				crossnum.WithGenerator(generator.AllValues)),
		}
		s, err := solver.NewConstraintSolver(clues)
		Expect(err).ToNot(HaveOccurred())
		Expect(s.AddFilter("a", func(v crossnum.Value) bool { return v == "7" })).To(Succeed())

		result, err := s.Solve()
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Found).To(BeTrue())
		Expect(result.Solution.Values["a"]).To(Equal(crossnum.Value("7")))
	})

	It("carries candidate tags into the solution", func() {
		clues := []*crossnum.Clue{
			crossnum.MustClue("a", true, at(1, 1), 2,
				crossnum.WithGenerator(generator.KnownTagged(
					crossnum.Candidate{Value: "21", Tag: "3*7"},
				))),
		}
		s, err := solver.NewConstraintSolver(clues)
		Expect(err).ToNot(HaveOccurred())

		result, err := s.Solve()
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Found).To(BeTrue())
		Expect(result.Solution.Tags).To(HaveKeyWithValue(crossnum.Identifier("a"), "3*7"))
	})

	It("applies the acceptance check to complete assignments", func() {
		clues := []*crossnum.Clue{
			crossnum.MustClue("a", true, at(1, 1), 1,
				crossnum.WithGenerator(generator.Known("1", "2", "3"))),
		}
		s, err := solver.NewConstraintSolver(clues, solver.WithAccept(func(s *crossnum.Solution) bool {
			return s.Values["a"] == "2"
		}))
		Expect(err).ToNot(HaveOccurred())

		result, err := s.Solve()
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Found).To(BeTrue())
		Expect(result.Solution.Values["a"]).To(Equal(crossnum.Value("2")))
	})
})
