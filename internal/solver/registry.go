package solver

import (
	"strings"

	"github.com/puzzle-framework/crossnum/pkg/crossnum"
)

// Constraint is a registered n-ary predicate over typed clue
// handles, evaluated positionally.
type Constraint struct {
	name  string
	clues []*crossnum.Clue
	pred  crossnum.Predicate
}

func (c *Constraint) Name() string {
	return c.name
}

func (c *Constraint) Clues() []*crossnum.Clue {
	return c.clues
}

// holds evaluates the predicate against committed values. All member
// clues must be present in values.
func (c *Constraint) holds(values map[*crossnum.Clue]crossnum.Value) bool {
	args := make([]crossnum.Value, len(c.clues))
	for i, clue := range c.clues {
		args[i] = values[clue]
	}
	return c.pred(args...)
}

// Registry stores the relational constraints of one solver. Clue
// references are resolved to handles before registration, so lookup
// during search is pointer comparison only.
type Registry struct {
	all      []*Constraint
	byMember map[*crossnum.Clue][]*Constraint
}

func NewRegistry() *Registry {
	return &Registry{byMember: make(map[*crossnum.Clue][]*Constraint)}
}

// Add registers a constraint over the given clues. An empty name is
// derived from the member clue names.
func (r *Registry) Add(name string, pred crossnum.Predicate, clues ...*crossnum.Clue) *Constraint {
	if name == "" {
		parts := make([]string, len(clues))
		for i, clue := range clues {
			parts[i] = string(clue.Name())
		}
		name = strings.Join(parts, "-")
	}
	c := &Constraint{name: name, clues: clues, pred: pred}
	r.all = append(r.all, c)
	for _, clue := range clues {
		r.byMember[clue] = append(r.byMember[clue], c)
	}
	return c
}

// All returns every registered constraint in registration order.
func (r *Registry) All() []*Constraint {
	return r.all
}

// For returns the constraints that mention clue.
func (r *Registry) For(clue *crossnum.Clue) []*Constraint {
	return r.byMember[clue]
}
