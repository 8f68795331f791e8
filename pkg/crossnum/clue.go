package crossnum

// Clue is a named run of grid cells with an associated
// value-determination rule: either one or more expression evaluators
// (equation mode) or a candidate generator (constraint mode).
//
// All fields are fixed at construction; a Clue is read-only during
// search and may be shared between runs.
type Clue struct {
	name       Identifier
	across     bool
	base       Location
	length     int
	locations  []Location
	evaluators []Evaluator
	generator  Generator
	context    any
}

// ClueOption configures a Clue under construction.
type ClueOption func(c *Clue)

// WithLocations supplies the covered cells explicitly, for
// non-rectilinear grids. The base location and length arguments of
// NewClue are ignored in favor of the given cells.
func WithLocations(locations ...Location) ClueOption {
	return func(c *Clue) {
		c.locations = locations
	}
}

// WithEvaluators attaches expression evaluators. A clue with more
// than one evaluator holds twins: independent search units whose
// results must agree.
func WithEvaluators(evaluators ...Evaluator) ClueOption {
	return func(c *Clue) {
		c.evaluators = evaluators
	}
}

// WithGenerator attaches the candidate generator used in constraint
// mode.
func WithGenerator(g Generator) ClueOption {
	return func(c *Clue) {
		c.generator = g
	}
}

// WithContext attaches arbitrary caller data retrievable with
// Context.
func WithContext(context any) ClueOption {
	return func(c *Clue) {
		c.context = context
	}
}

// NewClue builds a clue covering length cells starting at base,
// running right when across is true and down otherwise. Malformed
// geometry (non-positive length, repeated cells, base/length
// disagreeing with explicit locations) is rejected here, before any
// search can begin.
func NewClue(name Identifier, across bool, base Location, length int, options ...ClueOption) (*Clue, error) {
	c := &Clue{
		name:   name,
		across: across,
		base:   base,
		length: length,
	}
	for _, option := range options {
		option(c)
	}

	if c.locations == nil {
		if c.length <= 0 {
			return nil, &GeometryError{Clue: name, Reason: "length must be positive"}
		}
		c.locations = make([]Location, c.length)
		for i := 0; i < c.length; i++ {
			if c.across {
				c.locations[i] = Location{Row: base.Row, Column: base.Column + i}
			} else {
				c.locations[i] = Location{Row: base.Row + i, Column: base.Column}
			}
		}
	} else {
		if len(c.locations) == 0 {
			return nil, &GeometryError{Clue: name, Reason: "empty location list"}
		}
		c.base = c.locations[0]
		c.length = len(c.locations)
	}

	seen := make(map[Location]struct{}, len(c.locations))
	for _, loc := range c.locations {
		if loc.Row < 1 || loc.Column < 1 {
			return nil, &GeometryError{Clue: name, Reason: "locations are 1-indexed"}
		}
		if _, ok := seen[loc]; ok {
			return nil, &GeometryError{Clue: name, Reason: "repeated location " + loc.String()}
		}
		seen[loc] = struct{}{}
	}

	if c.generator != nil && len(c.evaluators) > 0 {
		return nil, &GeometryError{Clue: name, Reason: "clue has both evaluators and a generator"}
	}

	return c, nil
}

// MustClue is NewClue for statically known inputs; it panics on
// construction errors.
func MustClue(name Identifier, across bool, base Location, length int, options ...ClueOption) *Clue {
	c, err := NewClue(name, across, base, length, options...)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the clue's unique identifier.
func (c *Clue) Name() Identifier {
	return c.name
}

// Across reports the clue orientation.
func (c *Clue) Across() bool {
	return c.across
}

// Base returns the clue's first cell.
func (c *Clue) Base() Location {
	return c.base
}

// Length returns the number of cells the clue covers.
func (c *Clue) Length() int {
	return c.length
}

// Locations returns the covered cells in order. Callers must not
// mutate the returned slice.
func (c *Clue) Locations() []Location {
	return c.locations
}

// Location returns the i-th covered cell.
func (c *Clue) Location(i int) Location {
	return c.locations[i]
}

// Evaluators returns the clue's expression evaluators, if any.
func (c *Clue) Evaluators() []Evaluator {
	return c.evaluators
}

// Generator returns the clue's candidate generator, or nil.
func (c *Clue) Generator() Generator {
	return c.generator
}

// Context returns the data attached with WithContext.
func (c *Clue) Context() any {
	return c.context
}

func (c *Clue) String() string {
	return "<Clue " + string(c.name) + ">"
}
