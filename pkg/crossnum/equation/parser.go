// Package equation parses clue expressions into evaluators.
//
// The grammar covers single-letter variables, integer literals,
// addition, subtraction (ASCII hyphen, en-dash or minus sign),
// multiplication, exact-fraction division, juxtaposition as
// multiplication, unary minus, exponentiation with ^ or **, postfix
// factorial, and parentheses. An equals sign splits the expression
// into twin evaluators.
package equation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/puzzle-framework/crossnum/pkg/crossnum"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLetter
	tokNumber
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPow
	tokBang
	tokLParen
	tokRParen
	tokEquals
)

type token struct {
	kind tokenKind
	text string
}

// SyntaxError reports an expression that does not parse.
type SyntaxError struct {
	Expression string
	Offset     int
	Reason     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parsing %q at offset %d: %s", e.Expression, e.Offset, e.Reason)
}

func lex(src string) ([]token, error) {
	var tokens []token
	runes := []rune(src)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == ' ' || r == '\t' || r == '\n':
			i++
		case r >= '0' && r <= '9':
			j := i
			for j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
				j++
			}
			tokens = append(tokens, token{tokNumber, string(runes[i:j])})
			i = j
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			tokens = append(tokens, token{tokLetter, string(r)})
			i++
		case r == '+':
			tokens = append(tokens, token{tokPlus, "+"})
			i++
		case r == '-' || r == '–' || r == '−':
			tokens = append(tokens, token{tokMinus, "-"})
			i++
		case r == '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				tokens = append(tokens, token{tokPow, "**"})
				i += 2
			} else {
				tokens = append(tokens, token{tokStar, "*"})
				i++
			}
		case r == '^':
			tokens = append(tokens, token{tokPow, "^"})
			i++
		case r == '/':
			tokens = append(tokens, token{tokSlash, "/"})
			i++
		case r == '!':
			tokens = append(tokens, token{tokBang, "!"})
			i++
		case r == '(':
			tokens = append(tokens, token{tokLParen, "("})
			i++
		case r == ')':
			tokens = append(tokens, token{tokRParen, ")"})
			i++
		case r == '=':
			tokens = append(tokens, token{tokEquals, "="})
			i++
		default:
			return nil, &SyntaxError{Expression: src, Offset: i, Reason: fmt.Sprintf("illegal character %q", r)}
		}
	}
	return append(tokens, token{tokEOF, ""}), nil
}

type parser struct {
	src    string
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) fail(reason string) error {
	return &SyntaxError{Expression: p.src, Offset: p.pos, Reason: reason}
}

// Parse compiles an expression into its evaluators: one per side of
// each equals sign.
func Parse(expression string) ([]*Expr, error) {
	tokens, err := lex(expression)
	if err != nil {
		return nil, err
	}
	p := &parser{src: expression, tokens: tokens}
	var result []*Expr
	for {
		root, err := p.expr()
		if err != nil {
			return nil, err
		}
		result = append(result, newExpr(expression, root))
		switch p.peek().kind {
		case tokEquals:
			p.next()
		case tokEOF:
			return result, nil
		default:
			return nil, p.fail(fmt.Sprintf("unexpected %q", p.peek().text))
		}
	}
}

// ParseOne compiles an expression containing no equals sign into a
// single evaluator.
func ParseOne(expression string) (*Expr, error) {
	exprs, err := Parse(expression)
	if err != nil {
		return nil, err
	}
	if len(exprs) != 1 {
		return nil, &SyntaxError{Expression: expression, Reason: "expression contains an equals sign"}
	}
	return exprs[0], nil
}

// MustParse is Parse for statically known expressions; it panics on
// syntax errors.
func MustParse(expression string) []*Expr {
	exprs, err := Parse(expression)
	if err != nil {
		panic(err)
	}
	return exprs
}

// Evaluators adapts MustParse to the crossnum.Evaluator slice a Clue
// expects.
func Evaluators(expression string) []crossnum.Evaluator {
	exprs := MustParse(expression)
	result := make([]crossnum.Evaluator, len(exprs))
	for i, e := range exprs {
		result[i] = e
	}
	return result
}

// expr := mult {('+'|'-') mult}
func (p *parser) expr() (node, error) {
	left, err := p.mult()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.next()
			right, err := p.mult()
			if err != nil {
				return nil, err
			}
			left = &binaryNode{op: opAdd, left: left, right: right}
		case tokMinus:
			p.next()
			right, err := p.mult()
			if err != nil {
				return nil, err
			}
			left = &binaryNode{op: opSub, left: left, right: right}
		default:
			return left, nil
		}
	}
}

// mult := just {('*'|'/') just}
func (p *parser) mult() (node, error) {
	left, err := p.just()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokStar:
			p.next()
			right, err := p.just()
			if err != nil {
				return nil, err
			}
			left = &binaryNode{op: opMul, left: left, right: right}
		case tokSlash:
			p.next()
			right, err := p.just()
			if err != nil {
				return nil, err
			}
			left = &binaryNode{op: opDiv, left: left, right: right}
		default:
			return left, nil
		}
	}
}

// just := neg {expt}; juxtaposed factors multiply.
func (p *parser) just() (node, error) {
	left, err := p.neg()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokLetter, tokNumber, tokLParen:
			right, err := p.expt()
			if err != nil {
				return nil, err
			}
			left = &binaryNode{op: opMul, left: left, right: right}
		default:
			return left, nil
		}
	}
}

// neg := '-' neg | expt
func (p *parser) neg() (node, error) {
	if p.peek().kind == tokMinus {
		p.next()
		child, err := p.neg()
		if err != nil {
			return nil, err
		}
		return &negNode{child: child}, nil
	}
	return p.expt()
}

// expt := fact ['^' neg]; the exponent binds a following unary
// minus, making exponentiation right-associative through neg.
func (p *parser) expt() (node, error) {
	base, err := p.fact()
	if err != nil {
		return nil, err
	}
	if p.peek().kind == tokPow {
		p.next()
		exponent, err := p.neg()
		if err != nil {
			return nil, err
		}
		return &powNode{base: base, exponent: exponent}, nil
	}
	return base, nil
}

// fact := atom {'!'}
func (p *parser) fact() (node, error) {
	child, err := p.atom()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokBang {
		p.next()
		child = &factNode{child: child}
	}
	return child, nil
}

// atom := NUMBER | LETTER | '(' expr ')'
func (p *parser) atom() (node, error) {
	switch t := p.peek(); t.kind {
	case tokNumber:
		p.next()
		return newNumberNode(t.text)
	case tokLetter:
		p.next()
		return &letterNode{letter: crossnum.Letter([]rune(t.text)[0])}, nil
	case tokLParen:
		p.next()
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, p.fail("expected )")
		}
		p.next()
		return inner, nil
	case tokEOF:
		return nil, p.fail("unexpected end of expression")
	default:
		return nil, p.fail(fmt.Sprintf("unexpected %q", t.text))
	}
}

func newExpr(src string, root node) *Expr {
	seen := make(map[crossnum.Letter]struct{})
	collectVars(root, seen)
	vars := make([]crossnum.Letter, 0, len(seen))
	for l := range seen {
		vars = append(vars, l)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	return &Expr{src: strings.TrimSpace(src), root: root, vars: vars}
}

func collectVars(n node, seen map[crossnum.Letter]struct{}) {
	switch n := n.(type) {
	case *letterNode:
		seen[n.letter] = struct{}{}
	case *binaryNode:
		collectVars(n.left, seen)
		collectVars(n.right, seen)
	case *negNode:
		collectVars(n.child, seen)
	case *powNode:
		collectVars(n.base, seen)
		collectVars(n.exponent, seen)
	case *factNode:
		collectVars(n.child, seen)
	}
}
