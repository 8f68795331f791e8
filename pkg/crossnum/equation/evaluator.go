package equation

import (
	"math/big"

	"github.com/puzzle-framework/crossnum/pkg/crossnum"
)

// Arithmetic guards. Expressions exceeding them are treated as not
// evaluable, like any other arithmetic fault.
const (
	maxFactorial   = 5000
	maxExponent    = 4096
	maxResultBits  = 1 << 16
	maxOperandBits = 1 << 16
)

// Expr is a compiled arithmetic expression implementing
// crossnum.Evaluator. Evaluation is exact: division produces
// rationals, and only results that are positive integers are
// admissible. Division by zero, factorials of non-integers or
// negatives, non-integral exponents, and oversized intermediates all
// yield "not evaluable" rather than an error.
type Expr struct {
	src  string
	vars []crossnum.Letter
	root node
}

// Vars returns the expression's letters, sorted.
func (e *Expr) Vars() []crossnum.Letter {
	return e.vars
}

// Evaluate computes the expression under the binding. The second
// return is false when the result is not a positive integer or an
// arithmetic fault occurred.
func (e *Expr) Evaluate(b crossnum.Binding) (crossnum.Value, bool) {
	result, ok := e.root.eval(b)
	if !ok || !result.IsInt() {
		return "", false
	}
	n := result.Num()
	if n.Sign() <= 0 {
		return "", false
	}
	return crossnum.Value(n.String()), true
}

func (e *Expr) String() string {
	return "<" + e.src + ">"
}

type node interface {
	eval(b crossnum.Binding) (*big.Rat, bool)
}

type numberNode struct {
	value *big.Rat
}

func newNumberNode(text string) (node, error) {
	value, ok := new(big.Rat).SetString(text)
	if !ok {
		return nil, &SyntaxError{Expression: text, Reason: "malformed number"}
	}
	return &numberNode{value: value}, nil
}

func (n *numberNode) eval(_ crossnum.Binding) (*big.Rat, bool) {
	return n.value, true
}

type letterNode struct {
	letter crossnum.Letter
}

func (n *letterNode) eval(b crossnum.Binding) (*big.Rat, bool) {
	v, ok := b[n.letter]
	if !ok {
		return nil, false
	}
	return new(big.Rat).SetInt64(int64(v)), true
}

type binaryOp int

const (
	opAdd binaryOp = iota
	opSub
	opMul
	opDiv
)

type binaryNode struct {
	op    binaryOp
	left  node
	right node
}

func (n *binaryNode) eval(b crossnum.Binding) (*big.Rat, bool) {
	left, ok := n.left.eval(b)
	if !ok {
		return nil, false
	}
	right, ok := n.right.eval(b)
	if !ok {
		return nil, false
	}
	if left.Num().BitLen() > maxOperandBits || right.Num().BitLen() > maxOperandBits {
		return nil, false
	}
	switch n.op {
	case opAdd:
		return new(big.Rat).Add(left, right), true
	case opSub:
		return new(big.Rat).Sub(left, right), true
	case opMul:
		return new(big.Rat).Mul(left, right), true
	default:
		if right.Sign() == 0 {
			return nil, false
		}
		return new(big.Rat).Quo(left, right), true
	}
}

type negNode struct {
	child node
}

func (n *negNode) eval(b crossnum.Binding) (*big.Rat, bool) {
	child, ok := n.child.eval(b)
	if !ok {
		return nil, false
	}
	return new(big.Rat).Neg(child), true
}

type powNode struct {
	base     node
	exponent node
}

func (n *powNode) eval(b crossnum.Binding) (*big.Rat, bool) {
	base, ok := n.base.eval(b)
	if !ok {
		return nil, false
	}
	exponent, ok := n.exponent.eval(b)
	if !ok {
		return nil, false
	}
	if !exponent.IsInt() || !exponent.Num().IsInt64() {
		return nil, false
	}
	e := exponent.Num().Int64()
	negative := e < 0
	if negative {
		e = -e
	}
	if e > maxExponent || int64(base.Num().BitLen()+base.Denom().BitLen()+1)*e > maxResultBits {
		return nil, false
	}
	exp := new(big.Int).SetInt64(e)
	num := new(big.Int).Exp(base.Num(), exp, nil)
	den := new(big.Int).Exp(base.Denom(), exp, nil)
	if negative {
		if num.Sign() == 0 {
			return nil, false
		}
		num, den = den, num
	}
	return new(big.Rat).SetFrac(num, den), true
}

type factNode struct {
	child node
}

func (n *factNode) eval(b crossnum.Binding) (*big.Rat, bool) {
	child, ok := n.child.eval(b)
	if !ok || !child.IsInt() {
		return nil, false
	}
	v := child.Num()
	if v.Sign() < 0 || !v.IsInt64() || v.Int64() > maxFactorial {
		return nil, false
	}
	result := new(big.Int).MulRange(1, v.Int64())
	return new(big.Rat).SetInt(result), true
}
