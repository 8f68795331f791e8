// Package generator provides candidate-value generators for
// constraint-mode clues. All generators work in base 10 and bound
// their output by the clue's length.
package generator

import (
	"math"
	"strconv"

	"github.com/puzzle-framework/crossnum/pkg/crossnum"
)

// limits returns the half-open value range [min, max) of a clue's
// length. Lengths beyond int64 digit capacity yield an empty range.
func limits(c *crossnum.Clue) (int64, int64) {
	if c.Length() > 18 {
		return 0, 0
	}
	min := int64(1)
	for i := 1; i < c.Length(); i++ {
		min *= 10
	}
	return min, min * 10
}

func fromInt(n int64) crossnum.Candidate {
	return crossnum.Candidate{Value: crossnum.Value(strconv.FormatInt(n, 10))}
}

// AllValues yields every value fitting the clue's length.
func AllValues(c *crossnum.Clue) []crossnum.Candidate {
	min, max := limits(c)
	result := make([]crossnum.Candidate, 0, max-min)
	for n := min; n < max; n++ {
		result = append(result, fromInt(n))
	}
	return result
}

// Palindromes yields the palindromes of the clue's length.
func Palindromes(c *crossnum.Clue) []crossnum.Candidate {
	halfLength := (c.Length() + 1) / 2
	even := c.Length()%2 == 0
	lo := int64(1)
	for i := 1; i < halfLength; i++ {
		lo *= 10
	}
	var result []crossnum.Candidate
	for n := lo; n < lo*10; n++ {
		left := strconv.FormatInt(n, 10)
		right := reverse(left)
		if !even {
			right = right[1:]
		}
		result = append(result, crossnum.Candidate{Value: crossnum.Value(left + right)})
	}
	return result
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// Squares yields the perfect squares of the clue's length.
func Squares(c *crossnum.Clue) []crossnum.Candidate {
	return NthPower(2)(c)
}

// Cubes yields the perfect cubes of the clue's length.
func Cubes(c *crossnum.Clue) []crossnum.Candidate {
	return NthPower(3)(c)
}

// NthPower yields the perfect n-th powers of the clue's length.
func NthPower(n int) crossnum.Generator {
	return func(c *crossnum.Clue) []crossnum.Candidate {
		min, max := limits(c)
		var result []crossnum.Candidate
		for base := int64(1); ; base++ {
			v := intPow(base, n)
			if v < 0 || v >= max {
				return result
			}
			if v < min {
				continue
			}
			result = append(result, fromInt(v))
		}
	}
}

func intPow(base int64, n int) int64 {
	v := int64(1)
	for i := 0; i < n; i++ {
		if v > math.MaxInt64/base {
			return -1
		}
		v *= base
	}
	return v
}

// Primes yields the primes of the clue's length.
func Primes(c *crossnum.Clue) []crossnum.Candidate {
	return primeSplit(c, true)
}

// NotPrimes yields the composites (and 1) of the clue's length.
func NotPrimes(c *crossnum.Clue) []crossnum.Candidate {
	return primeSplit(c, false)
}

func primeSplit(c *crossnum.Clue, wantPrime bool) []crossnum.Candidate {
	min, max := limits(c)
	var result []crossnum.Candidate
	for n := min; n < max; n++ {
		if isPrime(n) == wantPrime {
			result = append(result, fromInt(n))
		}
	}
	return result
}

func isPrime(n int64) bool {
	if n < 2 {
		return false
	}
	for f := int64(2); f*f <= n; f++ {
		if n%f == 0 {
			return false
		}
	}
	return true
}

// SumOfTwoCubes yields values expressible as the sum of two positive
// cubes.
func SumOfTwoCubes(c *crossnum.Clue) []crossnum.Candidate {
	min, max := limits(c)
	sums := make(map[int64]struct{})
	for a := int64(1); a*a*a < max; a++ {
		for b := a; ; b++ {
			s := a*a*a + b*b*b
			if s >= max {
				break
			}
			if s >= min {
				sums[s] = struct{}{}
			}
		}
	}
	result := make([]crossnum.Candidate, 0, len(sums))
	for n := min; n < max; n++ {
		if _, ok := sums[n]; ok {
			result = append(result, fromInt(n))
		}
	}
	return result
}

// Triangular yields the triangular numbers of the clue's length.
func Triangular(c *crossnum.Clue) []crossnum.Candidate {
	return withinLimits(c, func(emit func(int64) bool) {
		for i := int64(1); ; i++ {
			if !emit(i * (i + 1) / 2) {
				return
			}
		}
	})
}

// Fibonacci yields the Fibonacci numbers of the clue's length.
func Fibonacci(c *crossnum.Clue) []crossnum.Candidate {
	return withinLimits(c, fibonacciLike(1, 2))
}

// Lucas yields the Lucas numbers of the clue's length.
func Lucas(c *crossnum.Clue) []crossnum.Candidate {
	return withinLimits(c, fibonacciLike(2, 1))
}

func fibonacciLike(a, b int64) func(emit func(int64) bool) {
	return func(emit func(int64) bool) {
		for {
			if !emit(a) {
				return
			}
			a, b = b, a+b
		}
	}
}

// withinLimits filters a monotonically increasing stream to the
// clue's value range.
func withinLimits(c *crossnum.Clue, stream func(emit func(int64) bool)) []crossnum.Candidate {
	min, max := limits(c)
	var result []crossnum.Candidate
	stream(func(v int64) bool {
		if v >= max {
			return false
		}
		if v >= min {
			result = append(result, fromInt(v))
		}
		return true
	})
	return result
}

// Known yields a fixed set of already known values.
func Known(values ...crossnum.Value) crossnum.Generator {
	return func(_ *crossnum.Clue) []crossnum.Candidate {
		result := make([]crossnum.Candidate, len(values))
		for i, v := range values {
			result[i] = crossnum.Candidate{Value: v}
		}
		return result
	}
}

// KnownTagged yields a fixed set of candidates carrying provenance
// tags.
func KnownTagged(candidates ...crossnum.Candidate) crossnum.Generator {
	return func(_ *crossnum.Clue) []crossnum.Candidate {
		return candidates
	}
}

// Permutations yields every non-repeating arrangement of alphabet
// characters of the clue's length.
func Permutations(alphabet string) crossnum.Generator {
	return func(c *crossnum.Clue) []crossnum.Candidate {
		var result []crossnum.Candidate
		chars := []byte(alphabet)
		taken := make([]bool, len(chars))
		value := make([]byte, c.Length())
		var rec func(i int)
		rec = func(i int) {
			if i == len(value) {
				result = append(result, crossnum.Candidate{Value: crossnum.Value(string(value))})
				return
			}
			for j, ch := range chars {
				if taken[j] {
					continue
				}
				taken[j] = true
				value[i] = ch
				rec(i + 1)
				taken[j] = false
			}
		}
		if c.Length() <= len(chars) {
			rec(0)
		}
		return result
	}
}

// Filtered restricts AllValues to values whose integer form passes
// the predicate.
func Filtered(pred func(n int64) bool) crossnum.Generator {
	return func(c *crossnum.Clue) []crossnum.Candidate {
		min, max := limits(c)
		var result []crossnum.Candidate
		for n := min; n < max; n++ {
			if pred(n) {
				result = append(result, fromInt(n))
			}
		}
		return result
	}
}
