// Package constraint provides ready-made relational predicates for
// registering with a solver. Values are compared as exact integers;
// a value that does not parse fails the predicate rather than
// erroring.
package constraint

import (
	"sort"
	"strconv"

	"github.com/puzzle-framework/crossnum/pkg/crossnum"
)

func ints(values []crossnum.Value) ([]int64, bool) {
	result := make([]int64, len(values))
	for i, v := range values {
		n, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return nil, false
		}
		result[i] = n
	}
	return result, true
}

// Equal holds when every value is identical.
func Equal() crossnum.Predicate {
	return func(values ...crossnum.Value) bool {
		for _, v := range values[1:] {
			if v != values[0] {
				return false
			}
		}
		return true
	}
}

// Product holds when the first value is the product of the rest.
func Product() crossnum.Predicate {
	return func(values ...crossnum.Value) bool {
		ns, ok := ints(values)
		if !ok {
			return false
		}
		product := int64(1)
		for _, n := range ns[1:] {
			product *= n
		}
		return ns[0] == product
	}
}

// Sum holds when the first value is the sum of the rest.
func Sum() crossnum.Predicate {
	return func(values ...crossnum.Value) bool {
		ns, ok := ints(values)
		if !ok {
			return false
		}
		sum := int64(0)
		for _, n := range ns[1:] {
			sum += n
		}
		return ns[0] == sum
	}
}

// Difference holds when the first value is the second minus the
// third.
func Difference() crossnum.Predicate {
	return func(values ...crossnum.Value) bool {
		ns, ok := ints(values)
		if !ok || len(ns) != 3 {
			return false
		}
		return ns[0] == ns[1]-ns[2]
	}
}

// MultipleOf holds when the first value is a multiple of the second.
func MultipleOf() crossnum.Predicate {
	return func(values ...crossnum.Value) bool {
		ns, ok := ints(values)
		if !ok || len(ns) != 2 || ns[1] == 0 {
			return false
		}
		return ns[0]%ns[1] == 0
	}
}

// Ascending holds when the values strictly increase numerically.
func Ascending() crossnum.Predicate {
	return func(values ...crossnum.Value) bool {
		ns, ok := ints(values)
		if !ok {
			return false
		}
		for i := 1; i < len(ns); i++ {
			if ns[i] <= ns[i-1] {
				return false
			}
		}
		return true
	}
}

// Permutation holds when every value uses the same multiset of
// digits.
func Permutation() crossnum.Predicate {
	return func(values ...crossnum.Value) bool {
		first := sortedDigits(values[0])
		for _, v := range values[1:] {
			if sortedDigits(v) != first {
				return false
			}
		}
		return true
	}
}

func sortedDigits(v crossnum.Value) string {
	digits := []byte(v)
	sort.Slice(digits, func(i, j int) bool { return digits[i] < digits[j] })
	return string(digits)
}
