// Package math provides numeric helpers used for capacity management.
package math

import "golang.org/x/exp/constraints"

// NumberInterface is a generic number interface for all number types.
type NumberInterface interface {
	constraints.Integer | constraints.Float
}

// Max calculates the maximum of two numbers.
func Max[T NumberInterface](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Min calculates the minimum of two numbers.
func Min[T NumberInterface](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// IsPowerOfTwo returns true if n is a positive power of two.
func IsPowerOfTwo[T constraints.Integer](n T) bool {
	return n > 0 && n&(n-1) == 0
}
