// Package math includes important helpers for Ethereum such as fast integer square roots.
package math

import (
	stdmath "math"
	"math/bits"

	"github.com/pkg/errors"
)

// ErrMulOverflow is returned when a multiplication does not fit in 64 bits.
var ErrMulOverflow = errors.New("multiplication overflows")

// IntegerSquareRoot defines a function that returns the
// largest possible integer root of a number.
func IntegerSquareRoot(n uint64) uint64 {
	x := uint64(stdmath.Sqrt(float64(n)))
	if x > stdmath.MaxUint32 {
		x = stdmath.MaxUint32
	}
	// float64 rounding may put the estimate one off in either direction.
	for x*x > n {
		x--
	}
	for x < stdmath.MaxUint32 && (x+1)*(x+1) <= n {
		x++
	}
	return x
}

// Mul64 multiples 2 64-bit unsigned integers and checks if they
// lead to an overflow. If they do not, it returns the result
// without an error.
func Mul64(a, b uint64) (uint64, error) {
	overflows, val := bits.Mul64(a, b)
	if overflows > 0 {
		return 0, ErrMulOverflow
	}
	return val, nil
}

// MulDiv returns a*b/c computed with a 128-bit intermediate product.
// c must be non-zero and the quotient must fit in 64 bits.
func MulDiv(a, b, c uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi >= c {
		return stdmath.MaxUint64
	}
	quo, _ := bits.Div64(hi, lo, c)
	return quo
}
