package fixed

import (
	"math/bits"

	mu "github.com/avdva/fixedpoint/internal/mathutil"
)

// The reciprocal is refined in an unsigned Q4.60 accumulator,
// which is wide enough for every supported format.
const (
	newtonFrac = 60
	newtonTwo  = uint64(2) << newtonFrac

	// initial estimate y0 = 48/17 - 32/17*x, max relative error 1/17 for x in [0.5, 1).
	estimateA = uint64(48) << (newtonFrac - 2) / 17 << 2
	estimateB = uint64(32) << (newtonFrac - 2) / 17 << 2
)

// reciprocal returns 1/m as r * 2^(-newtonFrac-l), where l is the bit length of m.
// m must not be zero.
func reciprocal(m uint64, n uint) (r uint64, l int) {
	l = mu.BinaryDigits(m)
	// m / 2^l is in [0.5, 1)
	x := m << uint(newtonFrac-l)
	y := estimateA - mu.MulQ(estimateB, x, newtonFrac)
	for i := uint(0); i < n; i++ {
		// y = y * (2 - x*y)
		y = mu.MulQ(y, newtonTwo-mu.MulQ(x, y, newtonFrac), newtonFrac)
	}
	return y, l
}

// InvNewton returns 1/x computed with n Newton-Raphson iterations.
// Each iteration roughly doubles the number of correct bits, starting from
// about 4 bits for n == 0. The result is rounded to the nearest value of T
// and wraps if 1/x does not fit T.
// InvNewton panics with ErrDivisionByZero if x is zero.
func InvNewton[T Fixed](x T, n uint) T {
	if x == 0 {
		panic(ErrDivisionByZero)
	}
	f := int(FracBits[T]())
	r, l := reciprocal(mu.Magnitude(int64(x)), n)
	// in T's units 1/x = r * 2^(2f - l - newtonFrac)
	var q uint64
	if s := 2*f - l - newtonFrac; s >= 0 {
		q = r << uint(s)
	} else {
		q = mu.Rsh128(0, r, uint(-s))
	}
	return fromMagnitude[T](q, x < 0)
}

// DivInvNewton returns x/y as x multiplied by the reciprocal of y.
// The reciprocal is computed with n iterations, as in InvNewton, and is not
// rounded to T before the multiplication.
// DivInvNewton panics with ErrDivisionByZero if y is zero.
func DivInvNewton[T Fixed](x, y T, n uint) T {
	if y == 0 {
		panic(ErrDivisionByZero)
	}
	if x == 0 {
		return 0
	}
	q := divMagnitude(mu.Magnitude(int64(x)), mu.Magnitude(int64(y)), n, int(FracBits[T]()))
	return fromMagnitude[T](q, !mu.SameSign(int64(x), int64(y)))
}

// divMagnitude returns mx/my * 2^scale rounded to nearest, with the reciprocal
// of my refined by n iterations. my must not be zero. The result wraps at 64 bits.
func divMagnitude(mx, my uint64, n uint, scale int) uint64 {
	r, l := reciprocal(my, n)
	// mx/my = mx * r * 2^(-newtonFrac-l)
	hi, lo := bits.Mul64(mx, r)
	s := newtonFrac + l - scale
	if s <= 0 {
		return lo << uint(-s)
	}
	return mu.Rsh128(hi, lo, uint(s))
}
