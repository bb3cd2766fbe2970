package fixed

import (
	"github.com/calebcase/oops"
	"golang.org/x/exp/constraints"

	mu "github.com/avdva/fixedpoint/internal/mathutil"
)

// Ratio returns a/b in T, refining the quotient with n Newton-Raphson iterations.
//
// Before dividing, both magnitudes are shifted so that their most significant
// bit lands on the units bit of T, and the quotient is shifted back afterwards.
// This keeps as many significant bits as T can hold, whatever the magnitudes of a and b.
// Low bits of operands wider than T's fraction are dropped. The quotient,
// shift included, is rounded to nearest once. With n >= 1 more iterations
// never give a worse result, unless the operands lost bits to the shift.
//
// Ratio returns ErrDivisionByZero if b is zero. If |a| > |b| the result may
// not fit T. In this case a warning is logged and the computation proceeds;
// the result wraps on overflow.
// T must have at least 2 integer bits.
func Ratio[T Fixed, I constraints.Signed](a, b I, n uint) (T, error) {
	if b == 0 {
		return 0, oops.Trace(ErrDivisionByZero)
	}
	ma, mb := mu.Magnitude(int64(a)), mu.Magnitude(int64(b))
	if ma > mb {
		Logger().Warn("ratio: numerator > denominator, overflow possible",
			"a", int64(a), "b", int64(b), "iterations", n)
	}
	if a == 0 {
		return 0, nil
	}
	f := int(FracBits[T]())
	shiftA := f - (MSBIndex(ma) - 1)
	shiftB := f - (MSBIndex(mb) - 1)
	aHat, bHat := scaleMagnitude(ma, shiftA), scaleMagnitude(mb, shiftB)
	// the shift back is part of the only rounding step.
	q := divMagnitude(aHat, bHat, n, f+shiftB-shiftA)
	return fromMagnitude[T](q, !mu.SameSign(int64(a), int64(b))), nil
}

// MustRatio is like Ratio, but panics on error.
func MustRatio[T Fixed, I constraints.Signed](a, b I, n uint) T {
	q, err := Ratio[T](a, b, n)
	if err != nil {
		panic(err)
	}
	return q
}

func scaleMagnitude(m uint64, shift int) uint64 {
	if shift >= 0 {
		return m << uint(shift)
	}
	return m >> uint(-shift)
}
