// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package qfloat implements a floating-point number built from an integer
// exponent and a fixed-point mantissa: value = 2^Base * Frac.
//
// Every Float returned by this package is normalized: either it is the
// canonical zero {0, 0}, or 1 <= |Frac| < 2. The exponent extends the range
// of the fixed-point format, the mantissa keeps its relative precision.
// Only integer operations are used, apart from float64 conversions.
//
// The mantissa format must have at least 3 integer bits (sign included),
// so that sums of two mantissas can be represented.
package qfloat

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/calebcase/oops"
	"github.com/shopspring/decimal"

	"github.com/avdva/fixedpoint"
	mu "github.com/avdva/fixedpoint/internal/mathutil"
)

// divIterations is the number of Newton-Raphson iterations used by Div.
const divIterations = 16

var (
	jsonParts = []string{`{"m":`, `,"e":`, `}`}
)

// Float is 2^Base * Frac.
type Float[T fixed.Fixed] struct {
	Base int
	Frac T
}

// FromFloat64 converts x to a Float.
// It returns fixed.ErrBadFloat for infinities and NaNs.
func FromFloat64[T fixed.Fixed](x float64) (Float[T], error) {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return Float[T]{}, oops.Trace(fixed.ErrBadFloat)
	}
	if x == 0 {
		return Float[T]{}, nil
	}
	// x = m * 2^e, 0.5 <= |m| < 1
	_, e := math.Frexp(x)
	base := e - 1
	frac, err := fixed.FromFloat64[T](math.Ldexp(x, -base))
	if err != nil {
		return Float[T]{}, err
	}
	// rounding may have produced |frac| == 2
	return normalize[T](base, int64(frac)), nil
}

// MustFromFloat64 is like FromFloat64, but panics on error.
func MustFromFloat64[T fixed.Fixed](x float64) Float[T] {
	f, err := FromFloat64[T](x)
	if err != nil {
		panic(err)
	}
	return f
}

// Float64 returns x as a float64.
func (x Float[T]) Float64() float64 {
	return math.Ldexp(fixed.Float64(x.Frac), x.Base)
}

// IsZero returns true if x is zero.
func (x Float[T]) IsZero() bool {
	return x.Frac == 0
}

// Constrain returns x normalized so that 1 <= |Frac| < 2, or the canonical zero.
func (x Float[T]) Constrain() Float[T] {
	return normalize[T](x.Base, int64(x.Frac))
}

// normalize brings frac, given in T's units, into [1, 2) adjusting base.
// The halving steps shift arithmetically, rounding towards negative infinity.
func normalize[T fixed.Fixed](base int, frac int64) Float[T] {
	if frac == 0 {
		return Float[T]{}
	}
	f := int(fixed.FracBits[T]())
	one := int64(1) << uint(f)
	two := one << 1
	// jump close to the target using the bit length; arithmetic shifts
	// compose, so the loops below give the same result as shifting bit by bit.
	if l := fixed.MSBIndex(mu.Magnitude(frac)); l > f+1 {
		frac >>= uint(l - f - 1)
		base += l - f - 1
	} else if l < f+1 {
		frac <<= uint(f + 1 - l)
		base -= f + 1 - l
	}
	for mu.AbsInt64(frac) >= two {
		frac >>= 1
		base++
	}
	for mu.AbsInt64(frac) < one {
		frac <<= 1
		base--
	}
	return Float[T]{Base: base, Frac: T(frac)}
}

// Neg returns -x.
func (x Float[T]) Neg() Float[T] {
	return Float[T]{Base: x.Base, Frac: -x.Frac}
}

// Add returns x+y.
// The operand with the smaller exponent is shifted right to match the other one,
// so its bits below the resulting precision are lost.
// A zero operand, whatever its Base, returns the other operand normalized.
func (x Float[T]) Add(y Float[T]) Float[T] {
	return x.AddTraced(y, nil)
}

// AddTraced is like Add, but reports the intermediate values to trace.
// A nil trace is allowed.
func (x Float[T]) AddTraced(y Float[T], trace TraceFunc) Float[T] {
	if trace == nil {
		trace = nopTrace
	}
	hi, lo := y, x
	if x.Base > y.Base {
		hi, lo = x, y
	}
	trace(StageMax, hi.Base, int64(hi.Frac))
	trace(StageMin, lo.Base, int64(lo.Frac))

	var sum Float[T]
	switch {
	case x.IsZero():
		sum = y.Constrain()
	case y.IsZero():
		sum = x.Constrain()
	default:
		shift := hi.Base - lo.Base
		if shift > 63 {
			shift = 63
		}
		aligned := int64(lo.Frac) >> uint(shift)
		trace(StageAligned, hi.Base, aligned)
		s := int64(hi.Frac) + aligned
		trace(StageSum, hi.Base, s)
		sum = normalize[T](hi.Base, s)
	}
	trace(StageConstrained, sum.Base, int64(sum.Frac))
	return sum
}

// Sub returns x-y.
func (x Float[T]) Sub(y Float[T]) Float[T] {
	return x.Add(y.Neg())
}

// Mul returns x*y.
func (x Float[T]) Mul(y Float[T]) Float[T] {
	return normalize[T](x.Base+y.Base, fixed.MulRaw(x.Frac, y.Frac))
}

// Div returns x/y.
// Div panics with fixed.ErrDivisionByZero if y is zero.
func (x Float[T]) Div(y Float[T]) Float[T] {
	frac := fixed.DivInvNewton(x.Frac, y.Frac, divIterations)
	return normalize[T](x.Base-y.Base, int64(frac))
}

// Cmp compares two normalized values.
// Returns -1 if x < y, 0 if x == y, 1 if x > y
func (x Float[T]) Cmp(y Float[T]) int {
	sx, sy := mu.Int64Sign(int64(x.Frac)), mu.Int64Sign(int64(y.Frac))
	switch {
	case sx > sy:
		return 1
	case sx < sy:
		return -1
	case sx == 0:
		return 0
	case x.Base > y.Base:
		return sx
	case x.Base < y.Base:
		return -sx
	case x.Frac > y.Frac:
		return 1
	case x.Frac < y.Frac:
		return -1
	default:
		return 0
	}
}

// Decimal returns the exact value of x.
func (x Float[T]) Decimal() decimal.Decimal {
	// x = Frac * 2^e
	e := x.Base - int(fixed.FracBits[T]())
	m := big.NewInt(int64(x.Frac))
	if e >= 0 {
		return decimal.NewFromBigInt(m.Lsh(m, uint(e)), 0)
	}
	p := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-e)), nil)
	return decimal.NewFromBigInt(m.Mul(m, p), int32(e))
}

// String returns the exact decimal representation of x.
func (x Float[T]) String() string {
	return x.Decimal().String()
}

// GoString returns debug string representation.
func (x Float[T]) GoString() string {
	return x.String() + " {2^" + strconv.Itoa(x.Base) + " * " + fixed.String(x.Frac) + "}"
}

// MarshalJSON marshals x as its raw mantissa and exponent, like `{"m":50331648,"e":-3}`.
func (x Float[T]) MarshalJSON() ([]byte, error) {
	var builder strings.Builder
	builder.WriteString(jsonParts[0])
	builder.WriteString(strconv.FormatInt(int64(x.Frac), 10))
	builder.WriteString(jsonParts[1])
	builder.WriteString(strconv.Itoa(x.Base))
	builder.WriteString(jsonParts[2])
	return []byte(builder.String()), nil
}

// UnmarshalJSON unmarshals an object produced by MarshalJSON.
// The value is normalized. Mantissas out of T's range are rejected.
func (x *Float[T]) UnmarshalJSON(data []byte) error {
	d := struct {
		M int64
		E int
	}{}
	if err := json.Unmarshal(data, &d); err != nil {
		return oops.Trace(err)
	}
	if d.M > int64(fixed.MaxValue[T]()) || d.M < int64(fixed.MinValue[T]()) {
		return oops.Trace(fixed.ErrRange)
	}
	*x = normalize[T](d.E, d.M)
	return nil
}
