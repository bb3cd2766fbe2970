// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package fixed implements binary fixed-point numbers.
//
// A format is a signed 8, 16 or 32-bit integer type with a FracBits method.
// A value x of such a type represents the real number x / 2^FracBits.
// Both the width and the split between integer and fractional bits are
// known at compile time, so a format is chosen by picking a type:
//
//	type Q16b8 int16
//
//	func (Q16b8) FracBits() uint { return 8 }
//
// Q8, Q16, Q32 and Q32b16 are predefined.
//
// Unless noted otherwise, all operations wrap on overflow in the same way
// as Go integer arithmetic does. Multiplication truncates the product
// towards negative infinity.
package fixed

import (
	"math"
	"unsafe"

	"github.com/calebcase/oops"

	mu "github.com/avdva/fixedpoint/internal/mathutil"
)

// Fixed is the constraint satisfied by all fixed-point formats.
type Fixed interface {
	~int8 | ~int16 | ~int32
	// FracBits returns the number of bits after the binary point.
	// It must be less than the width of the type.
	FracBits() uint
}

// Bits returns the total width of T in bits.
func Bits[T Fixed]() uint {
	return uint(unsafe.Sizeof(T(0)) * 8)
}

// FracBits returns the number of fractional bits of T.
func FracBits[T Fixed]() uint {
	var x T
	return x.FracBits()
}

// IntBits returns the number of integer bits of T, including the sign bit.
func IntBits[T Fixed]() uint {
	return Bits[T]() - FracBits[T]()
}

// One returns 1 in T. If T has a single integer bit, 1 is not
// representable and the result wraps to the minimum value.
func One[T Fixed]() T {
	return T(1) << FracBits[T]()
}

// MaxValue returns the largest value of T.
func MaxValue[T Fixed]() T {
	return T(maxRaw[T]())
}

// MinValue returns the smallest value of T.
func MinValue[T Fixed]() T {
	return T(minRaw[T]())
}

func maxRaw[T Fixed]() int64 {
	return 1<<(Bits[T]()-1) - 1
}

func minRaw[T Fixed]() int64 {
	return -1 << (Bits[T]() - 1)
}

// FromInt returns i as a fixed-point value.
func FromInt[T Fixed](i int) T {
	return T(i << FracBits[T]())
}

// FromFloat64 returns the value of T nearest to f.
// Values outside of T's range are saturated and ErrRange is returned
// along with the saturated value. Infinities and NaNs produce ErrBadFloat.
func FromFloat64[T Fixed](f float64) (T, error) {
	v, err := RawFromFloat64(f, Bits[T](), FracBits[T]())
	return T(v), err
}

// RawFromFloat64 is FromFloat64 for a format known only at run time:
// it returns the raw value nearest to f in a signed format of the given
// width with fracBits fractional bits. width must be in [1, 63].
func RawFromFloat64(f float64, width, fracBits uint) (int64, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, oops.Trace(ErrBadFloat)
	}
	hi, lo := int64(1)<<(width-1)-1, int64(-1)<<(width-1)
	v := math.Round(math.Ldexp(f, int(fracBits)))
	if v > float64(hi) {
		return hi, oops.Trace(ErrRange)
	}
	if v < float64(lo) {
		return lo, oops.Trace(ErrRange)
	}
	return int64(v), nil
}

// MustFromFloat64 is like FromFloat64, but panics on error.
func MustFromFloat64[T Fixed](f float64) T {
	x, err := FromFloat64[T](f)
	if err != nil {
		panic(err)
	}
	return x
}

// Float64 returns x as a float64. The conversion is exact.
func Float64[T Fixed](x T) float64 {
	return math.Ldexp(float64(x), -int(FracBits[T]()))
}

// MulRaw returns a*b in T's fixed-point units without truncating it to T's width.
func MulRaw[T Fixed](a, b T) int64 {
	return int64(a) * int64(b) >> FracBits[T]()
}

// Mul returns a*b. The result wraps if it does not fit T.
func Mul[T Fixed](a, b T) T {
	return T(MulRaw(a, b))
}

// SatMul returns a*b, clamped to T's range.
func SatMul[T Fixed](a, b T) T {
	p := MulRaw(a, b)
	if p > maxRaw[T]() {
		return MaxValue[T]()
	}
	if p < minRaw[T]() {
		return MinValue[T]()
	}
	return T(p)
}

// Abs returns |x|. Abs(MinValue) is MinValue.
func Abs[T Fixed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// MSBIndex returns the 1-based index of the most significant set bit of x,
// which is the number of bits x occupies. MSBIndex(0) is 0.
func MSBIndex(x uint64) int {
	return mu.BinaryDigits(x)
}

// fromMagnitude converts a non-negative magnitude into T, negating it if neg is set.
func fromMagnitude[T Fixed](m uint64, neg bool) T {
	v := int64(m)
	if neg {
		v = -v
	}
	return T(v)
}
