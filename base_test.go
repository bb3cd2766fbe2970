// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixed

import (
	"errors"
	"fmt"
	"math"
	"testing"

	of "github.com/robaho/fixed"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type q16b1 int16

func (q16b1) FracBits() uint { return 1 }

func TestLayout(t *testing.T) {
	a := assert.New(t)
	a.Equal(uint(8), Bits[Q8]())
	a.Equal(uint(3), IntBits[Q8]())
	a.Equal(uint(16), Bits[Q16]())
	a.Equal(uint(4), IntBits[Q16]())
	a.Equal(uint(32), Bits[Q32]())
	a.Equal(uint(7), IntBits[Q32]())
	a.Equal(uint(25), FracBits[Q32]())
	a.Equal(uint(16), IntBits[Q32b16]())
	a.Equal(uint(15), IntBits[q16b1]())

	a.Equal(Q8(32), One[Q8]())
	a.Equal(Q16(4096), One[Q16]())
	a.Equal(Q32(1<<25), One[Q32]())
	a.Equal(q16b1(2), One[q16b1]())

	a.Equal(Q8(math.MaxInt8), MaxValue[Q8]())
	a.Equal(Q8(math.MinInt8), MinValue[Q8]())
	a.Equal(Q32(math.MaxInt32), MaxValue[Q32]())
	a.Equal(Q32(math.MinInt32), MinValue[Q32]())
}

func TestFromFloat64(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		f   float64
		v   Q32
		err error
	}{
		{0, 0, nil},
		{1, 1 << 25, nil},
		{1.5, 3 << 24, nil},
		{-1.5, -3 << 24, nil},
		{0.25, 1 << 23, nil},
		{math.Ldexp(1, -25), 1, nil},
		{math.Ldexp(1, -27), 0, nil},
		{math.Ldexp(3, -26), 2, nil},
		{63.5, 127 << 24, nil},
		{64, math.MaxInt32, ErrRange},
		{-64, math.MinInt32, nil},
		{-100, math.MinInt32, ErrRange},
		{math.Inf(1), 0, ErrBadFloat},
		{math.Inf(-1), 0, ErrBadFloat},
		{math.NaN(), 0, ErrBadFloat},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			v, err := FromFloat64[Q32](test.f)
			if test.err == nil {
				a.NoError(err)
			} else {
				a.True(errors.Is(err, test.err), "%v", err)
			}
			a.Equal(test.v, v)
		})
	}
	a.Panics(func() {
		MustFromFloat64[Q8](4)
	})
}

func TestRawFromFloat64(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		f               float64
		width, fracBits uint
		v               int64
		err             error
	}{
		{1.5, 32, 25, 3 << 24, nil},
		{-1.5, 8, 5, -48, nil},
		{1.5, 8, 7, 127, ErrRange},
		{-1.5, 8, 7, -128, ErrRange},
		{-1, 8, 7, -128, nil},
		{0.5, 24, 20, 1 << 19, nil},
		{math.NaN(), 16, 8, 0, ErrBadFloat},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			v, err := RawFromFloat64(test.f, test.width, test.fracBits)
			if test.err == nil {
				a.NoError(err)
			} else {
				a.True(errors.Is(err, test.err), "%v", err)
			}
			a.Equal(test.v, v)
		})
	}
}

func TestFloat64(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v Q16
		f float64
	}{
		{0, 0},
		{4096, 1},
		{-4096, -1},
		{1, 1.0 / 4096},
		{math.MaxInt16, 32767.0 / 4096},
		{math.MinInt16, -8},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.f, Float64(test.v))
			a.Equal(test.v, MustFromFloat64[Q16](test.f))
		})
	}
}

func TestFromInt(t *testing.T) {
	a := assert.New(t)
	a.Equal(Q32(3<<25), FromInt[Q32](3))
	a.Equal(Q32(-3<<25), FromInt[Q32](-3))
	a.Equal(Q32b16(1000<<16), FromInt[Q32b16](1000))
	a.Equal(Q8(-4<<5), FromInt[Q8](-4))
}

func TestMul(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		a, b, result float64
	}{
		{0, 0, 0},
		{1.5, 2, 3},
		{-1.5, 0.5, -0.75},
		{-1.5, -1.5, 2.25},
		{0.125, 0.125, 0.015625},
		{7.5, 8, 60},
		{1, math.Ldexp(1, -25), math.Ldexp(1, -25)},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			x, y := MustFromFloat64[Q32](test.a), MustFromFloat64[Q32](test.b)
			a.Equal(MustFromFloat64[Q32](test.result), Mul(x, y))
			a.Equal(MustFromFloat64[Q32](test.result), Mul(y, x))
			a.Equal(MustFromFloat64[Q32](test.result), SatMul(x, y))
		})
	}
}

func TestMulRounding(t *testing.T) {
	a := assert.New(t)
	// products are truncated towards negative infinity.
	a.Equal(Q8(0), Mul(Q8(1), Q8(1)))
	a.Equal(Q8(-1), Mul(Q8(-1), Q8(1)))
	a.Equal(Q8(-1), Mul(Q8(1), Q8(-1)))
	a.Equal(Q8(0), Mul(Q8(-1), Q8(-1)))
}

func TestMulOverflow(t *testing.T) {
	a := assert.New(t)
	three := FromInt[Q8](3)
	a.Equal(int64(288), MulRaw(three, three))
	a.Equal(Q8(32), Mul(three, three)) // 288 wraps to 32
	a.Equal(MaxValue[Q8](), SatMul(three, three))
	a.Equal(MinValue[Q8](), SatMul(three, -three))
	a.Equal(MaxValue[Q8](), SatMul(-three, -three))
}

func TestAbs(t *testing.T) {
	a := assert.New(t)
	a.Equal(Q16(0), Abs(Q16(0)))
	a.Equal(Q16(123), Abs(Q16(-123)))
	a.Equal(Q16(123), Abs(Q16(123)))
	a.Equal(MaxValue[Q16](), Abs(-MaxValue[Q16]()))
	a.Equal(MinValue[Q16](), Abs(MinValue[Q16]()))
}

func TestMSBIndex(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v   uint64
		res int
	}{
		{0, 0},
		{1, 1},
		{3, 2},
		{4, 3},
		{100, 7},
		{1 << 25, 26},
		{math.MaxUint32, 32},
		{math.MaxUint64, 64},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.res, MSBIndex(test.v))
		})
	}
}

func BenchmarkMulQ32(b *testing.B) {
	f0 := MustFromFloat64[Q32](12.9)
	f1 := MustFromFloat64[Q32](3.9)

	for i := 0; i < b.N; i++ {
		Mul(f0, f1)
	}
}

func BenchmarkMulOtherFixed(b *testing.B) {
	f0 := of.NewF(12.9)
	f1 := of.NewF(3.9)

	for i := 0; i < b.N; i++ {
		f0.Mul(f1)
	}
}

func BenchmarkMulDecimal(b *testing.B) {
	f0 := decimal.NewFromFloat(12.9)
	f1 := decimal.NewFromFloat(3.9)

	for i := 0; i < b.N; i++ {
		f0.Mul(f1)
	}
}

func BenchmarkDivInvNewtonQ32(b *testing.B) {
	f0 := MustFromFloat64[Q32](12.9)
	f1 := MustFromFloat64[Q32](3.9)

	for i := 0; i < b.N; i++ {
		DivInvNewton(f0, f1, 16)
	}
}

func BenchmarkDivOtherFixed(b *testing.B) {
	f0 := of.NewF(12.9)
	f1 := of.NewF(3.9)

	for i := 0; i < b.N; i++ {
		f0.Div(f1)
	}
}

func BenchmarkDivDecimal(b *testing.B) {
	f0 := decimal.NewFromFloat(12.9)
	f1 := decimal.NewFromFloat(3.9)

	for i := 0; i < b.N; i++ {
		f0.Div(f1)
	}
}
