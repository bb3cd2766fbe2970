package fixed

import (
	"math/big"

	"github.com/shopspring/decimal"
	xfixed "golang.org/x/image/math/fixed"

	mu "github.com/avdva/fixedpoint/internal/mathutil"
)

var five = big.NewInt(5)

// Decimal returns the exact decimal value of x.
// x / 2^f == x * 5^f / 10^f, so no rounding is involved.
func Decimal[T Fixed](x T) decimal.Decimal {
	f := FracBits[T]()
	m := new(big.Int).Exp(five, big.NewInt(int64(f)), nil)
	m.Mul(m, big.NewInt(int64(x)))
	return decimal.NewFromBigInt(m, -int32(f))
}

// String returns the exact decimal representation of x, without trailing zeros.
func String[T Fixed](x T) string {
	return Decimal(x).String()
}

// ToInt26_6 converts x to a 26.6 fixed-point number, as used by golang.org/x/image.
// Extra fractional bits are truncated towards negative infinity.
func ToInt26_6[T Fixed](x T) xfixed.Int26_6 {
	return xfixed.Int26_6(mu.Shift(int64(x), 6-int(FracBits[T]())))
}

// FromInt26_6 converts a 26.6 fixed-point number to T.
// The result wraps if v does not fit T.
func FromInt26_6[T Fixed](v xfixed.Int26_6) T {
	return T(mu.Shift(int64(v), int(FracBits[T]())-6))
}
