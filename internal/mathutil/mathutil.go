package mathutil

import (
	"math/bits"
	"unsafe"
)

// BinaryDigits returns the number of bits needed to represent value,
// which is the 1-based index of its most significant set bit. Returns 0 for 0.
func BinaryDigits(value uint64) int {
	return int(8*unsafe.Sizeof(uint64(0))) - bits.LeadingZeros64(value)
}

func AbsInt64(val int64) int64 {
	mask := val >> (unsafe.Sizeof(int64(0))*8 - 1)
	return (val + mask) ^ mask
}

// Magnitude returns |val| as an unsigned number.
// Unlike AbsInt64 it is exact for math.MinInt64.
func Magnitude(val int64) uint64 {
	return uint64(AbsInt64(val))
}

func SameSign(a, b int64) bool {
	return (a>>63 ^ b>>63) == 0
}

func Int64Sign(v int64) int {
	if v == 0 {
		return 0
	}
	return [...]int{1, -1}[uint64(v)>>63]
}

// Shift multiplies v by 2^s. Negative s shifts right arithmetically,
// so the result is rounded towards negative infinity.
func Shift(v int64, s int) int64 {
	if s >= 0 {
		return v << uint(s)
	}
	return v >> uint(-s)
}

// MulQ multiplies two unsigned fixed-point numbers with frac fractional bits.
// The product is truncated. The caller must make sure it fits 64 bits.
func MulQ(a, b uint64, frac uint) uint64 {
	hi, lo := bits.Mul64(a, b)
	if frac == 0 {
		return lo
	}
	return hi<<(64-frac) | lo>>frac
}

// Rsh128 shifts a 128-bit number right by shift bits rounding half up.
// shift must be in [1, 127]; the result is truncated to 64 bits.
func Rsh128(hi, lo uint64, shift uint) uint64 {
	var carry uint64
	if shift <= 64 {
		lo, carry = bits.Add64(lo, 1<<(shift-1), 0)
	} else {
		hi += 1 << (shift - 65)
	}
	hi += carry
	if shift >= 64 {
		return hi >> (shift - 64)
	}
	return hi<<(64-shift) | lo>>shift
}
