// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixed_test

import (
	"fmt"

	"github.com/avdva/fixedpoint"
)

// Q12b4 is a custom 16-bit format with 4 fractional bits.
type Q12b4 int16

func (Q12b4) FracBits() uint { return 4 }

func Example() {
	x := fixed.MustFromFloat64[fixed.Q32](1.5)
	y := fixed.FromInt[fixed.Q32](2)
	fmt.Printf("%s * %s = %s\n", x, y, fixed.Mul(x, y))
	fmt.Printf("%s / %s = %s\n", x, y, fixed.DivInvNewton(x, y, 16))
	fmt.Printf("1 / %s = %s\n", y, fixed.InvNewton(y, 16))

	q, err := fixed.Ratio[fixed.Q16](3, 4, 16)
	if err != nil {
		panic(err)
	}
	fmt.Printf("3/4 as Q16 = %s, raw = %d\n", q, int16(q))

	c := fixed.MustFromFloat64[Q12b4](2.75)
	fmt.Printf("custom format: %s, int bits = %d, raw = %d\n", fixed.String(c), fixed.IntBits[Q12b4](), c)

	// Output:
	// 1.5 * 2 = 3
	// 1.5 / 2 = 0.75
	// 1 / 2 = 0.5
	// 3/4 as Q16 = 0.75, raw = 3072
	// custom format: 2.75, int bits = 12, raw = 44
}
