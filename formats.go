package fixed

// Predefined formats. The name is q<total bits>, optionally followed by
// b<fractional bits> when the split differs from the default one.

// Q8 has 3 integer bits (including the sign) and 5 fractional bits.
// Its range is [-4, 3.96875].
type Q8 int8

// Q16 has 4 integer bits and 12 fractional bits.
// Its range is [-8, 7.999755859375].
type Q16 int16

// Q32 has 7 integer bits and 25 fractional bits.
// Its range is [-64, 64).
type Q32 int32

// Q32b16 has 16 integer bits and 16 fractional bits.
type Q32b16 int32

func (Q8) FracBits() uint     { return 5 }
func (Q16) FracBits() uint    { return 12 }
func (Q32) FracBits() uint    { return 25 }
func (Q32b16) FracBits() uint { return 16 }

func (x Q8) String() string     { return String(x) }
func (x Q16) String() string    { return String(x) }
func (x Q32) String() string    { return String(x) }
func (x Q32b16) String() string { return String(x) }
