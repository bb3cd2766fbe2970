// Package cplx implements complex numbers over fixed-point formats.
//
// All operations inherit the overflow behaviour of package fixed:
// intermediate sums and products wrap.
package cplx

import (
	"fmt"

	"github.com/avdva/fixedpoint"
)

// divIterations is the number of Newton-Raphson iterations used by Div.
const divIterations = 20

// Complex is real + i*imag.
type Complex[T fixed.Fixed] struct {
	Real T
	Imag T
}

// New returns re + i*im.
func New[T fixed.Fixed](re, im T) Complex[T] {
	return Complex[T]{Real: re, Imag: im}
}

// FromComplex128 converts c to the nearest Complex in T.
// It fails, if either part is out of T's range or is not a finite number.
func FromComplex128[T fixed.Fixed](c complex128) (Complex[T], error) {
	re, err := fixed.FromFloat64[T](real(c))
	if err != nil {
		return Complex[T]{}, err
	}
	im, err := fixed.FromFloat64[T](imag(c))
	if err != nil {
		return Complex[T]{}, err
	}
	return New(re, im), nil
}

// MustFromComplex128 is like FromComplex128, but panics on error.
func MustFromComplex128[T fixed.Fixed](c complex128) Complex[T] {
	z, err := FromComplex128[T](c)
	if err != nil {
		panic(err)
	}
	return z
}

// Complex128 returns z as a complex128. The conversion is exact.
func (z Complex[T]) Complex128() complex128 {
	return complex(fixed.Float64(z.Real), fixed.Float64(z.Imag))
}

// String returns z in the form (re+imi).
func (z Complex[T]) String() string {
	im := fixed.String(z.Imag)
	if z.Imag >= 0 {
		im = "+" + im
	}
	return fmt.Sprintf("(%s%si)", fixed.String(z.Real), im)
}

// Conj returns the complex conjugate of z.
func (z Complex[T]) Conj() Complex[T] {
	return Complex[T]{z.Real, -z.Imag}
}

// Neg returns -z.
func (z Complex[T]) Neg() Complex[T] {
	return Complex[T]{-z.Real, -z.Imag}
}

// Add returns z+w.
func (z Complex[T]) Add(w Complex[T]) Complex[T] {
	return Complex[T]{z.Real + w.Real, z.Imag + w.Imag}
}

// Sub returns z-w.
func (z Complex[T]) Sub(w Complex[T]) Complex[T] {
	return Complex[T]{z.Real - w.Real, z.Imag - w.Imag}
}

// Mul returns z*w. It uses three real multiplications instead of four:
//
//	k1 = re(z)*(re(w)+im(w))
//	k2 = im(w)*(re(z)+im(z))
//	k3 = re(w)*(im(z)-re(z))
//	z*w = (k1-k2) + i(k1+k3)
func (z Complex[T]) Mul(w Complex[T]) Complex[T] {
	k1 := fixed.Mul(z.Real, w.Real+w.Imag)
	k2 := fixed.Mul(w.Imag, z.Real+z.Imag)
	k3 := fixed.Mul(w.Real, z.Imag-z.Real)
	return Complex[T]{k1 - k2, k1 + k3}
}

// Abs2 returns |z|^2.
func (z Complex[T]) Abs2() T {
	return fixed.Mul(z.Real, z.Real) + fixed.Mul(z.Imag, z.Imag)
}

// Div returns z/w, computed as z*conj(w) scaled by the reciprocal of |w|^2.
// Div panics with fixed.ErrDivisionByZero if |w|^2 is zero in T, which also
// happens for non-zero w small enough for the square to underflow.
func (z Complex[T]) Div(w Complex[T]) Complex[T] {
	q := z.Mul(w.Conj())
	inv := fixed.InvNewton(w.Abs2(), divIterations)
	return Complex[T]{fixed.Mul(q.Real, inv), fixed.Mul(q.Imag, inv)}
}
