// Package complexnum implements the double-precision complex arithmetic
// shared by the fractal kernels and the physical-coordinate math in the
// wire protocol.
package complexnum

import "math"

// Complex is an immutable pair of float64 reals, re and im.
type Complex struct {
	Re, Im float64
}

// New returns the complex number re+im*i.
func New(re, im float64) Complex {
	return Complex{Re: re, Im: im}
}

// Add returns c+other.
func (c Complex) Add(other Complex) Complex {
	return Complex{Re: c.Re + other.Re, Im: c.Im + other.Im}
}

// Sub returns c-other.
func (c Complex) Sub(other Complex) Complex {
	return Complex{Re: c.Re - other.Re, Im: c.Im - other.Im}
}

// Mul returns c*other.
func (c Complex) Mul(other Complex) Complex {
	return Complex{
		Re: c.Re*other.Re - c.Im*other.Im,
		Im: c.Re*other.Im + c.Im*other.Re,
	}
}

// Square returns c*c.
func (c Complex) Square() Complex {
	return c.Mul(c)
}

// Div returns c/other. ok is false when other's modulus is zero, in which
// case the division is undefined and the returned value is the zero
// Complex.
func (c Complex) Div(other Complex) (result Complex, ok bool) {
	divisor := other.Re*other.Re + other.Im*other.Im
	if divisor == 0 {
		return Complex{}, false
	}
	return Complex{
		Re: (c.Re*other.Re + c.Im*other.Im) / divisor,
		Im: (c.Im*other.Re - c.Re*other.Im) / divisor,
	}, true
}

// Sine returns sin(c), computed via the standard complex expansion
// re = sin(c.Re)*cosh(c.Im), im = cos(c.Re)*sinh(c.Im).
func (c Complex) Sine() Complex {
	return Complex{
		Re: math.Sin(c.Re) * math.Cosh(c.Im),
		Im: math.Cos(c.Re) * math.Sinh(c.Im),
	}
}

// Argument returns atan2(im, re).
func (c Complex) Argument() float64 {
	return math.Atan2(c.Im, c.Re)
}

// SquareNorm returns re²+im².
func (c Complex) SquareNorm() float64 {
	return c.Re*c.Re + c.Im*c.Im
}
