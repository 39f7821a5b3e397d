package complexnum

import (
	"math"
	"testing"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestAddCommutative(t *testing.T) {
	a := New(1.5, -2.25)
	b := New(-3.0, 4.0)
	if a.Add(b) != b.Add(a) {
		t.Fatalf("addition not commutative: %v vs %v", a.Add(b), b.Add(a))
	}
}

func TestAddAssociative(t *testing.T) {
	a, b, c := New(1, 2), New(3, -4), New(-5, 6)
	left := a.Add(b).Add(c)
	right := a.Add(b.Add(c))
	if left != right {
		t.Fatalf("addition not associative: %v vs %v", left, right)
	}
}

func TestMulCommutative(t *testing.T) {
	a := New(2, 3)
	b := New(-1, 5)
	if a.Mul(b) != b.Mul(a) {
		t.Fatalf("multiplication not commutative")
	}
}

func TestMulAssociative(t *testing.T) {
	a, b, c := New(1, 1), New(2, -1), New(-3, 2)
	left := a.Mul(b).Mul(c)
	right := a.Mul(b.Mul(c))
	const tol = 1e-9
	if !approxEqual(left.Re, right.Re, tol) || !approxEqual(left.Im, right.Im, tol) {
		t.Fatalf("multiplication not associative: %v vs %v", left, right)
	}
}

func TestDivRoundTrip(t *testing.T) {
	a := New(4, -3)
	b := New(1, 2)
	quotient, ok := a.Div(b)
	if !ok {
		t.Fatalf("expected division to succeed")
	}
	roundTrip := quotient.Mul(b)
	const tol = 1e-9
	if !approxEqual(roundTrip.Re, a.Re, tol) || !approxEqual(roundTrip.Im, a.Im, tol) {
		t.Fatalf("(a/b)*b != a: got %v, want %v", roundTrip, a)
	}
}

func TestDivByZeroIsUndefined(t *testing.T) {
	a := New(1, 1)
	_, ok := a.Div(New(0, 0))
	if ok {
		t.Fatalf("expected division by zero modulus to be undefined")
	}
}

func TestSquareNorm(t *testing.T) {
	c := New(3, 4)
	if c.SquareNorm() != 25 {
		t.Fatalf("SquareNorm() = %v, want 25", c.SquareNorm())
	}
}

func TestSquareMatchesMul(t *testing.T) {
	c := New(2, -3)
	if c.Square() != c.Mul(c) {
		t.Fatalf("Square() != Mul(self)")
	}
}

func TestArgument(t *testing.T) {
	c := New(0, 1)
	want := math.Pi / 2
	if !approxEqual(c.Argument(), want, 1e-12) {
		t.Fatalf("Argument() = %v, want %v", c.Argument(), want)
	}
}

func TestSineRealAxis(t *testing.T) {
	c := New(math.Pi/2, 0)
	s := c.Sine()
	if !approxEqual(s.Re, 1, 1e-9) || !approxEqual(s.Im, 0, 1e-9) {
		t.Fatalf("Sine(pi/2) = %v, want (1,0)", s)
	}
}
