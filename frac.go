package reactions

import (
	"math"
	"strconv"
)

// Fraction is an exact rational number. Fractions are values; operations
// return new fractions and never modify their operands.
//
// A Fraction is always reduced with a positive denominator. The zero value is
// the inactive fraction, equal to 0 but distinguishable from an active zero.
// The balancer uses inactive fractions to mark coefficients that have not yet
// been assigned. Every fraction produced by NewFraction or by arithmetic is
// active.
//
// Arithmetic that overflows int64 panics with an *OverflowError. Balance and
// Parse recover such panics and return the error.
type Fraction struct {
	num int64
	// den is the denominator, or 0 for the inactive fraction.
	den    int64
	active bool
}

// NewFraction returns the reduced fraction num/den. Panics if den is 0.
func NewFraction(num, den int64) Fraction {
	if den == 0 {
		panic("reactions: zero denominator")
	}
	if den < 0 {
		num, den = neg64(num), neg64(den)
	}
	g := GCD(num, den)
	return Fraction{num: num / g, den: den / g, active: true}
}

// Int returns the active fraction n/1.
func Int(n int64) Fraction {
	return Fraction{num: n, den: 1, active: true}
}

// Num returns the numerator of x.
func (x Fraction) Num() int64 {
	return x.num
}

// Den returns the denominator of x, which is always positive.
func (x Fraction) Den() int64 {
	if x.den == 0 {
		return 1
	}
	return x.den
}

// Active returns whether x was deliberately set, as opposed to being the zero
// Fraction.
func (x Fraction) Active() bool {
	return x.active
}

// Sign returns -1, 0, or 1 according to the sign of x.
func (x Fraction) Sign() int {
	switch {
	case x.num < 0:
		return -1
	case x.num > 0:
		return 1
	}
	return 0
}

// IsInt returns whether x is an integer.
func (x Fraction) IsInt() bool {
	return x.Den() == 1
}

// Add returns x + y.
func (x Fraction) Add(y Fraction) Fraction {
	l := LCM(x.Den(), y.Den())
	a := mul64(x.num, l/x.Den())
	b := mul64(y.num, l/y.Den())
	return NewFraction(add64(a, b), l)
}

// Sub returns x - y.
func (x Fraction) Sub(y Fraction) Fraction {
	return x.Add(y.Neg())
}

// Mul returns x * y.
func (x Fraction) Mul(y Fraction) Fraction {
	// Cross-reduce first so that products of reduced fractions stay small.
	g1 := GCD(x.num, y.Den())
	g2 := GCD(y.num, x.Den())
	n := mul64(x.num/g1, y.num/g2)
	d := mul64(x.Den()/g2, y.Den()/g1)
	return NewFraction(n, d)
}

// Neg returns -x.
func (x Fraction) Neg() Fraction {
	return NewFraction(neg64(x.num), x.Den())
}

// trunc returns x rounded toward zero.
func (x Fraction) trunc() int64 {
	return x.num / x.Den()
}

func (x Fraction) String() string {
	if x.Den() == 1 {
		return strconv.FormatInt(x.num, 10)
	}
	return strconv.FormatInt(x.num, 10) + "/" + strconv.FormatInt(x.Den(), 10)
}

// GCD returns the non-negative greatest common divisor of a and b. GCD(0, 0)
// is 0.
func GCD(a, b int64) int64 {
	a, b = abs64(a), abs64(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the non-negative least common multiple of a and b. If either is
// 0, the result is 0.
func LCM(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	return mul64(abs64(a)/GCD(a, b), abs64(b))
}

// approxLimit bounds the numerator and denominator of Approximate.
const approxLimit = 256

// Approximate finds a simple fraction close to x by continued fraction
// expansion. The expansion stops before the numerator or denominator would
// exceed 256, and the result is clamped to the range [1/256, 256].
//
// If x is not finite, the error is an *OverflowError.
func Approximate(x float64) (Fraction, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Fraction{}, &OverflowError{Op: "approximate " + strconv.FormatFloat(x, 'g', -1, 64)}
	}
	switch {
	case x >= approxLimit:
		return Int(approxLimit), nil
	case x < 1.0/approxLimit:
		return NewFraction(1, approxLimit), nil
	}
	fl := math.Floor(x)
	p0, q0 := int64(1), int64(0)
	p1, q1 := int64(fl), int64(1)
	r := x - fl
	for r != 0 {
		r = 1 / r
		cf := math.Floor(r)
		if cf > approxLimit {
			// The next denominator would be at least cf.
			break
		}
		c := int64(cf)
		p2 := c*p1 + p0
		q2 := c*q1 + q0
		if p2 > approxLimit || q2 > approxLimit {
			break
		}
		p0, p1 = p1, p2
		q0, q1 = q1, q2
		r -= cf
	}
	v := float64(p1) / float64(q1)
	switch {
	case v > approxLimit:
		p1, q1 = approxLimit, 1
	case v < 1.0/approxLimit:
		p1, q1 = 1, approxLimit
	}
	return NewFraction(p1, q1), nil
}

func abs64(a int64) int64 {
	if a < 0 {
		return neg64(a)
	}
	return a
}

func neg64(a int64) int64 {
	if a == math.MinInt64 {
		panic(&OverflowError{Op: "negate"})
	}
	return -a
}

func add64(a, b int64) int64 {
	c := a + b
	if (c > a) != (b > 0) {
		panic(&OverflowError{Op: "add"})
	}
	return c
}

func mul64(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		panic(&OverflowError{Op: "multiply"})
	}
	return c
}

// catch recovers a panic with an *OverflowError and stores it in err. Other
// panics continue.
func catch(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(*OverflowError); ok {
		*err = e
		return
	}
	panic(r)
}
