package reactions

import (
	"errors"
	"math"
	"testing"
)

func TestFraction(t *testing.T) {
	cases := []struct {
		name     string
		x        Fraction
		num, den int64
	}{
		{"reduce", NewFraction(2, 4), 1, 2},
		{"negative-den", NewFraction(3, -6), -1, 2},
		{"both-negative", NewFraction(-3, -6), 1, 2},
		{"zero", NewFraction(0, 5), 0, 1},
		{"int", Int(7), 7, 1},
		{"add", NewFraction(1, 2).Add(NewFraction(1, 3)), 5, 6},
		{"add-int", NewFraction(1, 2).Add(NewFraction(1, 2)), 1, 1},
		{"sub", NewFraction(1, 2).Sub(NewFraction(1, 3)), 1, 6},
		{"sub-negative", NewFraction(1, 3).Sub(NewFraction(1, 2)), -1, 6},
		{"mul", NewFraction(2, 3).Mul(NewFraction(3, 4)), 1, 2},
		{"mul-negative", NewFraction(-2, 3).Mul(NewFraction(9, 4)), -3, 2},
		{"neg", NewFraction(1, 2).Neg(), -1, 2},
		{"inactive-add", Fraction{}.Add(Int(3)), 3, 1},
		{"inactive-mul", Fraction{}.Mul(Int(3)), 0, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.x.Num() != c.num || c.x.Den() != c.den {
				t.Errorf("want %d/%d, got %v", c.num, c.den, c.x)
			}
			if !c.x.Active() {
				t.Errorf("%v is inactive", c.x)
			}
		})
	}
}

func TestFractionZero(t *testing.T) {
	var x Fraction
	if x.Active() {
		t.Error("zero fraction is active")
	}
	if x.Num() != 0 || x.Den() != 1 {
		t.Errorf("zero fraction is %d/%d", x.Num(), x.Den())
	}
	if x.Sign() != 0 || !x.IsInt() || x.String() != "0" {
		t.Errorf("zero fraction has sign %d, int %t, string %q", x.Sign(), x.IsInt(), x.String())
	}
	if !Int(0).Active() {
		t.Error("Int(0) is inactive")
	}
}

func TestFractionString(t *testing.T) {
	cases := []struct {
		x    Fraction
		want string
	}{
		{Int(3), "3"},
		{Int(-3), "-3"},
		{NewFraction(6, 4), "3/2"},
		{NewFraction(1, -3), "-1/3"},
	}
	for _, c := range cases {
		if got := c.x.String(); got != c.want {
			t.Errorf("wrong string: want %q, got %q", c.want, got)
		}
	}
}

func TestFractionTrunc(t *testing.T) {
	cases := []struct {
		x    Fraction
		want int64
	}{
		{NewFraction(7, 2), 3},
		{NewFraction(-7, 2), -3},
		{NewFraction(1, 3), 0},
		{Int(4), 4},
	}
	for _, c := range cases {
		if got := c.x.trunc(); got != c.want {
			t.Errorf("trunc(%v): want %d, got %d", c.x, c.want, got)
		}
	}
}

func TestGCDLCM(t *testing.T) {
	cases := []struct {
		a, b     int64
		gcd, lcm int64
	}{
		{12, 18, 6, 36},
		{-4, 6, 2, 12},
		{0, 5, 5, 0},
		{0, 0, 0, 0},
		{7, 1, 1, 7},
		{-3, -3, 3, 3},
	}
	for _, c := range cases {
		if got := GCD(c.a, c.b); got != c.gcd {
			t.Errorf("GCD(%d, %d): want %d, got %d", c.a, c.b, c.gcd, got)
		}
		if got := LCM(c.a, c.b); got != c.lcm {
			t.Errorf("LCM(%d, %d): want %d, got %d", c.a, c.b, c.lcm, got)
		}
	}
}

func TestApproximate(t *testing.T) {
	cases := []struct {
		x        float64
		num, den int64
	}{
		{0.5, 1, 2},
		{0.333333, 1, 3},
		{0.75, 3, 4},
		{1, 1, 1},
		{1.333, 4, 3},
		{2.5, 5, 2},
		{math.Pi, 22, 7},
		{1000, 256, 1},
		{0.001, 1, 256},
		{-3, 1, 256},
		{0, 1, 256},
	}
	for _, c := range cases {
		got, err := Approximate(c.x)
		if err != nil {
			t.Errorf("Approximate(%g): %v", c.x, err)
			continue
		}
		if got.Num() != c.num || got.Den() != c.den {
			t.Errorf("Approximate(%g): want %d/%d, got %v", c.x, c.num, c.den, got)
		}
	}
}

func TestApproximateNonFinite(t *testing.T) {
	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Approximate(x)
		var oe *OverflowError
		if !errors.As(err, &oe) {
			t.Errorf("Approximate(%g): want *OverflowError, got %v", x, err)
		}
	}
}

func TestOverflow(t *testing.T) {
	cases := []struct {
		name string
		f    func()
	}{
		{"add", func() { Int(math.MaxInt64).Add(Int(1)) }},
		{"sub", func() { Int(math.MinInt64 + 1).Sub(Int(2)) }},
		{"mul", func() { Int(math.MaxInt64 / 2).Mul(Int(3)) }},
		{"neg", func() { Int(math.MinInt64).Neg() }},
		{"lcm", func() { LCM(math.MaxInt64, math.MaxInt64-1) }},
		{"den", func() { NewFraction(1, math.MinInt64) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var err error
			func() {
				defer catch(&err)
				c.f()
			}()
			if !errors.Is(err, ErrArithmeticOverflow) {
				t.Errorf("want overflow, got %v", err)
			}
		})
	}
}

func TestCatchRepanics(t *testing.T) {
	defer func() {
		if r := recover(); r != "other" {
			t.Errorf("wrong panic: want %q, got %v", "other", r)
		}
	}()
	var err error
	defer catch(&err)
	panic("other")
}
