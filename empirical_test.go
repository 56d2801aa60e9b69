package reactions_test

import (
	"errors"
	"math"
	"testing"

	"github.com/zephyrtronium/reactions"
)

func TestEmpiricalFormula(t *testing.T) {
	cases := []struct {
		name    string
		amounts []reactions.Amount
		want    string
	}{
		{"formaldehyde", []reactions.Amount{{"C", 1}, {"H", 2}, {"O", 1}}, "CH2O"},
		{"hematite", []reactions.Amount{{"Fe", 0.5}, {"O", 0.75}}, "Fe2O3"},
		{"magnetite", []reactions.Amount{{"Fe", 1}, {"O", 1.333}}, "Fe3O4"},
		{"propane", []reactions.Amount{{"C", 1}, {"H", 2.667}}, "C3H8"},
		{"pentoxide", []reactions.Amount{{"N", 1}, {"O", 2.5}}, "N2O5"},
		{"ethanol", []reactions.Amount{{"C", 2}, {"H", 6}, {"O", 1}}, "C2H6O"},
		{"repeated", []reactions.Amount{{"H", 1}, {"H", 1}, {"O", 1}}, "H2O"},
		{"single", []reactions.Amount{{"Og", 0.01}}, "Og"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f, err := reactions.EmpiricalFormula(c.amounts)
			if err != nil {
				t.Fatal(err)
			}
			if got := f.String(); got != c.want {
				t.Errorf("want %q, got %q", c.want, got)
			}
		})
	}
}

func TestEmpiricalFormulaErrors(t *testing.T) {
	cases := []struct {
		name    string
		amounts []reactions.Amount
		target  any
	}{
		{"empty", nil, new(*reactions.EmptyFormulaError)},
		{"unknown", []reactions.Amount{{"H", 1}, {"Xx", 1}}, new(*reactions.SymbolError)},
		{"lowercase", []reactions.Amount{{"h", 1}}, new(*reactions.SymbolError)},
		{"zero", []reactions.Amount{{"H", 0}}, new(*reactions.AmountError)},
		{"negative", []reactions.Amount{{"H", -1}}, new(*reactions.AmountError)},
		{"nan", []reactions.Amount{{"H", math.NaN()}}, new(*reactions.AmountError)},
		{"inf", []reactions.Amount{{"H", math.Inf(1)}}, new(*reactions.AmountError)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f, err := reactions.EmpiricalFormula(c.amounts)
			if f != nil {
				t.Errorf("non-nil formula %v with error", f)
			}
			if !errors.As(err, c.target) {
				t.Errorf("wrong error type: want %T, got %T (%v)", c.target, err, err)
			}
			if !errors.Is(err, reactions.ErrMalformedFormula) {
				t.Errorf("%v does not match ErrMalformedFormula", err)
			}
		})
	}
}

func TestEmpiricalFormulaOptions(t *testing.T) {
	f, err := reactions.EmpiricalFormula([]reactions.Amount{{"Xx", 1}, {"Yy", 3}}, reactions.Lexical())
	if err != nil {
		t.Fatal(err)
	}
	if got := f.String(); got != "XxYy3" {
		t.Errorf("want %q, got %q", "XxYy3", got)
	}
}
