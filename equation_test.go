package reactions_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/reactions"
)

func TestParseEquation(t *testing.T) {
	cases := []struct {
		name      string
		src       string
		reactants []string
		products  []string
		coefs     []int
		str       string
	}{
		{"spaced", "2H2 + O2 --> 2H2O", []string{"H2", "O2"}, []string{"H2O"}, []int{2, 1, 2}, "2H2 + O2 --> 2H2O"},
		{"compact", "H2+O2-->H2O", []string{"H2", "O2"}, []string{"H2O"}, []int{1, 1, 1}, "H2 + O2 --> H2O"},
		{"compact-mixed", "H2+O2 --> H2O", []string{"H2", "O2"}, []string{"H2O"}, []int{1, 1, 1}, "H2 + O2 --> H2O"},
		{"spaced-charges", "Na+ + Cl- --> NaCl", []string{"Na+", "Cl-"}, []string{"NaCl"}, []int{1, 1, 1}, "Na+ + Cl- --> NaCl"},
		{"compact-charges", "Na+ +Cl- --> NaCl", []string{"Na+", "Cl-"}, []string{"NaCl"}, []int{1, 1, 1}, "Na+ + Cl- --> NaCl"},
		{"spaced-coefficient", "Fe + 3 O2 --> Fe2O3", []string{"Fe", "O2"}, []string{"Fe2O3"}, []int{1, 3, 1}, "Fe + 3O2 --> Fe2O3"},
		{"inner-space", "Al2 (SO4)3 --> Al2O3 + 3SO3", []string{"Al2(SO4)3"}, []string{"Al2O3", "SO3"}, []int{1, 1, 3}, "Al2(SO4)3 --> Al2O3 + 3SO3"},
		{"padding", "  CaCO3   -->   CaO + CO2  ", []string{"CaCO3"}, []string{"CaO", "CO2"}, []int{1, 1, 1}, "CaCO3 --> CaO + CO2"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			eq, err := reactions.ParseEquation(c.src)
			if err != nil {
				t.Fatal(err)
			}
			var r, p []string
			for _, x := range eq.Reactants {
				r = append(r, x.Text)
				if x.Formula == nil {
					t.Errorf("reactant %q has no formula", x.Text)
				}
			}
			for _, x := range eq.Products {
				p = append(p, x.Text)
				if x.Formula == nil {
					t.Errorf("product %q has no formula", x.Text)
				}
			}
			if diff := cmp.Diff(c.reactants, r); diff != "" {
				t.Errorf("wrong reactants (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(c.products, p); diff != "" {
				t.Errorf("wrong products (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(c.coefs, eq.Coefficients()); diff != "" {
				t.Errorf("wrong coefficients (-want +got):\n%s", diff)
			}
			if got := eq.String(); got != c.str {
				t.Errorf("wrong string: want %q, got %q", c.str, got)
			}
			if eq.Input != c.src {
				t.Errorf("wrong input: want %q, got %q", c.src, eq.Input)
			}
			if eq.Balanced {
				t.Error("parsed equation is marked balanced")
			}
		})
	}
}

func TestParseEquationErrors(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		err   any
		pos   int
		side  string
		index int
	}{
		{"no-arrow", "H2 + O2", new(*reactions.EquationError), 8, "", 0},
		{"two-arrows", "H2 --> H2 --> H2", new(*reactions.EquationError), 11, "", 0},
		{"no-reactants", " --> H2O", new(*reactions.EquationError), 1, "", 0},
		{"no-products", "H2 --> ", new(*reactions.EquationError), 7, "", 0},
		{"empty-compound", "H2 + --> H2", new(*reactions.EmptyFormulaError), 1, "reactant", 2},
		{"zero-coefficient", "0H2 --> H2", new(*reactions.EquationError), 1, "reactant", 1},
		{"coefficient-only", "2 --> H2", new(*reactions.EmptyFormulaError), 2, "reactant", 1},
		{"unknown-element", "Xq --> H", new(*reactions.SymbolError), 1, "reactant", 1},
		{"bracket", "H2 --> H2 + (O2", new(*reactions.BracketError), 1, "product", 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			eq, err := reactions.ParseEquation(c.src)
			if err == nil {
				t.Fatalf("no error; got %v", eq)
			}
			if !errors.Is(err, reactions.ErrMalformedFormula) {
				t.Errorf("%v does not match ErrMalformedFormula", err)
			}
			if !errors.As(err, c.err) {
				t.Errorf("wrong error type: want %T, got %T (%v)", c.err, err, err)
			}
			var ie reactions.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%v is not an InputError", err)
			}
			if ie.Pos() != c.pos {
				t.Errorf("wrong position: want %d, got %d", c.pos, ie.Pos())
			}
			var ce *reactions.CompoundError
			if c.side == "" {
				if errors.As(err, &ce) {
					t.Errorf("unexpected compound error %v", ce)
				}
				return
			}
			if !errors.As(err, &ce) {
				t.Fatalf("%v is not a *CompoundError", err)
			}
			if ce.Side != c.side || ce.Index != c.index {
				t.Errorf("wrong compound: want %s %d, got %s %d", c.side, c.index, ce.Side, ce.Index)
			}
		})
	}
}

func TestEquationElements(t *testing.T) {
	eq, err := reactions.ParseEquation("NaOH + H2SO4 --> Na2SO4 + H2O")
	if err != nil {
		t.Fatal(err)
	}
	r, p := eq.Elements()
	want := []string{"H", "Na", "O", "S"}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("wrong reactant elements (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("wrong product elements (-want +got):\n%s", diff)
	}
}
