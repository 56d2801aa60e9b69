package reactions

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSubstitute(t *testing.T) {
	cases := []struct {
		name       string
		reactants  []string
		products   []string
		r, p       []string
		placements []string
	}{
		{
			name:       "sulfate",
			reactants:  []string{"NaOH", "H2SO4"},
			products:   []string{"Na2SO4", "H2O"},
			r:          []string{"NaOH", "H2Qa"},
			p:          []string{"Na2Qa", "H2O"},
			placements: []string{"SO4"},
		},
		{
			name:       "groups",
			reactants:  []string{"Ca(OH)2", "H3PO4"},
			products:   []string{"Ca3(PO4)2", "H2O"},
			r:          []string{"Ca(OH)2", "H3Qa"},
			p:          []string{"Ca3(Qa)2", "H2O"},
			placements: []string{"PO4"},
		},
		{
			name:       "two-ions",
			reactants:  []string{"NH4NO3"},
			products:   []string{"NH4Cl", "NaNO3"},
			r:          []string{"QaQb"},
			p:          []string{"QaCl", "NaQb"},
			placements: []string{"NH4", "NO3"},
		},
		{
			name:       "whole-unit",
			reactants:  []string{"KClO3"},
			products:   []string{"KCl", "O2"},
			r:          []string{"KClO3"},
			p:          []string{"KCl", "O2"},
			placements: nil,
		},
		{
			name:       "longer-ion",
			reactants:  []string{"KClO3", "NaCl"},
			products:   []string{"NaClO3", "KCl"},
			r:          []string{"KQa", "NaCl"},
			p:          []string{"NaQa", "KCl"},
			placements: []string{"ClO3"},
		},
		{
			name:       "one-side",
			reactants:  []string{"Cu", "HNO3"},
			products:   []string{"NO", "H2O"},
			r:          []string{"Cu", "HNO3"},
			p:          []string{"NO", "H2O"},
			placements: nil,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			reactants := append([]string(nil), c.reactants...)
			products := append([]string(nil), c.products...)
			r, p, subs := Substitute(reactants, products, Ions())
			if diff := cmp.Diff(c.r, r); diff != "" {
				t.Errorf("wrong reactants (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(c.p, p); diff != "" {
				t.Errorf("wrong products (-want +got):\n%s", diff)
			}
			var got []string
			for i, s := range subs {
				if s.Placeholder != placeholder(i) {
					t.Errorf("substitution %d has placeholder %q", i, s.Placeholder)
				}
				got = append(got, s.Ion.Formula)
			}
			if diff := cmp.Diff(c.placements, got); diff != "" {
				t.Errorf("wrong substitutions (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(c.reactants, reactants); diff != "" {
				t.Errorf("reactants modified (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(c.products, products); diff != "" {
				t.Errorf("products modified (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSubstituteCatalog(t *testing.T) {
	custom := []Ion{{Name: "hydroxide", Formula: "OH"}}
	r, p, subs := Substitute([]string{"NaOH", "H2SO4"}, []string{"Na2SO4", "KOH"}, custom)
	if diff := cmp.Diff([]string{"NaQa", "H2SO4"}, r); diff != "" {
		t.Errorf("wrong reactants (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Na2SO4", "KQa"}, p); diff != "" {
		t.Errorf("wrong products (-want +got):\n%s", diff)
	}
	if len(subs) != 1 || subs[0].Ion != custom[0] {
		t.Errorf("wrong substitutions %v", subs)
	}
}

func TestPlaceholder(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "Qa"},
		{1, "Qb"},
		{25, "Qz"},
		{26, "Qaa"},
		{27, "Qab"},
		{701, "Qzz"},
		{702, "Qaaa"},
	}
	for _, c := range cases {
		if got := placeholder(c.n); got != c.want {
			t.Errorf("placeholder(%d): want %q, got %q", c.n, c.want, got)
		}
	}
	seen := make(map[string]bool)
	for n := 0; n < 2000; n++ {
		s := placeholder(n)
		if seen[s] {
			t.Fatalf("placeholder(%d) = %q repeats", n, s)
		}
		seen[s] = true
		if !validSymbol(s) || IsElement(s) {
			t.Fatalf("placeholder(%d) = %q is not a free symbol", n, s)
		}
	}
}

func TestIons(t *testing.T) {
	ions := Ions()
	if len(ions) == 0 {
		t.Fatal("no ions")
	}
	ions[0].Formula = "Xx"
	if Ions()[0].Formula == "Xx" {
		t.Error("Ions returned the catalog itself")
	}
	for _, ion := range Ions() {
		f, err := ParseString(ion.Formula)
		if err != nil {
			t.Errorf("%s %q: %v", ion.Name, ion.Formula, err)
			continue
		}
		if f.String() != ion.Formula {
			t.Errorf("%s %q is not canonical: %q", ion.Name, ion.Formula, f.String())
		}
	}
}
