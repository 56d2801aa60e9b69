package reactions

import "strings"

// Ion is a polyatomic ion that may pass through a reaction unchanged.
type Ion struct {
	// Name is the common name of the ion.
	Name string
	// Formula is the ion's formula without charge.
	Formula string
}

var catalog = []Ion{
	{"ammonium", "NH4"},
	{"acetate", "C2H3O2"},
	{"hydrogen carbonate", "HCO3"},
	{"hydrogen sulfate", "HSO4"},
	{"hypochlorite", "ClO"},
	{"chlorate", "ClO3"},
	{"chlorite", "ClO2"},
	{"cyanate", "OCN"},
	{"cyanide", "CN"},
	{"dihydrogen phosphate", "H2PO4"},
	{"hydroxide", "OH"},
	{"nitrate", "NO3"},
	{"nitrite", "NO2"},
	{"perchlorate", "ClO4"},
	{"permanganate", "MnO4"},
	{"thiocyanate", "SCN"},
	{"carbonate", "CO3"},
	{"chromate", "CrO4"},
	{"dichromate", "Cr2O7"},
	{"hydrogen phosphate", "HPO4"},
	{"sulfate", "SO4"},
	{"sulfite", "SO3"},
	{"thiosulfate", "S2O3"},
	{"borate", "BO3"},
	{"phosphate", "PO4"},
}

// Ions returns the default catalog of polyatomic ions in the order in which
// substitution tries them.
func Ions() []Ion {
	r := make([]Ion, len(catalog))
	copy(r, catalog)
	return r
}

// Substitution records a polyatomic ion replaced by a placeholder symbol.
type Substitution struct {
	Placeholder string
	Ion         Ion
}

// Substitute replaces polyatomic ions that appear on both sides of an equation
// with placeholder element symbols. reactants and products are compound
// formulas. Ions are tried in catalog order; each ion found as a whole unit
// in some reactant and some product is replaced everywhere on both sides by a
// new placeholder.
//
// An occurrence is a whole unit when it is not followed by a lowercase letter
// or a digit, which would make its last symbol or count part of something
// else. Placeholders are Qa, Qb, and so on; no element symbol begins with Q.
//
// The inputs are not modified.
func Substitute(reactants, products []string, catalog []Ion) (r, p []string, subs []Substitution) {
	r = append([]string(nil), reactants...)
	p = append([]string(nil), products...)
	for _, ion := range catalog {
		if ion.Formula == "" || !anyContains(r, ion.Formula) || !anyContains(p, ion.Formula) {
			continue
		}
		ph := placeholder(len(subs))
		for i := range r {
			r[i] = replaceIon(r[i], ion.Formula, ph)
		}
		for i := range p {
			p[i] = replaceIon(p[i], ion.Formula, ph)
		}
		subs = append(subs, Substitution{Placeholder: ph, Ion: ion})
	}
	return r, p, subs
}

// placeholder returns the n'th placeholder symbol, counting from 0.
func placeholder(n int) string {
	var b []byte
	for n++; n > 0; n = (n - 1) / 26 {
		b = append(b, byte('a'+(n-1)%26))
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return "Q" + string(b)
}

func anyContains(compounds []string, ion string) bool {
	for _, s := range compounds {
		if indexIon(s, ion) >= 0 {
			return true
		}
	}
	return false
}

// indexIon returns the byte index of the first whole-unit occurrence of ion in
// s, or -1.
func indexIon(s, ion string) int {
	for k := 0; ; {
		i := strings.Index(s[k:], ion)
		if i < 0 {
			return -1
		}
		i += k
		if end := i + len(ion); end == len(s) || !continuesSymbol(s[end]) {
			return i
		}
		k = i + 1
	}
}

func replaceIon(s, ion, ph string) string {
	var b strings.Builder
	for {
		i := indexIon(s, ion)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		b.WriteString(ph)
		s = s[i+len(ion):]
	}
}

func continuesSymbol(c byte) bool {
	return 'a' <= c && c <= 'z' || '0' <= c && c <= '9'
}
