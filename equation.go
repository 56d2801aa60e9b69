package reactions

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Equation = Side '-->' Side
// Side = Compound { '+' Compound }
// Compound = [ Coefficient ] Formula

// Arrow separates reactants from products.
const Arrow = "-->"

// Equation is a chemical equation. Compounds on each side are kept in the
// order they were written.
type Equation struct {
	// Reactants and Products are the compounds on each side.
	Reactants []Compound
	Products  []Compound
	// Input is the text the equation was parsed from.
	Input string
	// Balanced is true if the coefficients conserve every element.
	Balanced bool
}

// Compound is one compound of an equation with its coefficient.
type Compound struct {
	// Coefficient is the number of formula units. It is 1 if no coefficient
	// was written.
	Coefficient int
	// Text is the formula as written, without coefficient or whitespace.
	Text string
	// Formula is the parsed formula.
	Formula *Formula
}

// ParseEquation parses an equation of the form "A + B --> C + D". Compounds
// are separated by a plus sign surrounded by whitespace; a side with no such
// separator, such as "H2+O2", is instead split at every plus sign that is
// followed by a compound. Each compound may begin with an integer
// coefficient.
//
// The result records the coefficients as written and is not balanced. Errors
// in the equation structure are *EquationError; errors in a compound's
// formula are wrapped in *CompoundError. All of them match
// ErrMalformedFormula.
func ParseEquation(s string) (*Equation, error) {
	i := strings.Index(s, Arrow)
	if i < 0 {
		return nil, &EquationError{Col: utf8.RuneCountInString(s) + 1, Reason: "missing " + Arrow}
	}
	if j := strings.Index(s[i+len(Arrow):], Arrow); j >= 0 {
		return nil, &EquationError{Col: utf8.RuneCountInString(s[:i+len(Arrow)+j]) + 1, Reason: "more than one " + Arrow}
	}
	eq := Equation{Input: s}
	var err error
	eq.Reactants, err = parseSide(s[:i], "reactant", 1)
	if err != nil {
		return nil, err
	}
	eq.Products, err = parseSide(s[i+len(Arrow):], "product", utf8.RuneCountInString(s[:i])+len(Arrow)+1)
	if err != nil {
		return nil, err
	}
	return &eq, nil
}

// parseSide parses the compounds of one side. col is the position of the
// start of the side in the equation.
func parseSide(s, side string, col int) ([]Compound, error) {
	parts := splitSide(s)
	if len(parts) == 0 {
		return nil, &EquationError{Col: col, Reason: "no " + side + "s"}
	}
	r := make([]Compound, 0, len(parts))
	for i, part := range parts {
		c, err := parseCompound(part)
		if err != nil {
			return nil, &CompoundError{Side: side, Index: i + 1, Text: strings.TrimSpace(part), Err: err}
		}
		r = append(r, c)
	}
	return r, nil
}

// splitSide splits one side of an equation into compounds. It returns nil if
// the side is blank.
func splitSide(s string) []string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	spaced := false
	for _, f := range fields {
		spaced = spaced || f == "+"
	}
	if !spaced {
		// Compact form. A plus sign that is not followed by a compound is a
		// charge marker on the previous one.
		var r []string
		for _, p := range strings.Split(strings.Join(fields, ""), "+") {
			if p == "" && len(r) > 0 {
				r[len(r)-1] += "+"
				continue
			}
			r = append(r, p)
		}
		return r
	}
	var r []string
	var cur []string
	for _, f := range fields {
		if f == "+" {
			r = append(r, strings.Join(cur, " "))
			cur = cur[:0]
			continue
		}
		cur = append(cur, f)
	}
	return append(r, strings.Join(cur, " "))
}

// parseCompound parses one compound with an optional leading coefficient.
func parseCompound(s string) (Compound, error) {
	s = strings.TrimSpace(s)
	k := strings.IndexFunc(s, func(r rune) bool { return r < '0' || '9' < r })
	if k < 0 {
		k = len(s)
	}
	c := Compound{Coefficient: 1}
	if k > 0 {
		n, err := strconv.Atoi(s[:k])
		if err != nil || n == 0 {
			return c, &EquationError{Col: 1, Reason: "invalid coefficient " + strconv.Quote(s[:k])}
		}
		c.Coefficient = n
	}
	c.Text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s[k:])
	if c.Text == "" {
		return c, &EmptyFormulaError{Col: k + 1}
	}
	f, err := ParseString(c.Text)
	if err != nil {
		return c, err
	}
	c.Formula = f
	return c, nil
}

// String renders the equation with the coefficient of each compound before
// its formula, omitting coefficients of 1.
func (eq *Equation) String() string {
	var b strings.Builder
	writeSide(&b, eq.Reactants)
	b.WriteString(" " + Arrow + " ")
	writeSide(&b, eq.Products)
	return b.String()
}

func writeSide(b *strings.Builder, cs []Compound) {
	for i, c := range cs {
		if i > 0 {
			b.WriteString(" + ")
		}
		if c.Coefficient != 1 {
			b.WriteString(strconv.Itoa(c.Coefficient))
		}
		b.WriteString(c.Text)
	}
}

// Coefficients returns the coefficients of the reactants followed by those
// of the products.
func (eq *Equation) Coefficients() []int {
	r := make([]int, 0, len(eq.Reactants)+len(eq.Products))
	for _, c := range eq.Reactants {
		r = append(r, c.Coefficient)
	}
	for _, c := range eq.Products {
		r = append(r, c.Coefficient)
	}
	return r
}

// Elements returns the sorted set of elements on each side.
func (eq *Equation) Elements() (reactants, products []string) {
	return elementSet(eq.Reactants), elementSet(eq.Products)
}

// clone returns a copy of eq that shares only immutable formulas.
func (eq *Equation) clone() *Equation {
	r := *eq
	r.Reactants = append([]Compound(nil), eq.Reactants...)
	r.Products = append([]Compound(nil), eq.Products...)
	return &r
}

// setCoefficients assigns coefficients in the order of Coefficients.
func (eq *Equation) setCoefficients(coefs []int64) {
	for i := range eq.Reactants {
		eq.Reactants[i].Coefficient = int(coefs[i])
	}
	n := len(eq.Reactants)
	for i := range eq.Products {
		eq.Products[i].Coefficient = int(coefs[n+i])
	}
}
