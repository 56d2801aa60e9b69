package reactions

import (
	"sort"
	"strconv"

	"go.uber.org/zap"
)

// BalanceOption is an option for balancing equations.
type BalanceOption interface {
	balanceOption(balancectx) balancectx
}

// Method selects the algorithm that finds coefficients. A Method is itself a
// BalanceOption.
type Method int

const (
	// MethodAlgebraic propagates atom ratios between compounds with at most
	// two unknowns. It handles synthesis, decomposition, single and double
	// replacement, combustion, and most redox reactions.
	MethodAlgebraic Method = iota
	// MethodMatrix computes the null space of the composition matrix with
	// exact rational arithmetic. It solves any equation with a unique
	// balance.
	MethodMatrix
)

func (m Method) String() string {
	switch m {
	case MethodAlgebraic:
		return "algebraic"
	case MethodMatrix:
		return "matrix"
	default:
		return "Method(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMethod returns the Method with the given name.
func ParseMethod(name string) (Method, bool) {
	switch name {
	case "algebraic", "":
		return MethodAlgebraic, true
	case "matrix":
		return MethodMatrix, true
	}
	return 0, false
}

func (m Method) balanceOption(c balancectx) balancectx {
	c.method = m
	return c
}

type (
	catalogopt []Ion
	traceopt   struct{ log *zap.Logger }
)

// balancectx holds the configuration for balancing.
type balancectx struct {
	method  Method
	catalog []Ion
	log     *zap.Logger
}

// Catalog sets the polyatomic ions that balancing may treat as single units.
// The default is Ions().
func Catalog(ions []Ion) BalanceOption {
	return catalogopt(append([]Ion{}, ions...))
}

func (o catalogopt) balanceOption(c balancectx) balancectx {
	c.catalog = o
	return c
}

// NoSubstitution disables treating polyatomic ions as single units.
func NoSubstitution() BalanceOption {
	return catalogopt{}
}

// Trace logs the steps of balancing at debug level.
func Trace(log *zap.Logger) BalanceOption {
	return traceopt{log}
}

func (o traceopt) balanceOption(c balancectx) balancectx {
	c.log = o.log
	return c
}

// Balance parses an equation and finds the smallest positive integer
// coefficients that conserve every element.
//
// If the equation is already balanced with the coefficients as written, they
// are kept, divided by their greatest common divisor. Otherwise any written
// coefficients are discarded and new ones are computed.
//
// Errors match exactly one of ErrMalformedFormula, ErrUnbalancedElementSets,
// ErrUnsupportedEquation, and ErrArithmeticOverflow.
func Balance(equation string, opts ...BalanceOption) (eq *Equation, err error) {
	c := balancectx{catalog: catalog}
	for _, opt := range opts {
		c = opt.balanceOption(c)
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	defer func() {
		if err != nil {
			eq = nil
		}
	}()
	defer catch(&err)

	eq, err = ParseEquation(equation)
	if err != nil {
		return nil, err
	}
	if IsBalanced(eq.String()) {
		coefs := make([]int64, 0, len(eq.Reactants)+len(eq.Products))
		g := int64(0)
		for _, k := range eq.Coefficients() {
			coefs = append(coefs, int64(k))
			g = GCD(g, int64(k))
		}
		coefs, err = normalize(coefs, g)
		if err != nil {
			return nil, err
		}
		eq.setCoefficients(coefs)
		eq.Balanced = true
		return eq, nil
	}

	rs, ps := eq.Elements()
	if err := compareSets(rs, ps); err != nil {
		return nil, err
	}
	coefs, err := c.coefficients(eq)
	if err != nil {
		return nil, err
	}
	for _, k := range coefs {
		if int64(int(k)) != k {
			return nil, &OverflowError{Op: "coefficient"}
		}
	}
	eq.setCoefficients(coefs)
	if !IsBalanced(eq.String()) {
		return nil, &UnsupportedError{Reason: "solution does not balance " + strconv.Quote(eq.String())}
	}
	eq.Balanced = true
	return eq, nil
}

// coefficients solves an equation whose sides have the same elements. It
// first tries with polyatomic ions replaced by placeholders, then without if
// that fails.
func (c *balancectx) coefficients(eq *Equation) ([]int64, error) {
	rt := texts(eq.Reactants)
	pt := texts(eq.Products)
	if len(c.catalog) > 0 {
		rs, ps, subs := Substitute(rt, pt, c.catalog)
		if len(subs) > 0 {
			for _, s := range subs {
				c.log.Debug("substitute ion", zap.String("ion", s.Ion.Formula), zap.String("placeholder", s.Placeholder))
			}
			coefs, err := c.solve(rs, ps, subs)
			if err == nil {
				return coefs, nil
			}
			c.log.Debug("retry without substitution", zap.Error(err))
		}
	}
	return c.solve(rt, pt, nil)
}

// solve parses compound texts, which may contain placeholders, and computes
// conserving coefficients.
func (c *balancectx) solve(rt, pt []string, subs []Substitution) ([]int64, error) {
	var opts []ParseOption
	if len(subs) > 0 {
		ph := make([]string, len(subs))
		for i, s := range subs {
			ph[i] = s.Placeholder
		}
		opts = append(opts, Symbols(ph...))
	}
	rf, err := parseAll(rt, opts)
	if err != nil {
		return nil, err
	}
	pf, err := parseAll(pt, opts)
	if err != nil {
		return nil, err
	}
	rs, ps := formulaElements(rf), formulaElements(pf)
	if err := compareSets(rs, ps); err != nil {
		return nil, err
	}
	var coefs []int64
	switch c.method {
	case MethodAlgebraic:
		coefs, err = newStaged(rs, rf, pf, c.log).solve()
	case MethodMatrix:
		coefs, err = nullspace(rs, rf, pf)
	default:
		panic("reactions: unknown method " + c.method.String())
	}
	if err != nil {
		return nil, err
	}
	if el, ok := conserved(rs, rf, pf, coefs); !ok {
		return nil, &UnsupportedError{Element: el, Reason: "not conserved"}
	}
	return coefs, nil
}

// conserved checks that coefs conserve every element, returning the first
// element that is not conserved.
func conserved(elements []string, rf, pf []*Formula, coefs []int64) (string, bool) {
	for _, el := range elements {
		var n int64
		for i, f := range rf {
			n = add64(n, mul64(coefs[i], int64(f.Count(el))))
		}
		for i, f := range pf {
			n = add64(n, -mul64(coefs[len(rf)+i], int64(f.Count(el))))
		}
		if n != 0 {
			return el, false
		}
	}
	return "", true
}

func texts(cs []Compound) []string {
	r := make([]string, len(cs))
	for i, c := range cs {
		r[i] = c.Text
	}
	return r
}

func parseAll(texts []string, opts []ParseOption) ([]*Formula, error) {
	r := make([]*Formula, len(texts))
	for i, s := range texts {
		f, err := ParseString(s, opts...)
		if err != nil {
			return nil, err
		}
		r[i] = f
	}
	return r, nil
}

func elementSet(cs []Compound) []string {
	fs := make([]*Formula, len(cs))
	for i, c := range cs {
		fs[i] = c.Formula
	}
	return formulaElements(fs)
}

// formulaElements returns the sorted distinct elements of formulas.
func formulaElements(fs []*Formula) []string {
	seen := make(map[string]bool)
	var r []string
	for _, f := range fs {
		for _, t := range f.terms {
			if !seen[t.Element] {
				seen[t.Element] = true
				r = append(r, t.Element)
			}
		}
	}
	sort.Strings(r)
	return r
}

// compareSets returns an *ElementSetError if two sorted element sets differ.
func compareSets(rs, ps []string) error {
	var ro, po []string
	i, j := 0, 0
	for i < len(rs) || j < len(ps) {
		switch {
		case j == len(ps) || i < len(rs) && rs[i] < ps[j]:
			ro = append(ro, rs[i])
			i++
		case i == len(rs) || ps[j] < rs[i]:
			po = append(po, ps[j])
			j++
		default:
			i++
			j++
		}
	}
	if len(ro) == 0 && len(po) == 0 {
		return nil
	}
	return &ElementSetError{Reactants: ro, Products: po}
}
