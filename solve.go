package reactions

import (
	"go.uber.org/zap"
)

// slot is the coefficient of one compound, expressed as a·A + b·B in terms of
// the two unknowns A and B.
type slot struct {
	a, b   Fraction
	filled bool
}

// value returns the coefficient for given values of A and B.
func (s slot) value(a, b Fraction) Fraction {
	return s.a.Mul(a).Add(s.b.Mul(b))
}

// staged solves for coefficients by propagating ratios from elements that
// connect few compounds, using at most two unknowns.
type staged struct {
	// elements is the sorted list of elements not yet used to fix a
	// coefficient.
	elements []string
	rf, pf   []*Formula
	r, p     []slot
	usedA    bool
	usedB    bool
	log      *zap.Logger
}

func newStaged(elements []string, reactants, products []*Formula, log *zap.Logger) *staged {
	return &staged{
		elements: append([]string(nil), elements...),
		rf:       reactants,
		pf:       products,
		r:        make([]slot, len(reactants)),
		p:        make([]slot, len(products)),
		log:      log,
	}
}

// solve returns the coefficients of the reactants followed by the products,
// reduced to positive integers with no common factor.
func (s *staged) solve() ([]int64, error) {
	if err := s.seed(); err != nil {
		return nil, err
	}
	s.propagate()
	s.fill()
	if f, ok := s.undetermined(); ok {
		return nil, &UnsupportedError{Reason: "coefficient of " + f.String() + " is undetermined"}
	}
	var coefs []Fraction
	if s.usedB {
		a, b, err := s.resolve()
		if err != nil {
			return nil, err
		}
		coefs = s.values(a, b)
	} else {
		coefs = s.values(Int(1), Fraction{})
	}
	return integers(coefs)
}

// occurrences returns the indices of the reactants and products that contain
// an element.
func (s *staged) occurrences(el string) (ri, pi []int) {
	for i, f := range s.rf {
		if f.Has(el) {
			ri = append(ri, i)
		}
	}
	for i, f := range s.pf {
		if f.Has(el) {
			pi = append(pi, i)
		}
	}
	return ri, pi
}

// seed assigns unknowns to pairs of unfilled compounds joined by an element
// that appears once on each side. The compound with more atoms of the element
// gets the unknown itself, and the other gets the ratio.
func (s *staged) seed() error {
	rest := s.elements[:0:0]
	for _, el := range s.elements {
		ri, pi := s.occurrences(el)
		if len(ri) != 1 || len(pi) != 1 {
			rest = append(rest, el)
			continue
		}
		r, p := &s.r[ri[0]], &s.p[pi[0]]
		if r.filled || p.filled {
			rest = append(rest, el)
			continue
		}
		rq, pq := int64(s.rf[ri[0]].Count(el)), int64(s.pf[pi[0]].Count(el))
		rc, pc := Int(1), Int(1)
		switch {
		case rq > pq:
			pc = NewFraction(rq, pq)
		case rq < pq:
			rc = NewFraction(pq, rq)
		}
		switch {
		case !s.usedA:
			r.a, p.a = rc, pc
			s.usedA = true
			s.log.Debug("seed unknown", zap.String("unknown", "A"), zap.String("element", el), zap.Stringer("reactant", rc), zap.Stringer("product", pc))
		case !s.usedB:
			r.b, p.b = rc, pc
			s.usedB = true
			s.log.Debug("seed unknown", zap.String("unknown", "B"), zap.String("element", el), zap.Stringer("reactant", rc), zap.Stringer("product", pc))
		default:
			return &UnsupportedError{Element: el, Reason: "needs more than two independent unknowns"}
		}
		r.filled, p.filled = true, true
	}
	s.elements = rest
	return nil
}

// propagate fills compounds joined to a filled compound by an element that
// appears once on each side.
func (s *staged) propagate() {
	rest := s.elements[:0:0]
	for _, el := range s.elements {
		ri, pi := s.occurrences(el)
		if len(ri) != 1 || len(pi) != 1 {
			rest = append(rest, el)
			continue
		}
		r, p := &s.r[ri[0]], &s.p[pi[0]]
		if r.filled == p.filled {
			rest = append(rest, el)
			continue
		}
		rq, pq := int64(s.rf[ri[0]].Count(el)), int64(s.pf[pi[0]].Count(el))
		if r.filled {
			ratio := NewFraction(rq, pq)
			if r.a.Active() {
				p.a = r.a.Mul(ratio)
			} else {
				p.b = r.b.Mul(ratio)
			}
			p.filled = true
		} else {
			ratio := NewFraction(pq, rq)
			if p.a.Active() {
				r.a = p.a.Mul(ratio)
			} else {
				r.b = p.b.Mul(ratio)
			}
			r.filled = true
		}
		s.log.Debug("propagate", zap.String("element", el))
	}
	s.elements = rest
}

// fill solves compounds that are the only unfilled occurrence of some
// element, repeating until no such element remains.
func (s *staged) fill() {
	for k, n := 0, len(s.elements); k < n; k++ {
		if s.allFilled() {
			return
		}
		progress := false
		for i, el := range s.elements {
			ri, pi := s.occurrences(el)
			var open *slot
			var q int64
			product := false
			filled := 0
			for _, j := range ri {
				if s.r[j].filled {
					filled++
				} else {
					open, q = &s.r[j], int64(s.rf[j].Count(el))
				}
			}
			for _, j := range pi {
				if s.p[j].filled {
					filled++
				} else {
					open, q, product = &s.p[j], int64(s.pf[j].Count(el)), true
				}
			}
			if len(ri)+len(pi) != filled+1 {
				continue
			}
			ra, rb := s.sums(el, s.r, s.rf)
			pa, pb := s.sums(el, s.p, s.pf)
			inv := NewFraction(1, q)
			if product {
				open.a = ra.Sub(pa).Mul(inv)
				open.b = rb.Sub(pb).Mul(inv)
			} else {
				open.a = pa.Sub(ra).Mul(inv)
				open.b = pb.Sub(rb).Mul(inv)
			}
			open.filled = true
			s.elements = append(s.elements[:i:i], s.elements[i+1:]...)
			s.log.Debug("fill", zap.String("element", el), zap.Stringer("a", open.a), zap.Stringer("b", open.b))
			progress = true
			break
		}
		if !progress {
			return
		}
	}
}

// sums returns the atoms of an element on one side, weighted by the A and B
// parts of the coefficients. Unfilled compounds contribute nothing.
func (s *staged) sums(el string, slots []slot, fs []*Formula) (a, b Fraction) {
	for i, f := range fs {
		q := Int(int64(f.Count(el)))
		a = a.Add(slots[i].a.Mul(q))
		b = b.Add(slots[i].b.Mul(q))
	}
	return a, b
}

func (s *staged) allFilled() bool {
	_, ok := s.undetermined()
	return !ok
}

// undetermined returns the first compound whose coefficient has not been
// expressed in terms of the unknowns.
func (s *staged) undetermined() (*Formula, bool) {
	for i, r := range s.r {
		if !r.filled {
			return s.rf[i], true
		}
	}
	for i, p := range s.p {
		if !p.filled {
			return s.pf[i], true
		}
	}
	return nil, false
}

// resolve uses the first remaining element that relates A and B to choose
// their values, scaled to integers with no common factor.
func (s *staged) resolve() (a, b Fraction, err error) {
	for _, el := range s.elements {
		ra, rb := s.sums(el, s.r, s.rf)
		pa, pb := s.sums(el, s.p, s.pf)
		// a·(ra-pa) = b·(pb-rb), with the sides arranged by the integer parts
		// of the A sums.
		var sa, sb Fraction
		if ra.trunc() >= pa.trunc() {
			sa, sb = ra.Sub(pa), pb.Sub(rb)
		} else {
			sa, sb = pa.Sub(ra), rb.Sub(pb)
		}
		if sa.Sign() == 0 && sb.Sign() == 0 {
			continue
		}
		if sa.Sign() < 0 && sb.Sign() < 0 {
			sa, sb = sa.Neg(), sb.Neg()
		}
		scale := NewFraction(LCM(sa.Den(), sb.Den()), GCD(sa.Num(), sb.Num()))
		sa, sb = sa.Mul(scale), sb.Mul(scale)
		s.log.Debug("resolve", zap.String("element", el), zap.Stringer("A", sb), zap.Stringer("B", sa))
		return sb, sa, nil
	}
	return Fraction{}, Fraction{}, &UnsupportedError{Reason: "no element relates the two unknowns"}
}

// values evaluates every coefficient for given values of A and B.
func (s *staged) values(a, b Fraction) []Fraction {
	r := make([]Fraction, 0, len(s.r)+len(s.p))
	for _, x := range s.r {
		r = append(r, x.value(a, b))
	}
	for _, x := range s.p {
		r = append(r, x.value(a, b))
	}
	return r
}

// integers scales fractional coefficients to the smallest positive integers.
func integers(coefs []Fraction) ([]int64, error) {
	l := int64(1)
	for _, c := range coefs {
		l = LCM(l, c.Den())
	}
	r := make([]int64, len(coefs))
	g := int64(0)
	for i, c := range coefs {
		r[i] = c.Mul(Int(l)).Num()
		g = GCD(g, r[i])
	}
	return normalize(r, g)
}

// normalize divides coefficients by g and orients them to be positive.
func normalize(r []int64, g int64) ([]int64, error) {
	if g == 0 {
		return nil, &UnsupportedError{Reason: "only the trivial solution"}
	}
	neg := true
	for _, v := range r {
		neg = neg && v <= 0
	}
	for i := range r {
		r[i] /= g
		if neg {
			r[i] = -r[i]
		}
		if r[i] <= 0 {
			return nil, &UnsupportedError{Reason: "no solution with positive coefficients"}
		}
	}
	return r, nil
}
