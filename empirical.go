package reactions

import (
	"math"
	"strconv"
)

// Amount is a relative amount of an element, in moles or any proportional
// unit.
type Amount struct {
	Element string
	Moles   float64
}

// AmountError is an error indicating an amount that is not a positive finite
// number.
type AmountError struct {
	Amount
}

func (err *AmountError) Error() string {
	return "invalid amount " + strconv.FormatFloat(err.Moles, 'g', -1, 64) + " of " + strconv.Quote(err.Element)
}

func (err *AmountError) Unwrap() error {
	return ErrMalformedFormula
}

// EmpiricalFormula finds the simplest whole-number formula with the given
// relative amounts of each element. Amounts are divided by the smallest, each
// ratio is approximated by a simple fraction using Approximate, and the
// fractions are scaled to the smallest integers. Repeated elements are
// summed. Elements must be known symbols or allowed by the options.
func EmpiricalFormula(amounts []Amount, opts ...ParseOption) (f *Formula, err error) {
	if len(amounts) == 0 {
		return nil, &EmptyFormulaError{Col: 1}
	}
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	var merged []Amount
	index := make(map[string]int)
	for i, a := range amounts {
		if !validSymbol(a.Element) || !p.known(a.Element) {
			return nil, &SymbolError{Col: i + 1, Symbol: a.Element}
		}
		if !(a.Moles > 0) || math.IsInf(a.Moles, 0) {
			return nil, &AmountError{a}
		}
		if k, ok := index[a.Element]; ok {
			merged[k].Moles += a.Moles
			continue
		}
		index[a.Element] = len(merged)
		merged = append(merged, a)
	}
	least := merged[0].Moles
	for _, a := range merged {
		least = math.Min(least, a.Moles)
	}

	defer catch(&err)
	ratios := make([]Fraction, len(merged))
	l := int64(1)
	for i, a := range merged {
		r, err := Approximate(a.Moles / least)
		if err != nil {
			return nil, err
		}
		ratios[i] = r
		l = LCM(l, r.Den())
	}
	counts := make([]int64, len(merged))
	g := int64(0)
	for i, r := range ratios {
		counts[i] = r.Mul(Int(l)).Num()
		g = GCD(g, counts[i])
	}
	terms := make([]Term, len(merged))
	for i, a := range merged {
		terms[i] = Term{Element: a.Element, Count: int(counts[i] / g)}
	}
	return formulaOf(terms), nil
}
