package reactions

import (
	"io"
	"strconv"
	"strings"
)

// Formula = Term { Term }
// Term = Element [ Count ] | '(' Formula ')' [ Count ]
// Element = upper { lower }
// Count = digit { digit }

// Formula is a parsed chemical formula. A Formula is immutable and safe for
// concurrent use.
type Formula struct {
	// nodes is the list of top-level terms.
	nodes []*node
	// terms is the flattened element counts in order of first appearance.
	terms []Term
	// index maps element symbols to their indices in terms.
	index map[string]int
}

// Term is the total count of one element in a formula.
type Term struct {
	Element string
	Count   int
}

// Parse parses a formula. Runes other than ASCII letters, digits, and
// parentheses are ignored, so charge markers and whitespace may appear
// anywhere. Each element symbol must be a known element or a symbol added
// with the Symbols option.
//
// Every error caused by invalid input implements InputError and matches
// ErrMalformedFormula. A count too large to represent results in an
// *OverflowError.
func Parse(src io.RuneScanner, opts ...ParseOption) (f *Formula, err error) {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	l := lex(src, p.known)
	nodes, _, err := parseFormula(l, lexToken{})
	if err != nil {
		return nil, err
	}
	defer catch(&err)
	return newFormula(nodes), nil
}

// ParseString is a shortcut to parse a formula from a string.
func ParseString(s string, opts ...ParseOption) (*Formula, error) {
	return Parse(strings.NewReader(s), opts...)
}

// parseFormula parses terms up to the end of input or, if open is an open
// bracket, up to the matching close bracket. It returns the terms and the
// token that ended them.
func parseFormula(l *lexer, open lexToken) ([]*node, lexToken, error) {
	var nodes []*node
	for {
		tok, err := l.next()
		if err != nil {
			return nil, tok, err
		}
		switch tok.kind {
		case tokenEOF:
			if open.kind == tokenOpen {
				return nil, tok, &BracketError{Col: open.pos, Left: open.text}
			}
			if len(nodes) == 0 {
				return nil, tok, &EmptyFormulaError{Col: tok.pos}
			}
			return nodes, tok, nil
		case tokenClose:
			if open.kind != tokenOpen {
				return nil, tok, &BracketError{Col: tok.pos, Right: tok.text}
			}
			if len(nodes) == 0 {
				return nil, tok, &EmptyFormulaError{Col: tok.pos, End: tok.text}
			}
			return nodes, tok, nil
		case tokenElement:
			n := &node{kind: nodeElement, name: tok.text}
			if err := parseCount(l, n); err != nil {
				return nil, tok, err
			}
			nodes = append(nodes, n)
		case tokenOpen:
			sub, _, err := parseFormula(l, tok)
			if err != nil {
				return nil, tok, err
			}
			n := &node{kind: nodeGroup, sub: sub}
			if err := parseCount(l, n); err != nil {
				return nil, tok, err
			}
			nodes = append(nodes, n)
		case tokenCount:
			return nil, tok, &CountError{Col: tok.pos, Count: tok.text, Orphan: true}
		default:
			panic("reactions: unexpected token " + tok.String())
		}
	}
}

// parseCount sets the count of n from the next token, if it is a count.
func parseCount(l *lexer, n *node) error {
	n.count = 1
	tok, err := l.next()
	if err != nil {
		return err
	}
	if tok.kind != tokenCount {
		l.push(tok)
		return nil
	}
	c, err := strconv.Atoi(tok.text)
	if err != nil || c == 0 {
		return &CountError{Col: tok.pos, Count: tok.text}
	}
	n.count = c
	return nil
}

// Terms returns the element counts of the formula in order of first
// appearance.
func (f *Formula) Terms() []Term {
	r := make([]Term, len(f.terms))
	copy(r, f.terms)
	return r
}

// Elements returns the element symbols in the formula in order of first
// appearance.
func (f *Formula) Elements() []string {
	r := make([]string, len(f.terms))
	for i, t := range f.terms {
		r[i] = t.Element
	}
	return r
}

// Count returns the total number of atoms of an element in the formula.
func (f *Formula) Count(element string) int {
	i, ok := f.index[element]
	if !ok {
		return 0
	}
	return f.terms[i].Count
}

// Has returns whether the formula contains an element.
func (f *Formula) Has(element string) bool {
	_, ok := f.index[element]
	return ok
}

// String returns the formula in canonical form: the groups as written, with
// noise removed and counts of 1 omitted. Parsing the result gives an equal
// formula.
func (f *Formula) String() string {
	var b strings.Builder
	fmtnodes(&b, f.nodes, false)
	return b.String()
}

// Tree returns the formula with its terms separated and nested groups
// distinguished by alternating brackets.
func (f *Formula) Tree() string {
	var b strings.Builder
	fmtnodes(&b, f.nodes, true)
	return b.String()
}
