package reactions

import "strconv"

// ParseOption is an option for parsing formulas.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	symsopt    []string
	lexicalopt struct{}
)

// parsectx holds general data for parsing.
type parsectx struct {
	// syms is the set of extra symbols accepted as elements.
	syms map[string]bool
	// lexical disables the symbol table entirely.
	lexical bool
}

// known returns whether sym is a valid element token under the options.
func (p *parsectx) known(sym string) bool {
	return p.lexical || symtab[sym] || p.syms[sym]
}

// Symbols adds symbols to the table of element tokens for parsing. Each symbol
// must be an uppercase ASCII letter followed by any number of lowercase ASCII
// letters.
func Symbols(syms ...string) ParseOption {
	for _, s := range syms {
		if !validSymbol(s) {
			panic("reactions: invalid symbol " + strconv.Quote(s))
		}
	}
	return symsopt(syms)
}

func (o symsopt) parseOption(p parsectx) parsectx {
	m := make(map[string]bool, len(p.syms)+len(o))
	for k := range p.syms {
		m[k] = true
	}
	for _, s := range o {
		m[s] = true
	}
	p.syms = m
	return p
}

// Lexical disables the symbol table, so that any uppercase letter followed by
// lowercase letters is an element token.
func Lexical() ParseOption {
	return lexicalopt{}
}

func (lexicalopt) parseOption(p parsectx) parsectx {
	p.lexical = true
	return p
}

func validSymbol(s string) bool {
	if s == "" || s[0] < 'A' || 'Z' < s[0] {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < 'a' || 'z' < s[i] {
			return false
		}
	}
	return true
}
