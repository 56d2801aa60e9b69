package reactions

import (
	"errors"
	"strconv"
	"strings"
)

// Error kinds. Every error returned by this package matches exactly one of
// these through errors.Is.
var (
	// ErrMalformedFormula is the kind of errors describing input that does not
	// follow the formula or equation grammar.
	ErrMalformedFormula = errors.New("malformed formula")
	// ErrUnbalancedElementSets is the kind of errors describing equations
	// whose sides contain different elements.
	ErrUnbalancedElementSets = errors.New("unbalanced element sets")
	// ErrUnsupportedEquation is the kind of errors describing equations the
	// balancing method cannot solve.
	ErrUnsupportedEquation = errors.New("unsupported equation")
	// ErrArithmeticOverflow is the kind of errors describing numbers too large
	// to represent.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)

// BracketError is an error indicating unmatched parentheses in a formula. It
// implements InputError.
type BracketError struct {
	// Col is the position of the unmatched bracket.
	Col int
	// Left is the opening bracket, or empty if a close bracket has no match.
	Left string
	// Right is the closing bracket, or empty if an open bracket has no match.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Unwrap() error {
	return ErrMalformedFormula
}

// SymbolError is an error indicating an element symbol that is not in the
// symbol table. It implements InputError.
type SymbolError struct {
	// Col is the position of the symbol.
	Col int
	// Symbol is the unknown symbol.
	Symbol string
}

func (err *SymbolError) Error() string {
	return errpos(err.Col, "unknown element "+strconv.Quote(err.Symbol))
}

func (err *SymbolError) Pos() int {
	return err.Col
}

func (err *SymbolError) Unwrap() error {
	return ErrMalformedFormula
}

// CountError is an error indicating an invalid count. It implements
// InputError.
type CountError struct {
	// Col is the position of the count.
	Col int
	// Count is the text of the count.
	Count string
	// Orphan is true if the count follows neither an element nor a group.
	Orphan bool
}

func (err *CountError) Error() string {
	switch {
	case err.Orphan:
		return errpos(err.Col, "count "+err.Count+" does not follow an element or group")
	case strings.Trim(err.Count, "0") == "":
		return errpos(err.Col, "zero count")
	}
	return errpos(err.Col, "count "+err.Count+" out of range")
}

func (err *CountError) Pos() int {
	return err.Col
}

func (err *CountError) Unwrap() error {
	return ErrMalformedFormula
}

// EmptyFormulaError is an error indicating a formula or group with no terms.
// It implements InputError.
type EmptyFormulaError struct {
	// Col is the position of the token that ended the empty formula.
	Col int
	// End is the token that ended the formula, or empty at the end of input.
	End string
}

func (err *EmptyFormulaError) Error() string {
	if err.End == "" {
		return errpos(err.Col, "no formula")
	}
	return errpos(err.Col, "no formula up to "+strconv.Quote(err.End))
}

func (err *EmptyFormulaError) Pos() int {
	return err.Col
}

func (err *EmptyFormulaError) Unwrap() error {
	return ErrMalformedFormula
}

// EquationError is an error indicating an equation that does not have the
// form "reactants --> products". It implements InputError.
type EquationError struct {
	// Col is the position of the problem.
	Col int
	// Reason describes the problem.
	Reason string
}

func (err *EquationError) Error() string {
	return errpos(err.Col, err.Reason)
}

func (err *EquationError) Pos() int {
	return err.Col
}

func (err *EquationError) Unwrap() error {
	return ErrMalformedFormula
}

// CompoundError wraps an error parsing one compound of an equation.
type CompoundError struct {
	// Side is "reactant" or "product".
	Side string
	// Index is the 1-based index of the compound on its side.
	Index int
	// Text is the compound as written.
	Text string
	// Err is the parse error.
	Err error
}

func (err *CompoundError) Error() string {
	return err.Side + " " + strconv.Itoa(err.Index) + " " + strconv.Quote(err.Text) + ": " + err.Err.Error()
}

func (err *CompoundError) Unwrap() error {
	return err.Err
}

// ElementSetError is an error indicating that the two sides of an equation
// contain different elements.
type ElementSetError struct {
	// Reactants is the sorted list of elements appearing only in reactants.
	Reactants []string
	// Products is the sorted list of elements appearing only in products.
	Products []string
}

func (err *ElementSetError) Error() string {
	var b strings.Builder
	b.WriteString("elements differ between sides")
	if len(err.Reactants) > 0 {
		b.WriteString("; only in reactants: ")
		b.WriteString(strings.Join(err.Reactants, ", "))
	}
	if len(err.Products) > 0 {
		b.WriteString("; only in products: ")
		b.WriteString(strings.Join(err.Products, ", "))
	}
	return b.String()
}

func (err *ElementSetError) Unwrap() error {
	return ErrUnbalancedElementSets
}

// UnsupportedError is an error indicating an equation that the balancing
// method cannot solve, typically because it needs more than two independent
// unknowns.
type UnsupportedError struct {
	// Element is the element being considered when the method failed, if any.
	Element string
	// Reason describes the failure.
	Reason string
}

func (err *UnsupportedError) Error() string {
	if err.Element == "" {
		return "cannot balance: " + err.Reason
	}
	return "cannot balance " + err.Element + ": " + err.Reason
}

func (err *UnsupportedError) Unwrap() error {
	return ErrUnsupportedEquation
}

// OverflowError is an error indicating that a number exceeded the range of
// exact arithmetic.
type OverflowError struct {
	// Op is the operation that overflowed.
	Op string
}

func (err *OverflowError) Error() string {
	return "overflow in " + err.Op
}

func (err *OverflowError) Unwrap() error {
	return ErrArithmeticOverflow
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// malformed input text implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SymbolError)(nil)
	_ InputError = (*CountError)(nil)
	_ InputError = (*EmptyFormulaError)(nil)
	_ InputError = (*EquationError)(nil)
	_ InputError = (*LexError)(nil)
)
