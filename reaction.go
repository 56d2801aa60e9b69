package reactions

import "strings"

// Reaction is a balanced chemical reaction.
type Reaction struct {
	// Input is the equation the reaction was created from.
	Input string
	// Equation is the balanced equation.
	Equation *Equation
}

// NewReaction balances an equation and returns the reaction.
func NewReaction(equation string, opts ...BalanceOption) (*Reaction, error) {
	eq, err := Balance(equation, opts...)
	if err != nil {
		return nil, err
	}
	return &Reaction{Input: equation, Equation: eq}, nil
}

// FromCompounds creates a reaction from lists of reactant and product
// formulas.
func FromCompounds(reactants, products []string, opts ...BalanceOption) (*Reaction, error) {
	return NewReaction(strings.Join(reactants, " + ")+" "+Arrow+" "+strings.Join(products, " + "), opts...)
}

// Combustion creates the reaction of burning a fuel in oxygen to form water
// and carbon dioxide.
func Combustion(fuel string, opts ...BalanceOption) (*Reaction, error) {
	return FromCompounds([]string{fuel, "O2"}, []string{"H2O", "CO2"}, opts...)
}

// Reactants returns the compounds consumed by the reaction.
func (r *Reaction) Reactants() []Compound {
	return append([]Compound(nil), r.Equation.Reactants...)
}

// Products returns the compounds produced by the reaction.
func (r *Reaction) Products() []Compound {
	return append([]Compound(nil), r.Equation.Products...)
}

func (r *Reaction) String() string {
	return r.Equation.String()
}
