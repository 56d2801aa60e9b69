// Package reactions parses chemical formulas and balances chemical equations
// with exact rational arithmetic.
//
// Formulas are written the usual way: "C6H12O6", "Mg(OH)2", "K4(Fe(CN)6)".
// Element symbols are an uppercase letter followed by lowercase letters, so
// "Co" is cobalt and "CO" is carbon monoxide. Anything that is not a letter,
// digit, or parenthesis is ignored, so charge signs as in "Cl-" pass through.
//
// Equations separate reactants from products with "-->" and compounds with
// " + ". Balance finds the smallest positive integer coefficients:
//
//	eq, err := reactions.Balance("Fe + O2 --> Fe2O3")
//	// eq.String() == "4Fe + 3O2 --> 2Fe2O3"
//
// The default method solves equations that need at most two unknowns, which
// covers synthesis, decomposition, single and double replacement, combustion,
// and typical redox reactions. Polyatomic ions that pass through a reaction
// unchanged are treated as single units first. MethodMatrix solves any
// equation with exactly one balance.
package reactions
