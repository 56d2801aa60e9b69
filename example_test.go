package reactions_test

import (
	"fmt"

	"github.com/zephyrtronium/reactions"
)

func ExampleBalance() {
	for _, s := range []string{
		"H2 + O2 --> H2O",
		"Fe + O2 --> Fe2O3",
		"KMnO4 + HCl --> KCl + MnCl2 + H2O + Cl2",
	} {
		eq, err := reactions.Balance(s)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(eq)
	}

	// Output:
	// 2H2 + O2 --> 2H2O
	// 4Fe + 3O2 --> 2Fe2O3
	// 2KMnO4 + 16HCl --> 2KCl + 2MnCl2 + 8H2O + 5Cl2
}

func ExampleBalance_error() {
	_, err := reactions.Balance("H2 --> O2")
	fmt.Println(err)

	// Output:
	// elements differ between sides; only in reactants: H; only in products: O
}

func ExampleParseString() {
	f, err := reactions.ParseString("K4(Fe(CN)6)")
	if err != nil {
		panic(err)
	}
	fmt.Println(f.Tree())
	for _, t := range f.Terms() {
		fmt.Println(t.Element, t.Count)
	}

	// Output:
	// K4 (Fe [C N]6)
	// K 4
	// Fe 1
	// C 6
	// N 6
}

func ExampleEmpiricalFormula() {
	f, err := reactions.EmpiricalFormula([]reactions.Amount{{Element: "Fe", Moles: 0.5}, {Element: "O", Moles: 0.75}})
	if err != nil {
		panic(err)
	}
	fmt.Println(f)

	// Output:
	// Fe2O3
}

func ExampleCombustion() {
	r, err := reactions.Combustion("C3H8")
	if err != nil {
		panic(err)
	}
	fmt.Println(r)

	// Output:
	// C3H8 + 5O2 --> 4H2O + 3CO2
}
