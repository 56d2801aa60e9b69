package reactions

import (
	"math/big"
	"strconv"
)

// nullspace solves for coefficients as the null space of the element by
// compound matrix, with reactant atoms counted positive and product atoms
// negative. The null space must have dimension exactly one.
func nullspace(elements []string, reactants, products []*Formula) ([]int64, error) {
	cols := len(reactants) + len(products)
	m := make([][]*big.Rat, len(elements))
	for i, el := range elements {
		row := make([]*big.Rat, cols)
		for j, f := range reactants {
			row[j] = new(big.Rat).SetInt64(int64(f.Count(el)))
		}
		for j, f := range products {
			row[len(reactants)+j] = new(big.Rat).SetInt64(-int64(f.Count(el)))
		}
		m[i] = row
	}

	// Reduce to row echelon form with unit pivots, eliminating above and
	// below each pivot.
	var pivots []int
	var t big.Rat
	for col, row := 0, 0; col < cols && row < len(m); col++ {
		p := -1
		for i := row; i < len(m); i++ {
			if m[i][col].Sign() != 0 {
				p = i
				break
			}
		}
		if p < 0 {
			continue
		}
		m[row], m[p] = m[p], m[row]
		inv := new(big.Rat).Inv(m[row][col])
		for j := col; j < cols; j++ {
			m[row][j].Mul(m[row][j], inv)
		}
		for i := range m {
			if i == row || m[i][col].Sign() == 0 {
				continue
			}
			factor := new(big.Rat).Set(m[i][col])
			for j := col; j < cols; j++ {
				t.Mul(factor, m[row][j])
				m[i][j].Sub(m[i][j], &t)
			}
		}
		pivots = append(pivots, col)
		row++
	}

	free := cols - len(pivots)
	switch {
	case free == 0:
		return nil, &UnsupportedError{Reason: "only the trivial solution"}
	case free > 1:
		return nil, &UnsupportedError{Reason: strconv.Itoa(free) + " independent solutions"}
	}
	fc := 0
	for i, p := range pivots {
		if p != i {
			break
		}
		fc = i + 1
	}

	x := make([]*big.Rat, cols)
	x[fc] = big.NewRat(1, 1)
	for i, p := range pivots {
		x[p] = new(big.Rat).Neg(m[i][fc])
	}

	// Scale to integers.
	l := big.NewInt(1)
	var g big.Int
	for _, v := range x {
		g.GCD(nil, nil, l, v.Denom())
		l.Mul(l, new(big.Int).Quo(v.Denom(), &g))
	}
	ints := make([]*big.Int, cols)
	gcd := new(big.Int)
	for i, v := range x {
		n := new(big.Int).Mul(v.Num(), l)
		n.Quo(n, v.Denom())
		ints[i] = n
		gcd.GCD(nil, nil, gcd, new(big.Int).Abs(n))
	}
	r := make([]int64, cols)
	for i, n := range ints {
		n.Quo(n, gcd)
		if !n.IsInt64() {
			return nil, &OverflowError{Op: "coefficient"}
		}
		r[i] = n.Int64()
	}
	return normalize(r, 1)
}
