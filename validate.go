package reactions

import (
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// IsBalanced reports whether an equation conserves every element. Each
// compound's leading digits multiply the atoms that follow; a symbol is an
// uppercase letter with any lowercase letters after it, and digits after a
// symbol or a close parenthesis are its count. Both sides must contain the
// same symbols with the same totals. Input that cannot be read this way, or
// whose totals do not fit in an int64, is not balanced.
//
// IsBalanced shares no code with the formula parser so that each can check
// the other.
func IsBalanced(equation string) bool {
	left, right, ok := strings.Cut(equation, Arrow)
	if !ok || strings.Contains(right, Arrow) {
		return false
	}
	l, ok := tally(left)
	if !ok {
		return false
	}
	r, ok := tally(right)
	if !ok || len(l) != len(r) {
		return false
	}
	for sym, n := range l {
		if m, ok := r[sym]; !ok || m != n {
			return false
		}
	}
	return true
}

// tally counts the atoms of every symbol on one side of an equation.
func tally(side string) (map[string]int64, bool) {
	totals := make(map[string]int64)
	compounds := 0
	for _, c := range strings.Split(side, "+") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		compounds++
		k := 0
		for k < len(c) && '0' <= c[k] && c[k] <= '9' {
			k++
		}
		mult := int64(1)
		if k > 0 {
			n, err := strconv.ParseInt(c[:k], 10, 64)
			if err != nil {
				return nil, false
			}
			mult = n
		}
		atoms, ok := atomCounts(c[k:])
		if !ok {
			return nil, false
		}
		for sym, n := range atoms {
			if !merge(totals, sym, n, mult) {
				return nil, false
			}
		}
	}
	return totals, compounds > 0
}

// atomCounts counts the atoms in a single formula using a stack of open
// groups.
func atomCounts(s string) (map[string]int64, bool) {
	stack := []map[string]int64{{}}
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case 'A' <= c && c <= 'Z':
			j := i + 1
			for j < len(s) && 'a' <= s[j] && s[j] <= 'z' {
				j++
			}
			n, k, ok := trailingCount(s, j)
			if !ok {
				return nil, false
			}
			if !merge(stack[len(stack)-1], s[i:j], n, 1) {
				return nil, false
			}
			i = k
		case c == '(':
			stack = append(stack, map[string]int64{})
			i++
		case c == ')':
			if len(stack) == 1 {
				return nil, false
			}
			n, k, ok := trailingCount(s, i+1)
			if !ok {
				return nil, false
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for sym, m := range top {
				if !merge(stack[len(stack)-1], sym, m, n) {
					return nil, false
				}
			}
			i = k
		case 'a' <= c && c <= 'z', '0' <= c && c <= '9':
			return nil, false
		default:
			i++
		}
	}
	if len(stack) != 1 {
		return nil, false
	}
	return stack[0], true
}

// trailingCount reads the digits of s starting at i. The count is 1 if there
// are none.
func trailingCount(s string, i int) (n int64, end int, ok bool) {
	j := i
	for j < len(s) && '0' <= s[j] && s[j] <= '9' {
		j++
	}
	if j == i {
		return 1, i, true
	}
	n, err := strconv.ParseInt(s[i:j], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return n, j, true
}

// merge adds n*mult atoms of sym to counts. It reports false if the total
// overflows. Both n and mult are non-negative.
func merge(counts map[string]int64, sym string, n, mult int64) bool {
	hi, lo := bits.Mul64(uint64(n), uint64(mult))
	if hi != 0 || lo > math.MaxInt64 {
		return false
	}
	t, carry := bits.Add64(uint64(counts[sym]), lo, 0)
	if carry != 0 || t > math.MaxInt64 {
		return false
	}
	counts[sym] = int64(t)
	return true
}
