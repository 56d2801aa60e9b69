package reactions

// newFormula flattens a parsed term list into a Formula. Panics with an
// *OverflowError if a count is too large.
func newFormula(nodes []*node) *Formula {
	f := &Formula{nodes: nodes, index: make(map[string]int)}
	for _, n := range nodes {
		n.eval(f, 1)
	}
	return f
}

// formulaOf creates a Formula directly from element counts.
func formulaOf(terms []Term) *Formula {
	nodes := make([]*node, len(terms))
	for i, t := range terms {
		nodes[i] = &node{kind: nodeElement, name: t.Element, count: t.Count}
	}
	return newFormula(nodes)
}

// eval adds the atoms of n, repeated mult times, to f.
func (n *node) eval(f *Formula, mult int) {
	m := mulCount(mult, n.count)
	switch n.kind {
	case nodeElement:
		f.add(n.name, m)
	case nodeGroup:
		for _, s := range n.sub {
			s.eval(f, m)
		}
	default:
		panic("reactions: invalid node kind " + n.kind.String())
	}
}

// add adds c atoms of an element, summing with earlier appearances.
func (f *Formula) add(el string, c int) {
	if i, ok := f.index[el]; ok {
		f.terms[i].Count = addCount(f.terms[i].Count, c)
		return
	}
	f.index[el] = len(f.terms)
	f.terms = append(f.terms, Term{Element: el, Count: c})
}

func mulCount(a, b int) int {
	v := mul64(int64(a), int64(b))
	if int64(int(v)) != v {
		panic(&OverflowError{Op: "count"})
	}
	return int(v)
}

func addCount(a, b int) int {
	v := add64(int64(a), int64(b))
	if int64(int(v)) != v {
		panic(&OverflowError{Op: "count"})
	}
	return int(v)
}
