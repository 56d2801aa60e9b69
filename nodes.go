package reactions

import (
	"strconv"
	"strings"
)

// node is a node in the syntax tree of a formula.
type node struct {
	kind nodeKind

	// name is the symbol of an element node.
	name string
	// count is the repeat count following the element or group.
	count int
	// sub is the list of terms in a group.
	sub []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeElement // name repeated count times
	nodeGroup   // sub repeated count times
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=nodeKind -trimprefix=node

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false, true)
	return b.String()
}

// fmt writes the formula text of n to b. If tree is true, terms are separated
// by spaces and nested groups alternate between parentheses and square
// brackets, so the structure is visible.
func (n *node) fmt(b *strings.Builder, square, tree bool) {
	switch n.kind {
	case nodeElement:
		b.WriteString(n.name)
	case nodeGroup:
		var l, r byte = '(', ')'
		if square && tree {
			l, r = '[', ']'
		}
		b.WriteByte(l)
		for i, m := range n.sub {
			if tree && i > 0 {
				b.WriteByte(' ')
			}
			m.fmt(b, !square, tree)
		}
		b.WriteByte(r)
	default:
		panic("reactions: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
	if n.count != 1 {
		b.WriteString(strconv.Itoa(n.count))
	}
}

// fmtnodes writes a list of terms.
func fmtnodes(b *strings.Builder, nodes []*node, tree bool) {
	for i, n := range nodes {
		if tree && i > 0 {
			b.WriteByte(' ')
		}
		n.fmt(b, false, tree)
	}
}
