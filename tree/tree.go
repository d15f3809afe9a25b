// Package tree implements the parse tree produced by a driver run: a
// Node unifying terminal (Token) and non-terminal (Production) results
// under one type, grounded on the host repository's types.ParseTree (a
// Terminal/Value/Source/Children value type with a structural Equal).
// String()'s depth-indented rendering is this runtime's own: a
// boolean-per-depth "was this ancestor its parent's last child" path
// walked to pick a box-drawing connector, rather than the host's
// threaded-prefix-string approach.
package tree

import (
	"fmt"
	"strings"

	"github.com/cederberg/grammatica-sub000/token"
)

// Connector glyphs for String()'s depth-indented rendering: at each
// ancestor depth, a node draws either a continuing rail (another sibling
// follows at that depth) or blank space (that ancestor was its parent's
// last child, so nothing more hangs below it there).
const (
	connectorMid   = "├── "
	connectorLast  = "└── "
	connectorRail  = "│   "
	connectorBlank = "    "
)

// Node is one node of a parse tree: either a terminal wrapping a matched
// Token, or a non-terminal naming a production with its matched
// alternative's children. Non-terminal nodes may also carry a Value
// computed by an analyzer callback (§4.8's AddValue/GetValue surface).
type Node struct {
	Terminal bool

	// Name is the token pattern name for a terminal node, or the
	// production name for a non-terminal node.
	Name string

	// Alternative is the index of the alternative matched, meaningful
	// only when Terminal is false.
	Alternative int

	// Source is the matched token, populated only when Terminal is true.
	Source *token.Token

	// Children holds the sub-nodes of a non-terminal node in match order.
	Children []*Node

	parent *Node
	value  any
}

// NewTerminal returns a leaf node wrapping tok.
func NewTerminal(name string, tok *token.Token) *Node {
	return &Node{Terminal: true, Name: name, Source: tok}
}

// NewNonTerminal returns an interior node for a production match.
func NewNonTerminal(name string, alt int) *Node {
	return &Node{Name: name, Alternative: alt}
}

// AddChild appends child to n's children and sets its parent back-edge.
func (n *Node) AddChild(child *Node) {
	child.parent = n
	n.Children = append(n.Children, child)
}

// Parent returns the node's parent, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Value returns the value last stored by SetValue, or nil.
func (n *Node) Value() any { return n.value }

// SetValue stores a value computed by an analyzer callback against this
// node, per §4.8.
func (n *Node) SetValue(v any) { n.value = v }

// Copy returns a deep copy of the subtree rooted at n. Parent back-edges
// in the copy point within the copy, not the original.
func (n *Node) Copy() *Node {
	cp := &Node{
		Terminal:    n.Terminal,
		Name:        n.Name,
		Alternative: n.Alternative,
		Source:      n.Source,
		value:       n.value,
		Children:    make([]*Node, len(n.Children)),
	}
	for i, c := range n.Children {
		if c != nil {
			childCopy := c.Copy()
			childCopy.parent = cp
			cp.Children[i] = childCopy
		}
	}
	return cp
}

// Equal reports whether n and o have identical structure: same
// terminal/non-terminal kind, same Name, and recursively equal children.
// Computed values and parent links are not compared.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Terminal != o.Terminal || n.Name != o.Name {
		return false
	}
	if n.Terminal {
		return n.Source.Image() == o.Source.Image()
	}
	if len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// String returns a prettified, line-by-line representation of the subtree
// rooted at n suitable for tree-shape comparisons in tests.
func (n *Node) String() string {
	var sb strings.Builder
	n.writeLines(&sb, nil)
	return sb.String()
}

// writeLines renders n's own line followed by one line per descendant.
// ancestorIsLast[d] records, for the ancestor at depth d, whether it was
// its own parent's final child: that decides whether the column at depth
// d draws a continuing rail or blank space for every line below it. The
// last entry additionally selects n's own connector glyph.
func (n *Node) writeLines(sb *strings.Builder, ancestorIsLast []bool) {
	for depth, last := range ancestorIsLast {
		switch {
		case depth < len(ancestorIsLast)-1 && last:
			sb.WriteString(connectorBlank)
		case depth < len(ancestorIsLast)-1:
			sb.WriteString(connectorRail)
		case last:
			sb.WriteString(connectorLast)
		default:
			sb.WriteString(connectorMid)
		}
	}

	if n.Terminal {
		fmt.Fprintf(sb, "(TERM %s %q)", n.Name, n.Source.Image())
	} else {
		fmt.Fprintf(sb, "( %s )", n.Name)
	}

	for i, child := range n.Children {
		sb.WriteRune('\n')
		path := make([]bool, len(ancestorIsLast)+1)
		copy(path, ancestorIsLast)
		path[len(path)-1] = i == len(n.Children)-1
		child.writeLines(sb, path)
	}
}
