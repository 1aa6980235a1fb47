// Package lino implements the link-notation data model: parsing raw text
// into entry trees, flattening entries for comparison, and rendering trees
// back to canonical text.
//
// An entry is either a Leaf (one token) or a Compound (an ordered, non-empty
// list of child nodes). Each input line produces exactly one entry.
package lino

import "strings"

// Node is one tree unit of a parsed document. A leaf carries Token and has
// no children; a compound carries Children and an empty Token.
type Node struct {
	Token    string
	Children []*Node
}

// Leaf creates a leaf node holding a single token.
func Leaf(token string) *Node {
	return &Node{Token: token}
}

// Compound creates a compound node from the given children.
func Compound(children ...*Node) *Node {
	return &Node{Children: children}
}

// IsLeaf reports whether the node is a leaf.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Flatten returns the left-to-right sequence of leaf tokens under the node.
// It uses an explicit stack so externally supplied trees cannot blow the
// call stack; cycle freedom is enforced at the parser boundary.
func (n *Node) Flatten() []string {
	var tokens []string
	stack := []*Node{n}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if cur.IsLeaf() {
			tokens = append(tokens, cur.Token)
			continue
		}
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}

	return tokens
}

// Content returns the flattened tokens joined with single spaces. Two
// entries are considered equal exactly when their Content values match.
func (n *Node) Content() string {
	return strings.Join(n.Flatten(), " ")
}
