package structure

import (
	"fmt"
)

// Kind classifies a structural node.
type Kind int

const (
	// KindModule is the root of every tree.
	KindModule Kind = iota
	// KindClass is a class definition.
	KindClass
	// KindFunction is a def outside a class body (module level or nested).
	KindFunction
	// KindMethod is a def directly inside a class body.
	KindMethod
	// KindIf is an if/elif/else header.
	KindIf
	// KindFor is a for (or async for) header.
	KindFor
	// KindWhile is a while header.
	KindWhile
)

var kindNames = [...]string{
	KindModule:   "module",
	KindClass:    "class",
	KindFunction: "function",
	KindMethod:   "method",
	KindIf:       "if",
	KindFor:      "for",
	KindWhile:    "while",
}

// Kinds lists every kind in declaration order.
var Kinds = []Kind{KindModule, KindClass, KindFunction, KindMethod, KindIf, KindFor, KindWhile}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsControlFlow reports whether k is one of the optional control-flow kinds.
func (k Kind) IsControlFlow() bool {
	return k == KindIf || k == KindFor || k == KindWhile
}

// IsCallable reports whether k is a function or a method.
func (k Kind) IsCallable() bool {
	return k == KindFunction || k == KindMethod
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText decodes a kind name produced by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown kind %q", string(b))
}

// Node is one recognised construct in the source.
//
// Children are ordered by source line. Depth is 0 for the module root and
// parent depth + 1 for every other node.
type Node struct {
	Kind     Kind    `json:"kind"`
	Name     string  `json:"name"`
	Line     int     `json:"line,omitempty"` // 1-based header line; 0 for the root
	Depth    int     `json:"depth"`
	Children []*Node `json:"children,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Walk visits n and its descendants in depth-first pre-order. If fn returns
// false the children of the visited node are skipped.
//
// Walk uses an explicit stack, so arbitrarily deep trees do not grow the
// call stack.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			continue
		}
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// Len returns the number of nodes in the tree rooted at n, including n.
func (n *Node) Len() int {
	count := 0
	n.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}

// Elements returns the number of structural elements below n, i.e. Len
// without the root itself.
func (n *Node) Elements() int {
	if n == nil {
		return 0
	}
	return n.Len() - 1
}

// Count returns how many nodes of kind k are in the tree rooted at n.
func (n *Node) Count(k Kind) int {
	count := 0
	n.Walk(func(c *Node) bool {
		if c.Kind == k {
			count++
		}
		return true
	})
	return count
}

// Counts returns the number of nodes per kind in the tree rooted at n.
// Kinds that do not occur are absent from the map.
func (n *Node) Counts() map[Kind]int {
	counts := make(map[Kind]int)
	n.Walk(func(c *Node) bool {
		counts[c.Kind]++
		return true
	})
	return counts
}
