package contexttree

import "fmt"

// Node is a single node in a frequency trie. A node owns its children
// exclusively: the structure is a strict tree, never a DAG, and traversal
// state lives in the caller's cursor rather than in parent back-references.
//
// Frequency counts traversal hits during ingestion. The sum over a node's
// children does not generally equal the node's own frequency; sampling
// probabilities are always computed relative to the current children set.
type Node struct {
	symbol   Symbol
	freq     int
	children map[string]*Node
	order    []*Node // insertion order, so deterministic builds walk deterministically
}

// NewTree returns an empty root node: frequency 0, no symbol, no children.
func NewTree() *Node {
	return &Node{children: make(map[string]*Node)}
}

// Symbol returns the alphabet element this node represents. The root's
// symbol is the zero Symbol.
func (n *Node) Symbol() Symbol {
	return n.symbol
}

// Frequency returns the node's traversal-hit count.
func (n *Node) Frequency() int {
	return n.freq
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// HasChild reports whether sym is already a child symbol of this node.
func (n *Node) HasChild(sym Symbol) bool {
	_, ok := n.children[sym.Key()]
	return ok
}

// Child returns the child for sym, or nil when absent. Callers confirm
// existence first; relying on a nil result is a logic error upstream.
func (n *Node) Child(sym Symbol) *Node {
	return n.children[sym.Key()]
}

// Children returns the node's children in insertion order.
func (n *Node) Children() []*Node {
	return n.order
}

// CreateChild adds and returns a new child with frequency 1. The symbol must
// not already be present; a duplicate is a caller contract violation and
// panics.
func (n *Node) CreateChild(sym Symbol) *Node {
	key := sym.Key()
	if _, ok := n.children[key]; ok {
		panic(fmt.Sprintf("contexttree: CreateChild called with existing symbol %s", key))
	}
	child := &Node{
		symbol:   sym,
		freq:     1,
		children: make(map[string]*Node),
	}
	n.children[key] = child
	n.order = append(n.order, child)
	return child
}
