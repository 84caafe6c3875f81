package tree

import (
	"fmt"

	"github.com/pbanos/pricetree/listing"
)

// Kind tells which variant of node a Node is.
type Kind int

const (
	// Internal nodes test a feature and have one child per value of it.
	Internal Kind = iota
	// Leaf nodes predict a price bracket.
	Leaf
	// Empty nodes are leaves reached by no training record: they predict
	// nothing.
	Empty
)

var kindNames = []string{"Internal", "Leaf", "Empty"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

/*
Node is a node of the tree as stored in its arena.
*/
type Node struct {
	Kind Kind
	// The feature tested on internal nodes.
	Feature listing.Feature
	// Arena indexes of the nodes under an internal node, one per value of
	// Feature in declaration order.
	Children []int
	// The bracket predicted by leaf nodes.
	Bracket listing.Bracket
	// The number of training records that reached the node.
	Weight int
}

func (n Node) String() string {
	switch n.Kind {
	case Internal:
		return fmt.Sprintf("Internal{%s %v}", n.Feature, n.Children)
	case Leaf:
		return fmt.Sprintf("Leaf{%s}", n.Bracket)
	case Empty:
		return "Empty"
	}
	return n.Kind.String()
}

/*
Subtree is a tree as a recursive value: a node payload and the subtrees
under it. It is what the tree is grown as before being flattened into an
arena.
*/
type Subtree struct {
	Kind     Kind
	Feature  listing.Feature
	Bracket  listing.Bracket
	Weight   int
	Children []*Subtree
}

// NewLeaf returns a subtree made of a single leaf predicting the given
// bracket for the given number of records.
func NewLeaf(b listing.Bracket, weight int) *Subtree {
	return &Subtree{Kind: Leaf, Bracket: b, Weight: weight}
}

// NewEmpty returns a subtree made of a single node with no prediction.
func NewEmpty() *Subtree {
	return &Subtree{Kind: Empty}
}

// NewInternal returns a subtree testing the given feature with the given
// children, one per value of the feature.
func NewInternal(f listing.Feature, weight int, children []*Subtree) *Subtree {
	return &Subtree{Kind: Internal, Feature: f, Weight: weight, Children: children}
}

/*
Flatten takes a subtree and returns it as a Tree. Nodes are appended to the
arena in post-order: for every child in value order its own subtree goes
first and then the child itself, so the root is the last node and every
child index is lower than that of its parent. A nil subtree is flattened
as an Empty node.
*/
func Flatten(st *Subtree) *Tree {
	t := &Tree{}
	t.Root = t.add(st)
	return t
}

func (t *Tree) add(st *Subtree) int {
	if st == nil {
		st = NewEmpty()
	}
	n := Node{Kind: st.Kind, Weight: st.Weight}
	switch st.Kind {
	case Internal:
		n.Feature = st.Feature
		n.Children = make([]int, len(st.Children))
		for i, c := range st.Children {
			n.Children[i] = t.add(c)
		}
	case Leaf:
		n.Bracket = st.Bracket
	}
	t.Nodes = append(t.Nodes, n)
	return len(t.Nodes) - 1
}
