/*
Package tree provides the decision tree that classifies listing records into
price brackets: its nodes, the arena they are stored in and the ways to walk
it to classify records, test it and print it.
*/
package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/pricetree/listing"
)

/*
Sample is anything feature values can be obtained from. A listing.Record is
a Sample.

Its ValueFor method takes a feature and returns the ordinal of the value
of the feature for the sample, or an error if it cannot be obtained.
*/
type Sample interface {
	ValueFor(listing.Feature) (int, error)
}

/*
Tree represents a decision tree as an arena: a slice of nodes, where nodes
refer to their children by index, and the index of the root node.
*/
type Tree struct {
	Nodes []Node
	Root  int
}

/*
Classify takes a record and returns the price bracket the tree predicts for
it and true, or false if the record ends up on an Empty node. It follows the
child for the record's value of the feature at each internal node, so it
visits at most one node per feature.
*/
func (t *Tree) Classify(r listing.Record) (listing.Bracket, bool) {
	if t == nil || len(t.Nodes) == 0 {
		return 0, false
	}
	n := t.Nodes[t.Root]
	for n.Kind == Internal {
		n = t.Nodes[n.Children[n.Feature.Ordinal(r)]]
	}
	if n.Kind == Leaf {
		return n.Bracket, true
	}
	return 0, false
}

/*
Match takes a record and returns whether the tree predicts the record's own
price bracket for it. A record ending up on an Empty node never matches.
*/
func (t *Tree) Match(r listing.Record) bool {
	b, ok := t.Classify(r)
	return ok && b == r.Bracket
}

/*
Predict takes a context and a sample and returns the price bracket the tree
predicts for it and true, false if the sample ends up on an Empty node, or
an error if a feature value cannot be obtained from the sample or is out of
range. Only the features tested on the path from the root are requested.
*/
func (t *Tree) Predict(ctx context.Context, s Sample) (listing.Bracket, bool, error) {
	if t == nil || len(t.Nodes) == 0 {
		return 0, false, fmt.Errorf("empty tree cannot predict samples")
	}
	n := t.Nodes[t.Root]
	for n.Kind == Internal {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}
		v, err := s.ValueFor(n.Feature)
		if err != nil {
			return 0, false, fmt.Errorf("predicting sample: obtaining value for %s: %v", n.Feature, err)
		}
		if v < 0 || v >= len(n.Children) {
			return 0, false, fmt.Errorf("predicting sample: value %d out of range for %s", v, n.Feature)
		}
		n = t.Nodes[n.Children[v]]
	}
	if n.Kind == Leaf {
		return n.Bracket, true, nil
	}
	return 0, false, nil
}

/*
Depth returns the number of internal nodes on the longest path from the
root to a leaf.
*/
func (t *Tree) Depth() int {
	if t == nil || len(t.Nodes) == 0 {
		return 0
	}
	return t.depth(t.Root)
}

func (t *Tree) depth(i int) int {
	n := t.Nodes[i]
	if n.Kind != Internal {
		return 0
	}
	var max int
	for _, c := range n.Children {
		if d := t.depth(c); d > max {
			max = d
		}
	}
	return max + 1
}

/*
Traverse takes a bottomup boolean and an error-returning function that
takes an arena index and a node, and goes through the tree from the root
calling the function for every node. The function is called for a parent
before its children if bottomup is false, and after them if it is true.
If the function returns an error the traversal is aborted and the error is
returned.
*/
func (t *Tree) Traverse(bottomup bool, f func(int, Node) error) error {
	if t == nil || len(t.Nodes) == 0 {
		return nil
	}
	return t.traverse(t.Root, bottomup, f)
}

func (t *Tree) traverse(i int, bottomup bool, f func(int, Node) error) error {
	n := t.Nodes[i]
	if !bottomup {
		if err := f(i, n); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := t.traverse(c, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(i, n)
	}
	return nil
}

/*
Validate returns an error if the arena is not a well-formed tree: the root
must be the last node, every child index must be lower than its parent's,
internal nodes must have one child per value of their feature and every
node but the root must have exactly one parent.
*/
func (t *Tree) Validate() error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	if t.Root != len(t.Nodes)-1 {
		return fmt.Errorf("root %d is not the last of %d nodes", t.Root, len(t.Nodes))
	}
	parents := make([]int, len(t.Nodes))
	for i, n := range t.Nodes {
		if n.Kind != Internal {
			if len(n.Children) > 0 {
				return fmt.Errorf("node %d: %s node has children", i, n.Kind)
			}
			continue
		}
		if len(n.Children) != n.Feature.Cardinality() {
			return fmt.Errorf("node %d: %d children for %s, expected %d", i, len(n.Children), n.Feature, n.Feature.Cardinality())
		}
		for _, c := range n.Children {
			if c < 0 || c >= i {
				return fmt.Errorf("node %d: child index %d is not below its parent's", i, c)
			}
			parents[c]++
		}
	}
	for i, p := range parents {
		if i != t.Root && p != 1 {
			return fmt.Errorf("node %d has %d parents", i, p)
		}
	}
	if parents[t.Root] != 0 {
		return fmt.Errorf("root node %d has a parent", t.Root)
	}
	return nil
}

func (t *Tree) String() string {
	if t == nil || len(t.Nodes) == 0 {
		return ""
	}
	return t.subtreeString(t.Root, "")
}

func (t *Tree) subtreeString(i int, criterion string) string {
	n := t.Nodes[i]
	result := fmt.Sprintf("[%d]\n", i)
	if criterion != "" {
		result = fmt.Sprintf("%s{ %s }\n", result, criterion)
	}
	switch n.Kind {
	case Internal:
		result = fmt.Sprintf("%s|\n", result)
	case Leaf:
		result = fmt.Sprintf("%s{ %s (%d) }\n \n", result, n.Bracket, n.Weight)
	default:
		result = fmt.Sprintf("%s{ no data }\n \n", result)
	}
	for v, c := range n.Children {
		criterion := fmt.Sprintf("%s is %s", n.Feature, n.Feature.ValueName(v))
		for j, line := range strings.Split(t.subtreeString(c, criterion), "\n") {
			if len(line) > 0 {
				if j == 0 {
					result = fmt.Sprintf("%s|__%s\n", result, line)
				} else {
					if v == len(n.Children)-1 {
						result = fmt.Sprintf("%s   %s\n", result, line)
					} else {
						result = fmt.Sprintf("%s|  %s\n", result, line)
					}
				}
			}
		}
	}
	return result
}
