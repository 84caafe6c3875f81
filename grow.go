/*
Package pricetree grows decision trees that classify listing records into
price brackets.

Trees are grown recursively: every partition of the training set either
becomes a leaf or is split by the feature with the highest gain ratio into
one partition per value of the feature.
*/
package pricetree

import (
	"github.com/sirupsen/logrus"

	"github.com/pbanos/pricetree/dataset"
	"github.com/pbanos/pricetree/tree"
)

var log = logrus.WithField("component", "grower")

/*
Build takes a set of records and returns the subtree grown from it:
  - an Empty node if the set has no records,
  - a Leaf with the only bracket in the set if all records share it,
  - a Leaf with the most frequent bracket, the lowest among those tied, if
    no feature can split the set,
  - an Internal node for the selected feature otherwise, with one child
    built from the records with each of its values, in declaration order.
*/
func Build(s *dataset.Set) *tree.Subtree {
	if s.Count() == 0 {
		return tree.NewEmpty()
	}
	tab := s.Tabulate()
	sel := SelectFeature(tab)
	if sel.Pure {
		return tree.NewLeaf(sel.Bracket, s.Count())
	}
	if !sel.Split {
		return tree.NewLeaf(tab.Distribution.Majority(), s.Count())
	}
	subsets := s.SubsetsBy(sel.Feature)
	children := make([]*tree.Subtree, len(subsets))
	for i, ss := range subsets {
		children[i] = Build(ss)
	}
	return tree.NewInternal(sel.Feature, s.Count(), children)
}

// Grow takes a set of records and returns the tree grown from it.
func Grow(s *dataset.Set) *tree.Tree {
	return tree.Flatten(Build(s))
}

/*
Grower grows trees like Grow, logging what it does to its Log entry.
*/
type Grower struct {
	Log *logrus.Entry
}

// NewGrower returns a Grower logging to the package logger.
func NewGrower() *Grower {
	return &Grower{Log: log}
}

// Grow takes a set of records and returns the tree grown from it.
func (g *Grower) Grow(s *dataset.Set) *tree.Tree {
	l := g.Log
	if l == nil {
		l = log
	}
	l.WithField("records", s.Count()).Debug("growing tree")
	t := Grow(s)
	t.Traverse(false, func(i int, n tree.Node) error {
		if n.Kind == tree.Internal {
			l.WithFields(logrus.Fields{"node": i, "feature": n.Feature, "records": n.Weight}).Debug("split")
		}
		return nil
	})
	l.WithFields(logrus.Fields{"nodes": len(t.Nodes), "depth": t.Depth()}).Debug("tree grown")
	return t
}
