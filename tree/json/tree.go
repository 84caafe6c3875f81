/*
Package json provides the JSON export of trees.
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/pbanos/pricetree/tree"
)

type node struct {
	Kind     string `json:"kind"`
	Feature  string `json:"feature,omitempty"`
	Children []int  `json:"children,omitempty"`
	Bracket  string `json:"bracket,omitempty"`
	Weight   int    `json:"w,omitempty"`
}

/*
WriteJSONTree takes a pointer to a tree.Tree and an io.Writer and serializes
the given tree as JSON onto the io.Writer.
A tree is serialized as a JSON object with the following fields:
  - "root": the index of the root node in the nodes array
  - "nodes": an array with every node of the tree in arena order, each an
    object with a "kind" of "Internal", "Leaf" or "Empty". Internal nodes
    carry the tested "feature" and the indexes of their "children", leaves
    the predicted "bracket", and both the number "w" of training records
    that reached them.
An error is returned if the tree cannot be serialized or written onto the
io.Writer.
*/
func WriteJSONTree(t *tree.Tree, w io.Writer) error {
	header := fmt.Sprintf(`{"root":%d,"nodes":[`, t.Root)
	_, err := w.Write([]byte(header))
	if err != nil {
		return errors.Wrap(err, "writing tree header")
	}
	for i, n := range t.Nodes {
		err = writeNode(i, n, w)
		if err != nil {
			return errors.Wrapf(err, "writing node %d", i)
		}
	}
	_, err = w.Write([]byte(`]}`))
	return errors.Wrap(err, "writing tree footer")
}

func writeNode(i int, n tree.Node, w io.Writer) error {
	if i != 0 {
		_, err := w.Write([]byte(","))
		if err != nil {
			return err
		}
	}
	jn, err := json.Marshal(encode(n))
	if err != nil {
		return err
	}
	_, err = w.Write(jn)
	return err
}

func encode(n tree.Node) *node {
	jn := &node{Kind: n.Kind.String(), Weight: n.Weight}
	switch n.Kind {
	case tree.Internal:
		jn.Feature = n.Feature.Name()
		jn.Children = n.Children
	case tree.Leaf:
		jn.Bracket = n.Bracket.String()
	}
	return jn
}
