package tree

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/pricetree/dataset"
	"github.com/pbanos/pricetree/listing"
)

// sampleTree tests room type, then bedrooms for private rooms.
func sampleTree() *Tree {
	return Flatten(NewInternal(listing.FeatureRoomType, 10, []*Subtree{
		NewInternal(listing.FeatureBedrooms, 6, []*Subtree{
			NewLeaf(listing.Under100, 4),
			NewLeaf(listing.From100To200, 2),
			NewEmpty(),
			NewEmpty(),
		}),
		NewLeaf(listing.From300To400, 4),
		NewEmpty(),
	}))
}

func rec(rt listing.RoomType, b listing.Bedrooms, br listing.Bracket) listing.Record {
	return listing.Record{RoomType: rt, Bedrooms: b, Popularity: listing.Level3, AmenitiesLevel: listing.Common, Bracket: br}
}

func TestFlatten(t *testing.T) {
	tr := sampleTree()
	require.Len(t, tr.Nodes, 8)
	assert.Equal(t, 7, tr.Root)
	assert.Equal(t, []Kind{Leaf, Leaf, Empty, Empty, Internal, Leaf, Empty, Internal}, kinds(tr))
	assert.Equal(t, []int{0, 1, 2, 3}, tr.Nodes[4].Children)
	assert.Equal(t, []int{4, 5, 6}, tr.Nodes[7].Children)
	assert.Equal(t, 10, tr.Nodes[7].Weight)
	require.NoError(t, tr.Validate())
}

func TestFlattenSingleNode(t *testing.T) {
	tr := Flatten(NewLeaf(listing.Above500, 3))
	require.Len(t, tr.Nodes, 1)
	assert.Equal(t, 0, tr.Root)
	assert.Nil(t, tr.Nodes[0].Children)

	tr = Flatten(nil)
	require.Len(t, tr.Nodes, 1)
	assert.Equal(t, Empty, tr.Nodes[0].Kind)
}

func kinds(t *Tree) []Kind {
	result := make([]Kind, len(t.Nodes))
	for i, n := range t.Nodes {
		result[i] = n.Kind
	}
	return result
}

func TestClassify(t *testing.T) {
	tr := sampleTree()
	tests := []struct {
		record  listing.Record
		bracket listing.Bracket
		ok      bool
	}{
		{rec(listing.PrivateRoom, listing.One, listing.Under100), listing.Under100, true},
		{rec(listing.PrivateRoom, listing.Two, listing.Under100), listing.From100To200, true},
		{rec(listing.PrivateRoom, listing.SixOrMore, listing.Under100), 0, false},
		{rec(listing.EntireHomeApt, listing.SixOrMore, listing.Under100), listing.From300To400, true},
		{rec(listing.HotelRoom, listing.One, listing.Under100), 0, false},
	}
	for _, tt := range tests {
		b, ok := tr.Classify(tt.record)
		assert.Equal(t, tt.ok, ok, "%v", tt.record)
		if tt.ok {
			assert.Equal(t, tt.bracket, b, "%v", tt.record)
		}
	}
	_, ok := (&Tree{}).Classify(rec(listing.PrivateRoom, listing.One, listing.Under100))
	assert.False(t, ok)
}

func TestMatch(t *testing.T) {
	tr := sampleTree()
	assert.True(t, tr.Match(rec(listing.PrivateRoom, listing.One, listing.Under100)))
	assert.False(t, tr.Match(rec(listing.PrivateRoom, listing.One, listing.Above500)))
	assert.False(t, tr.Match(rec(listing.HotelRoom, listing.One, listing.Under100)))
}

type recordingSample struct {
	values    map[listing.Feature]int
	requested []listing.Feature
}

func (s *recordingSample) ValueFor(f listing.Feature) (int, error) {
	s.requested = append(s.requested, f)
	v, ok := s.values[f]
	if !ok {
		return 0, fmt.Errorf("no value for %s", f)
	}
	return v, nil
}

func TestPredict(t *testing.T) {
	tr := sampleTree()
	s := &recordingSample{values: map[listing.Feature]int{
		listing.FeatureRoomType: int(listing.EntireHomeApt),
	}}
	b, ok, err := tr.Predict(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, listing.From300To400, b)
	assert.Equal(t, []listing.Feature{listing.FeatureRoomType}, s.requested)

	s = &recordingSample{values: map[listing.Feature]int{
		listing.FeatureRoomType: int(listing.PrivateRoom),
		listing.FeatureBedrooms: int(listing.Two),
	}}
	b, ok, err = tr.Predict(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, listing.From100To200, b)
	assert.Equal(t, []listing.Feature{listing.FeatureRoomType, listing.FeatureBedrooms}, s.requested)

	_, ok, err = tr.Predict(context.Background(), rec(listing.HotelRoom, listing.One, listing.Under100))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPredictErrors(t *testing.T) {
	tr := sampleTree()
	_, _, err := tr.Predict(context.Background(), &recordingSample{})
	assert.Error(t, err)

	_, _, err = tr.Predict(context.Background(), &recordingSample{values: map[listing.Feature]int{listing.FeatureRoomType: 7}})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = tr.Predict(ctx, rec(listing.PrivateRoom, listing.One, listing.Under100))
	assert.Equal(t, context.Canceled, err)

	_, _, err = (&Tree{}).Predict(context.Background(), rec(listing.PrivateRoom, listing.One, listing.Under100))
	assert.Error(t, err)
}

func TestTraverse(t *testing.T) {
	tr := sampleTree()
	var topDown, bottomUp []int
	require.NoError(t, tr.Traverse(false, func(i int, _ Node) error {
		topDown = append(topDown, i)
		return nil
	}))
	require.NoError(t, tr.Traverse(true, func(i int, _ Node) error {
		bottomUp = append(bottomUp, i)
		return nil
	}))
	assert.Equal(t, []int{7, 4, 0, 1, 2, 3, 5, 6}, topDown)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, bottomUp)

	var visited int
	err := tr.Traverse(false, func(i int, n Node) error {
		visited++
		if n.Kind == Leaf {
			return fmt.Errorf("stop at %d", i)
		}
		return nil
	})
	assert.EqualError(t, err, "stop at 0")
	assert.Equal(t, 3, visited)
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 2, sampleTree().Depth())
	assert.Equal(t, 0, Flatten(NewLeaf(listing.Under100, 1)).Depth())
	assert.Equal(t, 0, (&Tree{}).Depth())
}

func TestValidate(t *testing.T) {
	tr := sampleTree()
	tr.Root = 4
	assert.Error(t, tr.Validate())

	tr = sampleTree()
	tr.Nodes[7].Children[2] = 5
	assert.Error(t, tr.Validate())

	tr = sampleTree()
	tr.Nodes[4].Children = tr.Nodes[4].Children[:2]
	assert.Error(t, tr.Validate())

	tr = sampleTree()
	tr.Nodes[0].Children = []int{1}
	assert.Error(t, tr.Validate())

	assert.Error(t, (&Tree{}).Validate())
}

func TestString(t *testing.T) {
	s := sampleTree().String()
	assert.True(t, strings.HasPrefix(s, "[7]\n|\n|__[4]\n"), s)
	assert.Contains(t, s, "{ RoomType is EntireHomeApt }")
	assert.Contains(t, s, "{ BedRooms is One }")
	assert.Contains(t, s, "{ Under100 (4) }")
	assert.Contains(t, s, "{ no data }")
	assert.Equal(t, "", (&Tree{}).String())
}

func TestNodeString(t *testing.T) {
	tr := sampleTree()
	assert.Equal(t, "Leaf{Under100}", tr.Nodes[0].String())
	assert.Equal(t, "Empty", tr.Nodes[2].String())
	assert.Equal(t, "Internal{RoomType [4 5 6]}", tr.Nodes[7].String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestTest(t *testing.T) {
	tr := sampleTree()
	s := dataset.New([]listing.Record{
		rec(listing.PrivateRoom, listing.One, listing.Under100),
		rec(listing.PrivateRoom, listing.One, listing.Under100),
		rec(listing.PrivateRoom, listing.Two, listing.Under100),
		rec(listing.EntireHomeApt, listing.One, listing.From300To400),
		rec(listing.HotelRoom, listing.One, listing.Above500),
	})
	e := tr.Test(s)
	assert.Equal(t, 5, e.Total)
	assert.Equal(t, 3, e.Correct)
	assert.Equal(t, 1, e.NoData)
	assert.InDelta(t, 0.6, e.Accuracy(), 1e-12)
	require.Len(t, e.Confusion, listing.BracketCount)
	assert.Equal(t, []int{2, 1, 0, 0, 0, 0, 0}, e.Confusion[listing.Under100])
	assert.Equal(t, 1, e.Confusion[listing.From300To400][listing.From300To400])
	assert.Equal(t, 1, e.Confusion[listing.Above500][NoDataColumn])
	assert.InDelta(t, 2.0/3.0, e.Recall(listing.Under100), 1e-12)
	assert.InDelta(t, 1.0, e.Precision(listing.Under100), 1e-12)
	assert.Equal(t, 0.0, e.Precision(listing.From100To200))
	assert.Equal(t, 0.0, e.Recall(listing.From200To300))

	e = tr.Test(dataset.New(nil))
	assert.Equal(t, 0.0, e.Accuracy())
}
