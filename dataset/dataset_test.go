package dataset

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/pricetree/listing"
)

func record(rt listing.RoomType, b listing.Bracket) listing.Record {
	return listing.Record{RoomType: rt, Bedrooms: listing.Two, Popularity: listing.Level3, AmenitiesLevel: listing.Common, Bracket: b}
}

func TestEntropy(t *testing.T) {
	assert.Equal(t, 0.0, Entropy([]int{10, 0, 0, 0, 0, 0}))
	assert.Equal(t, 0.0, Entropy([]int{0, 0, 0, 0, 0, 0}))
	assert.Equal(t, 0.0, Entropy(nil))
	assert.InDelta(t, 1.0, Entropy([]int{5, 5, 0, 0, 0, 0}), 1e-12)
	assert.InDelta(t, 2.0, Entropy([]int{1, 1, 1, 1}), 1e-12)
	assert.InDelta(t, math.Log2(6), Entropy([]int{3, 3, 3, 3, 3, 3}), 1e-12)
	for _, counts := range [][]int{{1, 2, 3}, {7, 0, 1}, {0, 0, 4}} {
		e := Entropy(counts)
		assert.False(t, math.IsNaN(e))
		assert.True(t, e >= 0)
	}
}

func TestConditionalEntropy(t *testing.T) {
	table := ContingencyTable{
		{4, 0},
		{2, 2},
		{0, 0},
	}
	conditional, splitInfo := ConditionalEntropy(table)
	assert.InDelta(t, 0.5, conditional, 1e-12)
	assert.InDelta(t, 1.0, splitInfo, 1e-12)

	conditional, splitInfo = ConditionalEntropy(ContingencyTable{{0, 0}, {0, 0}})
	assert.Equal(t, 0.0, conditional)
	assert.Equal(t, 0.0, splitInfo)

	conditional, splitInfo = ConditionalEntropy(ContingencyTable{{3, 3}, {0, 0}})
	assert.InDelta(t, 1.0, conditional, 1e-12)
	assert.Equal(t, 0.0, splitInfo)
}

func TestConditionalEntropyBoundedByParent(t *testing.T) {
	s := New([]listing.Record{
		record(listing.PrivateRoom, listing.Under100),
		record(listing.PrivateRoom, listing.Under100),
		record(listing.PrivateRoom, listing.From100To200),
		record(listing.EntireHomeApt, listing.From200To300),
		record(listing.EntireHomeApt, listing.From100To200),
		record(listing.HotelRoom, listing.Above500),
	})
	tab := s.Tabulate()
	parent := Entropy(tab.Distribution)
	assert.InDelta(t, s.Entropy(), parent, 1e-12)
	for _, f := range listing.Features {
		conditional, _ := ConditionalEntropy(tab.Table(f))
		assert.True(t, conditional <= parent+1e-12, "feature %v", f)
	}
}

func TestTabulate(t *testing.T) {
	s := New([]listing.Record{
		record(listing.PrivateRoom, listing.Under100),
		record(listing.PrivateRoom, listing.From100To200),
		record(listing.EntireHomeApt, listing.Above500),
	})
	tab := s.Tabulate()
	assert.Equal(t, Distribution{1, 1, 0, 0, 0, 1}, tab.Distribution)
	assert.Equal(t, 3, tab.Count())
	require.Len(t, tab.Tables, listing.FeatureCount)
	for _, f := range listing.Features {
		table := tab.Table(f)
		assert.Len(t, table, f.Cardinality())
		assert.Equal(t, s.Count(), table.Total())
	}
	rt := tab.Table(listing.FeatureRoomType)
	assert.Equal(t, Distribution{1, 1, 0, 0, 0, 0}, rt[listing.PrivateRoom])
	assert.Equal(t, Distribution{0, 0, 0, 0, 0, 1}, rt[listing.EntireHomeApt])
	assert.Equal(t, Distribution{0, 0, 0, 0, 0, 0}, rt[listing.HotelRoom])
	assert.Equal(t, []int{0, 3, 0, 0}, tab.Table(listing.FeatureBedrooms).Rows())
}

func TestTabulateEmpty(t *testing.T) {
	tab := New(nil).Tabulate()
	assert.Equal(t, 0, tab.Count())
	for _, f := range listing.Features {
		assert.Equal(t, 0, tab.Table(f).Total())
	}
}

func TestDistribution(t *testing.T) {
	b, ok := Distribution{0, 0, 4, 0, 0, 0}.Sole()
	assert.True(t, ok)
	assert.Equal(t, listing.From200To300, b)
	_, ok = Distribution{0, 1, 4, 0, 0, 0}.Sole()
	assert.False(t, ok)
	_, ok = Distribution{0, 0, 0, 0, 0, 0}.Sole()
	assert.False(t, ok)

	assert.Equal(t, listing.From100To200, Distribution{0, 3, 3, 1, 0, 0}.Majority())
	assert.Equal(t, listing.Above500, Distribution{1, 0, 0, 0, 0, 2}.Majority())
	assert.Equal(t, listing.Under100, Distribution{0, 0, 0, 0, 0, 0}.Majority())
}

func TestSubsetsBy(t *testing.T) {
	s := New([]listing.Record{
		record(listing.PrivateRoom, listing.Under100),
		record(listing.EntireHomeApt, listing.Above500),
		record(listing.PrivateRoom, listing.From100To200),
	})
	subsets := s.SubsetsBy(listing.FeatureRoomType)
	require.Len(t, subsets, 3)
	assert.Equal(t, 2, subsets[listing.PrivateRoom].Count())
	assert.Equal(t, 1, subsets[listing.EntireHomeApt].Count())
	assert.Equal(t, 0, subsets[listing.HotelRoom].Count())
	assert.Equal(t, listing.From100To200, subsets[listing.PrivateRoom].Records()[1].Bracket)

	subsets = s.SubsetsBy(listing.FeaturePopularity)
	require.Len(t, subsets, 5)
	assert.Equal(t, 3, subsets[listing.Level3].Count())
}

func TestNewCopiesRecords(t *testing.T) {
	records := []listing.Record{record(listing.HotelRoom, listing.Under100)}
	s := New(records)
	records[0].Bracket = listing.Above500
	assert.Equal(t, listing.Under100, s.Records()[0].Bracket)
}

func TestForEvaluation(t *testing.T) {
	var held []int
	for line := 2; line <= 12; line++ {
		if ForEvaluation(line, DefaultEvaluationEvery) {
			held = append(held, line)
		}
	}
	assert.Equal(t, []int{4, 8, 12}, held)
	assert.False(t, ForEvaluation(4, 0))
	assert.False(t, ForEvaluation(4, -1))
	assert.True(t, ForEvaluation(3, 1))
}

type memoryStore struct {
	records []listing.Record
	err     error
	writes  int
}

func (m *memoryStore) Read(ctx context.Context) (<-chan listing.Record, <-chan error) {
	records := make(chan listing.Record)
	errs := make(chan error, 1)
	go func() {
		defer close(records)
		defer close(errs)
		for _, r := range m.records {
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			case records <- r:
			}
		}
		if m.err != nil {
			errs <- m.err
		}
	}()
	return records, errs
}

func (m *memoryStore) Write(ctx context.Context, records []listing.Record) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.writes++
	m.records = append(m.records, records...)
	return len(records), nil
}

func TestCollect(t *testing.T) {
	m := &memoryStore{records: []listing.Record{
		record(listing.PrivateRoom, listing.Under100),
		record(listing.HotelRoom, listing.Above500),
	}}
	s, err := Collect(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, m.records, s.Records())

	m.err = fmt.Errorf("connection lost")
	_, err = Collect(context.Background(), m)
	assert.Error(t, err)
}

func TestWriteAll(t *testing.T) {
	var records []listing.Record
	for i := 0; i < 7; i++ {
		records = append(records, record(listing.PrivateRoom, listing.Bracket(i%listing.BracketCount)))
	}
	m := &memoryStore{}
	n, err := WriteAll(context.Background(), m, records, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, 3, m.writes)
	assert.Equal(t, records, m.records)

	m = &memoryStore{}
	n, err = WriteAll(context.Background(), m, records, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, 1, m.writes)

	m = &memoryStore{err: fmt.Errorf("read only")}
	_, err = WriteAll(context.Background(), m, records, 3)
	assert.Error(t, err)
}
