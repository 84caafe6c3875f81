package sqlset

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/pricetree/dataset"
	"github.com/pbanos/pricetree/listing"
)

var numbered = Dialect{
	Driver:      "test",
	Placeholder: func(i int) string { return fmt.Sprintf("$%d", i) },
	IDColumn:    `"id" SERIAL PRIMARY KEY`,
}

func TestCreateTableStatement(t *testing.T) {
	assert.Equal(t,
		`CREATE TABLE IF NOT EXISTS records("room_type" TEXT NOT NULL, "bedrooms" TEXT NOT NULL, "popularity" TEXT NOT NULL, "amenities_level" TEXT NOT NULL, "price_bracket" TEXT NOT NULL, "id" SERIAL PRIMARY KEY)`,
		createTableStatement(numbered))
}

func TestInsertStatement(t *testing.T) {
	assert.Equal(t,
		`INSERT INTO records ("room_type", "bedrooms", "popularity", "amenities_level", "price_bracket") VALUES ($1, $2, $3, $4, $5), ($6, $7, $8, $9, $10)`,
		insertStatement(numbered, 2))
}

type memoryAdapter struct {
	rows    [][]string
	created bool
	closed  bool
}

func (m *memoryAdapter) CreateRecordsTable(context.Context) error {
	m.created = true
	return nil
}

func (m *memoryAdapter) AddRecords(_ context.Context, rows [][]string) (int, error) {
	m.rows = append(m.rows, rows...)
	return len(rows), nil
}

func (m *memoryAdapter) IterateOnRecords(_ context.Context, lambda func([]string) (bool, error)) error {
	for _, r := range m.rows {
		ok, err := lambda(r)
		if err != nil || !ok {
			return err
		}
	}
	return nil
}

func (m *memoryAdapter) CountRecords(context.Context) (int, error) {
	if !m.created {
		return 0, fmt.Errorf("no such table: records")
	}
	return len(m.rows), nil
}

func (m *memoryAdapter) Close() error {
	m.closed = true
	return nil
}

func TestSet(t *testing.T) {
	ctx := context.Background()
	a := &memoryAdapter{}
	_, err := Open(ctx, a)
	assert.Error(t, err)

	ss, err := Create(ctx, a)
	require.NoError(t, err)
	records := []listing.Record{
		{RoomType: listing.HotelRoom, Bedrooms: listing.Two, Popularity: listing.Level3, AmenitiesLevel: listing.Common, Bracket: listing.From200To300},
		{RoomType: listing.EntireHomeApt, Bedrooms: listing.SixOrMore, Popularity: listing.Level5, AmenitiesLevel: listing.Luxurious, Bracket: listing.Above500},
	}
	n, err := ss.Write(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"HotelRoom", "Two", "Level3", "Common", "From200To300"}, a.rows[0])

	ss, err = Open(ctx, a)
	require.NoError(t, err)
	count, err := ss.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	s, err := dataset.Collect(ctx, ss)
	require.NoError(t, err)
	assert.Equal(t, records, s.Records())

	a.rows = append(a.rows, []string{"Castle", "Two", "Level3", "Common", "Under100"})
	_, err = dataset.Collect(ctx, ss)
	assert.Error(t, err)

	require.NoError(t, ss.Close())
	assert.True(t, a.closed)
}
