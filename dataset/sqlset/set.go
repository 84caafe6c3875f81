/*
Package sqlset provides a record store backed by an SQL database, through
an Adapter for the specific database engine.
*/
package sqlset

import (
	"context"

	"github.com/pkg/errors"

	"github.com/pbanos/pricetree/listing"
)

/*
Set is a store of records on an SQL database to which records can be
added and from which they can be sequentially read.
*/
type Set struct {
	db Adapter
}

/*
Open takes a context and an Adapter to a db backend and returns a Set
backed by the given adapter or an error if no records table is available
through the given adapter.
*/
func Open(ctx context.Context, dbAdapter Adapter) (*Set, error) {
	_, err := dbAdapter.CountRecords(ctx)
	if err != nil {
		return nil, err
	}
	return &Set{dbAdapter}, nil
}

/*
Create takes a context and an Adapter and returns a Set backed by the given
adapter or an error. It ensures the records table exists on the database.
*/
func Create(ctx context.Context, dbAdapter Adapter) (*Set, error) {
	err := dbAdapter.CreateRecordsTable(ctx)
	if err != nil {
		return nil, err
	}
	return &Set{dbAdapter}, nil
}

// Count returns the number of records in the set.
func (ss *Set) Count(ctx context.Context) (int, error) {
	return ss.db.CountRecords(ctx)
}

// Write adds the given records to the set and returns the number of
// records added.
func (ss *Set) Write(ctx context.Context, records []listing.Record) (int, error) {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.Fields()
	}
	return ss.db.AddRecords(ctx, rows)
}

/*
Read takes a context and returns a channel on which every record in the set
is sent, in insertion order, and a channel on which an error is sent if
reading fails.
*/
func (ss *Set) Read(ctx context.Context) (<-chan listing.Record, <-chan error) {
	records := make(chan listing.Record)
	errs := make(chan error, 1)
	go func() {
		defer close(records)
		defer close(errs)
		err := ss.db.IterateOnRecords(ctx, func(row []string) (bool, error) {
			r, err := listing.ParseRecord(row)
			if err != nil {
				return false, errors.Wrap(err, "parsing stored record")
			}
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case records <- r:
				return true, nil
			}
		})
		if err != nil {
			errs <- err
		}
	}()
	return records, errs
}

// Close releases the database handle of the set.
func (ss *Set) Close() error {
	return ss.db.Close()
}
