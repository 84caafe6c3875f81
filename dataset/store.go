package dataset

import (
	"context"

	"github.com/pkg/errors"

	"github.com/pbanos/pricetree/listing"
)

/*
Reader is a store from which records can be sequentially read.

Its Read method takes a context and returns a channel on which the records
are sent and a channel on which an error is sent if reading fails. Both are
closed once reading ends. Cancelling the context stops the reading.
*/
type Reader interface {
	Read(context.Context) (<-chan listing.Record, <-chan error)
}

/*
Writer is a store to which records can be added.

Its Write method takes a context and a slice of records, stores them
and returns the number of records written or an error.
*/
type Writer interface {
	Write(context.Context, []listing.Record) (int, error)
}

/*
Collect takes a context and a Reader and returns a Set with every record read
from it, or an error if reading fails.
*/
func Collect(ctx context.Context, r Reader) (*Set, error) {
	s := &Set{}
	records, errs := r.Read(ctx)
	for record := range records {
		s.records = append(s.records, record)
	}
	if err := <-errs; err != nil {
		return nil, errors.Wrap(err, "reading records")
	}
	return s, nil
}

/*
WriteAll takes a context, a Writer, a slice of records and a batch size and
writes the records to the writer in batches of at most that size, returning
the number of records written. A batch size of 0 or less writes all records
at once.
*/
func WriteAll(ctx context.Context, w Writer, records []listing.Record, batch int) (int, error) {
	if batch <= 0 {
		batch = len(records)
	}
	var written int
	for len(records) > 0 {
		n := batch
		if n > len(records) {
			n = len(records)
		}
		c, err := w.Write(ctx, records[:n])
		if err != nil {
			return written + c, errors.Wrapf(err, "writing batch of %d records after %d", n, written)
		}
		written += c
		records = records[n:]
	}
	return written, nil
}
