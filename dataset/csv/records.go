package csv

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/pkg/errors"

	"github.com/pbanos/pricetree/listing"
)

/*
Writer is an interface for a records file to which records
can be written to.
*/
type Writer interface {
	// Write will attempt to write the given records and will return
	// the actually written number of records and an error (if not all
	// records could be written)
	Write(context.Context, []listing.Record) (int, error)
	// Count returns the total number of records written
	// to the writer
	Count() int
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

type csvWriter struct {
	count int
	w     *csv.Writer
}

// IsRecordsHeader returns whether the given header is that of a records
// file.
func IsRecordsHeader(header []string) bool {
	if len(header) != len(listing.Columns) {
		return false
	}
	for i, c := range listing.Columns {
		if header[i] != c {
			return false
		}
	}
	return true
}

/*
ReadRecords takes an io.Reader for a records CSV stream and a lambda
function on an integer and a listing.Record. It parses the records from the
reader and for each calls the lambda function with the line number it was
read from and the record. If the lambda function returns true, it will
continue processing the next record, otherwise it will stop. An error is
returned if the header is not listing.Columns, a row cannot be parsed or
the lambda function returns one.
*/
func ReadRecords(reader io.Reader, lambda func(int, listing.Record) (bool, error)) error {
	r := newReader(reader)
	header, err := r.Read()
	if err != nil {
		return errors.Wrap(err, "reading header")
	}
	if !IsRecordsHeader(header) {
		return errors.Errorf("parsing header: expected %v, got %v", listing.Columns, header)
	}
	return readRecords(r, lambda)
}

func readRecords(r *csv.Reader, lambda func(int, listing.Record) (bool, error)) error {
	return readRows(r, func(line int, row []string) (bool, error) {
		record, err := listing.ParseRecord(row)
		if err != nil {
			return false, errors.Wrapf(err, "parsing line %d", line)
		}
		return lambda(line, record)
	})
}

/*
NewWriter takes an io.Writer and returns a Writer that will write records
on the io.Writer, after writing the header.
*/
func NewWriter(writer io.Writer) (Writer, error) {
	w := csv.NewWriter(writer)
	err := w.Write(listing.Columns)
	if err != nil {
		return nil, errors.Wrap(err, "writing CSV header")
	}
	return &csvWriter{w: w}, nil
}

/*
WriteRecords takes a context, an io.Writer and a slice of records and dumps
the records to the writer in CSV format. It returns an error if something
went wrong when writing to the writer.
*/
func WriteRecords(ctx context.Context, writer io.Writer, records []listing.Record) error {
	cw, err := NewWriter(writer)
	if err != nil {
		return err
	}
	_, err = cw.Write(ctx, records)
	if err != nil {
		return err
	}
	return cw.Flush()
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Write(ctx context.Context, records []listing.Record) (int, error) {
	for n, r := range records {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		err := cw.w.Write(r.Fields())
		if err != nil {
			return n, errors.Wrapf(err, "writing CSV row for record %d", cw.count+1)
		}
		cw.count++
	}
	return len(records), nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
