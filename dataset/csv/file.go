package csv

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pbanos/pricetree/listing"
)

var log = logrus.WithField("component", "csv")

/*
File is a dataset.Reader for a CSV file that may be either a listings file
or a records file. Listings are discretized with the file's Thresholds.
*/
type File struct {
	// Path to the file, or "" to read from STDIN.
	Path       string
	Thresholds listing.Thresholds
}

// Open takes a filepath and thresholds and returns the File for them.
func Open(filepath string, t listing.Thresholds) *File {
	return &File{Path: filepath, Thresholds: t}
}

/*
ReadLines opens the file and for each listing or record in it calls the
lambda function with the line number it was read from and the record. The
kind of file is told by its header. If the lambda function returns true, it
will continue processing the next record, otherwise it will stop.
*/
func (f *File) ReadLines(lambda func(int, listing.Record) (bool, error)) error {
	var reader io.Reader
	name := f.Path
	if f.Path == "" {
		reader = os.Stdin
		name = "STDIN"
	} else {
		file, err := os.Open(f.Path)
		if err != nil {
			return errors.Wrap(err, "opening CSV file")
		}
		defer file.Close()
		reader = file
	}
	var count int
	counted := func(line int, r listing.Record) (bool, error) {
		count++
		return lambda(line, r)
	}
	err := f.read(reader, counted)
	if err != nil {
		return errors.Wrapf(err, "parsing CSV file %s", name)
	}
	log.WithFields(logrus.Fields{"file": name, "records": count}).Debug("read CSV file")
	return nil
}

func (f *File) read(reader io.Reader, lambda func(int, listing.Record) (bool, error)) error {
	r := newReader(reader)
	header, err := r.Read()
	if err != nil {
		return errors.Wrap(err, "reading header")
	}
	if IsRecordsHeader(header) {
		return readRecords(r, lambda)
	}
	return readRows(r, func(line int, row []string) (bool, error) {
		return lambda(line, listing.Discretize(ParseListing(row), f.Thresholds))
	})
}

/*
Read takes a context and returns a channel on which every record in the
file is sent and a channel on which an error is sent if reading fails.
*/
func (f *File) Read(ctx context.Context) (<-chan listing.Record, <-chan error) {
	records := make(chan listing.Record)
	errs := make(chan error, 1)
	go func() {
		defer close(records)
		defer close(errs)
		err := f.ReadLines(func(_ int, r listing.Record) (bool, error) {
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
