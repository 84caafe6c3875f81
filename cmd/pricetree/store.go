package main

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pbanos/pricetree/dataset"
	"github.com/pbanos/pricetree/dataset/csv"
	"github.com/pbanos/pricetree/dataset/mongoset"
	"github.com/pbanos/pricetree/dataset/redisset"
	"github.com/pbanos/pricetree/dataset/sqlset"
	"github.com/pbanos/pricetree/dataset/sqlset/pgadapter"
	"github.com/pbanos/pricetree/dataset/sqlset/sqlite3adapter"
	"github.com/pbanos/pricetree/listing"
)

type storeKind int

const (
	csvStore storeKind = iota
	sqlite3Store
	postgreSQLStore
	mongoDBStore
	redisStore
)

var storeKindNames = []string{"CSV", "SQLite3", "PostgreSQL", "MongoDB", "Redis"}

func (k storeKind) String() string {
	return storeKindNames[k]
}

// kindOf tells the kind of store a -i or -o flag value names.
func kindOf(location string) storeKind {
	switch {
	case strings.HasPrefix(location, "postgresql://"), strings.HasPrefix(location, "postgres://"):
		return postgreSQLStore
	case strings.HasPrefix(location, "mongodb://"):
		return mongoDBStore
	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		return redisStore
	case strings.HasSuffix(location, ".db"):
		return sqlite3Store
	}
	return csvStore
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }

type recordReader interface {
	dataset.Reader
	Close() error
}

type recordWriter interface {
	dataset.Writer
	Close() error
}

type csvFileReader struct {
	*csv.File
	noopCloser
}

/*
openReader takes a context, the location of an input store and the
thresholds to discretize raw listings with, and returns a reader for the
records in the store. An empty location means CSV on STDIN.
*/
func openReader(ctx context.Context, location string, t listing.Thresholds) (recordReader, error) {
	kind := kindOf(location)
	l := logrus.WithFields(logrus.Fields{"input": displayName(location, "STDIN"), "kind": kind})
	l.Info("opening input set")
	switch kind {
	case sqlite3Store, postgreSQLStore:
		adapter, err := sqlAdapter(kind, location)
		if err != nil {
			return nil, err
		}
		s, err := sqlset.Open(ctx, adapter)
		if err != nil {
			adapter.Close()
			return nil, err
		}
		return s, nil
	case mongoDBStore:
		s, err := mongoset.Dial(ctx, location)
		if err != nil {
			return nil, err
		}
		return s, nil
	case redisStore:
		s, err := redisset.Dial(location)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return &csvFileReader{File: csv.Open(location, t)}, nil
}

type csvFileWriter struct {
	csv.Writer
	f *os.File
}

func (cfw *csvFileWriter) Close() error {
	err := cfw.Flush()
	if err != nil {
		return errors.Wrap(err, "flushing CSV output")
	}
	if cfw.f == os.Stdout {
		return nil
	}
	return errors.Wrap(cfw.f.Close(), "closing CSV output")
}

/*
createWriter takes a context and the location of an output store and
returns a writer for records on it. An empty location means CSV on STDOUT.
SQL stores get a new records table and Redis ones are emptied. Closing the
writer flushes pending records.
*/
func createWriter(ctx context.Context, location string) (recordWriter, error) {
	kind := kindOf(location)
	l := logrus.WithFields(logrus.Fields{"output": displayName(location, "STDOUT"), "kind": kind})
	l.Info("creating output set")
	switch kind {
	case sqlite3Store, postgreSQLStore:
		adapter, err := sqlAdapter(kind, location)
		if err != nil {
			return nil, err
		}
		s, err := sqlset.Create(ctx, adapter)
		if err != nil {
			adapter.Close()
			return nil, err
		}
		return s, nil
	case mongoDBStore:
		s, err := mongoset.Dial(ctx, location)
		if err != nil {
			return nil, err
		}
		return s, nil
	case redisStore:
		s, err := redisset.Dial(location)
		if err != nil {
			return nil, err
		}
		if err = s.Clear(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	}
	f := os.Stdout
	if location != "" {
		var err error
		f, err = os.Create(location)
		if err != nil {
			return nil, errors.Wrapf(err, "creating %s", location)
		}
	}
	w, err := csv.NewWriter(f)
	if err != nil {
		if f != os.Stdout {
			f.Close()
		}
		return nil, err
	}
	return &csvFileWriter{Writer: w, f: f}, nil
}

func sqlAdapter(kind storeKind, location string) (sqlset.Adapter, error) {
	if kind == postgreSQLStore {
		return pgadapter.New(location)
	}
	return sqlite3adapter.New(location)
}

// collect reads every record from the given location into a set.
func collect(ctx context.Context, location string, t listing.Thresholds) (*dataset.Set, error) {
	r, err := openReader(ctx, location, t)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	s, err := dataset.Collect(ctx, r)
	if err != nil {
		return nil, errors.Wrapf(err, "reading records from %s", displayName(location, "STDIN"))
	}
	return s, nil
}

func displayName(location, std string) string {
	if location == "" {
		return std
	}
	return location
}
