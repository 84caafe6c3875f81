/*
Package csv provides the reading of listings files and the reading and
writing of discretized records in CSV format.

A listings file has a header line followed by one row per listing with its
room type, bedrooms, number of reviews, review score and nightly price,
then one column per amenity. Rows may have any number of columns.

A records file has a header line with listing.Columns followed by one row
per record with the names of its values.
*/
package csv

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/pbanos/pricetree/listing"
)

// Number of leading columns in a listings row that are not amenities.
const listingColumns = 5

func newReader(reader io.Reader) *csv.Reader {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r
}

/*
ReadRows takes an io.Reader for a CSV stream and a lambda function on an
integer and a row. It reads the header and returns it, and for each row
after it calls the lambda function with the line number the row starts at
(the header being line 1) and the row. If the lambda function returns
true, it will continue processing the next row, otherwise it will stop. An
error is returned if something goes wrong when reading the stream or the
lambda function returns one.
*/
func ReadRows(reader io.Reader, lambda func(int, []string) (bool, error)) ([]string, error) {
	r := newReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}
	return header, readRows(r, lambda)
}

func readRows(r *csv.Reader, lambda func(int, []string) (bool, error)) error {
	for {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading body")
		}
		line, _ := r.FieldPos(0)
		ok, err := lambda(line, row)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

/*
ParseListing takes the columns of a listings row and returns the raw
listing they describe. Missing columns are taken as empty.
*/
func ParseListing(row []string) listing.RawListing {
	field := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	raw := listing.RawListing{
		RoomType:    field(0),
		Bedrooms:    field(1),
		Reviews:     field(2),
		ReviewScore: field(3),
		Price:       field(4),
	}
	if len(row) > listingColumns {
		raw.Amenities = len(row) - listingColumns
	}
	return raw
}

/*
ReadListings takes an io.Reader for a listings CSV stream and a lambda
function on an integer and a listing.RawListing. It parses the listings from
the reader and for each calls the lambda function with the line number the
listing was read from and the listing. If the lambda function returns true,
it will continue processing the next listing, otherwise it will stop.
*/
func ReadListings(reader io.Reader, lambda func(int, listing.RawListing) (bool, error)) error {
	_, err := ReadRows(reader, func(line int, row []string) (bool, error) {
		return lambda(line, ParseListing(row))
	})
	return err
}
