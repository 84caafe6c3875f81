/*
Package inputsample provides an implementation of tree.Sample whose
feature values are read from an io.Reader as they are needed.
*/
package inputsample

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/pbanos/pricetree/listing"
)

/*
FeatureValueRequester represents a way to ask
for feature values and reject the given values.
*/
type FeatureValueRequester interface {
	RequestValueFor(listing.Feature) error
	RejectValueFor(listing.Feature, string) error
}

/*
Sample represents a listing whose feature values
are retrieved from a reader. A feature value will be
requested using a FeatureValueRequester before reading it.
*/
type Sample struct {
	obtainedValues        map[listing.Feature]int
	scanner               *bufio.Scanner
	featureValueRequester FeatureValueRequester
}

/*
New takes an io.Reader and a FeatureValueRequester and returns a Sample.

The returned Sample ValueFor method reads feature values first
requesting them with the given FeatureValueRequester and
then parsing the values from the reader.

The parsing expects each value to be presented ending with the
'\n' character, that is in new lines. Lines will be read from the
reader until one holds the name of a value of the feature, in any
case, or its 1-based position among the feature's values. Lines
with anything else are rejected with the FeatureValueRequester's
RejectValueFor method.

Values are only requested once: later calls for the same feature
return the value obtained the first time.
*/
func New(r io.Reader, featureValueRequester FeatureValueRequester) *Sample {
	return &Sample{make(map[listing.Feature]int), bufio.NewScanner(r), featureValueRequester}
}

// ValueFor returns the ordinal of the value of the given feature for the
// sample, reading it if it was not obtained before.
func (rs *Sample) ValueFor(f listing.Feature) (int, error) {
	value, ok := rs.obtainedValues[f]
	if ok {
		return value, nil
	}
	err := rs.featureValueRequester.RequestValueFor(f)
	if err != nil {
		return 0, err
	}
	for rs.scanner.Scan() {
		line := strings.TrimSpace(rs.scanner.Text())
		if v, ok := parseValue(f, line); ok {
			rs.obtainedValues[f] = v
			return v, nil
		}
		err = rs.featureValueRequester.RejectValueFor(f, line)
		if err != nil {
			return 0, err
		}
	}
	err = rs.scanner.Err()
	if err != nil {
		return 0, errors.Wrapf(err, "reading value for %s", f)
	}
	return 0, errors.Errorf("EOF when requesting value for %s", f)
}

func parseValue(f listing.Feature, line string) (int, bool) {
	values := f.AvailableValues()
	for i, v := range values {
		if strings.EqualFold(v, line) {
			return i, true
		}
	}
	n, err := strconv.Atoi(line)
	if err == nil && n >= 1 && n <= len(values) {
		return n - 1, true
	}
	return 0, false
}
