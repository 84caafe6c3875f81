/*
Package yaml provides methods to parse listing.Thresholds specifications,
the boundaries raw listing values are bucketed with, from YAML documents.
*/
package yaml

import (
	"io/ioutil"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/pbanos/pricetree/listing"
)

/*
ReadThresholds takes a slice of bytes with a thresholds specification in YML
and returns the thresholds parsed from it or an error.

The YML is expected to be an object with a thresholds property. Any of
low_reviews, high_reviews, low_score, price_bounds and amenity_bounds may be
given under it; those left out keep their default value. A document without
a thresholds property yields the default thresholds, whereas an explicitly
null one is an error.
*/
func ReadThresholds(md []byte) (listing.Thresholds, error) {
	doc := struct {
		Thresholds *listing.Thresholds `yaml:"thresholds"`
	}{}
	t := listing.DefaultThresholds()
	doc.Thresholds = &t
	err := yaml.UnmarshalStrict(md, &doc)
	if err != nil {
		return t, errors.Wrap(err, "parsing yml thresholds")
	}
	if doc.Thresholds == nil {
		return t, errors.New("thresholds document has no thresholds property")
	}
	err = doc.Thresholds.Validate()
	if err != nil {
		return t, errors.Wrap(err, "invalid thresholds")
	}
	return *doc.Thresholds, nil
}

/*
ReadThresholdsFromFile takes a filepath string, reads its contents and uses
ReadThresholds to parse it and return the thresholds or an error. If
the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadThresholdsFromFile(filepath string) (listing.Thresholds, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return listing.Thresholds{}, errors.Wrapf(err, "reading thresholds yml file %s", filepath)
	}
	t, err := ReadThresholds(md)
	if err != nil {
		err = errors.Wrapf(err, "parsing thresholds yml file %s", filepath)
	}
	return t, err
}
