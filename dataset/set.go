/*
Package dataset provides the collections of records a tree is grown from and
tested against, the tabulation of their price brackets by feature value and
the entropy measures computed on those tabulations.
*/
package dataset

import (
	"github.com/pbanos/pricetree/listing"
)

/*
Set represents a collection of records.

Its Count method returns the number of records it contains.

Its Records method returns the records it contains.

Its Tabulate method returns the distribution of price brackets in the set,
overall and for each value of every feature.

Its SubsetsBy method partitions the set by the values of a feature.
*/
type Set struct {
	records []listing.Record
}

/*
New takes a slice of records and returns a set built with them. The set
keeps its own copy of the slice.
*/
func New(records []listing.Record) *Set {
	rs := make([]listing.Record, len(records))
	copy(rs, records)
	return &Set{rs}
}

// Count returns the number of records in the set.
func (s *Set) Count() int {
	return len(s.records)
}

// Records returns the records in the set. The returned slice must not be
// modified.
func (s *Set) Records() []listing.Record {
	return s.records
}

/*
Add appends the given records to the set. It is meant for sets being
assembled from a reader, not for sets a tree is already being grown from.
*/
func (s *Set) Add(records ...listing.Record) {
	s.records = append(s.records, records...)
}

/*
Entropy returns the entropy in bits of the price bracket distribution of
the set.
*/
func (s *Set) Entropy() float64 {
	d := make(Distribution, listing.BracketCount)
	for _, r := range s.records {
		d[r.Bracket]++
	}
	return Entropy(d)
}

/*
SubsetsBy takes a feature and returns a slice with one subset per value of
the feature, in declaration order. A subset holds the records of the set
whose value for the feature is the one at its index, so subsets for values
no record has are empty but present.
*/
func (s *Set) SubsetsBy(f listing.Feature) []*Set {
	subsets := make([]*Set, f.Cardinality())
	for i := range subsets {
		subsets[i] = &Set{}
	}
	for _, r := range s.records {
		ss := subsets[f.Ordinal(r)]
		ss.records = append(ss.records, r)
	}
	return subsets
}
