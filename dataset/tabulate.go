package dataset

import (
	"github.com/pbanos/pricetree/listing"
)

/*
Distribution holds a count of records per price bracket, indexed by bracket
ordinal.
*/
type Distribution []int

/*
Sole returns the only bracket with a nonzero count in the distribution and
true, or false if there is none or more than one.
*/
func (d Distribution) Sole() (listing.Bracket, bool) {
	found := -1
	for i, c := range d {
		if c == 0 {
			continue
		}
		if found >= 0 {
			return 0, false
		}
		found = i
	}
	if found < 0 {
		return 0, false
	}
	return listing.Bracket(found), true
}

/*
Majority returns the bracket with the highest count in the distribution,
the lowest one among those tied.
*/
func (d Distribution) Majority() listing.Bracket {
	best := 0
	for i, c := range d {
		if c > d[best] {
			best = i
		}
	}
	return listing.Bracket(best)
}

// Total returns the sum of the counts in the distribution.
func (d Distribution) Total() int {
	var total int
	for _, c := range d {
		total += c
	}
	return total
}

/*
ContingencyTable holds, for a feature, a Distribution for each of its values
indexed by value ordinal.
*/
type ContingencyTable []Distribution

// Rows returns the number of records counted in each row of the table.
func (t ContingencyTable) Rows() []int {
	rows := make([]int, len(t))
	for i, d := range t {
		rows[i] = d.Total()
	}
	return rows
}

// Total returns the sum of all the cells in the table.
func (t ContingencyTable) Total() int {
	var total int
	for _, d := range t {
		total += d.Total()
	}
	return total
}

/*
Tabulation holds the price bracket distribution of a set and one contingency
table per feature, indexed by feature.
*/
type Tabulation struct {
	Distribution Distribution
	Tables       []ContingencyTable
}

// Table returns the contingency table for the given feature.
func (t *Tabulation) Table(f listing.Feature) ContingencyTable {
	return t.Tables[f]
}

// Count returns the number of records tabulated.
func (t *Tabulation) Count() int {
	return t.Distribution.Total()
}

/*
Tabulate goes over the records of the set once and returns their
Tabulation. An empty set yields tables with every count at zero.
*/
func (s *Set) Tabulate() *Tabulation {
	t := &Tabulation{
		Distribution: make(Distribution, listing.BracketCount),
		Tables:       make([]ContingencyTable, listing.FeatureCount),
	}
	for _, f := range listing.Features {
		table := make(ContingencyTable, f.Cardinality())
		for i := range table {
			table[i] = make(Distribution, listing.BracketCount)
		}
		t.Tables[f] = table
	}
	for _, r := range s.records {
		t.Distribution[r.Bracket]++
		for _, f := range listing.Features {
			t.Tables[f][f.Ordinal(r)][r.Bracket]++
		}
	}
	return t
}
