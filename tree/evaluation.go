package tree

import (
	"github.com/pbanos/pricetree/dataset"
	"github.com/pbanos/pricetree/listing"
)

/*
Evaluation holds the results of testing a tree against a set of records
with known price brackets.

Confusion has a row per actual bracket and a column per predicted
bracket, plus a last column counting the records the tree had no data to
predict.
*/
type Evaluation struct {
	Total     int
	Correct   int
	NoData    int
	Confusion [][]int
}

// NoDataColumn is the column of the confusion matrix counting records
// that ended up on an Empty node.
const NoDataColumn = listing.BracketCount

func newEvaluation() *Evaluation {
	e := &Evaluation{Confusion: make([][]int, listing.BracketCount)}
	for i := range e.Confusion {
		e.Confusion[i] = make([]int, listing.BracketCount+1)
	}
	return e
}

/*
Test takes a set and returns the Evaluation of the tree over the records
in it.
*/
func (t *Tree) Test(s *dataset.Set) *Evaluation {
	e := newEvaluation()
	for _, r := range s.Records() {
		e.Total++
		b, ok := t.Classify(r)
		if !ok {
			e.NoData++
			e.Confusion[r.Bracket][NoDataColumn]++
			continue
		}
		if b == r.Bracket {
			e.Correct++
		}
		e.Confusion[r.Bracket][b]++
	}
	return e
}

/*
Accuracy returns the share of tested records whose bracket was predicted
correctly, or 0 if no records were tested. Records the tree had no data
for count as failures.
*/
func (e *Evaluation) Accuracy() float64 {
	return safeDivide(float64(e.Correct), float64(e.Total))
}

// Precision returns the share of records predicted in the given bracket
// that actually were in it.
func (e *Evaluation) Precision(b listing.Bracket) float64 {
	var predicted int
	for _, row := range e.Confusion {
		predicted += row[b]
	}
	return safeDivide(float64(e.Confusion[b][b]), float64(predicted))
}

// Recall returns the share of records in the given bracket that were
// predicted in it.
func (e *Evaluation) Recall(b listing.Bracket) float64 {
	var actual int
	for _, c := range e.Confusion[b] {
		actual += c
	}
	return safeDivide(float64(e.Confusion[b][b]), float64(actual))
}

func safeDivide(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
