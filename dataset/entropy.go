package dataset

import "math"

/*
Entropy takes a slice of counts and returns the Shannon entropy, in bits, of
the distribution they describe. Zero counts contribute nothing and a slice
adding up to zero has an entropy of 0.
*/
func Entropy(counts []int) float64 {
	var total int
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}
	var result float64
	n := float64(total)
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		result -= p * math.Log2(p)
	}
	if result < 0 {
		return 0
	}
	return result
}

/*
ConditionalEntropy takes a contingency table and returns the entropy of the
price brackets conditioned on the feature it was built for, that is the mean
of the entropies of its rows weighted by their share of records, together
with the split information, the entropy of the row sums.

A table with no records yields 0 for both.
*/
func ConditionalEntropy(t ContingencyTable) (conditional, splitInfo float64) {
	rows := t.Rows()
	var total int
	for _, r := range rows {
		total += r
	}
	if total == 0 {
		return 0, 0
	}
	n := float64(total)
	for i, d := range t {
		if rows[i] == 0 {
			continue
		}
		conditional += float64(rows[i]) / n * Entropy(d)
	}
	return conditional, Entropy(rows)
}
