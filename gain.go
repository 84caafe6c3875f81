package pricetree

import (
	"math"

	"github.com/pbanos/pricetree/dataset"
	"github.com/pbanos/pricetree/listing"
)

/*
GainRatio takes the entropy of a partition, the conditional entropy of its
price brackets given a feature and the split information of the feature and
returns the gain ratio of splitting the partition by the feature.

When the split information is 0 the feature takes a single value in the
partition and cannot split it: the result is negative infinity, so it never
beats an eligible feature.
*/
func GainRatio(parent, conditional, splitInfo float64) float64 {
	if splitInfo == 0 {
		return math.Inf(-1)
	}
	gain := parent - conditional
	if gain < 0 {
		gain = 0
	}
	return gain / splitInfo
}

/*
Selection is the outcome of choosing how to develop a partition.

When Pure is true every record in the partition is in Bracket and the
partition becomes a leaf. Otherwise, when Split is true, Feature is the
feature to split the partition by. When neither is true no feature can
split the partition.
*/
type Selection struct {
	Entropy    float64
	Pure       bool
	Bracket    listing.Bracket
	Split      bool
	Feature    listing.Feature
	GainRatio  float64
	GainRatios []float64
}

/*
SelectFeature takes the tabulation of a partition and returns the Selection
for it. The gain ratios of the features are only computed when the
partition is not pure. The feature with the strictly greatest gain ratio
is selected, and ties go to the earliest feature in listing.Features. Gain
ratios within tieTolerance of each other are taken as tied.
*/
func SelectFeature(tab *dataset.Tabulation) Selection {
	sel := Selection{Entropy: dataset.Entropy(tab.Distribution)}
	if sel.Entropy == 0 {
		sel.Bracket, sel.Pure = tab.Distribution.Sole()
		return sel
	}
	sel.GainRatio = math.Inf(-1)
	sel.GainRatios = make([]float64, listing.FeatureCount)
	for _, f := range listing.Features {
		conditional, splitInfo := dataset.ConditionalEntropy(tab.Table(f))
		gr := GainRatio(sel.Entropy, conditional, splitInfo)
		sel.GainRatios[f] = gr
		if improves(gr, sel.GainRatio) {
			sel.GainRatio = gr
			sel.Feature = f
			sel.Split = true
		}
	}
	return sel
}

// Relative difference below which two gain ratios are taken as equal.
const tieTolerance = 1e-12

// improves tells whether gain ratio gr beats best by more than rounding.
func improves(gr, best float64) bool {
	if math.IsInf(best, -1) {
		return gr > best
	}
	return gr > best+tieTolerance*math.Max(1, math.Abs(best))
}
