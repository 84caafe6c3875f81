package yaml

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/pricetree/listing"
)

func TestReadThresholds(t *testing.T) {
	doc := []byte(`
thresholds:
  low_reviews: 10
  price_bounds: [50, 100, 150, 200, 250]
`)
	th, err := ReadThresholds(doc)
	require.NoError(t, err)
	assert.Equal(t, 10, th.LowReviews)
	assert.Equal(t, 200, th.HighReviews)
	assert.Equal(t, 4.0, th.LowScore)
	assert.Equal(t, []int64{50, 100, 150, 200, 250}, th.PriceBounds)
	assert.Equal(t, []int{10, 20, 30}, th.AmenityBounds)
}

func TestReadThresholds_Defaults(t *testing.T) {
	th, err := ReadThresholds([]byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, listing.DefaultThresholds(), th)
}

func TestReadThresholds_Invalid(t *testing.T) {
	for name, doc := range map[string]string{
		"null thresholds":    "thresholds:\n",
		"short price bounds": "thresholds:\n  price_bounds: [100, 200]\n",
		"decreasing bounds":  "thresholds:\n  amenity_bounds: [30, 20, 10]\n",
		"unknown property":   "thresholds:\n  max_price: 3\n",
		"malformed":          "thresholds: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadThresholds([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestReadThresholdsFromFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "thresholds")
	require.NoError(t, err)
	path := filepath.Join(dir, "thresholds.yml")
	require.NoError(t, ioutil.WriteFile(path, []byte("thresholds:\n  low_score: 4.5\n"), 0644))

	th, err := ReadThresholdsFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4.5, th.LowScore)

	_, err = ReadThresholdsFromFile(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}
