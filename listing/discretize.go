package listing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

/*
RawListing holds the fields of a listing as they are read from a listings
file, before any bucketing.
*/
type RawListing struct {
	RoomType    string
	Bedrooms    string
	Reviews     string
	ReviewScore string
	Price       string
	Amenities   int
}

/*
Thresholds holds the boundaries used to bucket raw listing values.

A review count below LowReviews is Level1 and one above HighReviews is
Level5; anything in between is Level3. A review score below LowScore moves
Level3 down to Level2 and Level5 down to Level4.

PriceBounds are the exclusive upper bounds of every bracket but the last,
and AmenityBounds those of every amenities level but the last.
*/
type Thresholds struct {
	LowReviews    int     `yaml:"low_reviews"`
	HighReviews   int     `yaml:"high_reviews"`
	LowScore      float64 `yaml:"low_score"`
	PriceBounds   []int64 `yaml:"price_bounds"`
	AmenityBounds []int   `yaml:"amenity_bounds"`
}

// DefaultThresholds returns the thresholds listings are bucketed with
// unless configured otherwise.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LowReviews:    50,
		HighReviews:   200,
		LowScore:      4.0,
		PriceBounds:   []int64{100, 200, 300, 400, 500},
		AmenityBounds: []int{10, 20, 30},
	}
}

/*
Validate returns an error if the thresholds cannot bucket values into the
declared enumerations: there must be one price bound per bracket but the
last, one amenity bound per level but the last, and bounds must increase.
*/
func (t Thresholds) Validate() error {
	if len(t.PriceBounds) != BracketCount-1 {
		return fmt.Errorf("expected %d price bounds, got %d", BracketCount-1, len(t.PriceBounds))
	}
	for i := 1; i < len(t.PriceBounds); i++ {
		if t.PriceBounds[i] <= t.PriceBounds[i-1] {
			return fmt.Errorf("price bounds must increase: %v", t.PriceBounds)
		}
	}
	if len(t.AmenityBounds) != len(amenitiesLevelNames)-1 {
		return fmt.Errorf("expected %d amenity bounds, got %d", len(amenitiesLevelNames)-1, len(t.AmenityBounds))
	}
	for i := 1; i < len(t.AmenityBounds); i++ {
		if t.AmenityBounds[i] <= t.AmenityBounds[i-1] {
			return fmt.Errorf("amenity bounds must increase: %v", t.AmenityBounds)
		}
	}
	if t.HighReviews < t.LowReviews {
		return fmt.Errorf("high_reviews (%d) is below low_reviews (%d)", t.HighReviews, t.LowReviews)
	}
	return nil
}

/*
Discretize takes a raw listing and a set of thresholds and returns the
corresponding record. Values that are empty or cannot be parsed fall back
to the lowest bucket of their feature, and an empty or unparseable review
score counts as 0.
*/
func Discretize(raw RawListing, t Thresholds) Record {
	return Record{
		RoomType:       roomTypeFor(raw.RoomType),
		Bedrooms:       bedroomsFor(raw.Bedrooms),
		Popularity:     popularityFor(raw.Reviews, raw.ReviewScore, t),
		AmenitiesLevel: amenitiesLevelFor(raw.Amenities, t.AmenityBounds),
		Bracket:        bracketFor(raw.Price, t.PriceBounds),
	}
}

func roomTypeFor(s string) RoomType {
	switch strings.TrimSpace(s) {
	case "Entire home/apt":
		return EntireHomeApt
	case "Hotel room":
		return HotelRoom
	}
	return PrivateRoom
}

func bedroomsFor(s string) Bedrooms {
	n, ok := parseCount(s)
	switch {
	case !ok || n <= 1:
		return One
	case n == 2:
		return Two
	case n <= 5:
		return ThreeToFive
	}
	return SixOrMore
}

func popularityFor(reviews, score string, t Thresholds) Popularity {
	n, ok := parseCount(reviews)
	if !ok {
		n = 1
	}
	var p Popularity
	switch {
	case n < t.LowReviews:
		p = Level1
	case n > t.HighReviews:
		p = Level5
	default:
		p = Level3
	}
	s, err := strconv.ParseFloat(strings.TrimSpace(score), 64)
	if err != nil {
		s = 0
	}
	if s < t.LowScore {
		switch p {
		case Level3:
			p = Level2
		case Level5:
			p = Level4
		}
	}
	return p
}

func amenitiesLevelFor(n int, bounds []int) AmenitiesLevel {
	for i, b := range bounds {
		if n < b {
			return AmenitiesLevel(i)
		}
	}
	return AmenitiesLevel(len(bounds))
}

func bracketFor(s string, bounds []int64) Bracket {
	s = strings.TrimSpace(s)
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return !(r >= '0' && r <= '9') && r != '.' && r != '-'
	})
	s = strings.Replace(s, ",", "", -1)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Under100
	}
	price := d.IntPart()
	for i, b := range bounds {
		if price < b {
			return Bracket(i)
		}
	}
	return Bracket(len(bounds))
}

// parseCount reads a non-negative count, accepting "2" as well as "2.0".
func parseCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}
