/*
Package listing defines the categorical view of a short-term rental listing
that trees are grown from: a fixed set of nominal features and the nightly
price bracket to predict.
*/
package listing

import "fmt"

// RoomType is the kind of accommodation offered by a listing.
type RoomType int

// Bedrooms is the bucketed number of bedrooms of a listing.
type Bedrooms int

// Popularity is an ordinal level derived from review count and score.
type Popularity int

// AmenitiesLevel is the bucketed number of amenities a listing offers.
type AmenitiesLevel int

// Bracket is a nightly price range, the value trees predict.
type Bracket int

const (
	PrivateRoom RoomType = iota
	EntireHomeApt
	HotelRoom
)

const (
	One Bedrooms = iota
	Two
	ThreeToFive
	SixOrMore
)

const (
	Level1 Popularity = iota
	Level2
	Level3
	Level4
	Level5
)

const (
	Few AmenitiesLevel = iota
	Common
	Abundant
	Luxurious
)

const (
	Under100 Bracket = iota
	From100To200
	From200To300
	From300To400
	From400To500
	Above500
)

// BracketCount is the number of price brackets.
const BracketCount = 6

var (
	roomTypeNames       = []string{"PrivateRoom", "EntireHomeApt", "HotelRoom"}
	bedroomsNames       = []string{"One", "Two", "ThreeToFive", "SixOrMore"}
	popularityNames     = []string{"Level1", "Level2", "Level3", "Level4", "Level5"}
	amenitiesLevelNames = []string{"Few", "Common", "Abundant", "Luxurious"}
	bracketNames        = []string{"Under100", "From100To200", "From200To300", "From300To400", "From400To500", "Above500"}
)

// Brackets returns every bracket in ascending price order.
func Brackets() []Bracket {
	result := make([]Bracket, BracketCount)
	for i := range result {
		result[i] = Bracket(i)
	}
	return result
}

func (rt RoomType) String() string       { return nameOf(roomTypeNames, int(rt)) }
func (b Bedrooms) String() string        { return nameOf(bedroomsNames, int(b)) }
func (p Popularity) String() string      { return nameOf(popularityNames, int(p)) }
func (al AmenitiesLevel) String() string { return nameOf(amenitiesLevelNames, int(al)) }
func (b Bracket) String() string         { return nameOf(bracketNames, int(b)) }

// ParseRoomType returns the RoomType named s or an error.
func ParseRoomType(s string) (RoomType, error) {
	i, err := ordinalOf(roomTypeNames, "room type", s)
	return RoomType(i), err
}

// ParseBedrooms returns the Bedrooms bucket named s or an error.
func ParseBedrooms(s string) (Bedrooms, error) {
	i, err := ordinalOf(bedroomsNames, "bedrooms", s)
	return Bedrooms(i), err
}

// ParsePopularity returns the Popularity level named s or an error.
func ParsePopularity(s string) (Popularity, error) {
	i, err := ordinalOf(popularityNames, "popularity", s)
	return Popularity(i), err
}

// ParseAmenitiesLevel returns the AmenitiesLevel named s or an error.
func ParseAmenitiesLevel(s string) (AmenitiesLevel, error) {
	i, err := ordinalOf(amenitiesLevelNames, "amenities level", s)
	return AmenitiesLevel(i), err
}

// ParseBracket returns the Bracket named s or an error.
func ParseBracket(s string) (Bracket, error) {
	i, err := ordinalOf(bracketNames, "price bracket", s)
	return Bracket(i), err
}

func nameOf(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("Unknown(%d)", i)
	}
	return names[i]
}

func ordinalOf(names []string, what, s string) (int, error) {
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q, expected one of %v", what, s, names)
}
