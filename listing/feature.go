package listing

import "fmt"

/*
Feature identifies one of the nominal properties of a Record that a tree
can split on.
*/
type Feature int

const (
	FeatureRoomType Feature = iota
	FeatureBedrooms
	FeaturePopularity
	FeatureAmenitiesLevel
)

// FeatureCount is the number of candidate features.
const FeatureCount = 4

// Features holds every candidate feature in priority order. When two
// features are equally good splits the earlier one is preferred.
var Features = []Feature{FeatureRoomType, FeatureBedrooms, FeaturePopularity, FeatureAmenitiesLevel}

var featureNames = []string{"RoomType", "BedRooms", "Popularity", "AmenitiesLevel"}

/*
ParseFeature takes the name of a feature and returns the feature or an
error if no feature has that name.
*/
func ParseFeature(name string) (Feature, error) {
	i, err := ordinalOf(featureNames, "feature", name)
	return Feature(i), err
}

/*
Name returns a string with the name of the feature
*/
func (f Feature) Name() string {
	return nameOf(featureNames, int(f))
}

func (f Feature) String() string {
	return f.Name()
}

/*
AvailableValues returns the names of the values the feature can take, in
declaration order. The position of a name is the ordinal of its value.
*/
func (f Feature) AvailableValues() []string {
	switch f {
	case FeatureRoomType:
		return roomTypeNames
	case FeatureBedrooms:
		return bedroomsNames
	case FeaturePopularity:
		return popularityNames
	case FeatureAmenitiesLevel:
		return amenitiesLevelNames
	}
	return nil
}

// Cardinality returns the number of values the feature can take.
func (f Feature) Cardinality() int {
	return len(f.AvailableValues())
}

/*
Ordinal returns the position, in the feature's declaration order, of the
value the given record holds for the feature.
*/
func (f Feature) Ordinal(r Record) int {
	switch f {
	case FeatureRoomType:
		return int(r.RoomType)
	case FeatureBedrooms:
		return int(r.Bedrooms)
	case FeaturePopularity:
		return int(r.Popularity)
	case FeatureAmenitiesLevel:
		return int(r.AmenitiesLevel)
	}
	panic(fmt.Sprintf("unknown feature %d", int(f)))
}

/*
ParseValue takes the name of one of the feature's values and returns its
ordinal, or an error if the feature has no such value.
*/
func (f Feature) ParseValue(s string) (int, error) {
	return ordinalOf(f.AvailableValues(), f.Name(), s)
}

/*
ValueName returns the name of the value at the given ordinal.
*/
func (f Feature) ValueName(ordinal int) string {
	return nameOf(f.AvailableValues(), ordinal)
}
