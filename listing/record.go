package listing

import "fmt"

// Columns names the fields of an encoded Record, in encoding order.
var Columns = []string{"room_type", "bedrooms", "popularity", "amenities_level", "price_bracket"}

/*
Record is a discretized listing: one value for each candidate feature and
the price bracket it belongs to.
*/
type Record struct {
	RoomType       RoomType
	Bedrooms       Bedrooms
	Popularity     Popularity
	AmenitiesLevel AmenitiesLevel
	Bracket        Bracket
}

/*
ParseRecord takes the encoded fields of a record, in the order given by
Columns, and returns the record or an error if a field holds an unknown
value or the number of fields is wrong.
*/
func ParseRecord(fields []string) (Record, error) {
	var r Record
	if len(fields) != len(Columns) {
		return r, fmt.Errorf("expected %d record fields, got %d", len(Columns), len(fields))
	}
	var err error
	if r.RoomType, err = ParseRoomType(fields[0]); err != nil {
		return r, err
	}
	if r.Bedrooms, err = ParseBedrooms(fields[1]); err != nil {
		return r, err
	}
	if r.Popularity, err = ParsePopularity(fields[2]); err != nil {
		return r, err
	}
	if r.AmenitiesLevel, err = ParseAmenitiesLevel(fields[3]); err != nil {
		return r, err
	}
	if r.Bracket, err = ParseBracket(fields[4]); err != nil {
		return r, err
	}
	return r, nil
}

// Fields returns the encoded fields of the record in the order of Columns.
func (r Record) Fields() []string {
	return []string{
		r.RoomType.String(),
		r.Bedrooms.String(),
		r.Popularity.String(),
		r.AmenitiesLevel.String(),
		r.Bracket.String(),
	}
}

/*
ValueFor returns the ordinal of the record's value for the given feature.
It never fails; it lets a Record be used wherever feature values are
resolved lazily.
*/
func (r Record) ValueFor(f Feature) (int, error) {
	return f.Ordinal(r), nil
}

func (r Record) String() string {
	return fmt.Sprintf("{%s %s %s %s -> %s}", r.RoomType, r.Bedrooms, r.Popularity, r.AmenitiesLevel, r.Bracket)
}
