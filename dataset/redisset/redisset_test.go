package redisset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/pricetree/listing"
)

func TestEncoding(t *testing.T) {
	r := listing.Record{RoomType: listing.HotelRoom, Bedrooms: listing.Two, Popularity: listing.Level3, AmenitiesLevel: listing.Common, Bracket: listing.From200To300}
	data := encode(r)
	assert.Equal(t, "HotelRoom,Two,Level3,Common,From200To300", data)
	decoded, err := decode(data)
	require.NoError(t, err)
	assert.Equal(t, r, decoded)

	_, err = decode("HotelRoom,Two,Level3")
	assert.Error(t, err)
}

func TestParseURL(t *testing.T) {
	opts, prefix, err := parseURL("redis://:secret@cache.local:6380/2?prefix=listings")
	require.NoError(t, err)
	assert.Equal(t, "cache.local:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, "listings", prefix)

	opts, prefix, err = parseURL("redis://localhost")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 0, opts.DB)
	assert.Equal(t, DefaultPrefix, prefix)

	opts, _, err = parseURL("redis://")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)

	opts, prefix, err = parseURL("rediss://cache.local/1?prefix=secure")
	require.NoError(t, err)
	assert.Equal(t, "cache.local:6379", opts.Addr)
	assert.Equal(t, 1, opts.DB)
	assert.Equal(t, "secure", prefix)
}

func TestParseURLErrors(t *testing.T) {
	for _, rawurl := range []string{
		"http://localhost",
		"redis://localhost/db",
		"redis://localhost/1/2",
		"redis://localhost?timeout=3",
		"redis://local host",
	} {
		t.Run(rawurl, func(t *testing.T) {
			_, _, err := parseURL(rawurl)
			assert.Error(t, err)
		})
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "listings:records", New(nil, "listings").key())
}
