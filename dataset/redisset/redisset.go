/*
Package redisset provides a record store that keeps records in a Redis
list.
*/
package redisset

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	redis "gopkg.in/redis.v5"

	"github.com/pbanos/pricetree/listing"
)

const (
	// DefaultPrefix is the prefix of the key records are stored under
	// unless told otherwise.
	DefaultPrefix = "pricetree"
	// Number of records requested from Redis at a time when reading.
	readPageSize = 100
)

/*
Set is a store of records on a Redis list to which records can be added
and from which they can be sequentially read.
*/
type Set struct {
	rc     *redis.Client
	prefix string
}

// New builds a Set on the given Redis client keeping its records under
// the given key prefix.
func New(rc *redis.Client, prefix string) *Set {
	return &Set{rc, prefix}
}

/*
Dial takes a Redis URL of the form
redis://[:password@]host[:port][/db][?prefix=name], or rediss:// for TLS,
connects to it and returns a Set or an error if the URL cannot be parsed or
the server does not answer. Only the prefix query parameter is accepted.
*/
func Dial(rawurl string) (*Set, error) {
	opts, prefix, err := parseURL(rawurl)
	if err != nil {
		return nil, err
	}
	rc := redis.NewClient(opts)
	_, err = rc.Ping().Result()
	if err != nil {
		rc.Close()
		return nil, errors.Wrapf(err, "connecting to redis at %s", opts.Addr)
	}
	return New(rc, prefix), nil
}

func parseURL(rawurl string) (*redis.Options, string, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, "", errors.Wrap(err, "parsing redis URL")
	}
	query := u.Query()
	prefix := query.Get("prefix")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	query.Del("prefix")
	u.RawQuery = query.Encode()
	opts, err := redis.ParseURL(u.String())
	if err != nil {
		return nil, "", errors.Wrap(err, "parsing redis URL")
	}
	return opts, prefix, nil
}

// Count returns the number of records in the set.
func (rs *Set) Count(ctx context.Context) (int, error) {
	n, err := rs.rc.LLen(rs.key()).Result()
	if err != nil {
		return 0, errors.Wrap(err, "counting records in redis")
	}
	return int(n), nil
}

// Write appends the given records to the set and returns the number of
// records added.
func (rs *Set) Write(ctx context.Context, records []listing.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	values := make([]interface{}, len(records))
	for i, r := range records {
		values[i] = encode(r)
	}
	_, err := rs.rc.RPush(rs.key(), values...).Result()
	if err != nil {
		return 0, errors.Wrap(err, "storing records in redis")
	}
	return len(records), nil
}

/*
Read takes a context and returns a channel on which every record in the set
is sent, in insertion order, and a channel on which an error is sent if
reading fails.
*/
func (rs *Set) Read(ctx context.Context) (<-chan listing.Record, <-chan error) {
	records := make(chan listing.Record)
	errs := make(chan error, 1)
	go func() {
		defer close(records)
		defer close(errs)
		for start := int64(0); ; start += readPageSize {
			page, err := rs.rc.LRange(rs.key(), start, start+readPageSize-1).Result()
			if err != nil {
				errs <- errors.Wrap(err, "reading records from redis")
				return
			}
			for i, data := range page {
				r, err := decode(data)
				if err != nil {
					errs <- errors.Wrapf(err, "decoding record %d", start+int64(i))
					return
				}
				select {
				case <-ctx.Done():
					errs <- ctx.Err()
					return
				case records <- r:
				}
			}
			if len(page) < readPageSize {
				return
			}
		}
	}()
	return records, errs
}

// Clear removes every record from the set.
func (rs *Set) Clear(ctx context.Context) error {
	_, err := rs.rc.Del(rs.key()).Result()
	if err != nil {
		return errors.Wrapf(err, "deleting %q from redis", rs.key())
	}
	return nil
}

// Close closes the Redis client of the set.
func (rs *Set) Close() error {
	return rs.rc.Close()
}

func (rs *Set) key() string {
	return fmt.Sprintf("%s:records", rs.prefix)
}

func encode(r listing.Record) string {
	return strings.Join(r.Fields(), ",")
}

func decode(data string) (listing.Record, error) {
	return listing.ParseRecord(strings.Split(data, ","))
}
