/*
Package mongoset provides a record store that uses a MongoDB
database as backend.
*/
package mongoset

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/pbanos/pricetree/listing"
)

const (
	recordsCollectionName = "records"
)

/*
Set is a store of records on a MongoDB database to which records can be
added and from which they can be sequentially read.
*/
type Set struct {
	session *mgo.Session
}

/*
Open takes a context and a MongoDB database session and returns a Set that
works on the default database for that session or an error if it fails to
ensure the indexes of its collection.
*/
func Open(ctx context.Context, session *mgo.Session) (*Set, error) {
	ms := &Set{session}
	err := ms.ensureIndexes()
	if err != nil {
		return nil, err
	}
	return ms, nil
}

/*
Dial takes a context and a MongoDB connection URL, connects to it and
returns a Set that works on the database named in the URL or an error.
*/
func Dial(ctx context.Context, url string) (*Set, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to MongoDB")
	}
	ms, err := Open(ctx, session)
	if err != nil {
		session.Close()
		return nil, err
	}
	return ms, nil
}

// Count returns the number of records in the set.
func (ms *Set) Count(context.Context) (int, error) {
	return ms.recordsCollection().Find(nil).Count()
}

// Write adds the given records to the set and returns the number of
// records added.
func (ms *Set) Write(ctx context.Context, records []listing.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(records))
	for _, r := range records {
		docs = append(docs, docFor(r))
	}
	err := ms.recordsCollection().Insert(docs...)
	if err != nil {
		return 0, errors.Wrap(err, "inserting records")
	}
	return len(records), nil
}

/*
Read takes a context and returns a channel on which every record in the set
is sent, in insertion order, and a channel on which an error is sent if
reading fails.
*/
func (ms *Set) Read(ctx context.Context) (<-chan listing.Record, <-chan error) {
	records := make(chan listing.Record)
	errs := make(chan error, 1)
	go func() {
		defer close(records)
		defer close(errs)
		iter := ms.recordsCollection().Find(nil).Sort("_id").Iter()
		var doc bson.M
		for iter.Next(&doc) {
			r, err := recordFrom(doc)
			if err != nil {
				iter.Close()
				errs <- err
				return
			}
			select {
			case <-ctx.Done():
				iter.Close()
				errs <- ctx.Err()
				return
			case records <- r:
			}
			doc = nil
		}
		if err := iter.Close(); err != nil {
			errs <- errors.Wrap(err, "iterating on records")
		}
	}()
	return records, errs
}

// Close releases the MongoDB session of the set.
func (ms *Set) Close() error {
	ms.session.Close()
	return nil
}

func docFor(r listing.Record) bson.M {
	doc := make(bson.M, len(listing.Columns))
	for i, v := range r.Fields() {
		doc[listing.Columns[i]] = v
	}
	return doc
}

func recordFrom(doc bson.M) (listing.Record, error) {
	fields := make([]string, len(listing.Columns))
	for i, c := range listing.Columns {
		v, ok := doc[c].(string)
		if !ok {
			return listing.Record{}, fmt.Errorf("decoding record %v: %s is a %T instead of a string", doc["_id"], c, doc[c])
		}
		fields[i] = v
	}
	r, err := listing.ParseRecord(fields)
	if err != nil {
		return r, errors.Wrapf(err, "decoding record %v", doc["_id"])
	}
	return r, nil
}

func (ms *Set) ensureIndexes() error {
	index := mgo.Index{
		Key:        []string{"price_bracket"},
		Background: true,
	}
	err := ms.recordsCollection().EnsureIndex(index)
	if err != nil {
		return errors.Wrap(err, "ensuring records index")
	}
	return nil
}

func (ms *Set) recordsCollection() *mgo.Collection {
	return ms.session.DB("").C(recordsCollectionName)
}
