package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionBakers   = "homebakers"
	collectionLaundry  = "laundries"
	collectionMedicals = "medicals"
)

// ListingRepository stores one listing type T in its own collection. T must
// map its id to "_id" as a string; ObjectIDs decode into it as hex.
type ListingRepository[T any] struct {
	col      *mongo.Collection
	notFound error
	// refs are string fields of T holding user ids, stored as ObjectIDs.
	refs map[string]struct{}
}

// NewListingRepository binds T to collection. notFound is returned whenever
// an id does not resolve, including ids that are not valid ObjectIDs. refs
// names the fields written as ObjectIDs (e.g. "ownerId").
func NewListingRepository[T any](db *mongo.Database, collection string, notFound error, refs ...string) *ListingRepository[T] {
	r := &ListingRepository[T]{col: db.Collection(collection), notFound: notFound, refs: make(map[string]struct{}, len(refs))}
	for _, f := range refs {
		r.refs[f] = struct{}{}
	}
	return r
}

func (r *ListingRepository[T]) List(ctx context.Context) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.col.Name(), err)
	}
	items := make([]*T, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.col.Name(), err)
	}
	return items, nil
}

func (r *ListingRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, r.notFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var item T
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&item); err != nil {
		return nil, r.mapErr(err)
	}
	return &item, nil
}

// Create inserts item and reads it back so the generated id is populated.
func (r *ListingRepository[T]) Create(ctx context.Context, item *T) (*T, error) {
	doc, err := r.document(item)
	if err != nil {
		return nil, err
	}

	insertCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(insertCtx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", r.col.Name(), err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert %s: unexpected id type %T", r.col.Name(), res.InsertedID)
	}
	return r.FindByID(ctx, oid.Hex())
}

func (r *ListingRepository[T]) Update(ctx context.Context, id string, fields map[string]any) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, r.notFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := make(bson.M, len(fields))
	for k, v := range fields {
		if set[k], err = r.ref(k, v); err != nil {
			return nil, err
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var item T
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&item)
	if err != nil {
		return nil, r.mapErr(err)
	}
	return &item, nil
}

func (r *ListingRepository[T]) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return r.notFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.col.Name(), err)
	}
	if res.DeletedCount == 0 {
		return r.notFound
	}
	return nil
}

// document encodes item and rewrites its reference fields as ObjectIDs.
func (r *ListingRepository[T]) document(item *T) (bson.D, error) {
	raw, err := bson.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", r.col.Name(), err)
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode %s: %w", r.col.Name(), err)
	}
	for i, e := range doc {
		if doc[i].Value, err = r.ref(e.Key, e.Value); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// ref converts v to an ObjectID when key is a reference field. Empty
// references are stored as null.
func (r *ListingRepository[T]) ref(key string, v any) (any, error) {
	if _, ok := r.refs[key]; !ok {
		return v, nil
	}
	var s string
	switch id := v.(type) {
	case string:
		s = id
	case *string:
		if id == nil {
			return nil, nil
		}
		s = *id
	default:
		return v, nil
	}
	if s == "" {
		return nil, nil
	}
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return nil, fmt.Errorf("%s.%s %q: %w", r.col.Name(), key, s, err)
	}
	return oid, nil
}

func (r *ListingRepository[T]) mapErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return r.notFound
	}
	return fmt.Errorf("%s: %w", r.col.Name(), err)
}
