// Copyright 2025 CrowdKit Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package repo

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"time"

	"github.com/crowdkit/crowdkit/internal/admin/errs"
	"github.com/crowdkit/crowdkit/internal/admin/model"
	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Document names the collection a model lives in.
type Document interface {
	CollectionName() string
}

// MongoPort adapts Port to a document store. Unlike the relational adapter it
// maintains timestamps itself: mongo has no engine-level column defaults, so
// inserts and updates touch created_at/updated_at through model.Timestamped.
type MongoPort[T Document] struct {
	coll *mongo.Collection
}

func NewMongoPort[T Document](db *mongo.Database) *MongoPort[T] {
	var record T
	return &MongoPort[T]{coll: db.Collection(record.CollectionName())}
}

func (p *MongoPort[T]) Insert(ctx context.Context, record *T) error {
	touchCreated(record)
	if _, err := p.coll.InsertOne(ctx, record); err != nil {
		return translateMongoErr(err, "insert")
	}
	return nil
}

func (p *MongoPort[T]) InsertMany(ctx context.Context, records []*T) error {
	if len(records) == 0 {
		return nil
	}
	docs := make([]any, 0, len(records))
	for _, record := range records {
		touchCreated(record)
		docs = append(docs, record)
	}
	if _, err := p.coll.InsertMany(ctx, docs); err != nil {
		return translateMongoErr(err, "insert many")
	}
	return nil
}

func (p *MongoPort[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	var record T
	err := p.coll.FindOne(ctx, toBsonFilter(filter)).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "find one")
	}
	return &record, nil
}

func (p *MongoPort[T]) Find(ctx context.Context, filter Filter, opts Options) ([]*T, error) {
	cur, err := p.coll.Find(ctx, toBsonFilter(filter), toFindOptions(opts))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "find")
	}
	defer cur.Close(ctx)
	records := make([]*T, 0)
	if err := cur.All(ctx, &records); err != nil {
		return nil, pkgerrors.Wrap(err, "decode find results")
	}
	return records, nil
}

func (p *MongoPort[T]) FindPage(ctx context.Context, filter Filter, opts Options) (*PageResult[T], error) {
	total, err := p.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	records, err := p.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return &PageResult[T]{Items: records, Pagination: NewPagination(opts.Skip, opts.Limit, total)}, nil
}

func (p *MongoPort[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	total, err := p.coll.CountDocuments(ctx, toBsonFilter(filter))
	if err != nil {
		return 0, pkgerrors.Wrap(err, "count")
	}
	return total, nil
}

func (p *MongoPort[T]) Exists(ctx context.Context, filter Filter) (bool, error) {
	total, err := p.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

func (p *MongoPort[T]) Update(ctx context.Context, filter Filter, fields map[string]any) (int64, error) {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	set["updated_at"] = time.Now()
	res, err := p.coll.UpdateMany(ctx, toBsonFilter(filter), bson.M{"$set": set})
	if err != nil {
		return 0, translateMongoErr(err, "update")
	}
	return res.ModifiedCount, nil
}

func (p *MongoPort[T]) Increment(ctx context.Context, filter Filter, field string, delta int) (int64, error) {
	update := bson.M{
		"$inc": bson.M{field: delta},
		"$set": bson.M{"updated_at": time.Now()},
	}
	res, err := p.coll.UpdateMany(ctx, toBsonFilter(filter), update)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "increment")
	}
	return res.ModifiedCount, nil
}

func (p *MongoPort[T]) Distinct(ctx context.Context, field string, filter Filter) ([]string, error) {
	raw, err := p.coll.Distinct(ctx, field, toBsonFilter(filter))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "distinct")
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}
	sort.Strings(values)
	return values, nil
}

func (p *MongoPort[T]) Delete(ctx context.Context, filter Filter) (int64, error) {
	res, err := p.coll.DeleteMany(ctx, toBsonFilter(filter))
	if err != nil {
		return 0, pkgerrors.Wrap(err, "delete")
	}
	return res.DeletedCount, nil
}

func touchCreated(record any) {
	if t, ok := record.(model.Timestamped); ok {
		t.TouchCreated(time.Now())
	}
}

// toBsonFilter maps the neutral filter to mongo syntax; slice values become
// $in clauses to mirror the relational adapter's IN semantics.
func toBsonFilter(filter Filter) bson.M {
	m := bson.M{}
	for k, v := range filter {
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
			m[k] = bson.M{"$in": v}
			continue
		}
		m[k] = v
	}
	return m
}

func toFindOptions(opts Options) *options.FindOptions {
	fo := options.Find()
	if len(opts.Select) > 0 {
		proj := bson.M{}
		for _, field := range opts.Select {
			proj[field] = 1
		}
		fo.SetProjection(proj)
	}
	if len(opts.Sort) > 0 {
		// Sorted field names keep multi-key precedence stable across calls,
		// matching the relational adapter's ordering.
		fields := make([]string, 0, len(opts.Sort))
		for field := range opts.Sort {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		sortDoc := make(bson.D, 0, len(fields))
		for _, field := range fields {
			sortDoc = append(sortDoc, bson.E{Key: field, Value: opts.Sort[field]})
		}
		fo.SetSort(sortDoc)
	}
	if opts.Skip > 0 {
		fo.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		fo.SetLimit(opts.Limit)
	}
	return fo
}

func translateMongoErr(err error, op string) error {
	if mongo.IsDuplicateKeyError(err) {
		return errs.Wrap(errs.KindConflict, err, "%s: duplicate key", op)
	}
	return pkgerrors.Wrap(err, op)
}
