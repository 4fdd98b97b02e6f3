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

	"github.com/crowdkit/crowdkit/internal/admin/model"
	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureMongoIndexes creates the unique indexes the document backend needs.
// The relational backend declares the same constraints through gorm tags and
// AutoMigrate; mongo has no schema, so uniqueness must be installed here at
// startup. Concurrent uniqueness arbitration (duplicate folder names,
// duplicate option names, unique-code races) depends on these indexes.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	plan := map[string][]mongo.IndexModel{
		model.Language{}.CollectionName(): {
			{Keys: bson.D{{Key: "language_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "folder", Value: 1}}, Options: unique},
		},
		model.Slider{}.CollectionName(): {
			{Keys: bson.D{{Key: "slider_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "unique_code", Value: 1}, {Key: "language_id", Value: 1}}, Options: unique},
		},
		model.DropdownOption{}.CollectionName(): {
			{Keys: bson.D{{Key: "option_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "type", Value: 1}, {Key: "language_id", Value: 1}, {Key: "name", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "unique_code", Value: 1}, {Key: "language_id", Value: 1}}, Options: unique},
		},
		model.Setting{}.CollectionName(): {
			{Keys: bson.D{{Key: "setting_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "group_type", Value: 1}, {Key: "setting_key", Value: 1}}, Options: unique},
		},
	}
	for coll, indexes := range plan {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, indexes); err != nil {
			return pkgerrors.Wrapf(err, "ensure indexes on %s", coll)
		}
	}
	return nil
}
