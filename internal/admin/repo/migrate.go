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
	"github.com/crowdkit/crowdkit/internal/admin/model"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// AutoMigrate installs the relational schema, including the unique indexes
// declared on the models.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Language{},
		&model.Slider{},
		&model.DropdownOption{},
		&model.Setting{},
	)
	return pkgerrors.Wrap(err, "auto migrate")
}
