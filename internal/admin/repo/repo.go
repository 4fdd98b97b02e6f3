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
	"github.com/crowdkit/crowdkit/pkg/cache"
	"github.com/crowdkit/crowdkit/pkg/database"
	"github.com/google/wire"
)

// Repositories 统一管理所有 repository
type Repositories struct {
	Languages Port[model.Language]
	Sliders   Port[model.Slider]
	Dropdowns Port[model.DropdownOption]
	Settings  Port[model.Setting]

	// Directory answers language lookups through a cache; it wraps Languages.
	Directory *LanguageDirectory
}

// NewRepositories 初始化所有 repository. The backend is read once from the
// database manager; every port in the container speaks to the same store.
func NewRepositories(mgr database.Manager, c cache.ICache) *Repositories {
	r := &Repositories{}
	switch mgr.Backend() {
	case database.BackendMongo:
		db := mgr.Mongo().DB
		r.Languages = NewMongoPort[model.Language](db)
		r.Sliders = NewMongoPort[model.Slider](db)
		r.Dropdowns = NewMongoPort[model.DropdownOption](db)
		r.Settings = NewMongoPort[model.Setting](db)
	default:
		db := mgr.MySQL()
		r.Languages = NewGormPort[model.Language](db)
		r.Sliders = NewGormPort[model.Slider](db)
		r.Dropdowns = NewGormPort[model.DropdownOption](db)
		r.Settings = NewGormPort[model.Setting](db)
	}
	r.Directory = NewLanguageDirectory(r.Languages, c)
	return r
}

var ProviderSet = wire.NewSet(NewRepositories)
