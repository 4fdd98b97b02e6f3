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

	"github.com/crowdkit/crowdkit/internal/admin/consts"
	"github.com/crowdkit/crowdkit/internal/admin/errs"
	"github.com/crowdkit/crowdkit/internal/admin/model"
	"github.com/crowdkit/crowdkit/pkg/cache"
)

// LanguageDirectory answers the language questions replication depends on:
// which languages are active, which one is the default, and how a language
// maps to its folder token. Answers are cached; mutations to the language
// table must go through the language service, which invalidates here.
type LanguageDirectory struct {
	port        Port[model.Language]
	cache       cache.ICache
	activeQuery *cache.CachedQuery[[]*model.Language]
	defQuery    *cache.CachedQuery[*model.Language]
}

func NewLanguageDirectory(port Port[model.Language], c cache.ICache) *LanguageDirectory {
	d := &LanguageDirectory{port: port, cache: c}
	d.activeQuery = cache.NewCachedQuery(
		c,
		func(...any) string { return consts.LanguageActiveKey },
		func(ctx context.Context) ([]*model.Language, error) {
			return port.Find(ctx, Filter{"is_active": true}, Options{Sort: map[string]int{"language_id": 1}})
		},
		cache.WithTTL[[]*model.Language](consts.LanguageCacheTTL),
		cache.WithLogPrefix[[]*model.Language]("[LanguageDirectory]"),
	)
	d.defQuery = cache.NewCachedQuery(
		c,
		func(...any) string { return consts.LanguageDefaultKey },
		func(ctx context.Context) (*model.Language, error) {
			lang, err := port.FindOne(ctx, Filter{"is_default": true})
			if err != nil {
				return nil, err
			}
			if lang == nil {
				return nil, errs.NotFoundf("no default language configured")
			}
			return lang, nil
		},
		cache.WithTTL[*model.Language](consts.LanguageCacheTTL),
		cache.WithLogPrefix[*model.Language]("[LanguageDirectory]"),
	)
	return d
}

// ActiveLanguages returns every active language sorted by language id.
func (d *LanguageDirectory) ActiveLanguages(ctx context.Context) ([]*model.Language, error) {
	return d.activeQuery.Get(ctx)
}

// ActiveLanguageIDs returns the ids of all active languages. Replication
// fan-out iterates this set.
func (d *LanguageDirectory) ActiveLanguageIDs(ctx context.Context) ([]string, error) {
	langs, err := d.ActiveLanguages(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(langs))
	for _, lang := range langs {
		ids = append(ids, lang.LanguageID)
	}
	return ids, nil
}

// DefaultLanguage returns the single default language record.
func (d *LanguageDirectory) DefaultLanguage(ctx context.Context) (*model.Language, error) {
	return d.defQuery.Get(ctx)
}

// DefaultLanguageID returns the id of the default language.
func (d *LanguageDirectory) DefaultLanguageID(ctx context.Context) (string, error) {
	lang, err := d.DefaultLanguage(ctx)
	if err != nil {
		return "", err
	}
	return lang.LanguageID, nil
}

// FolderFor resolves a language id to its folder token, the suffix embedded
// into replicated file names. Inactive languages resolve too; file naming
// must stay stable even when a language is toggled off.
func (d *LanguageDirectory) FolderFor(ctx context.Context, languageID string) (string, error) {
	lang, err := d.port.FindOne(ctx, Filter{"language_id": languageID})
	if err != nil {
		return "", err
	}
	if lang == nil {
		return "", errs.NotFoundf("language %q not found", languageID)
	}
	return lang.Folder, nil
}

// FindByPublicID returns the language with the given id, nil when absent.
func (d *LanguageDirectory) FindByPublicID(ctx context.Context, languageID string) (*model.Language, error) {
	return d.port.FindOne(ctx, Filter{"language_id": languageID})
}

// FindByFolder returns the language owning a folder token, nil when absent.
func (d *LanguageDirectory) FindByFolder(ctx context.Context, folder string) (*model.Language, error) {
	return d.port.FindOne(ctx, Filter{"folder": folder})
}

// IsActive reports whether the language exists and is currently active.
func (d *LanguageDirectory) IsActive(ctx context.Context, languageID string) (bool, error) {
	langs, err := d.ActiveLanguages(ctx)
	if err != nil {
		return false, err
	}
	for _, lang := range langs {
		if lang.LanguageID == languageID {
			return true, nil
		}
	}
	return false, nil
}

// Invalidate drops the cached directory entries. Called after any language
// mutation so active-set and default answers never serve stale data.
func (d *LanguageDirectory) Invalidate(ctx context.Context) {
	_ = d.activeQuery.Invalidate(ctx)
	_ = d.defQuery.Invalidate(ctx)
}
