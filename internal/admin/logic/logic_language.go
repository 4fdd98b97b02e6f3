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

package logic

import (
	"context"

	"github.com/crowdkit/crowdkit/internal/admin/consts"
	"github.com/crowdkit/crowdkit/internal/admin/errs"
	"github.com/crowdkit/crowdkit/internal/admin/model"
	"github.com/crowdkit/crowdkit/internal/admin/repo"
	"github.com/crowdkit/crowdkit/pkg/id"
	"github.com/crowdkit/crowdkit/pkg/log"
)

// LanguageLogic administers the language table feeding the replication
// directory. Every mutation invalidates the directory cache so fan-out
// breadth reflects the change immediately.
type LanguageLogic struct {
	repos *repo.Repositories
}

func NewLanguageLogic(repos *repo.Repositories) *LanguageLogic {
	return &LanguageLogic{repos: repos}
}

func (ll *LanguageLogic) CreateLanguage(ctx context.Context, req *model.CreateLanguageReq) (*model.Language, error) {
	direction := req.Direction
	if direction == "" {
		direction = consts.DirectionLTR
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	total, err := ll.repos.Languages.Count(ctx, repo.Filter{})
	if err != nil {
		return nil, err
	}

	lang := &model.Language{
		LanguageID: id.GetUUIDWithoutDashes(),
		Name:       req.Name,
		Folder:     req.Folder,
		Direction:  direction,
		IsActive:   active,
		// The first registered language is the platform default until an
		// explicit SetDefault.
		IsDefault: total == 0,
	}
	if err := ll.repos.Languages.Insert(ctx, lang); err != nil {
		return nil, err
	}
	ll.repos.Directory.Invalidate(ctx)
	log.Infow("language created", "languageId", lang.LanguageID, "folder", lang.Folder)
	return lang, nil
}

func (ll *LanguageLogic) UpdateLanguage(ctx context.Context, languageID string, req *model.UpdateLanguageReq) (*model.Language, error) {
	lang, err := ll.mustFind(ctx, languageID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Direction != nil {
		fields["direction"] = *req.Direction
	}
	if req.IsActive != nil {
		if !*req.IsActive && lang.IsDefault {
			return nil, errs.Validationf("the default language cannot be deactivated")
		}
		fields["is_active"] = *req.IsActive
	}
	if len(fields) == 0 {
		return lang, nil
	}
	if _, err := ll.repos.Languages.Update(ctx, repo.Filter{"language_id": languageID}, fields); err != nil {
		return nil, err
	}
	ll.repos.Directory.Invalidate(ctx)
	return ll.repos.Directory.FindByPublicID(ctx, languageID)
}

// SetDefaultLanguage moves the default flag. The target must be active so
// the default is always a fan-out participant.
func (ll *LanguageLogic) SetDefaultLanguage(ctx context.Context, languageID string) error {
	lang, err := ll.mustFind(ctx, languageID)
	if err != nil {
		return err
	}
	if !lang.IsActive {
		return errs.Validationf("language %q is not active", languageID)
	}
	if lang.IsDefault {
		return nil
	}
	if _, err := ll.repos.Languages.Update(ctx, repo.Filter{"is_default": true}, map[string]any{"is_default": false}); err != nil {
		return err
	}
	if _, err := ll.repos.Languages.Update(ctx, repo.Filter{"language_id": languageID}, map[string]any{"is_default": true}); err != nil {
		return err
	}
	ll.repos.Directory.Invalidate(ctx)
	log.Infow("default language changed", "languageId", languageID)
	return nil
}

// DeleteLanguage removes a language record. Replicas created while it was
// active stay untouched.
func (ll *LanguageLogic) DeleteLanguage(ctx context.Context, languageID string) error {
	lang, err := ll.mustFind(ctx, languageID)
	if err != nil {
		return err
	}
	if lang.IsDefault {
		return errs.Validationf("the default language cannot be deleted")
	}
	if _, err := ll.repos.Languages.Delete(ctx, repo.Filter{"language_id": languageID}); err != nil {
		return err
	}
	ll.repos.Directory.Invalidate(ctx)
	return nil
}

func (ll *LanguageLogic) ListLanguages(ctx context.Context) ([]*model.Language, error) {
	return ll.repos.Languages.Find(ctx, repo.Filter{}, repo.Options{Sort: map[string]int{"folder": 1}})
}

func (ll *LanguageLogic) GetLanguage(ctx context.Context, languageID string) (*model.Language, error) {
	return ll.mustFind(ctx, languageID)
}

func (ll *LanguageLogic) mustFind(ctx context.Context, languageID string) (*model.Language, error) {
	lang, err := ll.repos.Directory.FindByPublicID(ctx, languageID)
	if err != nil {
		return nil, err
	}
	if lang == nil {
		return nil, errs.NotFoundf("language %q not found", languageID)
	}
	return lang, nil
}
