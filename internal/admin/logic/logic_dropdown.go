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
	"regexp"

	"github.com/crowdkit/crowdkit/internal/admin/consts"
	"github.com/crowdkit/crowdkit/internal/admin/errs"
	"github.com/crowdkit/crowdkit/internal/admin/model"
	"github.com/crowdkit/crowdkit/internal/admin/repo"
	"github.com/crowdkit/crowdkit/pkg/log"
	"github.com/crowdkit/crowdkit/pkg/storage"
)

// dropdownTypeRe bounds the type token: it names a dropdown family
// (industry, region, reward_tier) and ends up in query strings.
var dropdownTypeRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

type DropdownLogic struct {
	repos      *repo.Repositories
	replicator *Replicator[model.DropdownOption, *model.DropdownOption]
}

func NewDropdownLogic(repos *repo.Repositories, store storage.Provider) *DropdownLogic {
	return &DropdownLogic{
		repos: repos,
		replicator: NewReplicator[model.DropdownOption, *model.DropdownOption](
			repos.Dropdowns, repos.Directory, store,
			"option_id", "", consts.FilePrefixDropdown,
		),
	}
}

// CreateOption replicates one dropdown option across the target languages.
// The option name must be unique within its type and language, so the
// duplicate pre-check only spans the languages this create writes to; the
// storage layer's unique index raises the conflict for concurrent writers
// the pre-check cannot see.
func (dl *DropdownLogic) CreateOption(ctx context.Context, req *model.CreateDropdownReq) (*model.DropdownOption, error) {
	if !dropdownTypeRe.MatchString(req.Type) {
		return nil, errs.Validationf("invalid dropdown type %q", req.Type)
	}
	targets := req.LanguageIDs
	if len(targets) == 0 {
		var err error
		targets, err = dl.repos.Directory.ActiveLanguageIDs(ctx)
		if err != nil {
			return nil, err
		}
	}
	exists, err := dl.repos.Dropdowns.Exists(ctx, repo.Filter{
		"type":        req.Type,
		"name":        req.Name,
		"language_id": targets,
	})
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.Conflictf("option %q already exists in dropdown %q", req.Name, req.Type)
	}

	canonical := &model.DropdownOption{
		Type:      req.Type,
		Name:      req.Name,
		Color:     req.Color,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	replicas, err := dl.replicator.CreateReplicaSet(ctx, canonical, req.LanguageIDs, nil)
	if err != nil {
		return nil, err
	}
	log.Infow("dropdown replica set created",
		"type", req.Type, "uniqueCode", replicas[0].UniqueCode, "replicas", len(replicas))
	return dl.pickResponse(ctx, replicas, req.LanguageID)
}

// ListTypes returns every dropdown family present in storage.
func (dl *DropdownLogic) ListTypes(ctx context.Context) ([]string, error) {
	return dl.repos.Dropdowns.Distinct(ctx, "type", repo.Filter{})
}

func (dl *DropdownLogic) GetOption(ctx context.Context, optionID string) (*model.DropdownOption, error) {
	return dl.replicator.GetByPublicID(ctx, optionID)
}

func (dl *DropdownLogic) GetOptionSet(ctx context.Context, uniqueCode int64) ([]*model.DropdownOption, error) {
	replicas, err := dl.replicator.FindByUniqueCode(ctx, uniqueCode)
	if err != nil {
		return nil, err
	}
	if len(replicas) == 0 {
		return nil, errs.NotFoundf("no dropdown replica set with code %d", uniqueCode)
	}
	return replicas, nil
}

func (dl *DropdownLogic) ListOptions(ctx context.Context, dropdownType, languageID string, pageNum, pageSize int) (*repo.PageResult[model.DropdownOption], error) {
	if !dropdownTypeRe.MatchString(dropdownType) {
		return nil, errs.Validationf("invalid dropdown type %q", dropdownType)
	}
	filter := repo.Filter{"type": dropdownType}
	if languageID != "" {
		filter["language_id"] = languageID
	}
	skip, limit := pageWindow(pageNum, pageSize)
	return dl.repos.Dropdowns.FindPage(ctx, filter, repo.Options{
		Sort:  map[string]int{"sort_order": 1},
		Skip:  skip,
		Limit: limit,
	})
}

// UpdateOption mutates one replica; renames never cascade to siblings, so
// translated names stay independent.
func (dl *DropdownLogic) UpdateOption(ctx context.Context, optionID string, req *model.UpdateDropdownReq) (*model.DropdownOption, error) {
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Color != nil {
		fields["color"] = *req.Color
	}
	if req.SortOrder != nil {
		fields["sort_order"] = *req.SortOrder
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	return dl.replicator.UpdateByPublicID(ctx, optionID, fields, nil)
}

// DeleteOptionSet removes the whole replica set owning the code. Rejected
// while any replica is referenced by other data.
func (dl *DropdownLogic) DeleteOptionSet(ctx context.Context, uniqueCode int64) (int64, error) {
	return dl.replicator.DeleteByUniqueCode(ctx, uniqueCode)
}

func (dl *DropdownLogic) AdjustUseCount(ctx context.Context, optionID string, delta int) error {
	return dl.replicator.AdjustUseCount(ctx, optionID, delta)
}

func (dl *DropdownLogic) pickResponse(ctx context.Context, replicas []*model.DropdownOption, languageID string) (*model.DropdownOption, error) {
	if languageID == "" {
		defaultID, err := dl.repos.Directory.DefaultLanguageID(ctx)
		if err != nil {
			return nil, err
		}
		languageID = defaultID
	}
	for _, replica := range replicas {
		if replica.LanguageID == languageID {
			return replica, nil
		}
	}
	return replicas[0], nil
}
