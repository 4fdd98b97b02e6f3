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
	"github.com/crowdkit/crowdkit/pkg/log"
	"github.com/crowdkit/crowdkit/pkg/storage"
	"github.com/crowdkit/crowdkit/pkg/upload"
)

type SliderLogic struct {
	repos      *repo.Repositories
	replicator *Replicator[model.Slider, *model.Slider]
}

func NewSliderLogic(repos *repo.Repositories, store storage.Provider) *SliderLogic {
	return &SliderLogic{
		repos: repos,
		replicator: NewReplicator[model.Slider, *model.Slider](
			repos.Sliders, repos.Directory, store,
			"slider_id", "image", consts.FilePrefixSlider,
		),
	}
}

// CreateSlider replicates one slider across the target languages, fanning
// the image out per language. The returned replica is the one matching the
// requested language, or the platform default.
func (sl *SliderLogic) CreateSlider(ctx context.Context, req *model.CreateSliderReq, image *upload.File) (*model.Slider, error) {
	canonical := &model.Slider{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}
	// req.LanguageID only selects the response record; req.LanguageIDs, when
	// set, narrows the fan-out itself.
	replicas, err := sl.replicator.CreateReplicaSet(ctx, canonical, req.LanguageIDs, image)
	if err != nil {
		return nil, err
	}
	log.Infow("slider replica set created",
		"uniqueCode", replicas[0].UniqueCode, "replicas", len(replicas), "withImage", image != nil)
	return sl.pickResponse(ctx, replicas, req.LanguageID)
}

func (sl *SliderLogic) GetSlider(ctx context.Context, sliderID string) (*model.Slider, error) {
	return sl.replicator.GetByPublicID(ctx, sliderID)
}

func (sl *SliderLogic) GetSliderSet(ctx context.Context, uniqueCode int64) ([]*model.Slider, error) {
	replicas, err := sl.replicator.FindByUniqueCode(ctx, uniqueCode)
	if err != nil {
		return nil, err
	}
	if len(replicas) == 0 {
		return nil, errs.NotFoundf("no slider replica set with code %d", uniqueCode)
	}
	return replicas, nil
}

func (sl *SliderLogic) ListSliders(ctx context.Context, languageID string, pageNum, pageSize int) (*repo.PageResult[model.Slider], error) {
	filter := repo.Filter{}
	if languageID != "" {
		filter["language_id"] = languageID
	}
	skip, limit := pageWindow(pageNum, pageSize)
	return sl.repos.Sliders.FindPage(ctx, filter, repo.Options{
		Sort:  map[string]int{"sort_order": 1},
		Skip:  skip,
		Limit: limit,
	})
}

// UpdateSlider mutates a single replica; sibling replicas are untouched.
func (sl *SliderLogic) UpdateSlider(ctx context.Context, sliderID string, req *model.UpdateSliderReq, image *upload.File) (*model.Slider, error) {
	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Link != nil {
		fields["link"] = *req.Link
	}
	if req.SortOrder != nil {
		fields["sort_order"] = *req.SortOrder
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	return sl.replicator.UpdateByPublicID(ctx, sliderID, fields, image)
}

// DeleteSliderSet removes every replica and image of the set owning the code.
func (sl *SliderLogic) DeleteSliderSet(ctx context.Context, uniqueCode int64) (int64, error) {
	return sl.replicator.DeleteByUniqueCode(ctx, uniqueCode)
}

func (sl *SliderLogic) AdjustUseCount(ctx context.Context, sliderID string, delta int) error {
	return sl.replicator.AdjustUseCount(ctx, sliderID, delta)
}

func (sl *SliderLogic) pickResponse(ctx context.Context, replicas []*model.Slider, languageID string) (*model.Slider, error) {
	if languageID == "" {
		defaultID, err := sl.repos.Directory.DefaultLanguageID(ctx)
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
