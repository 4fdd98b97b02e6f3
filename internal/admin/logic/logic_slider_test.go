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
	"testing"

	"github.com/crowdkit/crowdkit/internal/admin/errs"
	"github.com/crowdkit/crowdkit/internal/admin/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSliderReturnsDefaultLanguageReplica(t *testing.T) {
	env := newTestEnv(t)
	env.seedEnEs(t)
	sl := NewSliderLogic(env.repos, env.store)

	slider, err := sl.CreateSlider(context.Background(), &model.CreateSliderReq{Title: "Launch"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "lang-en", slider.LanguageID, "response picks the default language replica")

	set, err := sl.GetSliderSet(context.Background(), slider.UniqueCode)
	require.NoError(t, err)
	assert.Len(t, set, 2)
}

func TestCreateSliderReturnsRequestedLanguageReplica(t *testing.T) {
	env := newTestEnv(t)
	env.seedEnEs(t)
	sl := NewSliderLogic(env.repos, env.store)

	slider, err := sl.CreateSlider(context.Background(), &model.CreateSliderReq{
		Title:      "Launch",
		LanguageID: "lang-es",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "lang-es", slider.LanguageID)

	// The requested language only selects the response; the fan-out still
	// covers every active language.
	set, err := sl.GetSliderSet(context.Background(), slider.UniqueCode)
	require.NoError(t, err)
	assert.Len(t, set, 2)
}

func TestListSlidersFiltersByLanguage(t *testing.T) {
	env := newTestEnv(t)
	env.seedEnEs(t)
	sl := NewSliderLogic(env.repos, env.store)

	for _, title := range []string{"A", "B", "C"} {
		_, err := sl.CreateSlider(context.Background(), &model.CreateSliderReq{Title: title}, nil)
		require.NoError(t, err)
	}

	page, err := sl.ListSliders(context.Background(), "lang-es", 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Pagination.TotalCount)
	assert.Equal(t, int64(2), page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNext)
	for _, item := range page.Items {
		assert.Equal(t, "lang-es", item.LanguageID)
	}

	all, err := sl.ListSliders(context.Background(), "", 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(6), all.Pagination.TotalCount)
}

func TestUpdateSliderPartialFields(t *testing.T) {
	env := newTestEnv(t)
	env.seedEnEs(t)
	sl := NewSliderLogic(env.repos, env.store)

	created, err := sl.CreateSlider(context.Background(), &model.CreateSliderReq{
		Title:       "Launch",
		Description: "original copy",
		SortOrder:   5,
	}, nil)
	require.NoError(t, err)

	updated, err := sl.UpdateSlider(context.Background(), created.SliderID, &model.UpdateSliderReq{
		Title:    strPtr("Relaunch"),
		IsActive: boolPtr(false),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Relaunch", updated.Title)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "original copy", updated.Description, "untouched fields keep their value")
	assert.Equal(t, 5, updated.SortOrder)
}

func TestGetSliderSetNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.seedEnEs(t)
	sl := NewSliderLogic(env.repos, env.store)

	_, err := sl.GetSliderSet(context.Background(), 9999999999)
	assert.True(t, errs.IsNotFound(err))
}

func TestDeleteSliderSetViaLogic(t *testing.T) {
	env := newTestEnv(t)
	env.seedEnEs(t)
	sl := NewSliderLogic(env.repos, env.store)

	created, err := sl.CreateSlider(context.Background(), &model.CreateSliderReq{Title: "Launch"}, pngUpload("hero.png"))
	require.NoError(t, err)

	deleted, err := sl.DeleteSliderSet(context.Background(), created.UniqueCode)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = sl.GetSlider(context.Background(), created.SliderID)
	assert.True(t, errs.IsNotFound(err))
}
