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

	"github.com/bytedance/sonic"
	"github.com/crowdkit/crowdkit/internal/admin/consts"
	"github.com/crowdkit/crowdkit/internal/admin/errs"
	"github.com/crowdkit/crowdkit/internal/admin/model"
	"github.com/crowdkit/crowdkit/internal/admin/repo"
	"github.com/crowdkit/crowdkit/pkg/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingLogic(env *testEnv) *SettingLogic {
	return NewSettingLogic(env.repos, env.cache, env.store)
}

func settingValue(t *testing.T, setting *model.Setting) model.SettingValue {
	t.Helper()
	var value model.SettingValue
	require.NoError(t, sonic.Unmarshal(setting.Value, &value))
	return value
}

func TestUpsertClassifiesValues(t *testing.T) {
	env := newTestEnv(t)
	st := newSettingLogic(env)

	written, err := st.Upsert(context.Background(), "homepage", true, map[string]string{
		"headline":   "Fund what matters",
		"maxGoal":    "250000",
		"showBanner": "true",
	}, nil)
	require.NoError(t, err)
	require.Len(t, written, 3)

	byKey := make(map[string]*model.Setting)
	for _, setting := range written {
		byKey[setting.Key] = setting
	}

	assert.Equal(t, consts.RecordTypeText, byKey["headline"].RecordType)
	assert.Equal(t, "Fund what matters", settingValue(t, byKey["headline"]).Text)

	assert.Equal(t, consts.RecordTypeNumber, byKey["maxGoal"].RecordType)
	assert.Equal(t, float64(250000), settingValue(t, byKey["maxGoal"]).Number)

	assert.Equal(t, consts.RecordTypeBoolean, byKey["showBanner"].RecordType)
	assert.True(t, settingValue(t, byKey["showBanner"]).Bool)
}

// Non-finite float spellings parse under ParseFloat but cannot be encoded as
// JSON numbers; they must land as text, never as a broken number record.
func TestUpsertKeepsNonFiniteValuesAsText(t *testing.T) {
	env := newTestEnv(t)
	st := newSettingLogic(env)

	written, err := st.Upsert(context.Background(), "homepage", true, map[string]string{
		"a": "nan",
		"b": "inf",
		"c": "-Infinity",
		"d": "+Inf",
	}, nil)
	require.NoError(t, err)
	require.Len(t, written, 4)

	raws := map[string]string{"a": "nan", "b": "inf", "c": "-Infinity", "d": "+Inf"}
	for _, setting := range written {
		assert.Equal(t, consts.RecordTypeText, setting.RecordType, setting.Key)
		assert.Equal(t, raws[setting.Key], settingValue(t, setting).Text, setting.Key)
	}
}

func TestUpsertTwiceKeepsSingleRecord(t *testing.T) {
	env := newTestEnv(t)
	st := newSettingLogic(env)

	_, err := st.Upsert(context.Background(), "homepage", true, map[string]string{"headline": "v1"}, nil)
	require.NoError(t, err)
	_, err = st.Upsert(context.Background(), "homepage", true, map[string]string{"headline": "v2"}, nil)
	require.NoError(t, err)

	total, err := env.settings.Count(context.Background(), repo.Filter{"group_type": "homepage"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	setting, err := st.GetKey(context.Background(), "homepage", "headline", consts.VisibilityAdmin)
	require.NoError(t, err)
	assert.Equal(t, "v2", settingValue(t, setting).Text)
}

func TestReadAfterWriteSeesNewValue(t *testing.T) {
	env := newTestEnv(t)
	st := newSettingLogic(env)

	_, err := st.Upsert(context.Background(), "homepage", true, map[string]string{"headline": "v1"}, nil)
	require.NoError(t, err)

	// Prime both the key and the group cache entries.
	setting, err := st.GetKey(context.Background(), "homepage", "headline", consts.VisibilityPublic)
	require.NoError(t, err)
	assert.Equal(t, "v1", settingValue(t, setting).Text)
	group, err := st.GetGroup(context.Background(), "homepage", consts.VisibilityPublic)
	require.NoError(t, err)
	require.Len(t, group, 1)

	_, err = st.Upsert(context.Background(), "homepage", true, map[string]string{"headline": "v2"}, nil)
	require.NoError(t, err)

	setting, err = st.GetKey(context.Background(), "homepage", "headline", consts.VisibilityPublic)
	require.NoError(t, err)
	assert.Equal(t, "v2", settingValue(t, setting).Text)
	group, err = st.GetGroup(context.Background(), "homepage", consts.VisibilityPublic)
	require.NoError(t, err)
	require.Len(t, group, 1)
	assert.Equal(t, "v2", settingValue(t, group[0]).Text)
}

func TestPublicScopeHidesAdminSettings(t *testing.T) {
	env := newTestEnv(t)
	st := newSettingLogic(env)

	_, err := st.Upsert(context.Background(), "payments", false, map[string]string{"apiSecret": "s3cret"}, nil)
	require.NoError(t, err)
	_, err = st.Upsert(context.Background(), "payments", true, map[string]string{"currency": "EUR"}, nil)
	require.NoError(t, err)

	public, err := st.GetGroup(context.Background(), "payments", consts.VisibilityPublic)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "currency", public[0].Key)

	admin, err := st.GetGroup(context.Background(), "payments", consts.VisibilityAdmin)
	require.NoError(t, err)
	assert.Len(t, admin, 2)

	_, err = st.GetKey(context.Background(), "payments", "apiSecret", consts.VisibilityPublic)
	assert.True(t, errs.IsNotFound(err), "admin-only keys are invisible at public scope")
}

func TestUpsertFileReplacesOldBlob(t *testing.T) {
	env := newTestEnv(t)
	st := newSettingLogic(env)

	first, err := st.Upsert(context.Background(), "homepage", true, nil, []upload.File{{
		Buffer: []byte("logo-v1"), OriginalName: "logo.png", MimeType: "image/png", FieldName: "logo",
	}})
	require.NoError(t, err)
	require.Len(t, first, 1)
	firstPath := settingValue(t, first[0]).FilePath
	assert.Contains(t, firstPath, "media/setting-homepage-logo-")

	second, err := st.Upsert(context.Background(), "homepage", true, nil, []upload.File{{
		Buffer: []byte("logo-v2"), OriginalName: "logo.svg", MimeType: "image/svg+xml", FieldName: "logo",
	}})
	require.NoError(t, err)
	secondValue := settingValue(t, second[0])
	assert.NotEqual(t, firstPath, secondValue.FilePath)
	assert.Equal(t, "logo.svg", secondValue.OriginalName)

	total, _ := env.settings.Count(context.Background(), repo.Filter{"group_type": "homepage"})
	assert.Equal(t, int64(1), total)

	assert.Contains(t, env.store.deletedPaths(), firstPath, "old blob removed after the new one landed")
	exists, _ := env.store.Exists(context.Background(), secondValue.FilePath)
	assert.True(t, exists)
}

func TestFileOverwrittenByTextCleansBlob(t *testing.T) {
	env := newTestEnv(t)
	st := newSettingLogic(env)

	written, err := st.Upsert(context.Background(), "homepage", true, nil, []upload.File{{
		Buffer: []byte("logo"), OriginalName: "logo.png", MimeType: "image/png", FieldName: "logo",
	}})
	require.NoError(t, err)
	blobPath := settingValue(t, written[0]).FilePath

	_, err = st.Upsert(context.Background(), "homepage", true, map[string]string{"logo": "none"}, nil)
	require.NoError(t, err)

	setting, err := st.GetKey(context.Background(), "homepage", "logo", consts.VisibilityAdmin)
	require.NoError(t, err)
	assert.Equal(t, consts.RecordTypeText, setting.RecordType)
	assert.Contains(t, env.store.deletedPaths(), blobPath)
}

func TestUpsertFileWithoutFieldName(t *testing.T) {
	env := newTestEnv(t)
	st := newSettingLogic(env)

	_, err := st.Upsert(context.Background(), "homepage", true, nil, []upload.File{{
		Buffer: []byte("x"), OriginalName: "x.png", MimeType: "image/png",
	}})
	assert.True(t, errs.IsValidation(err))
}

func TestUpsertEmptyGroupRejected(t *testing.T) {
	env := newTestEnv(t)
	st := newSettingLogic(env)

	_, err := st.Upsert(context.Background(), "", true, map[string]string{"k": "v"}, nil)
	assert.True(t, errs.IsValidation(err))
}

func TestDeleteKeyRemovesBlob(t *testing.T) {
	env := newTestEnv(t)
	st := newSettingLogic(env)

	written, err := st.Upsert(context.Background(), "homepage", true, nil, []upload.File{{
		Buffer: []byte("logo"), OriginalName: "logo.png", MimeType: "image/png", FieldName: "logo",
	}})
	require.NoError(t, err)
	blobPath := settingValue(t, written[0]).FilePath

	require.NoError(t, st.DeleteKey(context.Background(), "homepage", "logo"))
	assert.Contains(t, env.store.deletedPaths(), blobPath)

	_, err = st.GetKey(context.Background(), "homepage", "logo", consts.VisibilityAdmin)
	assert.True(t, errs.IsNotFound(err))

	err = st.DeleteKey(context.Background(), "homepage", "logo")
	assert.True(t, errs.IsNotFound(err))
}

func TestDeleteGroupRemovesEverything(t *testing.T) {
	env := newTestEnv(t)
	st := newSettingLogic(env)

	_, err := st.Upsert(context.Background(), "homepage", true, map[string]string{"headline": "x"}, []upload.File{{
		Buffer: []byte("logo"), OriginalName: "logo.png", MimeType: "image/png", FieldName: "logo",
	}})
	require.NoError(t, err)

	deleted, err := st.DeleteGroup(context.Background(), "homepage")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	group, err := st.GetGroup(context.Background(), "homepage", consts.VisibilityAdmin)
	require.NoError(t, err)
	assert.Empty(t, group)
	assert.Len(t, env.store.deletedPaths(), 1, "only the file-valued setting had a blob")
}
