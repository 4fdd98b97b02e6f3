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

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func TestFirstLanguageBecomesDefault(t *testing.T) {
	env := newTestEnv(t)
	ll := NewLanguageLogic(env.repos)

	first, err := ll.CreateLanguage(context.Background(), &model.CreateLanguageReq{Name: "English", Folder: "en"})
	require.NoError(t, err)
	assert.True(t, first.IsDefault)
	assert.True(t, first.IsActive)
	assert.Equal(t, "ltr", first.Direction)

	second, err := ll.CreateLanguage(context.Background(), &model.CreateLanguageReq{Name: "Arabic", Folder: "ar", Direction: "rtl"})
	require.NoError(t, err)
	assert.False(t, second.IsDefault)
	assert.Equal(t, "rtl", second.Direction)

	defID, err := env.repos.Directory.DefaultLanguageID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.LanguageID, defID)
}

func TestDuplicateFolderRejected(t *testing.T) {
	env := newTestEnv(t)
	ll := NewLanguageLogic(env.repos)

	_, err := ll.CreateLanguage(context.Background(), &model.CreateLanguageReq{Name: "English", Folder: "en"})
	require.NoError(t, err)
	_, err = ll.CreateLanguage(context.Background(), &model.CreateLanguageReq{Name: "English (UK)", Folder: "en"})
	assert.True(t, errs.IsConflict(err))
}

func TestDefaultLanguageCannotBeDeactivated(t *testing.T) {
	env := newTestEnv(t)
	env.seedEnEs(t)
	ll := NewLanguageLogic(env.repos)

	_, err := ll.UpdateLanguage(context.Background(), "lang-en", &model.UpdateLanguageReq{IsActive: boolPtr(false)})
	assert.True(t, errs.IsValidation(err))

	// A non-default language deactivates fine.
	lang, err := ll.UpdateLanguage(context.Background(), "lang-es", &model.UpdateLanguageReq{IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, lang.IsActive)
}

func TestDefaultLanguageCannotBeDeleted(t *testing.T) {
	env := newTestEnv(t)
	env.seedEnEs(t)
	ll := NewLanguageLogic(env.repos)

	err := ll.DeleteLanguage(context.Background(), "lang-en")
	assert.True(t, errs.IsValidation(err))

	require.NoError(t, ll.DeleteLanguage(context.Background(), "lang-es"))
	_, err = ll.GetLanguage(context.Background(), "lang-es")
	assert.True(t, errs.IsNotFound(err))
}

func TestSetDefaultLanguageMovesFlag(t *testing.T) {
	env := newTestEnv(t)
	env.seedEnEs(t)
	ll := NewLanguageLogic(env.repos)

	require.NoError(t, ll.SetDefaultLanguage(context.Background(), "lang-es"))

	defID, err := env.repos.Directory.DefaultLanguageID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "lang-es", defID)

	en, err := ll.GetLanguage(context.Background(), "lang-en")
	require.NoError(t, err)
	assert.False(t, en.IsDefault, "exactly one default at a time")
}

func TestSetDefaultRequiresActiveLanguage(t *testing.T) {
	env := newTestEnv(t)
	env.seedEnEs(t)
	env.seedLanguage(t, "lang-de", "German", "de", false, false)
	ll := NewLanguageLogic(env.repos)

	err := ll.SetDefaultLanguage(context.Background(), "lang-de")
	assert.True(t, errs.IsValidation(err))
}

func TestLanguageMutationRefreshesDirectory(t *testing.T) {
	env := newTestEnv(t)
	env.seedEnEs(t)
	ll := NewLanguageLogic(env.repos)

	ids, err := env.repos.Directory.ActiveLanguageIDs(context.Background())
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	// Deactivating Spanish must shrink the fan-out set immediately, even
	// though the previous answer was cached.
	_, err = ll.UpdateLanguage(context.Background(), "lang-es", &model.UpdateLanguageReq{IsActive: boolPtr(false)})
	require.NoError(t, err)

	ids, err = env.repos.Directory.ActiveLanguageIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"lang-en"}, ids)
}

func TestUpdateLanguageRename(t *testing.T) {
	env := newTestEnv(t)
	env.seedEnEs(t)
	ll := NewLanguageLogic(env.repos)

	lang, err := ll.UpdateLanguage(context.Background(), "lang-es", &model.UpdateLanguageReq{Name: strPtr("Español")})
	require.NoError(t, err)
	assert.Equal(t, "Español", lang.Name)
	assert.Equal(t, "es", lang.Folder, "folder token is immutable")
}
