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
	"errors"
	"fmt"
	"math"
	"path"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/crowdkit/crowdkit/internal/admin/consts"
	"github.com/crowdkit/crowdkit/internal/admin/errs"
	"github.com/crowdkit/crowdkit/internal/admin/model"
	"github.com/crowdkit/crowdkit/internal/admin/repo"
	"github.com/crowdkit/crowdkit/pkg/cache"
	"github.com/crowdkit/crowdkit/pkg/id"
	"github.com/crowdkit/crowdkit/pkg/log"
	"github.com/crowdkit/crowdkit/pkg/storage"
	"github.com/crowdkit/crowdkit/pkg/upload"
	"gorm.io/datatypes"
)

// SettingLogic is the keyed settings store: grouped key/value records with a
// read-through cache in front and file values stored as blobs. Writes are
// upserts keyed by (groupType, key) and invalidate every cache entry that
// could serve the stale value.
type SettingLogic struct {
	repos *repo.Repositories
	cache cache.ICache
	store storage.Provider
}

func NewSettingLogic(repos *repo.Repositories, c cache.ICache, store storage.Provider) *SettingLogic {
	return &SettingLogic{repos: repos, cache: c, store: store}
}

// GetGroup returns every setting of a group visible at the given scope.
func (st *SettingLogic) GetGroup(ctx context.Context, groupType, visibility string) ([]*model.Setting, error) {
	cacheKey := consts.SettingGroupKeyPrefix + visibility + ":" + groupType
	var cached []*model.Setting
	if st.readCache(ctx, cacheKey, &cached) {
		return cached, nil
	}

	filter := repo.Filter{"group_type": groupType}
	if visibility == consts.VisibilityPublic {
		filter["is_public"] = true
	}
	settings, err := st.repos.Settings.Find(ctx, filter, repo.Options{Sort: map[string]int{"setting_key": 1}})
	if err != nil {
		return nil, err
	}
	st.writeCache(ctx, cacheKey, settings)
	return settings, nil
}

// GetKey returns one setting, or a not-found error. Admin-only settings are
// invisible at public scope.
func (st *SettingLogic) GetKey(ctx context.Context, groupType, key, visibility string) (*model.Setting, error) {
	cacheKey := consts.SettingKeyPrefix + visibility + ":" + groupType + ":" + key
	var cached model.Setting
	if st.readCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	filter := repo.Filter{"group_type": groupType, "setting_key": key}
	if visibility == consts.VisibilityPublic {
		filter["is_public"] = true
	}
	setting, err := st.repos.Settings.FindOne(ctx, filter)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, errs.NotFoundf("setting %s/%s not found", groupType, key)
	}
	st.writeCache(ctx, cacheKey, setting)
	return setting, nil
}

// Upsert writes a batch of fields into one group. Text-shaped values are
// classified as text, number, or boolean; files upload to blob storage and
// persist as path records. Each (groupType, key) pair holds exactly one
// record no matter how often it is written.
func (st *SettingLogic) Upsert(ctx context.Context, groupType string, isPublic bool, fields map[string]string, files []upload.File) ([]*model.Setting, error) {
	if groupType == "" {
		return nil, errs.Validationf("group type must not be empty")
	}

	written := make([]*model.Setting, 0, len(fields)+len(files))
	touched := make([]string, 0, len(fields)+len(files))

	for key, raw := range fields {
		recordType, value := classifyValue(raw)
		setting, err := st.upsertOne(ctx, groupType, key, recordType, value, isPublic)
		if err != nil {
			return nil, err
		}
		written = append(written, setting)
		touched = append(touched, key)
	}

	for i := range files {
		file := &files[i]
		key := file.FieldName
		if key == "" {
			return nil, errs.Validationf("uploaded file carries no field name")
		}
		setting, err := st.upsertFile(ctx, groupType, key, file, isPublic)
		if err != nil {
			return nil, err
		}
		written = append(written, setting)
		touched = append(touched, key)
	}

	st.invalidate(ctx, groupType, touched...)
	return written, nil
}

// DeleteKey removes one setting and, for file values, its blob.
func (st *SettingLogic) DeleteKey(ctx context.Context, groupType, key string) error {
	setting, err := st.repos.Settings.FindOne(ctx, repo.Filter{"group_type": groupType, "setting_key": key})
	if err != nil {
		return err
	}
	if setting == nil {
		return errs.NotFoundf("setting %s/%s not found", groupType, key)
	}
	if _, err := st.repos.Settings.Delete(ctx, repo.Filter{"group_type": groupType, "setting_key": key}); err != nil {
		return err
	}
	st.cleanupFile(ctx, setting)
	st.invalidate(ctx, groupType, key)
	return nil
}

// DeleteGroup removes every setting of a group and all their blobs,
// returning how many records were deleted.
func (st *SettingLogic) DeleteGroup(ctx context.Context, groupType string) (int64, error) {
	settings, err := st.repos.Settings.Find(ctx, repo.Filter{"group_type": groupType}, repo.Options{})
	if err != nil {
		return 0, err
	}
	deleted, err := st.repos.Settings.Delete(ctx, repo.Filter{"group_type": groupType})
	if err != nil {
		return 0, err
	}
	keys := make([]string, 0, len(settings))
	for _, setting := range settings {
		st.cleanupFile(ctx, setting)
		keys = append(keys, setting.Key)
	}
	st.invalidate(ctx, groupType, keys...)
	return deleted, nil
}

func (st *SettingLogic) upsertOne(ctx context.Context, groupType, key, recordType string, value datatypes.JSON, isPublic bool) (*model.Setting, error) {
	existing, err := st.repos.Settings.FindOne(ctx, repo.Filter{"group_type": groupType, "setting_key": key})
	if err != nil {
		return nil, err
	}
	if existing == nil {
		setting := &model.Setting{
			SettingID:  id.GetUUIDWithoutDashes(),
			GroupType:  groupType,
			Key:        key,
			Value:      value,
			RecordType: recordType,
			IsPublic:   isPublic,
		}
		if err := st.repos.Settings.Insert(ctx, setting); err != nil {
			// A concurrent first write may land between probe and insert;
			// the unique index turns ours into a plain update.
			if errs.IsConflict(err) {
				return st.updateExisting(ctx, groupType, key, recordType, value, isPublic)
			}
			return nil, err
		}
		return setting, nil
	}

	updated, err := st.updateExisting(ctx, groupType, key, recordType, value, isPublic)
	if err != nil {
		return nil, err
	}
	// A non-file value overwriting a file value orphans the old blob.
	if existing.RecordType == consts.RecordTypeFile && recordType != consts.RecordTypeFile {
		st.cleanupFile(ctx, existing)
	}
	return updated, nil
}

func (st *SettingLogic) updateExisting(ctx context.Context, groupType, key, recordType string, value datatypes.JSON, isPublic bool) (*model.Setting, error) {
	fields := map[string]any{
		"value":       []byte(value),
		"record_type": recordType,
		"is_public":   isPublic,
	}
	if _, err := st.repos.Settings.Update(ctx, repo.Filter{"group_type": groupType, "setting_key": key}, fields); err != nil {
		return nil, err
	}
	setting, err := st.repos.Settings.FindOne(ctx, repo.Filter{"group_type": groupType, "setting_key": key})
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, errs.NotFoundf("setting %s/%s vanished during update", groupType, key)
	}
	return setting, nil
}

// upsertFile stores the new blob before touching the record or the previous
// blob; the old file is removed only after both the store and the record
// write succeeded.
func (st *SettingLogic) upsertFile(ctx context.Context, groupType, key string, file *upload.File, isPublic bool) (*model.Setting, error) {
	existing, err := st.repos.Settings.FindOne(ctx, repo.Filter{"group_type": groupType, "setting_key": key})
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s-%s-%s-%s%s",
		consts.FilePrefixSetting, groupType, key, id.GetULID(), path.Ext(file.OriginalName))
	stored, err := st.store.PutObject(ctx, name, file.Buffer, file.MimeType)
	if err != nil {
		return nil, errs.Wrap(errs.KindDependency, err, "store %s", name)
	}

	recordType, value := model.NewFileValue(stored, file.OriginalName)
	setting, err := st.upsertOne(ctx, groupType, key, recordType, value, isPublic)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.RecordType == consts.RecordTypeFile {
		st.cleanupFile(ctx, existing)
	}
	return setting, nil
}

// cleanupFile best-effort deletes the blob behind a file-valued setting.
func (st *SettingLogic) cleanupFile(ctx context.Context, setting *model.Setting) {
	if setting.RecordType != consts.RecordTypeFile {
		return
	}
	var value model.SettingValue
	if err := sonic.Unmarshal(setting.Value, &value); err != nil || value.FilePath == "" {
		return
	}
	if err := st.store.Delete(ctx, value.FilePath); err != nil {
		log.Warnw("setting file cleanup failed", "path", value.FilePath, "error", err)
	}
}

func (st *SettingLogic) readCache(ctx context.Context, key string, out any) bool {
	data, err := st.cache.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warnw("settings cache get failed", "key", key, "error", err)
		}
		return false
	}
	if err := sonic.UnmarshalString(data, out); err != nil {
		log.Warnw("settings cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (st *SettingLogic) writeCache(ctx context.Context, key string, value any) {
	data, err := sonic.MarshalString(value)
	if err != nil {
		return
	}
	if err := st.cache.Set(ctx, key, data, consts.SettingCacheTTL).Err(); err != nil {
		log.Warnw("settings cache set failed", "key", key, "error", err)
	}
}

// invalidate drops the group entries at both visibilities plus every touched
// key at both visibilities, so no read after a write can see the old value.
func (st *SettingLogic) invalidate(ctx context.Context, groupType string, keys ...string) {
	cacheKeys := []string{
		consts.SettingGroupKeyPrefix + consts.VisibilityPublic + ":" + groupType,
		consts.SettingGroupKeyPrefix + consts.VisibilityAdmin + ":" + groupType,
	}
	for _, key := range keys {
		cacheKeys = append(cacheKeys,
			consts.SettingKeyPrefix+consts.VisibilityPublic+":"+groupType+":"+key,
			consts.SettingKeyPrefix+consts.VisibilityAdmin+":"+groupType+":"+key,
		)
	}
	if err := st.cache.Del(ctx, cacheKeys...).Err(); err != nil {
		log.Warnw("settings cache invalidation failed", "group", groupType, "error", err)
	}
}

// classifyValue maps a raw text field to its typed record. Only literal
// true/false become booleans; numeric strings become numbers; everything
// else stays text.
func classifyValue(raw string) (string, datatypes.JSON) {
	if raw == "true" || raw == "false" {
		b, _ := strconv.ParseBool(raw)
		return model.NewBoolValue(b)
	}
	// ParseFloat also accepts nan/inf spellings, which have no JSON number
	// representation; those stay text.
	if n, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return model.NewNumberValue(n)
	}
	return model.NewTextValue(raw)
}
