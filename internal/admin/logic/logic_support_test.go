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
	"reflect"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/crowdkit/crowdkit/internal/admin/errs"
	"github.com/crowdkit/crowdkit/internal/admin/model"
	"github.com/crowdkit/crowdkit/internal/admin/repo"
	"github.com/crowdkit/crowdkit/pkg/cache"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// memPort is an in-memory Port backed by reflection over bson tags, which
// match the storage field names both adapters use. uniqueKeys mirrors the
// composite unique indexes of the real backends so insert races surface as
// conflicts here too.
type memPort[T any] struct {
	mu         sync.Mutex
	records    []*T
	uniqueKeys [][]string
}

func (p *memPort[T]) Insert(ctx context.Context, record *T) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.insertLocked(record)
}

func (p *memPort[T]) InsertMany(ctx context.Context, records []*T) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, record := range records {
		if err := p.insertLocked(record); err != nil {
			return err
		}
	}
	return nil
}

func (p *memPort[T]) insertLocked(record *T) error {
	for _, key := range p.uniqueKeys {
		filter := repo.Filter{}
		rv := reflect.ValueOf(record).Elem()
		for _, name := range key {
			fv, ok := fieldByStorageName(rv, name)
			if !ok {
				return errors.Errorf("unknown field %q", name)
			}
			filter[name] = fv.Interface()
		}
		for _, existing := range p.records {
			if matchesFilter(existing, filter) {
				return errs.Conflictf("duplicate key %v", key)
			}
		}
	}
	p.records = append(p.records, record)
	return nil
}

func (p *memPort[T]) FindOne(ctx context.Context, filter repo.Filter) (*T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, record := range p.records {
		if matchesFilter(record, filter) {
			clone := *record
			return &clone, nil
		}
	}
	return nil, nil
}

func (p *memPort[T]) Find(ctx context.Context, filter repo.Filter, opts repo.Options) ([]*T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.findLocked(filter, opts), nil
}

func (p *memPort[T]) findLocked(filter repo.Filter, opts repo.Options) []*T {
	matches := make([]*T, 0)
	for _, record := range p.records {
		if matchesFilter(record, filter) {
			clone := *record
			matches = append(matches, &clone)
		}
	}

	sortFields := make([]string, 0, len(opts.Sort))
	for field := range opts.Sort {
		sortFields = append(sortFields, field)
	}
	sort.Strings(sortFields)
	for _, field := range sortFields {
		dir := opts.Sort[field]
		sort.SliceStable(matches, func(i, j int) bool {
			a, _ := fieldByStorageName(reflect.ValueOf(matches[i]).Elem(), field)
			b, _ := fieldByStorageName(reflect.ValueOf(matches[j]).Elem(), field)
			return compareValues(a, b)*dir < 0
		})
	}

	if opts.Skip > 0 {
		if opts.Skip >= int64(len(matches)) {
			return nil
		}
		matches = matches[opts.Skip:]
	}
	if opts.Limit > 0 && opts.Limit < int64(len(matches)) {
		matches = matches[:opts.Limit]
	}
	return matches
}

func (p *memPort[T]) FindPage(ctx context.Context, filter repo.Filter, opts repo.Options) (*repo.PageResult[T], error) {
	total, err := p.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	records, err := p.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return &repo.PageResult[T]{Items: records, Pagination: repo.NewPagination(opts.Skip, opts.Limit, total)}, nil
}

func (p *memPort[T]) Count(ctx context.Context, filter repo.Filter) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var total int64
	for _, record := range p.records {
		if matchesFilter(record, filter) {
			total++
		}
	}
	return total, nil
}

func (p *memPort[T]) Exists(ctx context.Context, filter repo.Filter) (bool, error) {
	total, err := p.Count(ctx, filter)
	return total > 0, err
}

func (p *memPort[T]) Update(ctx context.Context, filter repo.Filter, fields map[string]any) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var changed int64
	for _, record := range p.records {
		if !matchesFilter(record, filter) {
			continue
		}
		rv := reflect.ValueOf(record).Elem()
		for name, value := range fields {
			fv, ok := fieldByStorageName(rv, name)
			if !ok {
				return 0, errors.Errorf("unknown field %q", name)
			}
			wv := reflect.ValueOf(value)
			if wv.Type() != fv.Type() {
				wv = wv.Convert(fv.Type())
			}
			fv.Set(wv)
		}
		changed++
	}
	return changed, nil
}

func (p *memPort[T]) Increment(ctx context.Context, filter repo.Filter, field string, delta int) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var changed int64
	for _, record := range p.records {
		if !matchesFilter(record, filter) {
			continue
		}
		fv, ok := fieldByStorageName(reflect.ValueOf(record).Elem(), field)
		if !ok {
			return 0, errors.Errorf("unknown field %q", field)
		}
		fv.SetInt(fv.Int() + int64(delta))
		changed++
	}
	return changed, nil
}

func (p *memPort[T]) Delete(ctx context.Context, filter repo.Filter) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.records[:0]
	var deleted int64
	for _, record := range p.records {
		if matchesFilter(record, filter) {
			deleted++
			continue
		}
		kept = append(kept, record)
	}
	p.records = kept
	return deleted, nil
}

func (p *memPort[T]) Distinct(ctx context.Context, field string, filter repo.Filter) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	seen := make(map[string]struct{})
	for _, record := range p.records {
		if !matchesFilter(record, filter) {
			continue
		}
		fv, ok := fieldByStorageName(reflect.ValueOf(record).Elem(), field)
		if !ok {
			return nil, errors.Errorf("unknown field %q", field)
		}
		seen[fv.String()] = struct{}{}
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

func fieldByStorageName(rv reflect.Value, name string) (reflect.Value, bool) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := strings.Split(field.Tag.Get("bson"), ",")[0]
		if tag == name {
			return rv.Field(i), true
		}
		if field.Anonymous && rv.Field(i).Kind() == reflect.Struct {
			if fv, ok := fieldByStorageName(rv.Field(i), name); ok {
				return fv, true
			}
		}
	}
	return reflect.Value{}, false
}

func matchesFilter[T any](record *T, filter repo.Filter) bool {
	rv := reflect.ValueOf(record).Elem()
	for name, want := range filter {
		fv, ok := fieldByStorageName(rv, name)
		if !ok {
			return false
		}
		wv := reflect.ValueOf(want)
		if wv.Kind() == reflect.Slice && wv.Type().Elem().Kind() != reflect.Uint8 {
			hit := false
			for i := 0; i < wv.Len(); i++ {
				ev := wv.Index(i)
				if ev.Kind() == reflect.Interface {
					ev = ev.Elem()
				}
				if valuesEqual(fv, ev) {
					hit = true
					break
				}
			}
			if !hit {
				return false
			}
			continue
		}
		if !valuesEqual(fv, wv) {
			return false
		}
	}
	return true
}

func valuesEqual(field, want reflect.Value) bool {
	if want.Type() != field.Type() {
		if !want.Type().ConvertibleTo(field.Type()) {
			return false
		}
		want = want.Convert(field.Type())
	}
	return reflect.DeepEqual(field.Interface(), want.Interface())
}

func compareValues(a, b reflect.Value) int {
	switch a.Kind() {
	case reflect.String:
		return strings.Compare(a.String(), b.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch {
		case a.Int() < b.Int():
			return -1
		case a.Int() > b.Int():
			return 1
		}
	}
	return 0
}

// memStore is an in-memory blob store recording every put and delete.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    []string
	deletes []string
	failPut bool
	// failPutTimes fails that many puts before recovering.
	failPutTimes int
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (s *memStore) PutObject(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPut {
		return "", errors.New("blob store unavailable")
	}
	if s.failPutTimes > 0 {
		s.failPutTimes--
		return "", errors.New("blob store unavailable")
	}
	stored := "media/" + objectName
	s.objects[stored] = data
	s.puts = append(s.puts, stored)
	return stored, nil
}

func (s *memStore) GetObject(ctx context.Context, storedPath string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[storedPath]
	if !ok {
		return nil, errors.Errorf("object %q not found", storedPath)
	}
	return data, nil
}

func (s *memStore) Delete(ctx context.Context, storedPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storedPath)
	s.deletes = append(s.deletes, storedPath)
	return nil
}

func (s *memStore) Exists(ctx context.Context, storedPath string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[storedPath]
	return ok, nil
}

func (s *memStore) Copy(ctx context.Context, srcPath, dstName string) (string, error) {
	data, err := s.GetObject(ctx, srcPath)
	if err != nil {
		return "", err
	}
	return s.PutObject(ctx, dstName, data, "")
}

func (s *memStore) PresignedURL(ctx context.Context, storedPath string, expiry time.Duration) (string, error) {
	return "http://localhost/" + storedPath, nil
}

func (s *memStore) deletedPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deletes...)
}

func (s *memStore) putCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.puts)
}

// testEnv wires the in-memory ports into a repository container the way
// NewRepositories does for real backends.
type testEnv struct {
	repos     *repo.Repositories
	languages *memPort[model.Language]
	sliders   *memPort[model.Slider]
	dropdowns *memPort[model.DropdownOption]
	settings  *memPort[model.Setting]
	store     *memStore
	cache     *cache.FastCache
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		languages: &memPort[model.Language]{uniqueKeys: [][]string{{"language_id"}, {"folder"}}},
		sliders:   &memPort[model.Slider]{uniqueKeys: [][]string{{"slider_id"}, {"unique_code", "language_id"}}},
		dropdowns: &memPort[model.DropdownOption]{uniqueKeys: [][]string{
			{"option_id"}, {"type", "language_id", "name"}, {"unique_code", "language_id"},
		}},
		settings: &memPort[model.Setting]{uniqueKeys: [][]string{{"setting_id"}, {"group_type", "setting_key"}}},
		store:    newMemStore(),
		cache:    cache.NewFastCache(cache.FastCacheConfig{}),
	}
	t.Cleanup(env.cache.Close)
	env.repos = &repo.Repositories{
		Languages: env.languages,
		Sliders:   env.sliders,
		Dropdowns: env.dropdowns,
		Settings:  env.settings,
		Directory: repo.NewLanguageDirectory(env.languages, env.cache),
	}
	return env
}

func (env *testEnv) seedLanguage(t *testing.T, languageID, name, folder string, active, isDefault bool) *model.Language {
	t.Helper()
	lang := &model.Language{
		LanguageID: languageID,
		Name:       name,
		Folder:     folder,
		Direction:  "ltr",
		IsActive:   active,
		IsDefault:  isDefault,
	}
	require.NoError(t, env.languages.Insert(context.Background(), lang))
	env.repos.Directory.Invalidate(context.Background())
	return lang
}

// seedEnEs registers the usual two-language fixture: English as the active
// default plus active Spanish.
func (env *testEnv) seedEnEs(t *testing.T) {
	t.Helper()
	env.seedLanguage(t, "lang-en", "English", "en", true, true)
	env.seedLanguage(t, "lang-es", "Spanish", "es", true, false)
}
