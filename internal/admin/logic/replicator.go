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
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/crowdkit/crowdkit/internal/admin/errs"
	"github.com/crowdkit/crowdkit/internal/admin/model"
	"github.com/crowdkit/crowdkit/internal/admin/repo"
	"github.com/crowdkit/crowdkit/pkg/id"
	"github.com/crowdkit/crowdkit/pkg/log"
	"github.com/crowdkit/crowdkit/pkg/parallel"
	"github.com/crowdkit/crowdkit/pkg/retry"
	"github.com/crowdkit/crowdkit/pkg/safe"
	"github.com/crowdkit/crowdkit/pkg/storage"
	"github.com/crowdkit/crowdkit/pkg/upload"
)

// ReplicaAccessor is the handle the replication engine needs on an entity:
// public id, shared unique code, owning language, and the usage counter that
// guards deletion.
type ReplicaAccessor interface {
	GetPublicID() string
	SetPublicID(id string)
	GetUniqueCode() int64
	SetUniqueCode(code int64)
	GetLanguageID() string
	SetLanguageID(id string)
	GetUseCount() int
}

// FileCarrier is implemented by entities that own a replicated media file.
type FileCarrier interface {
	GetFilePath() string
	SetFilePath(path string)
}

// Replica constrains the engine to pointer types exposing ReplicaAccessor.
type Replica[T any] interface {
	*T
	ReplicaAccessor
}

// Replicator fans entity creation out across languages: one record per
// target language, all sharing a unique code, each with its own copy of any
// accompanying media file. After creation replicas diverge independently;
// deletion always removes the whole set by code.
type Replicator[T any, PT Replica[T]] struct {
	port      repo.Port[T]
	directory *repo.LanguageDirectory
	store     storage.Provider

	// publicIDField and fileField are the storage field names of the public
	// id and (for FileCarrier entities) the file path column.
	publicIDField string
	fileField     string
	// filePrefix leads replicated file names: <prefix>-<code>_<folder><ext>.
	filePrefix string
}

func NewReplicator[T any, PT Replica[T]](
	port repo.Port[T],
	directory *repo.LanguageDirectory,
	store storage.Provider,
	publicIDField, fileField, filePrefix string,
) *Replicator[T, PT] {
	return &Replicator[T, PT]{
		port:          port,
		directory:     directory,
		store:         store,
		publicIDField: publicIDField,
		fileField:     fileField,
		filePrefix:    filePrefix,
	}
}

// createRaceRetries bounds how often a lost insert race on the unique code
// is retried with a fresh candidate.
const createRaceRetries = 3

// CreateReplicaSet creates one replica of canonical per target language.
// languageIDs empty means every active language; explicit ids must all be
// active. The returned slice follows the target language order.
//
// The per-language file copy and the record inserts are not transactional:
// a failure partway leaves already-stored files, so a retry with the same
// payload converges. A concurrent generator that wins the same code between
// existence check and insert surfaces as a conflict; our own partial writes
// are rolled back and the whole creation retried with a fresh candidate.
func (r *Replicator[T, PT]) CreateReplicaSet(ctx context.Context, canonical *T, languageIDs []string, file *upload.File) ([]*T, error) {
	targets, err := r.resolveTargets(ctx, languageIDs)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < createRaceRetries; attempt++ {
		code, err := GenerateUniqueCode(ctx, func(ctx context.Context, code int64) (bool, error) {
			return r.port.Exists(ctx, repo.Filter{"unique_code": code})
		})
		if err != nil {
			return nil, err
		}

		replicas := make([]*T, 0, len(targets))
		ids := make([]string, 0, len(targets))
		for _, lang := range targets {
			clone := *canonical
			pt := PT(&clone)
			pt.SetPublicID(id.GetUUIDWithoutDashes())
			pt.SetUniqueCode(code)
			pt.SetLanguageID(lang.LanguageID)
			replicas = append(replicas, &clone)
			ids = append(ids, pt.GetPublicID())
		}

		if file != nil {
			if err := r.fanOutFile(ctx, replicas, targets, code, file); err != nil {
				return nil, err
			}
		}

		err = r.port.InsertMany(ctx, replicas)
		if err == nil {
			return replicas, nil
		}
		if !errs.IsConflict(err) {
			return nil, err
		}
		lastErr = err
		r.rollbackPartial(ctx, replicas, ids)
		log.Warnw("unique code lost insert race, retrying with fresh candidate",
			"code", code, "attempt", attempt+1)
	}
	return nil, lastErr
}

// rollbackPartial removes whatever part of a failed replica set landed before
// the conflict, records and file copies alike, so a retry starts clean.
func (r *Replicator[T, PT]) rollbackPartial(ctx context.Context, replicas []*T, ids []string) {
	if _, err := r.port.Delete(ctx, repo.Filter{r.publicIDField: ids}); err != nil {
		log.Warnw("replica rollback failed", "error", err)
	}
	paths := make([]string, 0, len(replicas))
	for _, replica := range replicas {
		if carrier, ok := any(replica).(FileCarrier); ok && carrier.GetFilePath() != "" {
			paths = append(paths, carrier.GetFilePath())
		}
	}
	r.deleteFilesAsync(dedupe(paths))
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// fanOutFile stores one copy of the file per language and stamps each
// replica with its copy's path. All-or-nothing: the first failed store
// aborts the wait and the whole creation.
func (r *Replicator[T, PT]) fanOutFile(ctx context.Context, replicas []*T, targets []*model.Language, code int64, file *upload.File) error {
	g := parallel.GoGroup(ctx)
	for i := range replicas {
		carrier, ok := any(replicas[i]).(FileCarrier)
		if !ok {
			return errs.Validationf("%s records do not carry files", r.filePrefix)
		}
		name := r.fileName(code, targets[i].Folder, file.OriginalName)
		g.Go(func(ctx context.Context) error {
			stored, err := r.putObject(ctx, name, file)
			if err != nil {
				return err
			}
			carrier.SetFilePath(stored)
			return nil
		})
	}
	return g.Wait()
}

// GetByPublicID returns a single replica, or a not-found error.
func (r *Replicator[T, PT]) GetByPublicID(ctx context.Context, publicID string) (*T, error) {
	record, err := r.port.FindOne(ctx, repo.Filter{r.publicIDField: publicID})
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errs.NotFoundf("%s %q not found", r.filePrefix, publicID)
	}
	return record, nil
}

// FindByUniqueCode returns every member of a replica set.
func (r *Replicator[T, PT]) FindByUniqueCode(ctx context.Context, code int64) ([]*T, error) {
	return r.port.Find(ctx, repo.Filter{"unique_code": code}, repo.Options{Sort: map[string]int{"language_id": 1}})
}

// UpdateByPublicID mutates exactly one replica. Field changes never cascade
// to siblings. A replacement file is stored before the record is updated and
// before the previous file is removed, so a crash in between leaves both
// files rather than neither.
func (r *Replicator[T, PT]) UpdateByPublicID(ctx context.Context, publicID string, fields map[string]any, file *upload.File) (*T, error) {
	record, err := r.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if file != nil {
		carrier, ok := any(record).(FileCarrier)
		if !ok {
			return nil, errs.Validationf("%s records do not carry files", r.filePrefix)
		}
		folder, err := r.directory.FolderFor(ctx, PT(record).GetLanguageID())
		if err != nil {
			return nil, err
		}
		name := r.fileName(PT(record).GetUniqueCode(), folder, file.OriginalName)
		stored, err := r.putObject(ctx, name, file)
		if err != nil {
			return nil, err
		}
		if old := carrier.GetFilePath(); old != "" && old != stored {
			r.deleteFilesAsync([]string{old})
		}
		fields[r.fileField] = stored
	}

	if len(fields) == 0 {
		return record, nil
	}
	if _, err := r.port.Update(ctx, repo.Filter{r.publicIDField: publicID}, fields); err != nil {
		return nil, err
	}
	return r.GetByPublicID(ctx, publicID)
}

// DeleteByUniqueCode removes every member of a replica set plus every
// distinct file any member references. Blocked while any member's usage
// counter is nonzero. File deletions are concurrent and best effort: a blob
// store failure is logged, never propagated, because the records are already
// gone.
func (r *Replicator[T, PT]) DeleteByUniqueCode(ctx context.Context, code int64) (int64, error) {
	replicas, err := r.FindByUniqueCode(ctx, code)
	if err != nil {
		return 0, err
	}
	if len(replicas) == 0 {
		return 0, errs.NotFoundf("no %s replica set with code %d", r.filePrefix, code)
	}

	paths := make(map[string]struct{})
	for _, replica := range replicas {
		pt := PT(replica)
		if pt.GetUseCount() > 0 {
			return 0, errs.InUsef("%s %q is used %d times", r.filePrefix, pt.GetPublicID(), pt.GetUseCount())
		}
		if carrier, ok := any(replica).(FileCarrier); ok && carrier.GetFilePath() != "" {
			paths[carrier.GetFilePath()] = struct{}{}
		}
	}

	deleted, err := r.port.Delete(ctx, repo.Filter{"unique_code": code})
	if err != nil {
		return 0, err
	}

	distinct := make([]string, 0, len(paths))
	for p := range paths {
		distinct = append(distinct, p)
	}
	r.deleteFilesAsync(distinct)
	return deleted, nil
}

// AdjustUseCount moves the usage counter of one replica by delta.
func (r *Replicator[T, PT]) AdjustUseCount(ctx context.Context, publicID string, delta int) error {
	changed, err := r.port.Increment(ctx, repo.Filter{r.publicIDField: publicID}, "use_count", delta)
	if err != nil {
		return err
	}
	if changed == 0 {
		return errs.NotFoundf("%s %q not found", r.filePrefix, publicID)
	}
	return nil
}

func (r *Replicator[T, PT]) resolveTargets(ctx context.Context, languageIDs []string) ([]*model.Language, error) {
	active, err := r.directory.ActiveLanguages(ctx)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, errs.Validationf("no active languages to replicate into")
	}
	if len(languageIDs) == 0 {
		return active, nil
	}
	byID := make(map[string]*model.Language, len(active))
	for _, lang := range active {
		byID[lang.LanguageID] = lang
	}
	targets := make([]*model.Language, 0, len(languageIDs))
	for _, langID := range languageIDs {
		lang, ok := byID[langID]
		if !ok {
			return nil, errs.Validationf("language %q is not active", langID)
		}
		targets = append(targets, lang)
	}
	return targets, nil
}

// putObject writes one file copy to the blob store, retrying transient
// failures with a short backoff before surfacing a dependency error.
func (r *Replicator[T, PT]) putObject(ctx context.Context, name string, file *upload.File) (string, error) {
	var stored string
	err := retry.Do(ctx, func(ctx context.Context) error {
		var putErr error
		stored, putErr = r.store.PutObject(ctx, name, file.Buffer, file.MimeType)
		return putErr
	},
		retry.WithMaxAttempts(3),
		retry.WithBackoff(retry.Exponential(50*time.Millisecond, 500*time.Millisecond)),
		retry.WithJitter(retry.FullJitter),
	)
	if err != nil {
		return "", errs.Wrap(errs.KindDependency, err, "store %s", name)
	}
	return stored, nil
}

func (r *Replicator[T, PT]) fileName(code int64, folder, originalName string) string {
	return fmt.Sprintf("%s-%d_%s%s", r.filePrefix, code, folder, path.Ext(originalName))
}

// deleteFilesAsync removes stored files off the request path. Failures are
// logged and swallowed; they must not block the record mutation that already
// succeeded.
func (r *Replicator[T, PT]) deleteFilesAsync(paths []string) {
	var wg sync.WaitGroup
	for _, stored := range paths {
		wg.Add(1)
		safe.GoWith(func(p string) {
			defer wg.Done()
			if err := r.store.Delete(context.Background(), p); err != nil {
				log.Warnw("replica file cleanup failed", "path", p, "error", err)
			}
		}, stored)
	}
	wg.Wait()
}
