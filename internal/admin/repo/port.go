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

import "context"

// Filter selects records by field equality. Keys are storage field names
// (snake_case; identical for gorm columns and bson tags), values are matched
// exactly. Slice values match any element (IN semantics).
type Filter map[string]any

// Options shapes a list query. Zero value means no projection, no sort,
// no paging.
type Options struct {
	// Select limits returned fields. Empty means all fields.
	Select []string
	// Sort maps field name to direction: 1 ascending, -1 descending.
	Sort map[string]int
	Skip  int64
	Limit int64
}

// Pagination describes where a page sits inside the full result set.
type Pagination struct {
	CurrentPage int64 `json:"currentPage"`
	TotalPages  int64 `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	Limit       int64 `json:"limit"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// PageResult bundles one page of records with its pagination metadata.
type PageResult[T any] struct {
	Items      []*T       `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// NewPagination computes page metadata from an offset query. limit <= 0 is
// treated as an unpaged query spanning the whole set.
func NewPagination(skip, limit, total int64) Pagination {
	if limit <= 0 {
		return Pagination{CurrentPage: 1, TotalPages: 1, TotalCount: total, Limit: total}
	}
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}
	current := skip/limit + 1
	return Pagination{
		CurrentPage: current,
		TotalPages:  totalPages,
		TotalCount:  total,
		Limit:       limit,
		HasNext:     current < totalPages,
		HasPrev:     current > 1,
	}
}

// Port is the storage-neutral persistence contract. Services depend on Port
// only; the concrete adapter (relational or document) is chosen once at
// startup from configuration and never switched per call.
//
// Not-found is not an error for single-record reads: FindOne returns
// (nil, nil) when nothing matches, so callers decide whether absence is
// exceptional. Duplicate-key violations surface as errs.Conflict regardless
// of backend.
type Port[T any] interface {
	Insert(ctx context.Context, record *T) error
	InsertMany(ctx context.Context, records []*T) error
	FindOne(ctx context.Context, filter Filter) (*T, error)
	Find(ctx context.Context, filter Filter, opts Options) ([]*T, error)
	FindPage(ctx context.Context, filter Filter, opts Options) (*PageResult[T], error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Exists(ctx context.Context, filter Filter) (bool, error)
	// Update applies the given field set to every record matching filter and
	// reports how many records changed.
	Update(ctx context.Context, filter Filter, fields map[string]any) (int64, error)
	// Increment atomically adds delta to a numeric field on matching records.
	Increment(ctx context.Context, filter Filter, field string, delta int) (int64, error)
	Delete(ctx context.Context, filter Filter) (int64, error)
	// Distinct returns the distinct values of a string field across matches.
	Distinct(ctx context.Context, field string, filter Filter) ([]string, error)
}
