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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name  string
		skip  int64
		limit int64
		total int64
		want  Pagination
	}{
		{
			name: "first page of three",
			skip: 0, limit: 10, total: 25,
			want: Pagination{CurrentPage: 1, TotalPages: 3, TotalCount: 25, Limit: 10, HasNext: true, HasPrev: false},
		},
		{
			name: "middle page",
			skip: 10, limit: 10, total: 25,
			want: Pagination{CurrentPage: 2, TotalPages: 3, TotalCount: 25, Limit: 10, HasNext: true, HasPrev: true},
		},
		{
			name: "last partial page",
			skip: 20, limit: 10, total: 25,
			want: Pagination{CurrentPage: 3, TotalPages: 3, TotalCount: 25, Limit: 10, HasNext: false, HasPrev: true},
		},
		{
			name: "exact multiple",
			skip: 10, limit: 10, total: 20,
			want: Pagination{CurrentPage: 2, TotalPages: 2, TotalCount: 20, Limit: 10, HasNext: false, HasPrev: true},
		},
		{
			name: "empty result still has one page",
			skip: 0, limit: 10, total: 0,
			want: Pagination{CurrentPage: 1, TotalPages: 1, TotalCount: 0, Limit: 10, HasNext: false, HasPrev: false},
		},
		{
			name: "unpaged query spans the set",
			skip: 0, limit: 0, total: 42,
			want: Pagination{CurrentPage: 1, TotalPages: 1, TotalCount: 42, Limit: 42},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPagination(tt.skip, tt.limit, tt.total))
		})
	}
}
