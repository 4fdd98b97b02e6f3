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

package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func parseIndexes(t *testing.T, value any) map[string]*schema.Index {
	t.Helper()

	s, err := schema.Parse(value, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	indexes := make(map[string]*schema.Index)
	for _, idx := range s.ParseIndexes() {
		indexes[idx.Name] = idx
	}
	return indexes
}

func indexColumns(idx *schema.Index) []string {
	columns := make([]string, 0, len(idx.Fields))
	for _, f := range idx.Fields {
		columns = append(columns, f.DBName)
	}
	return columns
}

// Replicas of one set share a unique code, so the relational schema must
// enforce at most one replica per (unique_code, language_id) pair for every
// replicated entity.
func TestReplicatedModelsDeclareCodePerLanguageIndex(t *testing.T) {
	for name, value := range map[string]any{
		"slider":          &Slider{},
		"dropdown_option": &DropdownOption{},
	} {
		indexes := parseIndexes(t, value)

		idx, ok := indexes["uk_code_lang"]
		require.True(t, ok, "%s is missing uk_code_lang", name)
		require.Equal(t, "UNIQUE", idx.Class, name)
		require.ElementsMatch(t, []string{"unique_code", "language_id"}, indexColumns(idx), name)
	}
}

func TestDropdownOptionDeclaresNamePerDropdownIndex(t *testing.T) {
	indexes := parseIndexes(t, &DropdownOption{})

	idx, ok := indexes["uk_type_lang_name"]
	require.True(t, ok)
	require.Equal(t, "UNIQUE", idx.Class)
	require.ElementsMatch(t, []string{"type", "language_id", "name"}, indexColumns(idx))
}
