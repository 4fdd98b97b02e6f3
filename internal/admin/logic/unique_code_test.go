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

	"github.com/crowdkit/crowdkit/internal/admin/consts"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUniqueCodeWidth(t *testing.T) {
	never := func(ctx context.Context, code int64) (bool, error) { return false, nil }
	for i := 0; i < 50; i++ {
		code, err := GenerateUniqueCode(context.Background(), never)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, code, int64(1_000_000_000))
		assert.Less(t, code, int64(10_000_000_000))
	}
}

func TestGenerateUniqueCodeSkipsUsedCandidates(t *testing.T) {
	probes := 0
	exists := func(ctx context.Context, code int64) (bool, error) {
		probes++
		return probes <= 2, nil
	}
	code, err := GenerateUniqueCode(context.Background(), exists)
	require.NoError(t, err)
	assert.NotZero(t, code)
	assert.Equal(t, 3, probes)
}

func TestGenerateUniqueCodeExhausted(t *testing.T) {
	probes := 0
	always := func(ctx context.Context, code int64) (bool, error) {
		probes++
		return true, nil
	}
	_, err := GenerateUniqueCode(context.Background(), always)
	assert.ErrorIs(t, err, ErrCodeExhausted)
	assert.Equal(t, consts.UniqueCodeMaxAttempts, probes)
}

func TestGenerateUniqueCodePropagatesProbeError(t *testing.T) {
	boom := errors.New("storage down")
	exists := func(ctx context.Context, code int64) (bool, error) { return false, boom }
	_, err := GenerateUniqueCode(context.Background(), exists)
	assert.ErrorIs(t, err, boom)
}

func TestRandomCodeExactDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := randomCode(6)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, code, int64(100_000))
		assert.Less(t, code, int64(1_000_000))
	}
}
