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
	"crypto/rand"
	"math/big"

	"github.com/crowdkit/crowdkit/internal/admin/consts"
	"github.com/crowdkit/crowdkit/internal/admin/errs"
	"github.com/crowdkit/crowdkit/pkg/log"
)

// ErrCodeExhausted is returned when no unused code was found within the
// attempt bound. Fatal for the request; callers must not loop past it.
var ErrCodeExhausted = errs.Dependencyf("unique code generation exhausted after %d attempts", consts.UniqueCodeMaxAttempts)

// CodeExists probes whether any replica set already holds the candidate.
type CodeExists func(ctx context.Context, code int64) (bool, error)

// GenerateUniqueCode draws fixed-width numeric candidates and probes each for
// prior use. The probe only narrows the race window; the storage layer's
// unique index is the final arbiter for concurrent generators.
func GenerateUniqueCode(ctx context.Context, exists CodeExists) (int64, error) {
	for attempt := 0; attempt < consts.UniqueCodeMaxAttempts; attempt++ {
		code, err := randomCode(consts.UniqueCodeDigits)
		if err != nil {
			return 0, errs.Wrap(errs.KindDependency, err, "draw code candidate")
		}
		used, err := exists(ctx, code)
		if err != nil {
			return 0, err
		}
		if !used {
			return code, nil
		}
		log.Debugw("unique code candidate collided", "code", code, "attempt", attempt+1)
	}
	return 0, ErrCodeExhausted
}

// randomCode returns a uniformly random integer with exactly the given
// number of decimal digits.
func randomCode(digits int) (int64, error) {
	min := int64(1)
	for i := 1; i < digits; i++ {
		min *= 10
	}
	span := big.NewInt(min*10 - min)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return 0, err
	}
	return min + n.Int64(), nil
}
