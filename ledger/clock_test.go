// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ledger_test

import (
	"testing"
	"time"

	"github.com/blinklabs-io/magpie/ledger"
	"github.com/stretchr/testify/assert"
)

func TestManualClock(t *testing.T) {
	clock := ledger.NewManualClock(1000)
	assert.Equal(t, int64(1000), clock.Now())
	clock.Advance(5 * time.Second)
	assert.Equal(t, int64(6000), clock.Now())
	clock.Set(42)
	assert.Equal(t, int64(42), clock.Now())
}

func TestSystemClock(t *testing.T) {
	clock := ledger.SystemClock{}
	before := time.Now().UnixMilli()
	now := clock.Now()
	assert.GreaterOrEqual(t, now, before)
}
