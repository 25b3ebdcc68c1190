// Copyright 2025 go-highway Authors
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

package graphexec

import "testing"

func TestDetectNumaTopologyDoesNotPanic(t *testing.T) {
	// Whatever the sandbox looks like, this must return cleanly rather
	// than erroring out — NUMA detection is best-effort.
	_, _ = detectNumaTopology()
}

func TestNumaInitIsIdempotent(t *testing.T) {
	NumaInit(NumaDistribute)
	NumaInit(NumaDistribute)
	NumaInit(NumaDisabled) // sync.Once means this second call is a no-op either way
}

func TestPoolHonorsNumaStrategyFlag(t *testing.T) {
	pool := NewPool(PoolParams{NumThreads: 2, Numa: NumaDisabled})
	defer pool.Free()
	if pool.isNUMA() {
		t.Error("isNUMA() = true for a pool created with NumaDisabled")
	}
}
