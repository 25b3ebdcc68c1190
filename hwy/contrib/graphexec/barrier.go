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

import "sync/atomic"

// Barrier is a reusable, allocation-free barrier over a participant count
// that can change between uses (a single-threaded node still "enters" the
// barrier but is a no-op). It is the hot path of every node transition in
// the graph executor, so it must never allocate and must never take a
// mutex.
//
// The implementation is the direct translation of ggml's sense-reversing
// barrier (lm_ggml_barrier): each arriving goroutine bumps entered with a
// seq-cst fetch-add; whichever one observes the last slot resets entered
// to 0 and bumps passed, releasing everyone spinning on passed. A single
// monotonic passed counter is the "sense" — there is no flag to reset
// because passed never wraps within the lifetime that matters (int32
// overflow after 2^31 barrier passes is the same non-issue as in the C
// original).
type Barrier struct {
	entered atomic.Int32
	passed  atomic.Int32
}

// Wait blocks the calling goroutine until n goroutines (including this
// one) have called Wait with the same n since the barrier last released.
// n must be the same value for every caller in a given round — it is the
// pool's current nThreads, snapshotted once per node by the caller.
//
// A call with n <= 1 is a no-op, matching "a single-thread call is a
// no-op".
func (b *Barrier) Wait(n int32) {
	if n <= 1 {
		return
	}

	passedSnapshot := b.passed.Load()

	entered := b.entered.Add(1)

	if entered == n {
		// Last arrival: reset and release everyone.
		b.entered.Store(0)
		b.passed.Add(1)
		return
	}

	for b.passed.Load() == passedSnapshot {
		cpuRelax()
	}
}

// PassedCount returns the number of completed barrier rounds. Exposed for
// tests (spec §8 Testable Property: "n_barrier_passed == 1e6" after a
// stress run).
func (b *Barrier) PassedCount() int32 {
	return b.passed.Load()
}

// Pending returns the number of goroutines currently waiting inside the
// barrier for the current round. Exposed for tests asserting n_barrier
// returns to 0 between graphs (spec §8 Testable Property #3).
func (b *Barrier) Pending() int32 {
	return b.entered.Load()
}
