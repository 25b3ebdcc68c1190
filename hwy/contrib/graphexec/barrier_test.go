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

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestBarrierSingleThreadNoOp(t *testing.T) {
	var b Barrier
	b.Wait(1)
	b.Wait(0)
	if b.Pending() != 0 || b.PassedCount() != 0 {
		t.Fatalf("single-thread Wait should be a no-op, got pending=%d passed=%d", b.Pending(), b.PassedCount())
	}
}

func TestBarrierReleasesAllWorkers(t *testing.T) {
	const n = 16
	var b Barrier
	var wg sync.WaitGroup
	var before, after atomic.Int32

	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			before.Add(1)
			b.Wait(n)
			after.Add(1)
		}()
	}
	wg.Wait()

	if got := before.Load(); got != n {
		t.Fatalf("before count = %d, want %d", got, n)
	}
	if got := after.Load(); got != n {
		t.Fatalf("after count = %d, want %d", got, n)
	}
	if b.Pending() != 0 {
		t.Fatalf("entered count should reset to 0, got %d", b.Pending())
	}
	if b.PassedCount() != 1 {
		t.Fatalf("passed count = %d, want 1", b.PassedCount())
	}
}

// TestBarrierStress exercises the boundary scenario of spec §8 #6: 16
// workers repeatedly entering the barrier one million times with no
// deadlock, ending with n_barrier == 0 and n_barrier_passed == rounds.
func TestBarrierStress(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping barrier stress test in short mode")
	}

	const n = 16
	const rounds = 1_000_000

	var b Barrier
	var wg sync.WaitGroup
	wg.Add(n)

	for range n {
		go func() {
			defer wg.Done()
			for range rounds {
				b.Wait(n)
			}
		}()
	}
	wg.Wait()

	if b.Pending() != 0 {
		t.Fatalf("n_barrier = %d, want 0", b.Pending())
	}
	if got := b.PassedCount(); got != rounds {
		t.Fatalf("n_barrier_passed = %d, want %d", got, rounds)
	}
}

func TestBarrierMultipleRounds(t *testing.T) {
	const n = 8
	const rounds = 500

	var b Barrier
	counters := make([]int, n)
	var wg sync.WaitGroup
	wg.Add(n)

	for i := range n {
		go func(idx int) {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				counters[idx] = r
				b.Wait(n)
			}
		}(i)
	}
	wg.Wait()

	for i, c := range counters {
		if c != rounds-1 {
			t.Fatalf("worker %d stopped at round %d, want %d", i, c, rounds-1)
		}
	}
}
