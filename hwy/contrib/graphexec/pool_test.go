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
	"testing"
	"time"
)

func TestNewPoolDefaultsNumThreads(t *testing.T) {
	pool := NewPool(PoolParams{})
	defer pool.Free()
	if pool.NumThreadsMax() <= 0 {
		t.Fatalf("NumThreadsMax() = %d, want > 0", pool.NumThreadsMax())
	}
}

func TestPoolFreeIsIdempotent(t *testing.T) {
	pool := NewPool(PoolParams{NumThreads: 3})
	pool.Free()
	pool.Free() // must not panic or deadlock
}

// TestPauseResumeWithinBudget covers the pause/resume boundary scenario:
// a paused pool's Compute call must still complete quickly once Resume
// is called shortly after.
func TestPauseResumeWithinBudget(t *testing.T) {
	pool := NewPool(PoolParams{NumThreads: 4, Paused: true})
	defer pool.Free()

	go func() {
		time.Sleep(20 * time.Millisecond)
		pool.Resume()
	}()

	node := newF32Tensor(4, 1, 1, 1)
	node.Op = OpNeg
	node.Src[0] = newF32Tensor(4, 1, 1, 1)
	g := &Graph{Nodes: []*Tensor{node}}
	plan := PlanGraph(g, 4, pool)

	done := make(chan Status, 1)
	start := time.Now()
	go func() {
		done <- Compute(pool, g, &plan, make([]byte, plan.WorkSize))
	}()

	select {
	case status := <-done:
		if status != StatusSuccess {
			t.Fatalf("status = %v, want success", status)
		}
		if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
			t.Errorf("Compute took %v after Resume, want <= 100ms", elapsed)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("Compute did not return within 200ms of Resume")
	}
}

func TestThreadActiveReflectsCurrentGraphWidth(t *testing.T) {
	pool := NewPool(PoolParams{NumThreads: 4})
	defer pool.Free()

	node := newF32Tensor(2, 1, 1, 1)
	node.Op = OpNeg
	node.Src[0] = newF32Tensor(2, 1, 1, 1)
	g := &Graph{Nodes: []*Tensor{node}}
	plan := PlanGraph(g, 2, pool)
	plan.NThreads = 2

	pool.kickoff(2, g, &plan, make([]byte, plan.WorkSize))
	if !pool.threadActive(0) || !pool.threadActive(1) {
		t.Error("threads 0,1 should be active for a 2-thread graph")
	}
	if pool.threadActive(2) || pool.threadActive(3) {
		t.Error("threads 2,3 should be inactive for a 2-thread graph")
	}
	pool.computeThread(0)
}
