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

func buildNegChain(length int, seed []float32) (*Graph, []*Tensor) {
	nodes := make([]*Tensor, length)
	var prev *Tensor
	for i := 0; i < length; i++ {
		n := newF32Tensor(int64(len(seed)), 1, 1, 1)
		n.Op = OpNeg
		if i == 0 {
			src := newF32Tensor(int64(len(seed)), 1, 1, 1)
			setRow(src, 0, 0, 0, seed)
			n.Src[0] = src
		} else {
			n.Src[0] = prev
		}
		nodes[i] = n
		prev = n
	}
	return &Graph{Nodes: nodes}, nodes
}

// TestComputeAbortsAfterNamedNode covers the 5-node-graph, abort-after-
// node-2 boundary scenario: the AbortCallback fires after the third node
// (index 2) finishes, so nodes 3 and 4 must never run.
func TestComputeAbortsAfterNamedNode(t *testing.T) {
	g, nodes := buildNegChain(5, []float32{1, 2, 3})

	calls := 0
	plan := PlanGraph(g, 2, nil)
	plan.AbortCallback = func() bool {
		calls++
		return calls == 3
	}

	pool := NewPool(PoolParams{NumThreads: 2})
	defer pool.Free()

	scratch := make([]byte, plan.WorkSize)
	status := Compute(pool, g, &plan, scratch)
	if status != StatusAborted {
		t.Fatalf("status = %v, want StatusAborted", status)
	}

	want2 := []float32{-1, -2, -3}
	got2 := getRow(nodes[2], 0, 0, 0, 3)
	for i := range want2 {
		if !almostEqual(got2[i], want2[i], 1e-6) {
			t.Errorf("node 2 element %d = %v, want %v", i, got2[i], want2[i])
		}
	}

	for _, idx := range []int{3, 4} {
		row := getRow(nodes[idx], 0, 0, 0, 3)
		for i, v := range row {
			if v != 0 {
				t.Errorf("node %d element %d = %v, want untouched zero", idx, i, v)
			}
		}
	}
}

// TestComputeRunsToCompletionWithoutAbort checks the un-aborted path
// still executes every node, and that the barrier is left idle (no
// pending arrivals, and it has advanced exactly once per internal node
// boundary) once Compute returns.
func TestComputeRunsToCompletionWithoutAbort(t *testing.T) {
	g, nodes := buildNegChain(4, []float32{10, 20})
	plan := PlanGraph(g, 4, nil)

	pool := NewPool(PoolParams{NumThreads: 4})
	defer pool.Free()

	scratch := make([]byte, plan.WorkSize)
	status := Compute(pool, g, &plan, scratch)
	if status != StatusSuccess {
		t.Fatalf("status = %v, want StatusSuccess", status)
	}
	if pending := pool.barrier.Pending(); pending != 0 {
		t.Errorf("barrier left with %d pending arrivals, want 0", pending)
	}

	// 4 successive negations of {10, 20} return to the original values.
	got := getRow(nodes[3], 0, 0, 0, 2)
	want := []float32{10, 20}
	for i := range got {
		if !almostEqual(got[i], want[i], 1e-6) {
			t.Errorf("final element %d = %v, want %v", i, got[i], want[i])
		}
	}
}

// TestComputeRejectsUndersizedScratch exercises the precondition assert
// that guards against running a plan against too-small scratch.
func TestComputeRejectsUndersizedScratch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Compute to panic on undersized scratch")
		}
	}()

	node := &Tensor{Op: OpMatMul}
	node.Src[0] = newF32Tensor(32, 4, 1, 1)
	node.Src[0].Kind = Q8_0
	node.Src[1] = newF32Tensor(32, 1, 1, 1)
	g := &Graph{Nodes: []*Tensor{node}}

	pool := NewPool(PoolParams{NumThreads: 2})
	defer pool.Free()

	plan := PlanGraph(g, 2, pool)
	Compute(pool, g, &plan, make([]byte, 1)) // far smaller than plan.WorkSize
}
