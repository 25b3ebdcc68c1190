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

func TestNTasksSingleThreadedOps(t *testing.T) {
	for _, op := range []OpKind{OpAbs, OpNeg, OpClamp, OpSum, OpGetRows, OpReshape} {
		node := &Tensor{Op: op}
		if got := nTasks(node, 8); got != 1 {
			t.Errorf("nTasks(%v, 8) = %d, want 1", op, got)
		}
	}
}

func TestNTasksSoftmaxClampsToRowCount(t *testing.T) {
	node := &Tensor{Op: OpSoftmax}
	node.Src[0] = newF32Tensor(16, 3, 1, 1)
	if got := nTasks(node, 8); got != 3 {
		t.Errorf("nTasks(softmax, 8) with 3 rows = %d, want 3", got)
	}
	node.Src[0] = newF32Tensor(16, 20, 1, 1)
	if got := nTasks(node, 8); got != 8 {
		t.Errorf("nTasks(softmax, 8) with 20 rows = %d, want 8", got)
	}
}

func TestNTasksDefaultUsesFullWidth(t *testing.T) {
	node := &Tensor{Op: OpMatMul}
	if got := nTasks(node, 6); got != 6 {
		t.Errorf("nTasks(matmul, 6) = %d, want 6", got)
	}
}

func TestPlanGraphClampsToPoolMax(t *testing.T) {
	pool := NewPool(PoolParams{NumThreads: 2})
	defer pool.Free()

	g := &Graph{Nodes: []*Tensor{{Op: OpAdd}}}
	plan := PlanGraph(g, 16, pool)
	if plan.NThreads > 2 {
		t.Errorf("PlanGraph NThreads = %d, want <= 2 (pool max)", plan.NThreads)
	}
}

func TestPlanGraphWorkSizeIncludesPerThreadPadding(t *testing.T) {
	node := &Tensor{Op: OpMatMul}
	node.Src[0] = newF32Tensor(32, 4, 1, 1)
	node.Src[0].Kind = Q8_0
	node.Src[1] = newF32Tensor(32, 1, 1, 1)
	g := &Graph{Nodes: []*Tensor{node}}

	plan := PlanGraph(g, 4, nil)
	if plan.WorkSize <= 0 {
		t.Fatalf("expected non-zero work size for quantized matmul, got %d", plan.WorkSize)
	}
	if plan.WorkSize < CacheLineSize*plan.NThreads {
		t.Errorf("WorkSize %d smaller than per-thread padding floor %d", plan.WorkSize, CacheLineSize*plan.NThreads)
	}
}

func TestPlanGraphNoScratchForPlainF32(t *testing.T) {
	node := &Tensor{Op: OpMatMul}
	node.Src[0] = newF32Tensor(8, 4, 1, 1)
	node.Src[1] = newF32Tensor(8, 1, 1, 1)
	g := &Graph{Nodes: []*Tensor{node}}

	plan := PlanGraph(g, 4, nil)
	if plan.WorkSize != 0 {
		t.Errorf("expected zero work size for F32/F32 matmul (no requantization needed), got %d", plan.WorkSize)
	}
}
