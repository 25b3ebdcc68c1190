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
	"math"
	"testing"
)

func runOneNode(t *testing.T, node *Tensor, nThreads int) {
	t.Helper()
	g := &Graph{Nodes: []*Tensor{node}}
	pool := NewPool(PoolParams{NumThreads: nThreads})
	defer pool.Free()
	plan := PlanGraph(g, nThreads, pool)
	status := Compute(pool, g, &plan, make([]byte, plan.WorkSize))
	if status != StatusSuccess {
		t.Fatalf("Compute status = %v, want success", status)
	}
}

func TestDispatchAbsNeg(t *testing.T) {
	node := newF32Tensor(4, 1, 1, 1)
	node.Op = OpAbs
	node.Src[0] = newF32Tensor(4, 1, 1, 1)
	setRow(node.Src[0], 0, 0, 0, []float32{-1, 2, -3, 0})
	runOneNode(t, node, 4)
	got := getRow(node, 0, 0, 0, 4)
	want := []float32{1, 2, 3, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("abs[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDispatchSoftmaxRowsSumToOne(t *testing.T) {
	node := newF32Tensor(5, 3, 1, 1)
	node.Op = OpSoftmax
	node.Src[0] = newF32Tensor(5, 3, 1, 1)
	for r := int64(0); r < 3; r++ {
		setRow(node.Src[0], r, 0, 0, []float32{1, 2, 3, 4, float32(r)})
	}
	runOneNode(t, node, 2)

	for r := int64(0); r < 3; r++ {
		row := getRow(node, r, 0, 0, 5)
		var sum float32
		for _, v := range row {
			sum += v
		}
		if !almostEqual(sum, 1, 1e-4) {
			t.Errorf("row %d sums to %v, want 1", r, sum)
		}
	}
}

func TestDispatchRMSNormUnitVariance(t *testing.T) {
	node := newF32Tensor(4, 2, 1, 1)
	node.Op = OpRMSNorm
	node.Src[0] = newF32Tensor(4, 2, 1, 1)
	setRow(node.Src[0], 0, 0, 0, []float32{1, 2, 3, 4})
	setRow(node.Src[0], 1, 0, 0, []float32{-2, -2, 2, 2})
	runOneNode(t, node, 2)

	for r := int64(0); r < 2; r++ {
		row := getRow(node, r, 0, 0, 4)
		var ss float32
		for _, v := range row {
			ss += v * v
		}
		mean := ss / 4
		if !almostEqual(mean, 1, 1e-2) {
			t.Errorf("row %d mean-square = %v, want ~1", r, mean)
		}
	}
}

func TestDispatchGetRowsGathersByIndex(t *testing.T) {
	table := newF32Tensor(3, 4, 1, 1)
	for r := int64(0); r < 4; r++ {
		setRow(table, r, 0, 0, []float32{float32(r), float32(r) + 0.5, float32(r) + 1})
	}
	idx := newI32Tensor(1, 2, 1, 1)
	setIDRow(idx, 0, 0, 0, []int32{3})
	setIDRow(idx, 1, 0, 0, []int32{1})

	dst := newF32Tensor(3, 2, 1, 1)
	dst.Op = OpGetRows
	dst.Src[0] = table
	dst.Src[1] = idx
	runOneNode(t, dst, 4)

	got0 := getRow(dst, 0, 0, 0, 3)
	got1 := getRow(dst, 1, 0, 0, 3)
	want0 := []float32{3, 3.5, 4}
	want1 := []float32{1, 1.5, 2}
	for i := range want0 {
		if got0[i] != want0[i] {
			t.Errorf("row 0[%d] = %v, want %v", i, got0[i], want0[i])
		}
		if got1[i] != want1[i] {
			t.Errorf("row 1[%d] = %v, want %v", i, got1[i], want1[i])
		}
	}
}

func TestDispatchAddBroadcastsBiasRow(t *testing.T) {
	node := newF32Tensor(3, 2, 1, 1)
	node.Op = OpAdd
	node.Src[0] = newF32Tensor(3, 2, 1, 1)
	setRow(node.Src[0], 0, 0, 0, []float32{1, 2, 3})
	setRow(node.Src[0], 1, 0, 0, []float32{4, 5, 6})
	node.Src[1] = newF32Tensor(3, 1, 1, 1) // broadcast bias row
	setRow(node.Src[1], 0, 0, 0, []float32{10, 10, 10})

	runOneNode(t, node, 2)
	got0 := getRow(node, 0, 0, 0, 3)
	got1 := getRow(node, 1, 0, 0, 3)
	want0 := []float32{11, 12, 13}
	want1 := []float32{14, 15, 16}
	for i := range want0 {
		if got0[i] != want0[i] || got1[i] != want1[i] {
			t.Errorf("row %d mismatch: got (%v,%v) want (%v,%v)", i, got0[i], got1[i], want0[i], want1[i])
		}
	}
}

func TestParseCPUList(t *testing.T) {
	got := parseCPUList("0-2,4,7-8\n")
	want := []int{0, 1, 2, 4, 7, 8}
	if len(got) != len(want) {
		t.Fatalf("parseCPUList length = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("parseCPUList[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestCPUTopologySummaryReportsPositiveCounts(t *testing.T) {
	physical, logical := cpuTopologySummary()
	if physical <= 0 || logical <= 0 {
		t.Errorf("cpuTopologySummary() = (%d, %d), want both > 0", physical, logical)
	}
	if physical > logical {
		t.Errorf("physical cores (%d) > logical cores (%d)", physical, logical)
	}
}

func TestNumaNodeForCPUUnknownWhenDisabled(t *testing.T) {
	// With no topology discovered, every CPU is reported unknown.
	if got := numaNodeForCPU(0); got != -1 {
		t.Errorf("numaNodeForCPU(0) = %d, want -1 with no topology loaded", got)
	}
}

// TestRoPEPreservesNorm checks that pairwise rotation preserves each
// rotated pair's magnitude, the defining property of a rotation matrix.
func TestDispatchRoPEPreservesPairNorm(t *testing.T) {
	node := newF32Tensor(4, 2, 1, 1)
	node.Op = OpRoPE
	node.Src[0] = newF32Tensor(4, 2, 1, 1)
	setRow(node.Src[0], 0, 0, 0, []float32{1, 1, 1, 1})
	setRow(node.Src[0], 1, 0, 0, []float32{3, 4, 1, 2})
	runOneNode(t, node, 1)

	in := getRow(node.Src[0], 1, 0, 0, 4)
	out := getRow(node, 1, 0, 0, 4)
	inNorm := math.Sqrt(float64(in[0]*in[0] + in[2]*in[2]))
	outNorm := math.Sqrt(float64(out[0]*out[0] + out[2]*out[2]))
	if !almostEqual(float32(inNorm), float32(outNorm), 1e-3) {
		t.Errorf("pair norm changed: before %v, after %v", inNorm, outNorm)
	}
}
