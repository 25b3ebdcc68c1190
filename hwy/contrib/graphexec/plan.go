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

// Plan describes the required thread count and scratch size for one
// graph execution (spec §3 "Plan"). It does not retain references to the
// graph it was computed from; Compute revalidates it against the graph
// it is actually given.
type Plan struct {
	NThreads int
	WorkSize int

	// AbortCallback, if set, is polled by worker 0 after every node; a
	// true return aborts the remaining graph (spec §4.6 step 3).
	AbortCallback func() bool
}

// CustomOpSpec describes a registered custom operator (spec §4.7 "Custom
// user ops | declared, clamped to n_threads"). The declared thread count
// itself lives on the node (Tensor.CustomThreads), not here, since the
// same registered kernel can be reused by nodes that want different
// parallelism.
type CustomOpSpec struct {
	// ScratchSize, given the clamped thread count, returns the bytes of
	// scratch this op needs.
	ScratchSize func(nThreads int) int
	// Run is the kernel itself, invoked collectively by every
	// participating worker (spec §4.2).
	Run func(ith, nth int, scratch []byte, node *Tensor)
}

// customOps is the process-wide registry of custom operators, populated
// by RegisterCustomOp before planning (spec §6 "Custom user ops").
var customOps = map[string]CustomOpSpec{}

// RegisterCustomOp adds or replaces a custom operator implementation.
func RegisterCustomOp(name string, spec CustomOpSpec) {
	customOps[name] = spec
}

// nTasks returns the thread count a given node should run with, before
// clamping to the pool's nThreads, per the per-op-class table of spec
// §4.7.
func nTasks(node *Tensor, nThreads int) int {
	switch node.Op {
	case OpAbs, OpNeg, OpStep, OpTanh, OpClamp,
		OpSum, OpMean, OpArgmax,
		OpPool1D, OpPool2D, OpGetRows,
		OpReshape, OpView, OpPermute, OpTranspose:
		return 1

	case OpSoftmax:
		rows := rowsOf(node.Src[0])
		return min(nThreads, max(rows, 1))

	case OpCustom:
		_, ok := customOps[node.CustomOp]
		assert(ok, "graphexec: unregistered custom op %q", node.CustomOp)
		return min(node.CustomThreads, nThreads)

	default:
		// SiLU/GELU, elementwise binary, matmul family, normalization,
		// RoPE/attention, conv: all thread-parallel with the pool's full
		// width.
		return nThreads
	}
}

// rowsOf returns NE[1]*NE[2]*NE[3] of t — the row count of a matrix-like
// tensor, used by the softmax thread-count rule.
func rowsOf(t *Tensor) int64 {
	if t == nil {
		return 0
	}
	return t.NE[1] * max64(t.NE[2], 1) * max64(t.NE[3], 1)
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// curScratch returns the scratch bytes a node needs when run with the
// given (already nTasks-derived, pre-clamp) thread count, per spec §4.7
// "Scratch sizing rules".
func curScratch(node *Tensor, threads int) int {
	switch node.Op {
	case OpMatMul:
		return matmulScratchSize(node)

	case OpMatMulID:
		return matmulIDScratchSize(node)

	case OpAdd, OpOutProd:
		if node.Src[0] != nil && node.Src[0].Kind != F32 {
			return 4 * int(node.Src[0].NE[0]) * threads
		}
		return 0

	case OpSoftmax, OpRoPE:
		ne0 := int64(0)
		if node.Src[0] != nil {
			ne0 = node.Src[0].NE[0]
		}
		return 4 * int(ne0) * threads

	case OpAttention:
		// sizeof(f32) * (DK + 2*DV) * n_tasks, DK/DV carried in Params as
		// two little-endian uint32s.
		if len(node.Params) < 8 {
			return 0
		}
		dk := int(le32(node.Params[0:4]))
		dv := int(le32(node.Params[4:8]))
		return 4 * (dk + 2*dv) * threads

	case OpCustom:
		spec := customOps[node.CustomOp]
		if spec.ScratchSize == nil {
			return 0
		}
		return spec.ScratchSize(threads)

	default:
		return 0
	}
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// PlanGraph computes the plan for g, given a thread-count hint and
// (optionally) the pool it will run on — clamping the requested thread
// count to the pool's own maximum, matching spec §6 "plan(graph,
// n_threads, pool?)".
func PlanGraph(g *Graph, nThreads int, pool *Pool) Plan {
	assert(g != nil, "graphexec: PlanGraph called with nil graph")
	assert(nThreads > 0, "graphexec: PlanGraph requires nThreads > 0, got %d", nThreads)

	if pool != nil {
		nThreads = min(nThreads, pool.NumThreadsMax())
	}

	maxTasks := 0
	workSize := 0

	for _, node := range g.Nodes {
		t := nTasks(node, nThreads)
		if t > maxTasks {
			maxTasks = t
		}
		if s := curScratch(node, t); s > workSize {
			workSize = s
		}
	}

	if maxTasks == 0 {
		maxTasks = 1
	}

	if workSize > 0 {
		workSize += CacheLineSize * nThreads
	}

	return Plan{
		NThreads: min(maxTasks, nThreads),
		WorkSize: workSize,
	}
}
