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

// MaxDims is the number of dimensions a Tensor's extents/strides track.
// Matches the 4-dimensional layout of the tensor library this executor
// was ported from: (rows/cols, then two batch dimensions).
const MaxDims = 4

// MaxSrc is the maximum number of source tensors a single node may
// reference. Matmul uses 2, indexed matmul uses 3; this port never needs
// more than that, unlike the ported library's generous 10-source budget.
const MaxSrc = 4

// OpKind identifies the operator a graph node computes.
type OpKind int

const (
	OpNone OpKind = iota

	// Unary, single-threaded per §4.7.
	OpAbs
	OpNeg
	OpStep
	OpTanh
	OpClamp // preserved single-threaded per §9 Open Questions (TODO upstream)

	// Thread-parallel unary/activation.
	OpSiLU
	OpGELU

	// Reductions, single-threaded.
	OpSum
	OpMean
	OpArgmax

	// Thread-parallel elementwise binary.
	OpAdd
	OpMul

	// Matmul family, thread-parallel via the chunk counter.
	OpMatMul
	OpMatMulID // indexed / mixture-of-experts matmul
	OpOutProd

	// Normalization, thread-parallel.
	OpNorm
	OpRMSNorm

	// Softmax: min(nThreads, rows(src0)) per §4.7.
	OpSoftmax

	// RoPE / attention, thread-parallel.
	OpRoPE
	OpAttention

	// Conv, thread-parallel.
	OpConvIm2Col
	OpConvTranspose

	// Pool, single-threaded.
	OpPool1D
	OpPool2D

	// get_rows, single-threaded: multi-threading it hurts GPU-offloaded
	// flows upstream (§9), preserved here even though this backend has
	// no GPU offload of its own.
	OpGetRows

	// Shape ops, single-threaded (no data movement).
	OpReshape
	OpView
	OpPermute
	OpTranspose

	// Custom user ops, declared thread count clamped to nThreads.
	OpCustom
)

// Tensor is the executor's view of a graph node: an element-encoding, its
// extents and byte strides, a data buffer, the operator that produces it,
// and up to MaxSrc source tensors. The executor never resizes a Tensor;
// it only writes into the pre-allocated Data of the current node.
type Tensor struct {
	Kind ElemKind
	NE   [MaxDims]int64 // element extents
	NB   [MaxDims]int64 // byte strides

	Data []byte

	Op     OpKind
	Src    [MaxSrc]*Tensor
	Params []byte // operator-specific parameter bytes

	// CustomOp, set only when Op == OpCustom, names the registered
	// implementation (see CustomOp/RegisterCustomOp in dispatch.go).
	CustomOp string
	// CustomThreads, set only when Op == OpCustom, is the op's declared
	// thread count before clamping to the pool's nThreads (§4.7).
	CustomThreads int

	// Name is an optional human-readable label; purely diagnostic.
	Name string
}

// NElements returns the total element count of t.
func (t *Tensor) NElements() int64 {
	n := int64(1)
	for i := 0; i < MaxDims; i++ {
		if t.NE[i] > 0 {
			n *= t.NE[i]
		}
	}
	return n
}

// IsRowContiguous reports whether t's innermost dimension is densely
// packed: NB[0] equals one element's storage size, matching the "not
// transposed" requirement of §4.3's Asserts.
func (t *Tensor) IsRowContiguous() bool {
	if t.Kind == Q8_0 {
		// A Q8_0 row's byte stride is the quantized row size, not
		// NE[0]*TypeSize(); row-contiguity there is whatever FromFloat
		// produced, always tightly packed.
		return t.NB[0] == int64(Q8BlockBytes)/int64(Q8BlockSize)
	}
	return t.NB[0] == int64(t.Kind.TypeSize())
}

// IsMonotoneStride reports whether byte strides are non-decreasing with
// dimension index, i.e. the layout is not permuted — the precondition
// §4.3 calls "dst is not transposed".
func (t *Tensor) IsMonotoneStride() bool {
	for i := 1; i < MaxDims; i++ {
		if t.NB[i] < t.NB[i-1] {
			return false
		}
	}
	return true
}

// RowBytes returns the byte size of one row (NE[0] elements) of t.
func (t *Tensor) RowBytes() int {
	return RowSize(t.Kind, int(t.NE[0]))
}

// Row returns the byte slice of t's data at the given (i1, i2, i3) batch
// indices, spanning NE[0] elements (one row) starting at element 0.
func (t *Tensor) Row(i1, i2, i3 int64) []byte {
	off := i1*t.NB[1] + i2*t.NB[2] + i3*t.NB[3]
	return t.Data[off:]
}

// Graph is an ordered, dependency-respecting list of tensor nodes. The
// executor walks it linearly; the order is the contract (spec §3).
type Graph struct {
	Nodes []*Tensor
}

// Status is the outcome of a Compute call, matching the ported library's
// three-valued enum rather than a bare success/failure boolean (spec §9
// "Supplemented from original_source").
type Status int

const (
	StatusSuccess Status = iota
	StatusAborted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusAborted:
		return "aborted"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}
