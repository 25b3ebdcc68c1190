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

// ElemKind identifies the element encoding of a Tensor's storage.
type ElemKind int

const (
	// F32 is a plain IEEE-754 single-precision float, 4 bytes per element.
	F32 ElemKind = iota
	// F16 is an IEEE-754 half-precision float, 2 bytes per element.
	F16
	// BF16 is the bfloat16 format, 2 bytes per element.
	BF16
	// Q8_0 is a block-quantized int8 format: groups of Q8BlockSize elements
	// share one float32 scale. Used as the canonical "dot type" for
	// on-the-fly RHS quantization (spec §4.3 Phase A).
	Q8_0
	// I32 is a plain int32, used for index/selector tensors (e.g. MoE ids).
	I32
)

func (k ElemKind) String() string {
	switch k {
	case F32:
		return "f32"
	case F16:
		return "f16"
	case BF16:
		return "bf16"
	case Q8_0:
		return "q8_0"
	case I32:
		return "i32"
	default:
		return "unknown"
	}
}

// Q8BlockSize is the number of contiguous float32 elements a single Q8_0
// block quantizes to one scale.
const Q8BlockSize = 32

// Q8BlockBytes is the storage size of one Q8_0 block: one float32 scale
// followed by Q8BlockSize int8 values.
const Q8BlockBytes = 4 + Q8BlockSize

// TypeSize returns the storage size in bytes of one element, for
// non-block-quantized kinds. Block-quantized kinds (Q8_0) must use
// RowSize, since their per-element cost is not an integral byte count.
func (k ElemKind) TypeSize() int {
	switch k {
	case F32, I32:
		return 4
	case F16, BF16:
		return 2
	case Q8_0:
		return Q8BlockBytes // only meaningful per-block, see RowSize
	default:
		panic("graphexec: unknown ElemKind")
	}
}

// BlockSize returns the number of elements sharing one quantization unit.
// 1 for unquantized kinds, Q8BlockSize for Q8_0.
func (k ElemKind) BlockSize() int {
	if k == Q8_0 {
		return Q8BlockSize
	}
	return 1
}

// RowSize returns the number of bytes needed to store n contiguous
// elements of kind k, accounting for block quantization.
func RowSize(k ElemKind, n int) int {
	bs := k.BlockSize()
	assert(n%bs == 0 || bs == 1, "graphexec: row length %d not a multiple of block size %d for %s", n, bs, k)
	nBlocks := (n + bs - 1) / bs
	if bs == 1 {
		return n * k.TypeSize()
	}
	return nBlocks * Q8BlockBytes
}
