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

	"github.com/ajroetker/gocpu-exec/hwy"
	"github.com/ajroetker/gocpu-exec/hwy/contrib/vec"
)

// TypeTraits is the per-element-kind trait entry of spec §3: a dot-product
// kernel, the canonical RHS ("dot type") encoding, a from-float converter,
// and the number of rows a single VecDot call produces.
type TypeTraits struct {
	// VecDot computes the dot product of an n-element row of src0 (encoded
	// as the owning trait's kind) against an n-element row of src1
	// (encoded as VecDotType), writing one float32 result into dst[0].
	VecDot func(n int, dst []float32, src0Row, src1Row []byte)

	// VecDotType is the element encoding the RHS of a dot product must be
	// converted to before VecDot can consume it.
	VecDotType ElemKind

	// FromFloat converts n float32 values in src into this trait's storage
	// encoding, writing into dst (which must be at least RowSize(kind, n)
	// bytes).
	FromFloat func(src []float32, dst []byte, n int)

	// NRows is the number of output rows a single VecDot call can produce.
	// Always 1 in this port: the "mmla" 2-row fusion is an ARM-specific
	// dot-kernel variant not present in hwy's portable kernels (see
	// DESIGN.md); callers must still implement the spec's odd-dimension
	// forcing-to-1 rule so a port with a real 2-row kernel drops in
	// cleanly.
	NRows int
}

// traitsTable is the immutable registry indexed by ElemKind.
var traitsTable = map[ElemKind]TypeTraits{
	F32: {
		VecDot:     vecDotF32,
		VecDotType: F32,
		FromFloat:  fromFloatF32,
		NRows:      1,
	},
	F16: {
		VecDot:     vecDotF16,
		VecDotType: F32,
		FromFloat:  fromFloatF16,
		NRows:      1,
	},
	BF16: {
		VecDot:     vecDotBF16,
		VecDotType: F32,
		FromFloat:  fromFloatBF16,
		NRows:      1,
	},
	Q8_0: {
		VecDot:     vecDotQ8_0,
		VecDotType: Q8_0,
		FromFloat:  fromFloatQ8_0,
		NRows:      1,
	},
}

// Traits looks up the trait entry for k. Panics if k has no entry —
// every ElemKind a Tensor can carry must be registered.
func Traits(k ElemKind) TypeTraits {
	t, ok := traitsTable[k]
	assert(ok, "graphexec: no TypeTraits registered for %s", k)
	return t
}

// bytesToF32 views a []byte as []float32 without copying. Callers must
// guarantee alignment and that the byte slice is exactly len(out)*4 bytes;
// scratch regions handed out by scratch.Cursor always satisfy this.
func bytesToF32(b []byte, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(
			uint32(b[i*4]) | uint32(b[i*4+1])<<8 | uint32(b[i*4+2])<<16 | uint32(b[i*4+3])<<24,
		)
	}
	return out
}

func putF32(dst []byte, v float32) {
	bits := math.Float32bits(v)
	dst[0] = byte(bits)
	dst[1] = byte(bits >> 8)
	dst[2] = byte(bits >> 16)
	dst[3] = byte(bits >> 24)
}

func vecDotF32(n int, dst []float32, src0Row, src1Row []byte) {
	a := bytesToF32(src0Row, n)
	b := bytesToF32(src1Row, n)
	dst[0] = vec.BaseDot(a, b)
}

func fromFloatF32(src []float32, dst []byte, n int) {
	for i := 0; i < n; i++ {
		putF32(dst[i*4:], src[i])
	}
}

func vecDotF16(n int, dst []float32, src0Row, src1Row []byte) {
	var sum float32
	for i := 0; i < n; i++ {
		h := hwy.Float16(uint16(src0Row[i*2]) | uint16(src0Row[i*2+1])<<8)
		a := hwy.Float16ToFloat32(h)
		b := math.Float32frombits(
			uint32(src1Row[i*4]) | uint32(src1Row[i*4+1])<<8 | uint32(src1Row[i*4+2])<<16 | uint32(src1Row[i*4+3])<<24,
		)
		sum += a * b
	}
	dst[0] = sum
}

func fromFloatF16(src []float32, dst []byte, n int) {
	for i := 0; i < n; i++ {
		h := hwy.Float32ToFloat16(src[i])
		dst[i*2] = byte(h)
		dst[i*2+1] = byte(h >> 8)
	}
}

func vecDotBF16(n int, dst []float32, src0Row, src1Row []byte) {
	var sum float32
	for i := 0; i < n; i++ {
		bf := hwy.BFloat16(uint16(src0Row[i*2]) | uint16(src0Row[i*2+1])<<8)
		a := hwy.BFloat16ToFloat32(bf)
		b := math.Float32frombits(
			uint32(src1Row[i*4]) | uint32(src1Row[i*4+1])<<8 | uint32(src1Row[i*4+2])<<16 | uint32(src1Row[i*4+3])<<24,
		)
		sum += a * b
	}
	dst[0] = sum
}

func fromFloatBF16(src []float32, dst []byte, n int) {
	for i := 0; i < n; i++ {
		bf := hwy.Float32ToBFloat16(src[i])
		dst[i*2] = byte(bf)
		dst[i*2+1] = byte(bf >> 8)
	}
}

// fromFloatQ8_0 quantizes n float32 values into ceil(n/Q8BlockSize) blocks,
// each a float32 scale followed by Q8BlockSize signed bytes. The scale is
// the block's max absolute value divided by 127, matching the per-group
// scaling convention of hwy/contrib/matmul's fused int8 kernels.
func fromFloatQ8_0(src []float32, dst []byte, n int) {
	bs := Q8BlockSize
	for blockStart := 0; blockStart < n; blockStart += bs {
		blockEnd := min(blockStart+bs, n)
		var amax float32
		for i := blockStart; i < blockEnd; i++ {
			if a := float32(math.Abs(float64(src[i]))); a > amax {
				amax = a
			}
		}
		scale := amax / 127
		out := dst[(blockStart/bs)*Q8BlockBytes:]
		putF32(out, scale)
		q := out[4:]
		inv := float32(0)
		if scale != 0 {
			inv = 1 / scale
		}
		for i := blockStart; i < blockEnd; i++ {
			v := int32(math.Round(float64(src[i] * inv)))
			q[i-blockStart] = byte(int8(v))
		}
		for i := blockEnd; i < blockStart+bs; i++ {
			q[i-blockStart] = 0
		}
	}
}

// vecDotQ8_0 computes a dot product where both rows are Q8_0-encoded,
// dequantizing block-by-block and accumulating in float32.
func vecDotQ8_0(n int, dst []float32, src0Row, src1Row []byte) {
	bs := Q8BlockSize
	var sum float32
	for blockStart := 0; blockStart < n; blockStart += bs {
		blockEnd := min(blockStart+bs, n)
		blockIdx := blockStart / bs
		a := src0Row[blockIdx*Q8BlockBytes:]
		b := src1Row[blockIdx*Q8BlockBytes:]
		scaleA := math.Float32frombits(uint32(a[0]) | uint32(a[1])<<8 | uint32(a[2])<<16 | uint32(a[3])<<24)
		scaleB := math.Float32frombits(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
		qa := a[4:]
		qb := b[4:]
		var acc int32
		for i := 0; i < blockEnd-blockStart; i++ {
			acc += int32(int8(qa[i])) * int32(int8(qb[i]))
		}
		sum += float32(acc) * scaleA * scaleB
	}
	dst[0] = sum
}
