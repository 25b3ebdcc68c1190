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

// newF32Tensor allocates a zeroed, row-contiguous F32 tensor of the given
// extents (trailing dims default to 1, matching the ggml convention this
// package's Tensor was ported from).
func newF32Tensor(ne0, ne1, ne2, ne3 int64) *Tensor {
	if ne1 == 0 {
		ne1 = 1
	}
	if ne2 == 0 {
		ne2 = 1
	}
	if ne3 == 0 {
		ne3 = 1
	}
	t := &Tensor{Kind: F32}
	t.NE = [MaxDims]int64{ne0, ne1, ne2, ne3}
	t.NB[0] = int64(F32.TypeSize())
	t.NB[1] = t.NB[0] * ne0
	t.NB[2] = t.NB[1] * ne1
	t.NB[3] = t.NB[2] * ne2
	t.Data = make([]byte, ne0*ne1*ne2*ne3*int64(F32.TypeSize()))
	return t
}

// newQ8Tensor allocates a zeroed, row-contiguous Q8_0 tensor of the given
// extents. Unlike newF32Tensor, the Kind must be known at construction
// time: Q8_0's row stride is the quantized row size, not ne0*TypeSize(),
// so mutating Kind on an already-built tensor leaves NB wrong.
func newQ8Tensor(ne0, ne1, ne2, ne3 int64) *Tensor {
	if ne1 == 0 {
		ne1 = 1
	}
	if ne2 == 0 {
		ne2 = 1
	}
	if ne3 == 0 {
		ne3 = 1
	}
	t := &Tensor{Kind: Q8_0}
	t.NE = [MaxDims]int64{ne0, ne1, ne2, ne3}
	t.NB[0] = int64(Q8BlockBytes) / int64(Q8BlockSize)
	t.NB[1] = int64(RowSize(Q8_0, int(ne0)))
	t.NB[2] = t.NB[1] * ne1
	t.NB[3] = t.NB[2] * ne2
	t.Data = make([]byte, t.NB[3]*ne3)
	return t
}

// setRowQ8 quantizes vals into row (i1, i2, i3) of a Q8_0 tensor built by
// newQ8Tensor, using the same FromFloat path a real matmul's Phase A
// requantization goes through.
func setRowQ8(t *Tensor, i1, i2, i3 int64, vals []float32) {
	Traits(Q8_0).FromFloat(vals, t.Row(i1, i2, i3), len(vals))
}

func setRow(t *Tensor, i1, i2, i3 int64, vals []float32) {
	row := t.Row(i1, i2, i3)
	for i, v := range vals {
		putF32(row[i*4:], v)
	}
}

func getRow(t *Tensor, i1, i2, i3 int64, n int) []float32 {
	return bytesToF32(t.Row(i1, i2, i3), n)
}

func almostEqual(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
