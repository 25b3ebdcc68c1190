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

import "math"

// Leaf operator kernels. These satisfy the thread-participation contract
// Dispatch requires (every participating worker is called, and must fully
// write its share before returning) but are otherwise plain, correctness-
// first implementations: the row/thread partitioning follows the same
// evenly-divided-range style as the matmul and MoE engines, without
// depending on any SIMD kernel.

func putI32(dst []byte, v int32) {
	u := uint32(v)
	dst[0] = byte(u)
	dst[1] = byte(u >> 8)
	dst[2] = byte(u >> 16)
	dst[3] = byte(u >> 24)
}

func readI32(b []byte) int32 {
	return int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
}

// rowCoords decomposes a flat row index r (0 <= r < rowsOf(t)) into the
// (i1, i2, i3) batch coordinates Tensor.Row expects, i1 varying fastest.
func rowCoords(t *Tensor, r int64) (i1, i2, i3 int64) {
	ne1 := max64(t.NE[1], 1)
	ne2 := max64(t.NE[2], 1)
	i1 = r % ne1
	r /= ne1
	i2 = r % ne2
	i3 = r / ne2
	return
}

// rowRange returns the [r0, r1) row range worker ith of nth owns, evenly
// dividing nrows the same way the matmul/MoE tiling does.
func rowRange(nrows int64, ith, nth int) (int64, int64) {
	if nrows <= 0 {
		nrows = 1
	}
	r0 := nrows * int64(ith) / int64(nth)
	r1 := nrows * int64(ith+1) / int64(nth)
	return r0, r1
}

func unaryF32(node *Tensor, f func(float32) float32) {
	src := node.Src[0]
	n := int(node.NElements())
	vals := bytesToF32(src.Data, n)
	for i, v := range vals {
		putF32(node.Data[i*4:], f(v))
	}
}

func dispatchClamp(node *Tensor) {
	assert(len(node.Params) >= 8, "graphexec: clamp node missing min/max params")
	lo := math.Float32frombits(le32(node.Params[0:4]))
	hi := math.Float32frombits(le32(node.Params[4:8]))
	unaryF32(node, func(x float32) float32 {
		if x < lo {
			return lo
		}
		if x > hi {
			return hi
		}
		return x
	})
}

// dispatchActivationRows runs a hwy/contrib/activation kernel (which
// already operates on whole slices) one row at a time, partitioned across
// workers the same way hwy/contrib/nn/parallel.go partitions rows across
// goroutines.
func dispatchActivationRows(ith, nth int, node *Tensor, fn func(in, out []float32)) {
	src := node.Src[0]
	ne0 := int(node.NE[0])
	r0, r1 := rowRange(rowsOf(node), ith, nth)
	out := make([]float32, ne0)
	for r := r0; r < r1; r++ {
		i1, i2, i3 := rowCoords(node, r)
		in := bytesToF32(src.Row(i1, i2, i3), ne0)
		fn(in, out)
		dst := node.Row(i1, i2, i3)
		for i, v := range out {
			putF32(dst[i*4:], v)
		}
	}
}

func dispatchBinaryRows(ith, nth int, node *Tensor, f func(a, b float32) float32) {
	src0, src1 := node.Src[0], node.Src[1]
	ne0 := int(node.NE[0])
	r0, r1 := rowRange(rowsOf(node), ith, nth)
	broadcast := src1.NE[1] <= 1 && src1.NE[2] <= 1 && src1.NE[3] <= 1
	for r := r0; r < r1; r++ {
		i1, i2, i3 := rowCoords(node, r)
		a := bytesToF32(src0.Row(i1, i2, i3), ne0)
		var b []float32
		if broadcast {
			b = bytesToF32(src1.Row(0, 0, 0), ne0)
		} else {
			b = bytesToF32(src1.Row(i1, i2, i3), ne0)
		}
		dst := node.Row(i1, i2, i3)
		for i := 0; i < ne0; i++ {
			putF32(dst[i*4:], f(a[i], b[i]))
		}
	}
}

func dispatchSum(node *Tensor) {
	src := node.Src[0]
	n := int(src.NElements())
	vals := bytesToF32(src.Data, n)
	var sum float32
	for _, v := range vals {
		sum += v
	}
	putF32(node.Data, sum)
}

func dispatchMean(node *Tensor) {
	src := node.Src[0]
	n := int(src.NElements())
	vals := bytesToF32(src.Data, n)
	var sum float32
	for _, v := range vals {
		sum += v
	}
	putF32(node.Data, sum/float32(max(n, 1)))
}

func dispatchArgmax(node *Tensor) {
	src := node.Src[0]
	n := int(src.NElements())
	vals := bytesToF32(src.Data, n)
	best := 0
	for i := 1; i < n; i++ {
		if vals[i] > vals[best] {
			best = i
		}
	}
	putI32(node.Data, int32(best))
}

func dispatchOutProd(ith, nth int, node *Tensor) {
	src0, src1 := node.Src[0], node.Src[1]
	ne0 := int(node.NE[0])
	a := bytesToF32(src0.Data, ne0)
	r0, r1 := rowRange(rowsOf(node), ith, nth)
	for r := r0; r < r1; r++ {
		i1, i2, i3 := rowCoords(node, r)
		bv := bytesToF32(src1.Row(i1, i2, i3), 1)[0]
		dst := node.Row(i1, i2, i3)
		for i := 0; i < ne0; i++ {
			putF32(dst[i*4:], a[i]*bv)
		}
	}
}

// dispatchNormRows implements LayerNorm (rms=false) and RMSNorm (rms=true)
// per row, eps read from Params[0:4] (defaulting to 1e-5 when absent).
func dispatchNormRows(ith, nth int, node *Tensor, rms bool) {
	src := node.Src[0]
	ne0 := int(node.NE[0])
	r0, r1 := rowRange(rowsOf(node), ith, nth)
	eps := float32(1e-5)
	if len(node.Params) >= 4 {
		eps = math.Float32frombits(le32(node.Params[0:4]))
	}
	for r := r0; r < r1; r++ {
		i1, i2, i3 := rowCoords(node, r)
		row := bytesToF32(src.Row(i1, i2, i3), ne0)
		var mean float32
		if !rms {
			for _, v := range row {
				mean += v
			}
			mean /= float32(ne0)
		}
		var variance float32
		for _, v := range row {
			d := v - mean
			variance += d * d
		}
		variance /= float32(ne0)
		inv := float32(1 / math.Sqrt(float64(variance)+float64(eps)))
		dst := node.Row(i1, i2, i3)
		for i, v := range row {
			putF32(dst[i*4:], (v-mean)*inv)
		}
	}
}

func dispatchSoftmaxRows(ith, nth int, node *Tensor) {
	src := node.Src[0]
	ne0 := int(node.NE[0])
	r0, r1 := rowRange(rowsOf(node), ith, nth)
	out := make([]float32, ne0)
	for r := r0; r < r1; r++ {
		i1, i2, i3 := rowCoords(node, r)
		row := bytesToF32(src.Row(i1, i2, i3), ne0)
		maxV := row[0]
		for _, v := range row {
			if v > maxV {
				maxV = v
			}
		}
		var sum float32
		for i, v := range row {
			e := float32(math.Exp(float64(v - maxV)))
			out[i] = e
			sum += e
		}
		inv := 1 / sum
		dst := node.Row(i1, i2, i3)
		for i := 0; i < ne0; i++ {
			putF32(dst[i*4:], out[i]*inv)
		}
	}
}

// dispatchRoPE applies pairwise rotary position embedding, splitting each
// row's first half against its second half. Params[0:4] carries the
// frequency base (default 10000) and the row's i1 coordinate is taken as
// its sequence position.
func dispatchRoPE(ith, nth int, node *Tensor) {
	src := node.Src[0]
	ne0 := int(node.NE[0])
	r0, r1 := rowRange(rowsOf(node), ith, nth)
	base := float32(10000)
	if len(node.Params) >= 4 {
		base = math.Float32frombits(le32(node.Params[0:4]))
	}
	half := ne0 / 2
	for r := r0; r < r1; r++ {
		i1, i2, i3 := rowCoords(node, r)
		row := bytesToF32(src.Row(i1, i2, i3), ne0)
		pos := float32(i1)
		dst := node.Row(i1, i2, i3)
		for i := 0; i < half; i++ {
			freq := float32(1 / math.Pow(float64(base), float64(2*i)/float64(ne0)))
			angle := pos * freq
			cs := float32(math.Cos(float64(angle)))
			sn := float32(math.Sin(float64(angle)))
			x0, x1 := row[i], row[i+half]
			putF32(dst[i*4:], x0*cs-x1*sn)
			putF32(dst[(i+half)*4:], x0*sn+x1*cs)
		}
	}
}

// dispatchAttention is a single-head scaled dot-product attention: Src[0]
// is queries, Src[1] keys, Src[2] values, Params[0:8] the (DK, DV) head
// dimensions as little-endian uint32s. Scratch is used as each worker's
// private query-row workspace, matching the (DK + 2*DV) per-thread budget
// PlanGraph reserves for OpAttention.
func dispatchAttention(ith, nth int, scratch []byte, node *Tensor) {
	assert(len(node.Params) >= 8, "graphexec: attention node missing DK/DV params")
	dk := int(le32(node.Params[0:4]))
	dv := int(le32(node.Params[4:8]))
	q, k, v := node.Src[0], node.Src[1], node.Src[2]
	seqLen := int(k.NE[1])
	scale := float32(1 / math.Sqrt(float64(dk)))

	perThreadBytes := 4 * (dk + 2*dv)
	region := scratch[ith*perThreadBytes : (ith+1)*perThreadBytes]

	r0, r1 := rowRange(rowsOf(q), ith, nth)
	scores := make([]float32, seqLen)
	out := make([]float32, dv)
	for r := r0; r < r1; r++ {
		i1, i2, i3 := rowCoords(q, r)
		qRow := bytesToF32(q.Row(i1, i2, i3), dk)
		qCopy := bytesToF32(region[:4*dk], dk)
		copy(qCopy, qRow)

		maxScore := float32(math.Inf(-1))
		for s := 0; s < seqLen; s++ {
			kRow := bytesToF32(k.Row(int64(s), i2, i3), dk)
			var dot float32
			for d := 0; d < dk; d++ {
				dot += qCopy[d] * kRow[d]
			}
			dot *= scale
			scores[s] = dot
			if dot > maxScore {
				maxScore = dot
			}
		}
		var sum float32
		for s := 0; s < seqLen; s++ {
			e := float32(math.Exp(float64(scores[s] - maxScore)))
			scores[s] = e
			sum += e
		}
		inv := 1 / sum
		for d := range out {
			out[d] = 0
		}
		for s := 0; s < seqLen; s++ {
			w := scores[s] * inv
			vRow := bytesToF32(v.Row(int64(s), i2, i3), dv)
			for d := 0; d < dv; d++ {
				out[d] += w * vRow[d]
			}
		}
		dst := node.Row(i1, i2, i3)
		for d := 0; d < dv; d++ {
			putF32(dst[d*4:], out[d])
		}
	}
}

// dispatchConvIm2Col is a direct (non-im2col-buffered) 1-D convolution.
// Params are (kernel, stride, pad, inCh, outCh) as little-endian uint32s;
// Src[0] is the input (inLen*inCh, channel-minor), Src[1] the weights
// (kernel*inCh*outCh). Output channels are striped across workers.
func dispatchConvIm2Col(ith, nth int, node *Tensor) {
	assert(len(node.Params) >= 20, "graphexec: conv node missing params")
	kernel := int(le32(node.Params[0:4]))
	stride := int(le32(node.Params[4:8]))
	pad := int(le32(node.Params[8:12]))
	inCh := int(le32(node.Params[12:16]))
	outCh := int(le32(node.Params[16:20]))

	src, w := node.Src[0], node.Src[1]
	inLen := int(src.NE[0]) / max(inCh, 1)
	outLen := (inLen+2*pad-kernel)/stride + 1

	in := bytesToF32(src.Data, inLen*inCh)
	wt := bytesToF32(w.Data, kernel*inCh*outCh)

	for oc := ith; oc < outCh; oc += nth {
		for o := 0; o < outLen; o++ {
			var sum float32
			start := o*stride - pad
			for kk := 0; kk < kernel; kk++ {
				ip := start + kk
				if ip < 0 || ip >= inLen {
					continue
				}
				for ic := 0; ic < inCh; ic++ {
					sum += in[ip*inCh+ic] * wt[(kk*inCh+ic)*outCh+oc]
				}
			}
			putF32(node.Data[(o*outCh+oc)*4:], sum)
		}
	}
}

// dispatchConvTranspose is the fractionally-strided counterpart of
// dispatchConvIm2Col, scattering each input position into the output
// range it contributes to. Output channels are striped across workers,
// the same way as dispatchConvIm2Col, so each worker's writes are
// disjoint.
func dispatchConvTranspose(ith, nth int, node *Tensor) {
	assert(len(node.Params) >= 20, "graphexec: conv-transpose node missing params")
	kernel := int(le32(node.Params[0:4]))
	stride := int(le32(node.Params[4:8]))
	pad := int(le32(node.Params[8:12]))
	inCh := int(le32(node.Params[12:16]))
	outCh := int(le32(node.Params[16:20]))

	src, w := node.Src[0], node.Src[1]
	inLen := int(src.NE[0]) / max(inCh, 1)
	outLen := int(node.NE[0]) / max(outCh, 1)

	in := bytesToF32(src.Data, inLen*inCh)
	wt := bytesToF32(w.Data, kernel*inCh*outCh)

	for oc := ith; oc < outCh; oc += nth {
		out := make([]float32, outLen)
		for ip := 0; ip < inLen; ip++ {
			for kk := 0; kk < kernel; kk++ {
				op := ip*stride + kk - pad
				if op < 0 || op >= outLen {
					continue
				}
				var sum float32
				for ic := 0; ic < inCh; ic++ {
					sum += in[ip*inCh+ic] * wt[(kk*inCh+ic)*outCh+oc]
				}
				out[op] += sum
			}
		}
		for o := 0; o < outLen; o++ {
			putF32(node.Data[(o*outCh+oc)*4:], out[o])
		}
	}
}

// dispatchPool1D/dispatchPool2D: Params[0] selects mode (0 = max, 1 =
// average), Params[4:8] the kernel size, Params[8:12] the stride.

func dispatchPool1D(node *Tensor) {
	assert(len(node.Params) >= 12, "graphexec: pool1d node missing params")
	mode := le32(node.Params[0:4])
	kernel := int(le32(node.Params[4:8]))
	stride := int(le32(node.Params[8:12]))

	src := node.Src[0]
	inLen := int(src.NE[0])
	outLen := int(node.NE[0])
	in := bytesToF32(src.Data, inLen)

	for o := 0; o < outLen; o++ {
		start := o * stride
		end := min(start+kernel, inLen)
		if mode == 0 {
			m := in[start]
			for i := start + 1; i < end; i++ {
				if in[i] > m {
					m = in[i]
				}
			}
			putF32(node.Data[o*4:], m)
		} else {
			var sum float32
			for i := start; i < end; i++ {
				sum += in[i]
			}
			putF32(node.Data[o*4:], sum/float32(end-start))
		}
	}
}

func dispatchPool2D(node *Tensor) {
	assert(len(node.Params) >= 12, "graphexec: pool2d node missing params")
	mode := le32(node.Params[0:4])
	kernel := int(le32(node.Params[4:8]))
	stride := int(le32(node.Params[8:12]))

	src := node.Src[0]
	inW, inH := int(src.NE[0]), int(src.NE[1])
	outW, outH := int(node.NE[0]), int(node.NE[1])
	in := bytesToF32(src.Data, inW*inH)

	for oy := 0; oy < outH; oy++ {
		for ox := 0; ox < outW; ox++ {
			sx, sy := ox*stride, oy*stride
			var m, sum float32
			first := true
			cnt := 0
			for ky := 0; ky < kernel && sy+ky < inH; ky++ {
				for kx := 0; kx < kernel && sx+kx < inW; kx++ {
					v := in[(sy+ky)*inW+(sx+kx)]
					if first || v > m {
						m = v
						first = false
					}
					sum += v
					cnt++
				}
			}
			if mode == 0 {
				putF32(node.Data[(oy*outW+ox)*4:], m)
			} else {
				putF32(node.Data[(oy*outW+ox)*4:], sum/float32(max(cnt, 1)))
			}
		}
	}
}

// dispatchGetRows gathers rows of Src[0] (kind F32) selected by the I32
// indices in Src[1] into node's rows, single-threaded per the preserved
// upstream rule (spec §9).
func dispatchGetRows(node *Tensor) {
	table, idx := node.Src[0], node.Src[1]
	ne0 := int(table.NE[0])
	n := int(idx.NElements())
	rowBytes := ne0 * 4
	for i := 0; i < n; i++ {
		id := readI32(idx.Data[i*4:])
		srcRow := table.Row(int64(id), 0, 0)
		dstRow := node.Row(int64(i), 0, 0)
		copy(dstRow[:rowBytes], srcRow[:rowBytes])
	}
}
