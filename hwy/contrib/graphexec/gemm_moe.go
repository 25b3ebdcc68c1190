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
	"sync/atomic"
	"unsafe"
)

// OpMatMulID's Tensor convention: Src[0] is the expert weight bank with
// NE = (K, M, numExperts, 1); Src[1] is the token activations with NE =
// (K, N, 1, 1); Src[2] is the int32 expert selection with NE =
// (numUsed, N, 1, 1). The output node has NE = (M, numUsed, N, 1): one
// M-row per (token, selected-expert) pair.

// matmulIDScratchSize returns the bytes OpMatMulID needs for its
// requantized token copy, the per-expert bucket counts and offsets, the
// (token, slot) row-mapping table, and one cache-line-padded atomic chunk
// counter per expert (spec §4.4).
func matmulIDScratchSize(node *Tensor) int {
	src0, src1, ids := node.Src[0], node.Src[1], node.Src[2]
	numExperts := int(src0.NE[2])
	k := int(src0.NE[0])
	n := int(src1.NE[1])
	numUsed := int(ids.NE[0])

	traits := Traits(src0.Kind)
	quant := 0
	if traits.VecDotType != src1.Kind {
		quant = RowSize(traits.VecDotType, k) * n
	}
	counts := 4 * numExperts
	offsets := 4 * numExperts
	rowMap := 8 * n * numUsed
	counters := CacheLineSize * numExperts

	return quant + counts + offsets + rowMap + counters + 4*CacheLineSize
}

func expertCounter(scratch []byte, off int) *atomic.Int32 {
	return (*atomic.Int32)(unsafe.Pointer(&scratch[off]))
}

// matmulIDOneChunk computes the sub-tiled block of one expert's chunk:
// every (token, slot) pair mapped to rows [ir1Start, ir1End) of that
// expert's bucket, against the M-row span [ir0Start, ir0End), mirroring
// matmulOneChunk but indexing the row mapping table directly instead of
// decomposing a flattened batch index (spec §4.4 Phase C, grounded on
// lm_ggml_compute_forward_mul_mat_id_one_chunk).
func matmulIDOneChunk(traits TypeTraits, node, src0 *Tensor, rowMapBuf []byte, base int, rhsRow func(token int) []byte, e, k int, ir0Start, ir0End, ir1Start, ir1End int) {
	var tmp [2 * matmulChunkSize]float32

	for iir1 := ir1Start; iir1 < ir1End; iir1 += matmulChunkSize {
		iir1End := min(iir1+matmulChunkSize, ir1End)
		for ir1 := iir1; ir1 < iir1End; ir1++ {
			pair := rowMapBuf[(base+ir1)*8:]
			token := int(readI32(pair))
			outSlot := int(readI32(pair[4:]))

			rhs := rhsRow(token)
			dst := node.Row(int64(outSlot), int64(token), 0)

			for iir0 := ir0Start; iir0 < ir0End; iir0 += matmulChunkSize {
				end0 := min(iir0+matmulChunkSize, ir0End)
				for ir0 := iir0; ir0 < end0; ir0++ {
					w0Row := src0.Row(int64(ir0), int64(e), 0)
					traits.VecDot(k, tmp[ir0-iir0:ir0-iir0+1], w0Row, rhs)
				}
				for ir0 := iir0; ir0 < end0; ir0++ {
					putF32(dst[ir0*4:], tmp[ir0-iir0])
				}
			}
		}
	}
}

// computeMatMulID implements spec §4.4: thread 0 builds a bucket-sorted
// (token, slot) row mapping from the expert-selection indices, then every
// expert's (M, matrix_row_counts[e]) output is tiled two-dimensionally
// and work-stolen independently, reusing the §4.3 Phase B tiling rule
// with one chunk counter per expert.
func computeMatMulID(ith, nth int, scratch []byte, pool *Pool, node *Tensor) {
	src0, src1, ids := node.Src[0], node.Src[1], node.Src[2]
	traits := Traits(src0.Kind)

	assert(node.IsMonotoneStride(), "graphexec: matmul_id dst must not be transposed")
	assert(src0.IsRowContiguous(), "graphexec: matmul_id src0 must be row-contiguous")
	assert(src1.IsRowContiguous(), "graphexec: matmul_id src1 must be row-contiguous")
	assert(ids.IsRowContiguous(), "graphexec: matmul_id ids must be row-contiguous")

	numExperts := int(src0.NE[2])
	k := int(src0.NE[0])
	m := int(src0.NE[1])
	n := int(src1.NE[1])
	numUsed := int(ids.NE[0])

	cursor := NewScratchCursor(scratch)

	requantize := traits.VecDotType != src1.Kind
	var quantBuf []byte
	rowSize := 0
	if requantize {
		rowSize = RowSize(traits.VecDotType, k)
		quantBuf = cursor.Take(rowSize*n, 8)
	}
	countsBuf := cursor.Take(4*numExperts, 8)
	offsetsBuf := cursor.Take(4*numExperts, 8)
	rowMapBuf := cursor.Take(8*n*numUsed, 8)
	countersBuf := cursor.Take(CacheLineSize*numExperts, CacheLineSize)

	if requantize {
		r0, r1 := rowRange(int64(n), ith, nth)
		for r := r0; r < r1; r++ {
			srcRow := bytesToF32(src1.Row(r, 0, 0), k)
			traits.FromFloat(srcRow, quantBuf[int(r)*rowSize:], k)
		}
	}

	if ith == 0 {
		for e := 0; e < numExperts; e++ {
			putI32(countsBuf[e*4:], 0)
		}
		for t := 0; t < n; t++ {
			idRow := ids.Row(int64(t), 0, 0)
			for s := 0; s < numUsed; s++ {
				e := int(readI32(idRow[s*4:]))
				putI32(countsBuf[e*4:], readI32(countsBuf[e*4:])+1)
			}
		}
		var running int32
		for e := 0; e < numExperts; e++ {
			putI32(offsetsBuf[e*4:], running)
			running += readI32(countsBuf[e*4:])
		}
		filled := make([]int32, numExperts)
		for t := 0; t < n; t++ {
			idRow := ids.Row(int64(t), 0, 0)
			for s := 0; s < numUsed; s++ {
				e := int(readI32(idRow[s*4:]))
				pos := int(readI32(offsetsBuf[e*4:])) + int(filled[e])
				filled[e]++
				putI32(rowMapBuf[pos*8:], int32(t))
				putI32(rowMapBuf[pos*8+4:], int32(s))
			}
		}
		// Seeded to nth, not 0: worker ith claims chunk ith directly
		// without an atomic op, same as the single-matmul chunk counter.
		for e := 0; e < numExperts; e++ {
			expertCounter(countersBuf, e*CacheLineSize).Store(int32(nth))
		}
	}

	pool.barrier.Wait(int32(nth))

	rhsRow := func(token int) []byte {
		if requantize {
			return quantBuf[token*rowSize:]
		}
		return src1.Row(int64(token), 0, 0)
	}

	for e := 0; e < numExperts; e++ {
		count := int(readI32(countsBuf[e*4:]))
		if count == 0 {
			continue
		}
		base := int(readI32(offsetsBuf[e*4:]))
		counter := expertCounter(countersBuf, e*CacheLineSize)

		nr0 := m
		nr1 := count
		nchunk0, nchunk1, dr0, dr1 := matmulTileGrid(nr0, nr1, nth, pool.isNUMA())
		totalChunks := nchunk0 * nchunk1

		chunk := int32(ith)
		for int(chunk) < totalChunks {
			c0 := int(chunk) % nchunk0
			c1 := int(chunk) / nchunk0

			ir0Start := dr0 * c0
			ir0End := min(ir0Start+dr0, nr0)
			ir1Start := dr1 * c1
			ir1End := min(ir1Start+dr1, nr1)

			matmulIDOneChunk(traits, node, src0, rowMapBuf, base, rhsRow, e, k, ir0Start, ir0End, ir1Start, ir1End)

			if nth >= totalChunks {
				break
			}
			chunk = counter.Add(1) - 1
		}
	}
}
