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

	"github.com/ajroetker/gocpu-exec/hwy/contrib/activation"
)

// Dispatch runs one graph node's operator for worker ith of nth. It is the
// sole entry point computeThread uses (spec §4.2 "Operator dispatch
// contract"): every op, regardless of thread count, is called exactly this
// way, collectively by every participating worker, and must not return
// until its share of the node's output is fully written.
func Dispatch(op OpKind, ith, nth int, scratch []byte, pool *Pool, node *Tensor) {
	switch op {
	case OpAbs:
		if ith == 0 {
			unaryF32(node, func(x float32) float32 { return float32(math.Abs(float64(x))) })
		}
	case OpNeg:
		if ith == 0 {
			unaryF32(node, func(x float32) float32 { return -x })
		}
	case OpStep:
		if ith == 0 {
			unaryF32(node, func(x float32) float32 {
				if x > 0 {
					return 1
				}
				return 0
			})
		}
	case OpTanh:
		if ith == 0 {
			unaryF32(node, func(x float32) float32 { return float32(math.Tanh(float64(x))) })
		}
	case OpClamp:
		if ith == 0 {
			dispatchClamp(node)
		}

	case OpSiLU:
		dispatchActivationRows(ith, nth, node, activation.BaseSiLU[float32])
	case OpGELU:
		dispatchActivationRows(ith, nth, node, activation.BaseGELU[float32])

	case OpSum:
		if ith == 0 {
			dispatchSum(node)
		}
	case OpMean:
		if ith == 0 {
			dispatchMean(node)
		}
	case OpArgmax:
		if ith == 0 {
			dispatchArgmax(node)
		}

	case OpAdd:
		dispatchBinaryRows(ith, nth, node, func(a, b float32) float32 { return a + b })
	case OpMul:
		dispatchBinaryRows(ith, nth, node, func(a, b float32) float32 { return a * b })

	case OpMatMul:
		computeMatMul(ith, nth, scratch, pool, node)
	case OpMatMulID:
		computeMatMulID(ith, nth, scratch, pool, node)
	case OpOutProd:
		dispatchOutProd(ith, nth, node)

	case OpNorm:
		dispatchNormRows(ith, nth, node, false)
	case OpRMSNorm:
		dispatchNormRows(ith, nth, node, true)

	case OpSoftmax:
		dispatchSoftmaxRows(ith, nth, node)

	case OpRoPE:
		dispatchRoPE(ith, nth, node)
	case OpAttention:
		dispatchAttention(ith, nth, scratch, node)

	case OpConvIm2Col:
		dispatchConvIm2Col(ith, nth, node)
	case OpConvTranspose:
		dispatchConvTranspose(ith, nth, node)

	case OpPool1D:
		if ith == 0 {
			dispatchPool1D(node)
		}
	case OpPool2D:
		if ith == 0 {
			dispatchPool2D(node)
		}

	case OpGetRows:
		if ith == 0 {
			dispatchGetRows(node)
		}

	case OpReshape, OpView, OpPermute, OpTranspose:
		// Shape-only ops move no data; NE/NB/Data aliasing is set up by
		// the caller that built the graph.

	case OpCustom:
		spec, ok := customOps[node.CustomOp]
		assert(ok, "graphexec: unregistered custom op %q", node.CustomOp)
		active := min(node.CustomThreads, nth)
		if ith < active {
			spec.Run(ith, active, scratch, node)
		}

	default:
		assert(false, "graphexec: unhandled op %v", op)
	}
}
