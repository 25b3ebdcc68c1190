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

import "github.com/ajroetker/gocpu-exec/hwy/contrib/workerpool"

// AdaptLegacyPool wraps a channel-based workerpool.Pool's simple
// ParallelFor as a CustomOpSpec. The node registering it must set
// Tensor.CustomThreads to 1: the graph executor then calls Run exactly
// once, and that one call fans out internally across lp's own persistent
// workers. This lets one-shot auxiliary stages that predate the
// barrier/poll executor — data loading, tokenization, or other
// preprocessing with no node-to-node dependency — run inside a Graph as
// an OpCustom node without being rewritten against the barrier-based
// contract.
func AdaptLegacyPool(lp *workerpool.Pool, n int, run func(start, end int, scratch []byte, node *Tensor)) CustomOpSpec {
	return CustomOpSpec{
		Run: func(_, _ int, scratch []byte, node *Tensor) {
			lp.ParallelFor(n, func(start, end int) {
				run(start, end, scratch, node)
			})
		},
	}
}
