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

// Compute runs g to completion on pool, using plan's thread count and
// scratch allocation (spec §4.6). The caller's own goroutine stands in
// for worker 0: Compute blocks until every node has run (or the graph
// was aborted), wakes the pool's secondary workers via kickoff, does
// worker 0's own share of the work inline, and returns the resulting
// Status. It never starts or stops any goroutine itself.
func Compute(pool *Pool, g *Graph, plan *Plan, scratch []byte) Status {
	assert(pool != nil, "graphexec: Compute called with nil pool")
	assert(g != nil, "graphexec: Compute called with nil graph")
	assert(plan != nil, "graphexec: Compute called with nil plan")
	assert(len(scratch) >= plan.WorkSize, "graphexec: scratch too small: have %d, need %d", len(scratch), plan.WorkSize)

	nThreads := plan.NThreads
	if nThreads <= 0 {
		nThreads = 1
	}
	nThreads = min(nThreads, pool.NumThreadsMax())

	pool.kickoff(nThreads, g, plan, scratch)
	return pool.computeThread(0)
}
