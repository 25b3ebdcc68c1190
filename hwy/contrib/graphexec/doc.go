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

// Package graphexec is a persistent, multi-threaded graph executor for the
// kernels in hwy and hwy/contrib. A client builds a Graph of Tensor nodes,
// asks a Planner for a Plan (required scratch bytes and an effective
// thread count), supplies a scratch buffer, then calls Compute.
//
// Unlike hwy/contrib/workerpool's disposable fork-join Pool, graphexec.Pool
// is a persistent pool of goroutines that survives across many graph
// executions. Workers hybrid poll-then-sleep between graphs, coordinate
// through a single allocation-free Barrier, and claim matmul/MoE tiles
// through an atomic work-stealing chunk counter — the same design
// ggml-cpu.c uses for CPU inference of large language models.
//
// Usage:
//
//	pool := graphexec.NewPool(graphexec.PoolParams{NumThreads: runtime.GOMAXPROCS(0)})
//	defer pool.Free()
//
//	plan := graphexec.PlanGraph(graph, pool.NumThreadsMax(), pool)
//	scratch := make([]byte, plan.WorkSize)
//	status := graphexec.Compute(pool, graph, plan, scratch)
package graphexec
