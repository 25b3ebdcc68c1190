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
	"runtime"
	"sync"
	"sync/atomic"
)

// PollRoundsUnit is the per-poll-level iteration budget of the hybrid
// poll-then-sleep loop, matching the ported library's "1024 * 128 *
// poll" round count (spec §4.5 "after polling poll · 128·1024
// iterations").
const PollRoundsUnit = 128 * 1024

// PoolParams configures a new Pool.
type PoolParams struct {
	// NumThreads is the number of workers, including the caller's own
	// goroutine (worker 0). If <= 0, runtime.GOMAXPROCS(0) is used.
	NumThreads int

	// CPUMask, if non-empty, is applied to every worker at creation and
	// at every resume (spec §4.5 "Affinity and priority").
	CPUMask CPUMask

	// Priority is an OS scheduling priority hint, applied the same way
	// as CPUMask.
	Priority int32

	// Poll is the polling aggressiveness level; 0 disables polling and
	// workers sleep immediately when idle.
	Poll uint32

	// Paused, if true, creates the pool already paused (spec §4.5
	// "Lifecycle... possibly paused").
	Paused bool

	// Numa selects the topology strategy this pool's matmul tiling
	// should account for. NumaInit must have been called (it is
	// idempotent) for anything other than NumaDisabled to take effect.
	Numa NumaStrategy
}

// worker is per-goroutine state for one pool slot.
type worker struct {
	ith       int
	lastGraph int32
	pending   bool
	cpumask   CPUMask
}

// Pool is a persistent pool of worker goroutines implementing spec §4.5
// and §3's Thread pool data model. A Pool is created once, survives many
// graph executions, and is explicitly shut down with Free.
type Pool struct {
	mu   sync.Mutex
	cond *sync.Cond

	nThreadsMax int
	nThreadsCur atomic.Int32

	nGraph       atomic.Int32
	currentChunk atomic.Int32
	barrier      Barrier

	stop  atomic.Bool
	pause atomic.Bool
	abort atomic.Int32 // node index at which to stop, -1 means run all

	status atomic.Int32 // Status

	poll uint32
	prio int32

	workers []worker

	cgraph *Graph
	cplan  *Plan
	data   []byte

	numa atomic.Bool

	// Debug, if set, receives diagnostic messages (mirrors
	// LM_GGML_PRINT_DEBUG upstream, kept dependency-free).
	Debug func(format string, args ...any)

	wg sync.WaitGroup
}

// NewPool creates and starts a worker pool. Worker goroutines for ith in
// [1, NumThreads) are spawned immediately and persist until Free; the
// caller's own goroutine stands in for worker 0 during Compute.
func NewPool(params PoolParams) *Pool {
	n := params.NumThreads
	if n <= 0 {
		if physical, _ := cpuTopologySummary(); physical > 0 {
			n = physical
		} else {
			n = runtime.GOMAXPROCS(0)
		}
	}

	p := &Pool{
		nThreadsMax: n,
		poll:        params.Poll,
		prio:        params.Priority,
		workers:     make([]worker, n),
	}
	p.cond = sync.NewCond(&p.mu)
	p.abort.Store(-1)
	p.pause.Store(params.Paused)
	p.numa.Store(params.Numa != NumaDisabled && numaOK)

	for j := range p.workers {
		p.workers[j] = worker{ith: j, cpumask: params.CPUMask}
	}

	if !params.Paused {
		applyPriority(p.prio)
		applyAffinity(params.CPUMask)
	}

	p.wg.Add(n - 1)
	for j := 1; j < n; j++ {
		go p.secondaryLoop(j)
	}

	return p
}

// NumThreadsMax returns the number of workers the pool was created with.
func (p *Pool) NumThreadsMax() int {
	return p.nThreadsMax
}

// debugf forwards to Debug if set.
func (p *Pool) debugf(format string, args ...any) {
	if p.Debug != nil {
		p.Debug(format, args...)
	}
}

// kickoff wakes the pool to process a new graph, matching
// lm_ggml_graph_compute_kickoff. It must be called with the pool's mutex
// NOT held.
func (p *Pool) kickoff(nThreads int, g *Graph, cplan *Plan, data []byte) {
	p.mu.Lock()

	p.cgraph = g
	p.cplan = cplan
	p.data = data
	p.currentChunk.Store(0)
	p.abort.Store(-1)
	p.status.Store(int32(StatusSuccess))

	p.nThreadsCur.Store(int32(nThreads))
	p.nGraph.Add(1)

	if p.pause.Load() {
		applyPriority(p.prio)
		applyAffinity(p.workers[0].cpumask)
		p.pause.Store(false)
		p.cond.Broadcast()
	} else {
		p.cond.Broadcast()
	}

	p.mu.Unlock()
}

// Pause holds every worker in a condvar wait. Must be called outside
// operator execution (spec §4.5).
func (p *Pool) Pause() {
	p.mu.Lock()
	p.pause.Store(true)
	p.mu.Unlock()
}

// Resume releases a paused pool. Must be called outside operator
// execution.
func (p *Pool) Resume() {
	p.mu.Lock()
	p.pause.Store(false)
	p.cond.Broadcast()
	p.mu.Unlock()
}

// Free stops every worker, joins them, and releases the pool. Idempotent.
func (p *Pool) Free() {
	if p.stop.Swap(true) {
		return // already freed
	}
	p.mu.Lock()
	p.pause.Store(false)
	p.cond.Broadcast()
	p.mu.Unlock()
	p.wg.Wait()
}

// threadActive reports whether ith participates in the current graph.
func (p *Pool) threadActive(ith int) bool {
	return ith < int(p.nThreadsCur.Load())
}

// secondaryLoop is the body of worker goroutines 1..n-1: pause wait, stop
// check, hybrid poll-then-sleep for new work, then run the graph.
// Mirrors lm_ggml_graph_compute_secondary_thread.
func (p *Pool) secondaryLoop(ith int) {
	defer p.wg.Done()

	applyPriority(p.prio)
	applyAffinity(p.workers[ith].cpumask)

	w := &p.workers[ith]

	for {
		p.mu.Lock()
		for p.pause.Load() && !p.stop.Load() {
			p.cond.Wait()
		}
		p.mu.Unlock()

		if p.stop.Load() {
			return
		}

		p.checkForWork(ith, w)
		if w.pending {
			w.pending = false
			p.computeThread(ith)
		}
	}
}

// checkForWork polls, then falls back to a condvar wait, until new work
// (a changed nGraph generation this worker hasn't seen) is ready or the
// pool is stopping/pausing. Mirrors
// lm_ggml_graph_compute_check_for_work/poll_for_work/thread_ready.
func (p *Pool) checkForWork(ith int, w *worker) {
	ready := func() bool {
		if w.pending || p.stop.Load() || p.pause.Load() {
			return true
		}
		newGraph := p.nGraph.Load()
		if newGraph != w.lastGraph {
			w.pending = p.threadActive(ith)
			w.lastGraph = newGraph
		}
		return w.pending
	}

	if !p.threadActive(ith) {
		if ready() {
			return
		}
	} else {
		rounds := uint64(PollRoundsUnit) * uint64(p.poll)
		for i := uint64(0); i < rounds; i++ {
			if ready() {
				return
			}
			cpuRelax()
		}
	}

	p.mu.Lock()
	for !ready() {
		p.cond.Wait()
	}
	p.mu.Unlock()
}

// computeThread is the shared body of the graph node loop (spec §4.6),
// run by every participating worker including worker 0. Mirrors
// lm_ggml_graph_compute_thread.
func (p *Pool) computeThread(ith int) Status {
	g := p.cgraph
	cplan := p.cplan
	nth := int(p.nThreadsCur.Load())

	for nodeN, node := range g.Nodes {
		if int(p.abort.Load()) == nodeN {
			break
		}

		Dispatch(node.Op, ith, nth, p.data, p, node)

		if ith == 0 && cplan.AbortCallback != nil && cplan.AbortCallback() {
			p.abort.Store(int32(nodeN + 1))
			p.status.Store(int32(StatusAborted))
		}

		if nodeN+1 < len(g.Nodes) {
			p.barrier.Wait(int32(nth))
		}
	}

	p.barrier.Wait(int32(nth))

	return Status(p.status.Load())
}

// chunkSet stores value into the shared work-stealing chunk counter.
// Only the operator currently executing may call this, and only thread 0
// (spec §3 invariant on current_chunk).
func (p *Pool) chunkSet(value int32) {
	p.currentChunk.Store(value)
}

// chunkAdd atomically claims the next chunk index, returning the
// pre-increment value (spec §4.3 Phase C step 3).
func (p *Pool) chunkAdd(value int32) int32 {
	return p.currentChunk.Add(value) - value
}

// isNUMA reports whether NUMA awareness is currently active for this
// pool, consulted by the matmul engine's tiling override (spec §4.3
// Phase B "or if NUMA was detected").
func (p *Pool) isNUMA() bool {
	return p.numa.Load()
}
