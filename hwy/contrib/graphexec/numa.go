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
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// NumaStrategy selects how a Pool reasons about multi-socket memory
// locality when tiling the matmul engine (spec §4.3 Phase B's "or if
// NUMA was detected" override).
type NumaStrategy int

const (
	// NumaDisabled never consults topology; Pool.isNUMA always reports
	// false.
	NumaDisabled NumaStrategy = iota
	// NumaDistribute spreads workers evenly across detected nodes.
	NumaDistribute
	// NumaIsolate pins every worker to the node the calling thread
	// already runs on.
	NumaIsolate
	// NumaMirror assumes the workload is replicated identically on every
	// node and only affects affinity, not tiling.
	NumaMirror
)

// NumaTopology is the discovered shape of the machine's NUMA nodes.
type NumaTopology struct {
	Nodes       int
	CPUsPerNode [][]int
}

var (
	numaOnce sync.Once
	numaTopo NumaTopology
	numaOK   bool
)

// detectNumaTopology reads /sys/devices/system/node/node*/cpulist, the
// standard Linux sysfs NUMA layout. Returns ok=false on any non-Linux
// system or sandboxed environment without that hierarchy, in which case
// callers must treat the machine as single-node.
func detectNumaTopology() (NumaTopology, bool) {
	entries, err := os.ReadDir("/sys/devices/system/node")
	if err != nil {
		return NumaTopology{}, false
	}

	var nodeDirs []string
	for _, e := range entries {
		if e.IsDir() && len(e.Name()) > 4 && e.Name()[:4] == "node" {
			nodeDirs = append(nodeDirs, e.Name())
		}
	}
	if len(nodeDirs) == 0 {
		return NumaTopology{}, false
	}
	sort.Strings(nodeDirs)

	topo := NumaTopology{Nodes: len(nodeDirs)}
	for _, dir := range nodeDirs {
		raw, err := os.ReadFile(filepath.Join("/sys/devices/system/node", dir, "cpulist"))
		if err != nil {
			topo.CPUsPerNode = append(topo.CPUsPerNode, nil)
			continue
		}
		topo.CPUsPerNode = append(topo.CPUsPerNode, parseCPUList(string(raw)))
	}
	return topo, true
}

// parseCPUList parses the sysfs "a,b-c,d" CPU list format.
func parseCPUList(s string) []int {
	var out []int
	start, haveStart := -1, false
	num := 0
	haveNum := false
	flush := func() {
		if haveNum {
			if haveStart {
				for c := start; c <= num; c++ {
					out = append(out, c)
				}
			} else {
				out = append(out, num)
			}
		}
		start, haveStart = -1, false
		num, haveNum = 0, false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			num = num*10 + int(r-'0')
			haveNum = true
		case r == '-':
			start, haveStart = num, true
			num, haveNum = 0, false
		case r == ',' || r == '\n':
			flush()
		}
	}
	flush()
	return out
}

// NumaInit detects topology once per process (idempotent via sync.Once,
// matching the upstream library's one-shot lm_ggml_numa_init) and records
// whether NUMA-aware tiling should be used. A detection failure (non-
// Linux, sandboxed, or single-node) silently leaves NUMA support
// disabled rather than erroring — NUMA tiling is a throughput
// optimization, not a correctness requirement.
func NumaInit(strategy NumaStrategy) {
	numaOnce.Do(func() {
		if strategy == NumaDisabled {
			return
		}
		topo, ok := detectNumaTopology()
		if !ok || topo.Nodes <= 1 {
			return
		}
		numaTopo = topo
		numaOK = true
	})
}

// numaNodeForCPU returns which detected node owns cpu, or -1 if unknown.
func numaNodeForCPU(cpu int) int {
	for node, cpus := range numaTopo.CPUsPerNode {
		for _, c := range cpus {
			if c == cpu {
				return node
			}
		}
	}
	return -1
}

// cpuTopologySummary reports the physical/logical core split used to pick
// a default pool size when PoolParams.NumThreads is left at 0 and the
// caller wants physical-core parallelism rather than GOMAXPROCS (which
// counts hyperthreads). Grounds the klauspost/cpuid/v2 dependency named
// in the domain stack.
func cpuTopologySummary() (physical, logical int) {
	return cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores
}
