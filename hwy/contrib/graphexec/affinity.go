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

// CPUMask selects which logical CPUs a worker may run on. An empty mask
// means "no affinity preference" and is a no-op wherever it is applied.
type CPUMask []int

// Valid reports whether m names at least one CPU.
func (m CPUMask) Valid() bool {
	return len(m) > 0
}

// applyAffinity pins the calling OS thread to mask, best-effort. Platform
// support is dispatched per-file the same way hwy/dispatch_amd64.go,
// dispatch_arm64.go and dispatch_other.go split SIMD detection by
// GOARCH/GOOS — here the split is by GOOS, since affinity is a kernel
// facility rather than an instruction-set one.
func applyAffinity(mask CPUMask) {
	if !mask.Valid() {
		return
	}
	platformApplyAffinity(mask)
}

// applyPriority requests OS scheduling class prio for the calling thread,
// best-effort. prio follows the ported library's convention: 0 is normal,
// positive values request higher priority where the platform supports it.
func applyPriority(prio int32) {
	if prio == 0 {
		return
	}
	platformApplyPriority(prio)
}
