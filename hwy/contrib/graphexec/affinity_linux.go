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

//go:build linux

package graphexec

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// platformApplyAffinity pins the calling goroutine's underlying OS thread
// to the CPUs named by mask via sched_setaffinity(2). The goroutine is
// locked to its OS thread first, since affinity is a property of the
// thread, not the goroutine.
func platformApplyAffinity(mask CPUMask) {
	runtime.LockOSThread()

	var set unix.CPUSet
	set.Zero()
	for _, cpu := range mask {
		if cpu >= 0 {
			set.Set(cpu)
		}
	}

	// Best-effort: a sandboxed or restricted process may not be allowed
	// to change its own affinity. Ignore the error, matching the ported
	// library's own "affinity is an optimization hint" treatment.
	_ = unix.SchedSetaffinity(0, &set)
}

// platformApplyPriority requests a scheduling priority via setpriority(2).
// Negative "nice" values raise priority (require CAP_SYS_NICE); failures
// are ignored for the same reason as platformApplyAffinity.
func platformApplyPriority(prio int32) {
	_ = unix.Setpriority(unix.PRIO_PROCESS, 0, int(-prio))
}
