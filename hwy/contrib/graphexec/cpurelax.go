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

import "runtime"

// cpuRelax yields the current goroutine's time slice while spinning on
// the barrier's passed counter or the pool's poll loop. The ported
// library issues a PAUSE (x86) or YIELD (aarch64) instruction here; Go
// does not expose either without assembly, so Gosched is the documented
// stdlib-only substitute (see DESIGN.md) — the Go scheduler multiplexes
// many more goroutines than the original pins OS threads, so yielding to
// it is the correct analogue rather than a tight empty loop.
func cpuRelax() {
	runtime.Gosched()
}
