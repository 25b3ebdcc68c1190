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

//go:build !linux

package graphexec

// platformApplyAffinity is a no-op outside Linux: neither Darwin nor
// Windows expose a portable equivalent of sched_setaffinity through the
// standard toolchain this module depends on.
func platformApplyAffinity(CPUMask) {}

// platformApplyPriority is a no-op outside Linux, for the same reason.
func platformApplyPriority(int32) {}
