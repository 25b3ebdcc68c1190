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

// CacheLineSize is the alignment used for per-expert atomic chunk
// counters (spec §4.4 "final region to the cache line") and for the
// planner's end-of-scratch padding (spec §4.7 "cacheline · n_threads").
const CacheLineSize = 64

// ScratchCursor is a bump allocator over a caller-supplied scratch
// buffer. Operators partition their scratch through it; a cursor's
// lifetime is exactly one operator invocation (spec §3 "partition
// lifetime equals one operator invocation").
type ScratchCursor struct {
	buf []byte
	off int
}

// NewScratchCursor wraps buf for partitioning.
func NewScratchCursor(buf []byte) *ScratchCursor {
	return &ScratchCursor{buf: buf}
}

// Take returns the next n bytes of the cursor's buffer, aligned to align
// bytes (align must be a power of two). Panics if the buffer is
// exhausted — this is the guard Testable Property #2 relies on ("plan's
// work_size is sufficient... instrument with guard bytes"): a caller that
// sizes its scratch via Plan.WorkSize will never trip it.
func (c *ScratchCursor) Take(n, align int) []byte {
	aligned := (c.off + align - 1) &^ (align - 1)
	assert(aligned+n <= len(c.buf), "graphexec: scratch overrun: need %d bytes at offset %d, have %d", n, aligned, len(c.buf))
	out := c.buf[aligned : aligned+n]
	c.off = aligned + n
	return out
}

// Offset returns the number of bytes consumed so far, including padding.
func (c *ScratchCursor) Offset() int {
	return c.off
}
