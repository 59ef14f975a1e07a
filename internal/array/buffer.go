package array

import (
	"sync"
	"sync/atomic"
)

// buffer is a reference-counted shared byte block backing one or more
// arrays. Construction primitives allocate fresh buffers; FromData
// wraps caller-owned bytes, making the array a co-owner rather than the
// sole owner. Release is last-holder-wins.
type buffer struct {
	data     []byte
	refCount atomic.Int32
	mu       sync.Mutex // for safe deallocation
}

// newBufferShared wraps caller-owned bytes without copying. The caller
// keeps its own reference; the buffer's count tracks array holders only.
func newBufferShared(data []byte) *buffer {
	buf := &buffer{data: data}
	buf.refCount.Store(1)
	return buf
}

// addRef increments the reference count (for view/clone operations).
func (b *buffer) addRef() {
	b.refCount.Add(1)
}

// release decrements the reference count and drops the byte slice when
// the last holder goes away.
func (b *buffer) release() {
	if b.refCount.Add(-1) == 0 {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.data = nil
	}
}

// isUnique reports whether exactly one holder remains.
func (b *buffer) isUnique() bool {
	return b.refCount.Load() == 1
}
