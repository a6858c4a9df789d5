// Package pool recycles the scratch buffers codecs encode into, so that a
// burst of generic compression jobs does not allocate a fresh buffer for
// every upload.
package pool

import (
	"bytes"
	"sync"
)

// BufferPool hands out reset byte buffers with a preallocated capacity.
type BufferPool struct {
	size      int       // Initial capacity of each buffer.
	maxRetain int       // Buffers grown beyond this are dropped instead of pooled.
	pool      sync.Pool // Thread-safe pool of buffers.
}

// Creates a new buffer pool. Buffers start with size bytes of capacity and
// are kept for reuse while they stay under four times that.
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		size:      size,
		maxRetain: size * 4,
		pool: sync.Pool{
			New: func() any {
				return bytes.NewBuffer(make([]byte, 0, size))
			},
		},
	}
}

// Retrieves an empty buffer from the pool.
func (bp *BufferPool) Get() *bytes.Buffer {
	buf := bp.pool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// Returns a buffer to the pool. The caller must not touch buf afterwards.
func (bp *BufferPool) Put(buf *bytes.Buffer) {
	// A single large upload should not pin its buffer for the process lifetime.
	if buf.Cap() > bp.maxRetain {
		return
	}

	buf.Reset()
	bp.pool.Put(buf)
}

// Detach copies buf's contents into a new slice and returns buf to the pool.
func (bp *BufferPool) Detach(buf *bytes.Buffer) []byte {
	out := bytes.Clone(buf.Bytes())
	if out == nil {
		out = []byte{}
	}
	bp.Put(buf)
	return out
}
