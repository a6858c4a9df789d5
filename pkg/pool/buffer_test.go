package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetReturnsEmptyBuffer(t *testing.T) {
	bp := NewBufferPool(16)

	buf := bp.Get()
	buf.WriteString("leftover")
	bp.Put(buf)

	again := bp.Get()
	assert.Zero(t, again.Len())
	assert.GreaterOrEqual(t, again.Cap(), 0)
}

func TestDetachCopies(t *testing.T) {
	bp := NewBufferPool(16)

	buf := bp.Get()
	buf.WriteString("payload")
	out := bp.Detach(buf)
	assert.Equal(t, []byte("payload"), out)

	// Reusing the pooled buffer must not alter the detached slice.
	next := bp.Get()
	next.WriteString("XXXXXXX")
	assert.Equal(t, []byte("payload"), out)
}

func TestDetachEmpty(t *testing.T) {
	bp := NewBufferPool(16)
	out := bp.Detach(bp.Get())
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestPutDropsOversizedBuffers(t *testing.T) {
	bp := NewBufferPool(4)
	buf := bp.Get()
	buf.Write(make([]byte, 64))

	// Must not panic, and the next Get still hands out a clean buffer.
	bp.Put(buf)
	assert.Zero(t, bp.Get().Len())
}
