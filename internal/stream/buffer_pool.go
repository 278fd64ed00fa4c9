package stream

import "sync"

// BufferPool recycles fixed size read buffers. Buffers with a capacity
// different from the requested size are dropped rather than resized.
type BufferPool struct {
	pool sync.Pool
}

var DefaultBufferPool BufferPool

func (bp *BufferPool) Get(size int) []byte {
	if item := bp.pool.Get(); item != nil {
		buf := *item.(*[]byte)
		if cap(buf) == size {
			return buf[:size]
		}
	}
	return make([]byte, size)
}

func (bp *BufferPool) Put(buf []byte) {
	buf = buf[:cap(buf)]
	bp.pool.Put(&buf)
}
