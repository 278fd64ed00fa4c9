package stream

import "testing"

func TestBufferPool_GetSize(t *testing.T) {
	var pool BufferPool

	buf := pool.Get(16)
	if len(buf) != 16 {
		t.Fatalf("expected len 16, got %d", len(buf))
	}
	pool.Put(buf[:3])

	again := pool.Get(16)
	if len(again) != 16 {
		t.Fatalf("expected len 16 after reuse, got %d", len(again))
	}

	other := pool.Get(32)
	if len(other) != 32 {
		t.Fatalf("expected len 32, got %d", len(other))
	}
}
