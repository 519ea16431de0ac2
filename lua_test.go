package luaruntime

import (
	"bytes"
	"testing"
)

type recordingAllocator struct {
	allocs   int
	reallocs int
	frees    int
	failAll  bool
}

func (a *recordingAllocator) Allocate(size int) []byte {
	a.allocs++
	if a.failAll {
		return nil
	}
	return make([]byte, size)
}

func (a *recordingAllocator) Reallocate(ptr []byte, size int) []byte {
	a.reallocs++
	if a.failAll {
		return nil
	}
	next := make([]byte, size)
	copy(next, ptr)
	return next
}

func (a *recordingAllocator) Deallocate(ptr []byte, size int) {
	a.frees++
}

func TestAlloc_FourCases(t *testing.T) {
	a := &recordingAllocator{}

	// Fresh allocation: nil block, nonzero size.
	block := Alloc(a, nil, 0, 16)
	if len(block) != 16 {
		t.Fatalf("allocate: len = %d, want 16", len(block))
	}
	if a.allocs != 1 {
		t.Errorf("allocs = %d, want 1", a.allocs)
	}

	// Resize: existing block, nonzero size.
	copy(block, "0123456789abcdef")
	grown := Alloc(a, block, 16, 32)
	if len(grown) != 32 {
		t.Fatalf("reallocate: len = %d, want 32", len(grown))
	}
	if !bytes.Equal(grown[:16], []byte("0123456789abcdef")) {
		t.Error("reallocate lost the block prefix")
	}
	if a.reallocs != 1 {
		t.Errorf("reallocs = %d, want 1", a.reallocs)
	}

	// Free: existing block, zero size.
	if got := Alloc(a, grown, 32, 0); got != nil {
		t.Errorf("free returned %v, want nil", got)
	}
	if a.frees != 1 {
		t.Errorf("frees = %d, want 1", a.frees)
	}

	// Degenerate free: nil block, zero size. No callback fires.
	before := a.frees
	if got := Alloc(a, nil, 0, 0); got != nil {
		t.Errorf("nil free returned %v, want nil", got)
	}
	if a.frees != before {
		t.Error("degenerate free reached the allocator")
	}
}

func TestAlloc_FailureReturnsNil(t *testing.T) {
	a := &recordingAllocator{failAll: true}
	if got := Alloc(a, nil, 0, 8); got != nil {
		t.Errorf("Alloc under failing allocator = %v, want nil", got)
	}
}

func TestAlloc_NilUserdataFallsBack(t *testing.T) {
	block := Alloc(nil, nil, 0, 8)
	if len(block) != 8 {
		t.Fatalf("raw allocate: len = %d, want 8", len(block))
	}
	copy(block, "raw-data")
	grown := Alloc(nil, block, 8, 12)
	if string(grown[:8]) != "raw-data" {
		t.Error("raw reallocate lost contents")
	}
	if got := Alloc(nil, grown, 12, 0); got != nil {
		t.Errorf("raw free returned %v, want nil", got)
	}
}

func TestDefaultAllocator(t *testing.T) {
	var a DefaultAllocator

	block := a.Allocate(4)
	if len(block) != 4 {
		t.Fatalf("Allocate: len = %d, want 4", len(block))
	}
	copy(block, "abcd")

	shrunk := a.Reallocate(block, 2)
	if string(shrunk) != "ab" {
		t.Errorf("shrink = %q, want ab", shrunk)
	}
	grown := a.Reallocate(shrunk, 8)
	if len(grown) != 8 || string(grown[:2]) != "ab" {
		t.Errorf("grow = %q (len %d), want ab prefix and len 8", grown[:2], len(grown))
	}

	a.Deallocate(grown, 8) // no-op, must not panic
}
