package luaruntime

// Allocator manages raw memory blocks on behalf of a VM state.
// Implementations must not panic; allocation failure is reported by
// returning nil. The allocator must stay alive for the whole life of
// every state that uses it, since the state keeps an opaque reference
// to it for its own buffer management.
type Allocator interface {
	// Allocate returns a fresh block of the given size, or nil.
	Allocate(size int) []byte
	// Reallocate resizes ptr to size, preserving contents up to the
	// smaller of the old and new sizes. Returns nil on failure.
	Reallocate(ptr []byte, size int) []byte
	// Deallocate releases a block of the given size.
	Deallocate(ptr []byte, size int)
}

// AllocFunc is the raw reallocation-style callback protocol:
// (userdata, existing block or nil, old size, new size) -> block or nil.
type AllocFunc func(ud any, ptr []byte, osize, nsize int) []byte

// Alloc adapts a host Allocator carried in ud to the raw callback
// protocol. A nil ud falls back to plain heap reallocation. Alloc never
// panics; a nil return means out of memory.
func Alloc(ud any, ptr []byte, osize, nsize int) []byte {
	a, _ := ud.(Allocator)
	if a == nil {
		return rawRealloc(ptr, nsize)
	}
	if nsize == 0 {
		if ptr != nil {
			a.Deallocate(ptr, osize)
		}
		return nil
	}
	if ptr != nil {
		return a.Reallocate(ptr, nsize)
	}
	return a.Allocate(nsize)
}

func rawRealloc(ptr []byte, nsize int) []byte {
	switch {
	case nsize == 0:
		return nil
	case ptr == nil:
		return make([]byte, nsize)
	case nsize <= cap(ptr):
		return ptr[:nsize]
	}
	next := make([]byte, nsize)
	copy(next, ptr)
	return next
}

// DefaultAllocator allocates from the Go heap and lets the collector
// reclaim released blocks.
type DefaultAllocator struct{}

func (DefaultAllocator) Allocate(size int) []byte {
	return make([]byte, size)
}

func (DefaultAllocator) Reallocate(ptr []byte, size int) []byte {
	if size <= cap(ptr) {
		return ptr[:size]
	}
	next := make([]byte, size)
	copy(next, ptr)
	return next
}

func (DefaultAllocator) Deallocate(ptr []byte, size int) {}
