// Package scratch provides a rewindable bump arena for per-invocation
// temporary buffers.
//
// The arena backs one operator invocation at a time: it is rewound at the
// start of the call, grown to the exact byte total the call needs, then
// carved into non-overlapping typed views in allocation order. The backing
// buffer never shrinks, so a call sequence with a decreasing footprint incurs
// no reallocation after the high-water mark is established.
//
// The arena is not reentrant. Concurrent invocations sharing one arena must
// be serialized by the caller.
package scratch

import (
	"fmt"
	"unsafe"

	"github.com/pkg/errors"
)

// Arena is a rewindable bump allocator over a single reusable byte buffer.
type Arena struct {
	buf    []byte
	offset int // bump pointer for the current invocation
	size   int // bytes reserved for the current invocation
}

// New creates an empty arena. The backing buffer is allocated lazily by the
// first Grow.
func New() *Arena {
	return &Arena{}
}

// Rewind resets the bump pointer and the per-invocation reservation.
// Previously carved views become invalid.
func (a *Arena) Rewind() {
	a.offset = 0
	a.size = 0
}

// Grow reserves byteSize bytes for the current invocation, reallocating the
// backing buffer only when the request exceeds its capacity. Returns an
// error if the request is invalid or the allocation cannot be satisfied.
func (a *Arena) Grow(byteSize int) (err error) {
	if byteSize < 0 {
		return errors.Errorf("scratch: negative grow size %d", byteSize)
	}
	if byteSize > len(a.buf) {
		defer func() {
			if r := recover(); r != nil {
				err = errors.Errorf("scratch: cannot grow arena to %d bytes: %v", byteSize, r)
			}
		}()
		a.buf = make([]byte, byteSize)
	}
	a.size = byteSize
	return nil
}

// Capacity returns the size of the backing buffer in bytes.
func (a *Arena) Capacity() int {
	return len(a.buf)
}

// Reserved returns the byte size reserved by the last Grow.
func (a *Arena) Reserved() int {
	return a.size
}

// Float32 carves the next n float32 elements out of the reserved region and
// returns them as a typed view. A zero-sized request returns nil. Carving
// past the reserved size is a sizing bug in the caller and panics.
func (a *Arena) Float32(n int) []float32 {
	if n == 0 {
		return nil
	}
	byteSize := n * 4
	if a.offset+byteSize > a.size {
		panic(fmt.Sprintf("scratch: carve of %d bytes at offset %d exceeds reservation %d",
			byteSize, a.offset, a.size))
	}
	view := unsafe.Slice((*float32)(unsafe.Pointer(&a.buf[a.offset])), n)
	a.offset += byteSize
	return view
}
