package memory

import (
	"sync"

	"github.com/pkg/errors"
)

const (
	// HeapStart is the physical base of the kernel heap.
	HeapStart uintptr = 0x80400000
	// HeapSize is the size of the kernel heap.
	HeapSize uintptr = 1024 * 1024
	// PageSize is the Sv39 base page size.
	PageSize uintptr = 4096
)

// ErrExhausted is returned when an allocation does not fit the remaining
// region.
var ErrExhausted = errors.New("memory: region exhausted")

// ErrAlignment is returned for an alignment that is not a power of two.
var ErrAlignment = errors.New("memory: alignment must be a power of two")

// Allocator hands out address ranges.
type Allocator interface {
	Allocate(size, align uintptr) (uintptr, error)
}

// Bump is a bump allocator over [start, end). Memory is never freed.
type Bump struct {
	mux   sync.Mutex
	start uintptr
	next  uintptr
	end   uintptr
}

// NewBump returns an allocator over size bytes from start.
func NewBump(start, size uintptr) *Bump {
	return &Bump{start: start, next: start, end: start + size}
}

// Allocate returns the address of a size byte block aligned to align.
func (b *Bump) Allocate(size, align uintptr) (uintptr, error) {
	if align == 0 {
		align = 1
	}
	if align&(align-1) != 0 {
		return 0, errors.Wrapf(ErrAlignment, "align %d", align)
	}
	b.mux.Lock()
	defer b.mux.Unlock()
	addr := (b.next + align - 1) &^ (align - 1)
	if addr < b.next {
		return 0, errors.Wrapf(ErrExhausted, "align %d overflows", align)
	}
	end := addr + size
	if end < addr || end > b.end {
		return 0, errors.Wrapf(ErrExhausted, "size %d at %#x, limit %#x", size, addr, b.end)
	}
	b.next = end
	return addr, nil
}

// Used returns the number of bytes consumed, alignment padding included.
func (b *Bump) Used() uintptr {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.next - b.start
}

// Remaining returns the number of bytes left.
func (b *Bump) Remaining() uintptr {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.end - b.next
}
