package linear

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/borsh"
	"github.com/wippyai/borsh/errors"
)

// DefaultBase is the first address handed out when Config.Base is zero.
// Address zero is reserved so that a zero pointer always means "none".
const DefaultBase = 1024

// Config holds configuration for a BumpAllocator
type Config struct {
	// Base is the first address to allocate from. 0 means DefaultBase.
	Base uint32

	// Limit caps the end of the allocated region in bytes.
	// 0 means no cap beyond what the memory can grow to.
	Limit uint32
}

// BumpAllocator hands out increasing addresses in linear memory, growing the
// memory a page at a time as needed. Freeing the most recent allocation
// rewinds; other frees are ignored until Reset.
type BumpAllocator struct {
	mem   *Memory
	mu    sync.Mutex
	base  uint32
	next  uint32
	limit uint32
}

var _ borsh.Allocator = (*BumpAllocator)(nil)

// NewBumpAllocator creates an allocator over mem
func NewBumpAllocator(mem *Memory, cfg Config) *BumpAllocator {
	base := cfg.Base
	if base == 0 {
		base = DefaultBase
	}
	return &BumpAllocator{mem: mem, base: base, next: base, limit: cfg.Limit}
}

func (a *BumpAllocator) Alloc(size, align uint32) (uint32, error) {
	if align == 0 {
		align = 1
	}
	if align&(align-1) != 0 {
		return 0, errors.New(errors.PhaseMemory, errors.KindAllocation).
			Detail("alignment %d is not a power of two", align).
			Build()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	ptr := (uint64(a.next) + uint64(align) - 1) &^ uint64(align-1)
	end := ptr + uint64(size)
	if end >= 1<<32 || (a.limit > 0 && end > uint64(a.limit)) {
		return 0, errors.AllocationFailed(errors.PhaseMemory, size, align)
	}
	if err := a.ensure(end); err != nil {
		return 0, err
	}
	a.next = uint32(end)
	return uint32(ptr), nil
}

// ensure grows memory so that it spans at least end bytes.
func (a *BumpAllocator) ensure(end uint64) error {
	have := uint64(a.mem.Size())
	if end <= have {
		return nil
	}
	pages := uint32((end - have + PageSize - 1) / PageSize)
	prev, ok := a.mem.Grow(pages)
	if !ok {
		return errors.New(errors.PhaseMemory, errors.KindAllocation).
			Detail("grow memory by %d pages", pages).
			Build()
	}
	if ce := Logger().Check(zap.DebugLevel, "memory grown"); ce != nil {
		ce.Write(zap.Uint32("from_pages", prev), zap.Uint32("delta_pages", pages))
	}
	return nil
}

func (a *BumpAllocator) Free(ptr, size, align uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if ptr >= a.base && ptr+size == a.next {
		a.next = ptr
	}
}

// Reset releases every allocation.
func (a *BumpAllocator) Reset() {
	a.mu.Lock()
	a.next = a.base
	a.mu.Unlock()
}

// Used returns the number of bytes between the base and the next free address.
func (a *BumpAllocator) Used() uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.next - a.base
}
