package linear

import (
	"sync"

	"github.com/wippyai/borsh"
)

// Allocation is a region of linear memory holding one encoded value.
type Allocation struct {
	Ptr   uint32
	Size  uint32
	Align uint32
}

// AllocationList tracks allocations that are freed together.
type AllocationList struct {
	allocations []Allocation
}

var allocationListPool = sync.Pool{
	New: func() any {
		return &AllocationList{allocations: make([]Allocation, 0, 8)}
	},
}

// NewAllocationList returns an empty list from the pool.
func NewAllocationList() *AllocationList {
	return allocationListPool.Get().(*AllocationList)
}

const maxPooledAllocationCapacity = 128

// Release returns the list to the pool. The list must not be used afterwards.
func (al *AllocationList) Release() {
	if cap(al.allocations) > maxPooledAllocationCapacity {
		return
	}
	al.Reset()
	allocationListPool.Put(al)
}

// FreeAndRelease frees every allocation in reverse order, then releases the list.
func (al *AllocationList) FreeAndRelease(allocator borsh.Allocator) {
	al.Free(allocator)
	al.Release()
}

func (al *AllocationList) Add(a Allocation) {
	al.allocations = append(al.allocations, a)
}

// Free frees allocations newest first, so a bump allocator rewinds fully.
func (al *AllocationList) Free(allocator borsh.Allocator) {
	if allocator == nil {
		return
	}
	for i := len(al.allocations) - 1; i >= 0; i-- {
		a := al.allocations[i]
		if a.Ptr != 0 {
			allocator.Free(a.Ptr, a.Size, a.Align)
		}
	}
}

func (al *AllocationList) Reset() {
	al.allocations = al.allocations[:0]
}

func (al *AllocationList) Count() int {
	return len(al.allocations)
}

// All returns the tracked allocations in insertion order.
func (al *AllocationList) All() []Allocation {
	return al.allocations
}
