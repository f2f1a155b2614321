package linear

import (
	"strconv"

	"github.com/wippyai/borsh"
	"github.com/wippyai/borsh/codec"
	"github.com/wippyai/borsh/errors"
)

// Write encodes v into a fresh allocation. The codec is resolved against v
// first so exactly ByteSize bytes are allocated.
func Write[V any](mem borsh.Memory, alloc borsh.Allocator, c codec.Codec[V], v V) (Allocation, error) {
	fixed, err := codec.FixFromValue(c, v)
	if err != nil {
		return Allocation{}, err
	}
	size := fixed.ByteSize()
	buf := make([]byte, size)
	if err := fixed.Write(buf, 0, v); err != nil {
		return Allocation{}, err
	}

	ptr, err := alloc.Alloc(uint32(size), 1)
	if err != nil {
		return Allocation{}, err
	}
	a := Allocation{Ptr: ptr, Size: uint32(size), Align: 1}
	if err := mem.Write(ptr, buf); err != nil {
		alloc.Free(a.Ptr, a.Size, a.Align)
		return Allocation{}, err
	}
	return a, nil
}

// WriteAll writes each value in turn, recording the allocations in list.
// If any write fails every allocation made so far is freed.
func WriteAll[V any](list *AllocationList, mem borsh.Memory, alloc borsh.Allocator, c codec.Codec[V], vs []V) error {
	start := list.Count()
	for i, v := range vs {
		a, err := Write(mem, alloc, c, v)
		if err != nil {
			rollback := &AllocationList{allocations: list.allocations[start:]}
			rollback.Free(alloc)
			list.allocations = list.allocations[:start]
			return errors.AtPath(err, indexSegment(i))
		}
		list.Add(a)
	}
	return nil
}

// Read decodes a value starting at ptr. The codec is resolved from the bytes
// between ptr and the end of memory; the number of bytes consumed is returned.
func Read[V any](mem borsh.SizedMemory, ptr uint32, c codec.Codec[V]) (V, int, error) {
	var zero V
	size := mem.Size()
	if ptr > size {
		return zero, 0, errors.OutOfBounds(errors.PhaseMemory, nil, int(ptr), 0, int(size))
	}
	view, err := mem.Read(ptr, size-ptr)
	if err != nil {
		return zero, 0, err
	}
	return codec.Read(c, view, 0)
}

func indexSegment(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
