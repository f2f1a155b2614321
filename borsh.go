package borsh

// Memory is a linear byte address space that encoded values are copied
// into and decoded out of.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	ReadU32(offset uint32) (uint32, error)
	WriteU32(offset uint32, value uint32) error
}

// MemorySizer provides the current size of linear memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// SizedMemory is a Memory that knows its own extent.
type SizedMemory interface {
	Memory
	MemorySizer
}

// Allocator allocates regions of linear memory
type Allocator interface {
	Alloc(size, align uint32) (uint32, error)
	Free(ptr, size, align uint32)
}
