package linear

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/borsh"
	"github.com/wippyai/borsh/errors"
)

// PageSize is the WebAssembly page size in bytes.
const PageSize = 65536

// Memory wraps a wazero memory to implement borsh.SizedMemory.
type Memory struct {
	mem api.Memory
}

var _ borsh.SizedMemory = (*Memory)(nil)

// NewMemory wraps mem, typically obtained from api.Module.ExportedMemory.
func NewMemory(mem api.Memory) *Memory {
	return &Memory{mem: mem}
}

func (m *Memory) outOfBounds(offset uint32, length int) error {
	return errors.OutOfBounds(errors.PhaseMemory, nil, int(offset), length, int(m.mem.Size()))
}

func (m *Memory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, m.outOfBounds(offset, int(length))
	}
	return data, nil
}

func (m *Memory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return m.outOfBounds(offset, len(data))
	}
	return nil
}

func (m *Memory) ReadU32(offset uint32) (uint32, error) {
	val, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, m.outOfBounds(offset, 4)
	}
	return val, nil
}

func (m *Memory) WriteU32(offset uint32, value uint32) error {
	if !m.mem.WriteUint32Le(offset, value) {
		return m.outOfBounds(offset, 4)
	}
	return nil
}

// Size returns the current memory size in bytes.
func (m *Memory) Size() uint32 {
	return m.mem.Size()
}

// Grow adds delta pages and returns the previous size in pages.
func (m *Memory) Grow(delta uint32) (uint32, bool) {
	return m.mem.Grow(delta)
}
