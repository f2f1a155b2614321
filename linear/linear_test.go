package linear

import (
	"context"
	"testing"

	"github.com/tetratelabs/wazero"

	"github.com/wippyai/borsh/codec"
	"github.com/wippyai/borsh/errors"
)

// memoryModule is a core module exporting a one page memory named "memory".
var memoryModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x05, 0x03, 0x01, 0x00, 0x01,
	0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
}

func newTestMemory(t *testing.T) *Memory {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { rt.Close(ctx) })

	mod, err := rt.Instantiate(ctx, memoryModule)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	mem := mod.ExportedMemory("memory")
	if mem == nil {
		t.Fatal("memory export not found")
	}
	return NewMemory(mem)
}

func TestMemory_ReadWrite(t *testing.T) {
	mem := newTestMemory(t)
	if mem.Size() != PageSize {
		t.Fatalf("Size = %d, want %d", mem.Size(), PageSize)
	}

	if err := mem.Write(100, []byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	data, err := mem.Read(100, 3)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "\x01\x02\x03" {
		t.Errorf("Read = % x", data)
	}

	if err := mem.WriteU32(200, 0xDEADBEEF); err != nil {
		t.Fatal(err)
	}
	v, err := mem.ReadU32(200)
	if err != nil || v != 0xDEADBEEF {
		t.Errorf("ReadU32 = %x, %v", v, err)
	}

	if _, err := mem.Read(PageSize-1, 2); !errors.IsKind(err, errors.KindOutOfBounds) {
		t.Errorf("err = %v, want out_of_bounds", err)
	}
	if err := mem.WriteU32(PageSize-2, 1); !errors.IsKind(err, errors.KindOutOfBounds) {
		t.Errorf("err = %v, want out_of_bounds", err)
	}
}

func TestBumpAllocator(t *testing.T) {
	mem := newTestMemory(t)
	alloc := NewBumpAllocator(mem, Config{})

	p1, err := alloc.Alloc(3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if p1 != DefaultBase {
		t.Errorf("first ptr = %d, want %d", p1, DefaultBase)
	}
	p2, err := alloc.Alloc(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if p2%8 != 0 || p2 < p1+3 {
		t.Errorf("second ptr = %d, want 8-aligned after %d", p2, p1+3)
	}

	alloc.Free(p1, 3, 1)
	if alloc.Used() != p2+8-DefaultBase {
		t.Errorf("freeing a non-final allocation changed usage to %d", alloc.Used())
	}
	alloc.Free(p2, 8, 8)
	if alloc.Used() != p2-DefaultBase {
		t.Errorf("Used = %d, want %d after rewinding", alloc.Used(), p2-DefaultBase)
	}

	alloc.Reset()
	if alloc.Used() != 0 {
		t.Errorf("Used = %d after Reset", alloc.Used())
	}

	if _, err := alloc.Alloc(4, 3); !errors.IsKind(err, errors.KindAllocation) {
		t.Errorf("err = %v, want allocation", err)
	}
}

func TestBumpAllocator_Grows(t *testing.T) {
	mem := newTestMemory(t)
	alloc := NewBumpAllocator(mem, Config{})

	ptr, err := alloc.Alloc(PageSize, 1)
	if err != nil {
		t.Fatal(err)
	}
	if mem.Size() != 2*PageSize {
		t.Errorf("Size = %d, want %d", mem.Size(), 2*PageSize)
	}
	if err := mem.Write(ptr+PageSize-1, []byte{1}); err != nil {
		t.Errorf("last byte not writable: %v", err)
	}
}

func TestBumpAllocator_Limit(t *testing.T) {
	mem := newTestMemory(t)
	alloc := NewBumpAllocator(mem, Config{Base: 16, Limit: 32})

	if _, err := alloc.Alloc(16, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := alloc.Alloc(1, 1); !errors.IsKind(err, errors.KindAllocation) {
		t.Errorf("err = %v, want allocation", err)
	}
}

func TestBumpAllocator_AddressSpaceEnd(t *testing.T) {
	mem := newTestMemory(t)
	alloc := NewBumpAllocator(mem, Config{Base: ^uint32(0) - 15})

	if _, err := alloc.Alloc(16, 1); !errors.IsKind(err, errors.KindAllocation) {
		t.Errorf("allocation ending at 4 GiB: err = %v, want allocation", err)
	}
	if used := alloc.Used(); used != 0 {
		t.Errorf("Used = %d, want 0", used)
	}
}

func TestWriteRead(t *testing.T) {
	mem := newTestMemory(t)
	alloc := NewBumpAllocator(mem, Config{})

	names := codec.Vec[string](codec.Utf8String)
	want := []string{"alpha", "", "gamma"}

	a, err := Write(mem, alloc, names, want)
	if err != nil {
		t.Fatal(err)
	}
	if a.Size != 4+(4+5)+4+(4+5) {
		t.Errorf("allocation size = %d", a.Size)
	}

	got, n, err := Read(mem, a.Ptr, names)
	if err != nil {
		t.Fatal(err)
	}
	if n != int(a.Size) {
		t.Errorf("consumed %d bytes, want %d", n, a.Size)
	}
	if len(got) != 3 || got[0] != "alpha" || got[1] != "" || got[2] != "gamma" {
		t.Errorf("Read = %q", got)
	}

	if _, _, err := Read(mem, mem.Size()+1, names); !errors.IsKind(err, errors.KindOutOfBounds) {
		t.Errorf("err = %v, want out_of_bounds", err)
	}
}

func TestWriteAll_RollsBack(t *testing.T) {
	mem := newTestMemory(t)
	alloc := NewBumpAllocator(mem, Config{})
	point := codec.NewArgsStruct("Point", []codec.Field{
		codec.NewField("x", codec.I32),
		codec.NewField("y", codec.I32),
	})

	list := NewAllocationList()
	defer list.FreeAndRelease(alloc)

	err := WriteAll(list, mem, alloc, point, []codec.Args{
		{"x": int32(1), "y": int32(2)},
		{"x": int32(3), "y": int32(4)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if list.Count() != 2 || alloc.Used() != 16 {
		t.Fatalf("Count = %d, Used = %d", list.Count(), alloc.Used())
	}

	err = WriteAll(list, mem, alloc, point, []codec.Args{
		{"x": int32(5), "y": int32(6)},
		{"x": int32(7)},
	})
	if !errors.IsKind(err, errors.KindFieldMissing) {
		t.Fatalf("err = %v, want field_missing", err)
	}
	if list.Count() != 2 || alloc.Used() != 16 {
		t.Errorf("after rollback Count = %d, Used = %d", list.Count(), alloc.Used())
	}

	p, _, err := Read(mem, list.All()[1].Ptr, point)
	if err != nil {
		t.Fatal(err)
	}
	if p["x"] != int32(3) || p["y"] != int32(4) {
		t.Errorf("second point = %v", p)
	}

	list.Free(alloc)
	if alloc.Used() != 0 {
		t.Errorf("Used = %d after Free", alloc.Used())
	}
	list.Reset()
}
