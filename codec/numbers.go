package codec

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/borsh/errors"
)

// number is a little-endian fixed-width numeric codec.
type number[V any] struct {
	family Family
	size   int
	put    func(b []byte, v V)
	get    func(b []byte) V
}

func (n *number[V]) ByteSize() int       { return n.size }
func (n *number[V]) Description() string { return string(n.family) }

func (n *number[V]) Shape() Shape {
	return Shape{Family: n.family, Description: string(n.family), Fixed: true, ByteSize: n.size}
}

func (n *number[V]) Write(buf []byte, offset int, v V) error {
	if err := checkRange(errors.PhaseEncode, buf, offset, n.size, string(n.family)); err != nil {
		return err
	}
	n.put(buf[offset:], v)
	return nil
}

func (n *number[V]) Read(buf []byte, offset int) (V, error) {
	if err := checkRange(errors.PhaseDecode, buf, offset, n.size, string(n.family)); err != nil {
		var zero V
		return zero, err
	}
	return n.get(buf[offset:]), nil
}

var le = binary.LittleEndian

var (
	U8 Fixed[uint8] = &number[uint8]{
		family: FamilyU8, size: 1,
		put: func(b []byte, v uint8) { b[0] = v },
		get: func(b []byte) uint8 { return b[0] },
	}
	U16 Fixed[uint16] = &number[uint16]{
		family: FamilyU16, size: 2,
		put: func(b []byte, v uint16) { le.PutUint16(b, v) },
		get: func(b []byte) uint16 { return le.Uint16(b) },
	}
	U32 Fixed[uint32] = &number[uint32]{
		family: FamilyU32, size: 4,
		put: func(b []byte, v uint32) { le.PutUint32(b, v) },
		get: func(b []byte) uint32 { return le.Uint32(b) },
	}
	U64 Fixed[uint64] = &number[uint64]{
		family: FamilyU64, size: 8,
		put: func(b []byte, v uint64) { le.PutUint64(b, v) },
		get: func(b []byte) uint64 { return le.Uint64(b) },
	}
	I8 Fixed[int8] = &number[int8]{
		family: FamilyI8, size: 1,
		put: func(b []byte, v int8) { b[0] = uint8(v) },
		get: func(b []byte) int8 { return int8(b[0]) },
	}
	I16 Fixed[int16] = &number[int16]{
		family: FamilyI16, size: 2,
		put: func(b []byte, v int16) { le.PutUint16(b, uint16(v)) },
		get: func(b []byte) int16 { return int16(le.Uint16(b)) },
	}
	I32 Fixed[int32] = &number[int32]{
		family: FamilyI32, size: 4,
		put: func(b []byte, v int32) { le.PutUint32(b, uint32(v)) },
		get: func(b []byte) int32 { return int32(le.Uint32(b)) },
	}
	I64 Fixed[int64] = &number[int64]{
		family: FamilyI64, size: 8,
		put: func(b []byte, v int64) { le.PutUint64(b, uint64(v)) },
		get: func(b []byte) int64 { return int64(le.Uint64(b)) },
	}
	F32 Fixed[float32] = &number[float32]{
		family: FamilyF32, size: 4,
		put: func(b []byte, v float32) { le.PutUint32(b, math.Float32bits(v)) },
		get: func(b []byte) float32 { return math.Float32frombits(le.Uint32(b)) },
	}
	F64 Fixed[float64] = &number[float64]{
		family: FamilyF64, size: 8,
		put: func(b []byte, v float64) { le.PutUint64(b, math.Float64bits(v)) },
		get: func(b []byte) float64 { return math.Float64frombits(le.Uint64(b)) },
	}
)

// Bool encodes false as 0 and true as 1. Any other byte fails to decode.
var Bool Fixed[bool] = boolCodec{}

type boolCodec struct{}

func (boolCodec) ByteSize() int       { return 1 }
func (boolCodec) Description() string { return string(FamilyBool) }

func (boolCodec) Shape() Shape {
	return Shape{Family: FamilyBool, Description: string(FamilyBool), Fixed: true, ByteSize: 1}
}

func (boolCodec) Write(buf []byte, offset int, v bool) error {
	if err := checkRange(errors.PhaseEncode, buf, offset, 1, string(FamilyBool)); err != nil {
		return err
	}
	buf[offset] = 0
	if v {
		buf[offset] = 1
	}
	return nil
}

func (boolCodec) Read(buf []byte, offset int) (bool, error) {
	if err := checkRange(errors.PhaseDecode, buf, offset, 1, string(FamilyBool)); err != nil {
		return false, err
	}
	switch b := buf[offset]; b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.MalformedTag(errors.PhaseDecode, nil, b, string(FamilyBool))
	}
}
