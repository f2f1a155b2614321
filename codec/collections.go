package codec

import (
	"fmt"
	"unicode/utf8"

	"github.com/wippyai/borsh/errors"
)

const lengthPrefixSize = 4

func readLength(phase errors.Phase, buf []byte, offset int, codec string) (int, error) {
	if err := checkRange(phase, buf, offset, lengthPrefixSize, codec); err != nil {
		return 0, err
	}
	return int(le.Uint32(buf[offset:])), nil
}

// Vec returns a codec for a variable number of elements: a u32 element count
// followed by the elements back to back.
func Vec[T any](elem Codec[T]) Fixable[[]T] {
	return &vecCodec[T]{elem: elem}
}

type vecCodec[T any] struct {
	elem Codec[T]
}

func (c *vecCodec[T]) Description() string {
	return fmt.Sprintf("Vec<%s>", c.elem.Description())
}

func (c *vecCodec[T]) Shape() Shape {
	return Shape{Family: FamilyVec, Description: c.Description(), Elem: elemShape(c.elem)}
}

func (c *vecCodec[T]) body(elems []Fixed[T]) Fixed[[]T] {
	return newElementsArray(c.Description(), elems)
}

func (c *vecCodec[T]) FixFromBytes(buf []byte, offset int) (Fixed[[]T], error) {
	n, err := readLength(errors.PhaseResolve, buf, offset, c.Description())
	if err != nil {
		return nil, err
	}
	start := offset + lengthPrefixSize
	if err := checkCount(errors.PhaseResolve, buf, start, n, c.Description()); err != nil {
		return nil, err
	}
	if f, ok := c.elem.(Fixed[T]); ok {
		body := FixedSizeArray(f, n)
		if err := checkRange(errors.PhaseResolve, buf, start, body.ByteSize(), c.Description()); err != nil {
			return nil, err
		}
		return &lengthPrefixed[T]{body: body, n: n, label: c.Description()}, nil
	}
	elems, err := fixElementsFromBytes(c.elem, buf, start, n, c.Description())
	if err != nil {
		return nil, err
	}
	return &lengthPrefixed[T]{body: c.body(elems), n: n, label: c.Description()}, nil
}

func (c *vecCodec[T]) FixFromValue(v []T) (Fixed[[]T], error) {
	if f, ok := c.elem.(Fixed[T]); ok {
		return &lengthPrefixed[T]{body: FixedSizeArray(f, len(v)), n: len(v), label: c.Description()}, nil
	}
	elems, err := fixElementsFromValue(c.elem, v)
	if err != nil {
		return nil, err
	}
	return &lengthPrefixed[T]{body: c.body(elems), n: len(v), label: c.Description()}, nil
}

func (c *vecCodec[T]) Write(buf []byte, offset int, v []T) error {
	return writeFixable[[]T](c, buf, offset, v)
}

func (c *vecCodec[T]) Read(buf []byte, offset int) ([]T, error) {
	return readFixable[[]T](c, buf, offset)
}

// lengthPrefixed is a resolved Vec: a u32 count of exactly n followed by body.
type lengthPrefixed[T any] struct {
	body  Fixed[[]T]
	n     int
	label string
}

func (c *lengthPrefixed[T]) ByteSize() int { return lengthPrefixSize + c.body.ByteSize() }

func (c *lengthPrefixed[T]) Description() string {
	return fmt.Sprintf("%s(%d)[4 + %d]", c.label, c.n, c.body.ByteSize())
}

func (c *lengthPrefixed[T]) Shape() Shape {
	body := c.body.(Shaper).Shape()
	return Shape{
		Family:      FamilyVec,
		Description: c.Description(),
		Fixed:       true,
		ByteSize:    c.ByteSize(),
		Len:         c.n,
		Elem:        body.Elem,
	}
}

func (c *lengthPrefixed[T]) Write(buf []byte, offset int, v []T) error {
	if len(v) != c.n {
		return errors.ShapeMismatch(errors.PhaseEncode, nil, c.Description(),
			fmt.Sprintf("want %d elements, got %d", c.n, len(v)))
	}
	if err := checkRange(errors.PhaseEncode, buf, offset, c.ByteSize(), c.Description()); err != nil {
		return err
	}
	le.PutUint32(buf[offset:], uint32(c.n))
	return c.body.Write(buf, offset+lengthPrefixSize, v)
}

func (c *lengthPrefixed[T]) Read(buf []byte, offset int) ([]T, error) {
	n, err := readLength(errors.PhaseDecode, buf, offset, c.Description())
	if err != nil {
		return nil, err
	}
	if n != c.n {
		return nil, errors.ShapeMismatch(errors.PhaseDecode, nil, c.Description(),
			fmt.Sprintf("length prefix %d does not match resolved length %d", n, c.n))
	}
	return c.body.Read(buf, offset+lengthPrefixSize)
}

// Utf8String encodes a string as a u32 byte length followed by its UTF-8 bytes.
var Utf8String Fixable[string] = stringCodec{}

type stringCodec struct{}

func (stringCodec) Description() string { return "Utf8String" }

func (stringCodec) Shape() Shape {
	return Shape{Family: FamilyString, Description: "Utf8String"}
}

func (c stringCodec) FixFromBytes(buf []byte, offset int) (Fixed[string], error) {
	n, err := readLength(errors.PhaseResolve, buf, offset, c.Description())
	if err != nil {
		return nil, err
	}
	return FixedSizeString(n), nil
}

func (stringCodec) FixFromValue(v string) (Fixed[string], error) {
	return FixedSizeString(len(v)), nil
}

func (c stringCodec) Write(buf []byte, offset int, v string) error {
	return writeFixable[string](c, buf, offset, v)
}

func (c stringCodec) Read(buf []byte, offset int) (string, error) {
	return readFixable[string](c, buf, offset)
}

// FixedSizeString returns the codec for a length prefixed string of exactly n bytes.
func FixedSizeString(n int) Fixed[string] {
	return &sizedString{n: n}
}

type sizedString struct {
	n int
}

func (c *sizedString) ByteSize() int { return lengthPrefixSize + c.n }

func (c *sizedString) Description() string {
	return fmt.Sprintf("Utf8String(4 + %d)", c.n)
}

func (c *sizedString) Shape() Shape {
	return Shape{Family: FamilyFixedSizeString, Description: c.Description(), Fixed: true, ByteSize: c.ByteSize(), Len: c.n}
}

func (c *sizedString) Write(buf []byte, offset int, v string) error {
	if len(v) != c.n {
		return errors.ShapeMismatch(errors.PhaseEncode, nil, c.Description(),
			fmt.Sprintf("want %d bytes, got %d", c.n, len(v)))
	}
	if err := checkRange(errors.PhaseEncode, buf, offset, c.ByteSize(), c.Description()); err != nil {
		return err
	}
	le.PutUint32(buf[offset:], uint32(c.n))
	copy(buf[offset+lengthPrefixSize:], v)
	return nil
}

func (c *sizedString) Read(buf []byte, offset int) (string, error) {
	data, err := readPrefixed(buf, offset, c.n, c.Description())
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errors.InvalidUTF8(errors.PhaseDecode, nil, data)
	}
	return string(data), nil
}

func readPrefixed(buf []byte, offset, n int, codec string) ([]byte, error) {
	if err := checkRange(errors.PhaseDecode, buf, offset, lengthPrefixSize+n, codec); err != nil {
		return nil, err
	}
	if got := int(le.Uint32(buf[offset:])); got != n {
		return nil, errors.ShapeMismatch(errors.PhaseDecode, nil, codec,
			fmt.Sprintf("length prefix %d does not match resolved length %d", got, n))
	}
	start := offset + lengthPrefixSize
	return buf[start : start+n], nil
}

// Bytes encodes a byte slice as a u32 length followed by the raw bytes.
var Bytes Fixable[[]byte] = bytesCodec{}

type bytesCodec struct{}

func (bytesCodec) Description() string { return "Bytes" }

func (bytesCodec) Shape() Shape {
	return Shape{Family: FamilyBytes, Description: "Bytes"}
}

func (c bytesCodec) FixFromBytes(buf []byte, offset int) (Fixed[[]byte], error) {
	n, err := readLength(errors.PhaseResolve, buf, offset, c.Description())
	if err != nil {
		return nil, err
	}
	return &sizedBytes{n: n, prefixed: true}, nil
}

func (bytesCodec) FixFromValue(v []byte) (Fixed[[]byte], error) {
	return &sizedBytes{n: len(v), prefixed: true}, nil
}

func (c bytesCodec) Write(buf []byte, offset int, v []byte) error {
	return writeFixable[[]byte](c, buf, offset, v)
}

func (c bytesCodec) Read(buf []byte, offset int) ([]byte, error) {
	return readFixable[[]byte](c, buf, offset)
}

// FixedBytes returns the codec for exactly n raw bytes with no length prefix.
func FixedBytes(n int) Fixed[[]byte] {
	return &sizedBytes{n: n}
}

type sizedBytes struct {
	n        int
	prefixed bool
}

func (c *sizedBytes) ByteSize() int {
	if c.prefixed {
		return lengthPrefixSize + c.n
	}
	return c.n
}

func (c *sizedBytes) Description() string {
	if c.prefixed {
		return fmt.Sprintf("Bytes(4 + %d)", c.n)
	}
	return fmt.Sprintf("Bytes(%d)", c.n)
}

func (c *sizedBytes) Shape() Shape {
	family := FamilyFixedSizeBytes
	if c.prefixed {
		family = FamilyBytes
	}
	return Shape{Family: family, Description: c.Description(), Fixed: true, ByteSize: c.ByteSize(), Len: c.n}
}

func (c *sizedBytes) Write(buf []byte, offset int, v []byte) error {
	if len(v) != c.n {
		return errors.ShapeMismatch(errors.PhaseEncode, nil, c.Description(),
			fmt.Sprintf("want %d bytes, got %d", c.n, len(v)))
	}
	if err := checkRange(errors.PhaseEncode, buf, offset, c.ByteSize(), c.Description()); err != nil {
		return err
	}
	if c.prefixed {
		le.PutUint32(buf[offset:], uint32(c.n))
		offset += lengthPrefixSize
	}
	copy(buf[offset:], v)
	return nil
}

func (c *sizedBytes) Read(buf []byte, offset int) ([]byte, error) {
	if c.prefixed {
		data, err := readPrefixed(buf, offset, c.n, c.Description())
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), data...), nil
	}
	if err := checkRange(errors.PhaseDecode, buf, offset, c.n, c.Description()); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf[offset:offset+c.n]...), nil
}
