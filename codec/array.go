package codec

import (
	"fmt"
	"strconv"

	"github.com/wippyai/borsh/errors"
)

func indexPath(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

// FixedSizeArray returns the fixed codec for exactly n elements of elem,
// encoded back to back with no length prefix.
func FixedSizeArray[T any](elem Fixed[T], n int) Fixed[[]T] {
	return &uniformArray[T]{elem: elem, n: n}
}

type uniformArray[T any] struct {
	elem Fixed[T]
	n    int
}

func (c *uniformArray[T]) ByteSize() int { return c.n * c.elem.ByteSize() }

func (c *uniformArray[T]) Description() string {
	return fmt.Sprintf("Array<%s>(%d)", c.elem.Description(), c.n)
}

func (c *uniformArray[T]) Shape() Shape {
	return Shape{
		Family:      FamilyUniformFixedSizeArray,
		Description: c.Description(),
		Fixed:       true,
		ByteSize:    c.ByteSize(),
		Len:         c.n,
		Elem:        elemShape(c.elem),
	}
}

func (c *uniformArray[T]) Write(buf []byte, offset int, v []T) error {
	if len(v) != c.n {
		return errors.ShapeMismatch(errors.PhaseEncode, nil, c.Description(),
			fmt.Sprintf("want %d elements, got %d", c.n, len(v)))
	}
	if err := checkRange(errors.PhaseEncode, buf, offset, c.ByteSize(), c.Description()); err != nil {
		return err
	}
	size := c.elem.ByteSize()
	for i := range v {
		if err := c.elem.Write(buf, offset+i*size, v[i]); err != nil {
			return errors.AtPath(err, indexPath(i))
		}
	}
	return nil
}

func (c *uniformArray[T]) Read(buf []byte, offset int) ([]T, error) {
	if err := checkRange(errors.PhaseDecode, buf, offset, c.ByteSize(), c.Description()); err != nil {
		return nil, err
	}
	size := c.elem.ByteSize()
	out := make([]T, c.n)
	for i := range out {
		v, err := c.elem.Read(buf, offset+i*size)
		if err != nil {
			return nil, errors.AtPath(err, indexPath(i))
		}
		out[i] = v
	}
	return out, nil
}

// elementsArray is a sequence whose elements were resolved one by one and
// may therefore differ in size.
type elementsArray[T any] struct {
	elems []Fixed[T]
	size  int
	label string
}

func newElementsArray[T any](label string, elems []Fixed[T]) *elementsArray[T] {
	size := 0
	for _, e := range elems {
		size += e.ByteSize()
	}
	return &elementsArray[T]{elems: elems, size: size, label: label}
}

func (c *elementsArray[T]) ByteSize() int { return c.size }

func (c *elementsArray[T]) Description() string {
	return fmt.Sprintf("%s[%d]", c.label, c.size)
}

func (c *elementsArray[T]) Shape() Shape {
	s := Shape{
		Family:      FamilyUniformFixedSizeArray,
		Description: c.Description(),
		Fixed:       true,
		ByteSize:    c.size,
		Len:         len(c.elems),
	}
	if len(c.elems) > 0 {
		s.Elem = elemShape(c.elems[0])
	}
	return s
}

func (c *elementsArray[T]) Write(buf []byte, offset int, v []T) error {
	if len(v) != len(c.elems) {
		return errors.ShapeMismatch(errors.PhaseEncode, nil, c.Description(),
			fmt.Sprintf("want %d elements, got %d", len(c.elems), len(v)))
	}
	if err := checkRange(errors.PhaseEncode, buf, offset, c.size, c.Description()); err != nil {
		return err
	}
	cursor := offset
	for i, e := range c.elems {
		if err := e.Write(buf, cursor, v[i]); err != nil {
			return errors.AtPath(err, indexPath(i))
		}
		cursor += e.ByteSize()
	}
	return nil
}

func (c *elementsArray[T]) Read(buf []byte, offset int) ([]T, error) {
	if err := checkRange(errors.PhaseDecode, buf, offset, c.size, c.Description()); err != nil {
		return nil, err
	}
	out := make([]T, len(c.elems))
	cursor := offset
	for i, e := range c.elems {
		v, err := e.Read(buf, cursor)
		if err != nil {
			return nil, errors.AtPath(err, indexPath(i))
		}
		out[i] = v
		cursor += e.ByteSize()
	}
	return out, nil
}

// MaxSparseCount bounds element counts that exceed the bytes left in the
// buffer. Only zero-size elements can do that, so any larger count is
// rejected before elements are resolved or allocated.
const MaxSparseCount = 1 << 16

// checkCount validates an element count taken from the wire against the
// bytes remaining at offset.
func checkCount(phase errors.Phase, buf []byte, offset, n int, codec string) error {
	remaining := len(buf) - offset
	if remaining < 0 {
		remaining = 0
	}
	if n <= remaining || n <= MaxSparseCount {
		return nil
	}
	err := errors.OutOfBounds(phase, nil, offset, n, len(buf))
	err.Codec = codec
	return err
}

// fixElementsFromBytes resolves n consecutive elements starting at offset.
// Each element enforces its own bounds; elements may take zero bytes.
func fixElementsFromBytes[T any](elem Codec[T], buf []byte, offset, n int, codec string) ([]Fixed[T], error) {
	if err := checkCount(errors.PhaseResolve, buf, offset, n, codec); err != nil {
		return nil, err
	}
	elems := make([]Fixed[T], 0, min(n, max(len(buf)-offset, 0)))
	cursor := offset
	for i := 0; i < n; i++ {
		f, err := FixFromBytes(elem, buf, cursor)
		if err != nil {
			return nil, errors.AtPath(err, indexPath(i))
		}
		elems = append(elems, f)
		cursor += f.ByteSize()
	}
	return elems, nil
}

func fixElementsFromValue[T any](elem Codec[T], v []T) ([]Fixed[T], error) {
	elems := make([]Fixed[T], len(v))
	for i := range v {
		f, err := FixFromValue(elem, v[i])
		if err != nil {
			return nil, errors.AtPath(err, indexPath(i))
		}
		elems[i] = f
	}
	return elems, nil
}

// UniformFixedSizeArray returns a codec for exactly n elements of elem with no
// length prefix. It is fixed when elem is fixed; otherwise every element is
// resolved on its own.
func UniformFixedSizeArray[T any](elem Codec[T], n int) Codec[[]T] {
	if f, ok := elem.(Fixed[T]); ok {
		return FixedSizeArray(f, n)
	}
	return &arrayCodec[T]{elem: elem, n: n}
}

type arrayCodec[T any] struct {
	elem Codec[T]
	n    int
}

func (c *arrayCodec[T]) Description() string {
	return fmt.Sprintf("Array<%s>(%d)", c.elem.Description(), c.n)
}

func (c *arrayCodec[T]) Shape() Shape {
	return Shape{
		Family:      FamilyUniformFixedSizeArray,
		Description: c.Description(),
		Len:         c.n,
		Elem:        elemShape(c.elem),
	}
}

func (c *arrayCodec[T]) FixFromBytes(buf []byte, offset int) (Fixed[[]T], error) {
	elems, err := fixElementsFromBytes(c.elem, buf, offset, c.n, c.Description())
	if err != nil {
		return nil, err
	}
	return newElementsArray(c.Description(), elems), nil
}

func (c *arrayCodec[T]) FixFromValue(v []T) (Fixed[[]T], error) {
	if len(v) != c.n {
		return nil, errors.ShapeMismatch(errors.PhaseResolve, nil, c.Description(),
			fmt.Sprintf("want %d elements, got %d", c.n, len(v)))
	}
	elems, err := fixElementsFromValue(c.elem, v)
	if err != nil {
		return nil, err
	}
	return newElementsArray(c.Description(), elems), nil
}

func (c *arrayCodec[T]) Write(buf []byte, offset int, v []T) error {
	return writeFixable[[]T](c, buf, offset, v)
}

func (c *arrayCodec[T]) Read(buf []byte, offset int) ([]T, error) {
	return readFixable[[]T](c, buf, offset)
}
