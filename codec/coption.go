package codec

import (
	"bytes"
	"fmt"

	"github.com/wippyai/borsh/errors"
)

const coptionTagSize = 4

var (
	coptionNone = []byte{0, 0, 0, 0}
	coptionSome = []byte{1, 0, 0, 0}
)

// COption returns the fixed-size C-style option: a 4 byte tag followed by
// room for inner whether or not the value is present. Writing nil leaves the
// payload bytes untouched.
func COption[T any](inner Fixed[T]) Fixed[*T] {
	return &coptionCodec[T]{inner: inner}
}

type coptionCodec[T any] struct {
	inner Fixed[T]
}

func (c *coptionCodec[T]) ByteSize() int { return coptionTagSize + c.inner.ByteSize() }

func (c *coptionCodec[T]) Description() string {
	return fmt.Sprintf("COption<%s>", c.inner.Description())
}

func (c *coptionCodec[T]) Shape() Shape {
	return Shape{
		Family:      FamilyCOption,
		Description: c.Description(),
		Fixed:       true,
		ByteSize:    c.ByteSize(),
		Elem:        elemShape(c.inner),
	}
}

func (c *coptionCodec[T]) Write(buf []byte, offset int, v *T) error {
	if err := checkRange(errors.PhaseEncode, buf, offset, c.ByteSize(), c.Description()); err != nil {
		return err
	}
	if v == nil {
		copy(buf[offset:], coptionNone)
		return nil
	}
	copy(buf[offset:], coptionSome)
	return c.inner.Write(buf, offset+coptionTagSize, *v)
}

func (c *coptionCodec[T]) Read(buf []byte, offset int) (*T, error) {
	if err := checkRange(errors.PhaseDecode, buf, offset, c.ByteSize(), c.Description()); err != nil {
		return nil, err
	}
	tag := buf[offset : offset+coptionTagSize]
	switch {
	case bytes.Equal(tag, coptionNone):
		return nil, nil
	case bytes.Equal(tag, coptionSome):
		v, err := c.inner.Read(buf, offset+coptionTagSize)
		if err != nil {
			return nil, err
		}
		return &v, nil
	default:
		return nil, errors.MalformedTag(errors.PhaseDecode, nil, badTagByte(tag), c.Description())
	}
}

// badTagByte returns the first byte of tag that differs from the tag its
// leading byte selects.
func badTagByte(tag []byte) byte {
	want := coptionNone
	if tag[0] == coptionSome[0] {
		want = coptionSome
	}
	for i := range tag {
		if tag[i] != want[i] {
			return tag[i]
		}
	}
	return tag[0]
}
