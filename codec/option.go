package codec

import (
	"fmt"

	"github.com/wippyai/borsh/errors"
)

// Option tag bytes.
const (
	TagNone uint8 = 0
	TagSome uint8 = 1
)

// OptionNone returns the fixed codec for an absent option value: the single
// byte 0. Writing a non-nil value fails.
func OptionNone[T any](description string) Fixed[*T] {
	return &noneCodec[T]{inner: description}
}

type noneCodec[T any] struct {
	inner string
}

func (c *noneCodec[T]) ByteSize() int { return 1 }

func (c *noneCodec[T]) Description() string {
	return fmt.Sprintf("COption<None(%s)>", c.inner)
}

func (c *noneCodec[T]) Shape() Shape {
	return Shape{Family: FamilyOption, Description: c.Description(), Fixed: true, ByteSize: 1}
}

func (c *noneCodec[T]) Write(buf []byte, offset int, v *T) error {
	if v != nil {
		return errors.ShapeMismatch(errors.PhaseEncode, nil, c.Description(), "absent option codec cannot encode a present value")
	}
	if err := checkRange(errors.PhaseEncode, buf, offset, 1, c.Description()); err != nil {
		return err
	}
	buf[offset] = TagNone
	return nil
}

func (c *noneCodec[T]) Read(buf []byte, offset int) (*T, error) {
	if err := checkRange(errors.PhaseDecode, buf, offset, 1, c.Description()); err != nil {
		return nil, err
	}
	if tag := buf[offset]; tag != TagNone {
		return nil, errors.MalformedTag(errors.PhaseDecode, nil, tag, c.Description())
	}
	return nil, nil
}

// OptionSome returns the fixed codec for a present option value: the byte 1
// followed by the encoding of inner.
func OptionSome[T any](inner Fixed[T]) Fixed[*T] {
	return &someCodec[T]{inner: inner}
}

type someCodec[T any] struct {
	inner Fixed[T]
}

func (c *someCodec[T]) ByteSize() int {
	if c.inner == nil {
		return 1
	}
	return 1 + c.inner.ByteSize()
}

func (c *someCodec[T]) Description() string {
	if c.inner == nil {
		return "COption<?>"
	}
	return fmt.Sprintf("COption<%s>[1 + %d]", c.inner.Description(), c.inner.ByteSize())
}

func (c *someCodec[T]) Shape() Shape {
	s := Shape{Family: FamilyOption, Description: c.Description(), Fixed: true, ByteSize: c.ByteSize()}
	if c.inner != nil {
		s.Elem = elemShape(c.inner)
	}
	return s
}

func (c *someCodec[T]) Write(buf []byte, offset int, v *T) error {
	if c.inner == nil {
		return errors.UnresolvedCodec(errors.PhaseEncode, nil, c.Description())
	}
	if v == nil {
		return errors.ShapeMismatch(errors.PhaseEncode, nil, c.Description(), "present option codec cannot encode an absent value")
	}
	if err := checkRange(errors.PhaseEncode, buf, offset, c.ByteSize(), c.Description()); err != nil {
		return err
	}
	buf[offset] = TagSome
	return c.inner.Write(buf, offset+1, *v)
}

func (c *someCodec[T]) Read(buf []byte, offset int) (*T, error) {
	if c.inner == nil {
		return nil, errors.UnresolvedCodec(errors.PhaseDecode, nil, c.Description())
	}
	if err := checkRange(errors.PhaseDecode, buf, offset, c.ByteSize(), c.Description()); err != nil {
		return nil, err
	}
	if tag := buf[offset]; tag != TagSome {
		return nil, errors.MalformedTag(errors.PhaseDecode, nil, tag, c.Description())
	}
	v, err := c.inner.Read(buf, offset+1)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Option returns a codec for an optional value of inner, represented as a
// pointer: nil is absent. The encoding is a tag byte (0 absent, 1 present)
// followed by the inner encoding when present. inner may itself be fixable.
func Option[T any](inner Codec[T]) Fixable[*T] {
	return &optionCodec[T]{inner: inner}
}

type optionCodec[T any] struct {
	inner Codec[T]
}

func (c *optionCodec[T]) Description() string {
	return fmt.Sprintf("COption<%s>", c.inner.Description())
}

func (c *optionCodec[T]) Shape() Shape {
	return Shape{Family: FamilyOption, Description: c.Description(), Elem: elemShape(c.inner)}
}

func (c *optionCodec[T]) FixFromBytes(buf []byte, offset int) (Fixed[*T], error) {
	if err := checkRange(errors.PhaseResolve, buf, offset, 1, c.Description()); err != nil {
		return nil, err
	}
	switch tag := buf[offset]; tag {
	case TagNone:
		return OptionNone[T](c.inner.Description()), nil
	case TagSome:
		inner, err := FixFromBytes(c.inner, buf, offset+1)
		if err != nil {
			return nil, err
		}
		return OptionSome(inner), nil
	default:
		return nil, errors.MalformedTag(errors.PhaseResolve, nil, tag, c.Description())
	}
}

func (c *optionCodec[T]) FixFromValue(v *T) (Fixed[*T], error) {
	if v == nil {
		return OptionNone[T](c.inner.Description()), nil
	}
	inner, err := FixFromValue(c.inner, *v)
	if err != nil {
		return nil, err
	}
	return OptionSome(inner), nil
}

func (c *optionCodec[T]) Write(buf []byte, offset int, v *T) error {
	return writeFixable[*T](c, buf, offset, v)
}

func (c *optionCodec[T]) Read(buf []byte, offset int) (*T, error) {
	return readFixable[*T](c, buf, offset)
}
