package codec

import (
	"fmt"
	"reflect"

	"github.com/wippyai/borsh/errors"
)

// Field is one named member of a struct codec.
type Field struct {
	name     string
	optional bool
	codec    fieldCodec
}

// Name returns the field name.
func (f Field) Name() string { return f.name }

// Optional reports whether the field may be left out of write input.
func (f Field) Optional() bool { return f.optional }

// NewField declares a required struct field encoded with c.
func NewField[T any](name string, c Codec[T]) Field {
	return Field{name: name, codec: typedField[T]{c: c}}
}

// OptionalField declares a field that may be absent from write input, in
// which case the zero value of T is encoded.
func OptionalField[T any](name string, c Codec[T]) Field {
	return Field{name: name, optional: true, codec: typedField[T]{c: c}}
}

// fieldCodec erases the value type of a field codec so fields of different
// types can live in one struct.
type fieldCodec interface {
	description() string
	shape() Shape
	fixed() (fixedField, bool)
	fixFromBytes(buf []byte, offset int) (fixedField, error)
	fixFromValue(v any) (fixedField, error)
	zero() any
}

type fixedField interface {
	byteSize() int
	description() string
	shape() Shape
	write(buf []byte, offset int, v any) error
	read(buf []byte, offset int) (any, error)
}

type typedField[T any] struct {
	c Codec[T]
}

func (f typedField[T]) description() string { return f.c.Description() }
func (f typedField[T]) shape() Shape        { return ShapeOf(f.c) }

func (f typedField[T]) zero() any {
	var zero T
	return zero
}

func (f typedField[T]) fixed() (fixedField, bool) {
	c, ok := f.c.(Fixed[T])
	if !ok {
		return nil, false
	}
	return typedFixed[T]{c: c}, true
}

func (f typedField[T]) fixFromBytes(buf []byte, offset int) (fixedField, error) {
	c, err := FixFromBytes(f.c, buf, offset)
	if err != nil {
		return nil, err
	}
	return typedFixed[T]{c: c}, nil
}

func (f typedField[T]) fixFromValue(v any) (fixedField, error) {
	tv, err := assertValue[T](v, f.c.Description())
	if err != nil {
		return nil, err
	}
	c, err := FixFromValue(f.c, tv)
	if err != nil {
		return nil, err
	}
	return typedFixed[T]{c: c}, nil
}

type typedFixed[T any] struct {
	c Fixed[T]
}

func (f typedFixed[T]) byteSize() int       { return f.c.ByteSize() }
func (f typedFixed[T]) description() string { return f.c.Description() }
func (f typedFixed[T]) shape() Shape        { return ShapeOf(f.c) }

func (f typedFixed[T]) write(buf []byte, offset int, v any) error {
	tv, err := assertValue[T](v, f.c.Description())
	if err != nil {
		return err
	}
	return f.c.Write(buf, offset, tv)
}

func (f typedFixed[T]) read(buf []byte, offset int) (any, error) {
	return f.c.Read(buf, offset)
}

// assertValue converts a dynamically typed field value to T. A nil value is
// accepted for pointer, slice, map and interface types.
func assertValue[T any](v any, codec string) (T, error) {
	if tv, ok := v.(T); ok {
		return tv, nil
	}
	var zero T
	if v == nil {
		switch reflect.TypeFor[T]().Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
			return zero, nil
		}
	}
	return zero, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
		GoType(fmt.Sprintf("%T", v)).
		Codec(codec).
		Detail("want %s", reflect.TypeFor[T]()).
		Build()
}
