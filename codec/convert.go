package codec

import (
	stderrors "errors"

	"github.com/wippyai/borsh/errors"
)

// Convert presents c as a codec over B. to maps decoded values, from maps
// values about to be written. Fixedness and encoding are those of c.
func Convert[A, B any](c Codec[A], to func(A) (B, error), from func(B) (A, error)) Codec[B] {
	if f, ok := c.(Fixed[A]); ok {
		return &convertedFixed[A, B]{c: f, to: to, from: from}
	}
	return &converted[A, B]{c: c, to: to, from: from}
}

// Dynamic presents c as a codec over any. Values written must hold a T;
// nil writes the zero value of T.
func Dynamic[T any](c Codec[T]) Codec[any] {
	return Convert(c,
		func(v T) (any, error) { return v, nil },
		func(v any) (T, error) {
			if v == nil {
				var zero T
				return zero, nil
			}
			return assertValue[T](v, c.Description())
		},
	)
}

type convertedFixed[A, B any] struct {
	c    Fixed[A]
	to   func(A) (B, error)
	from func(B) (A, error)
}

func (c *convertedFixed[A, B]) ByteSize() int       { return c.c.ByteSize() }
func (c *convertedFixed[A, B]) Description() string { return c.c.Description() }
func (c *convertedFixed[A, B]) Shape() Shape        { return ShapeOf(c.c) }

func (c *convertedFixed[A, B]) Write(buf []byte, offset int, v B) error {
	a, err := c.from(v)
	if err != nil {
		return convertError(errors.PhaseEncode, c.c.Description(), err)
	}
	return c.c.Write(buf, offset, a)
}

func (c *convertedFixed[A, B]) Read(buf []byte, offset int) (B, error) {
	a, err := c.c.Read(buf, offset)
	if err != nil {
		var zero B
		return zero, err
	}
	b, err := c.to(a)
	if err != nil {
		return b, convertError(errors.PhaseDecode, c.c.Description(), err)
	}
	return b, nil
}

type converted[A, B any] struct {
	c    Codec[A]
	to   func(A) (B, error)
	from func(B) (A, error)
}

func (c *converted[A, B]) Description() string { return c.c.Description() }
func (c *converted[A, B]) Shape() Shape        { return ShapeOf(c.c) }

func (c *converted[A, B]) FixFromBytes(buf []byte, offset int) (Fixed[B], error) {
	f, err := FixFromBytes(c.c, buf, offset)
	if err != nil {
		return nil, err
	}
	return &convertedFixed[A, B]{c: f, to: c.to, from: c.from}, nil
}

func (c *converted[A, B]) FixFromValue(v B) (Fixed[B], error) {
	a, err := c.from(v)
	if err != nil {
		return nil, convertError(errors.PhaseResolve, c.c.Description(), err)
	}
	f, err := FixFromValue(c.c, a)
	if err != nil {
		return nil, err
	}
	return &convertedFixed[A, B]{c: f, to: c.to, from: c.from}, nil
}

func (c *converted[A, B]) Write(buf []byte, offset int, v B) error {
	return writeFixable[B](c, buf, offset, v)
}

func (c *converted[A, B]) Read(buf []byte, offset int) (B, error) {
	return readFixable[B](c, buf, offset)
}

func convertError(phase errors.Phase, codec string, err error) error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return err
	}
	return errors.New(phase, errors.KindTypeMismatch).
		Codec(codec).
		Detail("convert: %v", err).
		Cause(err).
		Build()
}
