package codec

import (
	"github.com/wippyai/borsh/errors"
)

// Codec encodes and decodes values of type V at an offset inside a caller
// owned buffer. Every codec is either Fixed or Fixable.
type Codec[V any] interface {
	// Write encodes v at offset. Fixable codecs resolve against v first.
	Write(buf []byte, offset int, v V) error
	// Read decodes the value at offset. Fixable codecs resolve against
	// the bytes at offset first.
	Read(buf []byte, offset int) (V, error)
	// Description is a human-readable label used for diagnostics.
	Description() string
}

// Fixed is a codec whose encoded size is the same for every value.
// Write never touches bytes outside [offset, offset+ByteSize()).
type Fixed[V any] interface {
	Codec[V]
	ByteSize() int
}

// Fixable is a codec whose encoded size depends on the value being written
// or on the bytes being read. It must be resolved into a Fixed codec before
// its size is known.
//
// For every value v, FixFromValue(v) and FixFromBytes over the encoding of v
// yield codecs with the same ByteSize.
type Fixable[V any] interface {
	Codec[V]
	FixFromBytes(buf []byte, offset int) (Fixed[V], error)
	FixFromValue(v V) (Fixed[V], error)
}

// driver supplies what a fixable codec inspects to settle on its layout:
// either bytes that are already encoded or the value about to be written.
type driver[V any] interface {
	fix(c Fixable[V]) (Fixed[V], error)
	name() string
}

type bytesDriver[V any] struct {
	buf    []byte
	offset int
}

func (d bytesDriver[V]) fix(c Fixable[V]) (Fixed[V], error) {
	return c.FixFromBytes(d.buf, d.offset)
}

func (bytesDriver[V]) name() string { return "bytes" }

type valueDriver[V any] struct {
	value V
}

func (d valueDriver[V]) fix(c Fixable[V]) (Fixed[V], error) {
	return c.FixFromValue(d.value)
}

func (valueDriver[V]) name() string { return "value" }

// fix is the single resolution step shared by both drivers. Composite codecs
// call back into it for their children, so nested codecs resolve depth first.
func fix[V any](c Codec[V], d driver[V]) (Fixed[V], error) {
	switch c := c.(type) {
	case nil:
		return nil, errors.UnresolvedCodec(errors.PhaseResolve, nil, "<nil>")
	case Fixed[V]:
		return c, nil
	case Fixable[V]:
		f, err := d.fix(c)
		if err != nil {
			return nil, err
		}
		traceFixed(d.name(), c, f, f.ByteSize())
		return f, nil
	default:
		return nil, errors.UnresolvedCodec(errors.PhaseResolve, nil, c.Description())
	}
}

// FixFromBytes resolves c against the encoded bytes at offset.
// Fixed codecs are returned unchanged.
func FixFromBytes[V any](c Codec[V], buf []byte, offset int) (Fixed[V], error) {
	return fix(c, bytesDriver[V]{buf: buf, offset: offset})
}

// FixFromValue resolves c against the value about to be written.
// Fixed codecs are returned unchanged.
func FixFromValue[V any](c Codec[V], v V) (Fixed[V], error) {
	return fix(c, valueDriver[V]{value: v})
}

// IsFixed reports whether c has a static byte size.
func IsFixed[V any](c Codec[V]) bool {
	_, ok := c.(Fixed[V])
	return ok
}

// Size returns the number of bytes v encodes to.
func Size[V any](c Codec[V], v V) (int, error) {
	f, err := FixFromValue(c, v)
	if err != nil {
		return 0, err
	}
	return f.ByteSize(), nil
}

// Write encodes v at offset and returns the number of bytes written.
func Write[V any](c Codec[V], buf []byte, offset int, v V) (int, error) {
	f, err := FixFromValue(c, v)
	if err != nil {
		return 0, err
	}
	if err := f.Write(buf, offset, v); err != nil {
		return 0, err
	}
	return f.ByteSize(), nil
}

// Read decodes the value at offset and returns it with the number of bytes consumed.
func Read[V any](c Codec[V], buf []byte, offset int) (V, int, error) {
	var zero V
	f, err := FixFromBytes(c, buf, offset)
	if err != nil {
		return zero, 0, err
	}
	v, err := f.Read(buf, offset)
	if err != nil {
		return zero, 0, err
	}
	return v, f.ByteSize(), nil
}

// Encode allocates a buffer of exactly the encoded size of v and writes v into it.
func Encode[V any](c Codec[V], v V) ([]byte, error) {
	f, err := FixFromValue(c, v)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, f.ByteSize())
	if err := f.Write(buf, 0, v); err != nil {
		return nil, err
	}
	return buf, nil
}

// Decode reads a value from the start of buf. Trailing bytes are ignored.
func Decode[V any](c Codec[V], buf []byte) (V, error) {
	v, _, err := Read(c, buf, 0)
	return v, err
}

func writeFixable[V any](c Fixable[V], buf []byte, offset int, v V) error {
	f, err := c.FixFromValue(v)
	if err != nil {
		return err
	}
	return f.Write(buf, offset, v)
}

func readFixable[V any](c Fixable[V], buf []byte, offset int) (V, error) {
	f, err := c.FixFromBytes(buf, offset)
	if err != nil {
		var zero V
		return zero, err
	}
	return f.Read(buf, offset)
}

func checkRange(phase errors.Phase, buf []byte, offset, size int, codec string) error {
	if offset < 0 || size < 0 || offset > len(buf) || len(buf)-offset < size {
		err := errors.OutOfBounds(phase, nil, offset, size, len(buf))
		err.Codec = codec
		return err
	}
	return nil
}
