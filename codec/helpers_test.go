package codec

import (
	"bytes"
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/wippyai/borsh/errors"
)

var testOffsets = []int{0, 8}

// roundTrip writes v at offset into a buffer padded by offset on both sides
// and reads it back, checking that both directions agree on the size.
func roundTrip[V any](t *testing.T, c Codec[V], v V, offset int) V {
	t.Helper()

	size, err := Size(c, v)
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	buf := make([]byte, offset+size+offset)

	n, err := Write(c, buf, offset, v)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != size {
		t.Fatalf("Write reported %d bytes, Size reported %d", n, size)
	}

	got, m, err := Read(c, buf, offset)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if m != size {
		t.Fatalf("Read consumed %d bytes, want %d", m, size)
	}
	return got
}

func assertRoundTrip[V any](t *testing.T, c Codec[V], v V) {
	t.Helper()
	for _, offset := range testOffsets {
		got := roundTrip(t, c, v, offset)
		if !reflect.DeepEqual(got, v) {
			t.Errorf("offset %d: round trip = %#v, want %#v", offset, got, v)
		}
	}
}

func sentinelBuffer(n int) []byte {
	return bytes.Repeat([]byte{0xAA}, n)
}

func ptr[T any](v T) *T { return &v }

func asError(err error, target **errors.Error) bool {
	return stderrors.As(err, target)
}
