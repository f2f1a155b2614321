package codec

import (
	"bytes"
	"testing"

	"github.com/wippyai/borsh/errors"
)

func TestOptionNone(t *testing.T) {
	c := OptionNone[uint16]("u16")
	if c.ByteSize() != 1 {
		t.Fatalf("ByteSize = %d, want 1", c.ByteSize())
	}

	buf := sentinelBuffer(3)
	if err := c.Write(buf, 1, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.Equal(buf, []byte{0xAA, TagNone, 0xAA}) {
		t.Errorf("buffer = % x", buf)
	}

	if err := c.Write(buf, 1, ptr[uint16](3)); !errors.IsKind(err, errors.KindShapeMismatch) {
		t.Errorf("Write(present) err = %v, want shape_mismatch", err)
	}
	if _, err := c.Read([]byte{TagSome}, 0); !errors.IsKind(err, errors.KindMalformedTag) {
		t.Errorf("Read(1) err = %v, want malformed_tag", err)
	}
}

func TestOptionSome(t *testing.T) {
	c := OptionSome(U16)
	if c.ByteSize() != 3 {
		t.Fatalf("ByteSize = %d, want 3", c.ByteSize())
	}

	buf := make([]byte, 3)
	if err := c.Write(buf, 0, ptr[uint16](0x0102)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.Equal(buf, []byte{TagSome, 0x02, 0x01}) {
		t.Errorf("buffer = % x", buf)
	}
	got, err := c.Read(buf, 0)
	if err != nil || got == nil || *got != 0x0102 {
		t.Errorf("Read = %v, %v", got, err)
	}

	if err := c.Write(buf, 0, nil); !errors.IsKind(err, errors.KindShapeMismatch) {
		t.Errorf("Write(nil) err = %v, want shape_mismatch", err)
	}
	if _, err := c.Read([]byte{TagNone, 0, 0}, 0); !errors.IsKind(err, errors.KindMalformedTag) {
		t.Errorf("Read(0) err = %v, want malformed_tag", err)
	}
}

func TestOptionSome_UnresolvedInner(t *testing.T) {
	c := OptionSome[uint16](nil)
	buf := sentinelBuffer(4)
	err := c.Write(buf, 0, ptr[uint16](1))
	if !errors.IsKind(err, errors.KindUnresolvedCodec) {
		t.Fatalf("err = %v, want unresolved_codec", err)
	}
	if !bytes.Equal(buf, sentinelBuffer(4)) {
		t.Errorf("guard fired after touching bytes: % x", buf)
	}
}

func TestOption_RoundTrip(t *testing.T) {
	t.Run("fixed inner", func(t *testing.T) {
		c := Option[int32](I32)
		assertRoundTrip[*int32](t, c, nil)
		assertRoundTrip(t, c, ptr[int32](-455))
	})

	t.Run("fixable inner", func(t *testing.T) {
		c := Option[string](Utf8String)
		assertRoundTrip[*string](t, c, nil)
		assertRoundTrip(t, c, ptr("borsh"))
	})

	t.Run("nested", func(t *testing.T) {
		c := Option[*uint8](Option[uint8](U8))
		assertRoundTrip[**uint8](t, c, nil)
		assertRoundTrip(t, c, ptr[*uint8](nil))
		assertRoundTrip(t, c, ptr(ptr[uint8](5)))
	})
}

func TestOption_Exhaustive(t *testing.T) {
	c := Option[uint64](U64)

	// An absent tag needs no payload bytes at all.
	got, n, err := Read[*uint64](c, []byte{TagNone}, 0)
	if err != nil || got != nil || n != 1 {
		t.Fatalf("Read(none) = %v, %d, %v", got, n, err)
	}

	for tag := 2; tag < 256; tag++ {
		buf := make([]byte, 9)
		buf[0] = byte(tag)
		if _, err := c.FixFromBytes(buf, 0); !errors.IsKind(err, errors.KindMalformedTag) {
			t.Fatalf("tag %d: err = %v, want malformed_tag", tag, err)
		}
	}
}

func TestOption_FixedShapes(t *testing.T) {
	c := Option[string](Utf8String)

	none, err := c.FixFromValue(nil)
	if err != nil {
		t.Fatal(err)
	}
	if none.ByteSize() != 1 {
		t.Errorf("none ByteSize = %d, want 1", none.ByteSize())
	}

	some, err := c.FixFromValue(ptr("abc"))
	if err != nil {
		t.Fatal(err)
	}
	if some.ByteSize() != 1+4+3 {
		t.Errorf("some ByteSize = %d, want 8", some.ByteSize())
	}
	if got := some.Description(); got != "COption<Utf8String(4 + 3)>[1 + 7]" {
		t.Errorf("Description = %q", got)
	}
}

func TestCOption(t *testing.T) {
	c := COption(U32)
	if c.ByteSize() != 8 {
		t.Fatalf("ByteSize = %d, want 8", c.ByteSize())
	}
	assertRoundTrip(t, c, ptr[uint32](77))
	assertRoundTrip[*uint32](t, c, nil)

	buf := sentinelBuffer(8)
	if err := c.Write(buf, 0, nil); err != nil {
		t.Fatal(err)
	}
	want := []byte{0, 0, 0, 0, 0xAA, 0xAA, 0xAA, 0xAA}
	if !bytes.Equal(buf, want) {
		t.Errorf("absent write = % x, want % x", buf, want)
	}

	tests := []struct {
		tag []byte
		bad uint8
	}{
		{[]byte{2, 0, 0, 0}, 2},
		{[]byte{1, 7, 0, 0}, 7},
		{[]byte{0, 0, 0, 9}, 9},
	}
	for _, tt := range tests {
		copy(buf, tt.tag)
		_, err := c.Read(buf, 0)
		var e *errors.Error
		if !asError(err, &e) || e.Kind != errors.KindMalformedTag {
			t.Errorf("tag % x: err = %v, want malformed_tag", tt.tag, err)
			continue
		}
		if e.Value != tt.bad {
			t.Errorf("tag % x: reported byte %v, want %d", tt.tag, e.Value, tt.bad)
		}
	}
}
