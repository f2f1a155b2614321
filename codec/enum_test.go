package codec

import (
	"bytes"
	"testing"

	"github.com/wippyai/borsh/errors"
)

func TestDataEnum_Fixed(t *testing.T) {
	c := NewDataEnum(resultsStruct.(Fixed[Results]))
	if c.ByteSize() != 8 {
		t.Fatalf("ByteSize = %d, want 8", c.ByteSize())
	}

	buf := make([]byte, 8)
	if err := c.Write(buf, 0, DataEnum[Results]{Kind: 2, Data: result1()}); err != nil {
		t.Fatal(err)
	}
	want := []byte{2, 20, 0xB0, 0x04, 0x39, 0xFE, 0xFF, 0xFF}
	if !bytes.Equal(buf, want) {
		t.Errorf("bytes = % x, want % x", buf, want)
	}

	assertRoundTrip[DataEnum[Results]](t, c, DataEnum[Results]{Kind: 0, Data: result2()})
}

func TestDataEnum_KindsPassThrough(t *testing.T) {
	c := NewDataEnum(U8)
	for _, kind := range []uint8{0, 1, 17, 255} {
		assertRoundTrip[DataEnum[uint8]](t, c, DataEnum[uint8]{Kind: kind, Data: 9})
	}
}

func TestDataEnumOf_Fixable(t *testing.T) {
	c := DataEnumOf[string](Utf8String)
	if IsFixed(c) {
		t.Fatal("data enum over a string should be fixable")
	}
	assertRoundTrip(t, c, DataEnum[string]{Kind: 3, Data: "payload"})

	if !IsFixed(DataEnumOf[uint32](U32)) {
		t.Error("data enum over a fixed payload should be fixed")
	}
}

func TestDataEnumOf_PayloadError(t *testing.T) {
	c := DataEnumOf(Option[uint8](U8))
	_, err := Decode(c, []byte{1, 7})
	if !errors.IsKind(err, errors.KindMalformedTag) {
		t.Fatalf("err = %v, want malformed_tag", err)
	}
}
