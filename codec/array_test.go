package codec

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/wippyai/borsh/errors"
)

func TestFixedSizeArray(t *testing.T) {
	c := FixedSizeArray(U16, 3)
	if c.ByteSize() != 6 {
		t.Fatalf("ByteSize = %d, want 6", c.ByteSize())
	}

	buf := make([]byte, 6)
	if err := c.Write(buf, 0, []uint16{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf, []byte{1, 0, 2, 0, 3, 0}) {
		t.Errorf("bytes = % x", buf)
	}

	got, err := c.Read(buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []uint16{1, 2, 3}) {
		t.Errorf("order not preserved: %v", got)
	}
}

func TestFixedSizeArray_WrongLength(t *testing.T) {
	c := FixedSizeArray(U8, 3)
	for _, v := range [][]uint8{{1, 2}, {1, 2, 3, 4}, nil} {
		buf := sentinelBuffer(3)
		if err := c.Write(buf, 0, v); !errors.IsKind(err, errors.KindShapeMismatch) {
			t.Errorf("len %d: err = %v, want shape_mismatch", len(v), err)
		}
		if !bytes.Equal(buf, sentinelBuffer(3)) {
			t.Errorf("len %d: buffer modified", len(v))
		}
	}
}

func TestUniformFixedSizeArray_Fixable(t *testing.T) {
	c := UniformFixedSizeArray[string](Utf8String, 3)
	if IsFixed(c) {
		t.Fatal("array of strings should be fixable")
	}
	v := []string{"a", "bcd", ""}
	assertRoundTrip(t, c, v)

	size, err := Size(c, v)
	if err != nil {
		t.Fatal(err)
	}
	if size != 3*4+4 {
		t.Errorf("Size = %d, want 16", size)
	}

	if _, err := Encode(c, []string{"a"}); !errors.IsKind(err, errors.KindShapeMismatch) {
		t.Errorf("short input err = %v, want shape_mismatch", err)
	}
}

func TestUniformFixedSizeArray_ElementErrorPath(t *testing.T) {
	c := UniformFixedSizeArray(Option[uint8](U8), 2)
	_, err := Decode(c, []byte{TagSome, 1, 4})
	if !errors.IsKind(err, errors.KindMalformedTag) {
		t.Fatalf("err = %v, want malformed_tag", err)
	}
	var e *errors.Error
	if !asError(err, &e) || len(e.Path) == 0 || e.Path[0] != "[1]" {
		t.Errorf("path = %v, want [1]", e.Path)
	}
}

func TestVec(t *testing.T) {
	c := Vec[int16](I16)
	buf, err := Encode(c, []int16{-1, 2})
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{2, 0, 0, 0, 0xFF, 0xFF, 2, 0}
	if !bytes.Equal(buf, want) {
		t.Errorf("bytes = % x, want % x", buf, want)
	}

	assertRoundTrip(t, c, []int16{5, 6, 7})
	assertRoundTrip(t, c, []int16{})
	assertRoundTrip(t, Vec(resultsStruct), []Results{result1(), result3()})
	assertRoundTrip(t, Vec(Vec[string](Utf8String)), [][]string{{"x"}, {}, {"y", "zz"}})
}

func TestVec_TruncatedBody(t *testing.T) {
	c := Vec[uint32](U32)
	buf := []byte{3, 0, 0, 0, 1, 0, 0, 0}
	if _, err := c.FixFromBytes(buf, 0); !errors.IsKind(err, errors.KindOutOfBounds) {
		t.Errorf("err = %v, want out_of_bounds", err)
	}

	huge := []byte{0xFF, 0xFF, 0xFF, 0xFF, 1}
	if _, err := Vec[string](Utf8String).FixFromBytes(huge, 0); !errors.IsKind(err, errors.KindOutOfBounds) {
		t.Errorf("huge count err = %v, want out_of_bounds", err)
	}
}

func TestVec_ZeroSizeElements(t *testing.T) {
	c := Vec(UniformFixedSizeArray[*uint8](Option[uint8](U8), 0))
	v := [][]*uint8{{}, {}, {}}

	buf, err := Encode(c, v)
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{3, 0, 0, 0}; !bytes.Equal(buf, want) {
		t.Fatalf("bytes = % x, want % x", buf, want)
	}
	got, err := Decode(c, buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, v) {
		t.Errorf("Decode = %#v, want %#v", got, v)
	}

	assertRoundTrip(t, c, v)
	assertRoundTrip(t, Vec[[]byte](FixedBytes(0)), [][]byte{nil, nil})
	assertRoundTrip(t, FixedSizeArray(U8, 0), []uint8{})
}

func TestVec_SparseCountBound(t *testing.T) {
	count := func(n uint32) []byte {
		buf := make([]byte, 4)
		le.PutUint32(buf, n)
		return buf
	}

	zeroBytes := Vec[[]byte](FixedBytes(0))
	f, err := zeroBytes.FixFromBytes(count(MaxSparseCount), 0)
	if err != nil {
		t.Fatalf("count at bound: %v", err)
	}
	if f.ByteSize() != 4 {
		t.Errorf("ByteSize = %d, want 4", f.ByteSize())
	}

	tests := []struct {
		name string
		fix  func([]byte) error
	}{
		{"fixed zero-size element", func(b []byte) error {
			_, err := zeroBytes.FixFromBytes(b, 0)
			return err
		}},
		{"fixable zero-size element", func(b []byte) error {
			_, err := Vec(UniformFixedSizeArray[*uint8](Option[uint8](U8), 0)).FixFromBytes(b, 0)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, n := range []uint32{MaxSparseCount + 1, 0xFFFFFFFF} {
				if err := tt.fix(count(n)); !errors.IsKind(err, errors.KindOutOfBounds) {
					t.Errorf("count %d: err = %v, want out_of_bounds", n, err)
				}
			}
		})
	}
}
