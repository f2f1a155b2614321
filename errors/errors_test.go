package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseEncode,
				Kind:   KindTypeMismatch,
				Path:   []string{"results", "losses"},
				GoType: "string",
				Codec:  "i32",
				Detail: "cannot convert",
			},
			contains: []string{"[encode]", "type_mismatch", "results.losses", "string", "i32", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[decode]", "out_of_bounds"},
		},
		{
			name: "codec only",
			err: &Error{
				Phase:  PhaseResolve,
				Kind:   KindMalformedTag,
				Codec:  "COption<u8>",
				Detail: "unexpected tag byte 7",
			},
			contains: []string{"[resolve]", "codec COption<u8> - unexpected tag byte 7"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseMemory,
				Kind:   KindAllocation,
				Detail: "memory full",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[memory]", "allocation", "memory full", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseStore,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not reach cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindMalformedTag,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseDecode, Kind: KindMalformedTag}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindMalformedTag}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different kind")
	}
	if !err.Is(&Error{Kind: KindMalformedTag}) {
		t.Error("Is should match any phase when target phase is empty")
	}

	wrapped := fmt.Errorf("record 3: %w", err)
	if !IsKind(wrapped, KindMalformedTag) {
		t.Error("IsKind should see through fmt wrapping")
	}
	if IsKind(wrapped, KindShapeMismatch) {
		t.Error("IsKind should not match other kinds")
	}
}

func TestAtPath(t *testing.T) {
	err := error(OutOfBounds(PhaseEncode, []string{"losses"}, 3, 4, 6))
	err = AtPath(err, "results")
	err = AtPath(err, "items[2]")

	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("expected structured error")
	}
	want := []string{"items[2]", "results", "losses"}
	if strings.Join(e.Path, ".") != strings.Join(want, ".") {
		t.Errorf("Path = %v, want %v", e.Path, want)
	}

	plain := errors.New("plain")
	if got := AtPath(plain, "x"); got != plain {
		t.Errorf("AtPath changed a foreign error: %v", got)
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseEncode, KindTypeMismatch).
		Path("user", "name").
		GoType("string").
		Codec("u32").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "string", "int").
		Build()

	if err.Phase != PhaseEncode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseEncode)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "user" || err.Path[1] != "name" {
		t.Errorf("Path = %v, want [user name]", err.Path)
	}
	if err.GoType != "string" || err.Codec != "u32" {
		t.Errorf("GoType=%v Codec=%v", err.GoType, err.Codec)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected string, got int" {
		t.Errorf("Detail = %v, want 'expected string, got int'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		kind Kind
	}{
		{"MalformedTag", MalformedTag(PhaseDecode, nil, 9, "option"), KindMalformedTag},
		{"UnresolvedCodec", UnresolvedCodec(PhaseEncode, nil, "vec<u8>"), KindUnresolvedCodec},
		{"ShapeMismatch", ShapeMismatch(PhaseEncode, nil, "array", "want 3 elements"), KindShapeMismatch},
		{"TypeMismatch", TypeMismatch(PhaseEncode, nil, "int", "u8"), KindTypeMismatch},
		{"InvalidUTF8", InvalidUTF8(PhaseDecode, nil, []byte{0xff}), KindInvalidUTF8},
		{"AllocationFailed", AllocationFailed(PhaseMemory, 1024, 8), KindAllocation},
		{"FieldMissing", FieldMissing(PhaseEncode, nil, "win"), KindFieldMissing},
		{"Unsupported", Unsupported(PhaseSchema, "map types"), KindUnsupported},
		{"OutOfBounds", OutOfBounds(PhaseDecode, nil, 10, 4, 12), KindOutOfBounds},
		{"Overflow", Overflow(PhaseEncode, nil, 300, "u8"), KindOverflow},
		{"InvalidData", InvalidData(PhaseDecode, nil, "bad"), KindInvalidData},
		{"NotFound", NotFound(PhaseStore, "record", "k"), KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
		})
	}

	t.Run("OutOfBounds detail", func(t *testing.T) {
		err := OutOfBounds(PhaseDecode, nil, 10, 4, 12)
		if !strings.Contains(err.Detail, "[10, 14)") {
			t.Errorf("Detail = %q, want range [10, 14)", err.Detail)
		}
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})

	t.Run("AllocationFailed detail", func(t *testing.T) {
		err := AllocationFailed(PhaseMemory, 1024, 8)
		if !strings.Contains(err.Detail, "1024") {
			t.Errorf("Detail = %v, should contain size", err.Detail)
		}
	})
}
