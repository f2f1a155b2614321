package main

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/wippyai/borsh/errors"
	"github.com/wippyai/borsh/schema"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"14b004", []byte{0x14, 0xB0, 0x04}},
		{"0x14 b0 04", []byte{0x14, 0xB0, 0x04}},
		{" 14:b0:04\n", []byte{0x14, 0xB0, 0x04}},
		{"", []byte{}},
	}
	for _, tt := range tests {
		got, err := parseHex(tt.in)
		if err != nil {
			t.Errorf("parseHex(%q): %v", tt.in, err)
			continue
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("parseHex(%q) = % x, want % x", tt.in, got, tt.want)
		}
	}

	if _, err := parseHex("abc"); !errors.IsKind(err, errors.KindInvalidData) {
		t.Errorf("odd length err = %v, want invalid_data", err)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"hi", `"hi"`},
		{[]byte{1, 0xAB}, "0x01ab"},
		{big.NewInt(-7), "-7"},
		{uint16(1200), "1200"},
		{true, "true"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderSpans_Plain(t *testing.T) {
	s, err := schema.Parse([]byte(`
types:
  - name: Results
    fields:
      - { name: win, type: u8 }
      - { name: totalWin, type: u16 }
      - { name: losses, type: i32 }
`))
	if err != nil {
		t.Fatal(err)
	}
	spans, err := s.Inspect("Results", []byte{20, 0xB0, 0x04, 0x39, 0xFE, 0xFF, 0xFF}, 0)
	if err != nil {
		t.Fatal(err)
	}

	out := renderSpans(spans, false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "OFFSET") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "$") || !strings.Contains(lines[1], "Results[7]") {
		t.Errorf("root line = %q", lines[1])
	}
	if !strings.Contains(lines[3], "  totalWin") || !strings.HasSuffix(lines[3], "u16 = 1200") {
		t.Errorf("totalWin line = %q", lines[3])
	}
	if !strings.HasSuffix(lines[4], "i32 = -455") {
		t.Errorf("losses line = %q", lines[4])
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("plain output contains escape sequences")
	}
}
