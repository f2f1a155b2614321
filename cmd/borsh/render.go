package main

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/borsh/errors"
	"github.com/wippyai/borsh/schema"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	offsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// parseHex accepts hex with optional 0x prefix, spaces and colons.
func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.NewReplacer(" ", "", ":", "", "\n", "", "\t", "").Replace(s)
	buf, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "parse hex input")
	}
	return buf, nil
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return fmt.Sprintf("%q", x)
	case []byte:
		return "0x" + hex.EncodeToString(x)
	case *big.Int:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// renderSpans formats spans as an aligned table. Paths are indented by depth
// and values are shown for leaves.
func renderSpans(spans []schema.Span, styled bool) string {
	style := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	pathWidth := len("PATH")
	for _, sp := range spans {
		if w := len(displayPath(sp)); w > pathWidth {
			pathWidth = w
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-8s %-6s %-*s  %s\n", "OFFSET", "SIZE", pathWidth, "PATH", "TYPE")
	for _, sp := range spans {
		line := fmt.Sprintf("%-8d %-6d %-*s  ", sp.Offset, sp.Size, pathWidth, displayPath(sp))
		b.WriteString(style(offsetStyle, line[:16]))
		b.WriteString(style(pathStyle, line[16:]))
		b.WriteString(style(typeStyle, sp.Description))
		if sp.Leaf {
			b.WriteString(" = ")
			b.WriteString(style(valueStyle, formatValue(sp.Value)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func displayPath(sp schema.Span) string {
	name := sp.Path
	if name == "" {
		name = "$"
	} else if i := strings.LastIndexAny(name, ".["); i > 0 {
		name = name[i:]
		name = strings.TrimPrefix(name, ".")
	}
	return strings.Repeat("  ", sp.Depth) + name
}
