package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/borsh/registry"
	"github.com/wippyai/borsh/schema"
)

type interactiveModel struct {
	err     error
	schema  *schema.Schema
	expr    string
	witType string
	table   string
	input   textinput.Model
	offset  int
}

func newInteractiveModel(s *schema.Schema, expr string, offset int) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "hex bytes, e.g. 14 b0 04 39 fe ff ff"
	ti.Prompt = "hex: "
	ti.Width = 60
	ti.Focus()
	return &interactiveModel{schema: s, expr: expr, input: ti, offset: offset}
}

func (m *interactiveModel) Init() tea.Cmd {
	c, err := m.schema.Codec(m.expr)
	if err != nil {
		m.err = err
		return nil
	}
	if t, err := registry.WIT(c); err == nil {
		m.witType = registry.Render(t)
	}
	return textinput.Blink
}

func (m *interactiveModel) refresh() {
	m.table = ""
	m.err = nil
	if strings.TrimSpace(m.input.Value()) == "" {
		return
	}
	buf, err := parseHex(m.input.Value())
	if err != nil {
		m.err = err
		return
	}
	spans, err := m.schema.Inspect(m.expr, buf, m.offset)
	if err != nil {
		m.err = err
		return
	}
	m.table = renderSpans(spans, true)
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+u":
			m.input.SetValue("")
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refresh()
	}
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Borsh Inspector"))
	b.WriteString(" ")
	b.WriteString(typeStyle.Render(m.expr))
	if m.witType != "" && m.witType != m.expr {
		b.WriteString(helpStyle.Render(" (wit: " + m.witType + ")"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	case m.table != "":
		b.WriteString(m.table)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("type hex to decode • ctrl+u clear • esc quit"))
	return b.String()
}

func runInteractive(s *schema.Schema, expr string, offset int) error {
	p := tea.NewProgram(newInteractiveModel(s, expr, offset), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
