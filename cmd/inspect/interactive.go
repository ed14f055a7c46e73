package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/structpack/structpack/msgpack"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	offsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type valueEntry struct {
	value   any
	offset  int
	size    int
	summary string
}

type interactiveModel struct {
	err      error
	filename string
	data     []byte
	entries  []valueEntry
	viewport viewport.Model
	selected int
	width    int
	height   int
	state    modelState
	ready    bool
}

type modelState int

const (
	stateSelectValue modelState = iota
	stateShowDetail
)

func newInteractiveModel(filename string, data []byte) *interactiveModel {
	return &interactiveModel{
		filename: filename,
		data:     data,
		state:    stateSelectValue,
	}
}

type decodedMsg struct {
	err     error
	entries []valueEntry
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.decodeValues
}

func (m *interactiveModel) decodeValues() tea.Msg {
	r := msgpack.NewReader(m.data)
	var entries []valueEntry
	for r.Remaining() > 0 {
		start := r.Pos()
		v, err := r.ReadValue()
		if err != nil {
			return decodedMsg{err: fmt.Errorf("value %d at offset %d: %w",
				len(entries), start, err)}
		}
		entries = append(entries, valueEntry{
			value:   v,
			offset:  start,
			size:    r.Pos() - start,
			summary: summarize(v),
		})
	}
	return decodedMsg{entries: entries}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectValue && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectValue && m.selected < len(m.entries)-1 {
				m.selected++
			}

		case "enter":
			if m.state == stateSelectValue && len(m.entries) > 0 {
				m.viewport.SetContent(renderValue(m.entries[m.selected].value, 0, true))
				m.viewport.GotoTop()
				m.state = stateShowDetail
			}

		case "esc":
			if m.state == stateShowDetail {
				m.state = stateSelectValue
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Header and help line take four rows.
		m.viewport = viewport.New(msg.Width, msg.Height-4)
		if m.state == stateShowDetail && len(m.entries) > 0 {
			m.viewport.SetContent(renderValue(m.entries[m.selected].value, 0, true))
		}
		m.ready = true

	case decodedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.entries = msg.entries
	}

	if m.state == stateShowDetail {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.ready || m.entries == nil {
		return "Decoding..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("MessagePack Inspector"))
	b.WriteString(" ")
	b.WriteString(fmt.Sprintf("%s (%d bytes, %d values)", m.filename, len(m.data), len(m.entries)))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectValue:
		if len(m.entries) == 0 {
			b.WriteString("No values.\n\n")
			b.WriteString(helpStyle.Render("q quit"))
			return b.String()
		}
		for i, e := range m.entries {
			line := fmt.Sprintf("%s  %s",
				offsetStyle.Render(fmt.Sprintf("@%-6d %4dB", e.offset, e.size)),
				e.summary)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter expand • q quit"))

	case stateShowDetail:
		e := m.entries[m.selected]
		b.WriteString(offsetStyle.Render(fmt.Sprintf("Value %d @ %d (%d bytes)", m.selected, e.offset, e.size)))
		b.WriteString("\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • q quit"))
	}

	return b.String()
}

func runInteractive(filename string, data []byte) error {
	p := tea.NewProgram(newInteractiveModel(filename, data), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
