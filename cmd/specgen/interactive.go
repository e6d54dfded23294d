package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.bytecodealliance.org/wit"
	"golang.org/x/term"

	"github.com/wippyai/contractgen/artifact"
	"github.com/wippyai/contractgen/schema"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browserState int

const (
	stateList browserState = iota
	stateDetail
)

type browserModel struct {
	err      error
	filename string
	entries  []*schema.Entry
	visible  []*schema.Entry
	filter   textinput.Model
	selected int
	state    browserState
	loaded   bool
}

func newBrowserModel(filename string) *browserModel {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter types"
	ti.Width = 40
	return &browserModel{
		filename: filename,
		filter:   ti,
		state:    stateList,
	}
}

type loadedMsg struct {
	err     error
	entries []*schema.Entry
}

func (m *browserModel) Init() tea.Cmd {
	return m.loadContract
}

func (m *browserModel) loadContract() tea.Msg {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	c, err := artifact.Extract(context.Background(), data)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{entries: c.Entries}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filter.Focused() {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "enter", "esc":
				m.filter.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "/":
			if m.state == stateList {
				return m, m.filter.Focus()
			}

		case "up", "k":
			if m.state == stateList && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateList && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateList:
				if len(m.visible) > 0 {
					m.state = stateDetail
				}
			case stateDetail:
				m.state = stateList
			}

		case "esc":
			m.state = stateList
		}

	case loadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.entries = msg.entries
		m.applyFilter()
	}

	return m, nil
}

func (m *browserModel) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for _, e := range m.entries {
		if q == "" || strings.Contains(strings.ToLower(e.Name()), q) {
			m.visible = append(m.visible, e)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *browserModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.loaded {
		return "Loading contract..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Contract Types"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateList:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		if len(m.visible) == 0 {
			b.WriteString(helpStyle.Render("no matching types"))
			b.WriteString("\n")
		}
		for i, e := range m.visible {
			line := formatEntry(e)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • / filter • enter details • q quit"))

	case stateDetail:
		e := m.visible[m.selected]
		b.WriteString(describe(e))
		b.WriteString("\n")
		b.WriteString(typeStyle.Render("wit: " + witTypeStr(e.WIT())))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter/esc back • q quit"))
	}

	return b.String()
}

func formatEntry(e *schema.Entry) string {
	kind, n := "struct", 0
	switch {
	case e.Struct != nil:
		n = len(e.Struct.Fields)
	case e.Union != nil:
		kind, n = "union", len(e.Union.Cases)
	}
	return fmt.Sprintf("%s %s", typeStyle.Render(kind), nameStyle.Render(e.Name())) +
		helpStyle.Render(fmt.Sprintf(" (%d)", n))
}

func witTypeStr(t wit.Type) string {
	switch v := t.(type) {
	case nil:
		return "_"
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		return witTypeDefStr(v)
	default:
		return fmt.Sprintf("%T", t)
	}
}

func witTypeDefStr(td *wit.TypeDef) string {
	switch k := td.Kind.(type) {
	case *wit.Record:
		parts := make([]string, len(k.Fields))
		for i, f := range k.Fields {
			parts[i] = f.Name + ": " + witTypeStr(f.Type)
		}
		return "record " + *td.Name + " { " + strings.Join(parts, ", ") + " }"
	case *wit.Variant:
		parts := make([]string, len(k.Cases))
		for i, c := range k.Cases {
			parts[i] = c.Name
			if c.Type != nil {
				parts[i] += "(" + witTypeStr(c.Type) + ")"
			}
		}
		return "variant " + *td.Name + " { " + strings.Join(parts, ", ") + " }"
	case *wit.List:
		return "list<" + witTypeStr(k.Type) + ">"
	case *wit.Option:
		return "option<" + witTypeStr(k.Type) + ">"
	case *wit.Tuple:
		parts := make([]string, len(k.Types))
		for i, t := range k.Types {
			parts[i] = witTypeStr(t)
		}
		return "tuple<" + strings.Join(parts, ", ") + ">"
	}
	if td.Name != nil {
		return *td.Name
	}
	return "typedef"
}

func runInteractive(filename string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode requires a terminal")
	}
	p := tea.NewProgram(newBrowserModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
