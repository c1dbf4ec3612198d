package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/wippyai/union"
	"github.com/wippyai/union/table"
	"github.com/wippyai/union/typeid"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	inlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	boxedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD580"))
)

func kindStyle(k union.ConverterKind) lipgloss.Style {
	switch k {
	case union.KindInline:
		return inlineStyle
	case union.KindString, union.KindObject, union.KindCustom:
		return boxedStyle
	default:
		return errorStyle
	}
}

type modelState int

const (
	stateSelectType modelState = iota
	stateInputValue
	stateShowResult
	stateHistory
)

type interactiveModel struct {
	err      error
	reg      *union.Registry
	log      *zap.Logger
	store    *table.Table
	result   string
	types    []string
	input    textinput.Model
	selected int
	state    modelState
}

func newInteractiveModel(reg *union.Registry, log *zap.Logger) *interactiveModel {
	return &interactiveModel{
		reg:   reg,
		log:   log,
		store: table.New(table.WithRegistry(reg), table.WithLogger(log)),
		types: typeNames(),
		state: stateSelectType,
	}
}

type encodedMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.store.Close()
			return m, tea.Quit

		case "q":
			if m.state != stateInputValue {
				m.store.Close()
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectType && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectType && m.selected < len(m.types)-1 {
				m.selected++
			}

		case "h":
			if m.state == stateSelectType {
				m.state = stateHistory
			}

		case "enter":
			switch m.state {
			case stateSelectType:
				m.prepareInput()
				m.state = stateInputValue
				return m, textinput.Blink

			case stateInputValue:
				return m, m.encode

			case stateShowResult, stateHistory:
				m.reset()
			}

		case "esc":
			if m.state != stateSelectType {
				m.reset()
			}
		}

	case encodedMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputValue {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) reset() {
	m.state = stateSelectType
	m.result = ""
	m.err = nil
}

func (m *interactiveModel) prepareInput() {
	ti := textinput.New()
	ti.Placeholder = "literal"
	ti.Prompt = m.types[m.selected] + ": "
	ti.Width = 40
	ti.Focus()
	m.input = ti
}

func (m *interactiveModel) encode() tea.Msg {
	typeName := m.types[m.selected]
	u, err := parseLiteral(m.reg, typeName, m.input.Value())
	if err != nil {
		return encodedMsg{err: err}
	}

	if h := m.store.Insert(u); h != 0 {
		m.log.Debug("stored literal", zap.Uint32("handle", uint32(h)), zap.String("type", typeName))
	}
	return encodedMsg{result: describe(m.reg, u, true)}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Union Inspector"))
	fmt.Fprintf(&b, " capacity=%d stored=%d\n\n", m.reg.Capacity(), m.store.Len())

	switch m.state {
	case stateSelectType:
		b.WriteString("Select a type to encode:\n\n")
		for i, name := range m.types {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + name))
			} else {
				b.WriteString("  " + typeStyle.Render(name))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter encode • h history • q quit"))

	case stateInputValue:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter encode • esc back"))

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(m.result)
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))

	case stateHistory:
		b.WriteString(m.history())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter back • q quit"))
	}

	return b.String()
}

// history lists stored unions grouped by type.
func (m *interactiveModel) history() string {
	if m.store.Len() == 0 {
		return "Nothing stored yet.\n"
	}

	var b strings.Builder
	counts := m.store.Types()
	for _, id := range m.store.TypeIDs() {
		fmt.Fprintf(&b, "%s (%d)\n", typeStyle.Render(typeid.Name(id)), counts[id])
		m.store.Each(func(h table.Handle, u union.Union) bool {
			if u.ID() == id {
				fmt.Fprintf(&b, "  #%-4d %s\n", h, m.reg.Format(u))
			}
			return true
		})
	}
	return b.String()
}

func runInteractive(reg *union.Registry, log *zap.Logger) error {
	p := tea.NewProgram(newInteractiveModel(reg, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
