package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/ffigen"
	"github.com/wippyai/ffigen/decl"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	fnStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	abiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	previewStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelect modelState = iota
	statePreview
)

type interactiveModel struct {
	err      error
	filename string
	source   string
	bindings []ffigen.Binding
	preview  viewport.Model
	selected int
	width    int
	height   int
	state    modelState
	loaded   bool
}

type loadedMsg struct {
	err      error
	source   string
	bindings []ffigen.Binding
}

func newInteractiveModel(filename string) *interactiveModel {
	return &interactiveModel{
		filename: filename,
		preview:  viewport.New(80, 20),
		state:    stateSelect,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.load
}

func (m *interactiveModel) load() tea.Msg {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	bindings, err := ffigen.Scan(string(data))
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{source: string(data), bindings: bindings}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.loaded = true
		m.err = msg.err
		m.source = msg.source
		m.bindings = msg.bindings
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview.Width = msg.Width - 2
		m.preview.Height = msg.Height - 6
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		switch m.state {
		case stateSelect:
			return m.updateSelect(msg)
		case statePreview:
			return m.updatePreview(msg)
		}
	}
	return m, nil
}

func (m *interactiveModel) updateSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.bindings)-1 {
			m.selected++
		}
	case "enter":
		if len(m.bindings) == 0 {
			return m, nil
		}
		b := m.bindings[m.selected]
		item, err := b.Rewrite()
		if err != nil {
			m.preview.SetContent(errorStyle.Render(err.Error()))
		} else {
			m.preview.SetContent(renderPreview(m.source, &b, item))
		}
		m.preview.GotoTop()
		m.state = statePreview
	}
	return m, nil
}

func (m *interactiveModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.state = stateSelect
		return m, nil
	}
	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func renderPreview(source string, b *ffigen.Binding, item decl.Item) string {
	var sb strings.Builder
	sb.WriteString(helpStyle.Render("--- original ---"))
	sb.WriteByte('\n')
	sb.WriteString(source[b.Start:b.End])
	sb.WriteString("\n\n")
	sb.WriteString(helpStyle.Render("--- rewritten ---"))
	sb.WriteByte('\n')
	sb.WriteString(previewStyle.Render(decl.Print(item)))
	return sb.String()
}

func (m *interactiveModel) View() string {
	if !m.loaded {
		return "Loading " + m.filename + "...\n"
	}
	if m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n\nPress q to quit.\n"
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("ffigen: " + m.filename))
	sb.WriteString("\n\n")

	switch m.state {
	case stateSelect:
		if len(m.bindings) == 0 {
			sb.WriteString("No annotated declarations found.\n")
			break
		}
		for i, b := range m.bindings {
			line := fmt.Sprintf("%s  %-6s  %s  line %d",
				fnStyle.Render(b.Fn.Name),
				b.Mode().String(),
				abiStyle.Render(b.Cfg.ResolvedABI()),
				b.Line)
			if i == m.selected {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		sb.WriteString("\n")
		sb.WriteString(helpStyle.Render("up/down: select • enter: preview • q: quit"))
	case statePreview:
		sb.WriteString(m.preview.View())
		sb.WriteString("\n")
		sb.WriteString(helpStyle.Render("up/down: scroll • esc: back • q: quit"))
	}

	sb.WriteByte('\n')
	return sb.String()
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newInteractiveModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
