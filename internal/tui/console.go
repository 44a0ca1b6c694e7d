// Package tui implements the interactive prompt console. The operator types
// a free-text request, sees the detected intent update live with every
// keystroke, and presses enter to execute it.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/routewise/dispatch/internal/cli"
	"github.com/routewise/dispatch/internal/engine"
	"github.com/routewise/dispatch/internal/model"
)

type executedMsg struct {
	result *engine.Result
	err    error
}

// Model holds the prompt console state.
type Model struct {
	dispatcher *engine.Dispatcher
	detected   *model.DetectedIntent
	lastResult *engine.Result
	lastError  error
	input      textarea.Model
	keymap     KeyMap
	width      int
	quitting   bool
}

// NewModel creates a prompt console backed by the given dispatcher.
func NewModel(dispatcher *engine.Dispatcher) Model {
	input := textarea.New()
	input.Placeholder = "Describe what you need, e.g. \"Schedule John Smith for Route 7 next Tuesday 6–2pm\""
	input.SetHeight(3)
	input.ShowLineNumbers = false
	input.Focus()

	return Model{
		dispatcher: dispatcher,
		input:      input,
		keymap:     DefaultKeyMap(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit), key.Matches(msg, m.keymap.ForceQuit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keymap.Clear):
			m.input.Reset()
			m.detected = nil
			m.lastResult = nil
			m.lastError = nil
			return m, nil

		case key.Matches(msg, m.keymap.Execute):
			if m.detected == nil {
				return m, nil
			}
			return m, m.execute(m.detected)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(msg.Width - 4)

	case executedMsg:
		m.lastResult = msg.result
		m.lastError = msg.err
		if msg.err == nil {
			m.input.Reset()
			m.detected = nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.detected = m.dispatcher.Analyze(m.input.Value())
	return m, cmd
}

// View renders the console: input box, live intent preview, and the outcome
// of the last executed command.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(cli.FormatTitle("Dispatch Console"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.detected != nil {
		b.WriteString(cli.RenderBox("Detected", cli.RenderIntent(m.detected)))
		b.WriteString("\n")
	}

	if m.lastError != nil {
		b.WriteString(cli.FormatError(m.lastError.Error()))
		b.WriteString("\n")
	} else if m.lastResult != nil {
		b.WriteString(cli.FormatSuccess(m.lastResult.Message))
		b.WriteString("\n")
		for _, name := range m.lastResult.Coverage {
			b.WriteString("  " + cli.FormatInfo("Available for coverage: "+name) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render("enter execute · ctrl+u clear · esc quit"))
	return b.String()
}

func (m Model) execute(detected *model.DetectedIntent) tea.Cmd {
	return func() tea.Msg {
		result, err := m.dispatcher.Execute(context.Background(), detected)
		return executedMsg{result: result, err: err}
	}
}

// Run starts the prompt console and blocks until the user quits.
func Run(dispatcher *engine.Dispatcher) error {
	program := tea.NewProgram(NewModel(dispatcher), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
