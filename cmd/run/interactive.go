package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lua "github.com/yuin/gopher-lua"

	"github.com/wippyai/lua-runtime/engine"
	"github.com/wippyai/lua-runtime/runtime"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const historyWindow = 20

type replEntry struct {
	input  string
	output string
	failed bool
}

type interactiveModel struct {
	state   *runtime.State
	input   textinput.Model
	history []replEntry
	pending []string
	script  string
}

func newInteractiveModel(script string) *interactiveModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Lua expression or statement"
	ti.Width = 72
	ti.Focus()

	m := &interactiveModel{input: ti, script: script}
	m.state = runtime.New(runtime.WithRouter(runtime.NewRouter()))
	m.state.SetHandler(func(status engine.Status, message string) {
		m.pending = append(m.pending, status.String()+": "+message)
	})
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	if m.script != "" {
		if m.state.RunFile(m.script) {
			m.history = append(m.history, replEntry{
				input:  "dofile " + m.script,
				output: "loaded",
			})
		} else {
			m.history = append(m.history, replEntry{
				input:  "dofile " + m.script,
				output: m.takePending(),
				failed: true,
			})
		}
	}
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.state.Close()
			return m, tea.Quit

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			if line != "" {
				m.history = append(m.history, m.eval(line))
				if len(m.history) > historyWindow {
					m.history = m.history[len(m.history)-historyWindow:]
				}
			}
			m.input.Reset()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// eval runs one REPL line. An expression is tried first so that `1 + 1`
// echoes its value; anything that fails to parse as an expression runs
// as a statement.
func (m *interactiveModel) eval(line string) replEntry {
	if results, ok := m.run("return " + line); ok {
		return replEntry{input: line, output: formatResults(results)}
	}
	m.pending = nil // discard the expression parse failure

	if _, ok := m.run(line); ok {
		return replEntry{input: line, output: "ok"}
	}
	return replEntry{input: line, output: m.takePending(), failed: true}
}

// run compiles and executes source, collecting every returned value.
func (m *interactiveModel) run(source string) ([]lua.LValue, bool) {
	unit := m.state.LoadString(source)
	if !unit.Valid() {
		return nil, false
	}

	vm := m.state.VM()
	guard := engine.SaveStack(vm)
	defer guard.Restore()

	vm.Push(unit.Function())
	if err := vm.PCall(0, lua.MultRet, nil); err != nil {
		m.pending = append(m.pending, err.Error())
		return nil, false
	}

	var results []lua.LValue
	for i := guard.Top() + 1; i <= vm.GetTop(); i++ {
		results = append(results, vm.Get(i))
	}
	return results, true
}

func (m *interactiveModel) takePending() string {
	out := strings.Join(m.pending, "\n")
	m.pending = nil
	return out
}

func formatResults(results []lua.LValue) string {
	if len(results) == 0 {
		return "ok"
	}
	parts := make([]string, len(results))
	for i, v := range results {
		parts[i] = v.String()
	}
	return strings.Join(parts, "\t")
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Lua REPL"))
	if m.script != "" {
		b.WriteString(" ")
		b.WriteString(m.script)
	}
	b.WriteString("\n\n")

	for _, e := range m.history {
		b.WriteString(inputStyle.Render("> " + e.input))
		b.WriteString("\n")
		if e.output != "" {
			if e.failed {
				b.WriteString(errorStyle.Render(e.output))
			} else {
				b.WriteString(resultStyle.Render(e.output))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter eval • ctrl+c quit"))

	return b.String()
}

func runInteractive(script string) error {
	p := tea.NewProgram(newInteractiveModel(script), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
