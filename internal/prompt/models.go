package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thiagokokada/spdx-guide/internal/theme"
)

type selectModel struct {
	label  string
	items  []string
	cursor int
	chosen int
	done   bool
	err    error
	theme  *theme.Theme
}

func newSelectModel(label string, items []string, def int, th *theme.Theme) selectModel {
	if def < 0 || def >= len(items) {
		def = 0
	}
	return selectModel{label: label, items: items, cursor: def, chosen: -1, theme: th}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c":
		m.err = ErrInterrupted
		m.done = true
		return m, tea.Quit
	case "esc", "q":
		m.err = ErrNoSelection
		m.done = true
		return m, tea.Quit
	case "up", "k", "shift+tab":
		m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(m.items)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.items) - 1
	case "enter", " ":
		m.chosen = m.cursor
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m selectModel) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Prompt.Render(m.label))
	if m.done {
		if m.err == nil {
			b.WriteString(" " + m.theme.Answer.Render(m.items[m.chosen]))
		}
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString("\n")
	for i, item := range m.items {
		if i == m.cursor {
			b.WriteString(m.theme.Cursor.Render("> ") + m.theme.Selected.Render(item))
		} else {
			b.WriteString("  " + m.theme.Item.Render(item))
		}
		b.WriteString("\n")
	}
	return b.String()
}

type confirmModel struct {
	label string
	def   bool
	value bool
	done  bool
	err   error
	theme *theme.Theme
}

func newConfirmModel(label string, def bool, th *theme.Theme) confirmModel {
	return confirmModel{label: label, def: def, theme: th}
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch strings.ToLower(key.String()) {
	case "ctrl+c":
		m.err = ErrInterrupted
	case "y":
		m.value = true
	case "n":
		m.value = false
	case "enter", "esc":
		m.value = m.def
	default:
		return m, nil
	}
	m.done = true
	return m, tea.Quit
}

func (m confirmModel) View() string {
	hint := "[y/N]"
	if m.def {
		hint = "[Y/n]"
	}
	line := m.theme.Prompt.Render(m.label) + " "
	if !m.done {
		return line + m.theme.Hint.Render(hint) + " "
	}
	if m.err == nil {
		answer := "no"
		if m.value {
			answer = "yes"
		}
		line += m.theme.Answer.Render(answer)
	}
	return line + "\n"
}

type inputModel struct {
	label   string
	opts    InputOptions
	input   textinput.Model
	value   string
	problem string
	done    bool
	err     error
	theme   *theme.Theme
}

func newInputModel(label string, opts InputOptions, th *theme.Theme) inputModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = opts.Default
	ti.SetValue(opts.Initial)
	ti.CursorEnd()
	ti.Focus()
	return inputModel{label: label, opts: opts, input: ti, theme: th}
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			m.err = ErrInterrupted
			m.done = true
			return m, tea.Quit
		case "esc":
			return m, nil
		case "enter":
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		value = m.opts.Default
	}
	if value == "" && !m.opts.AllowEmpty {
		m.problem = "a value is required"
		return m, nil
	}
	if value != "" && m.opts.Validate != nil {
		if err := m.opts.Validate(value); err != nil {
			m.problem = err.Error()
			return m, nil
		}
	}
	m.value = value
	m.problem = ""
	m.done = true
	return m, tea.Quit
}

func (m inputModel) View() string {
	line := m.theme.Prompt.Render(m.label) + " "
	if m.done {
		if m.err == nil {
			line += m.theme.Answer.Render(m.value)
		}
		return line + "\n"
	}
	if m.opts.Default != "" {
		line += m.theme.Hint.Render("("+m.opts.Default+")") + " "
	}
	line += m.input.View()
	if m.problem != "" {
		line += "\n" + m.theme.Error.Render(m.problem)
	}
	return line
}
