// Package prompt implements the three interactive widgets the wizard needs:
// pick one of N, yes/no, and free text.
package prompt

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thiagokokada/spdx-guide/internal/theme"
)

var (
	// ErrNoSelection is returned by Select when the user dismisses the list.
	ErrNoSelection = errors.New("no selection made")
	// ErrInterrupted is returned by every prompt on ctrl+c.
	ErrInterrupted = errors.New("interrupted")
)

type InputOptions struct {
	// Default is used when the user submits an empty line.
	Default string
	// Initial pre-fills the editable text.
	Initial string
	// AllowEmpty accepts an empty answer when there is no Default.
	AllowEmpty bool
	// Validate is called on non-empty answers; an error re-asks.
	Validate func(string) error
}

type Prompter interface {
	Select(label string, items []string, def int) (int, error)
	Confirm(label string, def bool) (bool, error)
	Input(label string, opts InputOptions) (string, error)
}

// Terminal runs each prompt as a short-lived bubbletea program.
type Terminal struct {
	in    io.Reader
	out   io.Writer
	theme *theme.Theme
	opts  []tea.ProgramOption
}

func NewTerminal(in io.Reader, out io.Writer, th *theme.Theme, opts ...tea.ProgramOption) *Terminal {
	if th == nil {
		th = theme.Plain()
	}
	return &Terminal{in: in, out: out, theme: th, opts: opts}
}

func (t *Terminal) run(m tea.Model) (tea.Model, error) {
	opts := append([]tea.ProgramOption{tea.WithInput(t.in), tea.WithOutput(t.out)}, t.opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("run prompt: %w", err)
	}
	return final, nil
}

func (t *Terminal) Select(label string, items []string, def int) (int, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("select %q: no items", label)
	}
	final, err := t.run(newSelectModel(label, items, def, t.theme))
	if err != nil {
		return 0, err
	}
	m := final.(selectModel)
	return m.chosen, m.err
}

func (t *Terminal) Confirm(label string, def bool) (bool, error) {
	final, err := t.run(newConfirmModel(label, def, t.theme))
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	return m.value, m.err
}

func (t *Terminal) Input(label string, opts InputOptions) (string, error) {
	final, err := t.run(newInputModel(label, opts, t.theme))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	return m.value, m.err
}
