package wizard

import (
	"testing"

	"github.com/thiagokokada/spdx-guide/internal/prompt"
)

type answerKind int

const (
	kindSelect answerKind = iota
	kindConfirm
	kindInput
)

func (k answerKind) String() string {
	return [...]string{"select", "confirm", "input"}[k]
}

type answer struct {
	kind  answerKind
	index int
	yes   bool
	text  string
	err   error
}

func pick(i int) answer {
	return answer{kind: kindSelect, index: i}
}

func dismiss() answer {
	return answer{kind: kindSelect, err: prompt.ErrNoSelection}
}

func yes() answer {
	return answer{kind: kindConfirm, yes: true}
}

func no() answer {
	return answer{kind: kindConfirm}
}

func text(s string) answer {
	return answer{kind: kindInput, text: s}
}

func fail(k answerKind, err error) answer {
	return answer{kind: k, err: err}
}

// asked records one prompt shown to the user.
type asked struct {
	kind  answerKind
	label string
	items []string
	opts  prompt.InputOptions
}

// scriptedPrompter answers prompts from a fixed script and fails the test
// on any mismatch. Input emulates the terminal widget: empty answers take the
// default and rejected answers consume the next scripted input.
type scriptedPrompter struct {
	t       *testing.T
	script  []answer
	history []asked
}

func newScript(t *testing.T, answers ...answer) *scriptedPrompter {
	return &scriptedPrompter{t: t, script: answers}
}

func (p *scriptedPrompter) next(kind answerKind, label string) answer {
	p.t.Helper()
	if len(p.script) == 0 {
		p.t.Fatalf("unexpected %s prompt %q: script exhausted", kind, label)
	}
	a := p.script[0]
	p.script = p.script[1:]
	if a.kind != kind {
		p.t.Fatalf("prompt %q: got %s prompt, script expected %s", label, kind, a.kind)
	}
	return a
}

func (p *scriptedPrompter) Select(label string, items []string, def int) (int, error) {
	p.t.Helper()
	p.history = append(p.history, asked{kind: kindSelect, label: label, items: items})
	a := p.next(kindSelect, label)
	if a.err != nil {
		return 0, a.err
	}
	if a.index < 0 || a.index >= len(items) {
		p.t.Fatalf("prompt %q: index %d out of range for %v", label, a.index, items)
	}
	return a.index, nil
}

func (p *scriptedPrompter) Confirm(label string, def bool) (bool, error) {
	p.t.Helper()
	p.history = append(p.history, asked{kind: kindConfirm, label: label})
	a := p.next(kindConfirm, label)
	return a.yes, a.err
}

func (p *scriptedPrompter) Input(label string, opts prompt.InputOptions) (string, error) {
	p.t.Helper()
	p.history = append(p.history, asked{kind: kindInput, label: label, opts: opts})
	for {
		a := p.next(kindInput, label)
		if a.err != nil {
			return "", a.err
		}
		value := a.text
		if value == "" {
			value = opts.Default
		}
		if value == "" && !opts.AllowEmpty {
			p.t.Fatalf("prompt %q: empty answer not allowed", label)
		}
		if value != "" && opts.Validate != nil && opts.Validate(value) != nil {
			continue
		}
		return value, nil
	}
}

func (p *scriptedPrompter) labels() []string {
	out := make([]string, 0, len(p.history))
	for _, h := range p.history {
		out = append(out, h.label)
	}
	return out
}

func (p *scriptedPrompter) find(label string) (asked, bool) {
	for _, h := range p.history {
		if h.label == label {
			return h, true
		}
	}
	return asked{}, false
}

func (p *scriptedPrompter) done() {
	p.t.Helper()
	if len(p.script) != 0 {
		p.t.Fatalf("%d scripted answers left unused", len(p.script))
	}
}
