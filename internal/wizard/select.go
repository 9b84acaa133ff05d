package wizard

import (
	"errors"
	"slices"

	"github.com/thiagokokada/spdx-guide/internal/prompt"
)

// choice is an answer picked from a list; index is -1 for free text.
type choice struct {
	value string
	index int
}

// selectOrInput offers items followed by "other". Picking "other", or having
// no items at all, asks for free text instead. ok is false when the list was
// dismissed or the free text left empty.
func (c *Context) selectOrInput(items []string, selectLabel, inputLabel string) (choice, bool, error) {
	if len(items) > 0 {
		options := append(slices.Clone(items), c.Messages.T("other"))
		idx, err := c.Prompt.Select(selectLabel, options, 0)
		if errors.Is(err, prompt.ErrNoSelection) {
			return choice{}, false, nil
		}
		if err != nil {
			return choice{}, false, err
		}
		if idx < len(items) {
			return choice{value: items[idx], index: idx}, true, nil
		}
	}
	text, err := c.Prompt.Input(inputLabel, prompt.InputOptions{AllowEmpty: true})
	if err != nil {
		return choice{}, false, err
	}
	if text == "" {
		return choice{}, false, nil
	}
	return choice{value: text, index: -1}, true, nil
}

// uniqueNonEmpty drops empty strings and later duplicates, keeping order.
func uniqueNonEmpty(values ...[]string) []string {
	var out []string
	for _, vs := range values {
		for _, v := range vs {
			if v != "" && !slices.Contains(out, v) {
				out = append(out, v)
			}
		}
	}
	return out
}
