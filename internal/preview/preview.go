// Package preview renders the changes an overwrite would make to an existing
// document.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/pmezard/go-difflib/difflib"
)

const contextLines = 3

// UnifiedDiff returns a unified diff from before to after, or "" when they are
// equal. CRLF endings are compared as LF.
func UnifiedDiff(name, before, after string) (string, error) {
	before = strings.ReplaceAll(before, "\r\n", "\n")
	after = strings.ReplaceAll(after, "\r\n", "\n")
	if before == after {
		return "", nil
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  contextLines,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", name, err)
	}
	return diff, nil
}

// Highlight writes diff to w using 256-color terminal escapes in style.
// A nil style writes the diff unchanged.
func Highlight(w io.Writer, diff string, style *chroma.Style) error {
	if style == nil {
		_, err := io.WriteString(w, diff)
		return err
	}
	lexer := lexers.Get("diff")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, diff)
	if err != nil {
		return fmt.Errorf("tokenise diff: %w", err)
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	if err := formatter.Format(w, style, iterator); err != nil {
		return fmt.Errorf("format diff: %w", err)
	}
	return nil
}
