package wizard

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alecthomas/chroma/v2"

	"github.com/thiagokokada/spdx-guide/internal/preview"
	"github.com/thiagokokada/spdx-guide/internal/spdx"
)

// createFileStep writes the finished document and ends the interview.
type createFileStep struct{}

func (createFileStep) Name() string { return "create-file" }

func (createFileStep) Advance(c *Context) (Step, error) {
	path := c.OutputPath()
	rendered := c.Doc.Render(c.LineEnding)

	if c.DryRun {
		c.println(c.Messages.T("dry-run", "file", path))
		if _, err := io.WriteString(c.Stdout, rendered); err != nil {
			return nil, fmt.Errorf("print document: %w", err)
		}
		return nil, nil
	}

	if err := c.previewOverwrite(path, rendered); err != nil {
		return nil, err
	}
	c.println(c.Messages.T("creating-file", "file", path))
	if err := spdx.WriteFile(path, c.Doc, c.LineEnding); err != nil {
		return nil, err
	}
	return nil, nil
}

// OutputPath is Filename resolved against Dir.
func (c *Context) OutputPath() string {
	if filepath.IsAbs(c.Filename) {
		return c.Filename
	}
	return filepath.Join(c.Dir, c.Filename)
}

// previewOverwrite shows what replacing an existing file would change.
func (c *Context) previewOverwrite(path, rendered string) error {
	existing, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	diff, err := preview.UnifiedDiff(filepath.Base(path), string(existing), rendered)
	if err != nil || diff == "" {
		return err
	}
	c.println(c.Messages.T("overwrite-diff", "file", path))
	var style *chroma.Style
	if c.Color {
		style = c.Theme.DiffStyle()
	}
	return preview.Highlight(c.Out, diff, style)
}
