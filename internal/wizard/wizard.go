// Package wizard drives the interview that assembles an SPDX document.
//
// Each Step asks at most a few questions, appends to the shared Document and
// returns the step to run next. A nil next step ends the interview.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/user"
	"strings"

	"github.com/google/uuid"

	"github.com/thiagokokada/spdx-guide/internal/buildinfo"
	"github.com/thiagokokada/spdx-guide/internal/i18n"
	"github.com/thiagokokada/spdx-guide/internal/license"
	"github.com/thiagokokada/spdx-guide/internal/prompt"
	"github.com/thiagokokada/spdx-guide/internal/spdx"
	"github.com/thiagokokada/spdx-guide/internal/theme"
	"github.com/thiagokokada/spdx-guide/internal/vcs"
)

// ErrMissingField means a step ran before the step that writes a field it
// depends on.
var ErrMissingField = errors.New("missing document field")

type Step interface {
	Name() string
	Advance(c *Context) (Step, error)
}

// Context is the state shared by every step of one interview.
type Context struct {
	// VCS is nil when no repository was detected. Steps never modify it.
	VCS *vcs.Info
	Doc *spdx.Document
	// Creators collects the free-form creator names, offered again when
	// picking a supplier or originator.
	Creators []string

	Prompt    prompt.Prompter
	Messages  *i18n.Messages
	Theme     *theme.Theme
	Validator license.Validator

	// Out receives status messages, Stdout the document on dry runs.
	Out    io.Writer
	Stdout io.Writer
	// Color enables the highlighted diff preview.
	Color bool

	Dir        string
	Filename   string
	DryRun     bool
	LineEnding string
	Tool       string

	NewID       func() uuid.UUID
	SystemUsers func() []string
}

func (c *Context) setDefaults() error {
	if c.Prompt == nil {
		return errors.New("no prompter configured")
	}
	if c.Doc == nil {
		c.Doc = &spdx.Document{}
	}
	if c.Messages == nil {
		m, err := i18n.Load()
		if err != nil {
			return err
		}
		c.Messages = m
	}
	if c.Theme == nil {
		c.Theme = theme.Plain()
	}
	if c.Validator == nil {
		c.Validator = license.SPDXValidator{}
	}
	if c.Out == nil {
		c.Out = io.Discard
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Dir == "" {
		c.Dir = "."
	}
	if c.LineEnding == "" {
		c.LineEnding = spdx.LineEnding
	}
	if c.Tool == "" {
		c.Tool = buildinfo.ToolIdentity()
	}
	if c.NewID == nil {
		c.NewID = uuid.New
	}
	if c.SystemUsers == nil {
		c.SystemUsers = systemUsers
	}
	return nil
}

// Run executes the interview from the first step until a step finishes it.
// The first failing step ends the run: the error is shown once on Out and
// returned wrapped with the step name. A canceled ctx stops the run before
// the next step and counts as an interruption.
func Run(ctx context.Context, c *Context) error {
	if err := c.setDefaults(); err != nil {
		return fmt.Errorf("setup wizard: %w", err)
	}
	step := Initial()
	for step != nil {
		if err := ctx.Err(); err != nil {
			err = fmt.Errorf("%w: %w", prompt.ErrInterrupted, err)
			c.reportError(err)
			return fmt.Errorf("step %s: %w", step.Name(), err)
		}
		slog.Debug("Advancing wizard", slog.String("step", step.Name()))
		next, err := step.Advance(c)
		if err != nil {
			c.reportError(err)
			return fmt.Errorf("step %s: %w", step.Name(), err)
		}
		step = next
	}
	return nil
}

// Initial is the first step of every interview.
func Initial() Step {
	return fixedPropertiesStep{}
}

func (c *Context) reportError(err error) {
	if errors.Is(err, prompt.ErrInterrupted) {
		fmt.Fprintln(c.Out, c.Theme.Error.Render(c.Messages.T("interrupted")))
		return
	}
	fmt.Fprintf(c.Out, "%s: %s\n", c.Messages.T("error"), c.Theme.Error.Render(err.Error()))
}

func (c *Context) println(msg string) {
	fmt.Fprintln(c.Out, msg)
}

// systemUsers returns the login and real name of the current OS user.
func systemUsers() []string {
	u, err := user.Current()
	if err != nil {
		slog.Debug("Lookup current user failed", slog.Any("error", err))
		return nil
	}
	// Name may hold GECOS extras such as "Jane Doe,,,".
	realName, _, _ := strings.Cut(u.Name, ",")
	return []string{u.Username, strings.TrimSpace(realName)}
}
