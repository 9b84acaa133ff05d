package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thiagokokada/spdx-guide/internal/buildinfo"
	"github.com/thiagokokada/spdx-guide/internal/config"
	"github.com/thiagokokada/spdx-guide/internal/git"
	"github.com/thiagokokada/spdx-guide/internal/i18n"
	"github.com/thiagokokada/spdx-guide/internal/prompt"
	"github.com/thiagokokada/spdx-guide/internal/theme"
	"github.com/thiagokokada/spdx-guide/internal/vcs"
	"github.com/thiagokokada/spdx-guide/internal/wizard"
)

var (
	ErrNotTerminal = errors.New("standard input is not a terminal")
	// ErrAborted wraps a wizard failure that was already shown to the user.
	ErrAborted = errors.New("wizard aborted")
)

// newPrompter builds the interactive prompter; tests replace it.
var newPrompter = func(in io.Reader, out io.Writer, th *theme.Theme) (prompt.Prompter, error) {
	if !isTerminal(in) {
		return nil, ErrNotTerminal
	}
	return prompt.NewTerminal(in, out, th), nil
}

// isTerminal reports whether v is an *os.File attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCommand(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx)
}

func newRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:   buildinfo.Name,
		Short: "Interactively create an SPDX document for a project",
		Long: `spdx-guide asks a few questions about the project in --dir and writes an
SPDX tag-value document describing it. Answers are pre-filled from the
project's git history when available.`,
		Version:       buildinfo.VersionWithTags(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath, c.Flags())
			if err != nil {
				return err
			}
			return run(c.Context(), cfg, in, out, errOut)
		},
	}

	flags := root.Flags()
	flags.StringVar(&configPath, "config", "", "config file (default .spdx-guide.yaml in the working or home directory)")
	flags.StringP("dir", "d", config.DefaultDir, "directory to run spdx-guide in")
	flags.StringP("file", "f", config.DefaultFile, "SPDX file to generate, relative to --dir")
	flags.String("theme", config.DefaultTheme, "color mode: auto, light, or dark")
	flags.String("lang", "", "message language such as en or de (default from the environment)")
	flags.String("backend", config.DefaultBackend, "git backend: native or cli")
	flags.String("line-ending", config.DefaultLineEnding, "line ending of the written file: auto, lf, or crlf")
	flags.BoolP("verbose", "v", false, "enable verbose logging")
	flags.Bool("dry-run", false, "print the document to stdout instead of writing it")

	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	return root
}

func run(ctx context.Context, cfg *config.Config, in io.Reader, out, errOut io.Writer) error {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level})))
	slog.Debug("Starting",
		slog.String("version", buildinfo.VersionWithTags()),
		slog.String("backend", string(cfg.BackendKind())),
	)
	if cfg.BackendKind() == git.BackendCLI {
		if v, err := git.GitVersion(); err == nil {
			slog.Debug("Using git CLI", slog.String("version", v), slog.String("min", git.MinGitVersion()))
		}
	}

	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return fmt.Errorf("resolve dir: %w", err)
	}
	if st, err := os.Stat(dir); err != nil {
		return fmt.Errorf("stat dir: %w", err)
	} else if !st.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	requested := i18n.RequestedLanguages()
	if cfg.Language != "" {
		requested = []string{cfg.Language}
	}
	msgs, err := i18n.Load(requested...)
	if err != nil {
		return err
	}

	th := theme.New(cfg.ThemePreference())
	slog.Debug("Resolved presentation",
		slog.String("lang", msgs.Language().String()),
		slog.Bool("dark", th.IsDark()),
	)
	prompter, err := newPrompter(in, errOut, th)
	if err != nil {
		return err
	}

	info := detect(dir, cfg.BackendKind(), msgs, errOut)

	err = wizard.Run(ctx, &wizard.Context{
		VCS:        info,
		Prompt:     prompter,
		Messages:   msgs,
		Theme:      th,
		Out:        errOut,
		Stdout:     out,
		Color:      !color.NoColor && isTerminal(errOut),
		Dir:        dir,
		Filename:   cfg.File,
		DryRun:     cfg.DryRun,
		LineEnding: cfg.EOL(),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAborted, err)
	}
	return nil
}

// detect prints the detection banner and returns the snapshot, or nil when
// dir is not under version control.
func detect(dir string, kind git.BackendKind, msgs *i18n.Messages, w io.Writer) *vcs.Info {
	fmt.Fprintln(w, msgs.T("detecting-vcs", "dir", color.BlueString(dir)))
	info, ok := vcs.Detect(dir, git.Opener(kind))
	if !ok {
		fmt.Fprintln(w, msgs.T("no-vcs"))
		return nil
	}
	fmt.Fprintln(w, msgs.T("found-vcs",
		"name", color.GreenString(info.Name),
		"commits", humanize.Comma(int64(info.CommitsScanned)),
	))
	return info
}
