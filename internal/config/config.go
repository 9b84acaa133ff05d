// Package config resolves spdx-guide settings from flags, environment
// variables, an optional config file and built-in defaults, in that order.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thiagokokada/spdx-guide/internal/git"
	"github.com/thiagokokada/spdx-guide/internal/spdx"
	"github.com/thiagokokada/spdx-guide/internal/theme"
)

// Default values.
const (
	DefaultDir        = "."
	DefaultFile       = "LICENSE.spdx"
	DefaultTheme      = "auto"
	DefaultBackend    = string(git.BackendNative)
	DefaultLineEnding = "auto"
)

var (
	ErrInvalidTheme      = errors.New("invalid theme")
	ErrInvalidBackend    = errors.New("invalid git backend")
	ErrInvalidLineEnding = errors.New("invalid line ending")
	ErrEmptyFile         = errors.New("output file name is empty")
)

// Config is the resolved configuration for one run.
type Config struct {
	// Dir is the project directory the wizard describes.
	Dir string `mapstructure:"dir"`
	// File is the document to write, relative to Dir unless absolute.
	File       string `mapstructure:"file"`
	Theme      string `mapstructure:"theme"`
	Language   string `mapstructure:"language"`
	Backend    string `mapstructure:"backend"`
	LineEnding string `mapstructure:"line_ending"`
	Verbose    bool   `mapstructure:"verbose"`
	DryRun     bool   `mapstructure:"dry_run"`
}

// Validate checks every enumerated setting.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.File) == "" {
		errs = append(errs, ErrEmptyFile)
	}
	if _, ok := theme.PreferenceFromString(c.Theme); !ok {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidTheme, c.Theme))
	}
	if _, err := git.ParseBackendKind(c.Backend); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidBackend, err))
	}
	if _, err := spdx.ParseLineEnding(c.LineEnding); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidLineEnding, err))
	}
	return errors.Join(errs...)
}

func (c *Config) ThemePreference() theme.Preference {
	pref, _ := theme.PreferenceFromString(c.Theme)
	return pref
}

func (c *Config) BackendKind() git.BackendKind {
	kind, err := git.ParseBackendKind(c.Backend)
	if err != nil {
		return git.BackendNative
	}
	return kind
}

// EOL is the line terminator for the written document.
func (c *Config) EOL() string {
	eol, err := spdx.ParseLineEnding(c.LineEnding)
	if err != nil {
		return spdx.LineEnding
	}
	return eol
}
