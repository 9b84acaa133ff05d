package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagokokada/spdx-guide/internal/git"
	"github.com/thiagokokada/spdx-guide/internal/spdx"
	"github.com/thiagokokada/spdx-guide/internal/theme"
)

// isolate points HOME at an empty directory and clears the env overrides so
// a developer's own config cannot leak into the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"DIR", "FILE", "THEME", "LANGUAGE", "BACKEND", "LINE_ENDING", "VERBOSE", "DRY_RUN"} {
		t.Setenv(envPrefix+"_"+key, "")
		os.Unsetenv(envPrefix + "_" + key)
	}
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("dir", DefaultDir, "")
	fs.String("file", DefaultFile, "")
	fs.String("theme", DefaultTheme, "")
	fs.String("lang", "", "")
	fs.String("backend", DefaultBackend, "")
	fs.String("line-ending", DefaultLineEnding, "")
	fs.Bool("verbose", false, "")
	fs.Bool("dry-run", false, "")
	return fs
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", testFlags())
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Dir:        DefaultDir,
		File:       DefaultFile,
		Theme:      DefaultTheme,
		Backend:    DefaultBackend,
		LineEnding: DefaultLineEnding,
	}, cfg)
	assert.Equal(t, theme.Auto, cfg.ThemePreference())
	assert.Equal(t, git.BackendNative, cfg.BackendKind())
	assert.Equal(t, spdx.LineEnding, cfg.EOL())
}

func TestLoad_ConfigFile(t *testing.T) {
	isolate(t)

	path := writeConfig(t, "theme: dark\nbackend: cli\nline_ending: crlf\nlanguage: de\ndry_run: true\n")
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, theme.Dark, cfg.ThemePreference())
	assert.Equal(t, git.BackendCLI, cfg.BackendKind())
	assert.Equal(t, spdx.CRLF, cfg.EOL())
	assert.Equal(t, "de", cfg.Language)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, DefaultFile, cfg.File)
}

func TestLoad_HomeConfigFile(t *testing.T) {
	isolate(t)

	home := os.Getenv("HOME")
	require.NoError(t, os.WriteFile(filepath.Join(home, configName+".yaml"), []byte("file: SPDX.spdx\n"), 0o644))
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "SPDX.spdx", cfg.File)
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	path := writeConfig(t, "theme: dark\nfile: from-file.spdx\nbackend: cli\n")
	t.Setenv("SPDX_GUIDE_THEME", "light")
	t.Setenv("SPDX_GUIDE_LINE_ENDING", "lf")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--file", "from-flag.spdx", "--verbose"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "from-flag.spdx", cfg.File, "flag beats file")
	assert.Equal(t, "light", cfg.Theme, "env beats file")
	assert.Equal(t, "cli", cfg.Backend, "file beats default")
	assert.Equal(t, spdx.LF, cfg.EOL())
	assert.True(t, cfg.Verbose)
}

func TestLoad_UnchangedFlagsDoNotOverrideFile(t *testing.T) {
	isolate(t)

	path := writeConfig(t, "theme: dark\n")
	cfg, err := Load(path, testFlags())
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.ErrorContains(t, err, "read config")
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		content string
		err     error
	}{
		{name: "theme", content: "theme: solarized\n", err: ErrInvalidTheme},
		{name: "backend", content: "backend: libgit2\n", err: ErrInvalidBackend},
		{name: "line ending", content: "line_ending: cr\n", err: ErrInvalidLineEnding},
		{name: "file", content: "file: \"\"\n", err: ErrEmptyFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), nil)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	t.Parallel()

	cfg := &Config{File: "x", Theme: "neon", Backend: "svn", LineEnding: "cr"}
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalidTheme)
	assert.ErrorIs(t, err, ErrInvalidBackend)
	assert.ErrorIs(t, err, git.ErrUnknownBackend)
	assert.ErrorIs(t, err, ErrInvalidLineEnding)
	assert.NotErrorIs(t, err, ErrEmptyFile)
}
