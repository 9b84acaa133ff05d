// Package theme picks terminal colors for the wizard prompts and the diff
// preview, following the desktop light/dark preference when asked to.
package theme

import (
	"log/slog"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	darkmode "github.com/thiagokokada/dark-mode-go"
)

type Preference int

const (
	Auto Preference = iota
	Light
	Dark
)

func (p Preference) String() string {
	switch p {
	case Light:
		return "light"
	case Dark:
		return "dark"
	default:
		return "auto"
	}
}

// PreferenceFromString maps a config value to a Preference; ok is false for
// anything other than auto, light or dark.
func PreferenceFromString(raw string) (Preference, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case Dark.String():
		return Dark, true
	case Light.String():
		return Light, true
	case Auto.String(), "":
		return Auto, true
	default:
		return Auto, false
	}
}

type colorPalette struct {
	Name      string
	Accent    string
	Muted     string
	Error     string
	Success   string
	DiffStyle string
}

var (
	lightPalette = colorPalette{
		Name:      "light",
		Accent:    "#0969da",
		Muted:     "#6e7781",
		Error:     "#cf222e",
		Success:   "#1a7f37",
		DiffStyle: "github",
	}
	darkPalette = colorPalette{
		Name:      "dark",
		Accent:    "#58a6ff",
		Muted:     "#8b949e",
		Error:     "#ff7b72",
		Success:   "#3fb950",
		DiffStyle: "github-dark",
	}
	detectDarkMode = darkmode.IsDarkMode
)

func paletteForPreference(pref Preference) colorPalette {
	switch pref {
	case Dark:
		return darkPalette
	case Light:
		return lightPalette
	default:
		if detectDarkMode != nil {
			if dark, err := detectDarkMode(); err == nil {
				if dark {
					return darkPalette
				}
			} else {
				slog.Debug("Detect dark-mode failed", slog.Any("error", err))
			}
		}
		return lightPalette
	}
}

// Theme holds the resolved styles used by the prompts and status output.
type Theme struct {
	palette colorPalette

	Prompt   lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Item     lipgloss.Style
	Hint     lipgloss.Style
	Answer   lipgloss.Style
	Error    lipgloss.Style
}

// New resolves pref, probing the desktop setting for Auto.
func New(pref Preference) *Theme {
	p := paletteForPreference(pref)
	accent := lipgloss.Color(p.Accent)
	return &Theme{
		palette:  p,
		Prompt:   lipgloss.NewStyle().Bold(true),
		Cursor:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		Selected: lipgloss.NewStyle().Foreground(accent),
		Item:     lipgloss.NewStyle(),
		Hint:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		Answer:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Success)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)).Bold(true),
	}
}

// Plain returns a theme that renders no escape sequences, for tests and
// non-color output.
func Plain() *Theme {
	s := lipgloss.NewStyle()
	return &Theme{
		palette:  lightPalette,
		Prompt:   s,
		Cursor:   s,
		Selected: s,
		Item:     s,
		Hint:     s,
		Answer:   s,
		Error:    s,
	}
}

func (t *Theme) IsDark() bool {
	return t.palette.Name == darkPalette.Name
}

// DiffStyle returns the chroma style used to highlight diffs.
func (t *Theme) DiffStyle() *chroma.Style {
	if st := styles.Get(t.palette.DiffStyle); st != nil {
		return st
	}
	return styles.Fallback
}
