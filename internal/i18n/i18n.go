// Package i18n holds the embedded message catalogs used by the wizard.
package i18n

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var locales embed.FS

// Supported lists the bundled catalogs, fallback first.
var Supported = []language.Tag{language.English, language.German}

var matcher = language.NewMatcher(Supported)

// Messages resolves message keys for one language, falling back to English
// for keys the selected catalog lacks.
type Messages struct {
	lang     language.Tag
	catalog  map[string]string
	fallback map[string]string
}

// Load picks the best bundled catalog for the requested languages. Requests
// may be BCP 47 tags or POSIX locales such as "de_DE.UTF-8".
func Load(requested ...string) (*Messages, error) {
	fallback, err := readCatalog(language.English)
	if err != nil {
		return nil, err
	}
	normalized := make([]string, 0, len(requested))
	for _, r := range requested {
		if n := normalizeLocale(r); n != "" {
			normalized = append(normalized, n)
		}
	}
	_, idx := language.MatchStrings(matcher, normalized...)
	tag := Supported[idx]
	m := &Messages{lang: tag, catalog: fallback, fallback: fallback}
	if tag != language.English {
		catalog, err := readCatalog(tag)
		if err != nil {
			return nil, err
		}
		m.catalog = catalog
	}
	slog.Debug("Loaded messages", slog.String("lang", tag.String()), slog.Any("requested", requested))
	return m, nil
}

func readCatalog(tag language.Tag) (map[string]string, error) {
	base, _ := tag.Base()
	name := "locales/" + base.String() + ".yaml"
	data, err := locales.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", name, err)
	}
	var catalog map[string]string
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", name, err)
	}
	return catalog, nil
}

// Language reports the selected catalog.
func (m *Messages) Language() language.Tag {
	return m.lang
}

// T returns the message for key with {name} placeholders replaced from the
// key/value pairs in args. Unknown keys render as the key itself.
func (m *Messages) T(key string, args ...string) string {
	msg, ok := m.catalog[key]
	if !ok {
		msg, ok = m.fallback[key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		pairs = append(pairs, "{"+args[i]+"}", args[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// RequestedLanguages reads the user's locale preference from the environment
// in POSIX precedence order.
func RequestedLanguages() []string {
	var langs []string
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" {
			langs = append(langs, v)
		}
	}
	if v := os.Getenv("LANGUAGE"); v != "" {
		langs = append(langs, strings.Split(v, ":")...)
	}
	return langs
}

// normalizeLocale turns "de_DE.UTF-8@euro" into "de-DE". "C" and "POSIX"
// carry no language and yield "".
func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(locale, "_", "-")
}
