// Package spdx models the tag-value SPDX document assembled by the wizard.
//
// A Document is append-only: the interview writes each field once, in order,
// and the rendered text keeps that order exactly.
package spdx

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

const (
	Version     = "SPDX-2.3"
	DataLicense = "CC0-1.0"
	DocumentID  = "SPDXRef-DOCUMENT"

	NoAssertion = "NOASSERTION"
	None        = "NONE"

	documentHeader = "##### Document Information"
	packageHeader  = "##### Package Information"
)

// Tags used by the wizard.
const (
	TagSPDXVersion        = "SPDXVersion"
	TagDataLicense        = "DataLicense"
	TagSPDXID             = "SPDXID"
	TagLicenseListVersion = "LicenseListVersion"
	TagDocumentComment    = "DocumentComment"
	TagDocumentName       = "DocumentName"
	TagDocumentNamespace  = "DocumentNamespace"
	TagCreator            = "Creator"
	TagPackageName        = "PackageName"
	TagPackageVersion     = "PackageVersion"
	TagPackageSupplier    = "PackageSupplier"
	TagPackageOriginator  = "PackageOriginator"
	TagDownloadLocation   = "DownloadLocation"
	TagDeclaredLicense    = "DeclaredLicense"
)

const (
	LF   = "\n"
	CRLF = "\r\n"
)

// LineEnding is the platform line terminator.
var LineEnding = platformLineEnding(runtime.GOOS)

func platformLineEnding(goos string) string {
	if goos == "windows" {
		return CRLF
	}
	return LF
}

type LineKind uint8

const (
	LineBlank LineKind = iota
	LineComment
	LineEntry
)

// Line is one rendered line of a section. Tag and Value are set for entries,
// Text for comments.
type Line struct {
	Kind  LineKind
	Tag   string
	Value string
	Text  string
}

func (l Line) String() string {
	switch l.Kind {
	case LineComment:
		return "# " + l.Text
	case LineEntry:
		return l.Tag + ": " + l.Value
	default:
		return ""
	}
}

// Section is an ordered list of lines.
type Section struct {
	lines []Line
}

func (s *Section) AddEntry(tag, value string) {
	s.lines = append(s.lines, Line{Kind: LineEntry, Tag: tag, Value: value})
}

func (s *Section) AddComment(text string) {
	s.lines = append(s.lines, Line{Kind: LineComment, Text: text})
}

func (s *Section) AddBlank() {
	s.lines = append(s.lines, Line{Kind: LineBlank})
}

// Find returns the values of every entry with tag, in insertion order.
func (s *Section) Find(tag string) []string {
	var values []string
	for _, l := range s.lines {
		if l.Kind == LineEntry && l.Tag == tag {
			values = append(values, l.Value)
		}
	}
	return values
}

// First returns the earliest value written for tag.
func (s *Section) First(tag string) (string, bool) {
	for _, l := range s.lines {
		if l.Kind == LineEntry && l.Tag == tag {
			return l.Value, true
		}
	}
	return "", false
}

func (s *Section) render(b *strings.Builder, eol string) {
	for _, l := range s.lines {
		b.WriteString(l.String())
		b.WriteString(eol)
	}
}

// Document holds the two sections of an SPDX file, always rendered document
// info first.
type Document struct {
	DocumentInfo Section
	PackageInfo  Section
}

// Render produces the tag-value text using eol after every line, headers
// included. An empty eol means LineEnding.
func (d *Document) Render(eol string) string {
	if eol == "" {
		eol = LineEnding
	}
	var b strings.Builder
	b.WriteString(documentHeader)
	b.WriteString(eol)
	d.DocumentInfo.render(&b, eol)
	b.WriteString(eol)
	b.WriteString(packageHeader)
	b.WriteString(eol)
	d.PackageInfo.render(&b, eol)
	return b.String()
}

func (d *Document) String() string {
	return d.Render(LineEnding)
}

// WriteFile renders d to path, replacing any existing file.
func WriteFile(path string, d *Document, eol string) error {
	if err := os.WriteFile(path, []byte(d.Render(eol)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ParseLineEnding maps a configuration value (auto, lf, crlf) to a terminator.
func ParseLineEnding(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "auto":
		return LineEnding, nil
	case "lf":
		return LF, nil
	case "crlf":
		return CRLF, nil
	default:
		return "", fmt.Errorf("unknown line ending %q", raw)
	}
}
