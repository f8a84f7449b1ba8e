package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a report output format.
type Format string

// Supported report formats.
const (
	FormatPDF    Format = "pdf"
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
)

// ErrUnknownFormat is returned for unsupported report formats.
var ErrUnknownFormat = errors.New("unknown report format")

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatPDF, FormatText, FormatJSON, FormatNDJSON, FormatYAML}
}

// ParseFormat parses a format name, case-insensitively. "txt" is accepted
// for text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatText, FormatJSON, FormatNDJSON, FormatYAML:
		return f, nil
	case "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w %q (supported: pdf, text, json, ndjson, yaml)", ErrUnknownFormat, s)
	}
}

// FormatForPath infers the format from a file extension, returning fallback
// when the extension is not recognised.
func FormatForPath(path string, fallback Format) Format {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return fallback
	}
	if f, err := ParseFormat(ext); err == nil {
		return f
	}
	if ext == "yml" {
		return FormatYAML
	}
	return fallback
}

// Write renders r to w in the given format.
func Write(w io.Writer, format Format, r Report) error {
	switch format {
	case FormatPDF:
		return writePDF(w, r)
	case FormatText:
		return writeText(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatNDJSON:
		return json.NewEncoder(w).Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding yaml report: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// WriteFile renders r into path, creating parent directories.
func WriteFile(path string, format Format, r Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}

	if err = Write(f, format, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s report to %s: %w", format, path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing report file: %w", err)
	}
	return nil
}

func writeText(w io.Writer, r Report) error {
	var sb strings.Builder
	lines := r.Lines()

	sb.WriteString(lines[0].String())
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", len(r.Title)))
	sb.WriteString("\n\n")
	for _, line := range lines[1:] {
		sb.WriteString(line.String())
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	for _, line := range r.Metadata() {
		sb.WriteString(line.String())
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
