// Package formatter renders catalog entities into portable export
// formats (CSV, Markdown, plain text and JSON). All formats flatten
// entities through their schema so every exporter sees the same field
// order and the same textual cell values.
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/trackflix/trackflix/internal/schema"
)

// Format identifies an export encoding.
type Format string

const (
	CSV      Format = "csv"
	Markdown Format = "markdown"
	Text     Format = "text"
	JSON     Format = "json"
)

// Formats returns the supported export formats in display order.
func Formats() []Format {
	return []Format{CSV, Markdown, Text, JSON}
}

// ParseFormat maps a user supplied string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	case "text", "txt":
		return Text, nil
	case "json":
		return JSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	switch f {
	case Markdown:
		return "md"
	case Text:
		return "txt"
	default:
		return string(f)
	}
}

// row flattens an entity into textual cells ordered by the schema.
func row(sc schema.Schema, item schema.Entity) []string {
	buf := schema.Encode(item, sc)
	cells := make([]string, 0, len(sc.Fields))
	for _, f := range sc.Fields {
		cells = append(cells, buf[f.Name])
	}
	return cells
}

// ExportToCSV renders the entities as a CSV document with a header row
// of field labels.
func ExportToCSV(sc schema.Schema, items []schema.Entity) ([]byte, error) {
	var out bytes.Buffer
	w := csv.NewWriter(&out)

	header := make([]string, 0, len(sc.Fields))
	for _, f := range sc.Fields {
		header = append(header, f.Label)
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, item := range items {
		if err := w.Write(row(sc, item)); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// ExportToMarkdown renders the entities as a Markdown document with a
// title heading and a table of all fields.
func ExportToMarkdown(sc schema.Schema, items []schema.Entity) []byte {
	var out bytes.Buffer
	fmt.Fprintf(&out, "# %s\n\n", sc.Title)
	fmt.Fprintf(&out, "%d entries\n\n", len(items))

	out.WriteString("|")
	for _, f := range sc.Fields {
		fmt.Fprintf(&out, " %s |", f.Label)
	}
	out.WriteString("\n|")
	for range sc.Fields {
		out.WriteString(" --- |")
	}
	out.WriteString("\n")

	for _, item := range items {
		out.WriteString("|")
		for _, cell := range row(sc, item) {
			cell = strings.ReplaceAll(cell, "|", "\\|")
			fmt.Fprintf(&out, " %s |", cell)
		}
		out.WriteString("\n")
	}
	return out.Bytes()
}

// ExportToText renders the entities as an indented plain text listing,
// one block per entity.
func ExportToText(sc schema.Schema, items []schema.Entity) []byte {
	var out bytes.Buffer
	fmt.Fprintf(&out, "%s (%d entries)\n", sc.Title, len(items))
	for i, item := range items {
		buf := schema.Encode(item, sc)
		fmt.Fprintf(&out, "\n%d.\n", i+1)
		for _, f := range sc.Fields {
			fmt.Fprintf(&out, "  %s: %s\n", f.Label, buf[f.Name])
		}
	}
	return out.Bytes()
}

// ExportToJSON marshals the entities with indentation, preserving the
// raw field values rather than their textual form.
func ExportToJSON(items []schema.Entity) ([]byte, error) {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	return data, nil
}

// Export renders the entities in the requested format.
func Export(f Format, sc schema.Schema, items []schema.Entity) ([]byte, error) {
	switch f {
	case CSV:
		return ExportToCSV(sc, items)
	case Markdown:
		return ExportToMarkdown(sc, items), nil
	case Text:
		return ExportToText(sc, items), nil
	case JSON:
		return ExportToJSON(items)
	default:
		return nil, fmt.Errorf("unknown export format %q", f)
	}
}

// WriteExport renders the entities and writes them to a file named
// after the resource under dir, creating dir if needed. It returns the
// path of the file written.
func WriteExport(f Format, sc schema.Schema, items []schema.Entity, dir string) (string, error) {
	data, err := Export(f, sc, items)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s.%s", sc.Resource, f.Extension()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

// Manifest summarizes a bulk export run.
type Manifest struct {
	ExportedAt string         `json:"exported_at"`
	BaseURL    string         `json:"base_url"`
	Format     Format         `json:"format"`
	Resources  map[string]int `json:"resources"`
	Files      []string       `json:"files"`
}

// WriteManifest writes the bulk export manifest next to the exported
// files and returns its path.
func WriteManifest(m Manifest, dir string) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}
	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}
