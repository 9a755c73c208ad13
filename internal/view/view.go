// Package view provides output formatting for plainmd commands.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// Format represents an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// ValidFormats returns the accepted output format names.
func ValidFormats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatPlain)}
}

// ValidateFormat checks an output format name. Empty means the default.
func ValidateFormat(format string) error {
	if format == "" {
		return nil
	}
	for _, f := range ValidFormats() {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q: must be one of %s", format, strings.Join(ValidFormats(), ", "))
}

// Renderer renders data in a specific format.
type Renderer struct {
	format  Format
	writer  io.Writer
	noColor bool
}

// NewRenderer creates a new renderer with the specified format.
func NewRenderer(format Format, noColor bool) *Renderer {
	if noColor {
		color.NoColor = true
	}
	return &Renderer{
		format:  format,
		writer:  os.Stdout,
		noColor: noColor,
	}
}

// Format returns the renderer's output format.
func (r *Renderer) Format() Format {
	return r.format
}

// SetWriter sets the output writer.
func (r *Renderer) SetWriter(w io.Writer) {
	r.writer = w
}

// RenderTable renders data as a table.
func (r *Renderer) RenderTable(headers []string, rows [][]string) {
	if r.format == FormatJSON {
		r.renderTableAsJSON(headers, rows)
		return
	}

	if r.format == FormatPlain {
		r.renderTableAsPlain(headers, rows)
		return
	}

	// Print header
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(r.writer, "  ")
		}
		fmt.Fprint(r.writer, h)
	}
	fmt.Fprintln(r.writer)

	// Print rows
	for _, row := range rows {
		for i, val := range row {
			if i > 0 {
				fmt.Fprint(r.writer, "  ")
			}
			fmt.Fprint(r.writer, val)
		}
		fmt.Fprintln(r.writer)
	}
}

func (r *Renderer) renderTableAsJSON(headers []string, rows [][]string) {
	var result []map[string]string
	for _, row := range rows {
		item := make(map[string]string)
		for i, header := range headers {
			if i < len(row) {
				item[strings.ToLower(header)] = row[i]
			}
		}
		result = append(result, item)
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(r.writer, string(data))
}

func (r *Renderer) renderTableAsPlain(headers []string, rows [][]string) {
	for _, row := range rows {
		for i, val := range row {
			if i > 0 {
				fmt.Fprint(r.writer, "\t")
			}
			fmt.Fprint(r.writer, val)
		}
		fmt.Fprintln(r.writer)
	}
}

// RenderJSON renders an object as JSON.
func (r *Renderer) RenderJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(r.writer, string(data))
	return nil
}

// RenderYAML renders an object as YAML, or as JSON when the format is json.
func (r *Renderer) RenderYAML(v interface{}) error {
	if r.format == FormatJSON {
		return r.RenderJSON(v)
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Fprint(r.writer, string(data))
	return nil
}

// RenderText renders plain text.
func (r *Renderer) RenderText(text string) {
	fmt.Fprintln(r.writer, text)
}

// RenderKeyValue renders a key-value pair.
func (r *Renderer) RenderKeyValue(key, value string) {
	if r.format == FormatJSON {
		fmt.Fprintf(r.writer, `{"%s": "%s"}`+"\n", key, value)
		return
	}
	bold := color.New(color.Bold)
	bold.Fprintf(r.writer, "%s: ", key)
	fmt.Fprintln(r.writer, value)
}

// Success prints a success message.
func (r *Renderer) Success(msg string) {
	green := color.New(color.FgGreen)
	green.Fprintln(r.writer, "✓ "+msg)
}

// Error prints an error message.
func (r *Renderer) Error(msg string) {
	red := color.New(color.FgRed)
	red.Fprintln(r.writer, "✗ "+msg)
}

// Note prints a dimmed informational line.
func (r *Renderer) Note(msg string) {
	dim := color.New(color.Faint)
	dim.Fprintln(r.writer, msg)
}

// Truncate shortens s to at most maxLen terminal cells, ending in "..." when
// there is room for it. Wide and multi-byte characters are never split.
func Truncate(s string, maxLen int) string {
	if runewidth.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return runewidth.Truncate(s, maxLen, "")
	}
	return runewidth.Truncate(s, maxLen, "...")
}
