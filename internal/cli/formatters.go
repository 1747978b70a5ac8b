package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// SecretMask replaces secret values in displayed output. It is a
// fixed width so masked output leaks nothing about the value.
const SecretMask = "••••••••"

// TableFormatter renders aligned settings tables through a tabwriter.
type TableFormatter struct {
	w *tabwriter.Writer
}

// NewTableFormatter creates a table formatter writing to w
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{w: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

// Header writes the column titles with a dashed rule under each title
func (t *TableFormatter) Header(columns ...string) {
	fmt.Fprintln(t.w, strings.Join(columns, "\t"))
	rules := make([]string, len(columns))
	for i, c := range columns {
		rules[i] = strings.Repeat("-", len(c))
	}
	fmt.Fprintln(t.w, strings.Join(rules, "\t"))
}

// Row writes one table row
func (t *TableFormatter) Row(values ...string) {
	fmt.Fprintln(t.w, strings.Join(values, "\t"))
}

// Flush writes the buffered table to the underlying writer
func (t *TableFormatter) Flush() error {
	return t.w.Flush()
}

// OutputResults formats and outputs results based on the specified
// format. Table output is built by the callers themselves; this is the
// structured fallback.
func OutputResults(w io.Writer, format string, data any) error {
	switch OutputFormat(format) {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)

	case FormatYAML:
		buf, err := yaml.Marshal(data)
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(buf))
		return nil

	case FormatTable:
		fmt.Fprintf(w, "%v\n", data)
		return nil

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// MaskSecret hides a secret value in display output; empty stays empty
// so it remains visible that nothing is configured
func MaskSecret(value string) string {
	if value == "" {
		return ""
	}
	return SecretMask
}

// FormatValue renders a settings value for a table cell
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		if t {
			return "true"
		}
		return "false"
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

// TruncateString truncates a string to the specified length
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
