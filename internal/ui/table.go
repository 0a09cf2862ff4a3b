package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table renders rows of data in aligned columns.
type Table struct {
	w    *tabwriter.Writer
	cols int
}

// NewTable creates a new table writer with the given column headers.
func NewTable(out io.Writer, headers ...string) *Table {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return &Table{w: tw, cols: len(headers)}
}

// Row appends a row. Booleans render as yes/no and empty values as "-".
// Missing trailing cells are filled with "-".
func (t *Table) Row(values ...any) {
	n := len(values)
	if t.cols > n {
		n = t.cols
	}
	parts := make([]string, n)
	for i := range parts {
		if i >= len(values) {
			parts[i] = "-"
			continue
		}
		parts[i] = cell(values[i])
	}
	_, _ = fmt.Fprintln(t.w, strings.Join(parts, "\t"))
}

// Flush writes the buffered output.
func (t *Table) Flush() error {
	return t.w.Flush()
}

func cell(v any) string {
	switch v := v.(type) {
	case bool:
		if v {
			return "yes"
		}
		return "no"
	case string:
		if v == "" {
			return "-"
		}
		return v
	case nil:
		return "-"
	default:
		return fmt.Sprintf("%v", v)
	}
}
