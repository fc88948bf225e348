package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// PlainTableWriter renders kubectl-style tables: upper-case headers, columns
// separated by spaces, no box drawing. Widths ignore ANSI colour sequences,
// so coloured cells stay aligned.
type PlainTableWriter struct {
	out       io.Writer
	headers   []string
	rows      [][]string
	widths    []int
	gap       int
	noHeaders bool
}

// NewPlainTableWriter creates a writer that renders to out.
func NewPlainTableWriter(out io.Writer) *PlainTableWriter {
	return &PlainTableWriter{out: out, gap: 3}
}

// SetHeaders sets the columns. Headers are upper-cased.
func (w *PlainTableWriter) SetHeaders(headers ...string) {
	w.headers = make([]string, len(headers))
	w.widths = make([]int, len(headers))
	for i, h := range headers {
		w.headers[i] = strings.ToUpper(h)
		w.widths[i] = text.RuneWidthWithoutEscSequences(w.headers[i])
	}
}

// SetNoHeaders suppresses the header row.
func (w *PlainTableWriter) SetNoHeaders(noHeaders bool) {
	w.noHeaders = noHeaders
}

// AppendRow adds a row, padding or truncating it to the number of headers.
func (w *PlainTableWriter) AppendRow(cells ...string) {
	row := make([]string, len(w.headers))
	copy(row, cells)
	for i, cell := range row {
		w.widths[i] = max(w.widths[i], text.RuneWidthWithoutEscSequences(cell))
	}
	w.rows = append(w.rows, row)
}

// Render writes the table. Nothing is written for a table without headers,
// or without rows when headers are suppressed.
func (w *PlainTableWriter) Render() error {
	if len(w.headers) == 0 || (w.noHeaders && len(w.rows) == 0) {
		return nil
	}

	if !w.noHeaders {
		if err := w.writeRow(w.headers); err != nil {
			return err
		}
	}
	for _, row := range w.rows {
		if err := w.writeRow(row); err != nil {
			return err
		}
	}
	return nil
}

func (w *PlainTableWriter) writeRow(row []string) error {
	var sb strings.Builder
	last := len(row) - 1
	for i, cell := range row {
		if i == last {
			sb.WriteString(cell)
			break
		}
		sb.WriteString(text.Pad(cell, w.widths[i]+w.gap, ' '))
	}
	_, err := fmt.Fprintln(w.out, strings.TrimRight(sb.String(), " "))
	return err
}
