package report

import (
	"encoding/csv"
	"io"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter wraps csv.Writer for exporting entries as CSV.
type CSVWriter struct {
	csv  *csv.Writer
	opts Options
}

// NewCSVWriter creates a CSVWriter that writes CSV to w.
func NewCSVWriter(w io.Writer, opts Options) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w), opts: opts}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(Header(w.opts))
}

// WriteEntries converts entries to rows and writes them.
func (w *CSVWriter) WriteEntries(entries []Entry) error {
	for i := range entries {
		if err := w.csv.Write(entryToRow(&entries[i], w.opts)); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// WriteCSV writes the BOM, the header and every entry to w.
func WriteCSV(w io.Writer, entries []Entry, opts Options) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := NewCSVWriter(w, opts)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteEntries(entries); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
