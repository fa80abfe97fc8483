// Package report writes batch extraction results as CSV or XLSX.
package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"securexid/internal/domain"
	"securexid/internal/review"
)

// Entry is one input file and what was extracted from it. Err is set when the
// file could not be read; Result is then empty.
type Entry struct {
	File   string
	Result domain.ExtractionResult
	Review *review.Report
	Err    error
}

// Run describes one batch invocation.
type Run struct {
	ID         uuid.UUID
	Source     string
	StartedAt  time.Time
	FinishedAt time.Time
	Files      int
	Classified int
	Unknown    int
	Failed     int
	Complete   int
}

// NewRun counts the outcomes in entries.
func NewRun(id uuid.UUID, source string, started, finished time.Time, entries []Entry) Run {
	r := Run{ID: id, Source: source, StartedAt: started, FinishedAt: finished, Files: len(entries)}
	for i := range entries {
		e := &entries[i]
		switch {
		case e.Err != nil:
			r.Failed++
		case e.Result.DocumentType == domain.DocumentTypeUnknown:
			r.Unknown++
		default:
			r.Classified++
		}
		if e.Review != nil && e.Review.Complete {
			r.Complete++
		}
	}
	return r
}

// Options controls which optional columns are written.
type Options struct {
	IncludeRawText bool
}

// columns defines the header row. Raw Text is appended when requested.
var columns = []string{
	"File",
	"Document Type",
	"Side",
	"Document Number",
	"Name",
	"Date of Birth",
	"Gender",
	"Nationality",
	"Valid Until",
	"Address",
	"Populated Fields",
	"Review Complete",
	"Missing Fields",
	"Reason",
}

// Header returns the column names for opts.
func Header(opts Options) []string {
	h := append([]string(nil), columns...)
	if opts.IncludeRawText {
		h = append(h, "Raw Text")
	}
	return h
}

// entryToRow converts one entry to a row matching Header(opts). Fields the
// document type does not carry, or that were not found, are left empty.
func entryToRow(e *Entry, opts Options) []string {
	row := make([]string, len(Header(opts)))
	row[0] = e.File

	if e.Err != nil {
		row[13] = e.Err.Error()
		return row
	}

	res := &e.Result
	row[1] = string(res.DocumentType)
	row[2] = string(res.Side)
	row[10] = strconv.Itoa(res.PopulatedFields())
	row[13] = res.Reason
	if opts.IncludeRawText {
		row[14] = res.RawText
	}

	if res.Fields != nil {
		v := res.Fields.Values()
		row[3] = v[domain.FieldDocumentNumber]
		row[4] = v[domain.FieldName]
		row[5] = v[domain.FieldDateOfBirth]
		row[6] = v[domain.FieldGender]
		row[7] = v[domain.FieldNationality]
		row[8] = v[domain.FieldValidUntil]
		row[9] = v[domain.FieldAddress]
	}

	if e.Review != nil {
		row[11] = formatBool(e.Review.Complete)
		missing := make([]string, len(e.Review.Missing))
		for i, f := range e.Review.Missing {
			missing[i] = string(f)
		}
		row[12] = strings.Join(missing, "; ")
	}
	return row
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
