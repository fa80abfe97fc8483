package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// RunSheet is the name of the sheet describing the batch run.
const RunSheet = "Run"

// DefaultResultsSheet is used when no results sheet name is given.
const DefaultResultsSheet = "Results"

// WriteXLSX writes a workbook with one row per entry on the results sheet and
// the run summary on the Run sheet.
func WriteXLSX(w io.Writer, run Run, entries []Entry, sheet string, opts Options) error {
	if sheet == "" || sheet == RunSheet {
		sheet = DefaultResultsSheet
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("naming results sheet: %w", err)
	}
	if err := setRow(f, sheet, 1, Header(opts)); err != nil {
		return err
	}
	for i := range entries {
		if err := setRow(f, sheet, i+2, entryToRow(&entries[i], opts)); err != nil {
			return err
		}
	}
	if len(entries) > 0 {
		if err := f.AutoFilter(sheet, fmt.Sprintf("A1:%s%d", lastColumn(opts), len(entries)+1), nil); err != nil {
			return fmt.Errorf("adding filter: %w", err)
		}
	}

	if _, err := f.NewSheet(RunSheet); err != nil {
		return fmt.Errorf("creating run sheet: %w", err)
	}
	summary := [][]string{
		{"Run ID", run.ID.String()},
		{"Source", run.Source},
		{"Started At", run.StartedAt.Format(time.RFC3339)},
		{"Finished At", run.FinishedAt.Format(time.RFC3339)},
		{"Files", fmt.Sprint(run.Files)},
		{"Classified", fmt.Sprint(run.Classified)},
		{"Unknown", fmt.Sprint(run.Unknown)},
		{"Failed", fmt.Sprint(run.Failed)},
		{"Review Complete", fmt.Sprint(run.Complete)},
	}
	for i, r := range summary {
		if err := setRow(f, RunSheet, i+1, r); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func lastColumn(opts Options) string {
	name, _ := excelize.ColumnNumberToName(len(Header(opts)))
	return name
}
