package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"securexid/internal/domain"
	"securexid/internal/metrics"
	"securexid/internal/report"
	"securexid/internal/review"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		outPath     string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Extract every OCR text file in a directory into a CSV or XLSX report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			format := strings.ToLower(filepath.Ext(outPath))
			if format != ".csv" && format != ".xlsx" {
				return fmt.Errorf("unsupported report format %q: use .csv or .xlsx", filepath.Ext(outPath))
			}
			if concurrency < 1 {
				concurrency = a.cfg.Batch.Concurrency
			}

			files, err := filepath.Glob(filepath.Join(dir, a.cfg.Batch.Glob))
			if err != nil {
				return fmt.Errorf("list %s: %w", dir, err)
			}
			if len(files) == 0 {
				return fmt.Errorf("%s: %w", dir, domain.ErrNoInputFiles)
			}
			sort.Strings(files)

			reg := prometheus.NewRegistry()
			svc := a.service(metrics.New(reg))

			runID := uuid.New()
			log := a.logger.With().Str("run_id", runID.String()).Logger()
			log.Info().Int("files", len(files)).Int("concurrency", concurrency).Msg("batch started")

			start := time.Now()
			entries := make([]report.Entry, len(files))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(concurrency)
			for i, path := range files {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					entry := report.Entry{File: filepath.Base(path)}
					data, err := os.ReadFile(path)
					if err != nil {
						log.Warn().Err(err).Str("file", path).Msg("skipping unreadable file")
						entry.Err = err
						entries[i] = entry
						return nil
					}
					entry.Result = svc.Extract(string(data))
					rep := review.Check(&entry.Result, time.Now())
					entry.Review = &rep
					entries[i] = entry
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return fmt.Errorf("batch interrupted: %w", err)
			}

			run := report.NewRun(runID, dir, start, time.Now(), entries)
			if err := writeReport(outPath, format, run, entries, a); err != nil {
				return err
			}

			if a.cfg.Metrics.Textfile != "" {
				if err := prometheus.WriteToTextfile(a.cfg.Metrics.Textfile, reg); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
			}

			log.Info().
				Int("classified", run.Classified).
				Int("unknown", run.Unknown).
				Int("failed", run.Failed).
				Int("complete", run.Complete).
				Str("report", outPath).
				Msg("batch finished")
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d files, %d classified, %d unknown, %d failed\n",
				outPath, run.Files, run.Classified, run.Unknown, run.Failed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "report.csv", "report path; the extension (.csv or .xlsx) selects the format")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "files processed in parallel (overrides SECUREXID_BATCH_CONCURRENCY)")
	return cmd
}

func writeReport(path, format string, run report.Run, entries []report.Entry, a *app) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() { _ = f.Close() }()

	opts := report.Options{IncludeRawText: a.cfg.Report.IncludeRawText}
	switch format {
	case ".xlsx":
		err = report.WriteXLSX(f, run, entries, a.cfg.Report.SheetName, opts)
	default:
		err = report.WriteCSV(f, entries, opts)
	}
	if err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return f.Close()
}
