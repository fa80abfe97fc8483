package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"securexid/internal/domain"
	"securexid/internal/review"
)

type extractOutput struct {
	Result *domain.ExtractionResult `json:"result,omitempty"`
	Pair   *domain.PairResult       `json:"pair,omitempty"`
	Review *review.Report           `json:"review,omitempty"`
}

func newExtractCmd(a *app) *cobra.Command {
	var (
		docType    string
		backFile   string
		withReview bool
	)

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract fields from one OCR text file (stdin when omitted)",
		Long: "Extract fields from one OCR text file (stdin when omitted).\n\n" +
			"With --back the input is the front scan and the named file the back scan\n" +
			"of the same document; the output then carries the merged pair.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			svc := a.service(nil)
			var out extractOutput
			switch {
			case backFile != "":
				back, err := readInput(cmd, []string{backFile})
				if err != nil {
					return err
				}
				pair := svc.ExtractPair(raw, back)
				out.Pair = &pair
				if withReview {
					merged := domain.ExtractionResult{DocumentType: pair.DocumentType, Fields: pair.Fields}
					rep := review.Check(&merged, time.Now())
					out.Review = &rep
				}
			case docType != "":
				res, err := svc.ExtractAs(raw, domain.ParseDocumentType(docType))
				if err != nil {
					return fmt.Errorf("extract as %s: %w", docType, err)
				}
				out.Result = &res
			default:
				res := svc.Extract(raw)
				out.Result = &res
			}

			if withReview && out.Result != nil {
				rep := review.Check(out.Result, time.Now())
				out.Review = &rep
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&docType, "type", "", "skip classification and extract as national_id, passport or license")
	cmd.Flags().StringVar(&backFile, "back", "", "back scan of the same document; merges both sides")
	cmd.Flags().BoolVar(&withReview, "review", false, "include a per-field review of the extracted values")
	cmd.MarkFlagsMutuallyExclusive("type", "back")
	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}
