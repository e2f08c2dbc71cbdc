package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mind-engage/mindengage-diagnostic/internal/assessment"
	"github.com/mind-engage/mindengage-diagnostic/internal/diagnostic"
)

func newReportCmd(root *rootOptions) *cobra.Command {
	var (
		file      string
		jsonOut   bool
		exportOut bool
	)
	cmd := &cobra.Command{
		Use:   "report -f answers.yaml",
		Short: "Compute the diagnostic report for an answers file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOut && exportOut {
				return errors.New("--json and --export are mutually exclusive")
			}
			schema, err := root.schema()
			if err != nil {
				return err
			}
			f, err := readAnswers(file)
			if err != nil {
				return err
			}
			svc := assessment.NewService(assessment.NewInMemoryStore(), schema,
				assessment.WithLogger(root.logger(cmd.ErrOrStderr())))
			answers, maturity, err := sanitize(svc, f)
			if err != nil {
				return err
			}
			v := svc.Preview(answers, maturity)

			out := cmd.OutOrStdout()
			switch {
			case exportOut:
				b, err := diagnostic.BuildExport(v.Report, answers, v.Narrative.Tips, time.Now()).Marshal()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(b))
				return err
			case jsonOut:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(v)
			default:
				printReport(out, v)
				return nil
			}
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "answers file (YAML or JSON)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the full report as JSON")
	cmd.Flags().BoolVar(&exportOut, "export", false, "print the export artifact")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func printReport(w io.Writer, v assessment.ReportView) {
	r := v.Report
	fmt.Fprintf(w, "SSI %.1f   OPI %.1f   gap %+.1f\n\n", r.SSI, r.OPI, r.AdequacyGap)
	fmt.Fprintln(w, v.Narrative.Summary)

	fmt.Fprintln(w, "\nDimensions:")
	for _, d := range r.Dimensions {
		fmt.Fprintf(w, "  %-14s %5.1f  (avg %.2f, %d/%d answered)\n", d.Name, d.Score100, d.Avg, d.Answered, d.Total)
	}
	fmt.Fprintln(w, "\nPressure:")
	for _, c := range r.Pressure.Breakdown {
		fmt.Fprintf(w, "  %-22s raw %.0f  score %5.1f  x %.2f = %5.2f\n", c.Factor, c.Raw, c.Score100, c.Weight, c.Contribution)
	}
	fmt.Fprintf(w, "\nStrengths:  %s\nWeaknesses: %s\n", strings.Join(v.Narrative.Strengths, ", "), strings.Join(v.Narrative.Weaknesses, ", "))
	if len(r.Risk.Flags) > 0 {
		fmt.Fprintln(w, "\nRisk flags:")
		for _, f := range r.Risk.Flags {
			fmt.Fprintf(w, "  ! %s\n", f)
		}
	}
	fmt.Fprintln(w, "\nGuidance:")
	for _, t := range v.Narrative.Tips {
		fmt.Fprintf(w, "  - %s\n", t)
	}
	if !v.Progress.Complete {
		fmt.Fprintf(w, "\n(%d questions unanswered)\n", len(v.Progress.Unanswered))
	}
}
