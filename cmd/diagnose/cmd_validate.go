package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mind-engage/mindengage-diagnostic/internal/assessment"
)

var errIncomplete = errors.New("answers incomplete")

func newValidateCmd(root *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate -f answers.yaml",
		Short: "Check an answers file against the questionnaire",
		Long: `Rejects unknown question ids and reports which questions are still
unanswered. Exits non-zero when the answers are incomplete.`,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			p := schema.Progress(answers, maturity)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "context   %d/%d\n", p.Context.Answered, p.Context.Total)
			fmt.Fprintf(out, "maturity  %d/%d\n", p.Maturity.Answered, p.Maturity.Total)
			for _, d := range schema.StructuralMaturity.Dimensions {
				sp := p.Dimensions[strings.ToLower(d)]
				fmt.Fprintf(out, "  %-14s %d/%d\n", d, sp.Answered, sp.Total)
			}
			if p.Complete {
				fmt.Fprintln(out, "complete")
				return nil
			}
			for _, id := range p.Unanswered {
				fmt.Fprintf(out, "missing: %s\n", id)
			}
			return fmt.Errorf("%w: %d unanswered", errIncomplete, len(p.Unanswered))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "answers file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
