package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mind-engage/mindengage-diagnostic/internal/questionnaire"
)

func newSchemaCmd(root *rootOptions) *cobra.Command {
	var (
		cueOut  bool
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the questionnaire in use, or its CUE constraints",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if cueOut {
				_, err := fmt.Fprint(out, questionnaire.Constraints())
				return err
			}
			schema, err := root.schema()
			if err != nil {
				return err
			}
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(schema)
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(schema); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().BoolVar(&cueOut, "cue", false, "print the CUE definitions questionnaires are checked against")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print as JSON instead of YAML")
	return cmd
}
