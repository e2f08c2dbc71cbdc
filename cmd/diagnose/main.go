// Command diagnose scores a questionnaire answers file offline.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mind-engage/mindengage-diagnostic/internal/questionnaire"
)

type rootOptions struct {
	questionnairePath string
	logLevel          string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "diagnose",
		Short:         "Score maturity/pressure questionnaires from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVarP(&opts.questionnairePath, "questionnaire", "q", "",
		"questionnaire file (YAML or JSON); defaults to the built-in one")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "debug|info|warn|error")

	root.AddCommand(
		newReportCmd(opts),
		newValidateCmd(opts),
		newSchemaCmd(opts),
	)
	return root
}

func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(o.logLevel)); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func (o *rootOptions) schema() (questionnaire.Schema, error) {
	if o.questionnairePath == "" {
		return questionnaire.Default()
	}
	return questionnaire.LoadFile(o.questionnairePath)
}

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
