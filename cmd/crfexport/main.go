// Command crfexport splits SubjectData CSV exports of case report forms
// into one file per form.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/SanteonNL/clinextract/batch"
	"github.com/SanteonNL/clinextract/output"
	"github.com/SanteonNL/clinextract/util"
)

const longHelp = `Process CSV files for each form.

Repeat --skip-question or --skip-status once per pattern. Each value is
matched verbatim as a substring, commas included.`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		logFlags     util.LogFlags
		skipQuestion []string
		skipStatus   []string
	)
	cmd := &cobra.Command{
		Use:          "crfexport INPUT_FOLDER [--skip-question P]... [--skip-status P]...",
		Short:        "Process CSV files for each form",
		Long:         longHelp,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, closeLog, err := logFlags.Setup()
			if err != nil {
				return err
			}
			defer closeLog()

			inputDir := args[0]
			if err := batch.ValidateDir(inputDir); err != nil {
				log.Error().Err(err).Msg("Invalid input directory")
				return err
			}
			outputDir, err := util.SiblingDir(inputDir, "processed")
			if err != nil {
				return err
			}
			om, err := output.NewOutputManager(outputDir, log)
			if err != nil {
				log.Error().Err(err).Msg("Cannot write to output directory")
				return err
			}

			log.Info().
				Str("input", inputDir).
				Str("output", outputDir).
				Strs("skipQuestion", skipQuestion).
				Strs("skipStatus", skipStatus).
				Msg("Exporting forms")

			files, err := batch.Discover(inputDir, batch.PrefixSuffix(inputPrefix, ".csv"))
			if err != nil {
				return err
			}
			summary := NewFormExporter(skipQuestion, skipStatus, log).Run(files, om)
			summary.Log(log)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&skipQuestion, "skip-question", []string{"IDSub", "IDVer"}, "pattern to skip in the question column, repeatable")
	cmd.Flags().StringArrayVar(&skipStatus, "skip-status", nil, "pattern to skip in the status column, repeatable")
	logFlags.Bind(cmd)
	return cmd
}
