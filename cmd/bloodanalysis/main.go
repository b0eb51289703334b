// Command bloodanalysis extracts patient metadata, blood counts and IgE
// allergy panels from laboratory report PDFs into CSV files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SanteonNL/clinextract/batch"
	"github.com/SanteonNL/clinextract/output"
	"github.com/SanteonNL/clinextract/util"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logFlags util.LogFlags
	cmd := &cobra.Command{
		Use:          "bloodanalysis INPUT_DIR OUTPUT_DIR MAPPING_FILE",
		Short:        "Extract data from blood analysis PDFs and save to structured CSV files",
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, closeLog, err := logFlags.Setup()
			if err != nil {
				return err
			}
			defer closeLog()

			inputDir, outputDir, mappingFile := args[0], args[1], args[2]
			if err := batch.ValidateDir(inputDir); err != nil {
				log.Error().Err(err).Msg("Invalid input directory")
				return err
			}
			if !util.IsFile(mappingFile) {
				err := fmt.Errorf("%w: %s", util.ErrMappingNotFound, mappingFile)
				log.Error().Err(err).Msg("Invalid mapping file")
				return err
			}

			om, err := output.NewOutputManager(outputDir, log)
			if err != nil {
				log.Error().Err(err).Msg("Cannot write to output directory")
				return err
			}
			for _, dir := range []string{hematologyDir, immunologyDir} {
				if err := om.EnsureDir(dir); err != nil {
					log.Error().Err(err).Msg("Failed to create output directories")
					return err
				}
			}

			mapping, err := util.LoadNHCMapping(mappingFile)
			if err != nil {
				log.Error().Err(err).Msg("Failed to load mapping")
				return err
			}

			files, err := batch.Discover(inputDir, batch.Extension(".pdf"))
			if err != nil {
				return err
			}
			log.Info().Str("input", inputDir).Int("files", len(files)).Msg("Processing PDFs")

			processor := NewReportProcessor(mapping, log)
			summary := processor.ProcessFiles(files)
			if err := processor.WriteAll(om); err != nil {
				log.Error().Err(err).Msg("Failed to write results")
				return err
			}

			log.Info().Str("output", om.GetBaseDir()).Msg("Extraction completed")
			summary.Log(log)
			return nil
		},
	}
	logFlags.Bind(cmd)
	return cmd
}
