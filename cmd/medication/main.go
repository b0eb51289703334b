// Command medication converts a plain-text medication listing into CSV.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/SanteonNL/clinextract/output"
	"github.com/SanteonNL/clinextract/util"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		logFlags    util.LogFlags
		mappingFile string
	)
	cmd := &cobra.Command{
		Use:          "medication INPUT_FILE [OUTPUT_DIR]",
		Short:        "Convert medication data from text format to CSV",
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, closeLog, err := logFlags.Setup()
			if err != nil {
				return err
			}
			defer closeLog()

			inputFile := args[0]
			outputDir := filepath.Dir(inputFile)
			if len(args) > 1 {
				outputDir = args[1]
			}
			return run(inputFile, outputDir, mappingFile, log)
		},
	}
	cmd.Flags().StringVar(&mappingFile, "map-id", "", "NHC to study ID mapping CSV used to convert numeric IDs")
	logFlags.Bind(cmd)
	return cmd
}

func run(inputFile, outputDir, mappingFile string, log zerolog.Logger) error {
	if !util.IsFile(inputFile) {
		err := fmt.Errorf("input file %s does not exist", inputFile)
		log.Error().Err(err).Msg("Invalid input file")
		return err
	}

	var mapping *util.Mapping
	if mappingFile != "" {
		m, err := util.LoadNHCMapping(mappingFile)
		if err != nil {
			log.Error().Err(err).Msg("Failed to load mapping")
			return err
		}
		mapping = m
	}

	f, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()
	r, err := util.NewDecodingReader(f, "UTF-8")
	if err != nil {
		return err
	}

	converter := NewConverter(mapping, log)
	rows, err := converter.Convert(r)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read input file")
		return err
	}

	om, err := output.NewOutputManager(outputDir, log)
	if err != nil {
		return err
	}
	outputFile := util.BaseName(inputFile) + ".csv"
	if err := om.WriteCSV(outputFile, &rows); err != nil {
		log.Error().Err(err).Msg("Failed to write output file")
		return err
	}

	log.Info().
		Str("input", inputFile).
		Str("output", om.Path(outputFile)).
		Int("medications", len(rows)).
		Bool("mapping", converter.mapping != nil).
		Msg("Process completed")
	return nil
}
