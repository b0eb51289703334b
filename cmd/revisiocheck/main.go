// Command revisiocheck lists the laboratory reports that contain a manual
// leucocyte revision.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SanteonNL/clinextract/batch"
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
		Use:          "revisiocheck INPUT_DIR",
		Short:        "List the PDFs that contain a " + manualRevision + " table",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, closeLog, err := logFlags.Setup()
			if err != nil {
				return err
			}
			defer closeLog()

			if err := batch.ValidateDir(args[0]); err != nil {
				log.Error().Err(err).Msg("Invalid input directory")
				return err
			}
			files, err := batch.Discover(args[0], batch.Extension(".pdf"))
			if err != nil {
				return err
			}

			matches, summary := NewChecker(log).Check(files)
			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintf(out, "No files contain '%s'.\n", manualRevision)
			} else {
				fmt.Fprintf(out, "Files containing '%s':\n", manualRevision)
				for _, m := range matches {
					fmt.Fprintf(out, " - %s\n", filepath.Base(m))
				}
			}
			summary.Log(log)
			return nil
		},
	}
	logFlags.Bind(cmd)
	return cmd
}
