// Command csvload copies the CSV outputs of the extraction tools into
// PostgreSQL, one table per file.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/SanteonNL/clinextract/batch"
	"github.com/SanteonNL/clinextract/util"
)

var errNoDSN = errors.New("no database connection string: set --dsn or DATABASE_URL")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		logFlags util.LogFlags
		dsn      string
		schema   string
		truncate bool
	)
	cmd := &cobra.Command{
		Use:          "csvload DIR",
		Short:        "Load CSV files into PostgreSQL tables",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, closeLog, err := logFlags.Setup()
			if err != nil {
				return err
			}
			defer closeLog()

			if dsn == "" {
				dsn = cfg.DatabaseURL
			}
			if dsn == "" {
				log.Error().Err(errNoDSN).Msg("Missing database configuration")
				return errNoDSN
			}

			files, err := batch.DiscoverTree(args[0], batch.Extension(".csv"))
			if err != nil {
				log.Error().Err(err).Msg("Invalid input directory")
				return err
			}

			db, err := sqlx.Connect("postgres", dsn)
			if err != nil {
				log.Error().Err(err).Msg("Failed to connect to the database")
				return err
			}
			defer db.Close()

			log.Info().Str("input", args[0]).Str("schema", schema).Int("files", len(files)).Msg("Loading CSV files")
			summary := NewLoaderService(db, schema, truncate, log).LoadFiles(context.Background(), files)
			summary.Log(log)
			return nil
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "PostgreSQL connection string (default DATABASE_URL)")
	cmd.Flags().StringVar(&schema, "schema", "public", "schema of the created tables")
	cmd.Flags().BoolVar(&truncate, "truncate", false, "empty each table before loading")
	logFlags.Bind(cmd)
	return cmd
}
