package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/SanteonNL/clinextract/batch"
	"github.com/SanteonNL/clinextract/util"
)

// table is a CSV file read into memory.
type table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// LoaderService copies CSV outputs into PostgreSQL tables.
type LoaderService struct {
	db       *sqlx.DB
	schema   string
	truncate bool
	log      zerolog.Logger
}

func NewLoaderService(db *sqlx.DB, schema string, truncate bool, log zerolog.Logger) *LoaderService {
	return &LoaderService{db: db, schema: schema, truncate: truncate, log: log}
}

// LoadFiles loads every file, logging and skipping the ones that fail.
func (svc *LoaderService) LoadFiles(ctx context.Context, files []string) batch.Summary {
	var summary batch.Summary
	for _, file := range files {
		n, err := svc.LoadFile(ctx, file)
		if err != nil {
			svc.log.Error().Err(err).Str("file", file).Msg("Failed to load file")
			summary.Fail(file, err)
			continue
		}
		svc.log.Info().Str("file", filepath.Base(file)).Int("rows", n).Msg("Loaded file")
		summary.Done()
	}
	return summary
}

// LoadFile copies one CSV file into its table in a single transaction and
// returns the number of rows loaded.
func (svc *LoaderService) LoadFile(ctx context.Context, path string) (int, error) {
	t, err := readTableFile(path)
	if err != nil {
		return 0, err
	}

	tx, err := svc.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []string{createSchemaSQL(svc.schema), createTableSQL(svc.schema, t.Name, t.Columns)}
	if svc.truncate {
		statements = append(statements, truncateSQL(svc.schema, t.Name))
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return 0, fmt.Errorf("failed to prepare table %s: %w", t.Name, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyInSchema(svc.schema, t.Name, t.Columns...))
	if err != nil {
		return 0, fmt.Errorf("failed to start copy into %s: %w", t.Name, err)
	}
	for _, row := range t.Rows {
		args := make([]interface{}, len(t.Columns))
		for i := range args {
			if i < len(row) {
				args[i] = row[i]
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			stmt.Close()
			return 0, fmt.Errorf("failed to copy row into %s: %w", t.Name, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, fmt.Errorf("failed to flush copy into %s: %w", t.Name, err)
	}
	if err := stmt.Close(); err != nil {
		return 0, fmt.Errorf("failed to close copy into %s: %w", t.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit %s: %w", t.Name, err)
	}
	return len(t.Rows), nil
}

func readTableFile(path string) (table, error) {
	charset, err := util.DetectEncoding(path, util.DefaultSampleSize)
	if err != nil {
		return table{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return table{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r, err := util.NewDecodingReader(f, charset)
	if err != nil {
		return table{}, err
	}
	t, err := readTable(r)
	if err != nil {
		return table{}, fmt.Errorf("%s: %w", path, err)
	}
	t.Name = tableName(path)
	return t, nil
}

func readTable(r io.Reader) (table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return table{}, errors.New("file has no header")
	}
	if err != nil {
		return table{}, fmt.Errorf("failed to read header: %w", err)
	}
	t := table{Columns: make([]string, len(header))}
	for i, h := range header {
		t.Columns[i] = strings.TrimSpace(h)
		if t.Columns[i] == "" {
			t.Columns[i] = fmt.Sprintf("column_%d", i+1)
		}
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return table{}, fmt.Errorf("failed to read row: %w", err)
		}
		if len(record) > len(t.Columns) {
			return table{}, fmt.Errorf("row has %d fields, header has %d", len(record), len(t.Columns))
		}
		t.Rows = append(t.Rows, record)
	}
	return t, nil
}

// tableName is the file name without extension.
func tableName(path string) string {
	return util.BaseName(path)
}

func qualified(schema, name string) string {
	return pq.QuoteIdentifier(schema) + "." + pq.QuoteIdentifier(name)
}

func createSchemaSQL(schema string) string {
	return "CREATE SCHEMA IF NOT EXISTS " + pq.QuoteIdentifier(schema)
}

func createTableSQL(schema, name string, columns []string) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = pq.QuoteIdentifier(c) + " TEXT"
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", qualified(schema, name), strings.Join(defs, ", "))
}

func truncateSQL(schema, name string) string {
	return "TRUNCATE TABLE " + qualified(schema, name)
}
