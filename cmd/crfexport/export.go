package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/SanteonNL/clinextract/batch"
	"github.com/SanteonNL/clinextract/models/clinical"
	"github.com/SanteonNL/clinextract/output"
	"github.com/SanteonNL/clinextract/util"
)

const (
	inputPrefix = "SubjectData"
	sitePrefix  = "Site:"
	// Rows before the answers: export title and column header.
	preambleRows = 2
	// Questions carrying this marker are export bookkeeping.
	exportYear = "2025"
)

var ErrNoForm = errors.New("no form detected")

// FormExporter splits case report form exports into one CSV per form.
type FormExporter struct {
	log          zerolog.Logger
	skipQuestion []string
	skipStatus   []string
}

func NewFormExporter(skipQuestion, skipStatus []string, log zerolog.Logger) *FormExporter {
	return &FormExporter{log: log, skipQuestion: skipQuestion, skipStatus: skipStatus}
}

// Run exports every file into om. Existing outputs are never overwritten.
func (e *FormExporter) Run(files []string, om *output.OutputManager) batch.Summary {
	var summary batch.Summary
	for _, file := range files {
		name := filepath.Base(file)
		log := e.log.With().Str("file", name).Logger()
		log.Info().Msg("Processing file")

		form, rows, err := e.ProcessFile(file)
		if err != nil {
			log.Error().Err(err).Msg("Failed to process file")
			summary.Fail(file, err)
			continue
		}
		if len(rows) == 0 {
			log.Warn().Msg("No data rows found after processing, skipping file")
			summary.Skip()
			continue
		}

		outputFile := normalizeForm(form) + ".csv"
		log.Info().Str("form", form).Str("output", outputFile).Msg("Detected form")
		if om.Exists(outputFile) {
			log.Warn().Str("output", outputFile).Msg("Output file already exists, skipping to avoid overwrite")
			summary.Skip()
			continue
		}
		if err := om.WriteCSV(outputFile, &rows); err != nil {
			log.Error().Err(err).Msg("Failed to write output")
			summary.Fail(file, err)
			continue
		}
		summary.Done()
	}
	return summary
}

// ProcessFile decodes one export and returns its form name and answers.
func (e *FormExporter) ProcessFile(path string) (string, []clinical.CRFAnswer, error) {
	charset, err := util.DetectEncoding(path, util.DefaultSampleSize)
	if err != nil {
		return "", nil, err
	}
	e.log.Debug().Str("file", filepath.Base(path)).Str("encoding", charset).Msg("Detected encoding")

	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r, err := util.NewDecodingReader(f, charset)
	if err != nil {
		return "", nil, err
	}
	return e.parse(r)
}

func (e *FormExporter) parse(r io.Reader) (string, []clinical.CRFAnswer, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		rows          []clinical.CRFAnswer
		subject, form string
	)
	for line := 0; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if line < preambleRows {
			continue
		}
		if len(record) < 3 {
			return "", nil, fmt.Errorf("row %d has %d columns, expected question, value and status", line+1, len(record))
		}

		question := strings.TrimSpace(record[0])
		value := strings.TrimSpace(record[1])
		status := strings.TrimSpace(record[2])
		if e.shouldSkip(question, status) {
			continue
		}
		if strings.HasPrefix(question, sitePrefix) {
			subject, form, err = parseSite(question)
			if err != nil {
				return "", nil, fmt.Errorf("row %d: %w", line+1, err)
			}
			continue
		}
		if subject != "" && form != "" {
			rows = append(rows, clinical.CRFAnswer{ID: subject, Question: question, Value: value, Status: status})
		}
	}
	if form == "" {
		return "", nil, ErrNoForm
	}
	return form, rows, nil
}

func (e *FormExporter) shouldSkip(question, status string) bool {
	if strings.Contains(question, exportYear) {
		return true
	}
	for _, p := range e.skipQuestion {
		if strings.Contains(question, p) {
			return true
		}
	}
	for _, p := range e.skipStatus {
		if strings.Contains(status, p) {
			return true
		}
	}
	return false
}

// parseSite reads a "Site: x/Subject: y/Visit: z/Form: w" context line.
func parseSite(question string) (subject, form string, err error) {
	parts := strings.Split(question, "/")
	if len(parts) < 4 {
		return "", "", fmt.Errorf("malformed site line %q", question)
	}
	subject, err = fieldValue(parts[1])
	if err != nil {
		return "", "", err
	}
	form, err = fieldValue(parts[3])
	if err != nil {
		return "", "", err
	}
	return subject, form, nil
}

func fieldValue(part string) (string, error) {
	fields := strings.Split(part, ":")
	if len(fields) < 2 {
		return "", fmt.Errorf("malformed site field %q", part)
	}
	return strings.TrimSpace(fields[1]), nil
}

func normalizeForm(form string) string {
	return strings.ReplaceAll(strings.ToLower(form), " ", "_")
}
