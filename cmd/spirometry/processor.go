package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/SanteonNL/clinextract/batch"
	"github.com/SanteonNL/clinextract/layout"
	"github.com/SanteonNL/clinextract/models/clinical"
	"github.com/SanteonNL/clinextract/output"
	"github.com/SanteonNL/clinextract/util"
)

const spirometryCSV = "spirometry_auto.csv"

var (
	// ErrNoPDFs is returned when the input directory holds no PDF files.
	ErrNoPDFs = errors.New("no PDF files found")
	// ErrNoData is returned by WriteAll when no report yielded a value.
	ErrNoData = errors.New("no spirometry data found in the PDF files")
)

// SpirometryProcessor collects the long-format values of spirometry reports.
type SpirometryProcessor struct {
	log     zerolog.Logger
	mapping *util.Mapping
	open    func(path string) (*layout.Document, error)
	rows    []clinical.SpirometryValue
}

func NewSpirometryProcessor(mapping *util.Mapping, log zerolog.Logger) *SpirometryProcessor {
	return &SpirometryProcessor{log: log, mapping: mapping, open: layout.Open}
}

// ProcessFiles extracts every file, logging and skipping the ones that fail.
func (p *SpirometryProcessor) ProcessFiles(files []string) batch.Summary {
	var summary batch.Summary
	for _, file := range files {
		name := filepath.Base(file)
		p.log.Info().Str("file", name).Msg("Processing file")
		n, err := p.ProcessFile(file)
		if err != nil {
			p.log.Error().Err(err).Str("file", name).Msg("Failed to process file")
			summary.Fail(file, err)
			continue
		}
		p.log.Debug().Str("file", name).Int("values", n).Msg("Extracted spirometry")
		summary.Done()
	}
	return summary
}

// ProcessFile extracts the first page of one report and returns the number
// of values found.
func (p *SpirometryProcessor) ProcessFile(path string) (int, error) {
	doc, err := p.open(path)
	if err != nil {
		return 0, err
	}
	first, ok := doc.FirstPage()
	if !ok {
		return 0, fmt.Errorf("document has no pages")
	}

	var lines []string
	for _, l := range first.Lines() {
		lines = append(lines, l.Text())
	}
	info := extractPatientInfo(lines)
	id := p.mapping.StudyIDOrUnknown(info.NHC)

	n := 0
	for _, rec := range parseSection(lines, p.log.With().Str("file", filepath.Base(path)).Logger()) {
		rows := toLong(rec, id, info.Date)
		p.rows = append(p.rows, rows...)
		n += len(rows)
	}
	return n, nil
}

// WriteAll writes the collected values. Nothing is written without data.
func (p *SpirometryProcessor) WriteAll(om *output.OutputManager) error {
	if len(p.rows) == 0 {
		return ErrNoData
	}
	return om.WriteCSV(spirometryCSV, &p.rows)
}
