package main

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/SanteonNL/clinextract/batch"
	"github.com/SanteonNL/clinextract/layout"
	"github.com/SanteonNL/clinextract/models/clinical"
	"github.com/SanteonNL/clinextract/output"
	"github.com/SanteonNL/clinextract/util"
)

const (
	hematologyDir = "hematology"
	immunologyDir = "immunology"
)

// Output files, relative to the output directory.
var (
	metadataCSV       = "metadata_auto.csv"
	haemogramCSV      = filepath.Join(hematologyDir, "hemograma_auto.csv")
	leucocytesCSV     = filepath.Join(hematologyDir, "leucocitos_auto.csv")
	igeTotalCSV       = filepath.Join(immunologyDir, "ige_total_auto.csv")
	igeSpecificCSV    = filepath.Join(immunologyDir, "ige_specific_auto.csv")
	igeRecombinantCSV = filepath.Join(immunologyDir, "ige_recombinant_auto.csv")
)

// ReportProcessor collects the rows of every blood analysis report of a run.
type ReportProcessor struct {
	log     zerolog.Logger
	mapping *util.Mapping
	open    func(path string) (*layout.Document, error)

	metadata     []clinical.Metadata
	haemogram    []clinical.LabResult
	leucocytes   []clinical.LabResult
	igeTotal     []clinical.IgETotal
	igeSpecific  []clinical.IgESpecific
	recombinants []clinical.IgERecombinant
}

// NewReportProcessor creates a processor that resolves study ids with mapping.
func NewReportProcessor(mapping *util.Mapping, log zerolog.Logger) *ReportProcessor {
	return &ReportProcessor{
		log:     log,
		mapping: mapping,
		open:    layout.Open,
	}
}

// ProcessFiles extracts every file, logging and skipping the ones that fail.
func (p *ReportProcessor) ProcessFiles(files []string) batch.Summary {
	var summary batch.Summary
	for _, file := range files {
		p.log.Info().Str("file", filepath.Base(file)).Msg("Processing file")
		if err := p.ProcessFile(file); err != nil {
			p.log.Error().Err(err).Str("file", filepath.Base(file)).Msg("Failed to process file")
			summary.Fail(file, err)
			continue
		}
		summary.Done()
	}
	return summary
}

// ProcessFile extracts one report. Rows are only kept when the whole
// report could be read.
func (p *ReportProcessor) ProcessFile(path string) error {
	doc, err := p.open(path)
	if err != nil {
		return err
	}
	first, ok := doc.FirstPage()
	if !ok {
		return fmt.Errorf("document has no pages")
	}

	header, err := extractHeader(first)
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	haemogram := extractHaemogram(doc)
	ige := extractIgE(doc)

	id := p.mapping.StudyIDOrUnknown(header.NHC)
	p.log.Debug().
		Str("nhc", header.NHC).
		Str("id", id).
		Int("haemogram", len(haemogram.Haemogram)).
		Int("leucocytes", len(haemogram.Leucocytes())).
		Str("stoppedAt", haemogram.StoppedAt).
		Msg("Extracted report")

	p.metadata = append(p.metadata, clinical.Metadata{
		ID:                  id,
		Name:                header.Name,
		SampleReceptionDate: header.SampleReceptionDate,
		BirthDate:           header.BirthDate,
	})
	for _, e := range haemogram.Haemogram {
		p.haemogram = append(p.haemogram, clinical.LabResult{ID: id, Parameter: e.Parameter, Value: e.Value, Unit: e.Unit})
	}
	for _, e := range haemogram.Leucocytes() {
		p.leucocytes = append(p.leucocytes, clinical.LabResult{ID: id, Parameter: e.Parameter, Value: e.Value, Unit: e.Unit})
	}
	if ige.Total != "" {
		p.igeTotal = append(p.igeTotal, clinical.IgETotal{ID: id, Value: ige.Total})
	}
	for _, group := range ige.Specifics {
		for _, e := range group.Entries {
			p.igeSpecific = append(p.igeSpecific, clinical.IgESpecific{
				ID:          id,
				Subgroup:    group.Name,
				Allergen:    e.Allergen,
				Value:       e.Value,
				Unit:        e.Unit,
				RefInterval: e.RefInterval,
			})
		}
	}
	for _, e := range ige.Recombinants {
		p.recombinants = append(p.recombinants, clinical.IgERecombinant{
			ID:          id,
			Allergen:    e.Allergen,
			Value:       e.Value,
			Unit:        e.Unit,
			RefInterval: e.RefInterval,
		})
	}
	return nil
}

// WriteAll writes the six output files.
func (p *ReportProcessor) WriteAll(om *output.OutputManager) error {
	outputs := []struct {
		path string
		rows interface{}
	}{
		{metadataCSV, &p.metadata},
		{haemogramCSV, &p.haemogram},
		{leucocytesCSV, &p.leucocytes},
		{igeTotalCSV, &p.igeTotal},
		{igeSpecificCSV, &p.igeSpecific},
		{igeRecombinantCSV, &p.recombinants},
	}
	for _, o := range outputs {
		if err := om.WriteCSV(o.path, o.rows); err != nil {
			return err
		}
	}
	return nil
}
