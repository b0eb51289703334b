package main

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/SanteonNL/clinextract/batch"
	"github.com/SanteonNL/clinextract/layout"
)

const manualRevision = "REVISIÓ LEUCOCITÀRIA MANUAL"

// Checker scans laboratory reports for the manual revision section.
type Checker struct {
	log  zerolog.Logger
	open func(path string) (*layout.Document, error)
}

func NewChecker(log zerolog.Logger) *Checker {
	return &Checker{log: log, open: layout.Open}
}

// Check returns the files with a manual revision, in input order.
func (c *Checker) Check(files []string) ([]string, batch.Summary) {
	var (
		matches []string
		summary batch.Summary
	)
	for _, file := range files {
		doc, err := c.open(file)
		if err != nil {
			c.log.Error().Err(err).Str("file", filepath.Base(file)).Msg("Failed to process file")
			summary.Fail(file, err)
			continue
		}
		summary.Done()
		if hasManualRevision(doc) {
			matches = append(matches, file)
		}
	}
	return matches, summary
}

func hasManualRevision(doc *layout.Document) bool {
	tr := layout.NewTableReader(layout.LabReportOptions())
	for _, page := range doc.Pages {
		for _, row := range tr.Rows(page) {
			if row.Col(0) == manualRevision {
				return true
			}
		}
	}
	return false
}
