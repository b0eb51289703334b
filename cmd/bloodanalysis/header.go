package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/SanteonNL/clinextract/layout"
	"github.com/SanteonNL/clinextract/models/clinical"
)

var (
	nhcPattern           = regexp.MustCompile(`NHC:\s*(\S+)`)
	receptionDatePattern = regexp.MustCompile(`Data recepció mostra:\s*(\d{2}/\d{2}/\d{4})`)
	birthDatePattern     = regexp.MustCompile(`Data naix\.:\s*(\d{2}/\d{2}/\d{4})`)
)

// headerInfo holds the patient block printed above the results.
type headerInfo struct {
	NHC                 string
	Name                string
	SampleReceptionDate clinical.Date
	BirthDate           clinical.Date
}

// extractHeader reads the patient block of the first page. It stops at the
// result table header.
func extractHeader(p layout.Page) (headerInfo, error) {
	info := headerInfo{NHC: clinical.NotAvailable, Name: clinical.NotAvailable}

	for _, line := range p.Lines() {
		text := line.Text()
		if strings.HasPrefix(text, layout.LabHeaderFirst) {
			break
		}
		if m := nhcPattern.FindStringSubmatch(text); m != nil && info.NHC == clinical.NotAvailable {
			info.NHC = m[1]
		}
		if m := receptionDatePattern.FindStringSubmatch(text); m != nil {
			date, err := clinical.ParseReportDate(m[1])
			if err != nil {
				return info, fmt.Errorf("sample reception date: %w", err)
			}
			info.SampleReceptionDate = date
		}
		if m := birthDatePattern.FindStringSubmatch(text); m != nil {
			date, err := clinical.ParseReportDate(m[1])
			if err != nil {
				return info, fmt.Errorf("birth date: %w", err)
			}
			info.BirthDate = date
		}
	}
	return info, nil
}
