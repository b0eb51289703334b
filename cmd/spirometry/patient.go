package main

import (
	"regexp"
	"strings"

	"github.com/SanteonNL/clinextract/models/clinical"
)

var explorationDatePattern = regexp.MustCompile(`Data exploraci[oó]\s*:?\s*([0-9]{2}/[0-9]{2}/[0-9]{4})`)

type patientInfo struct {
	NHC  string
	Date string // YYYY-MM-DD, the printed text if it is not a valid date
}

// extractPatientInfo reads the record number and the exploration date.
func extractPatientInfo(lines []string) patientInfo {
	info := patientInfo{NHC: clinical.NotAvailable, Date: clinical.NotAvailable}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.Contains(line, "NHC :") && strings.Contains(line, "Edat") {
			before, _, _ := strings.Cut(line, "Edat")
			parts := strings.Split(before, ":")
			info.NHC = strings.TrimSpace(parts[len(parts)-1])
		}
		if m := explorationDatePattern.FindStringSubmatch(line); m != nil {
			info.Date = m[1]
			if d, err := clinical.ParseReportDate(m[1]); err == nil {
				info.Date = d.String()
			}
		}
	}
	return info
}
