package main

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/SanteonNL/clinextract/layout"
)

const (
	sectionHaemogram = "HEMOGRAMA"
	sectionManual    = "REVISIÓ LEUCOCITÀRIA MANUAL"
	sectionAutomatic = "RECOMPTE DIFERENCIAL AUTOMÀTIC"
)

// Sections that follow the blood count and end it.
var haemogramStops = []string{
	"AL·LÈRGENS ESPECÍFICS",
	"HEMOSTÀSIA GENERAL",
	"IMMUNOQUÍMICA",
}

type labEntry struct {
	Parameter string
	Value     string
	Unit      string
}

// haemogramResult holds the blood count and the leucocyte differential.
type haemogramResult struct {
	Haemogram []labEntry
	Manual    []labEntry
	Automatic []labEntry
	StoppedAt string // heading that ended the scan, if any
}

// Leucocytes prefers the manual revision over the automatic count.
func (r haemogramResult) Leucocytes() []labEntry {
	if len(r.Manual) > 0 {
		return r.Manual
	}
	return r.Automatic
}

func extractHaemogram(doc *layout.Document) haemogramResult {
	var result haemogramResult
	tr := layout.NewTableReader(layout.LabReportOptions())
	section := ""

	for _, page := range doc.Pages {
		for _, row := range tr.Rows(page) {
			parameter, value, unit := row.Col(0), row.Col(1), row.Col(2)

			if isSectionTitle(parameter, value, unit) {
				if slices.Contains(haemogramStops, parameter) {
					result.StoppedAt = parameter
					return result
				}
				section = parameter
				continue
			}
			if parameter == layout.LabHeaderFirst && value == "Resultat" && unit == "Unitat" {
				continue
			}
			if parameter == "" || value == "" || unit == "" {
				continue
			}

			entry := labEntry{Parameter: parameter, Value: value, Unit: unit}
			switch section {
			case sectionHaemogram:
				result.Haemogram = append(result.Haemogram, entry)
			case sectionManual:
				result.Manual = append(result.Manual, entry)
			case sectionAutomatic:
				result.Automatic = append(result.Automatic, entry)
			}
		}
	}
	return result
}

// isSectionTitle reports whether a row is an upper-case section heading.
// Headings carry no value or unit, which keeps upper-case parameter
// abbreviations such as VCM inside their section.
func isSectionTitle(parameter, value, unit string) bool {
	return value == "" && unit == "" && isUpper(parameter)
}

// isUpper reports whether s has at least one cased letter and no lower-case ones.
func isUpper(s string) bool {
	return s != "" && strings.ToUpper(s) == s && strings.ToLower(s) != s
}
