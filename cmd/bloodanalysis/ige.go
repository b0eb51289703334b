package main

import (
	"strings"

	"github.com/SanteonNL/clinextract/layout"
	"github.com/SanteonNL/clinextract/models/clinical"
)

const (
	sectionSpecific    = "AL·LÈRGENS ESPECÍFICS"
	sectionRecombinant = "AL·LÈRGENS RECOMBINANTS"
	subgroupPrefix     = "AL·LÈRGIA"
	igeTotalMarker     = "IGE total"
)

type igeEntry struct {
	Allergen    string
	Value       string
	Unit        string
	RefInterval string
}

type igeSubgroup struct {
	Name    string
	Entries []igeEntry
}

// igeResult holds the allergy panel of one report.
type igeResult struct {
	Total        string // empty when the report has no total IgE
	Specifics    []igeSubgroup
	Recombinants []igeEntry
}

func extractIgE(doc *layout.Document) igeResult {
	var result igeResult
	subgroups := make(map[string]int)
	tr := layout.NewTableReader(layout.LabReportOptions())
	section, subgroup := "", ""

	for _, page := range doc.Pages {
		for _, row := range tr.Rows(page) {
			allergen, value, unit := row.Col(0), row.Col(1), row.Col(2)

			switch allergen {
			case sectionSpecific, sectionRecombinant:
				section = allergen
				continue
			}
			if section == sectionSpecific && strings.HasPrefix(allergen, subgroupPrefix) {
				subgroup = strings.TrimSpace(strings.TrimPrefix(allergen, subgroupPrefix))
				continue
			}

			if strings.Contains(allergen, igeTotalMarker) {
				result.Total = value
				continue
			}
			// Only reported results: an IgE determination with a unit and a
			// value printed in bold.
			if !strings.Contains(allergen, "IgE") || unit == "" || !row.Bold(1) {
				continue
			}

			entry := igeEntry{Allergen: allergen, Value: value, Unit: unit, RefInterval: clinical.NotAvailable}
			if ref := row.Col(3); ref != "" {
				entry.RefInterval = ref
			}

			switch {
			case section == sectionSpecific && subgroup != "":
				idx, ok := subgroups[subgroup]
				if !ok {
					idx = len(result.Specifics)
					subgroups[subgroup] = idx
					result.Specifics = append(result.Specifics, igeSubgroup{Name: subgroup})
				}
				result.Specifics[idx].Entries = append(result.Specifics[idx].Entries, entry)
			case section == sectionRecombinant:
				result.Recombinants = append(result.Recombinants, entry)
			}
		}
	}
	return result
}
