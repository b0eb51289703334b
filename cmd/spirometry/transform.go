package main

import (
	"strings"

	"github.com/SanteonNL/clinextract/models/clinical"
)

// toLong turns a record into one row per value. Phase values come first in
// column order, followed by the theoretical, LIN and change values.
func toLong(rec record, id, date string) []clinical.SpirometryValue {
	var rows []clinical.SpirometryValue
	add := func(phase, valueType, value string) {
		rows = append(rows, clinical.SpirometryValue{
			ID:        id,
			Date:      date,
			Parameter: rec.Parameter,
			Phase:     phase,
			ValueType: valueType,
			Value:     value,
		})
	}

	for _, hv := range rec.Values {
		switch {
		case strings.HasPrefix(hv.Header, "Pre."):
			add(clinical.PhasePre, strings.TrimPrefix(hv.Header, "Pre."), hv.Value)
		case strings.HasPrefix(hv.Header, "Post.") || strings.HasPrefix(hv.Header, "PostBD."):
			_, valueType, _ := strings.Cut(hv.Header, ".")
			add(clinical.PhasePostBD, valueType, hv.Value)
		case hv.Header == "Pre":
			add(clinical.PhasePre, clinical.ValueRaw, hv.Value)
		case hv.Header == "Post" || hv.Header == "PostBD":
			add(clinical.PhasePostBD, clinical.ValueRaw, hv.Value)
		}
	}

	if v, _ := rec.Get("Teòric"); v != "" {
		add(clinical.PhaseNotApplicable, clinical.ValueTheorical, v)
	}
	if v, _ := rec.Get("LIN"); v != "" {
		add(clinical.PhaseNotApplicable, clinical.ValueLIN, v)
	}
	if v, ok := rec.Get("%Canvi"); ok {
		add(clinical.PhaseNotApplicable, clinical.ValueChange, v)
	}
	return rows
}
