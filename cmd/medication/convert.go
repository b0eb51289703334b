package main

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/SanteonNL/clinextract/models/clinical"
	"github.com/SanteonNL/clinextract/util"
)

// maxLineSize bounds a single listing line.
const maxLineSize = 16 * 1024 * 1024

var (
	numericIDPattern = regexp.MustCompile(`^\d{4,}$`)
	studyIDPattern   = regexp.MustCompile(`^HCB\d{3}$`)
)

// Converter turns a medication listing into rows. The listing alternates
// patient id lines with medication and posology line pairs.
type Converter struct {
	log     zerolog.Logger
	mapping *util.Mapping // nil when ids are kept as printed
}

func NewConverter(mapping *util.Mapping, log zerolog.Logger) *Converter {
	if mapping.Len() == 0 {
		mapping = nil
	}
	return &Converter{log: log, mapping: mapping}
}

func isIDLine(line string) bool {
	return numericIDPattern.MatchString(line) || studyIDPattern.MatchString(line)
}

// ConvertID maps a numeric record number to its study id. Study ids and,
// without a mapping, record numbers are returned unchanged.
func (c *Converter) ConvertID(line string) string {
	if studyIDPattern.MatchString(line) || c.mapping == nil || !numericIDPattern.MatchString(line) {
		return line
	}
	id, ok := c.mapping.StudyID(line)
	if !ok {
		c.log.Warn().Str("nhc", line).Msg("Numeric ID not found in mapping, using NA")
		return clinical.NotAvailable
	}
	c.log.Debug().Str("nhc", line).Str("id", id).Msg("Mapped ID")
	return id
}

// Convert reads the listing from r.
func (c *Converter) Convert(r io.Reader) ([]clinical.Medication, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	var (
		rows      []clinical.Medication
		currentID string
	)
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if isIDLine(line) {
			currentID = c.ConvertID(line)
			continue
		}
		if i+1 >= len(lines) {
			c.log.Warn().Str("medication", line).Str("id", currentID).Msg("Medication without posology")
			break
		}
		rows = append(rows, clinical.Medication{ID: currentID, Medication: line, Posology: lines[i+1]})
		i++
	}
	return rows, nil
}
