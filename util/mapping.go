package util

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"golang.org/x/exp/slices"
)

var (
	// ErrMappingNotFound is returned when the mapping file does not exist.
	ErrMappingNotFound = errors.New("mapping file not found")
	// ErrMappingColumn is returned when the mapping header lacks nhc or id.
	ErrMappingColumn = errors.New("mapping file misses a required column")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// mappingEntry is one row of the NHC to study id mapping file.
type mappingEntry struct {
	NHC string `csv:"nhc"`
	ID  string `csv:"id"`
}

// Mapping translates hospital record numbers (NHC) into study identifiers.
type Mapping struct {
	nhcToID map[string]string
}

// LoadNHCMapping reads a CSV file with "nhc" and "id" columns.
func LoadNHCMapping(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMappingNotFound, path)
		}
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping header %s: %w", path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	for _, column := range []string{"nhc", "id"} {
		if !slices.Contains(header, column) {
			return nil, fmt.Errorf("%w: %s has no %q column", ErrMappingColumn, path, column)
		}
	}

	var entries []mappingEntry
	if err := gocsv.UnmarshalBytes(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse mapping file %s: %w", path, err)
	}

	m := &Mapping{nhcToID: make(map[string]string, len(entries))}
	for _, e := range entries {
		m.nhcToID[normalizeNHC(e.NHC)] = strings.TrimSpace(e.ID)
	}
	return m, nil
}

// NewMapping builds a Mapping from an in-memory table.
func NewMapping(nhcToID map[string]string) *Mapping {
	m := &Mapping{nhcToID: make(map[string]string, len(nhcToID))}
	for nhc, id := range nhcToID {
		m.nhcToID[normalizeNHC(nhc)] = id
	}
	return m
}

// StudyID looks up nhc, ignoring leading zeros.
func (m *Mapping) StudyID(nhc string) (string, bool) {
	if m == nil {
		return "", false
	}
	id, ok := m.nhcToID[normalizeNHC(nhc)]
	return id, ok && id != ""
}

// StudyIDOrUnknown returns the study id for nhc or an UNKNOWN_NHC_ marker.
func (m *Mapping) StudyIDOrUnknown(nhc string) string {
	if id, ok := m.StudyID(nhc); ok {
		return id
	}
	return "UNKNOWN_NHC_" + normalizeNHC(nhc)
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.nhcToID)
}

func normalizeNHC(nhc string) string {
	return strings.TrimLeft(strings.TrimSpace(nhc), "0")
}
