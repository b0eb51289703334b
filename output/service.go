package output

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"
)

// OutputManager writes CSV files below a base directory
type OutputManager struct {
	baseDir string
	log     zerolog.Logger
}

// NewOutputManager creates a new OutputManager, creating baseDir if needed
func NewOutputManager(baseDir string, log zerolog.Logger) (*OutputManager, error) {
	if err := os.MkdirAll(baseDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &OutputManager{
		baseDir: baseDir,
		log:     log,
	}, nil
}

// EnsureDir creates a subdirectory of the output directory
func (om *OutputManager) EnsureDir(relPath string) error {
	if err := os.MkdirAll(om.Path(relPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", relPath, err)
	}
	return nil
}

// WriteCSV writes rows, a slice of csv-tagged structs, to relPath. The header
// is written even when rows is empty.
func (om *OutputManager) WriteCSV(relPath string, rows interface{}) error {
	outputPath := om.Path(relPath)
	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", outputPath, err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeCSV(file, rows); err != nil {
		return fmt.Errorf("failed to write CSV %s: %w", outputPath, err)
	}

	om.log.Debug().
		Str("file", outputPath).
		Msg("Wrote CSV file")

	return nil
}

// writeCSV marshals rows into w and closes it. A failed close means the
// file is incomplete.
func writeCSV(w io.WriteCloser, rows interface{}) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// Exists reports whether relPath is already present in the output directory
func (om *OutputManager) Exists(relPath string) bool {
	_, err := os.Stat(om.Path(relPath))
	return !errors.Is(err, fs.ErrNotExist)
}

// Path returns the full path for a given relative path
func (om *OutputManager) Path(relPath string) string {
	return filepath.Join(om.baseDir, relPath)
}

// GetBaseDir returns the base output directory
func (om *OutputManager) GetBaseDir() string {
	return om.baseDir
}
