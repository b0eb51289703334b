package batch

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Summary tracks the outcome of each file of a run.
type Summary struct {
	Processed int
	Skipped   int
	Errors    []string
}

// Done records a successfully processed file.
func (s *Summary) Done() {
	s.Processed++
}

// Skip records a file that was left out without error.
func (s *Summary) Skip() {
	s.Skipped++
}

// Fail records a file that could not be processed. Failed files also count
// as skipped.
func (s *Summary) Fail(file string, err error) {
	s.Skipped++
	s.Errors = append(s.Errors, fmt.Sprintf("%s: %v", filepath.Base(file), err))
}

// Failed returns the number of files that failed.
func (s *Summary) Failed() int {
	return len(s.Errors)
}

// Log writes the end-of-run report.
func (s *Summary) Log(log zerolog.Logger) {
	log.Info().
		Int("processed", s.Processed).
		Int("skipped", s.Skipped).
		Int("errors", len(s.Errors)).
		Msg("Run summary")
	for _, e := range s.Errors {
		log.Error().Msg(e)
	}
}
