// Package batch lists the input documents of a run and keeps its summary.
package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrNotFound     = errors.New("input directory does not exist")
	ErrNotDirectory = errors.New("input path is not a directory")
)

// Matcher selects the files of a directory that a tool processes.
type Matcher func(name string) bool

// Extension matches file names ending in ext, ignoring case.
func Extension(ext string) Matcher {
	ext = strings.ToLower(ext)
	return func(name string) bool {
		return strings.HasSuffix(strings.ToLower(name), ext)
	}
}

// PrefixSuffix matches file names starting with prefix and ending with suffix.
func PrefixSuffix(prefix, suffix string) Matcher {
	return func(name string) bool {
		return strings.HasPrefix(name, prefix) && strings.HasSuffix(name, suffix)
	}
}

// ValidateDir checks that dir exists and is a directory.
func ValidateDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, dir)
		}
		return fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	return nil
}

// Discover returns the regular files directly inside dir accepted by match,
// sorted by name for a deterministic processing order.
func Discover(dir string, match Matcher) ([]string, error) {
	if err := ValidateDir(dir); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !match(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// DiscoverTree walks dir recursively and returns every accepted file, sorted.
func DiscoverTree(dir string, match Matcher) ([]string, error) {
	if err := ValidateDir(dir); err != nil {
		return nil, err
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && match(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}
