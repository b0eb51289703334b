package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GetAbsolutePath resolves path against the current working directory.
func GetAbsolutePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	root, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return filepath.Join(root, path), nil
}

// SiblingDir returns the directory named name next to dir.
func SiblingDir(dir, name string) (string, error) {
	abs, err := GetAbsolutePath(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(abs), name), nil
}

// BaseName returns the file name of path without its extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
