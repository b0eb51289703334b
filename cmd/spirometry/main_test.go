package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanteonNL/clinextract/batch"
	"github.com/SanteonNL/clinextract/util"
)

func execute(args ...string) error {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--log-level", "error"))
	return cmd.Execute()
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCmd_SetupErrors(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in")
	require.NoError(t, os.Mkdir(input, 0o755))
	mapping := writeFile(t, filepath.Join(dir, "mapping.csv"), "nhc,id\n12345,HCB001\n")
	noID := writeFile(t, filepath.Join(dir, "no_id.csv"), "nhc\n12345\n")
	out := filepath.Join(dir, "out")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"missing input directory", []string{filepath.Join(dir, "missing"), out, mapping}, batch.ErrNotFound},
		{"missing mapping file", []string{input, out, filepath.Join(dir, "nope.csv")}, util.ErrMappingNotFound},
		{"mapping without id column", []string{input, out, noID}, util.ErrMappingColumn},
		{"no PDF files", []string{input, out, mapping}, ErrNoPDFs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, execute(tt.args...), tt.want)
		})
	}
	assert.NoFileExists(t, filepath.Join(out, spirometryCSV))
}

func TestRootCmd_UnreadablePDF(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in")
	require.NoError(t, os.Mkdir(input, 0o755))
	writeFile(t, filepath.Join(input, "broken.pdf"), "not a pdf")
	mapping := writeFile(t, filepath.Join(dir, "mapping.csv"), "nhc,id\n12345,HCB001\n")
	out := filepath.Join(dir, "out")

	assert.ErrorIs(t, execute(input, out, mapping), ErrNoData)
	assert.NoFileExists(t, filepath.Join(out, spirometryCSV))
}
