package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanteonNL/clinextract/util"
)

func execute(args ...string) error {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--log-level", "error"))
	return cmd.Execute()
}

func TestRootCmd_MissingMapping(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "medicacio.txt")
	require.NoError(t, os.WriteFile(input, []byte(listing), 0o644))

	err := execute(input, "--map-id", filepath.Join(dir, "nope.csv"))
	assert.ErrorIs(t, err, util.ErrMappingNotFound)
	assert.NoFileExists(t, filepath.Join(dir, "medicacio.csv"))
}

func TestRootCmd_MappingWithoutID(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "medicacio.txt")
	require.NoError(t, os.WriteFile(input, []byte(listing), 0o644))
	mapping := filepath.Join(dir, "mapping.csv")
	require.NoError(t, os.WriteFile(mapping, []byte("nhc\n12345\n"), 0o644))

	assert.ErrorIs(t, execute(input, "--map-id", mapping), util.ErrMappingColumn)
}

func TestRootCmd_MissingInput(t *testing.T) {
	assert.Error(t, execute(filepath.Join(t.TempDir(), "missing.txt")))
}

func TestRootCmd_DefaultOutputDir(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "medicacio.txt")
	require.NoError(t, os.WriteFile(input, []byte(listing), 0o644))
	mapping := filepath.Join(dir, "mapping.csv")
	require.NoError(t, os.WriteFile(mapping, []byte("nhc,id\n12345,HCB001\n"), 0o644))

	require.NoError(t, execute(input, "--map-id", mapping))

	data, err := os.ReadFile(filepath.Join(dir, "medicacio.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id,medication,posology\n"+
		"HCB001,Salbutamol 100mcg,2 inhalacions cada 8h\n"+
		"HCB002,Budesonida 200mcg,1 inhalació cada 12h\n"+
		"HCB002,Montelukast 10mg,1 comprimit al dia\n", string(data))
}
