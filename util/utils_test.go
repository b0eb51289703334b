package util

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiblingDir(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "exports")

	got, err := SiblingDir(input, "processed")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "processed"), got)
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "medication_list", BaseName("/data/in/medication_list.txt"))
	assert.Equal(t, "noext", BaseName("noext"))
}

func TestIsDirIsFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "f.txt", "x")

	assert.True(t, IsDir(dir))
	assert.False(t, IsDir(file))
	assert.True(t, IsFile(file))
	assert.False(t, IsFile(dir))
	assert.False(t, IsFile(filepath.Join(dir, "missing")))
}
