package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanteonNL/clinextract/batch"
)

const weights = `Export SubjectData,,
Question,Value,Status
Site: A/Subject: 9/Visit: V1/Form: Antropometria,,
Edat,40,Verified
"Pes, kg",62,Verified
Pes,62,Verified
Fumador,No,Pending
`

func execute(args ...string) error {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--log-level", "error"))
	return cmd.Execute()
}

func TestRootCmd_MissingInputDir(t *testing.T) {
	assert.ErrorIs(t, execute(filepath.Join(t.TempDir(), "missing")), batch.ErrNotFound)
}

func TestRootCmd_RepeatedSkipPatterns(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "export")
	require.NoError(t, os.Mkdir(input, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(input, "SubjectData_1.csv"), []byte(weights), 0o644))

	require.NoError(t, execute(input,
		"--skip-question", "Edat",
		"--skip-question", "Pes, kg",
		"--skip-status", "Pending"))

	data, err := os.ReadFile(filepath.Join(root, "processed", "antropometria.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id,question,value,status\n9,Pes,62,Verified\n", string(data))
}

func TestRootCmd_SkipFlagsKeepCommas(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--skip-question", "Pes, kg", "--skip-question", "IDSub"}))

	patterns, err := cmd.Flags().GetStringArray("skip-question")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pes, kg", "IDSub"}, patterns)

	defaults, err := newRootCmd().Flags().GetStringArray("skip-question")
	require.NoError(t, err)
	assert.Equal(t, []string{"IDSub", "IDVer"}, defaults)
}
