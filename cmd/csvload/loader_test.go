package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTableSQL(t *testing.T) {
	got := createTableSQL("clinic", "hemograma_auto", []string{"id", "parameter", `odd "name"`})
	assert.Equal(t, `CREATE TABLE IF NOT EXISTS "clinic"."hemograma_auto" ("id" TEXT, "parameter" TEXT, "odd ""name""" TEXT)`, got)
}

func TestStatements(t *testing.T) {
	assert.Equal(t, `CREATE SCHEMA IF NOT EXISTS "public"`, createSchemaSQL("public"))
	assert.Equal(t, `TRUNCATE TABLE "public"."metadata_auto"`, truncateSQL("public", "metadata_auto"))
	assert.Equal(t, "ige_total_auto", tableName(filepath.Join("out", "immunology", "ige_total_auto.csv")))
}

func TestReadTable(t *testing.T) {
	tbl, err := readTable(strings.NewReader("id, value ,\nHCB001,245.0,x\nHCB002\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "value", "column_3"}, tbl.Columns)
	assert.Equal(t, [][]string{{"HCB001", "245.0", "x"}, {"HCB002"}}, tbl.Rows)
}

func TestReadTable_Errors(t *testing.T) {
	_, err := readTable(strings.NewReader(""))
	assert.Error(t, err)

	_, err = readTable(strings.NewReader("id\nHCB001,extra\n"))
	assert.Error(t, err)
}

func TestReadTableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leucocitos_auto.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,parameter,value,unit\nHCB001,Neutròfils,58.0,%\n"), 0o644))

	tbl, err := readTableFile(path)
	require.NoError(t, err)
	assert.Equal(t, "leucocitos_auto", tbl.Name)
	require.Len(t, tbl.Rows, 1)
	assert.Len(t, tbl.Rows[0], 4)
}

func TestRootCmd_MissingDSN(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{t.TempDir(), "--log-level", "error"})

	assert.ErrorIs(t, cmd.Execute(), errNoDSN)
}
