package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ReadsCellsAsText(t *testing.T) {
	path := writeCSV(t, "BORO_NM,RESPONSE_TIME_HRS\nBROOKLYN,2.5\nQUEENS,not-a-number\n")

	table, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"BORO_NM", "RESPONSE_TIME_HRS"}, table.Columns)
	assert.Equal(t, 2, table.NumRows())
	// No type inference at load time
	assert.Equal(t, "2.5", table.Rows[0]["RESPONSE_TIME_HRS"])
	assert.Equal(t, "not-a-number", table.Rows[1]["RESPONSE_TIME_HRS"])
}

func TestLoad_PadsShortRows(t *testing.T) {
	path := writeCSV(t, "A,B,C\n1,2\n")

	table, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 1, table.NumRows())
	assert.Equal(t, "", table.Rows[0]["C"])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, table.NumRows())
	assert.False(t, table.HasColumn("BORO_NM"))
}

func TestColumn(t *testing.T) {
	table := FromRecords([]string{"X"}, []Row{{"X": "a"}, {"X": "b"}})

	assert.Equal(t, []string{"a", "b"}, table.Column("X"))
	assert.Nil(t, table.Column("Y"))
}
