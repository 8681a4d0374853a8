package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardtime.app/cardtime/utils"
)

func TestParsePunchRecords(t *testing.T) {
	records, err := utils.ParseCSV(strings.NewReader(
		"cardNo,timestamp\nA001,2024-05-01T08:00:00Z\nA002,2024-05-01 18:02:00\n"))
	require.NoError(t, err)

	rows, err := parsePunchRecords(records)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A001", rows[0].cardNo)
	assert.Equal(t, "A002", rows[1].cardNo)
	assert.Equal(t, "2024-05-01", rows[1].when.Format("2006-01-02"))
}

func TestParsePunchRecordsShortHeader(t *testing.T) {
	// A one-column header must be skipped, not rejected.
	records, err := utils.ParseCSV(strings.NewReader(
		"cardNo\nA001,2024-05-01T08:00:00Z\n"))
	require.NoError(t, err)

	rows, err := parsePunchRecords(records)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A001", rows[0].cardNo)
}

func TestParsePunchRecordsNoHeader(t *testing.T) {
	records := [][]string{{"A001", "2024-05-01T08:00:00Z"}}

	rows, err := parsePunchRecords(records)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestParsePunchRecordsBadRows(t *testing.T) {
	_, err := parsePunchRecords([][]string{
		{"cardNo", "timestamp"},
		{"A001"},
	})
	assert.Error(t, err, "short data row is rejected")

	_, err = parsePunchRecords([][]string{
		{"A001", "2024-05-01T08:00:00Z"},
		{"A002", "not-a-time"},
	})
	assert.Error(t, err, "unparseable timestamp past the first row is rejected")
}
