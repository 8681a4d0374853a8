package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupBy(t *testing.T) {
	items := []string{"aa", "ab", "ba", "bb"}
	groups := GroupBy(items, func(s string) string { return s[:1] })

	require.Len(t, groups, 2)
	assert.Equal(t, []string{"aa", "ab"}, groups["a"])
	assert.Equal(t, []string{"ba", "bb"}, groups["b"])
}

func TestFilterMapFind(t *testing.T) {
	nums := []int{1, 2, 3, 4}

	assert.Equal(t, []int{2, 4}, Filter(nums, func(n int) bool { return n%2 == 0 }))
	assert.Equal(t, []int{2, 4, 6, 8}, Map(nums, func(n int) int { return n * 2 }))

	found := Find(nums, func(n int) bool { return n > 2 })
	require.NotNil(t, found)
	assert.Equal(t, 3, *found)
	assert.Nil(t, Find(nums, func(n int) bool { return n > 10 }))
}

func TestFormatTimestamp(t *testing.T) {
	ts := FormatTimestamp(time.Date(2024, 5, 1, 8, 1, 2, 345_000_000, time.Local))
	assert.Equal(t, "2024-05-01 08:01:02.345", ts)
	assert.Len(t, ts, 23)
}

func TestNewID(t *testing.T) {
	id := NewID()
	assert.Len(t, id, 36)
	assert.Equal(t, strings.ToUpper(id), id)
	assert.NotEqual(t, id, NewID())
}

func TestParseCSV(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader("tag,timestamp\nA001,2024-05-01T08:00:00Z\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"A001", "2024-05-01T08:00:00Z"}, rows[1])
}

func TestParseCSVRaggedRecords(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader("tag\nA001, 2024-05-01T08:00:00Z\n"))
	require.NoError(t, err, "differing record widths are not an error")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"tag"}, rows[0])
	assert.Equal(t, []string{"A001", "2024-05-01T08:00:00Z"}, rows[1], "leading space is trimmed")
}
