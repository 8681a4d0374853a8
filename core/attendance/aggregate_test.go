package attendance

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

func TestMonthDays(t *testing.T) {
	days, err := MonthDays("2024-05")
	require.NoError(t, err)
	require.Len(t, days, 31)
	assert.Equal(t, "2024-05-01", days[0])
	assert.Equal(t, "2024-05-31", days[30])

	days, err = MonthDays("2024-02")
	require.NoError(t, err)
	assert.Len(t, days, 29, "leap year")

	days, err = MonthDays("2023-02")
	require.NoError(t, err)
	assert.Len(t, days, 28)

	_, err = MonthDays("2024-13")
	assert.Error(t, err)
	_, err = MonthDays("nonsense")
	assert.Error(t, err)
}

func TestAggregateEmptyMonth(t *testing.T) {
	cards := []CardOwner{{CardID: "c1", UserName: "Amy"}, {CardID: "c2", UserName: "Ben"}}

	rows, err := Aggregate("2024-04", cards, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2*30)
	for _, row := range rows {
		assert.Empty(t, row.PunchInTime)
		assert.Empty(t, row.PunchOutTime)
	}
}

func TestAggregateSinglePunch(t *testing.T) {
	cards := []CardOwner{{CardID: "c1", UserName: "Amy"}}
	punches := []Punch{{CardID: "c1", Timestamp: "2024-05-03 09:15:27.120"}}

	rows, err := Aggregate("2024-05", cards, punches)
	require.NoError(t, err)

	day := findRow(rows, "Amy", "2024-05-03")
	require.NotNil(t, day)
	assert.Equal(t, "09:15:27", day.PunchInTime)
	assert.Empty(t, day.PunchOutTime, "single swipe leaves the punch-out blank")
}

func TestAggregateFirstAndLast(t *testing.T) {
	cards := []CardOwner{{CardID: "c1", UserName: "Amy"}}
	punches := []Punch{
		{CardID: "c1", Timestamp: "2024-05-03 12:00:00.000"},
		{CardID: "c1", Timestamp: "2024-05-03 08:00:00.000"},
		{CardID: "c1", Timestamp: "2024-05-03 17:30:00.000"},
	}

	rows, err := Aggregate("2024-05", cards, punches)
	require.NoError(t, err)

	day := findRow(rows, "Amy", "2024-05-03")
	require.NotNil(t, day)
	assert.Equal(t, "08:00:00", day.PunchInTime)
	assert.Equal(t, "17:30:00", day.PunchOutTime)
}

func TestAggregateIgnoresOtherMonths(t *testing.T) {
	cards := []CardOwner{{CardID: "c1", UserName: "Amy"}}
	punches := []Punch{{CardID: "c1", Timestamp: "2024-04-30 08:00:00.000"}}

	rows, err := Aggregate("2024-05", cards, punches)
	require.NoError(t, err)
	for _, row := range rows {
		assert.Empty(t, row.PunchInTime)
	}
}

func TestAggregateOrdering(t *testing.T) {
	cards := []CardOwner{
		{CardID: "c2", UserName: "Zoe"},
		{CardID: "c1", UserName: "Amy"},
	}

	rows, err := Aggregate("2024-05", cards, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2*31)

	assert.Equal(t, "Amy", rows[0].UserName)
	assert.Equal(t, "2024-05-01", rows[0].Date)
	assert.Equal(t, "2024-05-31", rows[30].Date)
	assert.Equal(t, "Zoe", rows[31].UserName)
}

func findRow(rows []Row, name, date string) *Row {
	for i := range rows {
		if rows[i].UserName == name && rows[i].Date == date {
			return &rows[i]
		}
	}
	return nil
}

func TestWriteCSVScenario(t *testing.T) {
	// Three users with one card each; only A punched on 2024-05-01.
	cards := []CardOwner{
		{CardID: "ca", UserName: "A"},
		{CardID: "cb", UserName: "B"},
		{CardID: "cc", UserName: "C"},
	}
	punches := []Punch{
		{CardID: "ca", Timestamp: "2024-05-01 08:01:00.000"},
		{CardID: "ca", Timestamp: "2024-05-01 18:02:00.000"},
	}

	rows, err := Aggregate("2024-05", cards, punches)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	text := buf.String() // all-ASCII rows pass through Big5 unchanged
	lines := strings.Split(text, "\r\n")
	assert.Equal(t, "UserName,Date,PunchInTime,PunchOutTime", lines[0])
	assert.Contains(t, lines, "A,2024-05-01,08:01:00,18:02:00")
	assert.Contains(t, lines, "B,2024-05-01,,")
	assert.Contains(t, lines, "C,2024-05-01,,")
}

func TestWriteCSVBig5(t *testing.T) {
	rows := []Row{{UserName: "王小明", Date: "2024-05-01", PunchInTime: "08:00:00"}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	raw := buf.Bytes()
	assert.NotContains(t, string(raw), "王小明", "name must not be UTF-8 encoded")

	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(raw), traditionalchinese.Big5.NewDecoder()))
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "王小明,2024-05-01,08:00:00,")
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 1, pageCount(0, 40))
	assert.Equal(t, 1, pageCount(39, 40))
	assert.Equal(t, 2, pageCount(40, 40))
	assert.Equal(t, 2, pageCount(41, 40))
	assert.Equal(t, 4, pageCount(124, 40))
}

func TestDashCount(t *testing.T) {
	assert.Equal(t, 10, dashCount(100, 50, 5))
	assert.Equal(t, 0, dashCount(100, 100, 5))
	assert.Equal(t, 0, dashCount(100, 120, 5))
	assert.Equal(t, 0, dashCount(100, 50, 0))
}

func TestWriteXLSX(t *testing.T) {
	rows := []Row{{UserName: "Amy", Date: "2024-05-01", PunchInTime: "08:00:00", PunchOutTime: "17:00:00"}}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, rows))
	assert.Greater(t, buf.Len(), 0)
}
