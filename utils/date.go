package utils

import (
	"fmt"
	"time"
)

// TimestampLayout is the storage format of every datetime column: sortable
// as a string, millisecond precision, naive local time.
const TimestampLayout = "2006-01-02 15:04:05.000"

const DateLayout = "2006-01-02"

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

func NowTimestamp() string {
	return FormatTimestamp(time.Now())
}

func ParseISOTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, fmt.Errorf("empty time string")
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return &t, nil
	}

	layouts := []string{
		TimestampLayout,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		DateLayout,
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("failed to parse time: %v", s)
}
