// Package attendance turns raw card swipes into the monthly first/last punch
// report and renders it as CSV, PDF or XLSX.
package attendance

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

// Row is one (user, day) line of the monthly report. PunchOutTime stays
// empty when the day's last punch is the same event as the first; a single
// swipe therefore reads as a punch-in with no punch-out.
type Row struct {
	UserName     string `json:"userName"`
	Date         string `json:"date"`
	PunchInTime  string `json:"punchInTime"`
	PunchOutTime string `json:"punchOutTime"`
}

// CardOwner pairs a card with its owner's display name. Only cards owned by
// an enabled user take part in the report.
type CardOwner struct {
	CardID   string
	UserName string
}

// Punch is the projection of a card swipe the aggregation needs.
type Punch struct {
	CardID    string
	Timestamp string // "2006-01-02 15:04:05.000"
}

// MonthDays enumerates every calendar day of a "2006-01" month as
// "2006-01-02" keys.
func MonthDays(month string) ([]string, error) {
	first, err := time.Parse("2006-01-02", month+"-01")
	if err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}

	last := first.AddDate(0, 1, -1)
	days := make([]string, 0, last.Day())
	for d := 1; d <= last.Day(); d++ {
		days = append(days, time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC).Format("2006-01-02"))
	}
	return days, nil
}

// The stored timestamp is "2006-01-02 15:04:05.000": chars [0,10) are the
// date, chars [11,19) the HH:MM:SS time of day. These offsets are part of
// the storage contract.
func dateOf(ts string) string {
	if len(ts) < 10 {
		return ""
	}
	return ts[:10]
}

func timeOf(ts string) string {
	if len(ts) < 19 {
		return ""
	}
	return ts[11:19]
}

type daySpan struct {
	first string
	last  string
}

// Aggregate produces one Row per (card, day of month), ordered by user name
// then date. Punches are indexed by card and day in a single pass, so the
// cost is O(events + cards×days) rather than the naive nested scan.
func Aggregate(month string, cards []CardOwner, punches []Punch) ([]Row, error) {
	days, err := MonthDays(month)
	if err != nil {
		return nil, err
	}

	spans := make(map[string]daySpan)
	for _, p := range punches {
		key := p.CardID + "|" + dateOf(p.Timestamp)
		span, ok := spans[key]
		if !ok {
			spans[key] = daySpan{first: p.Timestamp, last: p.Timestamp}
			continue
		}
		if p.Timestamp < span.first {
			span.first = p.Timestamp
		}
		if p.Timestamp > span.last {
			span.last = p.Timestamp
		}
		spans[key] = span
	}

	rows := make([]Row, 0, len(cards)*len(days))
	for _, card := range cards {
		for _, day := range days {
			row := Row{UserName: card.UserName, Date: day}
			if span, ok := spans[card.CardID+"|"+day]; ok {
				row.PunchInTime = timeOf(span.first)
				if span.last != span.first {
					row.PunchOutTime = timeOf(span.last)
				}
			}
			rows = append(rows, row)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].UserName != rows[j].UserName {
			return rows[i].UserName < rows[j].UserName
		}
		return rows[i].Date < rows[j].Date
	})
	return rows, nil
}

// BuildMonthlyReport loads the month's data and aggregates it.
func BuildMonthlyReport(db *gorm.DB, month string) ([]Row, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}

	var cards []CardOwner
	err := db.Table("cards").
		Select("cards.id AS card_id, users.name AS user_name").
		Joins("JOIN users ON users.id = cards.user_id").
		Where("users.is_enabled = 1").
		Order("cards.card_no").
		Scan(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}

	var punches []Punch
	err = db.Table("card_histories").
		Select("card_id, punch_in_datetime AS timestamp").
		Where("punch_in_datetime LIKE ?", month+"-%").
		Scan(&punches).Error
	if err != nil {
		return nil, fmt.Errorf("load punches: %w", err)
	}

	return Aggregate(month, cards, punches)
}
