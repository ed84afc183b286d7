package service

import (
	"errors"
	"time"
)

// IST is the centres' local zone (UTC+05:30, no DST).
var IST = time.FixedZone("IST", 5*60*60+30*60)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// ErrInvalidDate a date or month parameter could not be parsed
var ErrInvalidDate = errors.New("invalid date")

// parseDate parses YYYY-MM-DD to midnight UTC, the DATE column convention.
func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// monthRange parses YYYY-MM into [first day, first day of next month).
// An empty month means the current month in IST.
func monthRange(month string, now time.Time) (string, time.Time, time.Time, error) {
	if month == "" {
		month = now.In(IST).Format(monthLayout)
	}
	from, err := time.Parse(monthLayout, month)
	if err != nil {
		return "", time.Time{}, time.Time{}, ErrInvalidDate
	}
	return month, from, from.AddDate(0, 1, 0), nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// formatTimestamp renders an instant in IST.
func formatTimestamp(t time.Time) string {
	return t.In(IST).Format(time.RFC3339)
}

func formatOptionalTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTimestamp(*t)
}

func strPtr(s string) *string { return &s }
