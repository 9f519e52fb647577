package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidMonth is returned when a month string is not YYYY-MM.
var ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")

// ErrInvalidDate is returned by ParseDate for unrecognized input.
var ErrInvalidDate = errors.New("invalid date, expected RFC3339, YYYY-MM-DD or YYYY-MM")

const monthLayout = "2006-01"

// Month is a calendar month and year, independent of any time zone.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth normalizes out-of-range months, so NewMonth(2024, 13) is 2025-01.
func NewMonth(year int, month time.Month) Month {
	return MonthOf(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the month t falls in, read in t's own location.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth reads a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, strings.TrimSpace(s))
	if err != nil {
		return Month{}, ErrInvalidMonth
	}
	return MonthOf(t), nil
}

// Start is the first instant of the month in UTC. Amounts are resolved at
// this instant, so an override effective any later in the month applies
// from the following month on.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths returns m shifted by n months.
func (m Month) AddMonths(n int) Month {
	return NewMonth(m.Year, m.Month+time.Month(n))
}

// Contains reports whether t falls in m. Time of day and zone are ignored:
// only the stored year and month count.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

func (m Month) Before(o Month) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Month) UnmarshalText(b []byte) error {
	parsed, err := ParseMonth(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseDate accepts RFC3339 timestamps, plain dates and bare months. Dates
// without a zone are taken as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly, monthLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
