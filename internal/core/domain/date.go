package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar day without a time component.
type Date struct {
	Year  int
	Month int
	Day   int
}

func NewDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// String renders the ISO form used by the registration, booking, venue and
// feedback files.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DMY renders the day/month/year form used by the payments file.
func (d Date) DMY() string {
	return fmt.Sprintf("%d/%d/%d", d.Day, d.Month, d.Year)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Valid reports whether d names a real calendar day.
func (d Date) Valid() bool {
	if d.Year < 1 || d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return t.Year() == d.Year && int(t.Month()) == d.Month && t.Day() == d.Day
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return DateOf(t.AddDate(0, 0, n))
}

func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(d.Month - o.Month)
	default:
		return sign(d.Day - o.Day)
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// ParseDate reads a YYYY-MM-DD date. Unpadded parts are accepted.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, ErrInvalidInput)
	}
	return buildDate(s, parts[0], parts[1], parts[2])
}

// ParseDMY reads a D/M/YYYY date.
func ParseDMY(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, ErrInvalidInput)
	}
	return buildDate(s, parts[2], parts[1], parts[0])
}

func buildDate(raw, y, m, d string) (Date, error) {
	year, err1 := strconv.Atoi(strings.TrimSpace(y))
	month, err2 := strconv.Atoi(strings.TrimSpace(m))
	day, err3 := strconv.Atoi(strings.TrimSpace(d))
	if err1 != nil || err2 != nil || err3 != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", raw, ErrInvalidInput)
	}
	date := NewDate(year, month, day)
	if !date.Valid() {
		return Date{}, fmt.Errorf("invalid date %q: %w", raw, ErrInvalidInput)
	}
	return date, nil
}
