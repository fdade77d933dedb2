package clock

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPeriod is returned for period strings not in YYYY-MM form.
var ErrInvalidPeriod = errors.New("invalid period")

// Period is a calendar month in UTC.
type Period struct {
	Year  int
	Month time.Month
}

// ParsePeriod parses a "YYYY-MM" string.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// PeriodOf returns the period containing ts.
func PeriodOf(ts Timestamp) Period {
	t := ts.Time()
	return Period{Year: t.Year(), Month: t.Month()}
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Bounds returns the half-open interval [start, end) covered by the period.
func (p Period) Bounds() (Timestamp, Timestamp) {
	start := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
	return FromTime(start), FromTime(start.AddDate(0, 1, 0))
}

// Contains reports whether ts falls inside the period.
func (p Period) Contains(ts Timestamp) bool {
	start, end := p.Bounds()
	return !ts.Before(start) && ts.Before(end)
}
