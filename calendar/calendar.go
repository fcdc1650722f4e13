/*
Package calendar provides the date primitives shared by the ledger engines.

PURPOSE:
  The ledgers bucket sparse daily records by calendar date and by ISO week.
  This package owns both concepts:
  - Date: a plain calendar day, comparable and safe as a map key
  - WeekKey / GroupByWeek: ISO-8601 year-week bucketing

ISO WEEKS:
  Weeks start on Monday; week 1 is the week containing the year's first
  Thursday. This is the non-negotiable ISO-8601 definition, delegated to
  the standard library's ISOWeek. The edge cases matter: Jan 1 on a Friday
  belongs to the PREVIOUS year's last week.

DESIGN:
  Date deliberately carries no time zone or clock component. Every record
  in the system is keyed by a wall-calendar day; attaching zones would only
  invite off-by-one bugs around midnight.

SEE ALSO:
  - worktime: consumes GroupByWeek for weekly aggregation
  - leave: keys leave entries by Date
*/
package calendar

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - A plain calendar day
// =============================================================================

// Date identifies a single calendar day. It is comparable, so it can be
// used directly as a map key for sparse per-day records.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate constructs a Date. No validation; use Parse for untrusted input.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// Parse parses an ISO date string (2006-01-02).
func Parse(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// FromTime truncates a time.Time to its calendar day.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Today returns the current calendar day.
func Today() Date {
	return FromTime(time.Now())
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as 2006-01-02.
func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Comparison
func (d Date) Before(other Date) bool { return d.Time().Before(other.Time()) }
func (d Date) After(other Date) bool  { return d.Time().After(other.Time()) }
func (d Date) Equal(other Date) bool  { return d == other }

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// Weekday returns the stdlib weekday (Sunday = 0).
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// ISOWeekday returns the ISO-8601 weekday: Monday = 1 .. Sunday = 7.
func (d Date) ISOWeekday() int {
	wd := int(d.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsWorkday reports whether the date falls on Monday through Friday.
func (d Date) IsWorkday() bool { return !d.IsWeekend() }

// ISOWeek returns the ISO-8601 week this date belongs to. Note that the
// ISO year may differ from the calendar year at year boundaries.
func (d Date) ISOWeek() WeekKey {
	year, week := d.Time().ISOWeek()
	return WeekKey{Year: year, Week: week}
}

// =============================================================================
// ISO WEEK GROUPING
// =============================================================================

// WeekKey identifies an ISO-8601 week.
type WeekKey struct {
	Year int // ISO week-year, not calendar year
	Week int // 1..53
}

func (k WeekKey) String() string {
	return fmt.Sprintf("%d-W%02d", k.Year, k.Week)
}

// WeekBucket is one ISO week's worth of days from a grouped sequence.
type WeekBucket struct {
	Key  WeekKey
	Days []Date
}

// GroupByWeek buckets a chronological day sequence into ISO week buckets.
// Bucket order follows the input order; each bucket's key is derived from
// its first contained day. The input is assumed sorted ascending.
func GroupByWeek(days []Date) []WeekBucket {
	var buckets []WeekBucket
	for _, day := range days {
		key := day.ISOWeek()
		if n := len(buckets); n > 0 && buckets[n-1].Key == key {
			buckets[n-1].Days = append(buckets[n-1].Days, day)
			continue
		}
		buckets = append(buckets, WeekBucket{Key: key, Days: []Date{day}})
	}
	return buckets
}

// YearWorkdays returns every Monday-Friday day of the calendar year,
// ascending. Weekend days never participate in work-time aggregation.
func YearWorkdays(year int) []Date {
	var days []Date
	end := NewDate(year, time.December, 31)
	for d := NewDate(year, time.January, 1); !d.After(end); d = d.AddDays(1) {
		if d.IsWorkday() {
			days = append(days, d)
		}
	}
	return days
}

// Range returns every day in [from, to] inclusive, ascending.
func Range(from, to Date) []Date {
	var days []Date
	for d := from; !d.After(to); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}
