/*
ledger.go - Day, week, and year aggregation

PURPOSE:
  The aggregation pipeline of the work-time ledger:

    sparse entries ──> DayViewFor ──> BuildWeek ──> BuildYearReport

KEY INSIGHT:
  Missing is not exempt. A weekday without an entry still owes its norm
  inside a week that has any entries at all - the weekly delta punishes
  unlogged days. Only a FULLY empty week is neutral: it reports "no data"
  and contributes nothing to the cumulative balance.

CUMULATIVE BALANCE:
  The year report seeds a running total with the stored carry-over and
  adds each week's delta in chronological ISO-week order. The final value
  is the year's overall overtime (positive) or undertime (negative).
*/
package worktime

import (
	"github.com/worksuite/worktime-engine/calendar"
)

// DayViewFor computes the per-day view for a date. A nil entry yields the
// tri-state "unknown" day: worked 0, HasEntry false, delta meaningless.
func DayViewFor(date calendar.Date, entry *WorkLogEntry, policy NormPolicy) DayView {
	norm := policy.Minutes(date.ISOWeekday())
	view := DayView{Date: date, Norm: norm}
	if entry == nil {
		return view
	}
	view.HasEntry = true
	view.Worked = entry.WorkedMinutes()
	view.Delta = view.Worked - norm
	return view
}

// BuildWeek aggregates the weekday slice of one ISO week bucket. Weekend
// days in the input are skipped; norm is summed across every weekday while
// worked is summed across logged days only.
func BuildWeek(key calendar.WeekKey, days []calendar.Date, entries map[calendar.Date]WorkLogEntry, policy NormPolicy) WeekAggregate {
	week := WeekAggregate{Key: key}
	for _, date := range days {
		if date.IsWeekend() {
			continue
		}
		var entry *WorkLogEntry
		if e, ok := entries[date]; ok {
			entry = &e
			if e.HasTimes() {
				week.HasEntries = true
			}
		}
		day := DayViewFor(date, entry, policy)
		week.Days = append(week.Days, day)
		week.TotalNorm += day.Norm
		if day.HasEntry {
			week.TotalWork += day.Worked
		}
	}
	week.Delta = week.TotalWork - week.TotalNorm
	return week
}

// BuildYearReport partitions the calendar year's weekdays into ISO week
// buckets, aggregates each, and threads the cumulative balance through
// them starting from the carry-over. Weeks without entries keep the
// balance unchanged.
func BuildYearReport(year int, entries map[calendar.Date]WorkLogEntry, carryOverMinutes int, policy NormPolicy) YearReport {
	report := YearReport{
		Year:             year,
		CarryOverMinutes: carryOverMinutes,
	}

	running := carryOverMinutes
	for _, bucket := range calendar.GroupByWeek(calendar.YearWorkdays(year)) {
		week := BuildWeek(bucket.Key, bucket.Days, entries, policy)
		if week.HasEntries {
			running += week.Delta
		}
		report.Weeks = append(report.Weeks, week)
		report.Cumulative = append(report.Cumulative, running)
	}

	report.Balance = running
	return report
}

// RangeViews computes day views for an arbitrary inclusive date range.
// Used by the agenda-style listing endpoints; weekends are included so the
// caller sees the full grid.
func RangeViews(from, to calendar.Date, entries map[calendar.Date]WorkLogEntry, policy NormPolicy) []DayView {
	var views []DayView
	for _, date := range calendar.Range(from, to) {
		var entry *WorkLogEntry
		if e, ok := entries[date]; ok {
			entry = &e
		}
		views = append(views, DayViewFor(date, entry, policy))
	}
	return views
}
