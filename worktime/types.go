/*
Package worktime implements the work-time ledger engine.

PURPOSE:
  Turns a sparse set of daily start/end/break records into per-day worked
  minutes and balance-against-norm, weekly aggregates, and a year-long
  cumulative overtime balance seeded by a stored carry-over.

KEY CONCEPTS:
  WorkLogEntry: at most one per (user, date); absence means "no record"
  DayView:      worked/norm/delta for one day; delta is TRI-STATE - a day
                without an entry reports "unknown", never zero
  WeekAggregate: Monday-Friday totals; missing days still owe their norm
  YearReport:   ISO-week buckets plus the running cumulative balance

DESIGN PRINCIPLES:
  1. Purity: every computation is a function over in-memory values.
     No I/O, no retained state; callers re-invoke after each data change.
  2. Sparse in, tri-state out: "no entry" is represented by absence from
     a map, never by a zero-valued record.
  3. The persistence collaborator is a black box behind the Store
     interface; the engine never calls it.

SEE ALSO:
  - clock.go: time primitives
  - norm.go: weekday norm policy
  - ledger.go: aggregation
*/
package worktime

import (
	"context"

	"github.com/worksuite/worktime-engine/calendar"
)

// =============================================================================
// RECORDS
// =============================================================================

// WorkLogEntry is one user's record for a single calendar date.
// Start and End are nil when unrecorded; BreakMinutes defaults to 0.
type WorkLogEntry struct {
	Date         calendar.Date
	Start        *ClockTime
	End          *ClockTime
	BreakMinutes int
	Notes        string
}

// WorkedMinutes computes the entry's worked minutes (clamped, break
// subtracted). An entry with a missing bound works 0 minutes.
func (e WorkLogEntry) WorkedMinutes() int {
	return ComputeWorkedMinutes(e.Start, e.End, e.BreakMinutes)
}

// HasTimes reports whether at least one of start/end is recorded. A week
// counts as "has entries" only if one of its days has a logged time.
func (e WorkLogEntry) HasTimes() bool {
	return e.Start != nil || e.End != nil
}

// CarryOver is the manually entered overtime balance inherited from all
// years before Year, in signed minutes. At most one per (user, year).
type CarryOver struct {
	Year    int
	Minutes int
}

// =============================================================================
// COMPUTED VIEWS
// =============================================================================

// DayView is the per-day ledger view. When HasEntry is false the delta is
// unknown: the UI must distinguish "no data yet" from "worked exactly the
// norm", so callers check HasEntry before reading Delta.
type DayView struct {
	Date     calendar.Date
	Worked   int // minutes; 0 when no entry
	Norm     int // minutes expected for this weekday
	Delta    int // Worked - Norm; meaningful only when HasEntry
	HasEntry bool
}

// WeekAggregate covers the Monday-Friday span of one ISO week.
// TotalNorm sums the norm over all five weekdays regardless of entries;
// TotalWorked sums only logged days. A week without any logged times
// reports HasEntries=false and its totals are treated as "no data".
type WeekAggregate struct {
	Key        calendar.WeekKey
	Days       []DayView
	TotalWork  int
	TotalNorm  int
	Delta      int // TotalWork - TotalNorm
	HasEntries bool
}

// YearReport is the full-year ledger: one aggregate per ISO week bucket,
// chronological, plus the running cumulative balance.
//
// Cumulative[i] = CarryOverMinutes + sum of Delta over weeks 0..i that
// have entries. A week with no data does not move the balance.
type YearReport struct {
	Year             int
	CarryOverMinutes int
	Weeks            []WeekAggregate
	Cumulative       []int // parallel to Weeks
	Balance          int   // final cumulative value; == CarryOverMinutes for an empty year
}

// =============================================================================
// STORE - Persistence collaborator interface
// =============================================================================

// Store is the persistence collaborator for work-time records. The engine
// never calls it; the API layer loads records through it and feeds them to
// the pure computations. Missing rows are reported as absence (empty map,
// nil pointer), never as zero-valued records.
type Store interface {
	// WorkLogRange returns the entries in [from, to], keyed by date.
	WorkLogRange(ctx context.Context, userID string, from, to calendar.Date) (map[calendar.Date]WorkLogEntry, error)

	// UpsertWorkLog creates or replaces the entry for (user, entry.Date).
	// Last write wins; the operation is idempotent.
	UpsertWorkLog(ctx context.Context, userID string, entry WorkLogEntry) error

	// DeleteWorkLog removes the entry for (user, date) if present.
	DeleteWorkLog(ctx context.Context, userID string, date calendar.Date) error

	// CarryOver returns the carry-over for (user, year), or nil if unset.
	CarryOver(ctx context.Context, userID string, year int) (*CarryOver, error)

	// UpsertCarryOver creates or replaces the carry-over for (user, year).
	UpsertCarryOver(ctx context.Context, userID string, co CarryOver) error
}
