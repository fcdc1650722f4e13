/*
Package leave implements the leave (vacation) ledger.

PURPOSE:
  Converts a per-year leave entitlement (base + purchased days, carry-over
  and manual adjustment hours) into remaining-balance figures after
  subtracting logged leave entries. Structurally the same pattern as the
  work-time ledger: entitlement accumulation minus logged actuals.

PRECISION:
  All quantities are decimal.Decimal. The ledger applies NO rounding -
  display formatting rounds for presentation only, so repeated round-trips
  through the ledger never drift.

SEE ALSO:
  - stats.go: the ComputeStats calculation
  - worktime: the sibling ledger for overtime minutes
*/
package leave

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/worksuite/worktime-engine/calendar"
)

// =============================================================================
// RECORDS
// =============================================================================

// Balance is a user's leave entitlement for one year. At most one per
// (user, year); when absent, DefaultBalance applies.
type Balance struct {
	Year                  int
	BaseDays              decimal.Decimal // annual allowance, in days
	PurchasedDays         decimal.Decimal // additionally bought days
	CarryOverHours        decimal.Decimal // signed, inherited from prior years
	ManualAdjustmentHours decimal.Decimal // signed, manual correction
	HoursPerDay           decimal.Decimal // day<->hour conversion factor
}

// Entry is a single logged leave absence. Multiple entries may target the
// same date; no overlap constraint is enforced, all are summed.
type Entry struct {
	ID          string
	Date        calendar.Date
	Hours       decimal.Decimal // positive
	Description string
}

// Default entitlement values applied when no balance row exists.
var (
	DefaultBaseDays    = decimal.NewFromInt(25)
	DefaultHoursPerDay = decimal.NewFromInt(8)
)

// DefaultBalance returns the entitlement assumed for a year with no
// stored balance: 25 base days at 8 hours per day, everything else zero.
func DefaultBalance(year int) Balance {
	return Balance{
		Year:        year,
		BaseDays:    DefaultBaseDays,
		HoursPerDay: DefaultHoursPerDay,
	}
}

// =============================================================================
// COMPUTED STATS
// =============================================================================

// Stats is the computed leave ledger for one year. All six figures carry
// full precision; rounding is the display layer's job.
type Stats struct {
	TotalEntitlementDays  decimal.Decimal
	TotalEntitlementHours decimal.Decimal
	TakenHours            decimal.Decimal
	TakenDays             decimal.Decimal
	RemainingHours        decimal.Decimal
	RemainingDays         decimal.Decimal
}

// =============================================================================
// STORE - Persistence collaborator interface
// =============================================================================

// Store is the persistence collaborator for leave records. A missing
// balance is reported as nil, never as a zero-valued record; the defaults
// are applied by the computation, not the store.
type Store interface {
	// Balance returns the stored balance for (user, year), or nil if unset.
	Balance(ctx context.Context, userID string, year int) (*Balance, error)

	// UpsertBalance creates or replaces the balance for (user, b.Year).
	UpsertBalance(ctx context.Context, userID string, b Balance) error

	// Entries returns all leave entries for (user, year), ordered by date.
	Entries(ctx context.Context, userID string, year int) ([]Entry, error)

	// AddEntry stores a new leave entry under (user, year of e.Date).
	AddEntry(ctx context.Context, userID string, e Entry) error

	// DeleteEntry removes an entry by id, scoped to the owning user.
	DeleteEntry(ctx context.Context, userID, entryID string) error
}
