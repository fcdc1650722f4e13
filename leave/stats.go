package leave

import "github.com/shopspring/decimal"

// =============================================================================
// LEAVE STATS CALCULATION
// =============================================================================

// ComputeStats derives the year's leave figures from an optional balance
// and the logged entries. A nil balance means the defaults apply.
//
//	totalEntitlementDays  = baseDays + purchasedDays
//	totalEntitlementHours = totalEntitlementDays * hoursPerDay
//	                        + carryOverHours + manualAdjustmentHours
//	takenHours            = sum(entry.Hours)
//	takenDays             = takenHours / hoursPerDay
//	remainingHours        = totalEntitlementHours - takenHours
//	remainingDays         = remainingHours / hoursPerDay
//
// A non-positive HoursPerDay is normalized to the default of 8 before any
// division, so the computation is total over all stored balances.
func ComputeStats(balance *Balance, entries []Entry) Stats {
	b := DefaultBalance(0)
	if balance != nil {
		b = *balance
	}

	hoursPerDay := b.HoursPerDay
	if !hoursPerDay.IsPositive() {
		hoursPerDay = DefaultHoursPerDay
	}

	entitlementDays := b.BaseDays.Add(b.PurchasedDays)
	entitlementHours := entitlementDays.Mul(hoursPerDay).
		Add(b.CarryOverHours).
		Add(b.ManualAdjustmentHours)

	taken := decimal.Zero
	for _, e := range entries {
		taken = taken.Add(e.Hours)
	}

	remaining := entitlementHours.Sub(taken)

	return Stats{
		TotalEntitlementDays:  entitlementDays,
		TotalEntitlementHours: entitlementHours,
		TakenHours:            taken,
		TakenDays:             taken.Div(hoursPerDay),
		RemainingHours:        remaining,
		RemainingDays:         remaining.Div(hoursPerDay),
	}
}
