/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TRI-STATE FIELDS:
  The per-day delta and the per-week worked total are nullable on the
  wire: null means "no data logged", which the UI renders differently
  from a zero balance. Collapsing the two would silently change meaning.

SEE ALSO:
  - handlers.go: validation and conversion
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/worksuite/worktime-engine/auth"
	"github.com/worksuite/worktime-engine/leave"
	"github.com/worksuite/worktime-engine/worktime"
)

// =============================================================================
// AUTH
// =============================================================================

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserDTO represents an account in API responses.
type UserDTO struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
}

// TokenResponse carries a freshly issued JWT.
type TokenResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

func toUserDTO(u *auth.User) UserDTO {
	return UserDTO{ID: u.ID, Username: u.Username, DisplayName: u.DisplayName}
}

// =============================================================================
// WORK LOG
// =============================================================================

// WorkLogEntryDTO represents a raw day record. Start/end are HH:mm or
// absent; absent means the bound was never logged.
type WorkLogEntryDTO struct {
	Date         string  `json:"date"`
	StartTime    *string `json:"start_time,omitempty"`
	EndTime      *string `json:"end_time,omitempty"`
	BreakMinutes int     `json:"break_minutes"`
	Notes        string  `json:"notes,omitempty"`
}

// UpsertWorkLogRequest is the body of PUT /api/worklog/{date}.
type UpsertWorkLogRequest struct {
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	BreakMinutes int     `json:"break_minutes"`
	Notes        string  `json:"notes"`
}

// DayViewDTO is the computed per-day ledger view. Delta fields are null
// when the day has no entry (unknown, not zero).
type DayViewDTO struct {
	Date          string  `json:"date"`
	HasEntry      bool    `json:"has_entry"`
	WorkedMinutes int     `json:"worked_minutes"`
	Worked        string  `json:"worked"`
	NormMinutes   int     `json:"norm_minutes"`
	DeltaMinutes  *int    `json:"delta_minutes,omitempty"`
	Delta         *string `json:"delta,omitempty"`
}

// WeekDTO aggregates one ISO week. WorkedMinutes/DeltaMinutes are null for
// weeks without any logged time.
type WeekDTO struct {
	ISOYear           int          `json:"iso_year"`
	ISOWeek           int          `json:"iso_week"`
	Label             string       `json:"label"`
	Days              []DayViewDTO `json:"days"`
	HasEntries        bool         `json:"has_entries"`
	WorkedMinutes     *int         `json:"worked_minutes,omitempty"`
	NormMinutes       int          `json:"norm_minutes"`
	DeltaMinutes      *int         `json:"delta_minutes,omitempty"`
	Delta             *string      `json:"delta,omitempty"`
	CumulativeMinutes int          `json:"cumulative_minutes"`
	Cumulative        string       `json:"cumulative"`
}

// YearReportDTO is the full yearly overtime report.
type YearReportDTO struct {
	Year             int       `json:"year"`
	CarryOverMinutes int       `json:"carry_over_minutes"`
	CarryOver        string    `json:"carry_over"`
	Weeks            []WeekDTO `json:"weeks"`
	BalanceMinutes   int       `json:"balance_minutes"`
	Balance          string    `json:"balance"`
}

// CarryOverDTO is the stored per-year overtime carry-over.
type CarryOverDTO struct {
	Year    int    `json:"year"`
	Minutes int    `json:"minutes"`
	Display string `json:"display"`
}

// UpsertCarryOverRequest is the body of PUT /api/carryover/{year}.
type UpsertCarryOverRequest struct {
	Minutes int `json:"minutes"`
}

func toWorkLogEntryDTO(e worktime.WorkLogEntry) WorkLogEntryDTO {
	dto := WorkLogEntryDTO{
		Date:         e.Date.String(),
		BreakMinutes: e.BreakMinutes,
		Notes:        e.Notes,
	}
	if e.Start != nil {
		s := e.Start.String()
		dto.StartTime = &s
	}
	if e.End != nil {
		s := e.End.String()
		dto.EndTime = &s
	}
	return dto
}

func toDayViewDTO(v worktime.DayView) DayViewDTO {
	dto := DayViewDTO{
		Date:          v.Date.String(),
		HasEntry:      v.HasEntry,
		WorkedMinutes: v.Worked,
		Worked:        worktime.FormatMinutes(v.Worked),
		NormMinutes:   v.Norm,
	}
	if v.HasEntry {
		delta := v.Delta
		display := worktime.FormatMinutes(delta)
		dto.DeltaMinutes = &delta
		dto.Delta = &display
	}
	return dto
}

func toWeekDTO(w worktime.WeekAggregate, cumulative int) WeekDTO {
	dto := WeekDTO{
		ISOYear:           w.Key.Year,
		ISOWeek:           w.Key.Week,
		Label:             w.Key.String(),
		HasEntries:        w.HasEntries,
		NormMinutes:       w.TotalNorm,
		CumulativeMinutes: cumulative,
		Cumulative:        worktime.FormatMinutes(cumulative),
	}
	for _, day := range w.Days {
		dto.Days = append(dto.Days, toDayViewDTO(day))
	}
	if w.HasEntries {
		worked, delta := w.TotalWork, w.Delta
		display := worktime.FormatMinutes(delta)
		dto.WorkedMinutes = &worked
		dto.DeltaMinutes = &delta
		dto.Delta = &display
	}
	return dto
}

func toYearReportDTO(r worktime.YearReport) YearReportDTO {
	dto := YearReportDTO{
		Year:             r.Year,
		CarryOverMinutes: r.CarryOverMinutes,
		CarryOver:        worktime.FormatMinutes(r.CarryOverMinutes),
		BalanceMinutes:   r.Balance,
		Balance:          worktime.FormatMinutes(r.Balance),
	}
	for i, week := range r.Weeks {
		dto.Weeks = append(dto.Weeks, toWeekDTO(week, r.Cumulative[i]))
	}
	return dto
}

// =============================================================================
// LEAVE
// =============================================================================

// LeaveBalanceDTO is the stored (or defaulted) entitlement for a year.
type LeaveBalanceDTO struct {
	Year                  int             `json:"year"`
	BaseDays              decimal.Decimal `json:"base_days"`
	PurchasedDays         decimal.Decimal `json:"purchased_days"`
	CarryOverHours        decimal.Decimal `json:"carry_over_hours"`
	ManualAdjustmentHours decimal.Decimal `json:"manual_adjustment_hours"`
	HoursPerDay           decimal.Decimal `json:"hours_per_day"`
	Stored                bool            `json:"stored"` // false when defaults apply
}

// UpsertLeaveBalanceRequest is the body of PUT /api/leave/{year}/balance.
type UpsertLeaveBalanceRequest struct {
	BaseDays              decimal.Decimal `json:"base_days"`
	PurchasedDays         decimal.Decimal `json:"purchased_days"`
	CarryOverHours        decimal.Decimal `json:"carry_over_hours"`
	ManualAdjustmentHours decimal.Decimal `json:"manual_adjustment_hours"`
	HoursPerDay           decimal.Decimal `json:"hours_per_day"`
}

// LeaveEntryDTO represents one logged absence.
type LeaveEntryDTO struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description,omitempty"`
}

// AddLeaveEntryRequest is the body of POST /api/leave/{year}/entries.
type AddLeaveEntryRequest struct {
	Date        string          `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
}

// LeaveStatsDTO carries the computed leave figures at full precision;
// rounding is the client's concern.
type LeaveStatsDTO struct {
	Year                  int             `json:"year"`
	TotalEntitlementDays  decimal.Decimal `json:"total_entitlement_days"`
	TotalEntitlementHours decimal.Decimal `json:"total_entitlement_hours"`
	TakenHours            decimal.Decimal `json:"taken_hours"`
	TakenDays             decimal.Decimal `json:"taken_days"`
	RemainingHours        decimal.Decimal `json:"remaining_hours"`
	RemainingDays         decimal.Decimal `json:"remaining_days"`
}

func toLeaveBalanceDTO(b leave.Balance, stored bool) LeaveBalanceDTO {
	return LeaveBalanceDTO{
		Year:                  b.Year,
		BaseDays:              b.BaseDays,
		PurchasedDays:         b.PurchasedDays,
		CarryOverHours:        b.CarryOverHours,
		ManualAdjustmentHours: b.ManualAdjustmentHours,
		HoursPerDay:           b.HoursPerDay,
		Stored:                stored,
	}
}

func toLeaveEntryDTO(e leave.Entry) LeaveEntryDTO {
	return LeaveEntryDTO{
		ID:          e.ID,
		Date:        e.Date.String(),
		Hours:       e.Hours,
		Description: e.Description,
	}
}

func toLeaveStatsDTO(year int, s leave.Stats) LeaveStatsDTO {
	return LeaveStatsDTO{
		Year:                  year,
		TotalEntitlementDays:  s.TotalEntitlementDays,
		TotalEntitlementHours: s.TotalEntitlementHours,
		TakenHours:            s.TakenHours,
		TakenDays:             s.TakenDays,
		RemainingHours:        s.RemainingHours,
		RemainingDays:         s.RemainingDays,
	}
}
