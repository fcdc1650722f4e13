/*
handlers.go - HTTP API handlers for the ledger engines

PURPOSE:
  Exposes the work-time and leave ledgers via REST. Handlers load records
  through the store collaborators, feed them to the pure engine functions,
  and serialize the results. No computation lives here and no state is
  cached: every report is recomputed from the current records.

ENDPOINTS:
  Work log:
    GET    /api/worklog?from=&to=       Raw entries in a date range
    PUT    /api/worklog/{date}          Upsert one day's record
    DELETE /api/worklog/{date}          Delete one day's record
    GET    /api/worklog/day/{date}      Computed per-day view
    GET    /api/worklog/report/{year}   Yearly report with cumulative balance

  Carry-over:
    GET    /api/carryover/{year}
    PUT    /api/carryover/{year}

  Leave:
    GET    /api/leave/{year}/balance    Stored balance, or defaults
    PUT    /api/leave/{year}/balance
    GET    /api/leave/{year}/entries
    POST   /api/leave/{year}/entries
    DELETE /api/leave/entries/{id}
    GET    /api/leave/{year}/stats      Computed leave statistics

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors (malformed dates, HH:mm, non-positive hours)
  - 401: Missing/invalid token
  - 404: Unknown route parameters
  - 409: Conflicts (duplicate username)
  - 500: Store failures

SEE ALSO:
  - dto.go: Request/response data structures
  - auth.go: Token middleware
  - server.go: Router setup
*/
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/worksuite/worktime-engine/auth"
	"github.com/worksuite/worktime-engine/calendar"
	"github.com/worksuite/worktime-engine/leave"
	"github.com/worksuite/worktime-engine/worktime"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	WorkStore  worktime.Store
	LeaveStore leave.Store
	Users      auth.Store
	Tokens     *auth.TokenIssuer
	Norm       worktime.NormPolicy
}

// NewHandler creates a handler over the given stores, using the default
// norm policy.
func NewHandler(work worktime.Store, lv leave.Store, users auth.Store, tokens *auth.TokenIssuer) *Handler {
	return &Handler{
		WorkStore:  work,
		LeaveStore: lv,
		Users:      users,
		Tokens:     tokens,
		Norm:       worktime.DefaultNormPolicy,
	}
}

// =============================================================================
// WORK LOG HANDLERS
// =============================================================================

// ListWorkLog returns raw entries for ?from=&to= (inclusive).
func (h *Handler) ListWorkLog(w http.ResponseWriter, r *http.Request) {
	from, err := calendar.Parse(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid 'from' date", err)
		return
	}
	to, err := calendar.Parse(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid 'to' date", err)
		return
	}
	if to.Before(from) {
		writeError(w, http.StatusBadRequest, "'to' must not be before 'from'", nil)
		return
	}

	entries, err := h.WorkStore.WorkLogRange(r.Context(), UserID(r.Context()), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load work log", err)
		return
	}

	dtos := make([]WorkLogEntryDTO, 0, len(entries))
	for _, date := range calendar.Range(from, to) {
		if entry, ok := entries[date]; ok {
			dtos = append(dtos, toWorkLogEntryDTO(entry))
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// UpsertWorkLog creates or replaces the entry for the path date.
func (h *Handler) UpsertWorkLog(w http.ResponseWriter, r *http.Request) {
	date, err := calendar.Parse(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	var req UpsertWorkLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.BreakMinutes < 0 {
		writeError(w, http.StatusBadRequest, "break_minutes must not be negative", nil)
		return
	}

	entry := worktime.WorkLogEntry{
		Date:         date,
		BreakMinutes: req.BreakMinutes,
		Notes:        req.Notes,
	}
	if entry.Start, err = parseOptionalClock(req.StartTime); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_time", err)
		return
	}
	if entry.End, err = parseOptionalClock(req.EndTime); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_time", err)
		return
	}

	if err := h.WorkStore.UpsertWorkLog(r.Context(), UserID(r.Context()), entry); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save entry", err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkLogEntryDTO(entry))
}

// DeleteWorkLog removes the entry for the path date.
func (h *Handler) DeleteWorkLog(w http.ResponseWriter, r *http.Request) {
	date, err := calendar.Parse(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	if err := h.WorkStore.DeleteWorkLog(r.Context(), UserID(r.Context()), date); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetDayView returns the computed view for one day.
func (h *Handler) GetDayView(w http.ResponseWriter, r *http.Request) {
	date, err := calendar.Parse(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	entries, err := h.WorkStore.WorkLogRange(r.Context(), UserID(r.Context()), date, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load work log", err)
		return
	}

	var entry *worktime.WorkLogEntry
	if e, ok := entries[date]; ok {
		entry = &e
	}
	writeJSON(w, http.StatusOK, toDayViewDTO(worktime.DayViewFor(date, entry, h.Norm)))
}

// GetYearReport returns the yearly overtime report.
func (h *Handler) GetYearReport(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	userID := UserID(r.Context())
	workdays := calendar.YearWorkdays(year)
	entries, err := h.WorkStore.WorkLogRange(r.Context(), userID, workdays[0], workdays[len(workdays)-1])
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load work log", err)
		return
	}

	carry := 0
	if co, err := h.WorkStore.CarryOver(r.Context(), userID, year); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load carry-over", err)
		return
	} else if co != nil {
		carry = co.Minutes
	}

	report := worktime.BuildYearReport(year, entries, carry, h.Norm)
	writeJSON(w, http.StatusOK, toYearReportDTO(report))
}

// =============================================================================
// CARRY-OVER HANDLERS
// =============================================================================

// GetCarryOver returns the stored carry-over, defaulting to 0 minutes.
func (h *Handler) GetCarryOver(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	co, err := h.WorkStore.CarryOver(r.Context(), UserID(r.Context()), year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load carry-over", err)
		return
	}
	minutes := 0
	if co != nil {
		minutes = co.Minutes
	}
	writeJSON(w, http.StatusOK, CarryOverDTO{
		Year:    year,
		Minutes: minutes,
		Display: worktime.FormatMinutes(minutes),
	})
}

// PutCarryOver upserts the carry-over for the path year.
func (h *Handler) PutCarryOver(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	var req UpsertCarryOverRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	co := worktime.CarryOver{Year: year, Minutes: req.Minutes}
	if err := h.WorkStore.UpsertCarryOver(r.Context(), UserID(r.Context()), co); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save carry-over", err)
		return
	}
	writeJSON(w, http.StatusOK, CarryOverDTO{
		Year:    year,
		Minutes: co.Minutes,
		Display: worktime.FormatMinutes(co.Minutes),
	})
}

// =============================================================================
// LEAVE HANDLERS
// =============================================================================

// GetLeaveBalance returns the stored balance, or the defaults when unset.
func (h *Handler) GetLeaveBalance(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	balance, err := h.LeaveStore.Balance(r.Context(), UserID(r.Context()), year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load leave balance", err)
		return
	}
	if balance == nil {
		def := leave.DefaultBalance(year)
		writeJSON(w, http.StatusOK, toLeaveBalanceDTO(def, false))
		return
	}
	writeJSON(w, http.StatusOK, toLeaveBalanceDTO(*balance, true))
}

// PutLeaveBalance upserts the balance for the path year.
func (h *Handler) PutLeaveBalance(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	var req UpsertLeaveBalanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.BaseDays.IsNegative() || req.PurchasedDays.IsNegative() {
		writeError(w, http.StatusBadRequest, "Day counts must not be negative", nil)
		return
	}

	balance := leave.Balance{
		Year:                  year,
		BaseDays:              req.BaseDays,
		PurchasedDays:         req.PurchasedDays,
		CarryOverHours:        req.CarryOverHours,
		ManualAdjustmentHours: req.ManualAdjustmentHours,
		HoursPerDay:           req.HoursPerDay,
	}
	if err := h.LeaveStore.UpsertBalance(r.Context(), UserID(r.Context()), balance); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save leave balance", err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveBalanceDTO(balance, true))
}

// ListLeaveEntries returns all entries for the path year.
func (h *Handler) ListLeaveEntries(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	entries, err := h.LeaveStore.Entries(r.Context(), UserID(r.Context()), year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load leave entries", err)
		return
	}

	dtos := make([]LeaveEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, toLeaveEntryDTO(e))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// AddLeaveEntry stores a new leave entry under the path year.
func (h *Handler) AddLeaveEntry(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	var req AddLeaveEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := calendar.Parse(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	if date.Year != year {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Entry date must fall in %d", year), nil)
		return
	}
	if !req.Hours.IsPositive() {
		writeError(w, http.StatusBadRequest, "hours must be positive", nil)
		return
	}

	entry := leave.Entry{
		ID:          uuid.NewString(),
		Date:        date,
		Hours:       req.Hours,
		Description: req.Description,
	}
	if err := h.LeaveStore.AddEntry(r.Context(), UserID(r.Context()), entry); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save leave entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, toLeaveEntryDTO(entry))
}

// DeleteLeaveEntry removes an entry by id.
func (h *Handler) DeleteLeaveEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")
	if err := h.LeaveStore.DeleteEntry(r.Context(), UserID(r.Context()), entryID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete leave entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetLeaveStats returns the computed leave figures for the path year.
func (h *Handler) GetLeaveStats(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	userID := UserID(r.Context())
	balance, err := h.LeaveStore.Balance(r.Context(), userID, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load leave balance", err)
		return
	}
	entries, err := h.LeaveStore.Entries(r.Context(), userID, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load leave entries", err)
		return
	}

	stats := leave.ComputeStats(balance, entries)
	writeJSON(w, http.StatusOK, toLeaveStatsDTO(year, stats))
}

// =============================================================================
// HELPERS
// =============================================================================

func parseOptionalClock(s *string) (*worktime.ClockTime, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	ct, err := worktime.ParseClock(*s)
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if year < 1970 || year > 9999 {
		return 0, fmt.Errorf("year %d out of range", year)
	}
	return year, nil
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := errorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
