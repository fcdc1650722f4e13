/*
Package sqlite provides the SQLite-backed persistence collaborator.

PURPOSE:
  Implements worktime.Store, leave.Store, and auth.Store over a single
  SQLite database. The ledger engines never touch this package; the API
  layer loads records here and feeds them to the pure computations.

UPSERT SEMANTICS:
  Work-log entries, carry-overs, and leave balances are keyed singletons
  (user+date or user+year). Writes are INSERT .. ON CONFLICT DO UPDATE:
  last write wins, no optimistic concurrency - the same record upserted
  twice leaves the same row.

MISSING ROWS:
  Readers report absence as (nil, nil) or an empty map, never as a
  zero-valued record. "No entry for this day" and "entry with zero worked
  minutes" are different facts and the schema preserves that.

PRECISION:
  Leave decimals are stored as TEXT and round-tripped through
  shopspring/decimal so no precision is lost in storage.

WAL MODE:
  The database is opened with WAL journaling for better read concurrency.
  Use ":memory:" for tests.

SEE ALSO:
  - worktime/types.go, leave/types.go: interface definitions
  - store/memory: in-memory mirror implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/worksuite/worktime-engine/auth"
	"github.com/worksuite/worktime-engine/calendar"
	"github.com/worksuite/worktime-engine/leave"
	"github.com/worksuite/worktime-engine/worktime"
)

// Store implements all persistence interfaces using SQLite.
type Store struct {
	db *sql.DB
}

// Interface conformance.
var (
	_ worktime.Store = (*Store)(nil)
	_ leave.Store    = (*Store)(nil)
	_ auth.Store     = (*Store)(nil)
)

// New opens (and migrates) a SQLite store at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- At most one work log entry per (user, date). Start/end are nullable
	-- HH:mm strings; NULL means the bound was never recorded.
	CREATE TABLE IF NOT EXISTS work_log_entries (
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		start_time TEXT,
		end_time TEXT,
		break_minutes INTEGER NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL,
		PRIMARY KEY (user_id, date)
	);

	-- Manually entered overtime balance inherited from prior years.
	CREATE TABLE IF NOT EXISTS overtime_carryover (
		user_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		minutes INTEGER NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (user_id, year)
	);

	-- Leave entitlement per (user, year). Decimals stored as TEXT to
	-- preserve full precision across round-trips.
	CREATE TABLE IF NOT EXISTS leave_balances (
		user_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		base_days TEXT NOT NULL,
		purchased_days TEXT NOT NULL,
		carry_over_hours TEXT NOT NULL,
		manual_adjustment_hours TEXT NOT NULL,
		hours_per_day TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (user_id, year)
	);

	CREATE TABLE IF NOT EXISTS leave_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		date TEXT NOT NULL,
		hours TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_leave_entries_user_year
		ON leave_entries(user_id, year);
	`
	_, err := s.db.Exec(schema)
	return err
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// =============================================================================
// WORK LOG ENTRIES (worktime.Store)
// =============================================================================

// WorkLogRange returns the entries in [from, to] keyed by date.
func (s *Store) WorkLogRange(ctx context.Context, userID string, from, to calendar.Date) (map[calendar.Date]worktime.WorkLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, start_time, end_time, break_minutes, notes
		FROM work_log_entries
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date`,
		userID, from.String(), to.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make(map[calendar.Date]worktime.WorkLogEntry)
	for rows.Next() {
		var (
			dateStr    string
			start, end sql.NullString
			entry      worktime.WorkLogEntry
		)
		if err := rows.Scan(&dateStr, &start, &end, &entry.BreakMinutes, &entry.Notes); err != nil {
			return nil, err
		}
		date, err := calendar.Parse(dateStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt work log date: %w", err)
		}
		entry.Date = date
		if entry.Start, err = scanClock(start); err != nil {
			return nil, err
		}
		if entry.End, err = scanClock(end); err != nil {
			return nil, err
		}
		entries[date] = entry
	}
	return entries, rows.Err()
}

// UpsertWorkLog creates or replaces the entry for (user, entry.Date).
func (s *Store) UpsertWorkLog(ctx context.Context, userID string, entry worktime.WorkLogEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO work_log_entries (user_id, date, start_time, end_time, break_minutes, notes, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			break_minutes = excluded.break_minutes,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		userID, entry.Date.String(), clockValue(entry.Start), clockValue(entry.End),
		entry.BreakMinutes, entry.Notes, now())
	return err
}

// DeleteWorkLog removes the entry for (user, date) if present.
func (s *Store) DeleteWorkLog(ctx context.Context, userID string, date calendar.Date) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM work_log_entries WHERE user_id = ? AND date = ?`,
		userID, date.String())
	return err
}

// CarryOver returns the carry-over for (user, year), or nil if unset.
func (s *Store) CarryOver(ctx context.Context, userID string, year int) (*worktime.CarryOver, error) {
	co := worktime.CarryOver{Year: year}
	err := s.db.QueryRowContext(ctx,
		`SELECT minutes FROM overtime_carryover WHERE user_id = ? AND year = ?`,
		userID, year).Scan(&co.Minutes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &co, nil
}

// UpsertCarryOver creates or replaces the carry-over for (user, year).
func (s *Store) UpsertCarryOver(ctx context.Context, userID string, co worktime.CarryOver) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO overtime_carryover (user_id, year, minutes, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, year) DO UPDATE SET
			minutes = excluded.minutes,
			updated_at = excluded.updated_at`,
		userID, co.Year, co.Minutes, now())
	return err
}

func scanClock(v sql.NullString) (*worktime.ClockTime, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	ct, err := worktime.ParseClock(v.String)
	if err != nil {
		return nil, fmt.Errorf("corrupt clock time: %w", err)
	}
	return &ct, nil
}

func clockValue(c *worktime.ClockTime) interface{} {
	if c == nil {
		return nil
	}
	return c.String()
}

// =============================================================================
// LEAVE BALANCES AND ENTRIES (leave.Store)
// =============================================================================

// Balance returns the stored balance for (user, year), or nil if unset.
func (s *Store) Balance(ctx context.Context, userID string, year int) (*leave.Balance, error) {
	var (
		b                                      = leave.Balance{Year: year}
		base, purchased, carry, adjust, perDay string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT base_days, purchased_days, carry_over_hours, manual_adjustment_hours, hours_per_day
		FROM leave_balances WHERE user_id = ? AND year = ?`,
		userID, year).Scan(&base, &purchased, &carry, &adjust, &perDay)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	fields := []struct {
		dst *decimal.Decimal
		src string
	}{
		{&b.BaseDays, base},
		{&b.PurchasedDays, purchased},
		{&b.CarryOverHours, carry},
		{&b.ManualAdjustmentHours, adjust},
		{&b.HoursPerDay, perDay},
	}
	for _, f := range fields {
		if *f.dst, err = decimal.NewFromString(f.src); err != nil {
			return nil, fmt.Errorf("corrupt leave balance: %w", err)
		}
	}
	return &b, nil
}

// UpsertBalance creates or replaces the balance for (user, b.Year).
func (s *Store) UpsertBalance(ctx context.Context, userID string, b leave.Balance) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leave_balances (user_id, year, base_days, purchased_days, carry_over_hours, manual_adjustment_hours, hours_per_day, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, year) DO UPDATE SET
			base_days = excluded.base_days,
			purchased_days = excluded.purchased_days,
			carry_over_hours = excluded.carry_over_hours,
			manual_adjustment_hours = excluded.manual_adjustment_hours,
			hours_per_day = excluded.hours_per_day,
			updated_at = excluded.updated_at`,
		userID, b.Year, b.BaseDays.String(), b.PurchasedDays.String(),
		b.CarryOverHours.String(), b.ManualAdjustmentHours.String(),
		b.HoursPerDay.String(), now())
	return err
}

// Entries returns all leave entries for (user, year), ordered by date.
func (s *Store) Entries(ctx context.Context, userID string, year int) ([]leave.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, hours, description
		FROM leave_entries
		WHERE user_id = ? AND year = ?
		ORDER BY date, created_at`,
		userID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []leave.Entry
	for rows.Next() {
		var (
			e                 leave.Entry
			dateStr, hoursStr string
		)
		if err := rows.Scan(&e.ID, &dateStr, &hoursStr, &e.Description); err != nil {
			return nil, err
		}
		if e.Date, err = calendar.Parse(dateStr); err != nil {
			return nil, fmt.Errorf("corrupt leave entry date: %w", err)
		}
		if e.Hours, err = decimal.NewFromString(hoursStr); err != nil {
			return nil, fmt.Errorf("corrupt leave entry hours: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AddEntry stores a new leave entry under (user, year of e.Date).
func (s *Store) AddEntry(ctx context.Context, userID string, e leave.Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leave_entries (id, user_id, year, date, hours, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, userID, e.Date.Year, e.Date.String(), e.Hours.String(), e.Description, now())
	return err
}

// DeleteEntry removes an entry by id, scoped to the owning user.
func (s *Store) DeleteEntry(ctx context.Context, userID, entryID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM leave_entries WHERE user_id = ? AND id = ?`,
		userID, entryID)
	return err
}

// =============================================================================
// USERS (auth.Store)
// =============================================================================

// CreateUser stores a new user account.
func (s *Store) CreateUser(ctx context.Context, u auth.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, display_name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.DisplayName, u.PasswordHash,
		u.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return auth.ErrUsernameTaken
	}
	return err
}

// UserByUsername returns the user with the given username, or nil.
func (s *Store) UserByUsername(ctx context.Context, username string) (*auth.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, username, display_name, password_hash, created_at
		FROM users WHERE username = ?`, username))
}

// UserByID returns the user with the given id, or nil.
func (s *Store) UserByID(ctx context.Context, id string) (*auth.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, username, display_name, password_hash, created_at
		FROM users WHERE id = ?`, id))
}

func scanUser(row *sql.Row) (*auth.User, error) {
	var (
		u         auth.User
		createdAt string
	)
	err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.PasswordHash, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}
