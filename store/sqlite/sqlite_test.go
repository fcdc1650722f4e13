package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worksuite/worktime-engine/auth"
	"github.com/worksuite/worktime-engine/calendar"
	"github.com/worksuite/worktime-engine/leave"
	"github.com/worksuite/worktime-engine/store/sqlite"
	"github.com/worksuite/worktime-engine/worktime"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func clock(s string) *worktime.ClockTime {
	ct := worktime.MustParseClock(s)
	return &ct
}

// =============================================================================
// WORK LOG
// =============================================================================

func TestWorkLog_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	date := calendar.NewDate(2025, time.January, 6)

	entry := worktime.WorkLogEntry{
		Date:         date,
		Start:        clock("08:30"),
		End:          clock("18:00"),
		BreakMinutes: 30,
		Notes:        "pairing all afternoon",
	}
	require.NoError(t, s.UpsertWorkLog(ctx, "u1", entry))

	got, err := s.WorkLogRange(ctx, "u1", date, date)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, entry, got[date])
}

func TestWorkLog_Upsert_LastWriteWins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	date := calendar.NewDate(2025, time.January, 6)

	first := worktime.WorkLogEntry{Date: date, Start: clock("08:00"), End: clock("16:00")}
	second := worktime.WorkLogEntry{Date: date, Start: clock("09:00"), End: clock("17:30"), BreakMinutes: 45}
	require.NoError(t, s.UpsertWorkLog(ctx, "u1", first))
	require.NoError(t, s.UpsertWorkLog(ctx, "u1", second))

	got, err := s.WorkLogRange(ctx, "u1", date, date)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, second, got[date])
}

func TestWorkLog_NilBoundsSurviveStorage(t *testing.T) {
	// "End never recorded" must come back as nil, not as 00:00.
	s := newTestStore(t)
	ctx := context.Background()
	date := calendar.NewDate(2025, time.January, 6)

	entry := worktime.WorkLogEntry{Date: date, Start: clock("08:30")}
	require.NoError(t, s.UpsertWorkLog(ctx, "u1", entry))

	got, err := s.WorkLogRange(ctx, "u1", date, date)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[date].Start)
	assert.Nil(t, got[date].End)
}

func TestWorkLog_RangeIsInclusiveAndUserScoped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	monday := calendar.NewDate(2025, time.January, 6)

	for i := 0; i < 5; i++ {
		d := monday.AddDays(i)
		require.NoError(t, s.UpsertWorkLog(ctx, "u1", worktime.WorkLogEntry{Date: d, Start: clock("09:00")}))
	}
	require.NoError(t, s.UpsertWorkLog(ctx, "u2", worktime.WorkLogEntry{Date: monday, Start: clock("10:00")}))

	got, err := s.WorkLogRange(ctx, "u1", monday, monday.AddDays(2))
	require.NoError(t, err)
	assert.Len(t, got, 3)

	other, err := s.WorkLogRange(ctx, "u2", monday, monday.AddDays(6))
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, clock("10:00"), other[monday].Start)
}

func TestWorkLog_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	date := calendar.NewDate(2025, time.January, 6)

	require.NoError(t, s.UpsertWorkLog(ctx, "u1", worktime.WorkLogEntry{Date: date, Start: clock("09:00")}))
	require.NoError(t, s.DeleteWorkLog(ctx, "u1", date))

	got, err := s.WorkLogRange(ctx, "u1", date, date)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Deleting a missing row is a no-op, not an error.
	assert.NoError(t, s.DeleteWorkLog(ctx, "u1", date))
}

// =============================================================================
// CARRY-OVER
// =============================================================================

func TestCarryOver_MissingIsNil(t *testing.T) {
	s := newTestStore(t)

	co, err := s.CarryOver(context.Background(), "u1", 2025)
	require.NoError(t, err)
	assert.Nil(t, co)
}

func TestCarryOver_UpsertAndReplace(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertCarryOver(ctx, "u1", worktime.CarryOver{Year: 2025, Minutes: 120}))
	require.NoError(t, s.UpsertCarryOver(ctx, "u1", worktime.CarryOver{Year: 2025, Minutes: -45}))

	co, err := s.CarryOver(ctx, "u1", 2025)
	require.NoError(t, err)
	require.NotNil(t, co)
	assert.Equal(t, -45, co.Minutes)

	// Other users and other years are untouched.
	other, err := s.CarryOver(ctx, "u2", 2025)
	require.NoError(t, err)
	assert.Nil(t, other)
}

// =============================================================================
// LEAVE
// =============================================================================

func TestLeaveBalance_MissingIsNil(t *testing.T) {
	s := newTestStore(t)

	b, err := s.Balance(context.Background(), "u1", 2025)
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestLeaveBalance_DecimalPrecisionSurvivesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	balance := leave.Balance{
		Year:                  2025,
		BaseDays:              decimal.RequireFromString("28.5"),
		PurchasedDays:         decimal.RequireFromString("0.123456789"),
		CarryOverHours:        decimal.RequireFromString("-3.25"),
		ManualAdjustmentHours: decimal.RequireFromString("0.000001"),
		HoursPerDay:           decimal.RequireFromString("7.7"),
	}
	require.NoError(t, s.UpsertBalance(ctx, "u1", balance))

	got, err := s.Balance(ctx, "u1", 2025)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, balance.BaseDays.Equal(got.BaseDays))
	assert.True(t, balance.PurchasedDays.Equal(got.PurchasedDays))
	assert.True(t, balance.CarryOverHours.Equal(got.CarryOverHours))
	assert.True(t, balance.ManualAdjustmentHours.Equal(got.ManualAdjustmentHours))
	assert.True(t, balance.HoursPerDay.Equal(got.HoursPerDay))
}

func TestLeaveEntries_ScopedByUserAndYear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	add := func(user, id string, date calendar.Date) {
		require.NoError(t, s.AddEntry(ctx, user, leave.Entry{
			ID: id, Date: date, Hours: decimal.NewFromInt(8),
		}))
	}
	add("u1", "a", calendar.NewDate(2025, time.March, 10))
	add("u1", "b", calendar.NewDate(2025, time.February, 3))
	add("u1", "c", calendar.NewDate(2024, time.December, 23))
	add("u2", "d", calendar.NewDate(2025, time.March, 10))

	entries, err := s.Entries(ctx, "u1", 2025)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Ordered by date.
	assert.Equal(t, "b", entries[0].ID)
	assert.Equal(t, "a", entries[1].ID)
}

func TestLeaveEntries_DeleteScopedToOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	date := calendar.NewDate(2025, time.March, 10)

	require.NoError(t, s.AddEntry(ctx, "u1", leave.Entry{ID: "a", Date: date, Hours: decimal.NewFromInt(8)}))

	// Another user cannot delete it.
	require.NoError(t, s.DeleteEntry(ctx, "u2", "a"))
	entries, err := s.Entries(ctx, "u1", 2025)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, s.DeleteEntry(ctx, "u1", "a"))
	entries, err = s.Entries(ctx, "u1", 2025)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// =============================================================================
// USERS
// =============================================================================

func TestUsers_CreateAndLookup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := auth.User{
		ID:           "u1",
		Username:     "ada",
		DisplayName:  "Ada L.",
		PasswordHash: "not-a-real-hash",
		CreatedAt:    time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	byName, err := s.UserByUsername(ctx, "ada")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, user, *byName)

	byID, err := s.UserByID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "ada", byID.Username)
}

func TestUsers_MissingIsNil(t *testing.T) {
	s := newTestStore(t)

	u, err := s.UserByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUsers_DuplicateUsername_Rejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := auth.User{ID: "u1", Username: "ada", PasswordHash: "h", CreatedAt: time.Now().UTC()}
	require.NoError(t, s.CreateUser(ctx, first))

	dup := auth.User{ID: "u2", Username: "ada", PasswordHash: "h", CreatedAt: time.Now().UTC()}
	assert.ErrorIs(t, s.CreateUser(ctx, dup), auth.ErrUsernameTaken)
}
