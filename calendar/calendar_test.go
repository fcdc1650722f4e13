package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worksuite/worktime-engine/calendar"
)

// =============================================================================
// DATE BASICS
// =============================================================================

func TestParse_RoundTrip(t *testing.T) {
	d, err := calendar.Parse("2025-03-09")
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2025, time.March, 9), d)
	assert.Equal(t, "2025-03-09", d.String())
}

func TestParse_Malformed_Rejected(t *testing.T) {
	for _, input := range []string{"", "2025-13-01", "2025-02-30", "09.03.2025", "2025-3-9"} {
		_, err := calendar.Parse(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestAddDays_CrossesMonthAndYear(t *testing.T) {
	assert.Equal(t, calendar.NewDate(2025, time.February, 1), calendar.NewDate(2025, time.January, 31).AddDays(1))
	assert.Equal(t, calendar.NewDate(2026, time.January, 1), calendar.NewDate(2025, time.December, 31).AddDays(1))
	assert.Equal(t, calendar.NewDate(2025, time.December, 31), calendar.NewDate(2026, time.January, 1).AddDays(-1))
}

func TestISOWeekday_MondayIsOneSundayIsSeven(t *testing.T) {
	monday := calendar.NewDate(2025, time.January, 6)
	for i := 0; i < 7; i++ {
		assert.Equal(t, i+1, monday.AddDays(i).ISOWeekday())
	}
}

func TestIsWeekend(t *testing.T) {
	saturday := calendar.NewDate(2025, time.January, 11)
	assert.True(t, saturday.IsWeekend())
	assert.True(t, saturday.AddDays(1).IsWeekend())
	assert.False(t, saturday.AddDays(2).IsWeekend())
	assert.True(t, saturday.AddDays(2).IsWorkday())
}

// =============================================================================
// ISO WEEK EDGE CASES
// =============================================================================

func TestISOWeek_JanFirstOnThursday_IsWeekOne(t *testing.T) {
	// 2015-01-01 was a Thursday: it anchors week 1 of its own year.
	d := calendar.NewDate(2015, time.January, 1)
	assert.Equal(t, calendar.WeekKey{Year: 2015, Week: 1}, d.ISOWeek())
}

func TestISOWeek_JanFirstOnFriday_BelongsToPreviousYear(t *testing.T) {
	// 2016-01-01 was a Friday: ISO-8601 assigns it to 2015's last week.
	d := calendar.NewDate(2016, time.January, 1)
	assert.Equal(t, calendar.WeekKey{Year: 2015, Week: 53}, d.ISOWeek())
}

func TestISOWeek_LateDecemberCanBelongToNextYear(t *testing.T) {
	// 2025-12-29 is a Monday and opens week 1 of 2026.
	d := calendar.NewDate(2025, time.December, 29)
	assert.Equal(t, calendar.WeekKey{Year: 2026, Week: 1}, d.ISOWeek())
}

func TestWeekKey_String(t *testing.T) {
	assert.Equal(t, "2025-W01", calendar.WeekKey{Year: 2025, Week: 1}.String())
	assert.Equal(t, "2015-W53", calendar.WeekKey{Year: 2015, Week: 53}.String())
}

// =============================================================================
// GROUPING
// =============================================================================

func TestGroupByWeek_SplitsOnKeyChange(t *testing.T) {
	// GIVEN: two adjacent work weeks
	days := calendar.Range(calendar.NewDate(2025, time.January, 6), calendar.NewDate(2025, time.January, 17))

	// WHEN
	buckets := calendar.GroupByWeek(days)

	// THEN
	require.Len(t, buckets, 2)
	assert.Equal(t, calendar.WeekKey{Year: 2025, Week: 2}, buckets[0].Key)
	assert.Len(t, buckets[0].Days, 7)
	assert.Equal(t, calendar.WeekKey{Year: 2025, Week: 3}, buckets[1].Key)
	assert.Len(t, buckets[1].Days, 5)
}

func TestGroupByWeek_EmptyInput(t *testing.T) {
	assert.Empty(t, calendar.GroupByWeek(nil))
}

func TestYearWorkdays_ExcludesWeekends(t *testing.T) {
	days := calendar.YearWorkdays(2025)

	// 2025 runs Wednesday to Wednesday: 52 full weeks plus one extra weekday.
	assert.Len(t, days, 261)
	assert.Equal(t, calendar.NewDate(2025, time.January, 1), days[0])
	assert.Equal(t, calendar.NewDate(2025, time.December, 31), days[len(days)-1])
	for _, d := range days {
		assert.True(t, d.IsWorkday(), d.String())
	}
}

func TestYearWorkdays_GroupedBucketsAreChronological(t *testing.T) {
	buckets := calendar.GroupByWeek(calendar.YearWorkdays(2025))

	require.NotEmpty(t, buckets)
	assert.Equal(t, calendar.WeekKey{Year: 2025, Week: 1}, buckets[0].Key)
	assert.Len(t, buckets[0].Days, 3) // Jan 1-3, Wednesday to Friday
	assert.Equal(t, calendar.WeekKey{Year: 2026, Week: 1}, buckets[len(buckets)-1].Key)
	assert.Len(t, buckets[len(buckets)-1].Days, 3) // Dec 29-31, Monday to Wednesday

	prev := buckets[0].Days[0]
	for _, b := range buckets {
		for _, d := range b.Days {
			assert.False(t, d.Before(prev))
			prev = d
		}
	}
}

func TestRange_Inclusive(t *testing.T) {
	from := calendar.NewDate(2025, time.January, 6)
	days := calendar.Range(from, from.AddDays(2))
	require.Len(t, days, 3)
	assert.Equal(t, from, days[0])
	assert.Equal(t, from.AddDays(2), days[2])
}

func TestRange_FromAfterTo_IsEmpty(t *testing.T) {
	from := calendar.NewDate(2025, time.January, 6)
	assert.Empty(t, calendar.Range(from, from.AddDays(-1)))
}
