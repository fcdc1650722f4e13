package worktime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worksuite/worktime-engine/worktime"
)

// =============================================================================
// CLOCK PARSING
// =============================================================================

func TestParseClock_Valid(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"09:00": 540,
		"12:30": 750,
		"23:59": 1439,
	}
	for input, want := range cases {
		ct, err := worktime.ParseClock(input)
		require.NoError(t, err, input)
		assert.Equal(t, worktime.ClockTime(want), ct, input)
		assert.Equal(t, input, ct.String())
	}
}

func TestParseClock_Malformed_Rejected(t *testing.T) {
	for _, input := range []string{"", "9:00", "09:0", "24:00", "12:60", "ab:cd", "09-00", "09:000"} {
		_, err := worktime.ParseClock(input)
		assert.Error(t, err, "input %q should be rejected", input)

		var parseErr *worktime.ClockParseError
		assert.ErrorAs(t, err, &parseErr)
	}
}

// =============================================================================
// WORKED MINUTES
// =============================================================================

func clock(s string) *worktime.ClockTime {
	ct := worktime.MustParseClock(s)
	return &ct
}

func TestComputeWorkedMinutes_FullDayWithBreak(t *testing.T) {
	// GIVEN: 09:00 to 17:00 with a 30 minute break
	// THEN: 8h minus the break = 450 minutes
	assert.Equal(t, 450, worktime.ComputeWorkedMinutes(clock("09:00"), clock("17:00"), 30))
}

func TestComputeWorkedMinutes_MissingBound_IsZero(t *testing.T) {
	assert.Equal(t, 0, worktime.ComputeWorkedMinutes(nil, clock("17:00"), 0))
	assert.Equal(t, 0, worktime.ComputeWorkedMinutes(clock("09:00"), nil, 0))
	assert.Equal(t, 0, worktime.ComputeWorkedMinutes(nil, nil, 30))
}

func TestComputeWorkedMinutes_EndBeforeStart_ClampedToZero(t *testing.T) {
	// Overnight shifts are not supported: an end before the start is
	// clamped, never interpreted as "worked into the next day".
	assert.Equal(t, 0, worktime.ComputeWorkedMinutes(clock("09:00"), clock("08:00"), 0))
}

func TestComputeWorkedMinutes_BreakLongerThanSpan_ClampedToZero(t *testing.T) {
	assert.Equal(t, 0, worktime.ComputeWorkedMinutes(clock("09:00"), clock("09:30"), 60))
}

func TestComputeWorkedMinutes_NeverNegative(t *testing.T) {
	for startMin := 0; startMin < 1440; startMin += 97 {
		for endMin := 0; endMin < 1440; endMin += 113 {
			s, e := worktime.ClockTime(startMin), worktime.ClockTime(endMin)
			got := worktime.ComputeWorkedMinutes(&s, &e, 45)
			assert.GreaterOrEqual(t, got, 0)
		}
	}
}

// =============================================================================
// SIGNED MINUTE FORMATTING
// =============================================================================

func TestFormatMinutes(t *testing.T) {
	cases := map[int]string{
		0:     "0:00",
		-90:   "-1:30",
		135:   "2:15",
		60:    "1:00",
		-1:    "-0:01",
		-1860: "-31:00",
		1439:  "23:59",
	}
	for minutes, want := range cases {
		assert.Equal(t, want, worktime.FormatMinutes(minutes), "minutes=%d", minutes)
	}
}

func TestFormatMinutes_RoundTrip(t *testing.T) {
	for m := -3000; m <= 3000; m += 7 {
		parsed, err := worktime.ParseMinutes(worktime.FormatMinutes(m))
		require.NoError(t, err, "m=%d", m)
		assert.Equal(t, m, parsed)
	}
}

func TestParseMinutes_Malformed_Rejected(t *testing.T) {
	for _, input := range []string{"", "abc", "1:99"} {
		_, err := worktime.ParseMinutes(input)
		assert.Error(t, err, "input %q", input)
	}
}
