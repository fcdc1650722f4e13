/*
clock.go - Wall-clock time primitives for the work-time ledger

PURPOSE:
  Converts between HH:mm strings and minute-of-day integers, computes
  worked minutes from a start/end/break triple, and renders signed minute
  balances as ±H:MM.

CLAMPING RULES:
  Worked time is never negative. The raw span (end - start) is clamped to
  >= 0 before break subtraction, and the result is clamped to >= 0 again.
  An end time before the start time therefore yields 0 - overnight shifts
  are intentionally NOT supported.

VALIDATION:
  ParseClock rejects anything that is not a strict HH:mm with a typed
  ClockParseError. The ledger itself only ever operates on parsed values;
  input validation is the boundary's job.
*/
package worktime

import (
	"fmt"
	"strings"
)

// =============================================================================
// CLOCK TIME - Minute of day
// =============================================================================

// ClockTime is a wall-clock time of day, stored as minutes since midnight.
type ClockTime int

// ClockParseError is returned for strings that are not valid HH:mm times.
type ClockParseError struct {
	Input string
}

func (e *ClockParseError) Error() string {
	return fmt.Sprintf("invalid clock time %q: expected HH:mm", e.Input)
}

// ParseClock parses a strict HH:mm string (00:00 .. 23:59).
func ParseClock(s string) (ClockTime, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, &ClockParseError{Input: s}
	}
	hour, ok1 := parseTwoDigits(s[:2])
	minute, ok2 := parseTwoDigits(s[3:])
	if !ok1 || !ok2 || hour > 23 || minute > 59 {
		return 0, &ClockParseError{Input: s}
	}
	return ClockTime(hour*60 + minute), nil
}

// MustParseClock is a test/fixture helper that panics on invalid input.
func MustParseClock(s string) ClockTime {
	ct, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return ct
}

func parseTwoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

// String renders the clock time as HH:mm.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// =============================================================================
// WORKED MINUTES
// =============================================================================

// ComputeWorkedMinutes returns the worked minutes for a day given optional
// start/end times and a break. Either bound missing means "no record" and
// yields 0. The result is never negative.
func ComputeWorkedMinutes(start, end *ClockTime, breakMinutes int) int {
	if start == nil || end == nil {
		return 0
	}
	raw := int(*end) - int(*start)
	if raw < 0 {
		raw = 0
	}
	worked := raw - breakMinutes
	if worked < 0 {
		worked = 0
	}
	return worked
}

// =============================================================================
// SIGNED MINUTE FORMATTING
// =============================================================================

// FormatMinutes renders a signed minute count as ±H:MM. The sign prefix
// appears only for negative values; minutes are zero-padded to two digits.
//
//	-90 -> "-1:30"    135 -> "2:15"    0 -> "0:00"
func FormatMinutes(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%d:%02d", sign, minutes/60, minutes%60)
}

// ParseMinutes is the inverse of FormatMinutes.
func ParseMinutes(s string) (int, error) {
	orig := s
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	var hours, mins int
	if _, err := fmt.Sscanf(s, "%d:%d", &hours, &mins); err != nil || mins > 59 {
		return 0, fmt.Errorf("invalid minute balance %q: expected ±H:MM", orig)
	}
	total := hours*60 + mins
	if negative {
		total = -total
	}
	return total, nil
}
