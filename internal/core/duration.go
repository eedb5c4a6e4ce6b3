// Package core provides the calendar domain model.
//
// This file contains helpers for reading durations typed by a user and
// rendering minute counts for display.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseMinutes converts a decimal minute count to float64.
//
// Both dot (12.5) and comma (12,5) decimal separators are accepted. Negative
// values and non-numeric input are rejected.
//
// Examples:
//
//	ParseMinutes("90")   -> 90, nil
//	ParseMinutes("12,5") -> 12.5, nil
//	ParseMinutes("-1")   -> 0, ErrNegativeDuration
func ParseMinutes(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty duration", ErrFormat)
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: duration %q", ErrFormat, s)
	}
	if v < 0 {
		return 0, ErrNegativeDuration
	}
	return v, nil
}

// FormatMinutes renders a minute count as "2h 05m", "45m" or "1h".
// Fractions of a minute are rounded to the nearest minute.
func FormatMinutes(m float64) string {
	total := int64(math.Round(m))
	if total < 0 {
		return "-" + FormatMinutes(-m)
	}
	h, mins := total/60, total%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %02dm", h, mins)
	}
}
