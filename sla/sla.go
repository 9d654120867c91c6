// Package sla derives the "days remaining" countdown for a complaint from
// the predictor's resolution estimate and the filing timestamp.
//
// All functions degrade to documented sentinel values instead of returning
// errors: an unknown duration is an invalid NullInt64, an unknown countdown
// is NotAvailable. Zero always means "due today", never "unknown".
package sla

import (
	"database/sql"
	"regexp"
	"strings"
	"time"
)

// DefaultDurationDays is used when the predictor returned text that contains
// no digits at all.
const DefaultDurationDays = 7

// normalizeCap bounds classifier estimates to a presentation-friendly range:
// anything above it is replaced with value mod 10. Applied exactly once, at
// the first successful parse.
const normalizeCap = 10

var signedDigitRun = regexp.MustCompile(`-?\d+`)

// ParseDuration extracts a day count from the predictor's raw output
// ("33 days", "7", "about 5 days").
//
//   - empty input -> absent
//   - no digits in non-empty input -> DefaultDurationDays
//   - negative number -> absent
//   - otherwise the first contiguous digit run, parsed as an integer
//
// The result is not normalized; callers apply Normalize once when the value
// is first stored.
func ParseDuration(raw string) sql.NullInt64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return sql.NullInt64{}
	}
	m := signedDigitRun.FindString(raw)
	if m == "" {
		return sql.NullInt64{Int64: DefaultDurationDays, Valid: true}
	}
	neg := m[0] == '-'
	if neg {
		m = m[1:]
	}
	var n int64
	for _, r := range m {
		n = n*10 + int64(r-'0')
		if n > 1<<31 {
			// Absurdly long digit runs are parse failures, not durations.
			return sql.NullInt64{Int64: DefaultDurationDays, Valid: true}
		}
	}
	if neg {
		n = -n
	}
	return ParseDurationDays(n)
}

// ParseDurationDays accepts an already-numeric day count. Negative values
// are treated as a parse failure and clamped to absent; a negative duration
// must never become a countdown.
func ParseDurationDays(days int64) sql.NullInt64 {
	if days < 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: days, Valid: true}
}

// Normalize applies the one-time bounding rule to a freshly parsed duration:
// values above 10 are replaced with value mod 10. Absent stays absent.
// This runs once when the duration is first stored, never on reconciliation.
func Normalize(d sql.NullInt64) sql.NullInt64 {
	if !d.Valid || d.Int64 <= normalizeCap {
		return d
	}
	return sql.NullInt64{Int64: d.Int64 % 10, Valid: true}
}

// Remaining computes the days left until the predicted resolution.
//
// Elapsed time is measured in 24-hour buckets (floor of elapsed hours / 24)
// so records reconciled at different times of day stay comparable. The result
// is floored at 0. If the filing timestamp or the predicted duration is
// absent, the countdown is NotAvailable (an invalid NullInt64), never 0.
func Remaining(filedAt sql.NullTime, predictedDays sql.NullInt64, now time.Time) sql.NullInt64 {
	if !filedAt.Valid || !predictedDays.Valid {
		return sql.NullInt64{}
	}
	daysPassed := int64(now.Sub(filedAt.Time).Hours() / 24)
	if daysPassed < 0 {
		daysPassed = 0
	}
	remaining := predictedDays.Int64 - daysPassed
	if remaining < 0 {
		remaining = 0
	}
	return sql.NullInt64{Int64: remaining, Valid: true}
}
