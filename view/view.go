// Package view holds the pure filtering and ordering functions behind the
// dashboard and profile listings. Callers own the filter/sort selections;
// nothing here mutates its input.
package view

import (
	"database/sql"
	"sort"
	"strings"

	"govmadad/models"
)

// Sort keys and orders accepted by Apply.
const (
	SortByDate          = "date"
	SortByRemainingDays = "remaining_days"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Filter selects records. Zero values match everything: an empty or "All"
// department matches any record, a nil Urgent matches both urgencies.
//
// The department filter is a case-insensitive substring match against the
// stored value, not equality, so legacy records holding full department
// names ("Public Works Department (PWD)") still match the short form.
type Filter struct {
	Department string
	Urgent     *bool
}

// Sort selects the ordering. An empty By leaves the input order untouched.
type Sort struct {
	By    string
	Order string
}

// Apply filters and orders records for presentation. Filters are
// conjunctive. Sorting is stable; when sorting by remaining days, records
// with an unknown countdown sort after every numeric value regardless of
// direction. The input slice is never modified.
func Apply(records []models.Complaint, f Filter, s Sort) []models.Complaint {
	out := make([]models.Complaint, 0, len(records))
	for _, r := range records {
		if matches(r, f) {
			out = append(out, r)
		}
	}

	desc := s.Order == OrderDesc
	switch s.By {
	case SortByDate:
		sort.SliceStable(out, func(i, j int) bool {
			return lessTime(out[i].FiledAt, out[j].FiledAt, desc)
		})
	case SortByRemainingDays:
		sort.SliceStable(out, func(i, j int) bool {
			return lessRemaining(out[i].RemainingDays, out[j].RemainingDays, desc)
		})
	}
	return out
}

func matches(r models.Complaint, f Filter) bool {
	if f.Department != "" && !strings.EqualFold(f.Department, "All") {
		if !strings.Contains(strings.ToLower(string(r.Department)), strings.ToLower(f.Department)) {
			return false
		}
	}
	if f.Urgent != nil && r.Urgent != *f.Urgent {
		return false
	}
	return true
}

// lessTime orders by filing date; records missing a filing date sort last in
// either direction.
func lessTime(a, b sql.NullTime, desc bool) bool {
	if a.Valid != b.Valid {
		return a.Valid
	}
	if !a.Valid {
		return false
	}
	if desc {
		return a.Time.After(b.Time)
	}
	return a.Time.Before(b.Time)
}

// lessRemaining orders by the countdown; NotAvailable sorts after every
// numeric value regardless of direction, never interleaved.
func lessRemaining(a, b sql.NullInt64, desc bool) bool {
	if a.Valid != b.Valid {
		return a.Valid
	}
	if !a.Valid {
		return false
	}
	if desc {
		return a.Int64 > b.Int64
	}
	return a.Int64 < b.Int64
}
