package view

import (
	"database/sql"
	"testing"
	"time"

	"govmadad/models"
)

func day(d int) sql.NullTime {
	return sql.NullTime{Time: time.Date(2026, 5, d, 10, 0, 0, 0, time.UTC), Valid: true}
}

func rem(n int64) sql.NullInt64 { return sql.NullInt64{Int64: n, Valid: true} }

func boolPtr(b bool) *bool { return &b }

func sample() []models.Complaint {
	return []models.Complaint{
		{ID: "a", Department: models.DeptPolice, Urgent: true, FiledAt: day(3), RemainingDays: rem(5)},
		{ID: "b", Department: models.DeptTraffic, Urgent: false, FiledAt: day(1), RemainingDays: rem(2)},
		{ID: "c", Department: "Public Works Department (PWD)", Urgent: true, FiledAt: day(2), RemainingDays: sql.NullInt64{}},
		{ID: "d", Department: models.DeptPolice, Urgent: false, FiledAt: day(4), RemainingDays: rem(0)},
	}
}

func ids(records []models.Complaint) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func assertIDs(t *testing.T, got []models.Complaint, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got %v, want %v", g, want)
		}
	}
}

func TestApplyFilters(t *testing.T) {
	t.Run("department equality form", func(t *testing.T) {
		got := Apply(sample(), Filter{Department: "Police"}, Sort{})
		assertIDs(t, got, "a", "d")
	})

	t.Run("department substring tolerates legacy full names", func(t *testing.T) {
		got := Apply(sample(), Filter{Department: "Public Works"}, Sort{})
		assertIDs(t, got, "c")
	})

	t.Run("All matches everything", func(t *testing.T) {
		got := Apply(sample(), Filter{Department: "All"}, Sort{})
		assertIDs(t, got, "a", "b", "c", "d")
	})

	t.Run("urgent filter", func(t *testing.T) {
		got := Apply(sample(), Filter{Urgent: boolPtr(true)}, Sort{})
		assertIDs(t, got, "a", "c")
	})

	t.Run("filters are conjunctive", func(t *testing.T) {
		got := Apply(sample(), Filter{Department: "Police", Urgent: boolPtr(false)}, Sort{})
		assertIDs(t, got, "d")
	})
}

func TestApplySort(t *testing.T) {
	t.Run("date asc", func(t *testing.T) {
		got := Apply(sample(), Filter{}, Sort{By: SortByDate, Order: OrderAsc})
		assertIDs(t, got, "b", "c", "a", "d")
	})

	t.Run("date desc", func(t *testing.T) {
		got := Apply(sample(), Filter{}, Sort{By: SortByDate, Order: OrderDesc})
		assertIDs(t, got, "d", "a", "c", "b")
	})

	t.Run("remaining asc puts NotAvailable last", func(t *testing.T) {
		got := Apply(sample(), Filter{}, Sort{By: SortByRemainingDays, Order: OrderAsc})
		assertIDs(t, got, "d", "b", "a", "c")
	})

	t.Run("remaining desc still puts NotAvailable last", func(t *testing.T) {
		got := Apply(sample(), Filter{}, Sort{By: SortByRemainingDays, Order: OrderDesc})
		assertIDs(t, got, "a", "b", "d", "c")
	})

	t.Run("no sort keeps input order", func(t *testing.T) {
		got := Apply(sample(), Filter{}, Sort{})
		assertIDs(t, got, "a", "b", "c", "d")
	})
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := sample()
	_ = Apply(in, Filter{Department: "Traffic"}, Sort{By: SortByRemainingDays, Order: OrderDesc})
	assertIDs(t, in, "a", "b", "c", "d")
}

func TestApplySortIsStable(t *testing.T) {
	in := []models.Complaint{
		{ID: "x", FiledAt: day(1), RemainingDays: rem(2)},
		{ID: "y", FiledAt: day(2), RemainingDays: rem(2)},
		{ID: "z", FiledAt: day(3), RemainingDays: rem(2)},
	}
	got := Apply(in, Filter{}, Sort{By: SortByRemainingDays, Order: OrderAsc})
	assertIDs(t, got, "x", "y", "z")
}
