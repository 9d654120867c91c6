package service

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	"govmadad/models"
	"govmadad/sla"
)

// ReconcilerService recomputes the derived remaining-days countdown for
// complaint records and writes it back only when it actually changed.
//
// Each record is independent: passes may run concurrently from many readers,
// in any order, and may be abandoned mid-way without corrupting state. Two
// concurrent passes computing from the same inputs converge to the same
// value, so last-writer-wins needs no merge logic.
type ReconcilerService struct {
	store ComplaintStore
}

// NewReconcilerService creates a new reconciler service
func NewReconcilerService(store ComplaintStore) *ReconcilerService {
	return &ReconcilerService{store: store}
}

// ReconcileResult reports the outcome for one record. Record always carries
// the locally recomputed derived values, even when the write-back failed;
// the next pass retries the write.
type ReconcileResult struct {
	Record  models.Complaint
	Changed bool
	Err     error
}

// ReconcileAll runs one reconciliation pass over every stored complaint.
func (s *ReconcilerService) ReconcileAll(ctx context.Context) ([]ReconcileResult, error) {
	records, err := s.store.List()
	if err != nil {
		return nil, err
	}
	return s.Reconcile(ctx, records, time.Now().UTC()), nil
}

// ReconcileByUID runs one reconciliation pass over a citizen's complaints.
func (s *ReconcilerService) ReconcileByUID(ctx context.Context, uid string) ([]ReconcileResult, error) {
	records, err := s.store.ListByUID(uid)
	if err != nil {
		return nil, err
	}
	return s.Reconcile(ctx, records, time.Now().UTC()), nil
}

// Reconcile recomputes remaining_days for each record at the given instant
// and issues a field-scoped write-back for the ones whose value changed.
//
// Status, response and classification fields are never touched. A failed
// write-back is logged and skipped; it never aborts the batch. Cancelling
// ctx stops the pass early; records processed so far keep their updates.
func (s *ReconcilerService) Reconcile(ctx context.Context, records []models.Complaint, now time.Time) []ReconcileResult {
	results := make([]ReconcileResult, 0, len(records))
	for _, rec := range records {
		if ctx.Err() != nil {
			log.Printf("[RECONCILE] Pass abandoned after %d/%d records: %v", len(results), len(records), ctx.Err())
			break
		}
		results = append(results, s.reconcileOne(rec, now))
	}
	return results
}

func (s *ReconcilerService) reconcileOne(rec models.Complaint, now time.Time) ReconcileResult {
	predicted := rec.PredictedDays

	// A duration that never parsed at submission may have become parseable
	// (e.g. the raw predictor output was stored before the parser understood
	// its shape). First successful parse gets the one-time normalization.
	var predictedUpdate *sql.NullInt64
	if !predicted.Valid && rec.PredictedRaw.Valid && strings.TrimSpace(rec.PredictedRaw.String) != "" {
		if parsed := sla.Normalize(sla.ParseDuration(rec.PredictedRaw.String)); parsed.Valid {
			predicted = parsed
			predictedUpdate = &parsed
		}
	}

	remaining := sla.Remaining(rec.FiledAt, predicted, now)
	changed := predictedUpdate != nil || !nullIntEqual(remaining, rec.RemainingDays)

	// The in-memory view reflects the recomputed values for the rest of the
	// pass regardless of whether the write-back succeeds.
	rec.PredictedDays = predicted
	rec.RemainingDays = remaining

	if !changed {
		return ReconcileResult{Record: rec, Changed: false}
	}

	fields := models.DerivedFields{RemainingDays: remaining, PredictedDays: predictedUpdate}
	if err := s.store.UpdateDerivedFields(rec.ID, fields); err != nil {
		log.Printf("[RECONCILE] Write-back failed for %s (retried next pass): %v", rec.ID, err)
		return ReconcileResult{Record: rec, Changed: true, Err: err}
	}
	return ReconcileResult{Record: rec, Changed: true}
}

// Records extracts the reconciled records from a pass result, in order.
func Records(results []ReconcileResult) []models.Complaint {
	out := make([]models.Complaint, len(results))
	for i, r := range results {
		out[i] = r.Record
	}
	return out
}

// nullIntEqual compares two nullable values: two absents are equal, an
// absent never equals a number.
func nullIntEqual(a, b sql.NullInt64) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Int64 == b.Int64
}
