package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"govmadad/client"
	"govmadad/models"
	"govmadad/sla"
	"govmadad/taxonomy"
)

// ErrUpstream marks submission failures caused by the external
// classification or prediction service, as opposed to the local store.
var ErrUpstream = errors.New("upstream service failure")

// Classifier is the external classification service consumed at submission.
type Classifier interface {
	Classify(ctx context.Context, complaint string) (*client.ClassificationResult, error)
}

// Predictor is the external resolution-time prediction service consumed at
// submission.
type Predictor interface {
	Predict(ctx context.Context, category, subcategory, pincode string) (string, error)
}

// ComplaintService handles the submission pipeline: classify, coerce into
// the fixed taxonomy, predict a resolution duration, persist.
type ComplaintService struct {
	store      ComplaintStore
	classifier Classifier
	predictor  Predictor
}

// NewComplaintService creates a new complaint service
func NewComplaintService(store ComplaintStore, classifier Classifier, predictor Predictor) *ComplaintService {
	return &ComplaintService{
		store:      store,
		classifier: classifier,
		predictor:  predictor,
	}
}

// Submit runs the full submission pipeline for one complaint.
//
// Classification and prediction both have to succeed: if either upstream
// call fails, the submission fails and nothing is persisted. Unmatched
// classifier output is not a failure: it degrades to the Unknown sentinels
// and the record persists as-is. The record is written in full, including
// predicted_days, so a concurrent reconciler never sees a half-written row.
func (s *ComplaintService) Submit(ctx context.Context, req *models.SubmitComplaintRequest) (*models.SubmitComplaintResponse, error) {
	text := req.Complaint
	if req.ImageCaption != "" {
		text = text + " " + req.ImageCaption
	}

	classification, err := s.classifier.Classify(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: classification failed: %w", ErrUpstream, err)
	}

	match := taxonomy.Match(
		classification.Department,
		classification.Category,
		classification.Subcategory,
		req.Category,
		req.Subcategory,
	)
	if match.Department == models.DeptUnknown {
		log.Printf("[SUBMIT] No department keyword matched; storing as %q", models.DeptUnknown)
	}

	predictedRaw, err := s.predictor.Predict(ctx, match.Category, match.Subcategory, req.Pincode)
	if err != nil {
		return nil, fmt.Errorf("%w: prediction failed: %w", ErrUpstream, err)
	}

	now := time.Now().UTC()
	filedAt := sql.NullTime{Time: now, Valid: true}
	// The mod-10 bounding rule runs here, once, at submission. Reconciliation
	// never re-normalizes.
	predictedDays := sla.Normalize(sla.ParseDuration(predictedRaw))

	complaint := &models.Complaint{
		ComplaintID:   s.store.GenerateComplaintID(),
		UID:           req.UID,
		Text:          text,
		Department:    match.Department,
		Category:      match.Category,
		Subcategory:   match.Subcategory,
		Urgent:        classification.IsUrgent(),
		Status:        models.StatusPending,
		Response:      classification.Department,
		Area:          req.Area,
		Pincode:       req.Pincode,
		FiledAt:       filedAt,
		PredictedRaw:  sql.NullString{String: predictedRaw, Valid: predictedRaw != ""},
		PredictedDays: predictedDays,
		RemainingDays: sla.Remaining(filedAt, predictedDays, now),
	}
	if req.ImageCaption != "" {
		complaint.ImageCaption = sql.NullString{String: req.ImageCaption, Valid: true}
	}

	if err := s.store.Create(complaint); err != nil {
		return nil, fmt.Errorf("failed to persist complaint: %w", err)
	}

	log.Printf("[SUBMIT] Complaint %s filed (#%s): department=%s category=%s urgent=%v",
		complaint.ID, complaint.ComplaintID, complaint.Department, complaint.Category, complaint.Urgent)

	resp := &models.SubmitComplaintResponse{
		ID:          complaint.ID,
		ComplaintID: complaint.ComplaintID,
		Department:  complaint.Department,
		Category:    complaint.Category,
		Subcategory: complaint.Subcategory,
		Urgent:      complaint.Urgent,
		Response:    complaint.Response,
	}
	if predictedDays.Valid {
		d := predictedDays.Int64
		resp.PredictedDays = &d
	}
	return resp, nil
}

// GetComplaint returns one complaint by its store ID.
func (s *ComplaintService) GetComplaint(id string) (*models.Complaint, error) {
	return s.store.GetByID(id)
}
