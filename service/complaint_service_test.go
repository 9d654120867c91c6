package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"govmadad/client"
	"govmadad/models"
)

type fakeClassifier struct {
	result *client.ClassificationResult
	err    error
}

func (f *fakeClassifier) Classify(_ context.Context, _ string) (*client.ClassificationResult, error) {
	return f.result, f.err
}

type fakePredictor struct {
	raw string
	err error
}

func (f *fakePredictor) Predict(_ context.Context, _, _, _ string) (string, error) {
	return f.raw, f.err
}

func TestSubmitHappyPath(t *testing.T) {
	store := newFakeStore()
	svc := NewComplaintService(store,
		&fakeClassifier{result: &client.ClassificationResult{
			Department:  `Your complaint is registered with "Public Works Department (PWD)" and will be attended to shortly.`,
			Urgent:      "YES",
			Category:    "Water Supply",
			Subcategory: "Pipeline Leakage",
		}},
		&fakePredictor{raw: "33 days"},
	)

	resp, err := svc.Submit(context.Background(), &models.SubmitComplaintRequest{
		Complaint: "Pipeline leaking near the school gate",
		Area:      "Gomti Nagar",
		Pincode:   "226010",
		UID:       "citizen-1",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if resp.Department != models.DeptPublicWorks {
		t.Errorf("department = %q, want %q", resp.Department, models.DeptPublicWorks)
	}
	if resp.Category != "Water Supply" || resp.Subcategory != "Pipeline Leakage" {
		t.Errorf("taxonomy = %q/%q", resp.Category, resp.Subcategory)
	}
	if !resp.Urgent {
		t.Error("expected urgent")
	}
	if len(resp.ComplaintID) != 8 {
		t.Errorf("complaint id %q is not 8 digits", resp.ComplaintID)
	}
	// 33 normalized to 3 at submission.
	if resp.PredictedDays == nil || *resp.PredictedDays != 3 {
		t.Errorf("predicted days = %v, want 3", resp.PredictedDays)
	}

	stored, err := store.GetByID(resp.ID)
	if err != nil {
		t.Fatalf("record not persisted: %v", err)
	}
	if stored.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", stored.Status)
	}
	if !stored.FiledAt.Valid {
		t.Error("filed_at not set")
	}
	if !stored.RemainingDays.Valid || stored.RemainingDays.Int64 != 3 {
		t.Errorf("initial remaining = %+v, want 3", stored.RemainingDays)
	}
	if !stored.PredictedRaw.Valid || stored.PredictedRaw.String != "33 days" {
		t.Errorf("predicted raw = %+v, want the verbatim predictor output", stored.PredictedRaw)
	}
}

func TestSubmitUnknownClassificationStillPersists(t *testing.T) {
	store := newFakeStore()
	svc := NewComplaintService(store,
		&fakeClassifier{result: &client.ClassificationResult{
			Department: "we could not tell which body handles this",
			Urgent:     "NO",
		}},
		&fakePredictor{raw: "5 days"},
	)

	resp, err := svc.Submit(context.Background(), &models.SubmitComplaintRequest{
		Complaint: "something vague", UID: "citizen-2",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if resp.Department != models.DeptUnknown {
		t.Errorf("department = %q, want %q", resp.Department, models.DeptUnknown)
	}
	if resp.Category != models.UnknownCategory || resp.Subcategory != models.UnknownSubcategory {
		t.Errorf("taxonomy = %q/%q, want Unknown sentinels", resp.Category, resp.Subcategory)
	}
	if _, err := store.GetByID(resp.ID); err != nil {
		t.Errorf("unknown-classified record must still persist: %v", err)
	}
}

func TestSubmitUserSelectionFallback(t *testing.T) {
	store := newFakeStore()
	svc := NewComplaintService(store,
		&fakeClassifier{result: &client.ClassificationResult{
			Department: "registered with Police and forwarded",
			Urgent:     "NO",
			// Classifier offered no category guesses.
		}},
		&fakePredictor{raw: "4 days"},
	)

	resp, err := svc.Submit(context.Background(), &models.SubmitComplaintRequest{
		Complaint:   "my bike was stolen",
		Category:    "Crime",
		Subcategory: "Theft",
		UID:         "citizen-3",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if resp.Category != "Crime" || resp.Subcategory != "Theft" {
		t.Errorf("taxonomy = %q/%q, want user selection Crime/Theft", resp.Category, resp.Subcategory)
	}
}

func TestSubmitAppendsImageCaption(t *testing.T) {
	store := newFakeStore()
	svc := NewComplaintService(store,
		&fakeClassifier{result: &client.ClassificationResult{
			Department: "registered with Traffic Department",
			Urgent:     "NO",
		}},
		&fakePredictor{raw: "2 days"},
	)

	resp, err := svc.Submit(context.Background(), &models.SubmitComplaintRequest{
		Complaint:    "signal broken at crossing",
		ImageCaption: "a traffic light lying on the road",
		UID:          "citizen-4",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	stored, _ := store.GetByID(resp.ID)
	want := "signal broken at crossing a traffic light lying on the road"
	if stored.Text != want {
		t.Errorf("text = %q, want caption appended", stored.Text)
	}
	if !stored.ImageCaption.Valid {
		t.Error("image caption not stored")
	}
}

func TestSubmitNegativePredictionClampsToAbsent(t *testing.T) {
	// A predictor replying with a negative number (flattened to "-5" on the
	// wire) must not become a 5-day countdown.
	store := newFakeStore()
	svc := NewComplaintService(store,
		&fakeClassifier{result: &client.ClassificationResult{
			Department: "registered with Police", Urgent: "NO",
		}},
		&fakePredictor{raw: "-5"},
	)

	resp, err := svc.Submit(context.Background(), &models.SubmitComplaintRequest{
		Complaint: "streetlight out", UID: "citizen-5",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if resp.PredictedDays != nil {
		t.Errorf("predicted days = %d, want absent", *resp.PredictedDays)
	}

	stored, err := store.GetByID(resp.ID)
	if err != nil {
		t.Fatalf("record not persisted: %v", err)
	}
	if stored.PredictedDays.Valid {
		t.Errorf("stored predicted = %+v, want absent", stored.PredictedDays)
	}
	if stored.RemainingDays.Valid {
		t.Errorf("stored remaining = %+v, want NotAvailable", stored.RemainingDays)
	}
	if !stored.PredictedRaw.Valid || stored.PredictedRaw.String != "-5" {
		t.Errorf("predicted raw = %+v, want the verbatim predictor output", stored.PredictedRaw)
	}
}

func TestSubmitUpstreamFailures(t *testing.T) {
	t.Run("classifier failure aborts", func(t *testing.T) {
		store := newFakeStore()
		svc := NewComplaintService(store,
			&fakeClassifier{err: fmt.Errorf("service down")},
			&fakePredictor{raw: "3 days"},
		)
		_, err := svc.Submit(context.Background(), &models.SubmitComplaintRequest{Complaint: "x"})
		if err == nil {
			t.Fatal("expected submission failure")
		}
		if !errors.Is(err, ErrUpstream) {
			t.Errorf("error %v should wrap ErrUpstream", err)
		}
		if records, _ := store.List(); len(records) != 0 {
			t.Error("nothing should persist on classifier failure")
		}
	})

	t.Run("predictor failure aborts", func(t *testing.T) {
		store := newFakeStore()
		svc := NewComplaintService(store,
			&fakeClassifier{result: &client.ClassificationResult{Department: "registered with Police", Urgent: "NO"}},
			&fakePredictor{err: fmt.Errorf("service down")},
		)
		_, err := svc.Submit(context.Background(), &models.SubmitComplaintRequest{Complaint: "x"})
		if err == nil {
			t.Fatal("expected submission failure")
		}
		if !errors.Is(err, ErrUpstream) {
			t.Errorf("error %v should wrap ErrUpstream", err)
		}
		if records, _ := store.List(); len(records) != 0 {
			t.Error("nothing should persist on predictor failure")
		}
	})

	t.Run("store failure is not an upstream failure", func(t *testing.T) {
		store := newFakeStore()
		store.failCreate = true
		svc := NewComplaintService(store,
			&fakeClassifier{result: &client.ClassificationResult{Department: "registered with Police", Urgent: "NO"}},
			&fakePredictor{raw: "3 days"},
		)
		_, err := svc.Submit(context.Background(), &models.SubmitComplaintRequest{Complaint: "x"})
		if err == nil {
			t.Fatal("expected submission failure")
		}
		if errors.Is(err, ErrUpstream) {
			t.Errorf("store error %v must not wrap ErrUpstream", err)
		}
	})
}
