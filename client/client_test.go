package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClassifierClientClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/complaint" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["complaint"] == "" {
			t.Error("missing complaint text in request")
		}
		json.NewEncoder(w).Encode(map[string]string{
			"department":  `Your complaint is registered with "Traffic Department" and will be attended to shortly.`,
			"urgent":      "YES",
			"Category":    "Public Transport",
			"Subcategory": "Overcrowded Buses",
		})
	}))
	defer srv.Close()

	c := NewClassifierClient(srv.URL)
	got, err := c.Classify(context.Background(), "bus route 12 is dangerously overcrowded")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if !got.IsUrgent() {
		t.Error("expected urgent")
	}
	if got.Category != "Public Transport" || got.Subcategory != "Overcrowded Buses" {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestClassifierClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Complaint text is required"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClassifierClient(srv.URL)
	if _, err := c.Classify(context.Background(), ""); err == nil {
		t.Fatal("expected error on 400 response")
	}
}

func TestIsUrgent(t *testing.T) {
	tests := []struct {
		verdict string
		want    bool
	}{
		{"YES", true},
		{"Yes", true},
		{"yes", true},
		{"NO", false},
		{"No", false},
		{"", false},
		{"maybe", false},
	}
	for _, tt := range tests {
		if got := (ClassificationResult{Urgent: tt.verdict}).IsUrgent(); got != tt.want {
			t.Errorf("IsUrgent(%q) = %v, want %v", tt.verdict, got, tt.want)
		}
	}
}

func TestPredictorClientPredict(t *testing.T) {
	t.Run("string payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/predict" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]string{"predicted_resolution_time": "33 days"})
		}))
		defer srv.Close()

		c := NewPredictorClient(srv.URL)
		got, err := c.Predict(context.Background(), "Water Supply", "Pipeline Leakage", "226001")
		if err != nil {
			t.Fatalf("Predict failed: %v", err)
		}
		if got != "33 days" {
			t.Errorf("got %q, want %q", got, "33 days")
		}
	})

	t.Run("numeric payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]int{"predicted_resolution_time": 6})
		}))
		defer srv.Close()

		c := NewPredictorClient(srv.URL)
		got, err := c.Predict(context.Background(), "Crime", "Theft", "226001")
		if err != nil {
			t.Fatalf("Predict failed: %v", err)
		}
		if got != "6" {
			t.Errorf("got %q, want %q", got, "6")
		}
	})

	t.Run("negative numeric payload keeps the sign", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]int{"predicted_resolution_time": -5})
		}))
		defer srv.Close()

		c := NewPredictorClient(srv.URL)
		got, err := c.Predict(context.Background(), "Crime", "Theft", "226001")
		if err != nil {
			t.Fatalf("Predict failed: %v", err)
		}
		if got != "-5" {
			t.Errorf("got %q, want %q", got, "-5")
		}
	})

	t.Run("missing field", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{})
		}))
		defer srv.Close()

		c := NewPredictorClient(srv.URL)
		if _, err := c.Predict(context.Background(), "Crime", "Theft", "226001"); err == nil {
			t.Fatal("expected error on missing predicted_resolution_time")
		}
	})
}
