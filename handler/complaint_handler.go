package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"govmadad/models"
	"govmadad/service"
	"govmadad/view"
)

// ComplaintHandler handles the citizen-facing complaint endpoints.
type ComplaintHandler struct {
	complaintService *service.ComplaintService
	reconciler       *service.ReconcilerService
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(complaintService *service.ComplaintService, reconciler *service.ReconcilerService) *ComplaintHandler {
	return &ComplaintHandler{
		complaintService: complaintService,
		reconciler:       reconciler,
	}
}

// SubmitComplaint handles POST /api/v1/complaints.
// Runs the full submission pipeline; an upstream classification or
// prediction failure fails the whole submission with 502, a store
// failure with 500.
func (h *ComplaintHandler) SubmitComplaint(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}
	if req.Complaint == "" {
		respondWithError(w, http.StatusBadRequest, "Validation error", "Complaint text is required")
		return
	}
	if req.UID == "" {
		respondWithError(w, http.StatusBadRequest, "Validation error", "UID is required")
		return
	}

	resp, err := h.complaintService.Submit(r.Context(), &req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrUpstream) {
			status = http.StatusBadGateway
		}
		respondWithError(w, status, "Submission failed", err.Error())
		return
	}
	respondWithJSON(w, http.StatusCreated, resp)
}

// GetUserComplaints handles GET /api/v1/complaints?uid=...
// This is a read cycle: the handler reconciles the citizen's records before
// returning them, so the countdown the citizen sees is always current.
func (h *ComplaintHandler) GetUserComplaints(w http.ResponseWriter, r *http.Request) {
	uid := r.URL.Query().Get("uid")
	if uid == "" {
		respondWithError(w, http.StatusBadRequest, "Validation error", "uid query parameter is required")
		return
	}

	results, err := h.reconciler.ReconcileByUID(r.Context(), uid)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Store error", err.Error())
		return
	}

	records := service.Records(results)
	records = view.Apply(records, view.Filter{}, view.Sort{By: view.SortByDate, Order: view.OrderDesc})
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"complaints": records,
		"count":      len(records),
	})
}

// GetComplaint handles GET /api/v1/complaints/{id}.
func (h *ComplaintHandler) GetComplaint(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	complaint, err := h.complaintService.GetComplaint(id)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Not found", err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, complaint)
}
