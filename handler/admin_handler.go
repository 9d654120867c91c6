package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"govmadad/models"
	"govmadad/service"
	"govmadad/view"
)

// AdminHandler handles the administrative endpoints: login, the dashboard
// listing, and the status/response mutations.
type AdminHandler struct {
	adminService *service.AdminService
	reconciler   *service.ReconcilerService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *service.AdminService, reconciler *service.ReconcilerService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		reconciler:   reconciler,
	}
}

// Login handles POST /api/v1/admin/login.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	token, err := h.adminService.Login(req.Username, req.Password)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Invalid credentials")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"token": token})
}

// ListComplaints handles GET /api/v1/admin/complaints.
//
// Query parameters: department (substring, "All" or empty matches anything),
// urgent (YES/NO or true/false), sortBy (date|remaining_days), order
// (asc|desc). The dashboard load is a read cycle, so the handler reconciles
// before filtering and sorting.
func (h *AdminHandler) ListComplaints(w http.ResponseWriter, r *http.Request) {
	results, err := h.reconciler.ReconcileAll(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Store error", err.Error())
		return
	}

	q := r.URL.Query()
	filter := view.Filter{Department: q.Get("department")}
	if urgent := q.Get("urgent"); urgent != "" && !strings.EqualFold(urgent, "All") {
		v := strings.EqualFold(urgent, "YES") || strings.EqualFold(urgent, "true")
		filter.Urgent = &v
	}
	sorting := view.Sort{By: q.Get("sortBy"), Order: q.Get("order")}

	records := view.Apply(service.Records(results), filter, sorting)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"complaints": records,
		"count":      len(records),
	})
}

// UpdateStatus handles PATCH /api/v1/admin/complaints/{id}/status.
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Status models.ComplaintStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	if err := h.adminService.UpdateStatus(id, req.Status); err != nil {
		respondWithError(w, http.StatusConflict, "Status update rejected", err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(req.Status)})
}

// UpdateResponse handles PATCH /api/v1/admin/complaints/{id}/response.
func (h *AdminHandler) UpdateResponse(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	if err := h.adminService.UpdateResponse(id, req.Response); err != nil {
		respondWithError(w, http.StatusBadRequest, "Response update rejected", err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"id": id})
}
