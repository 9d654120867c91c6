package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"govmadad/config"
	"govmadad/handler"
	"govmadad/middleware"
	"govmadad/service"
)

// SetupRoutes configures all API routes
func SetupRoutes(
	complaintService *service.ComplaintService,
	reconciler *service.ReconcilerService,
	adminService *service.AdminService,
	adminCfg config.AdminConfig,
) *mux.Router {
	router := mux.NewRouter()

	complaintHandler := handler.NewComplaintHandler(complaintService, reconciler)
	adminHandler := handler.NewAdminHandler(adminService, reconciler)
	adminAuth := middleware.NewAdminAuthMiddleware(adminCfg.JWTSecret)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 routes
	apiV1 := router.PathPrefix("/api/v1").Subrouter()

	// Citizen complaint routes
	complaints := apiV1.PathPrefix("/complaints").Subrouter()
	complaints.HandleFunc("", complaintHandler.SubmitComplaint).Methods("POST")
	complaints.HandleFunc("", complaintHandler.GetUserComplaints).Methods("GET")
	complaints.HandleFunc("/{id}", complaintHandler.GetComplaint).Methods("GET")

	// Admin routes: login is open, everything else requires an admin token.
	admin := apiV1.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/login", adminHandler.Login).Methods("POST")
	admin.Handle("/complaints", adminAuth.RequireAdmin(http.HandlerFunc(adminHandler.ListComplaints))).Methods("GET")
	admin.Handle("/complaints/{id}/status", adminAuth.RequireAdmin(http.HandlerFunc(adminHandler.UpdateStatus))).Methods("PATCH")
	admin.Handle("/complaints/{id}/response", adminAuth.RequireAdmin(http.HandlerFunc(adminHandler.UpdateResponse))).Methods("PATCH")

	return router
}
