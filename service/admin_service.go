package service

import (
	"fmt"

	"govmadad/config"
	"govmadad/models"
	"govmadad/utils"
)

// AdminService handles the administrative actor's operations: login and the
// status/response mutations. These are the only paths that write status or
// response; the reconciler never does.
type AdminService struct {
	store ComplaintStore
	cfg   config.AdminConfig
}

// NewAdminService creates a new admin service
func NewAdminService(store ComplaintStore, cfg config.AdminConfig) *AdminService {
	return &AdminService{store: store, cfg: cfg}
}

// Login verifies the configured admin credentials and issues a session token.
func (s *AdminService) Login(username, password string) (string, error) {
	if username != s.cfg.Username {
		return "", fmt.Errorf("invalid credentials")
	}
	if err := utils.CheckAdminPassword(password, s.cfg.PasswordHash); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}
	token, err := utils.GenerateAdminJWT(username, []byte(s.cfg.JWTSecret), s.cfg.TokenExpiryHours)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// UpdateStatus moves a complaint to a new workflow status. Transitions are
// forward-only; anything else is rejected before touching the store.
func (s *AdminService) UpdateStatus(id string, status models.ComplaintStatus) error {
	if !models.IsValidStatus(status) {
		return fmt.Errorf("unknown status %q", status)
	}
	current, err := s.store.GetByID(id)
	if err != nil {
		return err
	}
	if !models.CanTransition(current.Status, status) {
		return fmt.Errorf("illegal status transition %s -> %s", current.Status, status)
	}
	return s.store.UpdateStatus(id, status)
}

// UpdateResponse sets the administrative response text on a complaint.
func (s *AdminService) UpdateResponse(id string, response string) error {
	if response == "" {
		return fmt.Errorf("response text is required")
	}
	return s.store.UpdateResponse(id, response)
}
