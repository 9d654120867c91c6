package service

import "govmadad/models"

// ComplaintStore is the store adapter surface the services consume. Backed by
// repository.ComplaintRepository in production and by an in-memory fake in
// tests. Update methods are field-scoped partial writes; nothing here
// overwrites a whole record.
type ComplaintStore interface {
	GenerateComplaintID() string
	Create(complaint *models.Complaint) error
	List() ([]models.Complaint, error)
	ListByUID(uid string) ([]models.Complaint, error)
	GetByID(id string) (*models.Complaint, error)
	UpdateDerivedFields(id string, fields models.DerivedFields) error
	UpdateStatus(id string, status models.ComplaintStatus) error
	UpdateResponse(id string, response string) error
}
