package repository

import (
	"database/sql"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"govmadad/models"
)

// ComplaintRepository handles database operations for complaints.
//
// Derived-field writes go through UpdateDerivedFields, which updates only the
// named columns. Status and response have their own field-scoped updates.
// There is no full-record overwrite: a reconciliation pass can never clobber
// an administrative edit.
type ComplaintRepository struct {
	db *sql.DB
}

// NewComplaintRepository creates a new complaint repository
func NewComplaintRepository(db *sql.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

// GenerateComplaintID generates the human-facing 8-digit complaint number.
// It is advisory only: not guaranteed unique and never used as a key. The
// store-assigned UUID in Complaint.ID is the real identifier.
func (r *ComplaintRepository) GenerateComplaintID() string {
	return fmt.Sprintf("%08d", rand.Intn(100000000))
}

const complaintColumns = `
	id, complaint_id, uid, text, image_caption, department, category, subcategory,
	urgent, status, response, area, pincode, filed_at, predicted_raw,
	predicted_days, remaining_days, created_at, updated_at`

// Create inserts a new complaint and assigns its opaque store ID.
// The record is written in full, including predicted_days, before it becomes
// visible to any reconciler.
func (r *ComplaintRepository) Create(complaint *models.Complaint) error {
	if complaint.ID == "" {
		complaint.ID = uuid.New().String()
	}
	query := `
		INSERT INTO complaints (
			id, complaint_id, uid, text, image_caption, department, category, subcategory,
			urgent, status, response, area, pincode, filed_at, predicted_raw,
			predicted_days, remaining_days
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(
		query,
		complaint.ID,
		complaint.ComplaintID,
		complaint.UID,
		complaint.Text,
		complaint.ImageCaption,
		complaint.Department,
		complaint.Category,
		complaint.Subcategory,
		complaint.Urgent,
		complaint.Status,
		complaint.Response,
		complaint.Area,
		complaint.Pincode,
		complaint.FiledAt,
		complaint.PredictedRaw,
		complaint.PredictedDays,
		complaint.RemainingDays,
	)
	if err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}
	return nil
}

// List retrieves all complaints, oldest first.
func (r *ComplaintRepository) List() ([]models.Complaint, error) {
	query := `SELECT` + complaintColumns + ` FROM complaints ORDER BY created_at ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	defer rows.Close()
	return scanComplaints(rows)
}

// ListByUID retrieves all complaints filed under the given citizen identifier.
func (r *ComplaintRepository) ListByUID(uid string) ([]models.Complaint, error) {
	query := `SELECT` + complaintColumns + ` FROM complaints WHERE uid = ? ORDER BY created_at ASC`
	rows, err := r.db.Query(query, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints for uid %s: %w", uid, err)
	}
	defer rows.Close()
	return scanComplaints(rows)
}

// GetByID retrieves one complaint by its store ID.
func (r *ComplaintRepository) GetByID(id string) (*models.Complaint, error) {
	query := `SELECT` + complaintColumns + ` FROM complaints WHERE id = ?`
	row := r.db.QueryRow(query, id)
	c, err := scanComplaint(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("complaint %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint %s: %w", id, err)
	}
	return c, nil
}

// UpdateDerivedFields writes the reconciler-owned fields and nothing else.
// remaining_days is always written; predicted_days only when the reconciler
// resolved a previously unparsed duration.
func (r *ComplaintRepository) UpdateDerivedFields(id string, fields models.DerivedFields) error {
	sets := []string{"remaining_days = ?", "updated_at = CURRENT_TIMESTAMP"}
	args := []interface{}{fields.RemainingDays}
	if fields.PredictedDays != nil {
		sets = append(sets, "predicted_days = ?")
		args = append(args, *fields.PredictedDays)
	}
	args = append(args, id)

	query := "UPDATE complaints SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update derived fields for %s: %w", id, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("complaint %s not found", id)
	}
	return nil
}

// UpdateStatus sets the workflow status. Field-scoped: touches nothing else.
// The forward-only transition check belongs to the service layer.
func (r *ComplaintRepository) UpdateStatus(id string, status models.ComplaintStatus) error {
	result, err := r.db.Exec(
		`UPDATE complaints SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update status for %s: %w", id, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("complaint %s not found", id)
	}
	return nil
}

// UpdateResponse sets the administrative response text. Field-scoped.
func (r *ComplaintRepository) UpdateResponse(id string, response string) error {
	result, err := r.db.Exec(
		`UPDATE complaints SET response = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		response, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update response for %s: %w", id, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("complaint %s not found", id)
	}
	return nil
}

func scanComplaints(rows *sql.Rows) ([]models.Complaint, error) {
	var complaints []models.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan complaint: %w", err)
		}
		complaints = append(complaints, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate complaints: %w", err)
	}
	return complaints, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanComplaint(row rowScanner) (*models.Complaint, error) {
	var c models.Complaint
	err := row.Scan(
		&c.ID,
		&c.ComplaintID,
		&c.UID,
		&c.Text,
		&c.ImageCaption,
		&c.Department,
		&c.Category,
		&c.Subcategory,
		&c.Urgent,
		&c.Status,
		&c.Response,
		&c.Area,
		&c.Pincode,
		&c.FiledAt,
		&c.PredictedRaw,
		&c.PredictedDays,
		&c.RemainingDays,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
