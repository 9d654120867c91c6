package models

import (
	"database/sql"
	"time"
)

// ComplaintStatus represents the possible statuses of a complaint.
// The workflow is forward-only: pending -> forwarded -> in_progress -> resolved.
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "pending"
	StatusForwarded  ComplaintStatus = "forwarded"
	StatusInProgress ComplaintStatus = "in_progress"
	StatusResolved   ComplaintStatus = "resolved"
)

// statusRank orders statuses for the forward-only transition check.
var statusRank = map[ComplaintStatus]int{
	StatusPending:    0,
	StatusForwarded:  1,
	StatusInProgress: 2,
	StatusResolved:   3,
}

// IsValidStatus reports whether s is one of the workflow statuses.
func IsValidStatus(s ComplaintStatus) bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether moving from 'from' to 'to' is a legal
// forward-only status transition. Re-setting the same status is not a transition.
func CanTransition(from, to ComplaintStatus) bool {
	fr, okF := statusRank[from]
	tr, okT := statusRank[to]
	return okF && okT && tr > fr
}

// Department is a canonical department from the fixed taxonomy, or Unknown.
type Department string

const (
	DeptHealthcare  Department = "Healthcare"
	DeptPolice      Department = "Police"
	DeptPublicWorks Department = "PublicWorks"
	DeptFoodQuality Department = "FoodQuality"
	DeptCleaning    Department = "Cleaning"
	DeptTraffic     Department = "Traffic"
	DeptUnknown     Department = "Unknown Department"
)

// Sentinels for unmatched classification text. Unmatched is a valid terminal
// classification, persisted and displayed as-is.
const (
	UnknownCategory    = "Unknown Category"
	UnknownSubcategory = "Unknown Subcategory"
)

// Complaint is the central complaint record.
//
// FiledAt, Department, Category, Subcategory, Area and Pincode are fixed at
// creation. RemainingDays (and PredictedDays, until first parsed) are derived
// fields owned by the reconciler; nobody else writes them. Status and Response
// are mutated only by an administrative actor.
type Complaint struct {
	ID            string          `db:"id" json:"id"`                     // opaque store-assigned key
	ComplaintID   string          `db:"complaint_id" json:"complaint_id"` // 8-digit advisory number
	UID           string          `db:"uid" json:"uid"`                   // caller-supplied citizen identifier
	Text          string          `db:"text" json:"text"`                 // description, possibly with image caption appended
	ImageCaption  sql.NullString  `db:"image_caption" json:"image_caption,omitempty"`
	Department    Department      `db:"department" json:"department"`
	Category      string          `db:"category" json:"category"`
	Subcategory   string          `db:"subcategory" json:"subcategory"`
	Urgent        bool            `db:"urgent" json:"urgent"`
	Status        ComplaintStatus `db:"status" json:"status"`
	Response      string          `db:"response" json:"response"`
	Area          string          `db:"area" json:"area"`
	Pincode       string          `db:"pincode" json:"pincode"`
	FiledAt       sql.NullTime    `db:"filed_at" json:"filed_at"`
	PredictedRaw  sql.NullString  `db:"predicted_raw" json:"predicted_raw,omitempty"` // predictor output as received
	PredictedDays sql.NullInt64   `db:"predicted_days" json:"predicted_days"`
	RemainingDays sql.NullInt64   `db:"remaining_days" json:"remaining_days"` // invalid == NotAvailable
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     sql.NullTime    `db:"updated_at" json:"updated_at"`
}

// DerivedFields is the slice of a complaint the reconciler is allowed to write.
// PredictedDays is only carried when a previously unparsed duration became
// parseable; RemainingDays is always carried.
type DerivedFields struct {
	RemainingDays sql.NullInt64
	PredictedDays *sql.NullInt64
}

// SubmitComplaintRequest is the submission payload from the citizen client.
// Category/Subcategory are the optional dropdown selections; ImageCaption is
// the externally generated caption for an uploaded photo, if any.
type SubmitComplaintRequest struct {
	Complaint    string `json:"complaint"`
	Category     string `json:"category,omitempty"`
	Subcategory  string `json:"subcategory,omitempty"`
	Area         string `json:"area"`
	Pincode      string `json:"pincode"`
	UID          string `json:"uid"`
	ImageCaption string `json:"image_caption,omitempty"`
}

// SubmitComplaintResponse is returned to the citizen on successful submission.
type SubmitComplaintResponse struct {
	ID            string     `json:"id"`
	ComplaintID   string     `json:"complaint_id"`
	Department    Department `json:"department"`
	Category      string     `json:"category"`
	Subcategory   string     `json:"subcategory"`
	Urgent        bool       `json:"urgent"`
	Response      string     `json:"response"`
	PredictedDays *int64     `json:"predicted_days,omitempty"`
}
