// Package schema: safe database initialization — create only missing tables, never drop or overwrite.

package schema

import (
	"database/sql"
	"log"
)

const tableComplaints = "complaints"

// InitializeDatabase ensures the complaints table exists. Checks
// INFORMATION_SCHEMA.TABLES and creates only what is missing; never drops or
// recreates tables and never removes data.
func InitializeDatabase(db *sql.DB) {
	if exists, err := tableExists(db, tableComplaints); err != nil {
		log.Fatalf("[SCHEMA] Failed to check if table %s exists: %v", tableComplaints, err)
	} else if exists {
		log.Println("[SCHEMA] complaints table exists")
	} else {
		createComplaintsTable(db)
		log.Println("[SCHEMA] created complaints table")
	}
}

func createComplaintsTable(db *sql.DB) {
	q := `
CREATE TABLE IF NOT EXISTS complaints (
    id VARCHAR(36) PRIMARY KEY,
    complaint_id CHAR(8) NOT NULL,
    uid VARCHAR(128) NOT NULL DEFAULT '',
    text TEXT NOT NULL,
    image_caption TEXT NULL,
    department VARCHAR(64) NOT NULL,
    category VARCHAR(64) NOT NULL,
    subcategory VARCHAR(64) NOT NULL,
    urgent BOOLEAN NOT NULL DEFAULT FALSE,
    status VARCHAR(32) NOT NULL DEFAULT 'pending',
    response TEXT NOT NULL,
    area VARCHAR(255) NOT NULL DEFAULT '',
    pincode VARCHAR(16) NOT NULL DEFAULT '',
    filed_at TIMESTAMP NULL,
    predicted_raw VARCHAR(64) NULL,
    predicted_days INT NULL,
    remaining_days INT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NULL,
    INDEX idx_complaints_uid (uid),
    INDEX idx_complaints_department (department)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`
	if _, err := db.Exec(q); err != nil {
		log.Fatalf("[SCHEMA] Failed to create table complaints: %v", err)
	}
}

func tableExists(db *sql.DB, table string) (bool, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM information_schema.TABLES
		 WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?`,
		table,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
