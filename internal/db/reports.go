package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Report is a stored PDF document keyed by its customer-facing report ID.
type Report struct {
	ReportID  string    `json:"report_id"`
	CheckID   uuid.UUID `json:"check_id"`
	FullName  string    `json:"full_name"`
	PDF       []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveReport stores the rendered PDF for a check. Regenerating a report
// overwrites the previous document under the same ID.
func (db *DB) SaveReport(ctx context.Context, reportID string, checkID uuid.UUID, fullName string, pdf []byte) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO reports (report_id, check_id, full_name, pdf)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (report_id) DO UPDATE SET pdf = $4, created_at = NOW()`,
		reportID, checkID, fullName, pdf,
	)
	if err != nil {
		return fmt.Errorf("failed to save report %s: %w", reportID, err)
	}
	return nil
}

// GetReport retrieves a stored report by ID, or nil when absent.
func (db *DB) GetReport(ctx context.Context, reportID string) (*Report, error) {
	var r Report
	err := db.pool.QueryRow(ctx,
		`SELECT report_id, check_id, full_name, pdf, created_at
		 FROM reports WHERE report_id = $1`,
		reportID,
	).Scan(&r.ReportID, &r.CheckID, &r.FullName, &r.PDF, &r.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report %s: %w", reportID, err)
	}
	return &r, nil
}
