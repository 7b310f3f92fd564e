package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Check statuses. A check moves generating -> uploading -> uploaded, or to
// error from any state. Transitions are guarded in SQL so a stale worker
// cannot resurrect a failed check.
const (
	StatusGenerating = "generating"
	StatusUploading  = "uploading"
	StatusUploaded   = "uploaded"
	StatusError      = "error"
)

// Check is one screening run.
type Check struct {
	ID          uuid.UUID  `json:"id"`
	ReportID    string     `json:"report_id"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email,omitempty"`
	Status      string     `json:"status"`
	RiskLevel   string     `json:"risk_level,omitempty"`
	RiskScore   int        `json:"risk_score"`
	Found       bool       `json:"found"`
	ErrorDetail string     `json:"error_detail,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CreateCheck records a new screening run in the generating state and
// returns its ID.
func (db *DB) CreateCheck(ctx context.Context, reportID, fullName, email string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO checks (report_id, full_name, email, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		reportID, fullName, email, StatusGenerating,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create check: %w", err)
	}
	return id, nil
}

// TransitionStatus advances a check from one status to the next. It fails
// when the check is not currently in the expected state.
func (db *DB) TransitionStatus(ctx context.Context, checkID uuid.UUID, from, to string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE checks SET status = $1 WHERE id = $2 AND status = $3`,
		to, checkID, from,
	)
	if err != nil {
		return fmt.Errorf("failed to transition check %s: %w", checkID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("check %s not in status %q", checkID, from)
	}
	return nil
}

// CompleteCheck marks a check as uploaded and stores the assessment outcome.
func (db *DB) CompleteCheck(ctx context.Context, checkID uuid.UUID, riskLevel string, riskScore int, found bool) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE checks
		 SET status = $1, risk_level = $2, risk_score = $3, found = $4, completed_at = NOW()
		 WHERE id = $5 AND status = $6`,
		StatusUploaded, riskLevel, riskScore, found, checkID, StatusUploading,
	)
	if err != nil {
		return fmt.Errorf("failed to complete check: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("check %s not in status %q", checkID, StatusUploading)
	}
	return nil
}

// FailCheck moves a check to the error state with a human-readable detail.
// Unlike the forward transitions this succeeds from any current state.
func (db *DB) FailCheck(ctx context.Context, checkID uuid.UUID, detail string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE checks SET status = $1, error_detail = $2, completed_at = NOW() WHERE id = $3`,
		StatusError, detail, checkID,
	)
	if err != nil {
		return fmt.Errorf("failed to fail check: %w", err)
	}
	return nil
}

// GetCheck retrieves a check by ID, or nil when absent.
func (db *DB) GetCheck(ctx context.Context, checkID uuid.UUID) (*Check, error) {
	var c Check
	err := db.pool.QueryRow(ctx,
		`SELECT id, report_id, full_name, COALESCE(email, ''), status,
		        COALESCE(risk_level, ''), COALESCE(risk_score, 0), found,
		        COALESCE(error_detail, ''), created_at, completed_at
		 FROM checks WHERE id = $1`,
		checkID,
	).Scan(&c.ID, &c.ReportID, &c.FullName, &c.Email, &c.Status,
		&c.RiskLevel, &c.RiskScore, &c.Found, &c.ErrorDetail, &c.CreatedAt, &c.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get check: %w", err)
	}
	return &c, nil
}

// SaveAssessment stores the merged person and risk payloads as JSON next to
// the check so a report can be regenerated without rerunning the providers.
func (db *DB) SaveAssessment(ctx context.Context, checkID uuid.UUID, person, risk any) error {
	personJSON, err := json.Marshal(person)
	if err != nil {
		return fmt.Errorf("failed to marshal person: %w", err)
	}
	riskJSON, err := json.Marshal(risk)
	if err != nil {
		return fmt.Errorf("failed to marshal risk: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		`UPDATE checks SET person = $1, risk = $2 WHERE id = $3`,
		personJSON, riskJSON, checkID,
	)
	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}
	return nil
}

// ListChecks retrieves recent checks, newest first.
func (db *DB) ListChecks(ctx context.Context, limit int) ([]Check, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, report_id, full_name, COALESCE(email, ''), status,
		        COALESCE(risk_level, ''), COALESCE(risk_score, 0), found,
		        COALESCE(error_detail, ''), created_at, completed_at
		 FROM checks ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}
	defer rows.Close()

	var checks []Check
	for rows.Next() {
		var c Check
		if err := rows.Scan(&c.ID, &c.ReportID, &c.FullName, &c.Email, &c.Status,
			&c.RiskLevel, &c.RiskScore, &c.Found, &c.ErrorDetail, &c.CreatedAt, &c.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan check: %w", err)
		}
		checks = append(checks, c)
	}
	return checks, nil
}
