package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"petrocore-backend/internal/models"
	"petrocore-backend/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const demoRequestColumns = `id, full_name, encrypted_email, encrypted_phone, company,
	company_size, segment, region, message, source, session_id, lead_score,
	status, notes, created_at, updated_at`

func scanDemoRequest(row pgx.Row) (*models.DemoRequest, error) {
	req := &models.DemoRequest{}
	err := row.Scan(
		&req.ID,
		&req.FullName,
		&req.EncryptedEmail,
		&req.EncryptedPhone,
		&req.Company,
		&req.CompanySize,
		&req.Segment,
		&req.Region,
		&req.Message,
		&req.Source,
		&req.SessionID,
		&req.LeadScore,
		&req.Status,
		&req.Notes,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// CreateDemoRequest inserts a new lead record.
func (s *PostgresStore) CreateDemoRequest(ctx context.Context, req *models.DemoRequest) error {
	query := `
		INSERT INTO demo_requests (id, full_name, encrypted_email, encrypted_phone,
			company, company_size, segment, region, message, source, session_id,
			lead_score, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := s.db.Exec(ctx, query,
		req.ID,
		req.FullName,
		req.EncryptedEmail,
		req.EncryptedPhone,
		req.Company,
		req.CompanySize,
		req.Segment,
		req.Region,
		req.Message,
		req.Source,
		req.SessionID,
		req.LeadScore,
		req.Status,
		req.Notes,
	)
	if err != nil {
		log.Printf("ERROR [PostgresStore] CreateDemoRequest: Failed to insert lead %s: %v", req.ID, err)
		return fmt.Errorf("database error creating demo request: %w", err)
	}

	log.Printf("[PostgresStore] CreateDemoRequest: Inserted lead %s (source=%s)", req.ID, req.Source)
	return nil
}

// GetDemoRequestByID retrieves a lead by ID.
// Returns store.ErrNotFound if no such lead exists.
func (s *PostgresStore) GetDemoRequestByID(ctx context.Context, id uuid.UUID) (*models.DemoRequest, error) {
	query := `SELECT ` + demoRequestColumns + ` FROM demo_requests WHERE id = $1`

	req, err := scanDemoRequest(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetDemoRequestByID: Failed to query lead %s: %v", id, err)
		return nil, fmt.Errorf("database error fetching demo request: %w", err)
	}
	return req, nil
}

// ListDemoRequests retrieves leads newest-first, optionally filtered by
// status and source.
func (s *PostgresStore) ListDemoRequests(ctx context.Context, filter store.DemoRequestFilter) ([]models.DemoRequest, error) {
	query := `SELECT ` + demoRequestColumns + ` FROM demo_requests`
	args := []any{}
	argPos := 1

	where := ""
	if filter.Status != nil {
		where = fmt.Sprintf(" WHERE status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.Source != nil {
		if where == "" {
			where = fmt.Sprintf(" WHERE source = $%d", argPos)
		} else {
			where += fmt.Sprintf(" AND source = $%d", argPos)
		}
		args = append(args, *filter.Source)
		argPos++
	}
	query += where + fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListDemoRequests: Query failed: %v", err)
		return nil, fmt.Errorf("database error listing demo requests: %w", err)
	}
	defer rows.Close()

	var requests []models.DemoRequest
	for rows.Next() {
		req, err := scanDemoRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("database error scanning demo request row: %w", err)
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error iterating demo requests: %w", err)
	}
	return requests, nil
}

// UpdateDemoRequestStatus transitions a lead's status, enforcing the
// forward-only lifecycle inside a transaction. Returns
// store.ErrInvalidTransition on a backward or unknown move.
func (s *PostgresStore) UpdateDemoRequestStatus(ctx context.Context, id uuid.UUID, status models.DemoRequestStatus, notes *string) (*models.DemoRequest, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("database error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var current models.DemoRequestStatus
	err = tx.QueryRow(ctx, `SELECT status FROM demo_requests WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("database error locking demo request: %w", err)
	}

	if !current.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", store.ErrInvalidTransition, current, status)
	}

	query := `UPDATE demo_requests SET status = $1, updated_at = NOW()`
	args := []any{status}
	if notes != nil {
		query += `, notes = $3`
		args = append(args, id, *notes)
	} else {
		args = append(args, id)
	}
	query += ` WHERE id = $2 RETURNING ` + demoRequestColumns

	req, err := scanDemoRequest(tx.QueryRow(ctx, query, args...))
	if err != nil {
		log.Printf("ERROR [PostgresStore] UpdateDemoRequestStatus: Failed to update lead %s: %v", id, err)
		return nil, fmt.Errorf("database error updating demo request status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("database error committing status update: %w", err)
	}

	log.Printf("[PostgresStore] UpdateDemoRequestStatus: Lead %s moved %s -> %s", id, current, status)
	return req, nil
}
