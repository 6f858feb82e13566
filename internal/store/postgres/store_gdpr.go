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

const gdprRequestColumns = `id, request_type, encrypted_email, details, status,
	due_at, notes, created_at, updated_at`

func scanGDPRRequest(row pgx.Row) (*models.GDPRRequest, error) {
	req := &models.GDPRRequest{}
	err := row.Scan(
		&req.ID,
		&req.Type,
		&req.EncryptedEmail,
		&req.Details,
		&req.Status,
		&req.DueAt,
		&req.Notes,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// CreateGDPRRequest inserts a new data-subject-rights request.
func (s *PostgresStore) CreateGDPRRequest(ctx context.Context, req *models.GDPRRequest) error {
	query := `
		INSERT INTO gdpr_requests (id, request_type, encrypted_email, details, status, due_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.Exec(ctx, query,
		req.ID,
		req.Type,
		req.EncryptedEmail,
		req.Details,
		req.Status,
		req.DueAt,
		req.Notes,
	)
	if err != nil {
		log.Printf("ERROR [PostgresStore] CreateGDPRRequest: Failed to insert request %s: %v", req.ID, err)
		return fmt.Errorf("database error creating GDPR request: %w", err)
	}

	log.Printf("[PostgresStore] CreateGDPRRequest: Inserted %s request %s (due %s)", req.Type, req.ID, req.DueAt.Format("2006-01-02"))
	return nil
}

// GetGDPRRequestByID retrieves a request by ID.
// Returns store.ErrNotFound if no such request exists.
func (s *PostgresStore) GetGDPRRequestByID(ctx context.Context, id uuid.UUID) (*models.GDPRRequest, error) {
	query := `SELECT ` + gdprRequestColumns + ` FROM gdpr_requests WHERE id = $1`

	req, err := scanGDPRRequest(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetGDPRRequestByID: Failed to query request %s: %v", id, err)
		return nil, fmt.Errorf("database error fetching GDPR request: %w", err)
	}
	return req, nil
}

// ListGDPRRequests retrieves requests oldest-due-first, optionally filtered
// by status.
func (s *PostgresStore) ListGDPRRequests(ctx context.Context, filter store.GDPRRequestFilter) ([]models.GDPRRequest, error) {
	query := `SELECT ` + gdprRequestColumns + ` FROM gdpr_requests`
	args := []any{}
	argPos := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" WHERE status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}
	query += fmt.Sprintf(" ORDER BY due_at ASC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListGDPRRequests: Query failed: %v", err)
		return nil, fmt.Errorf("database error listing GDPR requests: %w", err)
	}
	defer rows.Close()

	var requests []models.GDPRRequest
	for rows.Next() {
		req, err := scanGDPRRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("database error scanning GDPR request row: %w", err)
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error iterating GDPR requests: %w", err)
	}
	return requests, nil
}

// UpdateGDPRRequestStatus updates a request's bookkeeping status.
func (s *PostgresStore) UpdateGDPRRequestStatus(ctx context.Context, id uuid.UUID, status models.GDPRRequestStatus, notes *string) (*models.GDPRRequest, error) {
	query := `UPDATE gdpr_requests SET status = $1, updated_at = NOW()`
	args := []any{status}
	if notes != nil {
		query += `, notes = $3`
		args = append(args, id, *notes)
	} else {
		args = append(args, id)
	}
	query += ` WHERE id = $2 RETURNING ` + gdprRequestColumns

	req, err := scanGDPRRequest(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] UpdateGDPRRequestStatus: Failed to update request %s: %v", id, err)
		return nil, fmt.Errorf("database error updating GDPR request status: %w", err)
	}

	log.Printf("[PostgresStore] UpdateGDPRRequestStatus: Request %s -> %s", id, status)
	return req, nil
}
