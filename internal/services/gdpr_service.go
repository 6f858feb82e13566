package services

import (
	"context"
	"crypto/cipher"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"petrocore-backend/internal/crypto"
	"petrocore-backend/internal/integrations"
	"petrocore-backend/internal/models"
	"petrocore-backend/internal/store"

	"github.com/google/uuid"
)

// gdprResponseWindow is the statutory deadline for answering a
// data-subject-rights request.
const gdprResponseWindow = 30 * 24 * time.Hour

// GDPRService tracks data-subject-rights requests (access, erasure,
// portability). It does bookkeeping only; fulfilment is a manual process
// driven from the admin dashboard.
type GDPRService struct {
	store  store.Store
	aead   cipher.AEAD
	mailer integrations.EmailSender
}

// NewGDPRService creates a GDPRService.
func NewGDPRService(s store.Store, aead cipher.AEAD, mailer integrations.EmailSender) *GDPRService {
	return &GDPRService{store: s, aead: aead, mailer: mailer}
}

// Create records an inbound data-subject request with a 30-day due date.
func (s *GDPRService) Create(ctx context.Context, req models.CreateGDPRRequestRequest) (*models.GDPRRequestResponse, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown request type %q", ErrValidation, req.Type)
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if !emailRegex.MatchString(req.Email) {
		return nil, fmt.Errorf("%w: email is not valid", ErrValidation)
	}

	encryptedEmail, err := crypto.EncryptString(s.aead, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt subject email: %w", err)
	}

	record := &models.GDPRRequest{
		ID:             uuid.New(),
		Type:           req.Type,
		EncryptedEmail: encryptedEmail,
		Details:        strings.TrimSpace(req.Details),
		Status:         models.GDPRStatusReceived,
		DueAt:          time.Now().UTC().Add(gdprResponseWindow),
	}
	if err := s.store.CreateGDPRRequest(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create gdpr request: %w", err)
	}

	if err := s.mailer.SendGDPRAcknowledgement(ctx, req.Email, record.DueAt.Format("2006-01-02")); err != nil {
		log.Printf("WARN [GDPRService] Acknowledgement email failed for request %s: %v", record.ID, err)
	}

	return s.mapToResponse(record)
}

// GetByID retrieves a single request for the dashboard.
func (s *GDPRService) GetByID(ctx context.Context, id uuid.UUID) (*models.GDPRRequestResponse, error) {
	record, err := s.store.GetGDPRRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get gdpr request: %w", err)
	}
	return s.mapToResponse(record)
}

// List retrieves requests ordered by due date, most urgent first.
func (s *GDPRService) List(ctx context.Context, filter store.GDPRRequestFilter) (*models.ListGDPRRequestsResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	records, err := s.store.ListGDPRRequests(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list gdpr requests: %w", err)
	}

	responses := make([]models.GDPRRequestResponse, 0, len(records))
	for i := range records {
		resp, err := s.mapToResponse(&records[i])
		if err != nil {
			return nil, fmt.Errorf("failed to map gdpr request at index %d: %w", i, err)
		}
		responses = append(responses, *resp)
	}
	return &models.ListGDPRRequestsResponse{Requests: responses}, nil
}

// UpdateStatus moves a request through its bookkeeping states.
func (s *GDPRService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.GDPRRequestStatus, notes *string) (*models.GDPRRequestResponse, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	record, err := s.store.UpdateGDPRRequestStatus(ctx, id, status, notes)
	if err != nil {
		return nil, err
	}
	return s.mapToResponse(record)
}

func (s *GDPRService) mapToResponse(record *models.GDPRRequest) (*models.GDPRRequestResponse, error) {
	email, err := crypto.DecryptString(s.aead, record.EncryptedEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt subject email for request %s: %w", record.ID, err)
	}

	return &models.GDPRRequestResponse{
		ID:        record.ID,
		Type:      record.Type,
		Email:     email,
		Details:   record.Details,
		Status:    record.Status,
		DueAt:     record.DueAt,
		Notes:     record.Notes,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}
