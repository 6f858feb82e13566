package services

import (
	"context"
	"crypto/cipher"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"petrocore-backend/internal/crypto"
	"petrocore-backend/internal/integrations"
	"petrocore-backend/internal/models"
	"petrocore-backend/internal/store"

	"github.com/google/uuid"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// DemoService owns the demo-request (lead) lifecycle: form intake, chatbot
// conversions, and the admin dashboard's status transitions. Contact details
// are encrypted before they reach the store and decrypted only for admin
// responses.
type DemoService struct {
	store  store.Store
	aead   cipher.AEAD
	mailer integrations.EmailSender
}

// NewDemoService creates a DemoService.
func NewDemoService(s store.Store, aead cipher.AEAD, mailer integrations.EmailSender) *DemoService {
	return &DemoService{store: s, aead: aead, mailer: mailer}
}

// CreateFromForm handles a demo-form submission from the public site.
func (s *DemoService) CreateFromForm(ctx context.Context, req models.CreateDemoRequestRequest) (*models.DemoRequestResponse, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Company = strings.TrimSpace(req.Company)

	if req.FullName == "" {
		return nil, fmt.Errorf("%w: full_name cannot be empty", ErrValidation)
	}
	if !emailRegex.MatchString(req.Email) {
		return nil, fmt.Errorf("%w: email is not valid", ErrValidation)
	}
	if req.Company == "" {
		return nil, fmt.Errorf("%w: company cannot be empty", ErrValidation)
	}

	encryptedEmail, err := crypto.EncryptString(s.aead, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt contact email: %w", err)
	}
	encryptedPhone, err := crypto.EncryptString(s.aead, strings.TrimSpace(req.Phone))
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt contact phone: %w", err)
	}

	lead := &models.DemoRequest{
		ID:             uuid.New(),
		FullName:       req.FullName,
		EncryptedEmail: encryptedEmail,
		EncryptedPhone: encryptedPhone,
		Company:        req.Company,
		CompanySize:    req.CompanySize,
		Segment:        req.Segment,
		Region:         req.Region,
		Message:        req.Message,
		Source:         models.DemoSourceForm,
		Status:         models.DemoStatusNew,
	}
	if err := s.store.CreateDemoRequest(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create demo request: %w", err)
	}

	// Acknowledgement mail is fire-and-forget; a failed send never fails the
	// submission.
	if err := s.mailer.SendDemoAcknowledgement(ctx, req.Email, req.FullName); err != nil {
		log.Printf("WARN [DemoService] Acknowledgement email failed for lead %s: %v", lead.ID, err)
	}

	return s.mapToResponse(lead)
}

// CreateFromChatbot records a lead produced by a chatbot conversion event
// (a visitor left an email mid-conversation).
func (s *DemoService) CreateFromChatbot(ctx context.Context, sessionID, email, message string, leadScore int, entities map[string]string) (*models.DemoRequestResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegex.MatchString(email) {
		return nil, fmt.Errorf("%w: email is not valid", ErrValidation)
	}

	encryptedEmail, err := crypto.EncryptString(s.aead, email)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt contact email: %w", err)
	}

	lead := &models.DemoRequest{
		ID:             uuid.New(),
		FullName:       "Chatbot visitor",
		EncryptedEmail: encryptedEmail,
		CompanySize:    entities["company_size"],
		Segment:        entities["segment"],
		Region:         entities["region"],
		Message:        message,
		Source:         models.DemoSourceChatbot,
		SessionID:      sessionID,
		LeadScore:      leadScore,
		Status:         models.DemoStatusNew,
	}
	if err := s.store.CreateDemoRequest(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create chatbot lead: %w", err)
	}

	log.Printf("[DemoService] Created chatbot lead %s from session %s (score=%d)", lead.ID, sessionID, leadScore)
	return s.mapToResponse(lead)
}

// GetByID retrieves a single lead for the dashboard.
func (s *DemoService) GetByID(ctx context.Context, id uuid.UUID) (*models.DemoRequestResponse, error) {
	lead, err := s.store.GetDemoRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get demo request: %w", err)
	}
	return s.mapToResponse(lead)
}

// List retrieves leads for the dashboard, newest first.
func (s *DemoService) List(ctx context.Context, filter store.DemoRequestFilter) (*models.ListDemoRequestsResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	leads, err := s.store.ListDemoRequests(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list demo requests: %w", err)
	}

	responses := make([]models.DemoRequestResponse, 0, len(leads))
	for i := range leads {
		resp, err := s.mapToResponse(&leads[i])
		if err != nil {
			return nil, fmt.Errorf("failed to map demo request at index %d: %w", i, err)
		}
		responses = append(responses, *resp)
	}
	return &models.ListDemoRequestsResponse{DemoRequests: responses}, nil
}

// UpdateStatus transitions a lead's status. The store enforces the
// forward-only lifecycle.
func (s *DemoService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.DemoRequestStatus, notes *string) (*models.DemoRequestResponse, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	lead, err := s.store.UpdateDemoRequestStatus(ctx, id, status, notes)
	if err != nil {
		return nil, err // Propagate ErrNotFound / ErrInvalidTransition as-is
	}
	return s.mapToResponse(lead)
}

// mapToResponse decrypts contact details and builds the admin-facing DTO.
func (s *DemoService) mapToResponse(lead *models.DemoRequest) (*models.DemoRequestResponse, error) {
	email, err := crypto.DecryptString(s.aead, lead.EncryptedEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt contact email for lead %s: %w", lead.ID, err)
	}
	phone, err := crypto.DecryptString(s.aead, lead.EncryptedPhone)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt contact phone for lead %s: %w", lead.ID, err)
	}

	return &models.DemoRequestResponse{
		ID:          lead.ID,
		FullName:    lead.FullName,
		Email:       email,
		Phone:       phone,
		Company:     lead.Company,
		CompanySize: lead.CompanySize,
		Segment:     lead.Segment,
		Region:      lead.Region,
		Message:     lead.Message,
		Source:      lead.Source,
		SessionID:   lead.SessionID,
		LeadScore:   lead.LeadScore,
		Status:      lead.Status,
		Notes:       lead.Notes,
		CreatedAt:   lead.CreatedAt,
		UpdatedAt:   lead.UpdatedAt,
	}, nil
}
