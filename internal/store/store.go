package store

import (
	"context"
	"errors"

	"petrocore-backend/internal/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// ErrInvalidTransition is returned for backward or unknown status moves.
var ErrInvalidTransition = errors.New("invalid status transition")

// DemoRequestFilter narrows lead listings.
type DemoRequestFilter struct {
	Status *models.DemoRequestStatus
	Source *models.DemoRequestSource
	Limit  int
	Offset int
}

// GDPRRequestFilter narrows GDPR listings.
type GDPRRequestFilter struct {
	Status *models.GDPRRequestStatus
	Limit  int
	Offset int
}

// Store defines the interface for database operations. This allows for
// mocking in tests and potential DB backend switching.
type Store interface {
	// User operations (admin dashboard accounts)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error

	// Demo request (lead) operations
	CreateDemoRequest(ctx context.Context, req *models.DemoRequest) error
	GetDemoRequestByID(ctx context.Context, id uuid.UUID) (*models.DemoRequest, error)
	ListDemoRequests(ctx context.Context, filter DemoRequestFilter) ([]models.DemoRequest, error)
	UpdateDemoRequestStatus(ctx context.Context, id uuid.UUID, status models.DemoRequestStatus, notes *string) (*models.DemoRequest, error)

	// GDPR request operations
	CreateGDPRRequest(ctx context.Context, req *models.GDPRRequest) error
	GetGDPRRequestByID(ctx context.Context, id uuid.UUID) (*models.GDPRRequest, error)
	ListGDPRRequests(ctx context.Context, filter GDPRRequestFilter) ([]models.GDPRRequest, error)
	UpdateGDPRRequestStatus(ctx context.Context, id uuid.UUID, status models.GDPRRequestStatus, notes *string) (*models.GDPRRequest, error)
}
