package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an admin dashboard user in the database.
type User struct {
	ID             uuid.UUID `db:"id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// DemoRequestStatus is the lead lifecycle. Transitions move forward only:
// NEW -> CONTACTED -> QUALIFIED -> CLOSED.
type DemoRequestStatus string

const (
	DemoStatusNew       DemoRequestStatus = "NEW"
	DemoStatusContacted DemoRequestStatus = "CONTACTED"
	DemoStatusQualified DemoRequestStatus = "QUALIFIED"
	DemoStatusClosed    DemoRequestStatus = "CLOSED"
)

// demoStatusRank orders the lifecycle for transition checks.
var demoStatusRank = map[DemoRequestStatus]int{
	DemoStatusNew:       0,
	DemoStatusContacted: 1,
	DemoStatusQualified: 2,
	DemoStatusClosed:    3,
}

// IsValid reports whether s is a known status.
func (s DemoRequestStatus) IsValid() bool {
	_, ok := demoStatusRank[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is a legal forward
// transition.
func (s DemoRequestStatus) CanTransitionTo(next DemoRequestStatus) bool {
	cur, ok := demoStatusRank[s]
	if !ok {
		return false
	}
	nxt, ok := demoStatusRank[next]
	if !ok {
		return false
	}
	return nxt > cur
}

// DemoRequestSource distinguishes how a lead arrived.
type DemoRequestSource string

const (
	DemoSourceForm    DemoRequestSource = "form"
	DemoSourceChatbot DemoRequestSource = "chatbot"
)

// DemoRequest is a lead row. Email and phone are AES-GCM encrypted at rest;
// only the service layer sees them in the clear.
type DemoRequest struct {
	ID             uuid.UUID         `db:"id"`
	FullName       string            `db:"full_name"`
	EncryptedEmail []byte            `db:"encrypted_email"`
	EncryptedPhone []byte            `db:"encrypted_phone"` // nil when not provided
	Company        string            `db:"company"`
	CompanySize    string            `db:"company_size"`
	Segment        string            `db:"segment"`
	Region         string            `db:"region"`
	Message        string            `db:"message"`
	Source         DemoRequestSource `db:"source"`
	SessionID      string            `db:"session_id"` // chatbot session that produced the lead, if any
	LeadScore      int               `db:"lead_score"`
	Status         DemoRequestStatus `db:"status"`
	Notes          string            `db:"notes"`
	CreatedAt      time.Time         `db:"created_at"`
	UpdatedAt      time.Time         `db:"updated_at"`
}

// GDPRRequestType is the data-subject right being exercised.
type GDPRRequestType string

const (
	GDPRTypeAccess      GDPRRequestType = "access"
	GDPRTypeErasure     GDPRRequestType = "erasure"
	GDPRTypePortability GDPRRequestType = "portability"
)

// IsValid reports whether t is a known request type.
func (t GDPRRequestType) IsValid() bool {
	switch t {
	case GDPRTypeAccess, GDPRTypeErasure, GDPRTypePortability:
		return true
	}
	return false
}

// GDPRRequestStatus is the bookkeeping state of a data-subject request.
type GDPRRequestStatus string

const (
	GDPRStatusReceived   GDPRRequestStatus = "RECEIVED"
	GDPRStatusInProgress GDPRRequestStatus = "IN_PROGRESS"
	GDPRStatusCompleted  GDPRRequestStatus = "COMPLETED"
	GDPRStatusRejected   GDPRRequestStatus = "REJECTED"
)

// IsValid reports whether s is a known status.
func (s GDPRRequestStatus) IsValid() bool {
	switch s {
	case GDPRStatusReceived, GDPRStatusInProgress, GDPRStatusCompleted, GDPRStatusRejected:
		return true
	}
	return false
}

// GDPRRequest is one data-subject-rights request. The subject email is
// encrypted at rest like lead contact details.
type GDPRRequest struct {
	ID             uuid.UUID         `db:"id"`
	Type           GDPRRequestType   `db:"request_type"`
	EncryptedEmail []byte            `db:"encrypted_email"`
	Details        string            `db:"details"`
	Status         GDPRRequestStatus `db:"status"`
	DueAt          time.Time         `db:"due_at"`
	Notes          string            `db:"notes"`
	CreatedAt      time.Time         `db:"created_at"`
	UpdatedAt      time.Time         `db:"updated_at"`
}
