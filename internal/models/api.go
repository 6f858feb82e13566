package models

import (
	"time"

	"petrocore-backend/internal/chatbot"

	"github.com/google/uuid"
)

// --- Shared ---

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"` // set for validation failures
}

// --- Auth DTOs ---

// SignupRequest defines the expected body for the admin signup endpoint.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest defines the expected body for the admin login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse defines the user information returned by the API.
// Never includes the password hash.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// AuthResponse defines the response body for successful authentication.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// --- Chat DTOs (the pipeline's boundary contract) ---

// ChatMessageRequest is the inbound chat turn.
type ChatMessageRequest struct {
	SessionID           string            `json:"session_id"`
	Message             string            `json:"message"`
	Language            chatbot.Language  `json:"language,omitempty"`
	ConversationHistory []chatbot.Message `json:"conversation_history,omitempty"`
	PreviousLeadScore   *int              `json:"previous_lead_score,omitempty"`
}

// ChatContext is the per-turn context block returned alongside the reply.
type ChatContext struct {
	SessionID  string            `json:"session_id"`
	LeadScore  int               `json:"lead_score"`
	Language   chatbot.Language  `json:"language"`
	Intent     chatbot.Intent    `json:"intent"`
	Confidence float64           `json:"confidence"`
	Entities   map[string]string `json:"entities,omitempty"`
	Sentiment  float64           `json:"sentiment"`
}

// ChatMessageResponse is the outbound chat turn.
type ChatMessageResponse struct {
	Message            chatbot.Message             `json:"message"`
	Context            ChatContext                 `json:"context"`
	Suggestions        []string                    `json:"suggestions"`
	ShouldEscalate     bool                        `json:"should_escalate"`
	EscalationMessage  string                      `json:"escalation_message,omitempty"`
	EscalationTriggers []chatbot.EscalationTrigger `json:"escalation_triggers,omitempty"`
	Stage              chatbot.Stage               `json:"stage"`
}

// --- Demo request DTOs ---

// CreateDemoRequestRequest defines the demo form submission body.
type CreateDemoRequestRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Company     string `json:"company"`
	CompanySize string `json:"company_size,omitempty"`
	Segment     string `json:"segment,omitempty"`
	Region      string `json:"region,omitempty"`
	Message     string `json:"message,omitempty"`
}

// DemoRequestResponse is the admin-facing lead representation. Contact
// details are decrypted by the service before it builds this DTO.
type DemoRequestResponse struct {
	ID          uuid.UUID         `json:"id"`
	FullName    string            `json:"full_name"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone,omitempty"`
	Company     string            `json:"company"`
	CompanySize string            `json:"company_size,omitempty"`
	Segment     string            `json:"segment,omitempty"`
	Region      string            `json:"region,omitempty"`
	Message     string            `json:"message,omitempty"`
	Source      DemoRequestSource `json:"source"`
	SessionID   string            `json:"session_id,omitempty"`
	LeadScore   int               `json:"lead_score"`
	Status      DemoRequestStatus `json:"status"`
	Notes       string            `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ListDemoRequestsResponse wraps the lead dashboard listing.
type ListDemoRequestsResponse struct {
	DemoRequests []DemoRequestResponse `json:"demo_requests"`
}

// UpdateDemoStatusRequest defines the status-transition body.
type UpdateDemoStatusRequest struct {
	Status DemoRequestStatus `json:"status"`
	Notes  *string           `json:"notes,omitempty"`
}

// --- GDPR DTOs ---

// CreateGDPRRequestRequest defines the data-subject request intake body.
type CreateGDPRRequestRequest struct {
	Type    GDPRRequestType `json:"type"`
	Email   string          `json:"email"`
	Details string          `json:"details,omitempty"`
}

// GDPRRequestResponse is the admin-facing representation of a request.
type GDPRRequestResponse struct {
	ID        uuid.UUID         `json:"id"`
	Type      GDPRRequestType   `json:"type"`
	Email     string            `json:"email"`
	Details   string            `json:"details,omitempty"`
	Status    GDPRRequestStatus `json:"status"`
	DueAt     time.Time         `json:"due_at"`
	Notes     string            `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ListGDPRRequestsResponse wraps the GDPR bookkeeping listing.
type ListGDPRRequestsResponse struct {
	Requests []GDPRRequestResponse `json:"requests"`
}

// UpdateGDPRStatusRequest defines the status-update body.
type UpdateGDPRStatusRequest struct {
	Status GDPRRequestStatus `json:"status"`
	Notes  *string           `json:"notes,omitempty"`
}
