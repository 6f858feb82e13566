package integrations

import (
	"context"
	"log"
)

// EmailSender delivers transactional mail. The real sender lives outside this
// service; implementations here only have to honor fire-and-forget semantics
// with success/failure logging.
type EmailSender interface {
	SendDemoAcknowledgement(ctx context.Context, toEmail, fullName string) error
	SendGDPRAcknowledgement(ctx context.Context, toEmail string, dueDate string) error
}

// LogEmailSender logs instead of sending. Default wiring until an SMTP or
// provider-backed sender is configured.
type LogEmailSender struct{}

var _ EmailSender = (*LogEmailSender)(nil)

// NewLogEmailSender creates a LogEmailSender.
func NewLogEmailSender() *LogEmailSender {
	return &LogEmailSender{}
}

// SendDemoAcknowledgement logs the acknowledgement that would be mailed.
func (s *LogEmailSender) SendDemoAcknowledgement(_ context.Context, toEmail, fullName string) error {
	log.Printf("[Email] Would send demo acknowledgement to %s (name=%s)", toEmail, fullName)
	return nil
}

// SendGDPRAcknowledgement logs the GDPR intake acknowledgement.
func (s *LogEmailSender) SendGDPRAcknowledgement(_ context.Context, toEmail string, dueDate string) error {
	log.Printf("[Email] Would send GDPR acknowledgement to %s (due=%s)", toEmail, dueDate)
	return nil
}
