package ports

import "context"

// Recipient is one newsletter destination.
type Recipient struct {
	Email    string
	Username string
}

// NewsletterInput is a batch send request. Message may contain the
// [USERNAME] and [LINK_DASHBOARD] placeholders, substituted per recipient.
type NewsletterInput struct {
	Recipients   []Recipient
	Subject      string
	Message      string
	DashboardURL string
}

// NewsletterResult reports the batch outcome. Success is gated on at least
// one delivered email; per-recipient failures are collected, never fatal.
type NewsletterResult struct {
	Success bool
	Sent    int
	Total   int
	Errors  []string
}

// NewsletterService sends templated batch email.
type NewsletterService interface {
	Send(ctx context.Context, input NewsletterInput) (*NewsletterResult, error)
}

// MailSender is the SMTP boundary used by the newsletter service.
type MailSender interface {
	Send(to, subject, htmlBody, textBody string) error
}
