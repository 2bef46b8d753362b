package domain

import (
	"context"
	"strings"
	"time"
)

// User-facing messages (site language is German). The honeypot path
// reuses MsgThankYou so automated submitters cannot tell they were
// detected.
const (
	MsgThankYou       = "Vielen Dank für Ihre Nachricht! Wir melden uns so schnell wie möglich bei Ihnen."
	MsgSpamRejected   = "Ihre Anfrage konnte nicht verarbeitet werden. Bitte versuchen Sie es später erneut."
	MsgNoProvider     = "Der Kontaktdienst ist derzeit nicht verfügbar. Bitte kontaktieren Sie uns direkt per E-Mail."
	MsgDeliveryFailed = "Ihre Nachricht konnte leider nicht übermittelt werden. Bitte versuchen Sie es später erneut oder kontaktieren Sie uns direkt."
	MsgUnexpected     = "Ein unerwarteter Fehler ist aufgetreten. Bitte versuchen Sie es später erneut."
)

// Submission is a normalized contact form submission. All fields are
// trimmed; it is immutable once validated and never persisted.
type Submission struct {
	FirstName    string `validate:"required"`
	LastName     string `validate:"required"`
	Email        string `validate:"required,contact_email"`
	Message      string `validate:"required,min=10"`
	ConsentGiven bool   `validate:"required"`
	// Honeypot carries the hidden "website" field; real users never fill it.
	Honeypot       string `validate:"-"`
	RecaptchaToken string `validate:"-"`
	RemoteIP       string `validate:"-"`
	SubmittedAt    time.Time
}

// NewSubmission builds a Submission from raw form fields. Field names
// follow the public form contract (vorname, nachname, email, message,
// privacy, website, recaptchaToken).
func NewSubmission(fields map[string]string, remoteIP string, now time.Time) *Submission {
	return &Submission{
		FirstName:      strings.TrimSpace(fields["vorname"]),
		LastName:       strings.TrimSpace(fields["nachname"]),
		Email:          strings.TrimSpace(fields["email"]),
		Message:        strings.TrimSpace(fields["message"]),
		ConsentGiven:   parseConsent(fields["privacy"]),
		Honeypot:       strings.TrimSpace(fields["website"]),
		RecaptchaToken: strings.TrimSpace(fields["recaptchaToken"]),
		RemoteIP:       remoteIP,
		SubmittedAt:    now,
	}
}

// FullName returns the submitter name as shown in the notification email.
func (s *Submission) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

func parseConsent(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "1", "yes", "ja":
		return true
	}
	return false
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SubmitContact runs the full pipeline: honeypot short-circuit,
	// validation, optional bot-score gate, composition and delivery.
	SubmitContact(ctx context.Context, sub *Submission) error
}
