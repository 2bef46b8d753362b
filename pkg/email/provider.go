package email

import (
	"context"
	"strings"
)

// Message is a composed notification email ready for delivery.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Provider is a transactional email delivery adapter. Implementations
// wrap one third-party API each; the dispatcher tries them in the
// configured order.
type Provider interface {
	// Name identifies the provider in attempt records and logs.
	Name() string
	// Configured reports whether the provider has the credentials it
	// needs. Unconfigured providers are skipped, never called.
	Configured() bool
	// Send delivers the message or returns an error describing why the
	// provider rejected it. Transport errors are returned, not panicked.
	Send(ctx context.Context, msg *Message) error
}

// Attempt records the outcome of a single provider call (or skip).
type Attempt struct {
	Provider string
	Success  bool
	Reason   string
}

// Outcome aggregates all delivery attempts for one submission. A single
// successful attempt makes the whole outcome successful.
type Outcome struct {
	Success  bool
	Attempts []Attempt
}

// Reasons concatenates the failure reasons of all attempts. The result
// is diagnostic text for the response details field, never for the
// user-facing message.
func (o Outcome) Reasons() string {
	var reasons []string
	for _, a := range o.Attempts {
		if !a.Success && a.Reason != "" {
			reasons = append(reasons, a.Provider+": "+a.Reason)
		}
	}
	return strings.Join(reasons, "; ")
}
