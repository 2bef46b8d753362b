package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// ResendProvider delivers notification emails through the Resend API.
type ResendProvider struct {
	client *resend.Client
	apiKey string
}

// NewResendProvider creates a Resend-backed provider. An empty API key
// yields an unconfigured provider that the dispatcher will skip.
func NewResendProvider(apiKey string) *ResendProvider {
	return &ResendProvider{
		client: resend.NewClient(apiKey),
		apiKey: apiKey,
	}
}

func (p *ResendProvider) Name() string { return "resend" }

func (p *ResendProvider) Configured() bool { return p.apiKey != "" }

// Send implements Provider.
func (p *ResendProvider) Send(ctx context.Context, msg *Message) error {
	req := &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}

	if _, err := p.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}
