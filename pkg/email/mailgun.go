package email

import (
	"context"
	"fmt"

	mailgun "github.com/mailgun/mailgun-go/v5"
)

// MailgunProvider delivers notification emails through the Mailgun API.
type MailgunProvider struct {
	mg     mailgun.Mailgun
	domain string
	apiKey string
}

// NewMailgunProvider creates a Mailgun-backed provider. Both the API
// key and the sending domain are required for it to count as configured.
func NewMailgunProvider(apiKey, domain string) *MailgunProvider {
	return &MailgunProvider{
		mg:     mailgun.NewMailgun(apiKey),
		domain: domain,
		apiKey: apiKey,
	}
}

func (p *MailgunProvider) Name() string { return "mailgun" }

func (p *MailgunProvider) Configured() bool { return p.apiKey != "" && p.domain != "" }

// Send implements Provider.
func (p *MailgunProvider) Send(ctx context.Context, msg *Message) error {
	message := mailgun.NewMessage(p.domain, msg.From, msg.Subject, msg.Text)
	if err := message.AddRecipient(msg.To); err != nil {
		return fmt.Errorf("mailgun: add recipient: %w", err)
	}
	message.SetReplyTo(msg.ReplyTo)
	message.SetHTML(msg.HTML)

	if _, err := p.mg.Send(ctx, message); err != nil {
		return fmt.Errorf("mailgun: failed to send email: %w", err)
	}
	return nil
}
