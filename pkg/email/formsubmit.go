package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultFormSubmitBaseURL = "https://formsubmit.co"

// FormSubmitProvider delivers notification emails through the keyless
// formsubmit.co AJAX endpoint. It needs no credentials, which makes it
// the fallback of last resort when every keyed provider is down or
// unconfigured.
type FormSubmitProvider struct {
	baseURL string
	client  *http.Client
}

func NewFormSubmitProvider() *FormSubmitProvider {
	return &FormSubmitProvider{
		baseURL: defaultFormSubmitBaseURL,
		client:  http.DefaultClient,
	}
}

func (p *FormSubmitProvider) Name() string { return "formsubmit" }

// Configured is always true: the endpoint is anonymous.
func (p *FormSubmitProvider) Configured() bool { return true }

// Send implements Provider. The endpoint has no HTML body support, so
// only the plain-text rendering is relayed.
func (p *FormSubmitProvider) Send(ctx context.Context, msg *Message) error {
	payload, err := json.Marshal(map[string]string{
		"name":     msg.ReplyTo,
		"email":    msg.ReplyTo,
		"message":  msg.Text,
		"_subject": msg.Subject,
	})
	if err != nil {
		return fmt.Errorf("formsubmit: encode payload: %w", err)
	}

	url := p.baseURL + "/ajax/" + msg.To
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("formsubmit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("formsubmit: %w", err)
	}
	defer resp.Body.Close()

	// 2xx (202 "accepted" included) counts as delivered.
	if resp.StatusCode/100 == 2 {
		return nil
	}

	// Keep only a short excerpt of the body; the full text may contain
	// provider internals that must not reach any response field.
	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("formsubmit: unexpected status %d: %s", resp.StatusCode, string(excerpt))
}
