// Package botcheck gates contact form submissions on Google reCAPTCHA
// v3 score verification. The gate is optional: without a configured
// secret it stays disabled and submissions pass through.
package botcheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const verifyURL = "https://www.google.com/recaptcha/api/siteverify"

// ErrRejected is wrapped by every verification failure so callers can
// treat all of them as a single spam-protection rejection.
var ErrRejected = errors.New("bot verification rejected")

// siteverifyResponse mirrors Google's verification response.
type siteverifyResponse struct {
	Success     bool     `json:"success"`
	Score       float64  `json:"score"`
	Action      string   `json:"action"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes"`
}

// Verifier calls the reCAPTCHA siteverify endpoint and enforces the
// success flag, a minimum score and the expected action label.
type Verifier struct {
	secret         string
	expectedAction string
	minScore       float64
	endpoint       string
	client         *http.Client
}

func NewVerifier(secret, expectedAction string, minScore float64) *Verifier {
	return &Verifier{
		secret:         secret,
		expectedAction: expectedAction,
		minScore:       minScore,
		endpoint:       verifyURL,
		client:         http.DefaultClient,
	}
}

// Enabled reports whether a verification secret is configured.
func (v *Verifier) Enabled() bool {
	return v != nil && v.secret != ""
}

// Verify checks the submitted token for the given client IP and returns
// the reported score. Any failure (missing token, transport error, low
// score, mismatched action) wraps ErrRejected.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) (float64, error) {
	if token == "" {
		return 0, fmt.Errorf("%w: missing token", ErrRejected)
	}

	form := url.Values{
		"secret":   {v.secret},
		"response": {token},
	}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	defer resp.Body.Close()

	var result siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("%w: invalid siteverify response: %v", ErrRejected, err)
	}

	if !result.Success {
		return result.Score, fmt.Errorf("%w: siteverify failed: %s", ErrRejected, strings.Join(result.ErrorCodes, ", "))
	}
	if result.Score < v.minScore {
		return result.Score, fmt.Errorf("%w: score %.2f below threshold %.2f", ErrRejected, result.Score, v.minScore)
	}
	if result.Action != v.expectedAction {
		return result.Score, fmt.Errorf("%w: unexpected action %q", ErrRejected, result.Action)
	}

	return result.Score, nil
}
