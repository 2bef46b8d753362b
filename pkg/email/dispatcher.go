package email

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"
)

// reasonMaxLen caps the length of a single sanitized failure reason.
const reasonMaxLen = 200

// Dispatcher tries providers in a fixed order and stops at the first
// success. It never returns an error: every failure is downgraded to an
// attempt record so the caller can map the aggregate to a response.
type Dispatcher struct {
	providers []Provider
	log       *slog.Logger
}

func NewDispatcher(log *slog.Logger, providers ...Provider) *Dispatcher {
	return &Dispatcher{
		providers: providers,
		log:       log,
	}
}

// Configured reports whether at least one provider can be attempted.
func (d *Dispatcher) Configured() bool {
	for _, p := range d.providers {
		if p.Configured() {
			return true
		}
	}
	return false
}

// Dispatch delivers msg through the provider chain. Providers without
// credentials are skipped with a recorded reason; the first accepted
// delivery marks the outcome successful and ends the chain.
func (d *Dispatcher) Dispatch(ctx context.Context, msg *Message) Outcome {
	var outcome Outcome

	for _, p := range d.providers {
		if !p.Configured() {
			outcome.Attempts = append(outcome.Attempts, Attempt{
				Provider: p.Name(),
				Reason:   "credentials not configured, provider skipped",
			})
			d.log.Warn("Mail provider skipped", "provider", p.Name(), "reason", "credentials not configured")
			continue
		}

		start := time.Now()
		err := p.Send(ctx, msg)
		elapsed := time.Since(start)

		if err != nil {
			reason := sanitizeReason(err.Error())
			outcome.Attempts = append(outcome.Attempts, Attempt{
				Provider: p.Name(),
				Reason:   reason,
			})
			d.log.Error("Mail delivery failed", "provider", p.Name(), "duration", elapsed, "error", reason)
			continue
		}

		outcome.Attempts = append(outcome.Attempts, Attempt{
			Provider: p.Name(),
			Success:  true,
		})
		outcome.Success = true
		d.log.Info("Mail delivered", "provider", p.Name(), "duration", elapsed)
		break
	}

	return outcome
}

// sanitizeReason collapses whitespace and truncates provider error text
// before it may end up in a response details field.
func sanitizeReason(reason string) string {
	reason = strings.Join(strings.Fields(reason), " ")
	if utf8.RuneCountInString(reason) > reasonMaxLen {
		runes := []rune(reason)
		reason = string(runes[:reasonMaxLen]) + "..."
	}
	return reason
}
