package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go-contact-backend/internal/domain"
	"go-contact-backend/pkg/apperror"
	"go-contact-backend/pkg/email"
	"go-contact-backend/pkg/logger"
	"go-contact-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// MailDispatcher is the delivery side of the pipeline. Satisfied by
// *email.Dispatcher; narrowed to an interface for testing.
type MailDispatcher interface {
	Configured() bool
	Dispatch(ctx context.Context, msg *email.Message) email.Outcome
}

// BotVerifier is the optional bot-score gate. Satisfied by
// *botcheck.Verifier.
type BotVerifier interface {
	Enabled() bool
	Verify(ctx context.Context, token, remoteIP string) (float64, error)
}

type contactUsecase struct {
	dispatcher MailDispatcher
	verifier   BotVerifier
	validate   *validator.Validate
	fromEmail  string
	toEmail    string
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(dispatcher MailDispatcher, verifier BotVerifier, validate *validator.Validate, fromEmail, toEmail string) domain.ContactUsecase {
	return &contactUsecase{
		dispatcher: dispatcher,
		verifier:   verifier,
		validate:   validate,
		fromEmail:  fromEmail,
		toEmail:    toEmail,
	}
}

// SubmitContact runs the full pipeline for one submission. A nil return
// means the caller should answer with the canonical thank-you message;
// every rejection is an *apperror.AppError carrying status and wording.
func (uc *contactUsecase) SubmitContact(ctx context.Context, sub *domain.Submission) error {
	// Honeypot short-circuit: answer exactly like a genuine success so
	// automated submitters learn nothing, but never attempt delivery.
	if sub.Honeypot != "" {
		logger.Log.Info("Honeypot tripped, discarding submission", "ip", sub.RemoteIP)
		return nil
	}

	// All rules are checked together; the client shows the full list.
	if err := uc.validate.Struct(sub); err != nil {
		msgs := validation.FormatValidationErrors(err)
		return apperror.UnprocessableEntity(strings.Join(msgs, "\n"))
	}

	data := email.ContactData{
		FirstName:   sub.FirstName,
		LastName:    sub.LastName,
		Email:       sub.Email,
		Message:     sub.Message,
		SubmittedAt: sub.SubmittedAt,
		RemoteIP:    sub.RemoteIP,
	}

	if uc.verifier != nil && uc.verifier.Enabled() {
		score, err := uc.verifier.Verify(ctx, sub.RecaptchaToken, sub.RemoteIP)
		if err != nil {
			logger.Log.Warn("Bot verification rejected submission", "ip", sub.RemoteIP, "error", err)
			return apperror.UnprocessableEntity(domain.MsgSpamRejected)
		}
		data.BotScore = score
		data.HasBotScore = true
	}

	if !uc.dispatcher.Configured() {
		return apperror.New(http.StatusInternalServerError, domain.MsgNoProvider, nil).
			WithDetails("no mail provider credentials configured")
	}

	msg, err := email.Compose(uc.fromEmail, uc.toEmail, data)
	if err != nil {
		return fmt.Errorf("failed to compose notification email: %w", err)
	}

	outcome := uc.dispatcher.Dispatch(ctx, msg)
	if !outcome.Success {
		return apperror.New(http.StatusInternalServerError, domain.MsgDeliveryFailed, nil).
			WithDetails(outcome.Reasons())
	}

	return nil
}
