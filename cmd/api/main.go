package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-contact-backend/config"
	v1 "go-contact-backend/internal/delivery/http/v1"
	"go-contact-backend/internal/usecase"
	"go-contact-backend/pkg/botcheck"
	"go-contact-backend/pkg/email"
	"go-contact-backend/pkg/logger"
	"go-contact-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting contact form backend", "port", cfg.Port)

	// 3. Setup Mail Providers (ordered, first is primary)
	providers, err := buildProviders(cfg)
	if err != nil {
		logger.Log.Error("Invalid mail provider configuration", "error", err)
		os.Exit(1)
	}
	dispatcher := email.NewDispatcher(logger.Log, providers...)
	if !dispatcher.Configured() {
		logger.Log.Warn("No mail provider fully configured - contact form will be unavailable")
	}

	// 4. Setup Bot-Score Gate (disabled without a secret)
	verifier := botcheck.NewVerifier(cfg.RecaptchaSecret, cfg.RecaptchaAction, cfg.RecaptchaMinScore)

	// 5. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)
	contactUC := usecase.NewContactUsecase(dispatcher, verifier, validate, cfg.ContactEmailFrom, cfg.ContactEmailTo)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		Config:    cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// buildProviders maps the MAIL_PROVIDERS config list to adapters.
// Unknown names fail startup instead of silently dropping a provider.
func buildProviders(cfg *config.Config) ([]email.Provider, error) {
	providers := make([]email.Provider, 0, len(cfg.MailProviders))
	for _, name := range cfg.MailProviders {
		switch name {
		case "resend":
			providers = append(providers, email.NewResendProvider(cfg.ResendAPIKey))
		case "mailgun":
			providers = append(providers, email.NewMailgunProvider(cfg.MailgunAPIKey, cfg.MailgunDomain))
		case "formsubmit":
			providers = append(providers, email.NewFormSubmitProvider())
		default:
			return nil, fmt.Errorf("unknown mail provider in MAIL_PROVIDERS: %q", name)
		}
	}
	return providers, nil
}
