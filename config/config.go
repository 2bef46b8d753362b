package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	// Mail delivery configuration
	MailProviders    []string // ordered provider names, first is primary
	ResendAPIKey     string
	MailgunAPIKey    string
	MailgunDomain    string
	ContactEmailTo   string
	ContactEmailFrom string
	// reCAPTCHA v3 bot-score gate (enabled when secret is set)
	RecaptchaSecret   string
	RecaptchaMinScore float64
	RecaptchaAction   string
	// Rate Limiting Configuration
	RateLimitRPS   int
	RateLimitBurst int
	// Static site fallback (all non-API routes)
	StaticDir string
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored in production if absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		MailProviders:  splitCSV(getEnv("MAIL_PROVIDERS", "resend,mailgun")),
		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
		MailgunAPIKey:  getEnv("MAILGUN_API_KEY", ""),
		MailgunDomain:  getEnv("MAILGUN_DOMAIN", ""),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", ""),
		// Must be a sender address verified with the provider
		ContactEmailFrom:  getEnv("CONTACT_EMAIL_FROM", "Kontaktformular <onboarding@resend.dev>"),
		RecaptchaSecret:   getEnv("RECAPTCHA_SECRET", ""),
		RecaptchaMinScore: getEnvFloat("RECAPTCHA_MIN_SCORE", 0.5),
		RecaptchaAction:   getEnv("RECAPTCHA_ACTION", "contact"),
		RateLimitRPS:      getEnvInt("RATE_LIMIT_RPS", 1),
		RateLimitBurst:    getEnvInt("RATE_LIMIT_BURST", 5),
		StaticDir:         getEnv("STATIC_DIR", ""),
	}

	// Missing keys are recoverable: providers without credentials are
	// skipped at dispatch time, so only warn here.
	if cfg.ContactEmailTo == "" {
		log.Println("WARNING: CONTACT_EMAIL_TO is missing. Contact form delivery will fail.")
	}
	if cfg.ResendAPIKey == "" && cfg.MailgunAPIKey == "" {
		log.Println("WARNING: no mail provider credentials configured. Contact form will be unavailable.")
	}
	if cfg.RecaptchaSecret == "" {
		log.Println("INFO: RECAPTCHA_SECRET not set. Bot-score gate disabled.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvFloat returns a float environment variable or fallback if not set/invalid
func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return fallback
}

func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
