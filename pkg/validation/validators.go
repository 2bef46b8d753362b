package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Deliberately loose: one or more non-space-non-@ characters, an "@",
// a domain part with at least one dot. Stricter RFC checks reject real
// addresses more often than they stop abuse.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("contact_email", ContactEmail)
}

// ContactEmail validates an email address against the simple pattern
// used by the public contact form.
func ContactEmail(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}
