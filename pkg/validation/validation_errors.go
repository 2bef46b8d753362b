package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// fieldMessages maps struct field + tag to user-facing German messages.
// One entry per rule keeps the wording in a single place instead of
// scattered through the handler variants.
var fieldMessages = map[string]map[string]string{
	"FirstName": {
		"required": "Bitte geben Sie Ihren Vornamen an.",
	},
	"LastName": {
		"required": "Bitte geben Sie Ihren Nachnamen an.",
	},
	"Email": {
		"required":      "Bitte geben Sie Ihre E-Mail-Adresse an.",
		"contact_email": "Bitte geben Sie eine gültige E-Mail-Adresse an.",
	},
	"Message": {
		"required": "Bitte geben Sie eine Nachricht ein.",
		"min":      "Ihre Nachricht muss mindestens 10 Zeichen lang sein.",
	},
	"ConsentGiven": {
		"required": "Bitte stimmen Sie der Datenschutzerklärung zu.",
	},
}

// FormatValidationErrors converts validator.ValidationErrors to
// user-friendly messages. All violations are reported together, in
// struct field order, so the client can show the complete list at once.
func FormatValidationErrors(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		if byTag, ok := fieldMessages[e.Field()]; ok {
			if msg, ok := byTag[e.Tag()]; ok {
				messages = append(messages, msg)
				continue
			}
		}
		messages = append(messages, fmt.Sprintf("Ungültige Eingabe im Feld %s.", e.Field()))
	}
	return messages
}
