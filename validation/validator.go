// Package validation holds the payload schemas of the HTTP surface.
// Checks report every violation at once so clients can display the full
// list instead of fixing one field per round trip.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RegisterPayload is the body of POST /participants.
type RegisterPayload struct {
	Name string `json:"name" validate:"required"`
}

// MessagePayload is the body of POST /messages. Type is restricted to what
// participants may post; status messages are system-generated only.
type MessagePayload struct {
	To   string `json:"to" validate:"required"`
	Text string `json:"text" validate:"required"`
	Type string `json:"type" validate:"required,oneof=message private_message"`
}

// Check runs the schema against payload and returns every violation as a
// display-ready message. An empty result means the payload is valid.
func Check(payload any) []string {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	valErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(valErrs))
	for _, fe := range valErrs {
		messages = append(messages, describe(fe))
	}
	return messages
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " must be a non-empty string"
	case "oneof":
		return field + " must be one of [" + fe.Param() + "]"
	default:
		return field + " is invalid"
	}
}
