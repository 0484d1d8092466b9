package model

import (
	"net/mail"
	"strings"

	apperrors "github.com/voiceforge/voiceforge/internal/errors"
)

func errValidation(field, message string) error {
	return apperrors.ValidationField(field, message)
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return errValidation("email", "email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errValidation("email", "email is not valid")
	}
	return nil
}
