package identity

import (
	"errors"
	"strings"
)

// Provider error codes surfaced to the service layer.
const (
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeEmailNotFound      = "EMAIL_NOT_FOUND"
	CodeInvalidPassword    = "INVALID_PASSWORD"
	CodeInvalidCredentials = "INVALID_LOGIN_CREDENTIALS"
	CodeInvalidPhoneNumber = "INVALID_PHONE_NUMBER"
	CodeUserDisabled       = "USER_DISABLED"
	CodeTooManyAttempts    = "TOO_MANY_ATTEMPTS_TRY_LATER"
	CodeInvalidIDToken     = "INVALID_ID_TOKEN"
)

// Error is a structured provider failure.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// CodeOf extracts the provider error code from err, or "" if err is not a
// provider error.
func CodeOf(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// codeFromMessage extracts the machine code from a provider error message.
// The provider reports codes as the message itself, occasionally with a
// trailing explanation ("TOO_MANY_ATTEMPTS_TRY_LATER : ...").
func codeFromMessage(message string) string {
	code, _, _ := strings.Cut(message, " :")
	return strings.TrimSpace(code)
}
