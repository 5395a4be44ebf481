package util

import (
	"fmt"
	"regexp"
	"strings"
)

// E.164 phone number regex: leading +, nonzero country code digit, up to 15
// digits total.
var e164Regex = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// ValidatePhoneNumber validates that a string is an E.164 phone number.
func ValidatePhoneNumber(value string) error {
	value = strings.TrimSpace(value)

	if value == "" {
		return fmt.Errorf("phone number cannot be empty")
	}

	if !e164Regex.MatchString(value) {
		return fmt.Errorf("phone number must be in E.164 format (e.g., +1234567890)")
	}

	return nil
}

// IsE164 checks if a string is a valid E.164 phone number without returning
// an error.
func IsE164(value string) bool {
	return ValidatePhoneNumber(value) == nil
}
