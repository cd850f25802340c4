package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validator is a function that validates a string value and returns an error message if invalid.
type Validator func(v string) string

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Ghana MSISDN in international format without the plus: 233 followed
	// by nine digits.
	ghanaPhoneRe = regexp.MustCompile(`^233\d{9}$`)
	otpRe        = regexp.MustCompile(`^\d{4,8}$`)
)

// Required validates that a field is not empty and does not exceed maxLen characters.
// Uses rune count for proper Unicode support.
func Required(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// Optional validates that an optional field does not exceed maxLen characters if provided.
func Optional(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// Email validates that a field is a plausible email address.
func Email(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if !emailRe.MatchString(v) {
			return fieldName + " must be a valid email address."
		}
		return ""
	}
}

// GhanaPhone validates that a field is a Ghana phone number in
// 233XXXXXXXXX format.
func GhanaPhone(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if !ghanaPhoneRe.MatchString(v) {
			return fieldName + " must be in the format 233XXXXXXXXX."
		}
		return ""
	}
}

// EmailOrGhanaPhone validates that a field is either a valid email or a
// Ghana phone number.
func EmailOrGhanaPhone(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if emailRe.MatchString(v) || ghanaPhoneRe.MatchString(v) {
			return ""
		}
		return fieldName + " must be a valid email address or a phone number in the format 233XXXXXXXXX."
	}
}

// Password validates password complexity: at least 8 characters with an
// uppercase letter, a lowercase letter, a digit, and a special character.
func Password(fieldName string) Validator {
	return func(v string) string {
		if v == "" {
			return fieldName + " is required."
		}
		if utf8.RuneCountInString(v) < 8 {
			return fieldName + " must be at least 8 characters."
		}
		var hasUpper, hasLower, hasDigit, hasSpecial bool
		for _, r := range v {
			switch {
			case unicode.IsUpper(r):
				hasUpper = true
			case unicode.IsLower(r):
				hasLower = true
			case unicode.IsDigit(r):
				hasDigit = true
			default:
				hasSpecial = true
			}
		}
		if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
			return fieldName + " must contain an uppercase letter, a lowercase letter, a digit, and a special character."
		}
		return ""
	}
}

// OTP validates a numeric one-time code.
func OTP(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		if !otpRe.MatchString(v) {
			return fieldName + " must be a numeric code."
		}
		return ""
	}
}

// First runs the value through the validators in order and returns the
// first violated rule's message, or "" when all pass.
func First(value string, validators ...Validator) string {
	for _, v := range validators {
		if msg := v(value); msg != "" {
			return msg
		}
	}
	return ""
}

// FieldValidator provides a fluent API for validating multiple fields.
type FieldValidator struct {
	errors map[string]string
	order  []string
}

// New creates a new FieldValidator instance.
func New() *FieldValidator {
	return &FieldValidator{errors: make(map[string]string)}
}

// Validate validates a field with one or more validators.
// It stops at the first error for each field.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	for _, v := range validators {
		if err := v(value); err != "" {
			if _, seen := fv.errors[field]; !seen {
				fv.order = append(fv.order, field)
			}
			fv.errors[field] = err
			break // Stop at first error per field
		}
	}
	return fv
}

// Errors returns the accumulated validation errors.
func (fv *FieldValidator) Errors() map[string]string {
	return fv.errors
}

// FirstError returns the first violated field's message in validation
// order, or "" when everything passed.
func (fv *FieldValidator) FirstError() string {
	if len(fv.order) == 0 {
		return ""
	}
	return fv.errors[fv.order[0]]
}
