// Package validation provides small composable validators for form input.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validator validates a string value and returns an error message,
// or "" when the value is valid.
type Validator func(v string) string

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Required validates that the value is non-empty after trimming.
func Required(field string) Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return fmt.Sprintf("%s is required", field)
		}
		return ""
	}
}

// RequiredRange validates that the value is non-empty and its length is
// within [minimum, maximum] runes.
func RequiredRange(field string, minimum, maximum int) Validator {
	return func(v string) string {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return fmt.Sprintf("%s is required", field)
		}
		n := utf8.RuneCountInString(trimmed)
		if n < minimum || n > maximum {
			return fmt.Sprintf("%s must be between %d and %d characters", field, minimum, maximum)
		}
		return ""
	}
}

// Email validates that the value looks like an email address.
func Email(field string) Validator {
	return func(v string) string {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return fmt.Sprintf("%s is required", field)
		}
		if !emailPattern.MatchString(trimmed) {
			return fmt.Sprintf("%s must be a valid email address", field)
		}
		return ""
	}
}

// Password validates a password meets the minimum length.
func Password(field string, minimum int) Validator {
	return func(v string) string {
		if v == "" {
			return fmt.Sprintf("%s is required", field)
		}
		if utf8.RuneCountInString(v) < minimum {
			return fmt.Sprintf("%s must be at least %d characters", field, minimum)
		}
		return ""
	}
}

// OneOf validates that the value is one of the allowed values.
func OneOf(field string, allowed ...string) Validator {
	return func(v string) string {
		for _, a := range allowed {
			if v == a {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", "))
	}
}

// Optional wraps a validator to skip validation when the value is empty.
func Optional(validator Validator) Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return ""
		}
		return validator(v)
	}
}

// Apply runs field validators against form values, returning a map of
// field name to the first error message for that field.
func Apply(values map[string]string, rules map[string][]Validator) map[string]string {
	errs := make(map[string]string)
	for field, validators := range rules {
		for _, validate := range validators {
			if msg := validate(values[field]); msg != "" {
				errs[field] = msg
				break
			}
		}
	}
	return errs
}
