package errors

import (
	"strings"
	"unicode"
)

// MaxNodeIDLength bounds node and edge identifiers.
const MaxNodeIDLength = 256

// ValidateNodeID validates a node or edge identifier.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - No leading or trailing whitespace
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "identifier cannot be empty")
	}

	if len(id) > MaxNodeIDLength {
		return New(ErrCodeInvalidNodeID, "identifier too long (max %d characters)", MaxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNodeID, "identifier %q contains control characters", id)
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidNodeID, "identifier %q has surrounding whitespace", id)
	}

	return nil
}

// ValidateSpacing validates a spacing or offset value used by layout and
// placement. Values must be positive and finite.
func ValidateSpacing(name string, v float64) error {
	if v != v || v <= 0 || v > 1e9 {
		return New(ErrCodeInvalidInput, "%s must be a positive number, got %v", name, v)
	}
	return nil
}
