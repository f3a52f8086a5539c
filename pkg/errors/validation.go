package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds resource identifiers placed in request paths.
const maxIDLength = 64

// ValidateResourceID validates a form or dynamic-content identifier.
// Identifiers end up as a path segment of the remote URL, so anything that
// could change the path is rejected:
//   - No empty identifiers
//   - No control characters or whitespace
//   - No path separators, query or fragment markers
//   - Maximum length of 64 characters
func ValidateResourceID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "resource id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "resource id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidID, "resource id contains invalid characters")
		}
	}

	if strings.ContainsAny(id, "/\\?#%") || strings.Contains(id, "..") {
		return New(ErrCodeInvalidID, "resource id contains invalid characters: %q", id)
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidURL, "URL must use http or https scheme")
	}

	return nil
}
