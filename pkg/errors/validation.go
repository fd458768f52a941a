package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxPathLength bounds article paths accepted from users and the HTTP API.
const maxPathLength = 1024

// maxQueryLength bounds search queries.
const maxQueryLength = 512

// ValidateArticlePath validates an archive article path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 bytes
//   - Must be valid UTF-8
//   - No null bytes or control characters
//   - No backslashes
func ValidateArticlePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "article path cannot be empty")
	}
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "article path too long (max %d characters)", maxPathLength)
	}
	if !utf8.ValidString(path) {
		return New(ErrCodeInvalidPath, "article path is not valid UTF-8")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "article path contains invalid control characters")
		}
	}
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "article path cannot contain backslashes")
	}
	return nil
}

// ValidateQuery validates a full-text search query.
// Blank queries are rejected; callers treat them as a no-op.
func ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return New(ErrCodeInvalidQuery, "search query cannot be empty")
	}
	if len(query) > maxQueryLength {
		return New(ErrCodeInvalidQuery, "search query too long (max %d characters)", maxQueryLength)
	}
	if strings.ContainsRune(query, '\x00') {
		return New(ErrCodeInvalidQuery, "search query contains a null byte")
	}
	return nil
}
