package errors

import (
	"strings"
	"unicode"
)

// maxHostLength bounds the Url parameter; DNS names cap at 253 and the
// service also accepts a short path after the host.
const maxHostLength = 512

// ValidateHost validates the site a lookup is made for.
//
// The validation rules are intentionally conservative:
//   - No empty hosts
//   - No control characters or whitespace
//   - Maximum length of 512 characters
//
// A scheme and a path are allowed ("https://github.com/about" is valid);
// the service normalizes them itself.
func ValidateHost(host string) error {
	if host == "" {
		return New(ErrCodeInvalidHost, "host cannot be empty")
	}

	if len(host) > maxHostLength {
		return New(ErrCodeInvalidHost, "host too long (max %d characters)", maxHostLength)
	}

	for _, r := range host {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidHost, "host contains invalid characters: %q", host)
		}
	}

	return nil
}

// ValidateCredentials checks that both halves of an access key pair are set.
// The secret itself is never echoed in the returned error.
func ValidateCredentials(accessKeyID, secretAccessKey string) error {
	if strings.TrimSpace(accessKeyID) == "" {
		return New(ErrCodeMissingCredentials, "access key id is not set")
	}
	if strings.TrimSpace(secretAccessKey) == "" {
		return New(ErrCodeMissingCredentials, "secret access key is not set")
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
