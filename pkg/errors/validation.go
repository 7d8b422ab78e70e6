package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidatePath validates a file path given on the command line or in a
// config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateOrigin validates the public origin verification links are built on.
// The origin must be an absolute http(s) URL without query or fragment.
// A trailing slash is allowed and trimmed by the badge emitter.
func ValidateOrigin(origin string) error {
	if err := ValidateURL(origin); err != nil {
		return New(ErrCodeInvalidOrigin, "invalid origin %q: %s", origin, UserMessage(err))
	}

	u, err := url.Parse(origin)
	if err != nil {
		return Wrap(ErrCodeInvalidOrigin, err, "invalid origin %q", origin)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidOrigin, "origin %q has no host", origin)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return New(ErrCodeInvalidOrigin, "origin %q must not carry a query or fragment", origin)
	}
	return nil
}

// ValidateAssetBase validates the base URL relative asset references are
// joined to. An empty base is allowed: relative references then resolve
// against the serving host.
func ValidateAssetBase(base string) error {
	if base == "" {
		return nil
	}
	if err := ValidateURL(base); err != nil {
		return New(ErrCodeInvalidConfig, "invalid asset base %q: %s", base, UserMessage(err))
	}
	return nil
}
