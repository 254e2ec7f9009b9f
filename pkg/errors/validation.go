package errors

import (
	"strings"
	"unicode"
)

// ValidateTreePath validates a Portage tree root path for safety.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - Maximum length of 500 characters
//
// Existence is checked separately by the tree walker; this only rejects
// strings that could never name a directory.
func ValidateTreePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "tree path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "tree path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "tree path contains invalid characters")
		}
	}

	return nil
}

// ValidateTarget validates a scan target of the form <hostname>:<portspec>.
// Port specification syntax is checked separately by the portscan package;
// this only splits and sanity-checks the two halves.
func ValidateTarget(target string) error {
	if target == "" {
		return New(ErrCodeInvalidTarget, "target cannot be empty")
	}

	host, spec, ok := strings.Cut(target, ":")
	if !ok {
		return New(ErrCodeInvalidTarget, "target must be <hostname>:<port>, got %q", target)
	}
	if host == "" {
		return New(ErrCodeInvalidTarget, "target hostname cannot be empty")
	}
	if spec == "" {
		return New(ErrCodeInvalidTarget, "target port specification cannot be empty")
	}

	for _, r := range target {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidTarget, "target contains invalid characters")
		}
	}

	return nil
}

// ValidateAddress validates an email address used for report filtering.
// Full RFC 5322 parsing is deliberately out of scope; maintainer addresses
// in metadata are plain mailbox strings.
func ValidateAddress(address string) error {
	if address == "" {
		return New(ErrCodeInvalidInput, "address cannot be empty")
	}

	if !strings.Contains(address, "@") {
		return New(ErrCodeInvalidInput, "address must contain '@': %q", address)
	}

	for _, r := range address {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "address contains invalid characters")
		}
	}

	return nil
}
