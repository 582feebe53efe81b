package credential

import (
	"errors"
)

var (
	// ErrNotFound: the credential ID does not resolve.
	ErrNotFound = errors.New("credential not found")
	// ErrInert: the credential exists but is expired or view-exhausted.
	// Never conflated with ErrNotFound so callers can say "expired" instead
	// of "never existed".
	ErrInert = errors.New("credential is inert")
	// ErrNotOwner: metadata edits, expiry and deletion are owner-only.
	ErrNotOwner = errors.New("credential belongs to another owner")
	// ErrInvalidPayload: plaintext fields do not match the type's schema.
	ErrInvalidPayload = errors.New("invalid credential payload")
)
