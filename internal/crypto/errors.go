package crypto

import (
	"errors"
	"fmt"
)

var (
	// ErrDecryption reports that authenticated decryption failed: wrong or
	// truncated key material, or tampered ciphertext. Decryption never
	// returns plausible-but-wrong plaintext.
	ErrDecryption = errors.New("decryption failed")

	// ErrInvalidPhrase is the ErrDecryption specialization for the sealed
	// private key path, so callers can prompt for the phrase again instead
	// of treating it as ciphertext corruption.
	ErrInvalidPhrase = fmt.Errorf("invalid secret phrase: %w", ErrDecryption)

	// ErrMalformedToken reports a link token that is not valid base64url or
	// does not decode to key material of the expected shape.
	ErrMalformedToken = errors.New("malformed key token")
)
