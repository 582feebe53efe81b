package crypto

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Link tokens are transport encoding only (base64url, unpadded); they carry
// no cryptographic property of their own. Security comes from what is inside
// them never being persisted server-side.

// EncodeKeyToken encodes key material as a URL-safe token.
func EncodeKeyToken(key []byte) string {
	return base64.RawURLEncoding.EncodeToString(key)
}

// DecodeShareToken decodes a share-link token and validates that it carries
// exactly one symmetric key share for this suite. Anything else is
// ErrMalformedToken.
func (s *Suite) DecodeShareToken(token string) ([]byte, error) {
	key, err := decodeToken(token)
	if err != nil {
		return nil, err
	}
	if len(key) != s.cfg.KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrMalformedToken, len(key), s.cfg.KeySize)
	}
	return key, nil
}

// DecodePublicKeyToken decodes a fulfillment-link token and validates that
// it parses as a public key of the suite's scheme.
func (s *Suite) DecodePublicKeyToken(token string) ([]byte, error) {
	der, err := decodeToken(token)
	if err != nil {
		return nil, err
	}
	if _, err := parsePublicKey(der); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return der, nil
}

func decodeToken(token string) ([]byte, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrMalformedToken)
	}
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return decoded, nil
}

// ShareLink composes the credential share URL. The public share rides in the
// URL fragment so it never reaches server access logs. Same inputs always
// produce the same URL.
func ShareLink(baseURL string, credentialID int, publicShare []byte) string {
	return fmt.Sprintf("%s/s/%d#%s",
		strings.TrimRight(baseURL, "/"), credentialID, EncodeKeyToken(publicShare))
}

// FulfillLink composes the request fulfillment URL carrying the request's
// public key. The public key exists only here, never in the store.
func FulfillLink(baseURL string, requestID int, publicKeyDER []byte) string {
	return fmt.Sprintf("%s/r/%d#%s",
		strings.TrimRight(baseURL, "/"), requestID, EncodeKeyToken(publicKeyDER))
}
