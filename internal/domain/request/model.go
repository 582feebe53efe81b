package request

import (
	"time"

	"credshare/internal/domain/credential"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusFulfilled Status = "fulfilled"
	StatusRejected  Status = "rejected"
)

// Field is one requested credential. EncryptedValue is empty until
// fulfillment, then holds ciphertext under the request's public key; the
// server never holds anything it could decrypt it with.
type Field struct {
	Name           string              `json:"name"`
	Description    string              `json:"description,omitempty"`
	Type           credential.CredType `json:"type"`
	EncryptedValue []byte              `json:"-"`
}

// Request is a credentials request. EncryptedPrivateKey is the request's
// private key sealed under the requester's secret phrase; neither the
// plaintext key nor the phrase ever reaches the store. Status moves forward
// exactly once: pending → fulfilled or pending → rejected.
// PublicKeyFingerprint is the digest of the request's public key: the key
// itself lives only in the fulfill link, the fingerprint lets the server
// check that a caller actually holds that link.
type Request struct {
	ID                   int       `json:"id"`
	WorkspaceID          int       `json:"workspace_id"`
	RequesterID          int       `json:"requester_id"`
	Status               Status    `json:"status"`
	Fields               []Field   `json:"fields"`
	EncryptedPrivateKey  []byte    `json:"-"`
	PublicKeyFingerprint []byte    `json:"-"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
