package credential

import (
	"time"
)

// Credential is a single shared secret. EncryptedData and PrivateKeyShare
// are immutable after creation; only descriptive metadata and the disclosure
// limits may change, and only through the owner path. The matching public
// share exists solely inside the share link and is never persisted.
type Credential struct {
	ID              int        `json:"id"`
	WorkspaceID     int        `json:"workspace_id"`
	OwnerID         int        `json:"owner_id"`
	Type            CredType   `json:"type"`
	Name            string     `json:"name"`
	EncryptedData   []byte     `json:"-"`
	PrivateKeyShare []byte     `json:"-"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	MaxViews        *int       `json:"max_views,omitempty"`
	ViewCount       int        `json:"view_count"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
