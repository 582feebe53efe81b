package credential

import (
	"time"
)

type ShareInput struct {
	Type      CredType          `json:"type"`
	Name      string            `json:"name"`
	Fields    map[string]string `json:"fields"`
	ExpiresAt *time.Time        `json:"expires_at,omitempty"`
	MaxViews  *int              `json:"max_views,omitempty"`
}

type ShareResult struct {
	ID        int    `json:"id"`
	ShareLink string `json:"share_link"`
}

type ViewResult struct {
	Expired bool              `json:"is_expired"`
	Type    CredType          `json:"type,omitempty"`
	Name    string            `json:"name,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// MetaUpdate carries the editable metadata; nil fields are left unchanged.
type MetaUpdate struct {
	Name      *string    `json:"name,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	MaxViews  *int       `json:"max_views,omitempty"`
}

type Item struct {
	ID        int        `json:"id"`
	Type      CredType   `json:"type"`
	Name      string     `json:"name"`
	State     State      `json:"state"`
	ViewCount int        `json:"view_count"`
	MaxViews  *int       `json:"max_views,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type ListResponse struct {
	Credentials []Item `json:"credentials"`
	Total       int    `json:"total"`
}
