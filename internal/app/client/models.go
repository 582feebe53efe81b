package client

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Wire models mirroring the server API. Kept as plain structs so the client
// binary does not depend on server-internal packages.

type ShareRequest struct {
	Type      string            `json:"type"`
	Name      string            `json:"name"`
	Fields    map[string]string `json:"fields"`
	ExpiresAt *time.Time        `json:"expires_at,omitempty"`
	MaxViews  *int              `json:"max_views,omitempty"`
}

type ShareResponse struct {
	ID        int    `json:"id"`
	ShareLink string `json:"share_link"`
}

type ViewResponse struct {
	IsExpired bool              `json:"is_expired"`
	Type      string            `json:"type,omitempty"`
	Name      string            `json:"name,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

type CredentialItem struct {
	ID        int        `json:"id"`
	Type      string     `json:"type"`
	Name      string     `json:"name"`
	State     string     `json:"state"`
	ViewCount int        `json:"view_count"`
	MaxViews  *int       `json:"max_views,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type CredentialList struct {
	Credentials []CredentialItem `json:"credentials"`
	Total       int              `json:"total"`
}

type RequestFieldSpec struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
}

type CreateRequestRequest struct {
	Fields       []RequestFieldSpec `json:"fields"`
	SecretPhrase string             `json:"secret_phrase"`
}

type CreateRequestResponse struct {
	ID          int    `json:"id"`
	FulfillLink string `json:"fulfill_link"`
}

type Answer struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type FulfillRequestRequest struct {
	Token   string   `json:"token"`
	Answers []Answer `json:"answers"`
}

// TokenRequest carries the link's key token for endpoints where the token
// is the authority (describe, reject).
type TokenRequest struct {
	Token string `json:"token"`
}

type RevealRequestRequest struct {
	SecretPhrase string `json:"secret_phrase"`
}

type RevealRequestResponse struct {
	Answers []Answer `json:"answers"`
}

type RequestItem struct {
	ID        int                `json:"id"`
	Status    string             `json:"status"`
	Fields    []RequestFieldSpec `json:"fields"`
	CreatedAt time.Time          `json:"created_at"`
}

type RequestList struct {
	Requests []RequestItem `json:"requests"`
	Total    int           `json:"total"`
}

type TypeField struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Sensitive bool   `json:"sensitive"`
	Required  bool   `json:"required"`
}

type TypeInfo struct {
	Type   string      `json:"type"`
	Fields []TypeField `json:"fields"`
}

type TypeList struct {
	Types []TypeInfo `json:"types"`
}

// ParseLink splits a share or fulfill link into its ID and the key token
// carried in the fragment. Accepts both full URLs and bare "/s/{id}#{token}"
// paths.
func ParseLink(link string) (int, string, error) {
	base, token, ok := strings.Cut(link, "#")
	if !ok || token == "" {
		return 0, "", fmt.Errorf("link carries no token fragment")
	}

	idx := strings.LastIndex(base, "/")
	if idx < 0 {
		return 0, "", fmt.Errorf("malformed link")
	}

	id, err := strconv.Atoi(base[idx+1:])
	if err != nil {
		return 0, "", fmt.Errorf("malformed link: %w", err)
	}

	return id, token, nil
}
