package request

import (
	"time"

	"credshare/internal/domain/credential"
)

// FieldSpec describes one requested credential before any secret exists.
type FieldSpec struct {
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Type        credential.CredType `json:"type"`
}

type CreateInput struct {
	Fields       []FieldSpec `json:"fields"`
	SecretPhrase string      `json:"secret_phrase"`
}

type CreateResult struct {
	ID          int    `json:"id"`
	FulfillLink string `json:"fulfill_link"`
}

// Answer is one fulfilled value, plaintext only on the fulfiller's side of
// the call; the service encrypts it before anything is stored.
type Answer struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Item struct {
	ID        int         `json:"id"`
	Status    Status      `json:"status"`
	Fields    []FieldSpec `json:"fields"`
	CreatedAt time.Time   `json:"created_at"`
}

type ListResponse struct {
	Requests []Item `json:"requests"`
	Total    int    `json:"total"`
}

// Item strips a request down to its client-facing view: declared fields and
// status, no key material, no ciphertext.
func (r *Request) Item() Item {
	specs := make([]FieldSpec, len(r.Fields))
	for i, f := range r.Fields {
		specs[i] = FieldSpec{Name: f.Name, Description: f.Description, Type: f.Type}
	}
	return Item{ID: r.ID, Status: r.Status, Fields: specs, CreatedAt: r.CreatedAt}
}
