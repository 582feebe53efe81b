package credential

import (
	"time"

	"credshare/internal/domain/credential"
)

type shareInput struct {
	Body shareRequest
}

type shareRequest struct {
	Type      credential.CredType `json:"type" doc:"Credential type, one of password, api_key, note, card"`
	Name      string              `json:"name" doc:"Display name" minLength:"1"`
	Fields    map[string]string   `json:"fields" doc:"Credential fields, keyed by field name"`
	ExpiresAt *time.Time          `json:"expires_at,omitempty" doc:"Absolute expiry, RFC 3339"`
	MaxViews  *int                `json:"max_views,omitempty" doc:"View quota, at least 1" minimum:"1"`
}

type shareOutput struct {
	Body credential.ShareResult
}

type viewInput struct {
	ID   int `path:"id" example:"1" doc:"Credential ID"`
	Body viewRequest
}

type viewRequest struct {
	Token string `json:"token" doc:"Share token carried in the link fragment" minLength:"1"`
}

type viewOutput struct {
	Body credential.ViewResult
}

type findInput struct {
	ID int `path:"id" example:"1" doc:"Credential ID"`
}

type findOutput struct {
	Body credential.Item
}

type listOutput struct {
	Body credential.ListResponse
}

type updateMetaInput struct {
	ID   int `path:"id" example:"1" doc:"Credential ID"`
	Body credential.MetaUpdate
}

type statusOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status"`
}

type typesOutput struct {
	Body typesResponse
}

type typesResponse struct {
	Types []typeInfo `json:"types"`
}

type typeInfo struct {
	Type   credential.CredType    `json:"type"`
	Fields []credential.FieldSpec `json:"fields"`
}
