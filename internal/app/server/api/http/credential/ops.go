package credential

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-list",
		Method:      http.MethodGet,
		Path:        "/api/credentials",
		Summary:     "List workspace credentials",
		Description: "Returns metadata and disclosure state for every credential in the workspace. Plaintext is never included.",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) shareOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-share",
		Method:      http.MethodPost,
		Path:        "/api/credentials",
		Summary:     "Share a credential",
		Description: "Encrypts the credential with a one-off key and returns a share link. The key half embedded in the link is not stored.",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-find",
		Method:      http.MethodGet,
		Path:        "/api/credentials/{id}",
		Summary:     "Get credential metadata",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateMetaOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-update-meta",
		Method:      http.MethodPatch,
		Path:        "/api/credentials/{id}",
		Summary:     "Update credential metadata",
		Description: "Edits name, expiry or view quota. Encrypted payload and key shares are immutable.",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) expireOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-expire",
		Method:      http.MethodPost,
		Path:        "/api/credentials/{id}/expire",
		Summary:     "Expire a credential",
		Description: "Makes the credential permanently inert. Outstanding share links stop working immediately.",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-delete",
		Method:      http.MethodDelete,
		Path:        "/api/credentials/{id}",
		Summary:     "Delete a credential",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) viewOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-view",
		Method:      http.MethodPost,
		Path:        "/api/credentials/{id}/view",
		Summary:     "View a shared credential",
		Description: "Consumes one view and discloses the plaintext. The share token comes from the link fragment and never reaches the server in a URL.",
		Tags:        []string{"credentials"},
		Middlewares: h.public,
	}
}

func (h *Handler) typesOp() huma.Operation {
	return huma.Operation{
		OperationID: "credential-types",
		Method:      http.MethodGet,
		Path:        "/api/credential-types",
		Summary:     "List credential types",
		Description: "Returns the field schema of every registered credential type.",
		Tags:        []string{"credentials"},
		Middlewares: h.public,
	}
}
