package request

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "requests-list",
		Method:      http.MethodGet,
		Path:        "/api/requests",
		Summary:     "List workspace requests",
		Tags:        []string{"requests"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "requests-create",
		Method:      http.MethodPost,
		Path:        "/api/requests",
		Summary:     "Create a credential request",
		Description: "Generates a one-off keypair, seals the private key under the secret phrase and returns a fulfill link carrying the public key.",
		Tags:        []string{"requests"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "requests-find",
		Method:      http.MethodGet,
		Path:        "/api/requests/{id}",
		Summary:     "Get request status",
		Tags:        []string{"requests"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) revealOp() huma.Operation {
	return huma.Operation{
		OperationID: "requests-reveal",
		Method:      http.MethodPost,
		Path:        "/api/requests/{id}/reveal",
		Summary:     "Reveal fulfilled answers",
		Description: "Unseals the private key with the secret phrase and decrypts the answers. Only the requester can call this.",
		Tags:        []string{"requests"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "requests-delete",
		Method:      http.MethodDelete,
		Path:        "/api/requests/{id}",
		Summary:     "Delete a request",
		Tags:        []string{"requests"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) fulfillOp() huma.Operation {
	return huma.Operation{
		OperationID: "requests-fulfill",
		Method:      http.MethodPost,
		Path:        "/api/requests/{id}/fulfill",
		Summary:     "Fulfill a credential request",
		Description: "Encrypts the answers under the request's public key. The key token comes from the link fragment; the server never stores it.",
		Tags:        []string{"requests"},
		Middlewares: h.public,
	}
}

func (h *Handler) rejectOp() huma.Operation {
	return huma.Operation{
		OperationID: "requests-reject",
		Method:      http.MethodPost,
		Path:        "/api/requests/{id}/reject",
		Summary:     "Reject a credential request",
		Description: "Declines the request. Requires the key token from the link: a bare request ID carries no authority.",
		Tags:        []string{"requests"},
		Middlewares: h.public,
	}
}

func (h *Handler) describeOp() huma.Operation {
	return huma.Operation{
		OperationID: "requests-describe",
		Method:      http.MethodPost,
		Path:        "/api/requests/{id}/fields",
		Summary:     "Describe a request for its fulfillment page",
		Description: "Returns the declared fields and status. Authorized by the key token from the link, not by a session.",
		Tags:        []string{"requests"},
		Middlewares: h.public,
	}
}
