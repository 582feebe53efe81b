package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) healthCheckOp() huma.Operation {
	return huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Liveness check",
		Description: "Reports that the credential sharing API is up. The CLI pings this before opening a session.",
		Tags:        []string{"health"},
		Middlewares: h.middleware,
	}
}
