package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"credshare/internal/domain/session"
)

type Auth struct {
	session session.Servicer
	log     *slog.Logger
}

func New(session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With(slog.String("component", "auth_middleware")),
	}
}

type contextKey string

const ViewerKey contextKey = "viewer"

// Middleware validates the bearer token and puts the resolved viewer
// into the request context.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token := ctx.Header("Authorization")

		if len(token) < 7 || token[:7] != "Bearer " {
			a.unauthorized(ctx, "missing bearer token")
			return
		}

		viewer, err := a.session.Validate(ctx.Context(), token[7:])
		if err != nil {
			a.log.Debug("session validate failed", slog.String("error", err.Error()))
			a.unauthorized(ctx, "session validate failed")
			return
		}

		newCtx := context.WithValue(ctx.Context(), ViewerKey, viewer)
		next(huma.WithContext(ctx, newCtx))
	}
}

func (a *Auth) unauthorized(ctx huma.Context, reason string) {
	a.log.Debug("rejecting request", slog.String("reason", reason))
	ctx.SetStatus(http.StatusUnauthorized)
	ctx.SetHeader("Content-Type", "application/json")

	if err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
		"error": "Unauthorized",
	}); err != nil {
		a.log.Error("write unauthorized response", slog.String("error", err.Error()))
	}
}

// GetViewer extracts the authenticated viewer placed by Middleware.
func GetViewer(ctx context.Context) (session.Viewer, bool) {
	viewer, ok := ctx.Value(ViewerKey).(session.Viewer)
	return viewer, ok
}

// WithViewer injects a viewer directly, bypassing token validation.
func WithViewer(ctx context.Context, viewer session.Viewer) context.Context {
	return context.WithValue(ctx, ViewerKey, viewer)
}
