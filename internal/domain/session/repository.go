package session

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, viewer Viewer, tokenHash string, expiresAt time.Time) error
	Validate(ctx context.Context, tokenHash string) (Viewer, error)
}
