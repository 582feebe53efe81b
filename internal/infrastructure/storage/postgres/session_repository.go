package postgres

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"credshare/internal/domain/session"
)

type SessionRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewSessionRepository(db *Storage, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		db:  db,
		log: log,
	}
}

func (r *SessionRepository) Create(ctx context.Context, viewer session.Viewer, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.Pool().Exec(ctx,
		`INSERT INTO sessions (user_id, workspace_id, token_hash, expires_at)
         VALUES ($1, $2, decode($3, 'hex'), $4)`,
		viewer.UserID, viewer.WorkspaceID, tokenHash, expiresAt)
	return err
}

func (r *SessionRepository) Validate(ctx context.Context, tokenHash string) (session.Viewer, error) {
	var viewer session.Viewer
	err := r.db.Pool().QueryRow(ctx,
		`SELECT user_id, workspace_id FROM sessions
         WHERE token_hash = decode($1, 'hex') AND expires_at > NOW()`,
		tokenHash).Scan(&viewer.UserID, &viewer.WorkspaceID)

	if err != nil {
		return session.Viewer{}, fmt.Errorf("invalid session")
	}
	return viewer, nil
}
