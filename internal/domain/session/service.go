package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

const sessionTTL = 24 * time.Hour

// Viewer is the authenticated principal the core consumes: an opaque user ID
// scoped to a workspace. Account and workspace management live elsewhere;
// this service only resolves tokens.
type Viewer struct {
	UserID      int
	WorkspaceID int
}

type Servicer interface {
	Create(ctx context.Context, viewer Viewer) (string, error)
	Validate(ctx context.Context, token string) (Viewer, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

func (s *Service) Create(ctx context.Context, viewer Viewer) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	token := base64.URLEncoding.EncodeToString(tokenBytes)
	tokenHash := sha256.Sum256([]byte(token))

	expiresAt := time.Now().Add(sessionTTL)
	if err := s.repo.Create(ctx, viewer, hex.EncodeToString(tokenHash[:]), expiresAt); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	return token, nil
}

// Validate resolves a bearer token to its viewer. Only the SHA-256 of the
// token is ever compared against the store.
func (s *Service) Validate(ctx context.Context, token string) (Viewer, error) {
	tokenHash := sha256.Sum256([]byte(token))

	return s.repo.Validate(ctx, hex.EncodeToString(tokenHash[:]))
}
