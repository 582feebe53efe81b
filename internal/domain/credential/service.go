package credential

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"credshare/internal/crypto"

	"golang.org/x/exp/slog"
)

// Servicer defines the business logic for credential sharing and disclosure.
type Servicer interface {
	Share(ctx context.Context, ownerID, workspaceID int, in ShareInput) (ShareResult, error)
	View(ctx context.Context, credentialID int, shareToken string) (ViewResult, error)
	Get(ctx context.Context, ownerID, credentialID int) (*Credential, error)
	List(ctx context.Context, workspaceID int) (ListResponse, error)
	UpdateMeta(ctx context.Context, ownerID, credentialID int, in MetaUpdate) error
	Expire(ctx context.Context, ownerID, credentialID int) error
	Delete(ctx context.Context, ownerID, credentialID int) error
}

type Service struct {
	repo    Repository
	suite   *crypto.Suite
	baseURL string
	log     *slog.Logger
	now     func() time.Time
}

func NewService(repo Repository, suite *crypto.Suite, baseURL string, log *slog.Logger) Servicer {
	return &Service{
		repo:    repo,
		suite:   suite,
		baseURL: baseURL,
		log:     log.With("component", "credential_service"),
		now:     time.Now,
	}
}

// Share encrypts the plaintext fields with a fresh one-off key and persists
// ciphertext plus the private key share. The public share leaves this call
// only inside the returned link.
func (s *Service) Share(ctx context.Context, ownerID, workspaceID int, in ShareInput) (ShareResult, error) {
	if err := in.Type.ValidatePayload(in.Fields); err != nil {
		return ShareResult{}, err
	}
	if in.ExpiresAt != nil && !in.ExpiresAt.After(s.now()) {
		return ShareResult{}, fmt.Errorf("%w: expiry must be in the future", ErrInvalidPayload)
	}
	if in.MaxViews != nil && *in.MaxViews < 1 {
		return ShareResult{}, fmt.Errorf("%w: max views must be at least 1", ErrInvalidPayload)
	}

	plaintext, err := json.Marshal(in.Fields)
	if err != nil {
		return ShareResult{}, fmt.Errorf("marshal fields: %w", err)
	}

	split, ciphertext, err := s.suite.EncryptCredential(plaintext)
	if err != nil {
		s.log.Error("failed to encrypt credential", "owner_id", ownerID, "error", err)
		return ShareResult{}, fmt.Errorf("encrypt credential: %w", err)
	}

	cred := &Credential{
		WorkspaceID:     workspaceID,
		OwnerID:         ownerID,
		Type:            in.Type,
		Name:            in.Name,
		EncryptedData:   ciphertext,
		PrivateKeyShare: split.PrivateShare,
		ExpiresAt:       in.ExpiresAt,
		MaxViews:        in.MaxViews,
	}

	id, err := s.repo.Create(ctx, cred)
	if err != nil {
		s.log.Error("failed to create credential", "owner_id", ownerID, "type", in.Type, "error", err)
		return ShareResult{}, fmt.Errorf("create credential: %w", err)
	}

	s.log.Info("credential shared", "credential_id", id, "owner_id", ownerID, "type", in.Type)

	return ShareResult{
		ID:        id,
		ShareLink: crypto.ShareLink(s.baseURL, id, split.PublicShare),
	}, nil
}

// View discloses a credential to a link holder. The view is claimed in the
// store before any decryption happens, so a one-view credential can never be
// disclosed twice, not even to two concurrent viewers.
func (s *Service) View(ctx context.Context, credentialID int, shareToken string) (ViewResult, error) {
	publicShare, err := s.suite.DecodeShareToken(shareToken)
	if err != nil {
		return ViewResult{}, err
	}

	cred, err := s.repo.ConsumeView(ctx, credentialID, s.now())
	if err != nil {
		if errors.Is(err, ErrInert) {
			return ViewResult{Expired: true}, nil
		}
		return ViewResult{}, err
	}

	plaintext, err := s.suite.DecryptCredential(cred.EncryptedData, publicShare, cred.PrivateKeyShare)
	if err != nil {
		s.log.Warn("credential decryption refused", "credential_id", credentialID, "error", err)
		return ViewResult{}, err
	}

	var fields map[string]string
	if err := json.Unmarshal(plaintext, &fields); err != nil {
		return ViewResult{}, fmt.Errorf("unmarshal fields: %w", err)
	}

	s.log.Info("credential disclosed", "credential_id", credentialID, "view_count", cred.ViewCount)

	return ViewResult{
		Type:   cred.Type,
		Name:   cred.Name,
		Fields: fields,
	}, nil
}

// Get returns a credential's metadata to its owner. Plaintext is never part
// of this path; the server cannot produce it.
func (s *Service) Get(ctx context.Context, ownerID, credentialID int) (*Credential, error) {
	cred, err := s.repo.Get(ctx, credentialID)
	if err != nil {
		return nil, err
	}
	if cred.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return cred, nil
}

func (s *Service) List(ctx context.Context, workspaceID int) (ListResponse, error) {
	creds, err := s.repo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		s.log.Error("failed to list credentials", "workspace_id", workspaceID, "error", err)
		return ListResponse{}, fmt.Errorf("list credentials: %w", err)
	}

	now := s.now()
	items := make([]Item, len(creds))
	for i, c := range creds {
		items[i] = Item{
			ID:        c.ID,
			Type:      c.Type,
			Name:      c.Name,
			State:     Evaluate(&c, now),
			ViewCount: c.ViewCount,
			MaxViews:  c.MaxViews,
			ExpiresAt: c.ExpiresAt,
			CreatedAt: c.CreatedAt,
		}
	}

	return ListResponse{Credentials: items, Total: len(items)}, nil
}

// UpdateMeta edits descriptive metadata and disclosure limits. Key material
// is immutable; the repository never writes those columns after creation.
func (s *Service) UpdateMeta(ctx context.Context, ownerID, credentialID int, in MetaUpdate) error {
	cred, err := s.Get(ctx, ownerID, credentialID)
	if err != nil {
		return err
	}

	if in.Name != nil {
		cred.Name = *in.Name
	}
	if in.ExpiresAt != nil {
		cred.ExpiresAt = in.ExpiresAt
	}
	if in.MaxViews != nil {
		if *in.MaxViews < 1 {
			return fmt.Errorf("%w: max views must be at least 1", ErrInvalidPayload)
		}
		cred.MaxViews = in.MaxViews
	}

	if err := s.repo.UpdateMeta(ctx, cred); err != nil {
		s.log.Error("failed to update credential", "credential_id", credentialID, "error", err)
		return fmt.Errorf("update credential: %w", err)
	}

	s.log.Info("credential metadata updated", "credential_id", credentialID, "owner_id", ownerID)
	return nil
}

// Expire makes the credential immediately and permanently inert.
func (s *Service) Expire(ctx context.Context, ownerID, credentialID int) error {
	if _, err := s.Get(ctx, ownerID, credentialID); err != nil {
		return err
	}

	if err := s.repo.Expire(ctx, credentialID, s.now()); err != nil {
		s.log.Error("failed to expire credential", "credential_id", credentialID, "error", err)
		return fmt.Errorf("expire credential: %w", err)
	}

	s.log.Info("credential expired by owner", "credential_id", credentialID, "owner_id", ownerID)
	return nil
}

func (s *Service) Delete(ctx context.Context, ownerID, credentialID int) error {
	if _, err := s.Get(ctx, ownerID, credentialID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, credentialID); err != nil {
		s.log.Error("failed to delete credential", "credential_id", credentialID, "error", err)
		return fmt.Errorf("delete credential: %w", err)
	}

	s.log.Info("credential deleted", "credential_id", credentialID, "owner_id", ownerID)
	return nil
}
