package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"credshare/internal/domain/credential"
)

type CredentialRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewCredentialRepository(db *Storage, log *slog.Logger) *CredentialRepository {
	return &CredentialRepository{
		db:  db,
		log: log.With("component", "credential_repository"),
	}
}

const credentialColumns = `id, workspace_id, owner_id, type, name, encrypted_data,
       private_key_share, expires_at, max_views, view_count, created_at, updated_at`

func (r *CredentialRepository) Create(ctx context.Context, c *credential.Credential) (int, error) {
	const query = `
		INSERT INTO credentials (workspace_id, owner_id, type, name, encrypted_data,
		                         private_key_share, expires_at, max_views)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.db.Pool().QueryRow(ctx, query,
		c.WorkspaceID, c.OwnerID, c.Type, c.Name, c.EncryptedData,
		c.PrivateKeyShare, c.ExpiresAt, c.MaxViews,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		r.log.Error("failed to create credential",
			"workspace_id", c.WorkspaceID, "type", c.Type, "error", err)
		return 0, fmt.Errorf("create credential: %w", err)
	}

	return c.ID, nil
}

func (r *CredentialRepository) Get(ctx context.Context, id int) (*credential.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials WHERE id = $1`

	row := r.db.Pool().QueryRow(ctx, query, id)

	c, err := r.scanCredential(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, credential.ErrNotFound
		}
		r.log.Error("failed to get credential", "credential_id", id, "error", err)
		return nil, fmt.Errorf("get credential: %w", err)
	}

	return c, nil
}

func (r *CredentialRepository) ListByWorkspace(ctx context.Context, workspaceID int) ([]credential.Credential, error) {
	query := `SELECT ` + credentialColumns + `
		FROM credentials
		WHERE workspace_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Pool().Query(ctx, query, workspaceID)
	if err != nil {
		r.log.Error("failed to list credentials", "workspace_id", workspaceID, "error", err)
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	defer rows.Close()

	var creds []credential.Credential
	for rows.Next() {
		c, err := r.scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}
		creds = append(creds, *c)
	}

	return creds, rows.Err()
}

// ConsumeView claims one view in a single conditional update: the row must
// still be within its expiry and view quota, the count is incremented, and
// exhaustion of the quota force-sets expires_at so the credential can never
// come back. Concurrent claims race on the same row; the row lock makes the
// losing claim see the updated count.
func (r *CredentialRepository) ConsumeView(ctx context.Context, id int, now time.Time) (*credential.Credential, error) {
	query := `
		UPDATE credentials
		SET view_count = view_count + 1,
		    expires_at = CASE
		        WHEN max_views IS NOT NULL AND view_count + 1 >= max_views THEN $2
		        ELSE expires_at
		    END,
		    updated_at = $2
		WHERE id = $1
		  AND (expires_at IS NULL OR expires_at > $2)
		  AND (max_views IS NULL OR view_count < max_views)
		RETURNING ` + credentialColumns

	row := r.db.Pool().QueryRow(ctx, query, id, now)

	c, err := r.scanCredential(row)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.log.Error("failed to consume view", "credential_id", id, "error", err)
		return nil, fmt.Errorf("consume view: %w", err)
	}

	// The claim was refused: distinguish a missing row from an inert one.
	var exists bool
	if err := r.db.Pool().QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM credentials WHERE id = $1)`, id,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("consume view: %w", err)
	}
	if !exists {
		return nil, credential.ErrNotFound
	}
	return nil, credential.ErrInert
}

func (r *CredentialRepository) UpdateMeta(ctx context.Context, c *credential.Credential) error {
	const query = `
		UPDATE credentials
		SET name = $1, expires_at = $2, max_views = $3, updated_at = NOW()
		WHERE id = $4`

	result, err := r.db.Pool().Exec(ctx, query, c.Name, c.ExpiresAt, c.MaxViews, c.ID)
	if err != nil {
		r.log.Error("failed to update credential", "credential_id", c.ID, "error", err)
		return fmt.Errorf("update credential: %w", err)
	}
	if result.RowsAffected() == 0 {
		return credential.ErrNotFound
	}

	return nil
}

func (r *CredentialRepository) Expire(ctx context.Context, id int, now time.Time) error {
	const query = `
		UPDATE credentials
		SET expires_at = $2, updated_at = $2
		WHERE id = $1`

	result, err := r.db.Pool().Exec(ctx, query, id, now)
	if err != nil {
		r.log.Error("failed to expire credential", "credential_id", id, "error", err)
		return fmt.Errorf("expire credential: %w", err)
	}
	if result.RowsAffected() == 0 {
		return credential.ErrNotFound
	}

	return nil
}

func (r *CredentialRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM credentials WHERE id = $1`

	result, err := r.db.Pool().Exec(ctx, query, id)
	if err != nil {
		r.log.Error("failed to delete credential", "credential_id", id, "error", err)
		return fmt.Errorf("delete credential: %w", err)
	}
	if result.RowsAffected() == 0 {
		return credential.ErrNotFound
	}

	return nil
}

func (r *CredentialRepository) scanCredential(row interface {
	Scan(dest ...interface{}) error
}) (*credential.Credential, error) {
	var c credential.Credential

	err := row.Scan(
		&c.ID, &c.WorkspaceID, &c.OwnerID, &c.Type, &c.Name, &c.EncryptedData,
		&c.PrivateKeyShare, &c.ExpiresAt, &c.MaxViews, &c.ViewCount,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}
