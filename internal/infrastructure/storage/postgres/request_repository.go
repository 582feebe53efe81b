package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"credshare/internal/domain/request"
)

type RequestRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewRequestRepository(db *Storage, log *slog.Logger) *RequestRepository {
	return &RequestRepository{
		db:  db,
		log: log.With("component", "request_repository"),
	}
}

func (r *RequestRepository) Create(ctx context.Context, req *request.Request) (int, error) {
	tx, err := r.db.Pool().Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertRequest = `
		INSERT INTO requests (workspace_id, requester_id, status, encrypted_private_key,
		                      public_key_fingerprint)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err = tx.QueryRow(ctx, insertRequest,
		req.WorkspaceID, req.RequesterID, req.Status, req.EncryptedPrivateKey,
		req.PublicKeyFingerprint,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		r.log.Error("failed to create request",
			"workspace_id", req.WorkspaceID, "error", err)
		return 0, fmt.Errorf("create request: %w", err)
	}

	const insertField = `
		INSERT INTO request_fields (request_id, position, name, description, type)
		VALUES ($1, $2, $3, $4, $5)`

	for i, f := range req.Fields {
		if _, err := tx.Exec(ctx, insertField, req.ID, i, f.Name, f.Description, f.Type); err != nil {
			return 0, fmt.Errorf("create request field: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	return req.ID, nil
}

func (r *RequestRepository) Get(ctx context.Context, id int) (*request.Request, error) {
	const query = `
		SELECT id, workspace_id, requester_id, status, encrypted_private_key,
		       public_key_fingerprint, created_at, updated_at
		FROM requests
		WHERE id = $1`

	var req request.Request
	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&req.ID, &req.WorkspaceID, &req.RequesterID, &req.Status,
		&req.EncryptedPrivateKey, &req.PublicKeyFingerprint,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, request.ErrNotFound
		}
		r.log.Error("failed to get request", "request_id", id, "error", err)
		return nil, fmt.Errorf("get request: %w", err)
	}

	fields, err := r.fields(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Fields = fields

	return &req, nil
}

func (r *RequestRepository) ListByWorkspace(ctx context.Context, workspaceID int) ([]request.Request, error) {
	const query = `
		SELECT id, workspace_id, requester_id, status, encrypted_private_key,
		       public_key_fingerprint, created_at, updated_at
		FROM requests
		WHERE workspace_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Pool().Query(ctx, query, workspaceID)
	if err != nil {
		r.log.Error("failed to list requests", "workspace_id", workspaceID, "error", err)
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var requests []request.Request
	for rows.Next() {
		var req request.Request
		err := rows.Scan(
			&req.ID, &req.WorkspaceID, &req.RequesterID, &req.Status,
			&req.EncryptedPrivateKey, &req.PublicKeyFingerprint,
			&req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range requests {
		fields, err := r.fields(ctx, requests[i].ID)
		if err != nil {
			return nil, err
		}
		requests[i].Fields = fields
	}

	return requests, nil
}

// Fulfill writes every answer and flips the status in one transaction; the
// status guard makes a second fulfill (or a fulfill after reject) lose.
func (r *RequestRepository) Fulfill(ctx context.Context, id int, fields []request.Field) error {
	tx, err := r.db.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	const flip = `
		UPDATE requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3`

	result, err := tx.Exec(ctx, flip, id, request.StatusFulfilled, request.StatusPending)
	if err != nil {
		r.log.Error("failed to fulfill request", "request_id", id, "error", err)
		return fmt.Errorf("fulfill request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return r.resolveGuardFailure(ctx, id)
	}

	const patch = `
		UPDATE request_fields
		SET encrypted_value = $3
		WHERE request_id = $1 AND name = $2`

	for _, f := range fields {
		if _, err := tx.Exec(ctx, patch, id, f.Name, f.EncryptedValue); err != nil {
			return fmt.Errorf("fulfill request field: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *RequestRepository) Reject(ctx context.Context, id int) error {
	const query = `
		UPDATE requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3`

	result, err := r.db.Pool().Exec(ctx, query, id, request.StatusRejected, request.StatusPending)
	if err != nil {
		r.log.Error("failed to reject request", "request_id", id, "error", err)
		return fmt.Errorf("reject request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return r.resolveGuardFailure(ctx, id)
	}

	return nil
}

func (r *RequestRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM requests WHERE id = $1`

	result, err := r.db.Pool().Exec(ctx, query, id)
	if err != nil {
		r.log.Error("failed to delete request", "request_id", id, "error", err)
		return fmt.Errorf("delete request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return request.ErrNotFound
	}

	return nil
}

func (r *RequestRepository) fields(ctx context.Context, requestID int) ([]request.Field, error) {
	const query = `
		SELECT name, description, type, encrypted_value
		FROM request_fields
		WHERE request_id = $1
		ORDER BY position`

	rows, err := r.db.Pool().Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("get request fields: %w", err)
	}
	defer rows.Close()

	var fields []request.Field
	for rows.Next() {
		var f request.Field
		if err := rows.Scan(&f.Name, &f.Description, &f.Type, &f.EncryptedValue); err != nil {
			return nil, fmt.Errorf("scan request field: %w", err)
		}
		fields = append(fields, f)
	}

	return fields, rows.Err()
}

func (r *RequestRepository) resolveGuardFailure(ctx context.Context, id int) error {
	var exists bool
	if err := r.db.Pool().QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM requests WHERE id = $1)`, id,
	).Scan(&exists); err != nil {
		return fmt.Errorf("resolve guard failure: %w", err)
	}
	if !exists {
		return request.ErrNotFound
	}
	return request.ErrAlreadyResolved
}
