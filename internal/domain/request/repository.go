package request

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, r *Request) (int, error)
	Get(ctx context.Context, id int) (*Request, error)
	ListByWorkspace(ctx context.Context, workspaceID int) ([]Request, error)

	// Fulfill patches every field's encrypted value and flips status to
	// fulfilled in one update, guarded by status = pending. Returns
	// ErrAlreadyResolved when the guard fails, ErrNotFound when the ID does
	// not resolve.
	Fulfill(ctx context.Context, id int, fields []Field) error

	// Reject flips status to rejected, guarded by status = pending.
	Reject(ctx context.Context, id int) error

	Delete(ctx context.Context, id int) error
}
