package credential

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, c *Credential) (int, error)
	Get(ctx context.Context, id int) (*Credential, error)
	ListByWorkspace(ctx context.Context, workspaceID int) ([]Credential, error)

	// ConsumeView atomically claims one view: it must check the disclosure
	// limits, increment the view count, and force-set expiry on exhaustion in
	// a single store update against the row. Returns the claimed credential,
	// ErrInert when the limits refuse the claim, ErrNotFound when the ID does
	// not resolve.
	ConsumeView(ctx context.Context, id int, now time.Time) (*Credential, error)

	// UpdateMeta persists descriptive metadata and disclosure limits only.
	// Key material columns are never touched after Create.
	UpdateMeta(ctx context.Context, c *Credential) error

	// Expire force-sets the expiry to the given instant (owner action).
	Expire(ctx context.Context, id int, now time.Time) error

	Delete(ctx context.Context, id int) error
}
