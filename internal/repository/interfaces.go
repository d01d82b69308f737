package repository

import "context"

// SnapshotRepository loads and saves whole workspace snapshots scoped by owner.
// Load returns ErrNotFound when nothing was stored for the owner.
type SnapshotRepository interface {
	Load(ctx context.Context, ownerID string) (*Snapshot, error)
	Save(ctx context.Context, ownerID string, snap *Snapshot) error
}

// OwnerResolver maps a session token onto the owner id that scopes persistence.
type OwnerResolver interface {
	ResolveOwner(ctx context.Context, token string) (string, error)
}
