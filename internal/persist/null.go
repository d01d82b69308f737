package persist

import (
	"context"

	"github.com/rpggio/quotestudio/internal/repository"
)

// NullStore is the snapshot store used when no backend is configured. Loads
// find nothing and saves succeed without storing anything.
type NullStore struct{}

// NewNullStore creates a NullStore.
func NewNullStore() NullStore {
	return NullStore{}
}

// Load always reports that no snapshot exists.
func (NullStore) Load(context.Context, string) (*repository.Snapshot, error) {
	return nil, repository.ErrNotFound
}

// Save discards the snapshot.
func (NullStore) Save(context.Context, string, *repository.Snapshot) error {
	return nil
}
