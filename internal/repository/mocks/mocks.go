package mocks

import (
	"context"

	"github.com/rpggio/quotestudio/internal/domain/suggest"
	"github.com/rpggio/quotestudio/internal/repository"
	"github.com/stretchr/testify/mock"
)

// SnapshotRepository is a mock for repository.SnapshotRepository.
type SnapshotRepository struct {
	mock.Mock
}

func (m *SnapshotRepository) Load(ctx context.Context, ownerID string) (*repository.Snapshot, error) {
	args := m.Called(ctx, ownerID)
	if snap, ok := args.Get(0).(*repository.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SnapshotRepository) Save(ctx context.Context, ownerID string, snap *repository.Snapshot) error {
	args := m.Called(ctx, ownerID, snap)
	return args.Error(0)
}

// Suggester is a mock for the AI suggestion service.
type Suggester struct {
	mock.Mock
}

func (m *Suggester) Suggest(ctx context.Context, prompt string) ([]suggest.Suggestion, error) {
	args := m.Called(ctx, prompt)
	if list, ok := args.Get(0).([]suggest.Suggestion); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// OwnerResolver is a mock for repository.OwnerResolver.
type OwnerResolver struct {
	mock.Mock
}

func (m *OwnerResolver) ResolveOwner(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}
