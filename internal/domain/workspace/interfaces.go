package workspace

import (
	"context"

	"github.com/rpggio/quotestudio/internal/domain/suggest"
	"github.com/rpggio/quotestudio/internal/repository"
)

// Store persists whole workspace snapshots per owner.
type Store = repository.SnapshotRepository

// Suggester proposes line items for a free-text project description.
type Suggester interface {
	Suggest(ctx context.Context, prompt string) ([]suggest.Suggestion, error)
}

// NullSuggester is used when no suggestion service is configured.
type NullSuggester struct{}

// Suggest always reports the service as unavailable.
func (NullSuggester) Suggest(context.Context, string) ([]suggest.Suggestion, error) {
	return nil, suggest.ErrUnavailable
}
