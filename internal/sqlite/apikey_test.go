package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/quotestudio/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyRepository_ResolveOwner(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAPIKeyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.AddKey(ctx, "secret-token", "owner1", "laptop"))

	owner, err := repo.ResolveOwner(ctx, "secret-token")
	require.NoError(t, err)
	require.Equal(t, "owner1", owner)

	var used int
	err = db.QueryRow(`SELECT COUNT(*) FROM api_keys WHERE last_used IS NOT NULL`).Scan(&used)
	require.NoError(t, err)
	require.Equal(t, 1, used)

	_, err = repo.ResolveOwner(ctx, "wrong-token")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAPIKeyRepository_DuplicateKey(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAPIKeyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.AddKey(ctx, "tok", "owner1", ""))
	require.Error(t, repo.AddKey(ctx, "tok", "owner2", ""))
}

func TestHashToken_NeverStoresPlaintext(t *testing.T) {
	h := HashToken("tok")
	require.Len(t, h, 64)
	require.NotContains(t, h, "tok")
	require.Equal(t, h, HashToken("tok"))
}
