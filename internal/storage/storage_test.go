package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/quotestudio/internal/config"
	"github.com/rpggio/quotestudio/internal/persist"
	"github.com/rpggio/quotestudio/internal/s3sync"
	"github.com/rpggio/quotestudio/internal/sqlite"
)

func TestOpen(t *testing.T) {
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Default()
	store, err := Open(cfg, db)
	require.NoError(t, err)
	require.IsType(t, &sqlite.SnapshotRepository{}, store)

	_, err = Open(cfg, nil)
	require.Error(t, err)

	cfg.Store.Backend = config.StoreNull
	store, err = Open(cfg, nil)
	require.NoError(t, err)
	require.IsType(t, persist.NullStore{}, store)

	cfg.Store.Backend = config.StoreS3
	cfg.S3.Bucket = "quotes"
	store, err = Open(cfg, nil)
	require.NoError(t, err)
	require.IsType(t, &s3sync.Store{}, store)

	cfg.S3.Bucket = ""
	_, err = Open(cfg, nil)
	require.Error(t, err)

	cfg.Store.Backend = "tape"
	_, err = Open(cfg, nil)
	require.Error(t, err)
}
