// Package storage selects the workspace snapshot backend from configuration.
package storage

import (
	"fmt"

	"github.com/rpggio/quotestudio/internal/config"
	"github.com/rpggio/quotestudio/internal/persist"
	"github.com/rpggio/quotestudio/internal/repository"
	"github.com/rpggio/quotestudio/internal/s3sync"
	"github.com/rpggio/quotestudio/internal/sqlite"
)

// Open returns the snapshot store named by cfg.Store.Backend. db backs the
// sqlite store and may be nil for the other backends.
func Open(cfg config.Config, db *sqlite.DB) (repository.SnapshotRepository, error) {
	switch cfg.Store.Backend {
	case config.StoreS3:
		store, err := s3sync.New(s3sync.Options{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Prefix:          cfg.S3.Prefix,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
		if err != nil {
			return nil, fmt.Errorf("open s3 store: %w", err)
		}
		return store, nil
	case config.StoreNull:
		return persist.NewNullStore(), nil
	case config.StoreSQLite:
		if db == nil {
			return nil, fmt.Errorf("sqlite store requires a database")
		}
		return sqlite.NewSnapshotRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
