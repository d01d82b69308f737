package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rpggio/quotestudio/internal/repository"
)

// APIKeyRepository resolves bearer tokens to owners through the api_keys table.
type APIKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new APIKeyRepository
func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// AddKey stores the hash of token for ownerID.
func (r *APIKeyRepository) AddKey(ctx context.Context, token, ownerID, description string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO api_keys (key_hash, owner_id, created_at, description) VALUES (?, ?, ?, ?)`,
		HashToken(token), ownerID, time.Now().UTC(), description,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("api key already registered: %w", err)
		}
		return fmt.Errorf("failed to add api key: %w", err)
	}
	return nil
}

// ResolveOwner returns the owner the token was issued to and records its use.
func (r *APIKeyRepository) ResolveOwner(ctx context.Context, token string) (string, error) {
	hash := HashToken(token)
	var ownerID string
	err := r.db.QueryRowContext(ctx, `SELECT owner_id FROM api_keys WHERE key_hash = ?`, hash).Scan(&ownerID)
	if err == sql.ErrNoRows || (err == nil && ownerID == "") {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve api key: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE api_keys SET last_used = ? WHERE key_hash = ?`, time.Now().UTC(), hash); err != nil {
		return "", fmt.Errorf("failed to touch api key: %w", err)
	}
	return ownerID, nil
}

// HashToken returns the stored form of an API key.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
