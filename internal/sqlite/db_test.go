package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	// Verify all tables were created
	tables := []string{
		"workspaces",
		"projects",
		"service_items",
		"rate_entries",
		"api_keys",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}

	// Running again is harmless
	require.NoError(t, db.RunMigrations())
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestServiceItemsCascade verifies items go away with their project
func TestServiceItemsCascade(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO workspaces (owner_id, active_project_id, saved_at) VALUES (?, ?, ?)`, "owner1", nil, 0)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO projects (owner_id, id, position, name, client_name, start_date, end_date, tax_rate, margin, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"owner1", "p1", 0, "Test Project", "Client", "2025-01-06", "2025-01-10", 5, 30, 0)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO service_items (owner_id, project_id, id, position, category, name, remark, daily_cost, estimated_days)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"owner1", "p1", "i1", 0, "其他", "Editor", "", 2500, 3)
	require.NoError(t, err)

	// Items must belong to an existing project
	_, err = db.ExecContext(ctx,
		`INSERT INTO service_items (owner_id, project_id, id, position, category, name, remark, daily_cost, estimated_days)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"owner1", "missing", "i2", 0, "其他", "Editor", "", 2500, 3)
	require.Error(t, err)
	require.True(t, isForeignKeyViolation(err))

	_, err = db.ExecContext(ctx, `DELETE FROM projects WHERE owner_id = ? AND id = ?`, "owner1", "p1")
	require.NoError(t, err)

	var count int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM service_items WHERE owner_id = ?`, "owner1").Scan(&count)
	require.NoError(t, err)
	require.Zero(t, count)
}
