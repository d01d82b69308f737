package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/quotestudio/internal/domain/project"
	"github.com/rpggio/quotestudio/internal/domain/ratecard"
	"github.com/rpggio/quotestudio/internal/repository"
)

// SnapshotRepository implements repository.SnapshotRepository for SQLite
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Load reads the owner's workspace: projects in history order, items in table
// order and the rate card.
func (r *SnapshotRepository) Load(ctx context.Context, ownerID string) (*repository.Snapshot, error) {
	var (
		activeID sql.NullString
		savedAt  int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT active_project_id, saved_at FROM workspaces WHERE owner_id = ?`,
		ownerID,
	).Scan(&activeID, &savedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	projects, err := r.loadProjects(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	rates, err := r.loadRates(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &repository.Snapshot{
		Projects:        projects,
		ActiveProjectID: activeID.String,
		Rates:           ratecard.New(rates),
		SavedAt:         time.UnixMilli(savedAt),
	}, nil
}

func (r *SnapshotRepository) loadProjects(ctx context.Context, ownerID string) ([]project.Project, error) {
	query := `
		SELECT id, name, client_name, start_date, end_date, tax_rate, margin, updated_at
		FROM projects
		WHERE owner_id = ?
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		var (
			p         project.Project
			updatedAt int64
		)
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.ClientName,
			&p.StartDate,
			&p.EndDate,
			&p.TaxRate,
			&p.Margin,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		p.OwnerID = ownerID
		p.Items = []project.ServiceItem{}
		if updatedAt > 0 {
			p.UpdatedAt = time.UnixMilli(updatedAt)
		}
		projects = append(projects, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	byID := make(map[string]int, len(projects))
	for i, p := range projects {
		byID[p.ID] = i
	}

	itemQuery := `
		SELECT project_id, id, role_id, category, name, remark, daily_cost, estimated_days, custom_icon, custom_color
		FROM service_items
		WHERE owner_id = ?
		ORDER BY project_id, position ASC
	`

	itemRows, err := r.db.QueryContext(ctx, itemQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list service items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			projectID string
			category  string
			item      project.ServiceItem
		)
		err := itemRows.Scan(
			&projectID,
			&item.ID,
			&item.RoleID,
			&category,
			&item.Name,
			&item.Remark,
			&item.DailyCost,
			&item.EstimatedDays,
			&item.CustomIcon,
			&item.CustomColor,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service item: %w", err)
		}
		item.Category = project.ParseCategory(category)
		if i, ok := byID[projectID]; ok {
			projects[i].Items = append(projects[i].Items, item)
		}
	}
	if err = itemRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating service item rows: %w", err)
	}

	return projects, nil
}

func (r *SnapshotRepository) loadRates(ctx context.Context, ownerID string) ([]ratecard.Entry, error) {
	query := `
		SELECT id, role_name, category, price
		FROM rate_entries
		WHERE owner_id = ?
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate entries: %w", err)
	}
	defer rows.Close()

	var entries []ratecard.Entry
	for rows.Next() {
		var (
			e        ratecard.Entry
			category string
		)
		if err := rows.Scan(&e.ID, &e.RoleName, &category, &e.Price); err != nil {
			return nil, fmt.Errorf("failed to scan rate entry: %w", err)
		}
		e.Category = project.ParseCategory(category)
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rate entry rows: %w", err)
	}

	return entries, nil
}

// Save replaces the owner's stored workspace with snap in one transaction.
func (r *SnapshotRepository) Save(ctx context.Context, ownerID string, snap *repository.Snapshot) error {
	if snap == nil {
		return repository.ErrInvalidSnapshot
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	savedAt := snap.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	// The active pointer is cleared while the projects are rewritten and set
	// once they exist again.
	upsert := `
		INSERT INTO workspaces (owner_id, active_project_id, saved_at)
		VALUES (?, NULL, ?)
		ON CONFLICT(owner_id) DO UPDATE SET
			active_project_id = NULL,
			saved_at = excluded.saved_at
	`
	if _, err := tx.ExecContext(ctx, upsert, ownerID, savedAt.UnixMilli()); err != nil {
		return fmt.Errorf("failed to upsert workspace: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE owner_id = ?`, ownerID); err != nil {
		return fmt.Errorf("failed to clear projects: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM rate_entries WHERE owner_id = ?`, ownerID); err != nil {
		return fmt.Errorf("failed to clear rate entries: %w", err)
	}

	projectStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO projects (owner_id, id, position, name, client_name, start_date, end_date, tax_rate, margin, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare project insert: %w", err)
	}
	defer projectStmt.Close()

	itemStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO service_items (owner_id, project_id, id, position, role_id, category, name, remark, daily_cost, estimated_days, custom_icon, custom_color)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare item insert: %w", err)
	}
	defer itemStmt.Close()

	for pos, p := range snap.Projects {
		var updatedAt int64
		if !p.UpdatedAt.IsZero() {
			updatedAt = p.UpdatedAt.UnixMilli()
		}
		_, err := projectStmt.ExecContext(ctx,
			ownerID,
			p.ID,
			pos,
			p.Name,
			p.ClientName,
			p.StartDate,
			p.EndDate,
			p.TaxRate,
			p.Margin,
			updatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("duplicate project %s: %w", p.ID, repository.ErrInvalidSnapshot)
			}
			return fmt.Errorf("failed to insert project: %w", err)
		}

		for itemPos, item := range p.Items {
			_, err := itemStmt.ExecContext(ctx,
				ownerID,
				p.ID,
				item.ID,
				itemPos,
				item.RoleID,
				string(item.Category),
				item.Name,
				item.Remark,
				item.DailyCost,
				item.EstimatedDays,
				item.CustomIcon,
				item.CustomColor,
			)
			if err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("duplicate item %s: %w", item.ID, repository.ErrInvalidSnapshot)
				}
				if isForeignKeyViolation(err) {
					return fmt.Errorf("item %s has no project: %w", item.ID, repository.ErrInvalidSnapshot)
				}
				return fmt.Errorf("failed to insert service item: %w", err)
			}
		}
	}

	rateStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO rate_entries (owner_id, id, position, role_name, category, price)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare rate insert: %w", err)
	}
	defer rateStmt.Close()

	for pos, e := range snap.Rates.Entries() {
		if _, err := rateStmt.ExecContext(ctx, ownerID, e.ID, pos, e.RoleName, string(e.Category), e.Price); err != nil {
			return fmt.Errorf("failed to insert rate entry: %w", err)
		}
	}

	if snap.ActiveProjectID != "" {
		_, err := tx.ExecContext(ctx,
			`UPDATE workspaces SET active_project_id = ? WHERE owner_id = ?`,
			snap.ActiveProjectID, ownerID,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("active project %s not in snapshot: %w", snap.ActiveProjectID, repository.ErrInvalidSnapshot)
			}
			return fmt.Errorf("failed to set active project: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
