package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rpggio/quotestudio/internal/config"
	"github.com/rpggio/quotestudio/internal/domain/project"
	"github.com/rpggio/quotestudio/internal/repository"
	"github.com/rpggio/quotestudio/internal/sqlite"
)

func setupDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quotes.db")
	t.Setenv(config.EnvPrefix+"DB_PATH", path)
	t.Setenv(config.EnvPrefix+"CONFIG_PATH", "")

	db, err := sqlite.New(path)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.RunMigrations())

	err = sqlite.NewSnapshotRepository(db).Save(context.Background(), "studio", &repository.Snapshot{
		ActiveProjectID: "p1",
		Projects: []project.Project{{
			ID: "p1", Name: "Launch Film", ClientName: "Acme",
			StartDate: "2025-01-06", EndDate: "2025-01-10", TaxRate: 5, Margin: 30,
			UpdatedAt: time.Now().Add(-time.Hour),
			Items: []project.ServiceItem{
				{ID: "a", Name: "Creative Director", Category: project.CategoryCreativeStrategy, DailyCost: 8000, EstimatedDays: 12},
				{ID: "b", Name: "Art Director", Category: project.CategoryMotionProduction, DailyCost: 6000, EstimatedDays: 45},
			},
		}},
	})
	require.NoError(t, err)
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSummary(t *testing.T) {
	setupDB(t)
	out, err := execute(t, "summary", "--owner", "studio")
	require.NoError(t, err)
	require.Contains(t, out, "Launch Film")
	require.Contains(t, out, "549,000")
}

func TestSummary_UnknownProject(t *testing.T) {
	setupDB(t)
	_, err := execute(t, "summary", "--owner", "studio", "-p", "missing")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestProjects(t *testing.T) {
	setupDB(t)
	out, err := execute(t, "projects", "--owner", "studio")
	require.NoError(t, err)
	require.Contains(t, out, "Launch Film")
	require.Contains(t, out, "ago")
}

func TestExport(t *testing.T) {
	setupDB(t)
	target := filepath.Join(t.TempDir(), "quote.xlsx")
	out, err := execute(t, "export", "--owner", "studio", "-o", target)
	require.NoError(t, err)
	require.Contains(t, out, target)

	f, err := excelize.OpenFile(target)
	require.NoError(t, err)
	defer f.Close()
	title, err := f.GetCellValue("Launch Film", "A1")
	require.NoError(t, err)
	require.Equal(t, "Launch Film", title)
}

func TestKeysAdd(t *testing.T) {
	path := setupDB(t)
	out, err := execute(t, "keys", "add", "--owner", "studio", "-d", "laptop")
	require.NoError(t, err)
	token := strings.TrimSpace(out)
	require.NotEmpty(t, token)

	db, err := sqlite.New(path)
	require.NoError(t, err)
	defer db.Close()
	owner, err := sqlite.NewAPIKeyRepository(db).ResolveOwner(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "studio", owner)
}
