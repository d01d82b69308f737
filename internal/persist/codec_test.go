package persist_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/quotestudio/internal/domain/project"
	"github.com/rpggio/quotestudio/internal/domain/ratecard"
	"github.com/rpggio/quotestudio/internal/persist"
	"github.com/rpggio/quotestudio/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCodec_RoundTrip(t *testing.T) {
	snap := &repository.Snapshot{
		Projects: []project.Project{{
			ID:        "p1",
			Name:      "Launch",
			StartDate: "2025-01-06",
			EndDate:   "2025-01-10",
			Items: []project.ServiceItem{
				{ID: "i1", RoleID: "r1", Category: project.CategoryCreativeStrategy, Name: "CD", DailyCost: 8000, EstimatedDays: 1.5, CustomColor: "#FFFFFF"},
			},
			TaxRate:   5,
			Margin:    30,
			UpdatedAt: time.UnixMilli(1736150400000),
		}},
		ActiveProjectID: "p1",
		Rates:           ratecard.Default(),
	}

	data, err := persist.EncodeSnapshot(snap)
	require.NoError(t, err)

	decoded, err := persist.DecodeSnapshot(data)
	require.NoError(t, err)
	require.Equal(t, "p1", decoded.ActiveProjectID)
	require.Equal(t, snap.Projects[0].Items, decoded.Projects[0].Items)
	require.True(t, snap.Projects[0].UpdatedAt.Equal(decoded.Projects[0].UpdatedAt))
	require.Equal(t, snap.Rates.Entries(), decoded.Rates.Entries())
}

func TestDecodeSnapshot_BareProjectArray(t *testing.T) {
	data := []byte(` [{"id":"p1","projectName":"Demo","clientName":"","startDate":"2025-01-06","endDate":"2025-01-10","items":[],"taxRate":5,"margin":30,"updatedAt":1736150400000}]`)

	snap, err := persist.DecodeSnapshot(data)
	require.NoError(t, err)
	require.Len(t, snap.Projects, 1)
	require.Equal(t, "Demo", snap.Projects[0].Name)
	require.Zero(t, snap.Rates.Len())
}

func TestDecodeSnapshot_Invalid(t *testing.T) {
	_, err := persist.DecodeSnapshot([]byte("{not json"))
	require.ErrorIs(t, err, repository.ErrInvalidSnapshot)
}

func TestNullStore(t *testing.T) {
	store := persist.NewNullStore()
	ctx := context.Background()

	_, err := store.Load(ctx, "owner")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, store.Save(ctx, "owner", &repository.Snapshot{}))
}
