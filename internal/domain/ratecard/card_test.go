package ratecard_test

import (
	"testing"

	"github.com/rpggio/quotestudio/internal/domain/project"
	"github.com/rpggio/quotestudio/internal/domain/ratecard"
	"github.com/stretchr/testify/require"
)

func TestCard_AddAssignsFreshID(t *testing.T) {
	card := ratecard.Default()

	next, entry := card.Add(ratecard.Entry{ID: "r1", RoleName: "Colorist", Category: project.CategoryPostProduction, Price: 3200})
	require.NotEqual(t, "r1", entry.ID)
	require.Equal(t, card.Len()+1, next.Len())

	stored, ok := next.Get(entry.ID)
	require.True(t, ok)
	require.Equal(t, "Colorist", stored.RoleName)

	// the original card is unchanged
	_, ok = card.Get(entry.ID)
	require.False(t, ok)
}

func TestCard_UpdateMergesFields(t *testing.T) {
	card := ratecard.Default()
	price := 9000.0

	next := card.Update("r1", ratecard.EntryPatch{Price: &price})
	entry, _ := next.Get("r1")
	require.Equal(t, 9000.0, entry.Price)
	require.Equal(t, "創意總監 Creative Director", entry.RoleName)

	require.Equal(t, card.Entries(), card.Update("missing", ratecard.EntryPatch{Price: &price}).Entries())
}

func TestCard_Remove(t *testing.T) {
	card := ratecard.Default()
	next := card.Remove("r3")
	require.Equal(t, card.Len()-1, next.Len())
	_, ok := next.Get("r3")
	require.False(t, ok)

	require.Equal(t, card.Len(), card.Remove("missing").Len())
}

func TestEntry_SelectionIsSnapshot(t *testing.T) {
	card := ratecard.Default()
	entry, ok := card.Get("r2")
	require.True(t, ok)

	p := project.Project{ID: "p1"}
	p, item := project.AddItem(p, project.ItemTemplate{})
	p = project.UpdateItem(p, item.ID, entry.Selection())

	selected := p.Items[0]
	require.Equal(t, "r2", selected.RoleID)
	require.Equal(t, entry.RoleName, selected.Name)
	require.Equal(t, project.CategoryCreativeStrategy, selected.Category)
	require.Equal(t, 6000.0, selected.DailyCost)

	// editing or removing the entry afterwards leaves the item alone
	price := 1.0
	card = card.Update("r2", ratecard.EntryPatch{Price: &price}).Remove("r2")
	require.Equal(t, 6000.0, p.Items[0].DailyCost)
	_, ok = card.Get("r2")
	require.False(t, ok)
}

func TestNew_DropsDuplicateIDs(t *testing.T) {
	card := ratecard.New([]ratecard.Entry{{ID: "a"}, {ID: "a"}, {ID: ""}, {ID: "b"}})
	require.Equal(t, 2, card.Len())
}
