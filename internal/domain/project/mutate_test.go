package project_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rpggio/quotestudio/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func sampleProject() project.Project {
	return project.Project{
		ID:        "p1",
		Name:      "Launch Film",
		StartDate: "2025-01-06",
		EndDate:   "2025-01-10",
		Items: []project.ServiceItem{
			{ID: "i1", Category: project.CategoryCreativeStrategy, Name: "Creative Director", DailyCost: 8000, EstimatedDays: 12},
			{ID: "i2", Category: project.CategoryMotionProduction, Name: "Art Director", DailyCost: 6000, EstimatedDays: 45},
		},
		TaxRate: 5,
		Margin:  30,
	}
}

func TestAddItem_DefaultsAndValueSemantics(t *testing.T) {
	before := sampleProject()

	after, item := project.AddItem(before, project.ItemTemplate{})
	require.Len(t, before.Items, 2)
	require.Len(t, after.Items, 3)
	require.Equal(t, item, after.Items[2])

	require.NotEmpty(t, item.ID)
	require.Equal(t, project.CategoryMotionProduction, item.Category)
	require.Zero(t, item.DailyCost)
	require.Zero(t, item.EstimatedDays)
	require.Empty(t, item.Name)
	require.False(t, after.UpdatedAt.IsZero())
}

func TestAddItem_FreshIDs(t *testing.T) {
	p := sampleProject()
	p, a := project.AddItem(p, project.ItemTemplate{Name: "Editor"})
	p, b := project.AddItem(p, project.ItemTemplate{Name: "Editor"})
	require.NotEqual(t, a.ID, b.ID)

	seen := map[string]bool{}
	for _, item := range p.Items {
		require.False(t, seen[item.ID], "duplicate id %s", item.ID)
		seen[item.ID] = true
	}
}

func TestUpdateItem_MergesSingleItem(t *testing.T) {
	before := sampleProject()
	days := 20.0
	remark := "storyboards"

	after := project.UpdateItem(before, "i1", project.ItemPatch{EstimatedDays: &days, Remark: &remark})
	require.Equal(t, 20.0, after.Items[0].EstimatedDays)
	require.Equal(t, "storyboards", after.Items[0].Remark)
	require.Equal(t, 8000.0, after.Items[0].DailyCost)
	require.Equal(t, before.Items[1], after.Items[1])

	// the input is untouched
	require.Equal(t, 12.0, before.Items[0].EstimatedDays)
}

func TestUpdateItem_UnknownIDIsNoop(t *testing.T) {
	before := sampleProject()
	cost := 1.0
	after := project.UpdateItem(before, "missing", project.ItemPatch{DailyCost: &cost})
	require.Equal(t, before, after)
}

func TestUpdateItem_ClampsNegativeNumbers(t *testing.T) {
	cost := -50.0
	after := project.UpdateItem(sampleProject(), "i2", project.ItemPatch{DailyCost: &cost})
	require.Zero(t, after.Items[1].DailyCost)
}

func TestRemoveItem_PreservesOrder(t *testing.T) {
	p := sampleProject()
	p, extra := project.AddItem(p, project.ItemTemplate{Name: "Sound"})

	after := project.RemoveItem(p, "i2")
	require.Len(t, after.Items, 2)
	require.Equal(t, "i1", after.Items[0].ID)
	require.Equal(t, extra.ID, after.Items[1].ID)

	require.Equal(t, p, project.RemoveItem(p, "missing"))
}

func TestAdjustDays_ClampsAtZero(t *testing.T) {
	p := project.AdjustDays(sampleProject(), "i1", -100)
	require.Zero(t, p.Items[0].EstimatedDays)

	p = project.AdjustDays(p, "i1", 1)
	require.Equal(t, 1.0, p.Items[0].EstimatedDays)
}

func TestUpdateFields_StampsUpdatedAt(t *testing.T) {
	before := sampleProject()
	before.UpdatedAt = time.Now().Add(-time.Hour)
	margin := 40.0
	name := "Launch Film v2"

	after := project.UpdateFields(before, project.FieldsPatch{Margin: &margin, Name: &name})
	require.Equal(t, 40.0, after.Margin)
	require.Equal(t, "Launch Film v2", after.Name)
	require.Equal(t, 5.0, after.TaxRate)
	require.True(t, after.UpdatedAt.After(before.UpdatedAt))

	// an empty patch still counts as an edit
	touched := project.UpdateFields(before, project.FieldsPatch{})
	require.True(t, touched.UpdatedAt.After(before.UpdatedAt))
}

func TestServiceItem_DisplayFallback(t *testing.T) {
	item := project.ServiceItem{Category: project.CategorySoundDesign}
	require.Equal(t, "music", item.Icon())
	require.Equal(t, project.CategorySoundDesign.Info().ColorHex, item.Color())

	item.CustomIcon = "star"
	item.CustomColor = "#123456"
	require.Equal(t, "star", item.Icon())
	require.Equal(t, "#123456", item.Color())
	require.Equal(t, project.CategorySoundDesign, item.Category)
}

func TestParseCategory(t *testing.T) {
	require.Equal(t, project.CategoryPostProduction, project.ParseCategory("後期剪輯"))
	require.Equal(t, project.CategoryOther, project.ParseCategory("Lighting"))
	require.Len(t, project.Categories(), 6)
}

func TestProjectJSON_RoundTrip(t *testing.T) {
	p := sampleProject()
	p.OwnerID = "user-1"
	p.UpdatedAt = time.UnixMilli(1736150400123)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Equal(t, "Launch Film", raw["projectName"])
	require.Equal(t, "2025-01-06", raw["startDate"])
	require.Equal(t, float64(1736150400123), raw["updatedAt"])
	require.Equal(t, "user-1", raw["user_id"])

	var decoded project.Project
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, p.Items, decoded.Items)
	require.True(t, p.UpdatedAt.Equal(decoded.UpdatedAt))
	require.Equal(t, p.Name, decoded.Name)
}
