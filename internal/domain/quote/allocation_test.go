package quote_test

import (
	"testing"

	"github.com/rpggio/quotestudio/internal/domain/project"
	"github.com/rpggio/quotestudio/internal/domain/quote"
	"github.com/stretchr/testify/require"
)

func TestAllocation_GroupsByName(t *testing.T) {
	p := project.Project{Items: []project.ServiceItem{
		{ID: "a", Name: "Animator", Category: project.CategoryMotionProduction, DailyCost: 3000, EstimatedDays: 10},
		{ID: "b", Name: "Editor", Category: project.CategoryPostProduction, DailyCost: 2500, EstimatedDays: 4, CustomColor: "#FF0000"},
		{ID: "c", Name: "Animator", Category: project.CategoryMotionProduction, DailyCost: 3500, EstimatedDays: 2, CustomColor: "#00FF00"},
	}}

	slices := quote.Allocation(p)
	require.Equal(t, []quote.Slice{
		{Label: "Animator", Value: 37000, ColorHex: project.CategoryMotionProduction.Info().ColorHex},
		{Label: "Editor", Value: 10000, ColorHex: "#FF0000"},
	}, slices)
}

func TestAllocation_SkipsZeroCostAndLabelsUnnamed(t *testing.T) {
	p := project.Project{Items: []project.ServiceItem{
		{ID: "a", Name: "", Category: project.CategoryOther, DailyCost: 100, EstimatedDays: 1},
		{ID: "b", Name: "Idle", Category: project.CategoryOther, DailyCost: 100, EstimatedDays: 0},
		{ID: "c", Name: "", Category: project.CategorySoundDesign, DailyCost: 50, EstimatedDays: 2},
	}}

	slices := quote.Allocation(p)
	require.Len(t, slices, 1)
	require.Equal(t, quote.UnnamedLabel, slices[0].Label)
	require.Equal(t, 200.0, slices[0].Value)
	require.Equal(t, project.CategoryOther.Info().ColorHex, slices[0].ColorHex)
}

func TestAllocation_Empty(t *testing.T) {
	slices := quote.Allocation(project.Project{})
	require.NotNil(t, slices)
	require.Empty(t, slices)
}

func TestByCategory(t *testing.T) {
	totals := quote.ByCategory(exampleProject())
	require.Len(t, totals, 2)
	require.Equal(t, project.CategoryCreativeStrategy, totals[0].Category)
	require.Equal(t, 96000.0, totals[0].Value)
	require.Equal(t, project.CategoryMotionProduction, totals[1].Category)
	require.Equal(t, 270000.0, totals[1].Value)
}

func TestByCategory_UnknownCountsAsOther(t *testing.T) {
	p := project.Project{Items: []project.ServiceItem{
		{Name: "Gaffer", Category: "Lighting", DailyCost: 1000, EstimatedDays: 2},
		{Name: "Misc", Category: project.CategoryOther, DailyCost: 500, EstimatedDays: 1},
	}}

	totals := quote.ByCategory(p)
	require.Len(t, totals, 1)
	require.Equal(t, project.CategoryOther, totals[0].Category)
	require.Equal(t, 2500.0, totals[0].Value)
	require.Equal(t, quote.RawCost(p.Items), totals[0].Value)
}
