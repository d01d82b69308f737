package suggest_test

import (
	"testing"

	"github.com/rpggio/quotestudio/internal/domain/project"
	"github.com/rpggio/quotestudio/internal/domain/suggest"
	"github.com/stretchr/testify/require"
)

func TestSuggestion_Template(t *testing.T) {
	s := suggest.Suggestion{
		Name:               " Sound Designer ",
		Description:        "Mix and foley",
		Category:           "音效製作",
		Unit:               "day",
		SuggestedQuantity:  4,
		SuggestedUnitPrice: 3500,
	}

	tmpl := s.Template()
	require.Equal(t, "Sound Designer", tmpl.Name)
	require.Equal(t, "Mix and foley", tmpl.Remark)
	require.Equal(t, project.CategorySoundDesign, tmpl.Category)
	require.Equal(t, 4.0, tmpl.EstimatedDays)
	require.Equal(t, 3500.0, tmpl.DailyCost)
}

func TestSuggestion_UnknownCategory(t *testing.T) {
	tmpl := suggest.Suggestion{Name: "Drone pilot", Category: "Aerial"}.Template()
	require.Equal(t, project.CategoryOther, tmpl.Category)
}

func TestTemplates_SkipsUnnamed(t *testing.T) {
	out := suggest.Templates([]suggest.Suggestion{{Name: "A"}, {Name: "  "}, {Name: "B"}})
	require.Len(t, out, 2)
	require.Equal(t, "B", out[1].Name)
}

func TestTracker_MostRecentWins(t *testing.T) {
	tr := suggest.NewTracker()

	first := tr.Begin("owner")
	require.True(t, tr.Current("owner", first))

	second := tr.Begin("owner")
	require.False(t, tr.Current("owner", first))
	require.True(t, tr.Current("owner", second))

	other := tr.Begin("someone-else")
	require.True(t, tr.Current("someone-else", other))
	require.True(t, tr.Current("owner", second))
}
