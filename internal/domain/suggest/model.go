package suggest

import (
	"strings"

	"github.com/rpggio/quotestudio/internal/domain/project"
)

// Suggestion is one line item proposed by the AI suggestion service.
type Suggestion struct {
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	Category           string  `json:"category"`
	Unit               string  `json:"unit"`
	SuggestedQuantity  float64 `json:"suggestedQuantity"`
	SuggestedUnitPrice float64 `json:"suggestedUnitPrice"`
}

// Template maps the suggestion onto a service item template. Quantity becomes
// estimated days and unit price becomes daily cost.
func (s Suggestion) Template() project.ItemTemplate {
	return project.ItemTemplate{
		Category:      project.ParseCategory(strings.TrimSpace(s.Category)),
		Name:          strings.TrimSpace(s.Name),
		Remark:        strings.TrimSpace(s.Description),
		DailyCost:     s.SuggestedUnitPrice,
		EstimatedDays: s.SuggestedQuantity,
	}
}

// Templates maps suggestions in order, skipping entries without a name.
func Templates(suggestions []Suggestion) []project.ItemTemplate {
	out := make([]project.ItemTemplate, 0, len(suggestions))
	for _, s := range suggestions {
		if strings.TrimSpace(s.Name) == "" {
			continue
		}
		out = append(out, s.Template())
	}
	return out
}
