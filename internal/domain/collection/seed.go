package collection

import (
	"time"

	"github.com/rpggio/quotestudio/internal/domain/project"
	"github.com/rpggio/quotestudio/internal/domain/workday"
)

const (
	seedProjectName = "Mixcode 範例製作專案 _ 2025"
	seedClientName  = "Demo Client"
	seedDuration    = 30 * 24 * time.Hour
	seedTaxRate     = 5
	seedMargin      = 30
)

var seedItems = []project.ItemTemplate{
	{
		RoleID:        "r1",
		Category:      project.CategoryCreativeStrategy,
		Name:          "Creative Director",
		Remark:        "負責前期視覺方向控管",
		DailyCost:     8000,
		EstimatedDays: 12,
	},
	{
		RoleID:        "r2",
		Category:      project.CategoryMotionProduction,
		Name:          "Art Director",
		Remark:        "負責核心場景美術設計",
		DailyCost:     6000,
		EstimatedDays: 45,
	},
}

// SeedProject returns the template project used when nothing was loaded.
func SeedProject(ownerID string, now time.Time) project.Project {
	p := project.Project{
		OwnerID:    ownerID,
		Name:       seedProjectName,
		ClientName: seedClientName,
		StartDate:  workday.FormatDate(now),
		EndDate:    workday.FormatDate(now.Add(seedDuration)),
		TaxRate:    seedTaxRate,
		Margin:     seedMargin,
	}
	for _, tmpl := range seedItems {
		p.Items = append(p.Items, project.NewItem(tmpl))
	}
	return p
}

// BlankProject returns the template for a project created from scratch.
func BlankProject(ownerID string, now time.Time) project.Project {
	return project.Project{
		OwnerID:   ownerID,
		Name:      "New Project",
		StartDate: workday.FormatDate(now),
		EndDate:   workday.FormatDate(now.Add(seedDuration)),
		TaxRate:   seedTaxRate,
		Margin:    seedMargin,
		Items:     []project.ServiceItem{},
	}
}

// Seed returns a single-project collection built from the seed template.
func Seed(ownerID string, now time.Time) Collection {
	c, _ := Collection{}.Create(SeedProject(ownerID, now))
	return c
}
