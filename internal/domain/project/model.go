package project

import (
	"encoding/json"
	"time"
)

// ServiceItem is a single staffed line in a project.
type ServiceItem struct {
	ID            string   `json:"id"`
	RoleID        string   `json:"roleId,omitempty"`
	Category      Category `json:"category"`
	Name          string   `json:"name"`
	Remark        string   `json:"remark"`
	DailyCost     float64  `json:"dailyCost"`
	EstimatedDays float64  `json:"estimatedDays"`
	CustomIcon    string   `json:"customIcon,omitempty"`
	CustomColor   string   `json:"customColor,omitempty"`
}

// Cost is the item's daily cost times its estimated days.
func (i ServiceItem) Cost() float64 {
	return i.DailyCost * i.EstimatedDays
}

// Icon returns the custom icon, or the category default.
func (i ServiceItem) Icon() string {
	if i.CustomIcon != "" {
		return i.CustomIcon
	}
	return i.Category.Info().Icon
}

// Color returns the custom color, or the category default.
func (i ServiceItem) Color() string {
	if i.CustomColor != "" {
		return i.CustomColor
	}
	return i.Category.Info().ColorHex
}

// Project is a quotation: metadata plus an ordered list of service items.
type Project struct {
	ID         string        `json:"id"`
	OwnerID    string        `json:"user_id,omitempty"`
	Name       string        `json:"projectName"`
	ClientName string        `json:"clientName"`
	StartDate  string        `json:"startDate"`
	EndDate    string        `json:"endDate"`
	Items      []ServiceItem `json:"items"`
	TaxRate    float64       `json:"taxRate"`
	Margin     float64       `json:"margin"`
	UpdatedAt  time.Time     `json:"-"`
}

// ProjectSummary is a lightweight representation for history listings.
type ProjectSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"projectName"`
	ClientName string    `json:"clientName"`
	ItemCount  int       `json:"itemCount"`
	Active     bool      `json:"active"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Summary returns the listing view of p.
func (p Project) Summary() ProjectSummary {
	return ProjectSummary{
		ID:         p.ID,
		Name:       p.Name,
		ClientName: p.ClientName,
		ItemCount:  len(p.Items),
		UpdatedAt:  p.UpdatedAt,
	}
}

// Item returns the item with the given id.
func (p Project) Item(id string) (ServiceItem, bool) {
	for _, item := range p.Items {
		if item.ID == id {
			return item, true
		}
	}
	return ServiceItem{}, false
}

type projectJSON struct {
	project
	UpdatedAt int64 `json:"updatedAt"`
}

// project drops the methods so projectJSON does not recurse into MarshalJSON.
type project Project

// MarshalJSON stores UpdatedAt as epoch milliseconds.
func (p Project) MarshalJSON() ([]byte, error) {
	out := projectJSON{project: project(p)}
	if out.Items == nil {
		out.Items = []ServiceItem{}
	}
	if !p.UpdatedAt.IsZero() {
		out.UpdatedAt = p.UpdatedAt.UnixMilli()
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads UpdatedAt from epoch milliseconds.
func (p *Project) UnmarshalJSON(data []byte) error {
	var in projectJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*p = Project(in.project)
	if in.UpdatedAt > 0 {
		p.UpdatedAt = time.UnixMilli(in.UpdatedAt)
	}
	return nil
}
