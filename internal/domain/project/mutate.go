package project

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ItemTemplate defines the fields of a new service item. Zero values are kept
// as-is except Category, which defaults to CategoryMotionProduction.
type ItemTemplate struct {
	RoleID        string
	Category      Category
	Name          string
	Remark        string
	DailyCost     float64
	EstimatedDays float64
	CustomIcon    string
	CustomColor   string
}

// ItemPatch lists the item fields to change; nil fields are left untouched.
type ItemPatch struct {
	RoleID        *string   `json:"roleId,omitempty"`
	Category      *Category `json:"category,omitempty"`
	Name          *string   `json:"name,omitempty"`
	Remark        *string   `json:"remark,omitempty"`
	DailyCost     *float64  `json:"dailyCost,omitempty"`
	EstimatedDays *float64  `json:"estimatedDays,omitempty"`
	CustomIcon    *string   `json:"customIcon,omitempty"`
	CustomColor   *string   `json:"customColor,omitempty"`
}

// FieldsPatch lists the top-level project fields to change.
type FieldsPatch struct {
	Name       *string  `json:"projectName,omitempty"`
	ClientName *string  `json:"clientName,omitempty"`
	StartDate  *string  `json:"startDate,omitempty"`
	EndDate    *string  `json:"endDate,omitempty"`
	TaxRate    *float64 `json:"taxRate,omitempty"`
	Margin     *float64 `json:"margin,omitempty"`
}

// NewItem builds a service item with a fresh id.
func NewItem(tmpl ItemTemplate) ServiceItem {
	category := tmpl.Category
	if !category.Valid() {
		category = CategoryMotionProduction
	}
	return ServiceItem{
		ID:            uuid.NewString(),
		RoleID:        tmpl.RoleID,
		Category:      category,
		Name:          tmpl.Name,
		Remark:        tmpl.Remark,
		DailyCost:     nonNegative(tmpl.DailyCost),
		EstimatedDays: nonNegative(tmpl.EstimatedDays),
		CustomIcon:    tmpl.CustomIcon,
		CustomColor:   tmpl.CustomColor,
	}
}

// Clone returns a copy of p that shares no item storage with it.
func (p Project) Clone() Project {
	if p.Items != nil {
		items := make([]ServiceItem, len(p.Items))
		copy(items, p.Items)
		p.Items = items
	}
	return p
}

// AddItem appends a new item built from tmpl and returns the new project state
// along with the created item.
func AddItem(p Project, tmpl ItemTemplate) (Project, ServiceItem) {
	item := NewItem(tmpl)
	next := p.Clone()
	next.Items = append(next.Items, item)
	next.UpdatedAt = time.Now()
	return next, item
}

// UpdateItem merges patch into the item with the given id. The project is
// returned unchanged when no item matches.
func UpdateItem(p Project, itemID string, patch ItemPatch) Project {
	idx := p.itemIndex(itemID)
	if idx < 0 {
		return p
	}
	next := p.Clone()
	next.Items[idx] = patch.apply(next.Items[idx])
	next.UpdatedAt = time.Now()
	return next
}

// RemoveItem drops the item with the given id, preserving the order of the rest.
func RemoveItem(p Project, itemID string) Project {
	if p.itemIndex(itemID) < 0 {
		return p
	}
	next := p.Clone()
	items := make([]ServiceItem, 0, len(p.Items)-1)
	for _, item := range p.Items {
		if item.ID != itemID {
			items = append(items, item)
		}
	}
	next.Items = items
	next.UpdatedAt = time.Now()
	return next
}

// AdjustDays adds delta to an item's estimated days, clamping at zero.
func AdjustDays(p Project, itemID string, delta float64) Project {
	item, ok := p.Item(itemID)
	if !ok {
		return p
	}
	days := item.EstimatedDays + delta
	return UpdateItem(p, itemID, ItemPatch{EstimatedDays: &days})
}

// UpdateFields merges patch into the project's top-level fields and stamps UpdatedAt.
func UpdateFields(p Project, patch FieldsPatch) Project {
	next := p.Clone()
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.ClientName != nil {
		next.ClientName = *patch.ClientName
	}
	if patch.StartDate != nil {
		next.StartDate = strings.TrimSpace(*patch.StartDate)
	}
	if patch.EndDate != nil {
		next.EndDate = strings.TrimSpace(*patch.EndDate)
	}
	if patch.TaxRate != nil {
		next.TaxRate = *patch.TaxRate
	}
	if patch.Margin != nil {
		next.Margin = *patch.Margin
	}
	next.UpdatedAt = time.Now()
	return next
}

func (p Project) itemIndex(id string) int {
	for i, item := range p.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (patch ItemPatch) apply(item ServiceItem) ServiceItem {
	if patch.RoleID != nil {
		item.RoleID = *patch.RoleID
	}
	if patch.Category != nil && patch.Category.Valid() {
		item.Category = *patch.Category
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Remark != nil {
		item.Remark = *patch.Remark
	}
	if patch.DailyCost != nil {
		item.DailyCost = nonNegative(*patch.DailyCost)
	}
	if patch.EstimatedDays != nil {
		item.EstimatedDays = nonNegative(*patch.EstimatedDays)
	}
	if patch.CustomIcon != nil {
		item.CustomIcon = *patch.CustomIcon
	}
	if patch.CustomColor != nil {
		item.CustomColor = *patch.CustomColor
	}
	return item
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
