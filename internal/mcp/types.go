package mcp

import (
	"github.com/rpggio/quotestudio/internal/domain/project"
	"github.com/rpggio/quotestudio/internal/domain/quote"
	"github.com/rpggio/quotestudio/internal/domain/ratecard"
	"github.com/rpggio/quotestudio/internal/domain/workday"
)

type ProjectIDParams struct {
	ID string `json:"id,omitempty"`
}

type CreateProjectParams struct {
	project.FieldsPatch
}

type UpdateProjectParams struct {
	project.FieldsPatch
}

type AddItemParams struct {
	RoleID        string           `json:"roleId,omitempty"`
	Category      project.Category `json:"category,omitempty"`
	Name          string           `json:"name,omitempty"`
	Remark        string           `json:"remark,omitempty"`
	DailyCost     float64          `json:"dailyCost,omitempty"`
	EstimatedDays float64          `json:"estimatedDays,omitempty"`
	CustomIcon    string           `json:"customIcon,omitempty"`
	CustomColor   string           `json:"customColor,omitempty"`
}

func (p AddItemParams) template() project.ItemTemplate {
	return project.ItemTemplate{
		RoleID:        p.RoleID,
		Category:      p.Category,
		Name:          p.Name,
		Remark:        p.Remark,
		DailyCost:     p.DailyCost,
		EstimatedDays: p.EstimatedDays,
		CustomIcon:    p.CustomIcon,
		CustomColor:   p.CustomColor,
	}
}

type UpdateItemParams struct {
	ItemID string `json:"item_id"`
	project.ItemPatch
	// AdjustDays is added to estimatedDays after the patch is applied.
	AdjustDays float64 `json:"adjust_days,omitempty"`
}

type RemoveItemParams struct {
	ItemID string `json:"item_id"`
}

type ApplyRateParams struct {
	ItemID string `json:"item_id"`
	RateID string `json:"rate_id"`
}

type AddRateParams struct {
	RoleName string           `json:"roleName"`
	Category project.Category `json:"category,omitempty"`
	Price    float64          `json:"price"`
}

type UpdateRateParams struct {
	ID string `json:"id"`
	ratecard.EntryPatch
}

type RemoveRateParams struct {
	ID string `json:"id"`
}

type SuggestItemsParams struct {
	Prompt string `json:"prompt"`
}

type AddItemResponse struct {
	Project project.Project     `json:"project"`
	Item    project.ServiceItem `json:"item"`
}

type DuplicateProjectResponse struct {
	Project    project.Project `json:"project"`
	Duplicated bool            `json:"duplicated"`
}

type QuoteResponse struct {
	ProjectID string      `json:"projectId"`
	Quote     quote.Quote `json:"quote"`
}

type AllocationResponse struct {
	ProjectID  string                `json:"projectId"`
	Slices     []quote.Slice         `json:"slices"`
	ByCategory []quote.CategoryTotal `json:"byCategory"`
}

type WorkdaysResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	workday.Span
}

type SuggestItemsResponse struct {
	Added []project.ServiceItem `json:"added"`
}

type ExportQuoteResponse struct {
	FileName string `json:"fileName"`
	MIMEType string `json:"mimeType"`
	// Data is the base64-encoded xlsx workbook.
	Data string `json:"data"`
}
