package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/rpggio/quotestudio/internal/domain/project"
	"github.com/rpggio/quotestudio/internal/domain/quote"
	"github.com/rpggio/quotestudio/internal/domain/ratecard"
	"github.com/rpggio/quotestudio/internal/domain/workday"
	"github.com/rpggio/quotestudio/internal/domain/workspace"
	"github.com/rpggio/quotestudio/internal/export"
)

const xlsxMIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WorkspaceService defines the workspace operations needed by MCP.
type WorkspaceService interface {
	Workspace(ctx context.Context, ownerID string) workspace.View
	Projects(ctx context.Context, ownerID string) []project.ProjectSummary
	Project(ctx context.Context, ownerID, id string) (project.Project, error)

	SelectProject(ctx context.Context, ownerID, id string) project.Project
	CreateProject(ctx context.Context, ownerID string, patch project.FieldsPatch) project.Project
	DuplicateProject(ctx context.Context, ownerID, id string) (project.Project, bool, error)
	DeleteProject(ctx context.Context, ownerID, id string) (project.Project, error)
	UpdateProject(ctx context.Context, ownerID string, patch project.FieldsPatch) project.Project

	AddItem(ctx context.Context, ownerID string, tmpl project.ItemTemplate) (project.Project, project.ServiceItem)
	EditItem(ctx context.Context, ownerID, itemID string, patch project.ItemPatch, daysDelta float64) project.Project
	RemoveItem(ctx context.Context, ownerID, itemID string) project.Project
	ApplyRate(ctx context.Context, ownerID, itemID, rateID string) project.Project

	Rates(ctx context.Context, ownerID string) []ratecard.Entry
	AddRate(ctx context.Context, ownerID string, entry ratecard.Entry) ratecard.Entry
	UpdateRate(ctx context.Context, ownerID, id string, patch ratecard.EntryPatch) []ratecard.Entry
	RemoveRate(ctx context.Context, ownerID, id string) []ratecard.Entry

	SuggestItems(ctx context.Context, ownerID, prompt string) ([]project.ServiceItem, error)
}

// Handler dispatches MCP commands.
type Handler struct {
	workspaces WorkspaceService
}

// NewHandler creates a new MCP handler.
func NewHandler(workspaces WorkspaceService) *Handler {
	return &Handler{workspaces: workspaces}
}

// Handle dispatches MCP requests to the workspace service. sessionID is
// accepted for transport symmetry; workspaces are shared by every session of
// an owner.
func (h *Handler) Handle(ctx context.Context, ownerID, sessionID, method string, params json.RawMessage) (any, error) {
	switch method {
	case "ping":
		return map[string]string{"status": "pong"}, nil
	case "get_workspace":
		return h.workspaces.Workspace(ctx, ownerID), nil
	case "list_projects":
		return h.workspaces.Projects(ctx, ownerID), nil
	case "select_project":
		var req ProjectIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.workspaces.SelectProject(ctx, ownerID, req.ID), nil
	case "create_project":
		var req CreateProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.workspaces.CreateProject(ctx, ownerID, req.FieldsPatch), nil
	case "duplicate_project":
		var req ProjectIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		p, ok, err := h.workspaces.DuplicateProject(ctx, ownerID, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return DuplicateProjectResponse{Project: p, Duplicated: ok}, nil
	case "delete_project":
		var req ProjectIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		active, err := h.workspaces.DeleteProject(ctx, ownerID, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return active, nil
	case "update_project":
		var req UpdateProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.workspaces.UpdateProject(ctx, ownerID, req.FieldsPatch), nil
	case "add_item":
		var req AddItemParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		p, item := h.workspaces.AddItem(ctx, ownerID, req.template())
		return AddItemResponse{Project: p, Item: item}, nil
	case "update_item":
		var req UpdateItemParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if req.ItemID == "" {
			return nil, mapError(fmt.Errorf("%w: item_id is required", ErrInvalidParams))
		}
		return h.workspaces.EditItem(ctx, ownerID, req.ItemID, req.ItemPatch, req.AdjustDays), nil
	case "remove_item":
		var req RemoveItemParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.workspaces.RemoveItem(ctx, ownerID, req.ItemID), nil
	case "apply_rate":
		var req ApplyRateParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.workspaces.ApplyRate(ctx, ownerID, req.ItemID, req.RateID), nil
	case "list_rates":
		return h.workspaces.Rates(ctx, ownerID), nil
	case "add_rate":
		var req AddRateParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.workspaces.AddRate(ctx, ownerID, ratecard.Entry{
			RoleName: req.RoleName,
			Category: project.ParseCategory(string(req.Category)),
			Price:    req.Price,
		}), nil
	case "update_rate":
		var req UpdateRateParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.workspaces.UpdateRate(ctx, ownerID, req.ID, req.EntryPatch), nil
	case "remove_rate":
		var req RemoveRateParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.workspaces.RemoveRate(ctx, ownerID, req.ID), nil
	case "get_quote":
		p, err := h.projectParam(ctx, ownerID, params)
		if err != nil {
			return nil, err
		}
		return QuoteResponse{ProjectID: p.ID, Quote: quote.Compute(p)}, nil
	case "get_allocation":
		p, err := h.projectParam(ctx, ownerID, params)
		if err != nil {
			return nil, err
		}
		return AllocationResponse{
			ProjectID:  p.ID,
			Slices:     quote.Allocation(p),
			ByCategory: quote.ByCategory(p),
		}, nil
	case "get_workdays":
		p, err := h.projectParam(ctx, ownerID, params)
		if err != nil {
			return nil, err
		}
		return WorkdaysResponse{
			StartDate: p.StartDate,
			EndDate:   p.EndDate,
			Span:      workday.Compute(p.StartDate, p.EndDate),
		}, nil
	case "suggest_items":
		var req SuggestItemsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		added, err := h.workspaces.SuggestItems(ctx, ownerID, req.Prompt)
		if err != nil {
			return nil, mapError(err)
		}
		return SuggestItemsResponse{Added: added}, nil
	case "export_quote":
		p, err := h.projectParam(ctx, ownerID, params)
		if err != nil {
			return nil, err
		}
		data, err := export.Quotation(p, quote.Compute(p))
		if err != nil {
			return nil, fmt.Errorf("export quotation: %w", err)
		}
		return ExportQuoteResponse{
			FileName: export.SheetName(p.Name) + ".xlsx",
			MIMEType: xlsxMIMEType,
			Data:     base64.StdEncoding.EncodeToString(data),
		}, nil
	default:
		return nil, mapError(fmt.Errorf("%w: %s", ErrUnknownMethod, method))
	}
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return mapError(fmt.Errorf("%w: %v", ErrInvalidParams, err))
	}
	return nil
}

func (h *Handler) projectParam(ctx context.Context, ownerID string, params json.RawMessage) (project.Project, error) {
	var req ProjectIDParams
	if err := decodeParams(params, &req); err != nil {
		return project.Project{}, err
	}
	p, err := h.workspaces.Project(ctx, ownerID, req.ID)
	if err != nil {
		return project.Project{}, mapError(err)
	}
	return p, nil
}
