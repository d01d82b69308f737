package mcp

import (
	"github.com/rpggio/quotestudio/internal/domain/project"
)

// ToolDefinition describes a callable tool.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

func object(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func numberProp(description string) map[string]any {
	return map[string]any{"type": "number", "description": description}
}

func categoryProp(description string) map[string]any {
	values := make([]string, 0, len(project.Categories()))
	for _, c := range project.Categories() {
		values = append(values, string(c))
	}
	return map[string]any{"type": "string", "enum": values, "description": description}
}

func projectFieldProps() map[string]any {
	return map[string]any{
		"projectName": stringProp("Project display name"),
		"clientName":  stringProp("Client name"),
		"startDate":   stringProp("Start date, YYYY-MM-DD"),
		"endDate":     stringProp("End date, YYYY-MM-DD"),
		"taxRate":     numberProp("Tax percent applied to the pre-tax quote (e.g. 5)"),
		"margin":      numberProp("Margin percent of the pre-tax quote (e.g. 30)"),
	}
}

func itemFieldProps() map[string]any {
	return map[string]any{
		"roleId":        stringProp("Rate card entry this item was priced from"),
		"category":      categoryProp("Production category"),
		"name":          stringProp("Role name"),
		"remark":        stringProp("Free-text remark"),
		"dailyCost":     numberProp("Cost per day"),
		"estimatedDays": numberProp("Estimated working days"),
		"customIcon":    stringProp("Icon override"),
		"customColor":   stringProp("Color override, hex"),
	}
}

func emptyObject() map[string]any {
	return object(map[string]any{})
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	itemUpdate := itemFieldProps()
	itemUpdate["item_id"] = stringProp("Service item ID in the active project")
	itemUpdate["adjust_days"] = numberProp("Amount added to estimatedDays; the result never goes below zero")

	return []ToolDefinition{
		{
			Name:        "ping",
			Description: "Check that the server is reachable",
			InputSchema: emptyObject(),
		},

		// Workspace
		{
			Name:        "get_workspace",
			Description: "Get the active project, project history, rate card and the derived quote, workdays and allocation",
			InputSchema: emptyObject(),
		},

		// Projects
		{
			Name:        "list_projects",
			Description: "List project summaries, most recently created first",
			InputSchema: emptyObject(),
		},
		{
			Name:        "select_project",
			Description: "Make a project the active one; unknown ids leave the selection unchanged",
			InputSchema: object(map[string]any{
				"id": stringProp("Project ID"),
			}, "id"),
		},
		{
			Name:        "create_project",
			Description: "Create an empty project and make it active; omitted fields get defaults",
			InputSchema: object(projectFieldProps()),
		},
		{
			Name:        "duplicate_project",
			Description: "Copy a project with fresh ids and make the copy active",
			InputSchema: object(map[string]any{
				"id": stringProp("Project ID to copy"),
			}, "id"),
		},
		{
			Name:        "delete_project",
			Description: "Delete a project; the last remaining project cannot be deleted",
			InputSchema: object(map[string]any{
				"id": stringProp("Project ID to delete"),
			}, "id"),
		},
		{
			Name:        "update_project",
			Description: "Change top-level fields of the active project",
			InputSchema: object(projectFieldProps()),
		},

		// Service items
		{
			Name:        "add_item",
			Description: "Append a service item to the active project",
			InputSchema: object(itemFieldProps()),
		},
		{
			Name:        "update_item",
			Description: "Change fields of one service item in the active project",
			InputSchema: object(itemUpdate, "item_id"),
		},
		{
			Name:        "remove_item",
			Description: "Remove a service item from the active project",
			InputSchema: object(map[string]any{
				"item_id": stringProp("Service item ID"),
			}, "item_id"),
		},
		{
			Name:        "apply_rate",
			Description: "Copy a rate card entry's role, category and price onto a service item",
			InputSchema: object(map[string]any{
				"item_id": stringProp("Service item ID"),
				"rate_id": stringProp("Rate card entry ID"),
			}, "item_id", "rate_id"),
		},

		// Rate card
		{
			Name:        "list_rates",
			Description: "List the rate card",
			InputSchema: emptyObject(),
		},
		{
			Name:        "add_rate",
			Description: "Add an entry to the rate card",
			InputSchema: object(map[string]any{
				"roleName": stringProp("Role name"),
				"category": categoryProp("Production category"),
				"price":    numberProp("Daily price"),
			}, "roleName"),
		},
		{
			Name:        "update_rate",
			Description: "Change a rate card entry; items already priced from it keep their values",
			InputSchema: object(map[string]any{
				"id":       stringProp("Rate entry ID"),
				"roleName": stringProp("Role name"),
				"category": categoryProp("Production category"),
				"price":    numberProp("Daily price"),
			}, "id"),
		},
		{
			Name:        "remove_rate",
			Description: "Remove a rate card entry",
			InputSchema: object(map[string]any{
				"id": stringProp("Rate entry ID"),
			}, "id"),
		},

		// Derived figures
		{
			Name:        "get_quote",
			Description: "Compute raw cost, pre-tax quote, tax and total for a project",
			InputSchema: object(map[string]any{
				"id": stringProp("Project ID (omit for the active project)"),
			}),
		},
		{
			Name:        "get_allocation",
			Description: "Cost share per service item and per category for a project",
			InputSchema: object(map[string]any{
				"id": stringProp("Project ID (omit for the active project)"),
			}),
		},
		{
			Name:        "get_workdays",
			Description: "Count Monday-to-Friday days in a project's schedule",
			InputSchema: object(map[string]any{
				"id": stringProp("Project ID (omit for the active project)"),
			}),
		},

		// Suggestions and export
		{
			Name:        "suggest_items",
			Description: "Ask the AI service for a staffing plan and append the suggested items to the active project",
			InputSchema: object(map[string]any{
				"prompt": stringProp("Description of the production"),
			}, "prompt"),
		},
		{
			Name:        "export_quote",
			Description: "Export a project's quotation as a base64-encoded xlsx workbook",
			InputSchema: object(map[string]any{
				"id": stringProp("Project ID (omit for the active project)"),
			}),
		},
	}
}
