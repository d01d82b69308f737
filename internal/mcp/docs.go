package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `quotestudio builds staffing quotations for a media studio.

Model:
- Workspace: everything one owner has. A project history (newest first) with exactly one active project, plus a rate card.
- Project: client, schedule (startDate/endDate), taxRate %, margin %, and an ordered list of service items.
- Service item: a role with a category, dailyCost and estimatedDays. Its cost is dailyCost x estimatedDays.
- Rate card: reusable role prices. apply_rate copies an entry onto an item; later rate edits never touch existing items.

Workflow:
1) get_workspace to see the active project, its quote and the rate card.
2) select_project / create_project / duplicate_project to pick what to edit.
3) add_item, then update_item or apply_rate to price it. Item tools always act on the active project.
4) get_quote / get_allocation / get_workdays for figures; export_quote for an xlsx file.
5) suggest_items drafts items from a description when an AI provider is configured.

Every change is saved automatically shortly after it is made.

Docs:
- quotestudio://docs/index
- quotestudio://docs/pricing
- quotestudio://docs/suggestions
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "quotestudio://docs/index",
		Name:        "docs_index",
		Title:       "quotestudio docs index",
		Description: "What each doc covers and known limitations.",
		Content: `# quotestudio docs

- quotestudio://docs/pricing: how the quote is computed from items, margin and tax.
- quotestudio://docs/suggestions: AI-drafted service items.

## Limits

- One active project per owner. Selecting a project affects every session of that owner.
- The last remaining project cannot be deleted.
- Unknown project, item or rate ids are ignored by mutating tools; the current state is returned.
`,
	},
	{
		URI:         "quotestudio://docs/pricing",
		Name:        "docs_pricing",
		Title:       "Pricing",
		Description: "Quote math: raw cost, margin, tax, business days.",
		Content: `# Pricing

    rawCost      = sum(dailyCost x estimatedDays)
    preTaxQuote  = rawCost / (1 - margin/100)    (margin < 100)
                 = rawCost                       (margin >= 100)
    taxAmount    = preTaxQuote x taxRate/100
    totalInclTax = preTaxQuote + taxAmount

Margin is a share of the pre-tax quote, not a markup on cost: 30% margin on
366,000 gives 522,857.14, so profit is 30% of the price.

Negative costs, days, tax and margin are stored as zero.

## Schedule

Business days count Monday to Friday between startDate and endDate inclusive.
Weeks is the calendar length of the range / 7, rounded to one decimal.
Holidays are not considered. A missing or reversed range counts as zero.

## Allocation

get_allocation returns each item's share of raw cost with its display color,
and the same cost grouped by category.
`,
	},
	{
		URI:         "quotestudio://docs/suggestions",
		Name:        "docs_suggestions",
		Title:       "Suggestions",
		Description: "How suggest_items drafts items.",
		Content: `# Suggestions

suggest_items sends the prompt to the configured AI provider and appends every
returned item to the project that was active when the request started.

- Only the latest request per owner is applied. Older results come back as SUPERSEDED.
- SUGGESTIONS_UNAVAILABLE means no provider is configured or the provider failed.
  Nothing is changed; add items manually instead.
- Unrecognised categories are filed under 其他 (other).
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
