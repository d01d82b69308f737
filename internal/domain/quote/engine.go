// Package quote derives the priced figures of a project: cost, margin-adjusted
// quote, tax and grand total, plus the cost allocation used for charts.
//
// Margin is a fraction of revenue, not a markup on cost: with margin m the
// quote q satisfies cost = q * (1 - m/100).
package quote

import (
	"github.com/rpggio/quotestudio/internal/domain/project"
	"github.com/rpggio/quotestudio/internal/domain/workday"
)

// Quote holds the derived figures for a project at full precision.
type Quote struct {
	BusinessDays int     `json:"businessDays"`
	Weeks        float64 `json:"weeks"`
	RawCost      float64 `json:"rawCost"`
	PreTaxQuote  float64 `json:"preTaxQuote"`
	TaxAmount    float64 `json:"taxAmount"`
	TotalInclTax float64 `json:"totalInclTax"`
}

// Profit is the share of the pre-tax quote left after cost.
func (q Quote) Profit() float64 {
	return q.PreTaxQuote - q.RawCost
}

// Compute derives the quote for p. It depends on nothing but p.
func Compute(p project.Project) Quote {
	span := workday.Compute(p.StartDate, p.EndDate)
	cost := RawCost(p.Items)
	preTax := ApplyMargin(cost, p.Margin)
	tax := preTax * (p.TaxRate / 100)

	return Quote{
		BusinessDays: span.BusinessDays,
		Weeks:        span.Weeks,
		RawCost:      cost,
		PreTaxQuote:  preTax,
		TaxAmount:    tax,
		TotalInclTax: preTax + tax,
	}
}

// RawCost sums daily cost times estimated days over items.
func RawCost(items []project.ServiceItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Cost()
	}
	return sum
}

// ApplyMargin grosses cost up so that cost is (1 - margin/100) of the result.
// A margin of 100% or more would divide by zero or flip the sign, so it has no effect.
func ApplyMargin(cost, marginPercent float64) float64 {
	r := marginPercent / 100
	if r >= 1 {
		return cost
	}
	return cost / (1 - r)
}
