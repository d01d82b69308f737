// Package report renders quotations and project history for terminals.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/rpggio/quotestudio/internal/domain/project"
	"github.com/rpggio/quotestudio/internal/domain/quote"
	"github.com/rpggio/quotestudio/internal/domain/workday"
)

const (
	chartWidth  = 60
	chartHeight = 10
)

// Money formats an amount rounded to whole currency units.
func Money(v float64) string {
	return humanize.CommafWithDigits(v, 0)
}

// Render draws the quotation summary, item table and allocation chart.
func Render(p project.Project, q quote.Quote, allocation []quote.Slice) string {
	span := workday.Compute(p.StartDate, p.EndDate)

	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(p.Name),
		mutedStyle.Render(fmt.Sprintf("%s · %s to %s · %d business days (%.1f weeks)",
			orDash(p.ClientName), orDash(p.StartDate), orDash(p.EndDate), span.BusinessDays, span.Weeks)),
	)

	sections := []string{header, "", itemTable(p.Items), "", totals(p, q)}
	if chart := allocationChart(allocation); chart != "" {
		sections = append(sections, "", chart)
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func itemTable(items []project.ServiceItem) string {
	if len(items) == 0 {
		return mutedStyle.Render("No service items")
	}

	rows := []string{
		mutedStyle.Render(fmt.Sprintf("%-3s %-24s %-10s %12s %6s %14s", "#", "Role", "Category", "Daily", "Days", "Subtotal")),
		mutedStyle.Render(strings.Repeat("─", 74)),
	}
	for i, item := range items {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(item.Color())).Render("●")
		rows = append(rows, fmt.Sprintf("%-3d %s %-22s %-10s %12s %6g %14s",
			i+1, dot, truncate(item.Name, 22), item.Category.Info().Label,
			Money(item.DailyCost), item.EstimatedDays, Money(item.Cost())))
	}
	return strings.Join(rows, "\n")
}

func totals(p project.Project, q quote.Quote) string {
	line := func(label, value string, style lipgloss.Style) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), style.Render(value))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		line("Raw cost", Money(q.RawCost), valueStyle),
		line(fmt.Sprintf("Margin %g%%", p.Margin), Money(q.Profit()), valueStyle),
		line("Pre-tax quote", Money(q.PreTaxQuote), valueStyle),
		line(fmt.Sprintf("Tax %g%%", p.TaxRate), Money(q.TaxAmount), valueStyle),
		line("Total incl. tax", Money(q.TotalInclTax), totalStyle),
	)
}

func allocationChart(slices []quote.Slice) string {
	if len(slices) == 0 {
		return ""
	}

	chart := barchart.New(chartWidth, chartHeight)
	bars := make([]barchart.BarData, 0, len(slices))
	for _, s := range slices {
		bars = append(bars, barchart.BarData{
			Label: truncate(s.Label, 8),
			Values: []barchart.BarValue{{
				Name:  s.Label,
				Value: s.Value,
				Style: lipgloss.NewStyle().Foreground(lipgloss.Color(s.ColorHex)),
			}},
		})
	}
	chart.PushAll(bars)
	chart.Draw()

	legend := make([]string, 0, len(slices))
	for _, s := range slices {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(s.ColorHex)).Render("●")
		legend = append(legend, fmt.Sprintf("%s %s %s", dot, s.Label, mutedStyle.Render(Money(s.Value))))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Cost allocation"),
		chart.View(),
		strings.Join(legend, "  "),
	)
}

// Projects lists the history with relative modification times.
func Projects(summaries []project.ProjectSummary, now time.Time) string {
	if len(summaries) == 0 {
		return mutedStyle.Render("No projects")
	}
	rows := make([]string, 0, len(summaries))
	for _, s := range summaries {
		marker := "  "
		name := s.Name
		if s.Active {
			marker = "▸ "
			name = activeStyle.Render(name)
		}
		updated := "never"
		if !s.UpdatedAt.IsZero() {
			updated = humanize.RelTime(s.UpdatedAt, now, "ago", "from now")
		}
		rows = append(rows, fmt.Sprintf("%s%s  %s  %s  %s",
			marker, name,
			mutedStyle.Render(orDash(s.ClientName)),
			mutedStyle.Render(fmt.Sprintf("%d items", s.ItemCount)),
			mutedStyle.Render(updated),
		))
	}
	return strings.Join(rows, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
