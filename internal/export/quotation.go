// Package export renders a project's quotation as an xlsx workbook.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/rpggio/quotestudio/internal/domain/project"
	"github.com/rpggio/quotestudio/internal/domain/quote"
	"github.com/rpggio/quotestudio/internal/domain/workday"
)

const (
	// AllocationSheet holds the per-role cost breakdown.
	AllocationSheet = "Allocation"

	defaultSheet  = "Quotation"
	maxSheetName  = 31
	headerRow     = 6
	moneyFormat   = "#,##0.00"
	percentFormat = `0.0"%"`
)

// Quotation builds the workbook for p using the figures in q.
func Quotation(p project.Project, q quote.Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := SheetName(p.Name)
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G"}
	lastCol := columns[len(columns)-1]
	widths := []float64{5, 14, 28, 36, 14, 10, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	// Title block
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(p.Name))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", st.title)

	span := workday.Compute(p.StartDate, p.EndDate)
	meta := []string{
		"Client: " + p.ClientName,
		fmt.Sprintf("Schedule: %s to %s", p.StartDate, p.EndDate),
		fmt.Sprintf("Business days: %d (%.1f weeks)", span.BusinessDays, span.Weeks),
	}
	for i, line := range meta {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.MergeCell(sheetName, cell, fmt.Sprintf("%s%d", lastCol, i+2)); err != nil {
			return nil, fmt.Errorf("merge meta: %w", err)
		}
		f.SetCellValue(sheetName, cell, sanitizeExcelCell(line))
		f.SetCellStyle(sheetName, cell, cell, st.subtitle)
	}

	headers := []string{"#", "Category", "Role", "Remark", "Daily Cost", "Days", "Subtotal"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s%d", columns[i], headerRow), h)
	}
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), st.header)

	row := headerRow + 1
	for i, item := range p.Items {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+r, i+1)
		f.SetCellValue(sheetName, "B"+r, item.Category.Info().Label)
		f.SetCellValue(sheetName, "C"+r, sanitizeExcelCell(item.Name))
		f.SetCellValue(sheetName, "D"+r, sanitizeExcelCell(item.Remark))
		f.SetCellValue(sheetName, "E"+r, item.DailyCost)
		f.SetCellValue(sheetName, "F"+r, item.EstimatedDays)
		f.SetCellValue(sheetName, "G"+r, item.Cost())
		f.SetCellStyle(sheetName, "A"+r, "D"+r, st.item)
		f.SetCellStyle(sheetName, "E"+r, "E"+r, st.money)
		f.SetCellStyle(sheetName, "F"+r, "F"+r, st.item)
		f.SetCellStyle(sheetName, "G"+r, "G"+r, st.money)
		row++
	}

	row++
	summary := []struct {
		label string
		value float64
		style int
	}{
		{"Raw cost", q.RawCost, st.summaryValue},
		{"Margin", p.Margin, st.summaryPercent},
		{"Pre-tax quote", q.PreTaxQuote, st.summaryValue},
		{fmt.Sprintf("Tax (%g%%)", p.TaxRate), q.TaxAmount, st.summaryValue},
		{"Total incl. tax", q.TotalInclTax, st.total},
	}
	for _, s := range summary {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "F"+r, s.label)
		f.SetCellStyle(sheetName, "F"+r, "F"+r, st.summaryLabel)
		f.SetCellValue(sheetName, "G"+r, s.value)
		f.SetCellStyle(sheetName, "G"+r, "G"+r, s.style)
		row++
	}

	if err := writeAllocation(f, quote.Allocation(p), q.RawCost, st); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

func writeAllocation(f *excelize.File, slices []quote.Slice, total float64, st styles) error {
	if _, err := f.NewSheet(AllocationSheet); err != nil {
		return fmt.Errorf("create allocation sheet: %w", err)
	}
	if err := f.SetColWidth(AllocationSheet, "A", "A", 28); err != nil {
		return fmt.Errorf("set col width: %w", err)
	}
	if err := f.SetColWidth(AllocationSheet, "B", "C", 16); err != nil {
		return fmt.Errorf("set col width: %w", err)
	}

	for i, h := range []string{"Role", "Cost", "Share"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(AllocationSheet, cell, h)
	}
	f.SetCellStyle(AllocationSheet, "A1", "C1", st.header)

	for i, s := range slices {
		r := fmt.Sprintf("%d", i+2)
		f.SetCellValue(AllocationSheet, "A"+r, sanitizeExcelCell(s.Label))
		f.SetCellValue(AllocationSheet, "B"+r, s.Value)
		share := 0.0
		if total > 0 {
			share = s.Value / total * 100
		}
		f.SetCellValue(AllocationSheet, "C"+r, share)
		f.SetCellStyle(AllocationSheet, "A"+r, "A"+r, st.item)
		f.SetCellStyle(AllocationSheet, "B"+r, "B"+r, st.money)
		f.SetCellStyle(AllocationSheet, "C"+r, "C"+r, st.percent)
	}
	return nil
}

// SheetName turns a project name into a valid worksheet name.
func SheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	name = strings.Trim(name, "'")
	if utf8.RuneCountInString(name) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	if name == "" || name == AllocationSheet {
		return defaultSheet
	}
	return name
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}
