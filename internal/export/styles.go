package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type styles struct {
	title, subtitle, header, item int
	money, percent                int
	summaryLabel, summaryValue    int
	summaryPercent, total         int
}

type styleDef struct {
	name  string
	dst   *int
	style *excelize.Style
}

func newStyles(f *excelize.File) (styles, error) {
	money := moneyFormat
	percent := percentFormat

	var st styles
	defs := []styleDef{
		{"title", &st.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}},
		{"subtitle", &st.subtitle, &excelize.Style{Font: &excelize.Font{Size: 11}}},
		{"header", &st.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    thinBorders(),
		}},
		{"item", &st.item, &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()}},
		{"money", &st.money, &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders(), CustomNumFmt: &money}},
		{"percent", &st.percent, &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders(), CustomNumFmt: &percent}},
		{"summary label", &st.summaryLabel, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 11},
			Alignment: &excelize.Alignment{Horizontal: "right"},
		}},
		{"summary value", &st.summaryValue, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}, CustomNumFmt: &money}},
		{"summary percent", &st.summaryPercent, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}, CustomNumFmt: &percent}},
		{"total", &st.total, &excelize.Style{
			Font:         &excelize.Font{Bold: true, Size: 12},
			Fill:         excelize.Fill{Type: "pattern", Color: []string{"#FDE68A"}, Pattern: 1},
			Border:       thinBorders(),
			CustomNumFmt: &money,
		}},
	}

	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return styles{}, fmt.Errorf("create %s style: %w", d.name, err)
		}
		*d.dst = id
	}
	return st, nil
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
