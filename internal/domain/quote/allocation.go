package quote

import "github.com/rpggio/quotestudio/internal/domain/project"

// UnnamedLabel labels allocation slices for items without a name.
const UnnamedLabel = "未命名"

// Slice is one group of the cost allocation.
type Slice struct {
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	ColorHex string  `json:"colorHex"`
}

// Allocation groups item costs by item name in first-seen order. Items whose
// cost is not positive are left out.
func Allocation(p project.Project) []Slice {
	slices := []Slice{}
	index := map[string]int{}

	for _, item := range p.Items {
		cost := item.Cost()
		if cost <= 0 {
			continue
		}
		label := item.Name
		if label == "" {
			label = UnnamedLabel
		}
		if i, ok := index[label]; ok {
			slices[i].Value += cost
			continue
		}
		index[label] = len(slices)
		slices = append(slices, Slice{
			Label:    label,
			Value:    cost,
			ColorHex: item.Color(),
		})
	}

	return slices
}

// CategoryTotal is the summed cost of one category.
type CategoryTotal struct {
	Category project.Category `json:"category"`
	Label    string           `json:"label"`
	Value    float64          `json:"value"`
	ColorHex string           `json:"colorHex"`
}

// ByCategory sums positive item costs per category in category display order.
// Items with an unknown category count as project.CategoryOther.
func ByCategory(p project.Project) []CategoryTotal {
	sums := map[project.Category]float64{}
	for _, item := range p.Items {
		if cost := item.Cost(); cost > 0 {
			sums[project.ParseCategory(string(item.Category))] += cost
		}
	}

	totals := []CategoryTotal{}
	for _, c := range project.Categories() {
		value, ok := sums[c]
		if !ok {
			continue
		}
		info := c.Info()
		totals = append(totals, CategoryTotal{
			Category: c,
			Label:    info.Label,
			Value:    value,
			ColorHex: info.ColorHex,
		})
	}
	return totals
}
