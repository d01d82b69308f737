package project

// Category tags a service item with one of the studio's fixed production categories.
// The string values are the persisted form and must not change.
type Category string

const (
	CategoryCreativeStrategy  Category = "創意策略"
	CategoryMotionProduction  Category = "動態製作"
	CategoryPostProduction    Category = "後期剪輯"
	CategorySoundDesign       Category = "音效製作"
	CategoryProjectManagement Category = "專案管理"
	CategoryOther             Category = "其他"
)

// CategoryInfo holds the display defaults for a category.
type CategoryInfo struct {
	Label    string `json:"label"`
	Icon     string `json:"icon"`
	ColorHex string `json:"colorHex"`
}

var categoryOrder = []Category{
	CategoryCreativeStrategy,
	CategoryMotionProduction,
	CategoryPostProduction,
	CategorySoundDesign,
	CategoryProjectManagement,
	CategoryOther,
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryCreativeStrategy:  {Label: "創意策略", Icon: "palette", ColorHex: "#EC4899"},
	CategoryMotionProduction:  {Label: "動態製作", Icon: "clapperboard", ColorHex: "#3B82F6"},
	CategoryPostProduction:    {Label: "後期剪輯", Icon: "scissors", ColorHex: "#A855F7"},
	CategorySoundDesign:       {Label: "音效製作", Icon: "music", ColorHex: "#22C55E"},
	CategoryProjectManagement: {Label: "專案管理", Icon: "briefcase", ColorHex: "#EAB308"},
	CategoryOther:             {Label: "其他", Icon: "plus-circle", ColorHex: "#9CA3AF"},
}

// Categories returns all categories in display order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryInfo[c]
	return ok
}

// Info returns the display defaults for c; unknown values use the "other" defaults.
func (c Category) Info() CategoryInfo {
	if info, ok := categoryInfo[c]; ok {
		return info
	}
	return categoryInfo[CategoryOther]
}

// ParseCategory maps s to a category, falling back to CategoryOther.
func ParseCategory(s string) Category {
	c := Category(s)
	if c.Valid() {
		return c
	}
	return CategoryOther
}
