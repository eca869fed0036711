package composer

import (
	"github.com/stylerack/stylerack/internal/models"
)

// FilterAll matches every category or color.
const FilterAll = "all"

// Filter returns the items matching the active category and color filters.
// Either filter may be FilterAll. Input order is preserved; an empty result
// is valid.
func Filter(items []models.ClothingItem, category, color string) []models.ClothingItem {
	filtered := make([]models.ClothingItem, 0, len(items))
	for _, item := range items {
		categoryMatch := category == FilterAll || string(item.Category) == category
		colorMatch := color == FilterAll || string(item.Color) == color
		if categoryMatch && colorMatch {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// GroupByCategory groups items by category for category-row display.
// Categories with no items are absent from the result. Within a group,
// input order is preserved.
func GroupByCategory(items []models.ClothingItem) map[models.Category][]models.ClothingItem {
	grouped := make(map[models.Category][]models.ClothingItem)
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	return grouped
}
