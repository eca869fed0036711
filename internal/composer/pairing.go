package composer

import (
	"github.com/stylerack/stylerack/internal/models"
)

// pairTable restricts which categories a garment may be paired with. Only
// top/bottom garments are tabled; any category missing from the table falls
// back to pairing with every other category.
var pairTable = map[models.Category][]models.Category{
	models.CategoryShortsleeve: {models.CategoryPants, models.CategoryOuterwear},
	models.CategoryLongsleeve:  {models.CategoryPants, models.CategoryOuterwear},
	models.CategoryPants:       {models.CategoryShortsleeve, models.CategoryLongsleeve, models.CategoryOuterwear},
}

// PairTargets returns the categories a garment of the given category may be
// paired with, in display order.
func PairTargets(category models.Category) []models.Category {
	if targets, ok := pairTable[category]; ok {
		out := make([]models.Category, len(targets))
		copy(out, targets)
		return out
	}

	// Permissive fallback: everything except the garment's own category.
	targets := make([]models.Category, 0, len(models.Categories)-1)
	for _, c := range models.Categories {
		if c != category {
			targets = append(targets, c)
		}
	}
	return targets
}

// CanPair reports whether target is a legal pairing category for category.
func CanPair(category, target models.Category) bool {
	for _, t := range PairTargets(category) {
		if t == target {
			return true
		}
	}
	return false
}

// Candidates returns the items in the target category, preserving input
// order. Item IDs are unique so no deduplication is needed.
func Candidates(items []models.ClothingItem, target models.Category) []models.ClothingItem {
	candidates := make([]models.ClothingItem, 0)
	for _, item := range items {
		if item.Category == target {
			candidates = append(candidates, item)
		}
	}
	return candidates
}
