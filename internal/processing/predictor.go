package processing

import (
	"strings"

	"github.com/stylerack/stylerack/internal/models"
)

// filenameKeywords maps upload filename keywords to categories, checked in
// order. Shoes and hats first so "sneaker-short.jpg" lands on shoes.
var filenameKeywords = []struct {
	keywords []string
	category models.Category
}{
	{[]string{"shoe", "boot", "sneaker"}, models.CategoryShoes},
	{[]string{"hat", "cap", "beanie"}, models.CategoryHat},
	{[]string{"pant", "jean", "trouser"}, models.CategoryPants},
	{[]string{"short"}, models.CategoryShorts},
	{[]string{"jacket", "coat", "hoodie"}, models.CategoryOuterwear},
	{[]string{"tshirt", "t-shirt"}, models.CategoryShortsleeve},
	{[]string{"longsleeve", "sweater"}, models.CategoryLongsleeve},
}

// PredictCategoryFromFilename is the fallback predictor used when the
// processing service is unavailable or returns an unknown category.
func PredictCategoryFromFilename(filename string) models.Category {
	name := strings.ToLower(filename)
	for _, entry := range filenameKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(name, keyword) {
				return entry.category
			}
		}
	}
	return models.CategoryShortsleeve
}
