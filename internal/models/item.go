package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a garment type. The set matches what the image processor can
// predict.
type Category string

const (
	CategoryHat         Category = "hat"
	CategoryShortsleeve Category = "shortsleeve"
	CategoryLongsleeve  Category = "longsleeve"
	CategoryOuterwear   Category = "outerwear"
	CategoryPants       Category = "pants"
	CategoryShorts      Category = "shorts"
	CategoryShoes       Category = "shoes"
)

// Categories lists all garment categories in display order.
var Categories = []Category{
	CategoryHat,
	CategoryShortsleeve,
	CategoryLongsleeve,
	CategoryOuterwear,
	CategoryPants,
	CategoryShorts,
	CategoryShoes,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Slot is a functional position in an outfit.
type Slot string

const (
	SlotTop       Slot = "top"
	SlotBottom    Slot = "bottom"
	SlotShoes     Slot = "shoes"
	SlotAccessory Slot = "accessory"
)

// Slots lists outfit slots in display order (top worn highest).
var Slots = []Slot{SlotTop, SlotBottom, SlotShoes, SlotAccessory}

func (s Slot) Valid() bool {
	for _, known := range Slots {
		if s == known {
			return true
		}
	}
	return false
}

// Slot maps a garment category to the coarse outfit slot it occupies.
func (c Category) Slot() Slot {
	switch c {
	case CategoryShortsleeve, CategoryLongsleeve, CategoryOuterwear:
		return SlotTop
	case CategoryPants, CategoryShorts:
		return SlotBottom
	case CategoryShoes:
		return SlotShoes
	default:
		return SlotAccessory
	}
}

type Color string

const (
	ColorBlack  Color = "black"
	ColorWhite  Color = "white"
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorPurple Color = "purple"
	ColorPink   Color = "pink"
	ColorOrange Color = "orange"
	ColorBrown  Color = "brown"
	ColorGray   Color = "gray"
	ColorBeige  Color = "beige"
)

var Colors = []Color{
	ColorBlack, ColorWhite, ColorRed, ColorBlue, ColorGreen, ColorYellow,
	ColorPurple, ColorPink, ColorOrange, ColorBrown, ColorGray, ColorBeige,
}

func (c Color) Valid() bool {
	for _, known := range Colors {
		if c == known {
			return true
		}
	}
	return false
}

// ClothingItem is a single garment in a user's wardrobe. ImageURL points at
// the background-removed render, OriginalImage at the raw upload kept for
// re-processing.
type ClothingItem struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"ownerId"`
	ImageURL      string    `json:"imageUrl"`
	OriginalImage string    `json:"originalImage"`
	Category      Category  `json:"category"`
	Color         Color     `json:"color"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewClothingItem(ownerID, imageURL, originalImage string, category Category, color Color) *ClothingItem {
	return &ClothingItem{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		ImageURL:      imageURL,
		OriginalImage: originalImage,
		Category:      category,
		Color:         color,
		CreatedAt:     time.Now(),
	}
}
