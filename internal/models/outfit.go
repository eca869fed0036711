package models

import (
	"time"

	"github.com/google/uuid"
)

// OutfitItem is one entry in an outfit. Slot is empty for freeform outfits
// that carry no slot semantics. Item is resolved on read-back and stays nil
// when the referenced garment has been deleted.
type OutfitItem struct {
	ItemID   string        `json:"itemId"`
	Slot     Slot          `json:"slot,omitempty"`
	Position int           `json:"position"`
	Item     *ClothingItem `json:"item,omitempty"`
}

// Outfit is a saved combination of wardrobe items. Outfits are immutable
// after creation; edits are delete and recreate.
type Outfit struct {
	ID        string       `json:"id"`
	OwnerID   string       `json:"ownerId"`
	Name      string       `json:"name"`
	Items     []OutfitItem `json:"items"`
	CreatedAt time.Time    `json:"createdAt"`
}

func NewOutfit(ownerID, name string) *Outfit {
	return &Outfit{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: time.Now(),
	}
}
