package composer

import (
	"errors"
	"strings"

	"github.com/stylerack/stylerack/internal/models"
)

var (
	// ErrNameRequired is returned when the outfit name is empty or whitespace.
	ErrNameRequired = errors.New("outfit name is required")
	// ErrNoItemsSelected is returned when no slot or item has been chosen.
	ErrNoItemsSelected = errors.New("no items selected")
	// ErrIncompleteOutfit is returned under the strict save policy when the
	// top or bottom slot is unoccupied.
	ErrIncompleteOutfit = errors.New("outfit needs both a top and a bottom")
)

// topCategories and bottomCategories drive the top/bottom classification of
// a paired candidate, independent of which item the user selected first.
var topCategories = map[models.Category]bool{
	models.CategoryShortsleeve: true,
	models.CategoryLongsleeve:  true,
	models.CategoryOuterwear:   true,
	models.CategoryHat:         true,
}

var bottomCategories = map[models.Category]bool{
	models.CategoryPants:  true,
	models.CategoryShorts: true,
	models.CategoryShoes:  true,
}

// SlotAssignment collects garments by named slot while the user builds an
// outfit. Assigning to an occupied slot replaces the prior occupant.
type SlotAssignment struct {
	slots map[models.Slot]models.ClothingItem
}

func NewSlotAssignment() *SlotAssignment {
	return &SlotAssignment{slots: make(map[models.Slot]models.ClothingItem)}
}

func (s *SlotAssignment) Assign(slot models.Slot, item models.ClothingItem) {
	s.slots[slot] = item
}

func (s *SlotAssignment) Clear(slot models.Slot) {
	delete(s.slots, slot)
}

func (s *SlotAssignment) Item(slot models.Slot) (models.ClothingItem, bool) {
	item, ok := s.slots[slot]
	return item, ok
}

func (s *SlotAssignment) Len() int {
	return len(s.slots)
}

// SavePolicy controls how complete a slot assignment must be before it can
// be saved.
type SavePolicy int

const (
	// RequireAnySlot accepts any assignment with at least one occupied slot.
	RequireAnySlot SavePolicy = iota
	// RequireTopAndBottom additionally demands both the top and bottom slots.
	RequireTopAndBottom
)

// Assembler validates a selection and emits a persistable Outfit value. It
// never writes storage itself; the caller persists the returned value.
type Assembler struct {
	policy SavePolicy
}

func NewAssembler(policy SavePolicy) *Assembler {
	return &Assembler{policy: policy}
}

// AssembleSlots builds an outfit from a slot assignment. Each call produces
// an independent outfit with a fresh ID; creation is not idempotent.
func (a *Assembler) AssembleSlots(ownerID string, selection *SlotAssignment, name string) (*models.Outfit, error) {
	if err := a.validateName(name); err != nil {
		return nil, err
	}
	if selection == nil || selection.Len() == 0 {
		return nil, ErrNoItemsSelected
	}
	if a.policy == RequireTopAndBottom {
		if _, ok := selection.Item(models.SlotTop); !ok {
			return nil, ErrIncompleteOutfit
		}
		if _, ok := selection.Item(models.SlotBottom); !ok {
			return nil, ErrIncompleteOutfit
		}
	}

	outfit := models.NewOutfit(ownerID, strings.TrimSpace(name))
	for _, slot := range models.Slots {
		if item, ok := selection.Item(slot); ok {
			outfit.Items = append(outfit.Items, models.OutfitItem{
				ItemID:   item.ID,
				Slot:     slot,
				Position: len(outfit.Items),
			})
		}
	}
	return outfit, nil
}

// AssemblePair builds a two-item outfit from a base garment and the currently
// indexed pairing candidate. Whichever item's category belongs to the top set
// is recorded as the top, the other as the bottom, regardless of which one
// was selected first.
func (a *Assembler) AssemblePair(ownerID string, base, candidate models.ClothingItem, name string) (*models.Outfit, error) {
	if err := a.validateName(name); err != nil {
		return nil, err
	}

	top, bottom := base, candidate
	if topCategories[candidate.Category] && bottomCategories[base.Category] {
		top, bottom = candidate, base
	}

	outfit := models.NewOutfit(ownerID, strings.TrimSpace(name))
	outfit.Items = []models.OutfitItem{
		{ItemID: top.ID, Slot: models.SlotTop, Position: 0},
		{ItemID: bottom.ID, Slot: models.SlotBottom, Position: 1},
	}
	return outfit, nil
}

// AssembleSet builds a freeform outfit from an arbitrary item set, with no
// slot semantics attached.
func (a *Assembler) AssembleSet(ownerID string, items []models.ClothingItem, name string) (*models.Outfit, error) {
	if err := a.validateName(name); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItemsSelected
	}

	outfit := models.NewOutfit(ownerID, strings.TrimSpace(name))
	for i, item := range items {
		outfit.Items = append(outfit.Items, models.OutfitItem{
			ItemID:   item.ID,
			Position: i,
		})
	}
	return outfit, nil
}

func (a *Assembler) validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	return nil
}
