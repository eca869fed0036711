package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stylerack/stylerack/internal/composer"
	"github.com/stylerack/stylerack/internal/database"
	"github.com/stylerack/stylerack/internal/models"
)

type createOutfitRequest struct {
	Name  string            `json:"name"`
	Slots map[string]string `json:"slots,omitempty"`
	Pair  *pairSelection    `json:"pair,omitempty"`
	Items []string          `json:"items,omitempty"`
}

type pairSelection struct {
	BaseID      string `json:"baseId"`
	CandidateID string `json:"candidateId"`
}

// CreateOutfitHandler assembles and persists an outfit. The payload carries
// exactly one selection shape: a slot map, a base/candidate pair, or a
// freeform item list. All three normalize to the same stored representation.
func (app *App) CreateOutfitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireUser(w, r)
	if !ok {
		return
	}

	var req createOutfitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var outfit *models.Outfit
	var err error

	switch {
	case req.Pair != nil:
		outfit, err = app.assemblePair(w, r, userID, &req)
	case len(req.Slots) > 0:
		outfit, err = app.assembleSlots(w, r, userID, &req)
	case len(req.Items) > 0:
		outfit, err = app.assembleSet(w, r, userID, &req)
	default:
		err = composer.ErrNoItemsSelected
	}
	if outfit == nil && err == nil {
		// A response was already written while resolving items.
		return
	}
	if err != nil {
		switch {
		case errors.Is(err, composer.ErrNameRequired),
			errors.Is(err, composer.ErrNoItemsSelected),
			errors.Is(err, composer.ErrIncompleteOutfit):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			app.Logger.Error().Err(err).Msg("failed to assemble outfit")
			respondError(w, http.StatusInternalServerError, "failed to save outfit")
		}
		return
	}

	if err := app.OutfitRepo.Create(r.Context(), outfit); err != nil {
		app.Logger.Error().Err(err).Msg("failed to persist outfit")
		respondError(w, http.StatusInternalServerError, "failed to save outfit")
		return
	}

	saved, err := app.OutfitRepo.GetByID(r.Context(), outfit.ID)
	if err != nil {
		app.Logger.Error().Err(err).Str("outfit_id", outfit.ID).Msg("failed to reload outfit")
		respondError(w, http.StatusInternalServerError, "failed to save outfit")
		return
	}

	respondJSON(w, http.StatusCreated, saved)
}

func (app *App) assemblePair(w http.ResponseWriter, r *http.Request, userID string, req *createOutfitRequest) (*models.Outfit, error) {
	base, ok := app.resolveItem(w, r, userID, req.Pair.BaseID)
	if !ok {
		return nil, nil
	}
	candidate, ok := app.resolveItem(w, r, userID, req.Pair.CandidateID)
	if !ok {
		return nil, nil
	}
	if !composer.CanPair(base.Category, candidate.Category) {
		respondError(w, http.StatusBadRequest, "these items cannot be paired")
		return nil, nil
	}
	return app.Assembler.AssemblePair(userID, *base, *candidate, req.Name)
}

func (app *App) assembleSlots(w http.ResponseWriter, r *http.Request, userID string, req *createOutfitRequest) (*models.Outfit, error) {
	selection := composer.NewSlotAssignment()
	for slotName, itemID := range req.Slots {
		slot := models.Slot(slotName)
		if !slot.Valid() {
			respondError(w, http.StatusBadRequest, "unknown slot: "+slotName)
			return nil, nil
		}
		item, ok := app.resolveItem(w, r, userID, itemID)
		if !ok {
			return nil, nil
		}
		selection.Assign(slot, *item)
	}
	return app.Assembler.AssembleSlots(userID, selection, req.Name)
}

func (app *App) assembleSet(w http.ResponseWriter, r *http.Request, userID string, req *createOutfitRequest) (*models.Outfit, error) {
	items := make([]models.ClothingItem, 0, len(req.Items))
	for _, itemID := range req.Items {
		item, ok := app.resolveItem(w, r, userID, itemID)
		if !ok {
			return nil, nil
		}
		items = append(items, *item)
	}
	return app.Assembler.AssembleSet(userID, items, req.Name)
}

// resolveItem loads a referenced wardrobe item, writing the error response
// itself when the reference is bad.
func (app *App) resolveItem(w http.ResponseWriter, r *http.Request, userID, itemID string) (*models.ClothingItem, bool) {
	item, err := app.ItemRepo.GetByID(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, database.ErrItemNotFound) {
			respondError(w, http.StatusBadRequest, "unknown item: "+itemID)
		} else {
			app.Logger.Error().Err(err).Str("item_id", itemID).Msg("failed to resolve item")
			respondError(w, http.StatusInternalServerError, "failed to load item")
		}
		return nil, false
	}
	if item.OwnerID != userID {
		respondError(w, http.StatusBadRequest, "unknown item: "+itemID)
		return nil, false
	}
	return item, true
}

func (app *App) ListOutfitsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireUser(w, r)
	if !ok {
		return
	}

	outfits, err := app.OutfitRepo.ListByOwner(r.Context(), userID)
	if err != nil {
		app.Logger.Error().Err(err).Msg("failed to list outfits")
		respondError(w, http.StatusInternalServerError, "failed to load outfits")
		return
	}

	respondJSON(w, http.StatusOK, outfits)
}

func (app *App) DeleteOutfitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireUser(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	outfit, err := app.OutfitRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrOutfitNotFound) {
			respondError(w, http.StatusNotFound, "outfit not found")
		} else {
			app.Logger.Error().Err(err).Str("outfit_id", id).Msg("failed to load outfit")
			respondError(w, http.StatusInternalServerError, "failed to load outfit")
		}
		return
	}
	if outfit.OwnerID != userID {
		respondError(w, http.StatusNotFound, "outfit not found")
		return
	}

	if err := app.OutfitRepo.Delete(r.Context(), id); err != nil {
		app.Logger.Error().Err(err).Str("outfit_id", id).Msg("failed to delete outfit")
		respondError(w, http.StatusInternalServerError, "failed to delete outfit")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
