package api

import (
	"net/http"

	"github.com/stylerack/stylerack/internal/composer"
	"github.com/stylerack/stylerack/internal/models"
)

type pairTargetsResponse struct {
	Category models.Category   `json:"category"`
	Targets  []models.Category `json:"targets"`
}

// PairTargetsHandler returns the categories the selected item may be paired
// with.
func (app *App) PairTargetsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireUser(w, r)
	if !ok {
		return
	}

	item, ok := app.getOwnedItem(w, r, userID)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, pairTargetsResponse{
		Category: item.Category,
		Targets:  composer.PairTargets(item.Category),
	})
}

type candidatesResponse struct {
	Target     models.Category       `json:"target"`
	Candidates []models.ClothingItem `json:"candidates"`
}

// CandidatesHandler enumerates the wardrobe items in the chosen target
// category as pairing candidates for the selected item. The client pages
// through the result with a cursor; an empty list is a valid state in which
// saving is disabled.
func (app *App) CandidatesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireUser(w, r)
	if !ok {
		return
	}

	item, ok := app.getOwnedItem(w, r, userID)
	if !ok {
		return
	}

	target := models.Category(r.URL.Query().Get("target"))
	if !target.Valid() {
		respondError(w, http.StatusBadRequest, "unknown target category")
		return
	}
	if !composer.CanPair(item.Category, target) {
		respondError(w, http.StatusBadRequest, "target category cannot be paired with this item")
		return
	}

	items, err := app.ItemRepo.ListByOwner(r.Context(), userID)
	if err != nil {
		app.Logger.Error().Err(err).Msg("failed to list clothing items")
		respondError(w, http.StatusInternalServerError, "failed to load wardrobe")
		return
	}

	respondJSON(w, http.StatusOK, candidatesResponse{
		Target:     target,
		Candidates: composer.Candidates(items, target),
	})
}
