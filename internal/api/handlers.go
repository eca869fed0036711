package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/stylerack/stylerack/internal/composer"
	"github.com/stylerack/stylerack/internal/database"
	"github.com/stylerack/stylerack/internal/models"
	"github.com/stylerack/stylerack/internal/processing"
	"github.com/stylerack/stylerack/internal/storage"
)

type App struct {
	Storage       storage.Storage
	DB            *database.DB
	ItemRepo      *database.ItemRepository
	OutfitRepo    *database.OutfitRepository
	Processor     processing.Processor
	Assembler     *composer.Assembler
	MaxUploadSize int64
	UploadDir     string
	Logger        zerolog.Logger
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

// requireUser resolves the authenticated user. Authentication itself is an
// external collaborator; the gateway injects the user ID per request.
func (app *App) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	return userID, true
}

// pendingItem is the value object produced by processing an upload. It lives
// only between the process call and the confirm-and-save call; the client
// sends it back with the user-confirmed category and color.
type pendingItem struct {
	ImageURL          string          `json:"imageUrl"`
	OriginalImage     string          `json:"originalImage"`
	PredictedCategory models.Category `json:"predictedCategory"`
}

// ProcessItemHandler accepts a raw image upload, stores the original, runs
// background removal and category prediction, and returns the pending item
// for the user to confirm.
func (app *App) ProcessItemHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := app.requireUser(w, r); !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, app.MaxUploadSize)
	if err := r.ParseMultipartForm(app.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "file too large")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to get image file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") && contentType != "application/octet-stream" {
		respondError(w, http.StatusBadRequest, "only image uploads are allowed")
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read image file")
		return
	}

	originalName, err := app.Storage.SaveFile(bytes.NewReader(raw), storage.FileInfo{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save upload")
		return
	}

	pending := pendingItem{
		OriginalImage:     "/uploads/" + originalName,
		ImageURL:          "/uploads/" + originalName,
		PredictedCategory: processing.PredictCategoryFromFilename(header.Filename),
	}

	if app.Processor != nil {
		result, err := app.Processor.Process(r.Context(), header.Filename, bytes.NewReader(raw))
		if err != nil {
			// Pending state is cleared so the user can retry from scratch.
			app.Storage.DeleteFile(originalName)
			app.Logger.Error().Err(err).Msg("image processing failed")
			respondError(w, http.StatusBadGateway, "image processing failed")
			return
		}
		pending.ImageURL = result.ImagePath
		pending.PredictedCategory = models.Category(result.Category)
	}

	respondJSON(w, http.StatusOK, pending)
}

type createItemRequest struct {
	ImageURL      string `json:"imageUrl"`
	OriginalImage string `json:"originalImage"`
	Category      string `json:"category"`
	Color         string `json:"color"`
}

// CreateItemHandler consumes a confirmed pending item and adds it to the
// wardrobe.
func (app *App) CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireUser(w, r)
	if !ok {
		return
	}

	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ImageURL == "" {
		respondError(w, http.StatusBadRequest, "image is required")
		return
	}
	category := models.Category(req.Category)
	if !category.Valid() {
		respondError(w, http.StatusBadRequest, "unknown category")
		return
	}
	color := models.Color(req.Color)
	if !color.Valid() {
		respondError(w, http.StatusBadRequest, "please select a color for the item")
		return
	}

	item := models.NewClothingItem(userID, req.ImageURL, req.OriginalImage, category, color)
	if err := app.ItemRepo.Insert(r.Context(), item); err != nil {
		app.Logger.Error().Err(err).Msg("failed to insert clothing item")
		respondError(w, http.StatusInternalServerError, "failed to save item")
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// ListItemsHandler returns the wardrobe filtered by the category and color
// query parameters. With grouped=1 the result is grouped by category for
// row display.
func (app *App) ListItemsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireUser(w, r)
	if !ok {
		return
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		category = composer.FilterAll
	}
	if category != composer.FilterAll && !models.Category(category).Valid() {
		respondError(w, http.StatusBadRequest, "unknown category filter")
		return
	}

	color := r.URL.Query().Get("color")
	if color == "" {
		color = composer.FilterAll
	}
	if color != composer.FilterAll && !models.Color(color).Valid() {
		respondError(w, http.StatusBadRequest, "unknown color filter")
		return
	}

	items, err := app.ItemRepo.ListByOwner(r.Context(), userID)
	if err != nil {
		app.Logger.Error().Err(err).Msg("failed to list clothing items")
		respondError(w, http.StatusInternalServerError, "failed to load wardrobe")
		return
	}

	filtered := composer.Filter(items, category, color)

	if r.URL.Query().Get("grouped") == "1" {
		respondJSON(w, http.StatusOK, composer.GroupByCategory(filtered))
		return
	}
	respondJSON(w, http.StatusOK, filtered)
}

// getOwnedItem loads an item and checks it belongs to the requesting user.
// Foreign items are reported as not found rather than forbidden.
func (app *App) getOwnedItem(w http.ResponseWriter, r *http.Request, userID string) (*models.ClothingItem, bool) {
	id := chi.URLParam(r, "id")
	item, err := app.ItemRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrItemNotFound) {
			respondError(w, http.StatusNotFound, "item not found")
		} else {
			app.Logger.Error().Err(err).Str("item_id", id).Msg("failed to load clothing item")
			respondError(w, http.StatusInternalServerError, "failed to load item")
		}
		return nil, false
	}
	if item.OwnerID != userID {
		respondError(w, http.StatusNotFound, "item not found")
		return nil, false
	}
	return item, true
}

type updateItemRequest struct {
	Category *string `json:"category"`
	Color    *string `json:"color"`
}

// UpdateItemHandler corrects an item's category and/or color.
func (app *App) UpdateItemHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireUser(w, r)
	if !ok {
		return
	}

	item, ok := app.getOwnedItem(w, r, userID)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Category == nil && req.Color == nil {
		respondError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	if req.Category != nil {
		category := models.Category(*req.Category)
		if !category.Valid() {
			respondError(w, http.StatusBadRequest, "unknown category")
			return
		}
		if err := app.ItemRepo.UpdateCategory(r.Context(), item.ID, category); err != nil {
			app.Logger.Error().Err(err).Str("item_id", item.ID).Msg("failed to update category")
			respondError(w, http.StatusInternalServerError, "failed to update item")
			return
		}
		item.Category = category
	}

	if req.Color != nil {
		color := models.Color(*req.Color)
		if !color.Valid() {
			respondError(w, http.StatusBadRequest, "unknown color")
			return
		}
		if err := app.ItemRepo.UpdateColor(r.Context(), item.ID, color); err != nil {
			app.Logger.Error().Err(err).Str("item_id", item.ID).Msg("failed to update color")
			respondError(w, http.StatusInternalServerError, "failed to update item")
			return
		}
		item.Color = color
	}

	respondJSON(w, http.StatusOK, item)
}

func (app *App) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireUser(w, r)
	if !ok {
		return
	}

	item, ok := app.getOwnedItem(w, r, userID)
	if !ok {
		return
	}

	if err := app.ItemRepo.Delete(r.Context(), item.ID); err != nil {
		app.Logger.Error().Err(err).Str("item_id", item.ID).Msg("failed to delete clothing item")
		respondError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
