package integration

import (
	"net/http"
	"testing"

	"github.com/stylerack/stylerack/internal/models"
)

func TestCreateOutfit_PairMode(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Cleanup()

	shirt := ts.seedItem(t, models.CategoryShortsleeve, models.ColorBlue)
	jeans := ts.seedItem(t, models.CategoryPants, models.ColorBlack)

	// The jeans are the base: classification must still put the shirt on top.
	resp := ts.doJSON(t, "POST", "/api/outfits", map[string]any{
		"name": "Casual",
		"pair": map[string]string{"baseId": jeans.ID, "candidateId": shirt.ID},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	outfit := decodeJSON[models.Outfit](t, resp)
	if outfit.Name != "Casual" {
		t.Errorf("Expected name Casual, got %s", outfit.Name)
	}
	if len(outfit.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(outfit.Items))
	}
	if outfit.Items[0].Slot != models.SlotTop || outfit.Items[0].ItemID != shirt.ID {
		t.Errorf("Expected shirt on top, got %s in %s", outfit.Items[0].ItemID, outfit.Items[0].Slot)
	}
	if outfit.Items[1].Slot != models.SlotBottom || outfit.Items[1].ItemID != jeans.ID {
		t.Errorf("Expected jeans on bottom, got %s in %s", outfit.Items[1].ItemID, outfit.Items[1].Slot)
	}
	if outfit.Items[0].Item == nil || outfit.Items[0].Item.Category != models.CategoryShortsleeve {
		t.Error("Expected resolved item data in response")
	}
}

func TestCreateOutfit_SlotMode(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Cleanup()

	shirt := ts.seedItem(t, models.CategoryShortsleeve, models.ColorBlue)
	sneakers := ts.seedItem(t, models.CategoryShoes, models.ColorWhite)

	resp := ts.doJSON(t, "POST", "/api/outfits", map[string]any{
		"name":  "Summer",
		"slots": map[string]string{"top": shirt.ID, "shoes": sneakers.ID},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	outfit := decodeJSON[models.Outfit](t, resp)
	if len(outfit.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(outfit.Items))
	}
	if outfit.Items[0].Slot != models.SlotTop {
		t.Errorf("Expected top slot first, got %s", outfit.Items[0].Slot)
	}
	if outfit.Items[1].Slot != models.SlotShoes {
		t.Errorf("Expected shoes slot second, got %s", outfit.Items[1].Slot)
	}
}

func TestCreateOutfit_Validation(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Cleanup()

	shirt := ts.seedItem(t, models.CategoryShortsleeve, models.ColorBlue)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"Empty name", map[string]any{"name": "", "slots": map[string]string{"top": shirt.ID}}},
		{"Whitespace name", map[string]any{"name": "   ", "slots": map[string]string{"top": shirt.ID}}},
		{"No selection", map[string]any{"name": "My Outfit"}},
		{"Unknown item", map[string]any{"name": "My Outfit", "items": []string{"no-such-item"}}},
		{"Unknown slot", map[string]any{"name": "My Outfit", "slots": map[string]string{"cape": shirt.ID}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.doJSON(t, "POST", "/api/outfits", tt.payload)
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", resp.StatusCode)
			}
		})
	}

	if count := countRows(t, ts.DB.Conn(), "outfits"); count != 0 {
		t.Errorf("Expected no outfits after failed saves, got %d", count)
	}
}

func TestCreateOutfit_DuplicateSavesGetDistinctIDs(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Cleanup()

	shirt := ts.seedItem(t, models.CategoryShortsleeve, models.ColorBlue)
	payload := map[string]any{
		"name":  "Same Outfit",
		"slots": map[string]string{"top": shirt.ID},
	}

	first := decodeJSON[models.Outfit](t, ts.doJSON(t, "POST", "/api/outfits", payload))
	second := decodeJSON[models.Outfit](t, ts.doJSON(t, "POST", "/api/outfits", payload))

	if first.ID == second.ID {
		t.Error("Expected distinct outfit IDs for repeated saves")
	}
	if count := countRows(t, ts.DB.Conn(), "outfits"); count != 2 {
		t.Errorf("Expected 2 outfits, got %d", count)
	}
}

func TestListAndDeleteOutfits(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Cleanup()

	shirt := ts.seedItem(t, models.CategoryShortsleeve, models.ColorBlue)
	jeans := ts.seedItem(t, models.CategoryPants, models.ColorBlack)

	created := decodeJSON[models.Outfit](t, ts.doJSON(t, "POST", "/api/outfits", map[string]any{
		"name": "Casual",
		"pair": map[string]string{"baseId": shirt.ID, "candidateId": jeans.ID},
	}))

	resp := ts.doJSON(t, "GET", "/api/outfits", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	outfits := decodeJSON[[]models.Outfit](t, resp)
	if len(outfits) != 1 || outfits[0].ID != created.ID {
		t.Fatalf("Expected the created outfit in the list, got %+v", outfits)
	}

	delResp := ts.doJSON(t, "DELETE", "/api/outfits/"+created.ID, nil)
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", delResp.StatusCode)
	}

	resp = ts.doJSON(t, "GET", "/api/outfits", nil)
	outfits = decodeJSON[[]models.Outfit](t, resp)
	if len(outfits) != 0 {
		t.Errorf("Expected no outfits after delete, got %d", len(outfits))
	}

	// Wardrobe items are untouched by outfit deletion.
	if count := countRows(t, ts.DB.Conn(), "clothing_items"); count != 2 {
		t.Errorf("Expected 2 items to survive, got %d", count)
	}
}

func TestDeleteItem_OutfitReadBackToleratesDanglingRef(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Cleanup()

	shirt := ts.seedItem(t, models.CategoryShortsleeve, models.ColorBlue)
	jeans := ts.seedItem(t, models.CategoryPants, models.ColorBlack)

	created := decodeJSON[models.Outfit](t, ts.doJSON(t, "POST", "/api/outfits", map[string]any{
		"name": "Casual",
		"pair": map[string]string{"baseId": shirt.ID, "candidateId": jeans.ID},
	}))

	delResp := ts.doJSON(t, "DELETE", "/api/items/"+jeans.ID, nil)
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", delResp.StatusCode)
	}

	resp := ts.doJSON(t, "GET", "/api/outfits", nil)
	outfits := decodeJSON[[]models.Outfit](t, resp)
	if len(outfits) != 1 {
		t.Fatalf("Expected the outfit to survive item deletion, got %d", len(outfits))
	}

	outfit := outfits[0]
	if outfit.ID != created.ID || len(outfit.Items) != 2 {
		t.Fatalf("Expected both references to survive, got %d", len(outfit.Items))
	}
	for _, oi := range outfit.Items {
		if oi.ItemID == jeans.ID && oi.Item != nil {
			t.Error("Expected nil Item for the deleted garment")
		}
		if oi.ItemID == shirt.ID && oi.Item == nil {
			t.Error("Expected resolved Item for the surviving garment")
		}
	}
}
