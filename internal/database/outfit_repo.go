package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stylerack/stylerack/internal/models"
)

type OutfitRepository struct {
	db *DB
}

func NewOutfitRepository(db *DB) *OutfitRepository {
	return &OutfitRepository{db: db}
}

// Create persists the outfit and its item references in one transaction.
func (r *OutfitRepository) Create(ctx context.Context, outfit *models.Outfit) error {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin create transaction: %w", err)
	}
	defer tx.Rollback()

	insertOutfit := `INSERT INTO outfits (id, owner_id, name, created_at) VALUES (?, ?, ?, ?)`
	insertItem := `INSERT INTO outfit_items (outfit_id, item_id, slot, position) VALUES (?, ?, ?, ?)`
	if r.db.dbType == "postgres" {
		insertOutfit = `INSERT INTO outfits (id, owner_id, name, created_at) VALUES ($1, $2, $3, $4)`
		insertItem = `INSERT INTO outfit_items (outfit_id, item_id, slot, position) VALUES ($1, $2, $3, $4)`
	}

	if _, err := tx.ExecContext(ctx, insertOutfit,
		outfit.ID, outfit.OwnerID, outfit.Name, outfit.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert outfit: %w", err)
	}

	for _, oi := range outfit.Items {
		if _, err := tx.ExecContext(ctx, insertItem,
			outfit.ID, oi.ItemID, string(oi.Slot), oi.Position); err != nil {
			return fmt.Errorf("failed to insert outfit item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *OutfitRepository) GetByID(ctx context.Context, id string) (*models.Outfit, error) {
	query := `SELECT id, owner_id, name, created_at FROM outfits WHERE id = ?`
	if r.db.dbType == "postgres" {
		query = `SELECT id, owner_id, name, created_at FROM outfits WHERE id = $1`
	}

	var outfit models.Outfit
	err := r.db.conn.QueryRowContext(ctx, query, id).Scan(
		&outfit.ID, &outfit.OwnerID, &outfit.Name, &outfit.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOutfitNotFound
		}
		return nil, fmt.Errorf("failed to get outfit: %w", err)
	}

	if err := r.loadItems(ctx, &outfit); err != nil {
		return nil, err
	}
	return &outfit, nil
}

// ListByOwner returns the owner's outfits, newest first, with item references
// resolved. References to deleted items are kept with a nil Item so callers
// can render a placeholder.
func (r *OutfitRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Outfit, error) {
	query := `SELECT id, owner_id, name, created_at FROM outfits WHERE owner_id = ? ORDER BY created_at DESC, id DESC`
	if r.db.dbType == "postgres" {
		query = `SELECT id, owner_id, name, created_at FROM outfits WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`
	}

	rows, err := r.db.conn.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list outfits: %w", err)
	}
	defer rows.Close()

	outfits := make([]models.Outfit, 0)
	for rows.Next() {
		var outfit models.Outfit
		if err := rows.Scan(&outfit.ID, &outfit.OwnerID, &outfit.Name, &outfit.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outfit: %w", err)
		}
		outfits = append(outfits, outfit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range outfits {
		if err := r.loadItems(ctx, &outfits[i]); err != nil {
			return nil, err
		}
	}
	return outfits, nil
}

func (r *OutfitRepository) loadItems(ctx context.Context, outfit *models.Outfit) error {
	query := `
		SELECT oi.item_id, oi.slot, oi.position,
			ci.id, ci.owner_id, ci.image_url, ci.original_image, ci.category, ci.color, ci.created_at
		FROM outfit_items oi
		LEFT JOIN clothing_items ci ON ci.id = oi.item_id
		WHERE oi.outfit_id = ?
		ORDER BY oi.position ASC`
	if r.db.dbType == "postgres" {
		query = `
			SELECT oi.item_id, oi.slot, oi.position,
				ci.id, ci.owner_id, ci.image_url, ci.original_image, ci.category, ci.color, ci.created_at
			FROM outfit_items oi
			LEFT JOIN clothing_items ci ON ci.id = oi.item_id
			WHERE oi.outfit_id = $1
			ORDER BY oi.position ASC`
	}

	rows, err := r.db.conn.QueryContext(ctx, query, outfit.ID)
	if err != nil {
		return fmt.Errorf("failed to load outfit items: %w", err)
	}
	defer rows.Close()

	outfit.Items = make([]models.OutfitItem, 0)
	for rows.Next() {
		var oi models.OutfitItem
		var slot string
		var id, ownerID, imageURL, originalImage, category, color sql.NullString
		var createdAt sql.NullTime

		if err := rows.Scan(&oi.ItemID, &slot, &oi.Position,
			&id, &ownerID, &imageURL, &originalImage, &category, &color, &createdAt); err != nil {
			return fmt.Errorf("failed to scan outfit item: %w", err)
		}
		oi.Slot = models.Slot(slot)

		// Deleted item: keep the reference, leave Item nil.
		if id.Valid {
			oi.Item = &models.ClothingItem{
				ID:            id.String,
				OwnerID:       ownerID.String,
				ImageURL:      imageURL.String,
				OriginalImage: originalImage.String,
				Category:      models.Category(category.String),
				Color:         models.Color(color.String),
				CreatedAt:     createdAt.Time,
			}
		}
		outfit.Items = append(outfit.Items, oi)
	}
	return rows.Err()
}

func (r *OutfitRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	deleteOutfit := `DELETE FROM outfits WHERE id = ?`
	deleteItems := `DELETE FROM outfit_items WHERE outfit_id = ?`
	if r.db.dbType == "postgres" {
		deleteOutfit = `DELETE FROM outfits WHERE id = $1`
		deleteItems = `DELETE FROM outfit_items WHERE outfit_id = $1`
	}

	result, err := tx.ExecContext(ctx, deleteOutfit, id)
	if err != nil {
		return fmt.Errorf("failed to delete outfit: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrOutfitNotFound
	}

	if _, err := tx.ExecContext(ctx, deleteItems, id); err != nil {
		return fmt.Errorf("failed to delete outfit items: %w", err)
	}

	return tx.Commit()
}
