package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stylerack/stylerack/internal/models"
)

var (
	ErrItemNotFound   = errors.New("clothing item not found")
	ErrOutfitNotFound = errors.New("outfit not found")
)

// DeletionPolicy decides what happens to outfits that reference a deleted
// item.
type DeletionPolicy int

const (
	// DeletionPolicyOrphan leaves outfit references dangling; read-back
	// tolerates the missing item.
	DeletionPolicyOrphan DeletionPolicy = iota
	// DeletionPolicyCascade removes the item from every outfit that
	// references it.
	DeletionPolicyCascade
)

type ItemRepository struct {
	db     *DB
	policy DeletionPolicy
}

func NewItemRepository(db *DB, policy DeletionPolicy) *ItemRepository {
	return &ItemRepository{db: db, policy: policy}
}

func (r *ItemRepository) Insert(ctx context.Context, item *models.ClothingItem) error {
	query := `INSERT INTO clothing_items (id, owner_id, image_url, original_image, category, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if r.db.dbType == "postgres" {
		query = `INSERT INTO clothing_items (id, owner_id, image_url, original_image, category, color, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
	}

	_, err := r.db.conn.ExecContext(ctx, query,
		item.ID, item.OwnerID, item.ImageURL, item.OriginalImage,
		string(item.Category), string(item.Color), item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert clothing item: %w", err)
	}
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*models.ClothingItem, error) {
	query := `SELECT id, owner_id, image_url, original_image, category, color, created_at
		FROM clothing_items WHERE id = ?`
	if r.db.dbType == "postgres" {
		query = `SELECT id, owner_id, image_url, original_image, category, color, created_at
			FROM clothing_items WHERE id = $1`
	}

	var item models.ClothingItem
	err := r.db.conn.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.OwnerID, &item.ImageURL, &item.OriginalImage,
		&item.Category, &item.Color, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get clothing item: %w", err)
	}
	return &item, nil
}

// ListByOwner returns the owner's wardrobe in insertion order, oldest first.
func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.ClothingItem, error) {
	query := `SELECT id, owner_id, image_url, original_image, category, color, created_at
		FROM clothing_items WHERE owner_id = ? ORDER BY created_at ASC, id ASC`
	if r.db.dbType == "postgres" {
		query = `SELECT id, owner_id, image_url, original_image, category, color, created_at
			FROM clothing_items WHERE owner_id = $1 ORDER BY created_at ASC, id ASC`
	}

	rows, err := r.db.conn.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clothing items: %w", err)
	}
	defer rows.Close()

	items := make([]models.ClothingItem, 0)
	for rows.Next() {
		var item models.ClothingItem
		if err := rows.Scan(
			&item.ID, &item.OwnerID, &item.ImageURL, &item.OriginalImage,
			&item.Category, &item.Color, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan clothing item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ItemRepository) UpdateCategory(ctx context.Context, id string, category models.Category) error {
	query := `UPDATE clothing_items SET category = ? WHERE id = ?`
	if r.db.dbType == "postgres" {
		query = `UPDATE clothing_items SET category = $1 WHERE id = $2`
	}
	return r.update(ctx, query, string(category), id)
}

func (r *ItemRepository) UpdateColor(ctx context.Context, id string, color models.Color) error {
	query := `UPDATE clothing_items SET color = ? WHERE id = ?`
	if r.db.dbType == "postgres" {
		query = `UPDATE clothing_items SET color = $1 WHERE id = $2`
	}
	return r.update(ctx, query, string(color), id)
}

func (r *ItemRepository) update(ctx context.Context, query string, args ...any) error {
	result, err := r.db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update clothing item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Delete removes the item and, under the cascade policy, strips it from every
// outfit that references it. Under the orphan policy outfit references are
// left dangling and outfit read-back tolerates them.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	deleteItem := `DELETE FROM clothing_items WHERE id = ?`
	if r.db.dbType == "postgres" {
		deleteItem = `DELETE FROM clothing_items WHERE id = $1`
	}

	result, err := tx.ExecContext(ctx, deleteItem, id)
	if err != nil {
		return fmt.Errorf("failed to delete clothing item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	if r.policy == DeletionPolicyCascade {
		deleteRefs := `DELETE FROM outfit_items WHERE item_id = ?`
		if r.db.dbType == "postgres" {
			deleteRefs = `DELETE FROM outfit_items WHERE item_id = $1`
		}
		if _, err := tx.ExecContext(ctx, deleteRefs, id); err != nil {
			return fmt.Errorf("failed to cascade delete outfit references: %w", err)
		}
	}

	return tx.Commit()
}
