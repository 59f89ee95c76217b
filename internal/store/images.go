package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SetItemImage stores the photo of an item, replacing any previous one.
func SetItemImage(ctx context.Context, db *sql.DB, itemID string, image []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO item_images (item_id, image, image_mime) VALUES (?, ?, ?)
		 ON CONFLICT(item_id) DO UPDATE SET image = excluded.image, image_mime = excluded.image_mime`,
		itemID, image, mime,
	)
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	return nil
}

// GetItemImage returns an item's image data and MIME type. Missing images
// return nil data and no error.
func GetItemImage(ctx context.Context, db *sql.DB, itemID string) ([]byte, string, error) {
	var image []byte
	var mime string
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM item_images WHERE item_id = ?`, itemID,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return image, mime, nil
}

// DeleteItemImage removes an item's photo.
func DeleteItemImage(ctx context.Context, db *sql.DB, itemID string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM item_images WHERE item_id = ?`, itemID); err != nil {
		return fmt.Errorf("deleting item image: %w", err)
	}
	return nil
}
