package store

import (
	"context"

	"storefront-service/internal/models"
)

// ListProducts retrieves all products owned by a user
func (s *Store) ListProducts(ctx context.Context, ownerID string) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE owner_id = $1 ORDER BY created_at", ownerID)
	return products, err
}

// InsertProduct inserts a product row tagged with its owning user
func (s *Store) InsertProduct(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (id, owner_id, name, description, category, subcategory,
			price, stock, image, images, sku, weight, dimensions, warranty, material,
			status, features, created_at)
		VALUES (:id, :owner_id, :name, :description, :category, :subcategory,
			:price, :stock, :image, :images, :sku, :weight, :dimensions, :warranty,
			:material, :status, :features, :created_at)`

	_, err := s.db.NamedExecContext(ctx, query, p)
	return err
}

// UpdateProduct updates a product row scoped to (id, owner). A row belonging
// to a different user is silently untouched.
func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	query := `
		UPDATE products SET name = :name, description = :description,
			category = :category, subcategory = :subcategory, price = :price,
			stock = :stock, image = :image, images = :images, sku = :sku,
			weight = :weight, dimensions = :dimensions, warranty = :warranty,
			material = :material, status = :status, features = :features
		WHERE id = :id AND owner_id = :owner_id`

	_, err := s.db.NamedExecContext(ctx, query, p)
	return err
}

// DeleteProduct deletes a product row scoped to (id, owner)
func (s *Store) DeleteProduct(ctx context.Context, ownerID, id string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM products WHERE id = $1 AND owner_id = $2", id, ownerID)
	return err
}
