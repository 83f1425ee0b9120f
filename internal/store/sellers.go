package store

import (
	"context"

	"storefront-service/internal/models"
)

// ListSellers retrieves all sellers owned by a user, in creation order.
// Creation order matters downstream: category attribution is first-match.
func (s *Store) ListSellers(ctx context.Context, ownerID string) ([]models.Seller, error) {
	var sellers []models.Seller
	err := s.db.SelectContext(ctx, &sellers,
		"SELECT * FROM sellers WHERE owner_id = $1 ORDER BY created_at", ownerID)
	return sellers, err
}

// InsertSeller inserts a seller row tagged with its owning user
func (s *Store) InsertSeller(ctx context.Context, sel *models.Seller) error {
	query := `
		INSERT INTO sellers (id, owner_id, name, email, phone, commission_rate,
			categories, avatar_initial, created_at)
		VALUES (:id, :owner_id, :name, :email, :phone, :commission_rate,
			:categories, :avatar_initial, :created_at)`

	_, err := s.db.NamedExecContext(ctx, query, sel)
	return err
}

// UpdateSeller updates a seller row scoped to (id, owner)
func (s *Store) UpdateSeller(ctx context.Context, sel *models.Seller) error {
	query := `
		UPDATE sellers SET name = :name, email = :email, phone = :phone,
			commission_rate = :commission_rate, categories = :categories,
			avatar_initial = :avatar_initial
		WHERE id = :id AND owner_id = :owner_id`

	_, err := s.db.NamedExecContext(ctx, query, sel)
	return err
}

// DeleteSeller deletes a seller row scoped to (id, owner)
func (s *Store) DeleteSeller(ctx context.Context, ownerID, id string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM sellers WHERE id = $1 AND owner_id = $2", id, ownerID)
	return err
}
