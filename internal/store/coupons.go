package store

import (
	"context"

	"storefront-service/internal/models"
)

// ListCoupons retrieves all coupons owned by a user
func (s *Store) ListCoupons(ctx context.Context, ownerID string) ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := s.db.SelectContext(ctx, &coupons,
		"SELECT * FROM coupons WHERE owner_id = $1 ORDER BY created_at", ownerID)
	return coupons, err
}

// InsertCoupon inserts a coupon row tagged with its owning user
func (s *Store) InsertCoupon(ctx context.Context, c *models.Coupon) error {
	query := `
		INSERT INTO coupons (id, owner_id, code, description, discount_type,
			discount, max_uses, current_uses, expires_at, active, created_at)
		VALUES (:id, :owner_id, :code, :description, :discount_type,
			:discount, :max_uses, :current_uses, :expires_at, :active, :created_at)`

	_, err := s.db.NamedExecContext(ctx, query, c)
	return err
}

// UpdateCoupon updates a coupon row scoped to (id, owner)
func (s *Store) UpdateCoupon(ctx context.Context, c *models.Coupon) error {
	query := `
		UPDATE coupons SET code = :code, description = :description,
			discount_type = :discount_type, discount = :discount,
			max_uses = :max_uses, current_uses = :current_uses,
			expires_at = :expires_at, active = :active
		WHERE id = :id AND owner_id = :owner_id`

	_, err := s.db.NamedExecContext(ctx, query, c)
	return err
}

// DeleteCoupon deletes a coupon row scoped to (id, owner)
func (s *Store) DeleteCoupon(ctx context.Context, ownerID, id string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM coupons WHERE id = $1 AND owner_id = $2", id, ownerID)
	return err
}
