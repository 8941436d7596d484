package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yansassi/hecho-adm-sub001/models"
)

// PromotionRepository handles database operations for promotions
type PromotionRepository struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

// NewPromotionRepository creates a new PromotionRepository
func NewPromotionRepository(db *sqlx.DB, log *zap.Logger) *PromotionRepository {
	return &PromotionRepository{db: db, log: log.Sugar()}
}

// Ensure PromotionRepository implements PromotionRepositoryInterface
var _ PromotionRepositoryInterface = (*PromotionRepository)(nil)

// GetActivePromotions returns active promotions in creation order, optionally
// limited to productIDs. Callers keep the first one per product.
func (r *PromotionRepository) GetActivePromotions(ctx context.Context, productIDs []int64) ([]models.Promotion, error) {
	query := `
		SELECT
			id,
			product_id,
			promotional_price,
			COALESCE(discount_value, 0) AS discount_value,
			COALESCE(discount_type, 'percentage') AS discount_type,
			active
		FROM promotions
		WHERE active = TRUE`
	var args []interface{}
	if len(productIDs) > 0 {
		query += " AND product_id IN (?)"
		args = append(args, productIDs)
	}
	query += " ORDER BY id"

	query, args, err := expandIn(query, args)
	if err != nil {
		return nil, err
	}

	var promotions []models.Promotion
	if err := r.db.SelectContext(ctx, &promotions, r.db.Rebind(query), args...); err != nil {
		r.log.Errorf("❌ Error querying promotions: %v", err)
		return nil, fmt.Errorf("failed to query promotions: %w", err)
	}
	return promotions, nil
}
