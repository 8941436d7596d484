package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yansassi/hecho-adm-sub001/models"
)

// BestSellerRepository handles database operations for best sellers
type BestSellerRepository struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

// NewBestSellerRepository creates a new BestSellerRepository
func NewBestSellerRepository(db *sqlx.DB, log *zap.Logger) *BestSellerRepository {
	return &BestSellerRepository{db: db, log: log.Sugar()}
}

// Ensure BestSellerRepository implements BestSellerRepositoryInterface
var _ BestSellerRepositoryInterface = (*BestSellerRepository)(nil)

// GetManualBestSellers returns the curated best seller entries, active or not
func (r *BestSellerRepository) GetManualBestSellers(ctx context.Context) ([]models.BestSeller, error) {
	query := `SELECT product_id, active FROM best_sellers ORDER BY product_id`

	var entries []models.BestSeller
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		r.log.Errorf("❌ Error querying manual best sellers: %v", err)
		return nil, fmt.Errorf("failed to query best sellers: %w", err)
	}
	for i := range entries {
		entries[i].Source = models.BestSellerManual
	}
	return entries, nil
}

// GetTopSellers ranks products by quantity sold across non-cancelled sales
func (r *BestSellerRepository) GetTopSellers(ctx context.Context, limit int) ([]models.BestSeller, error) {
	query := `
		SELECT
			si.product_id AS product_id,
			SUM(si.quantity) AS quantity_sold
		FROM sale_items si
		INNER JOIN sales s ON s.id = si.sale_id
		WHERE s.status <> 'cancelled'
		GROUP BY si.product_id
		ORDER BY quantity_sold DESC, si.product_id ASC
		LIMIT ?`

	var entries []models.BestSeller
	if err := r.db.SelectContext(ctx, &entries, r.db.Rebind(query), limit); err != nil {
		r.log.Errorf("❌ Error computing top sellers: %v", err)
		return nil, fmt.Errorf("failed to compute top sellers: %w", err)
	}
	for i := range entries {
		entries[i].Active = true
		entries[i].Source = models.BestSellerComputed
	}
	r.log.Infof("🏆 Computed %d top sellers", len(entries))
	return entries, nil
}
