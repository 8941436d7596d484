package repository

import (
	"context"

	"github.com/yansassi/hecho-adm-sub001/models"
)

// CatalogFilter narrows the products loaded for a catalog. Empty slices mean no filter.
type CatalogFilter struct {
	CategoryIDs []int64
	ProductIDs  []int64
}

// CatalogRepositoryInterface defines the contract for reading catalog products
type CatalogRepositoryInterface interface {
	GetProductsForCatalog(ctx context.Context, filter CatalogFilter) ([]models.Product, error)
}

// PromotionRepositoryInterface defines the contract for reading promotions
type PromotionRepositoryInterface interface {
	GetActivePromotions(ctx context.Context, productIDs []int64) ([]models.Promotion, error)
}

// BestSellerRepositoryInterface defines the contract for reading best sellers
type BestSellerRepositoryInterface interface {
	GetManualBestSellers(ctx context.Context) ([]models.BestSeller, error)
	GetTopSellers(ctx context.Context, limit int) ([]models.BestSeller, error)
}
