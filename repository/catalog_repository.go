package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yansassi/hecho-adm-sub001/models"
)

// CatalogRepository handles database operations for catalog generation
type CatalogRepository struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *sqlx.DB, log *zap.Logger) *CatalogRepository {
	return &CatalogRepository{db: db, log: log.Sugar()}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

const productsForCatalogQuery = `
	SELECT
		p.id,
		p.name,
		p.code,
		COALESCE(p.barcode, '') AS barcode,
		COALESCE(p.description, '') AS description,
		COALESCE(p.info, '') AS info,
		COALESCE(p.package_quantity, '') AS package_quantity,
		COALESCE(p.price_retail, 0) AS price_retail,
		COALESCE(p.price_wholesale, 0) AS price_wholesale,
		COALESCE(p.price_reseller, 0) AS price_reseller,
		COALESCE(p.stock, 0) AS stock,
		COALESCE(p.image_url, '') AS image_url,
		COALESCE(p.category_id, 0) AS category_id,
		COALESCE(c.name, '') AS category_name,
		p.created_at
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	WHERE p.is_active = TRUE`

// GetProductsForCatalog retrieves the active products, uncategorized last, with
// same-name products next to each other
func (r *CatalogRepository) GetProductsForCatalog(ctx context.Context, filter CatalogFilter) ([]models.Product, error) {
	r.log.Infof("🔍 GetProductsForCatalog: categories=%v products=%v", filter.CategoryIDs, filter.ProductIDs)

	var b strings.Builder
	b.WriteString(productsForCatalogQuery)
	var args []interface{}
	if len(filter.CategoryIDs) > 0 {
		b.WriteString(" AND p.category_id IN (?)")
		args = append(args, filter.CategoryIDs)
	}
	if len(filter.ProductIDs) > 0 {
		b.WriteString(" AND p.id IN (?)")
		args = append(args, filter.ProductIDs)
	}
	b.WriteString(`
	ORDER BY CASE WHEN c.name IS NULL THEN 1 ELSE 0 END, c.name, LOWER(p.name), p.created_at, p.id`)

	query, args, err := expandIn(b.String(), args)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := r.db.SelectContext(ctx, &products, r.db.Rebind(query), args...); err != nil {
		r.log.Errorf("❌ Error querying products for catalog: %v", err)
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	r.log.Infof("✓ Successfully fetched %d products for catalog", len(products))
	return products, nil
}

// expandIn expands slice arguments of IN (?) clauses; a query without args is returned as is
func expandIn(query string, args []interface{}) (string, []interface{}, error) {
	if len(args) == 0 {
		return query, nil, nil
	}
	expanded, expandedArgs, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, fmt.Errorf("failed to expand query arguments: %w", err)
	}
	return expanded, expandedArgs, nil
}
