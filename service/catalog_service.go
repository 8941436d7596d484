package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/yansassi/hecho-adm-sub001/catalog"
	"github.com/yansassi/hecho-adm-sub001/models"
	"github.com/yansassi/hecho-adm-sub001/pdf"
	"github.com/yansassi/hecho-adm-sub001/repository"
)

// CatalogRenderer lays out products into a PDF
type CatalogRenderer interface {
	Generate(ctx context.Context, products []models.Product, opts models.RenderOptions, w io.Writer) (*pdf.Result, error)
}

// CatalogService handles catalog generation operations
type CatalogService struct {
	products    repository.CatalogRepositoryInterface
	promotions  repository.PromotionRepositoryInterface
	bestSellers repository.BestSellerRepositoryInterface
	renderer    CatalogRenderer
	log         *zap.SugaredLogger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	products repository.CatalogRepositoryInterface,
	promotions repository.PromotionRepositoryInterface,
	bestSellers repository.BestSellerRepositoryInterface,
	renderer CatalogRenderer,
	log *zap.Logger,
) *CatalogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogService{
		products:    products,
		promotions:  promotions,
		bestSellers: bestSellers,
		renderer:    renderer,
		log:         log.Sugar(),
	}
}

// GenerateCatalog loads the products selected by req with their promotions and
// best sellers and writes the catalog PDF to w
func (s *CatalogService) GenerateCatalog(ctx context.Context, req models.GenerateCatalogRequest, w io.Writer) (*pdf.Result, error) {
	products, err := s.products.GetProductsForCatalog(ctx, repository.CatalogFilter{
		CategoryIDs: req.CategoryIDs,
		ProductIDs:  req.ProductIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	if len(products) == 0 {
		return nil, pdf.ErrNoProducts
	}
	s.log.Infof("📦 Generating %s catalog %q with %d products", req.Layout, req.Title, len(products))

	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	promotions, err := s.promotions.GetActivePromotions(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load promotions: %w", err)
	}

	bestSellers, err := s.loadBestSellers(ctx)
	if err != nil {
		return nil, err
	}

	tier := req.PriceType
	if !tier.Valid() {
		tier = models.PriceTierRetail
	}

	opts := models.RenderOptions{
		Layout:       req.Layout,
		IncludePrice: req.IncludePrice,
		Title:        strings.TrimSpace(req.Title),
		PriceTier:    tier,
		Promotions:   promotions,
		BestSellers:  bestSellers,
		IncludeCover: req.IncludeCover,
	}

	result, err := s.renderer.Generate(ctx, products, opts, w)
	if err != nil {
		return nil, fmt.Errorf("failed to generate catalog: %w", err)
	}
	s.log.Infof("🎉 Catalog %s generated: %d pages", result.FileName, len(result.Pages))
	return result, nil
}

// loadBestSellers merges manual flags over the computed top sellers
func (s *CatalogService) loadBestSellers(ctx context.Context) ([]models.BestSeller, error) {
	manual, err := s.bestSellers.GetManualBestSellers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load manual best sellers: %w", err)
	}
	computed, err := s.bestSellers.GetTopSellers(ctx, catalog.TopSellersLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load top sellers: %w", err)
	}
	return catalog.MergeBestSellers(manual, computed), nil
}
