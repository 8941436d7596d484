package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yansassi/hecho-adm-sub001/models"
	"github.com/yansassi/hecho-adm-sub001/pdf"
	"github.com/yansassi/hecho-adm-sub001/repository"
)

type stubCatalogRepo struct {
	products []models.Product
	filter   repository.CatalogFilter
	err      error
}

func (s *stubCatalogRepo) GetProductsForCatalog(_ context.Context, filter repository.CatalogFilter) ([]models.Product, error) {
	s.filter = filter
	return s.products, s.err
}

type stubPromotionRepo struct {
	promotions []models.Promotion
	ids        []int64
}

func (s *stubPromotionRepo) GetActivePromotions(_ context.Context, ids []int64) ([]models.Promotion, error) {
	s.ids = ids
	return s.promotions, nil
}

type stubBestSellerRepo struct {
	manual   []models.BestSeller
	computed []models.BestSeller
	limit    int
	err      error
}

func (s *stubBestSellerRepo) GetManualBestSellers(context.Context) ([]models.BestSeller, error) {
	return s.manual, s.err
}

func (s *stubBestSellerRepo) GetTopSellers(_ context.Context, limit int) ([]models.BestSeller, error) {
	s.limit = limit
	return s.computed, nil
}

type stubRenderer struct {
	products []models.Product
	opts     models.RenderOptions
	err      error
}

func (s *stubRenderer) Generate(_ context.Context, products []models.Product, opts models.RenderOptions, w io.Writer) (*pdf.Result, error) {
	s.products = products
	s.opts = opts
	if s.err != nil {
		return nil, s.err
	}
	_, _ = w.Write([]byte("%PDF-1.3"))
	return &pdf.Result{FileName: "x.pdf", Pages: []pdf.PageInfo{{Number: 1}}}, nil
}

func TestGenerateCatalog(t *testing.T) {
	products := &stubCatalogRepo{products: []models.Product{{ID: 4}, {ID: 9}}}
	promotions := &stubPromotionRepo{promotions: []models.Promotion{{ProductID: 9, PromotionalPrice: 100, Active: true}}}
	bestSellers := &stubBestSellerRepo{
		manual:   []models.BestSeller{{ProductID: 4, Active: false}},
		computed: []models.BestSeller{{ProductID: 4, Active: true}, {ProductID: 9, Active: true}},
	}
	renderer := &stubRenderer{}
	svc := NewCatalogService(products, promotions, bestSellers, renderer, nil)

	var buf bytes.Buffer
	res, err := svc.GenerateCatalog(context.Background(), models.GenerateCatalogRequest{
		Layout:      models.LayoutGrid,
		Title:       "  Verão  ",
		PriceType:   models.PriceTierWholesale,
		CategoryIDs: []int64{2},
	}, &buf)
	require.NoError(t, err)

	assert.Equal(t, "x.pdf", res.FileName)
	assert.Equal(t, "%PDF-1.3", buf.String())
	assert.Equal(t, []int64{2}, products.filter.CategoryIDs)
	assert.Equal(t, []int64{4, 9}, promotions.ids)
	assert.Equal(t, 20, bestSellers.limit)

	opts := renderer.opts
	assert.Equal(t, "Verão", opts.Title)
	assert.Equal(t, models.PriceTierWholesale, opts.PriceTier)
	assert.Len(t, opts.Promotions, 1)
	require.Len(t, opts.BestSellers, 2)
	assert.Equal(t, models.BestSeller{ProductID: 4, Active: false, Source: models.BestSellerManual}, opts.BestSellers[0])
	assert.Equal(t, models.BestSellerComputed, opts.BestSellers[1].Source)
}

func TestGenerateCatalogDefaultsTier(t *testing.T) {
	renderer := &stubRenderer{}
	svc := NewCatalogService(&stubCatalogRepo{products: []models.Product{{ID: 1}}}, &stubPromotionRepo{}, &stubBestSellerRepo{}, renderer, nil)

	_, err := svc.GenerateCatalog(context.Background(), models.GenerateCatalogRequest{Layout: models.LayoutSingle, Title: "x"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, models.PriceTierRetail, renderer.opts.PriceTier)
}

func TestGenerateCatalogErrors(t *testing.T) {
	req := models.GenerateCatalogRequest{Layout: models.LayoutSingle, Title: "x"}

	svc := NewCatalogService(&stubCatalogRepo{}, &stubPromotionRepo{}, &stubBestSellerRepo{}, &stubRenderer{}, nil)
	_, err := svc.GenerateCatalog(context.Background(), req, io.Discard)
	assert.ErrorIs(t, err, pdf.ErrNoProducts)

	dbErr := errors.New("connection refused")
	svc = NewCatalogService(&stubCatalogRepo{err: dbErr}, &stubPromotionRepo{}, &stubBestSellerRepo{}, &stubRenderer{}, nil)
	_, err = svc.GenerateCatalog(context.Background(), req, io.Discard)
	assert.ErrorIs(t, err, dbErr)

	svc = NewCatalogService(&stubCatalogRepo{products: []models.Product{{ID: 1}}}, &stubPromotionRepo{}, &stubBestSellerRepo{err: dbErr}, &stubRenderer{}, nil)
	_, err = svc.GenerateCatalog(context.Background(), req, io.Discard)
	assert.ErrorIs(t, err, dbErr)

	renderErr := errors.New("fpdf failure")
	svc = NewCatalogService(&stubCatalogRepo{products: []models.Product{{ID: 1}}}, &stubPromotionRepo{}, &stubBestSellerRepo{}, &stubRenderer{err: renderErr}, nil)
	_, err = svc.GenerateCatalog(context.Background(), req, io.Discard)
	assert.ErrorIs(t, err, renderErr)
}
