// Package pdf lays out product catalogs on A4 pages.
//
// Two layouts are supported: one product per page, and a four column grid
// per category where name variations collapse into double width cards with
// a price table. The generator writes the finished document to an io.Writer
// and returns a manifest of what was placed on every page.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yansassi/hecho-adm-sub001/catalog"
	"github.com/yansassi/hecho-adm-sub001/models"
	"github.com/yansassi/hecho-adm-sub001/pricing"
	"github.com/yansassi/hecho-adm-sub001/utils"
)

const catalogSubject = "Catálogo de produtos"

var (
	ErrNoProducts    = errors.New("no products to render")
	ErrUnknownLayout = errors.New("unknown layout")
)

// Config holds the static branding used on every page
type Config struct {
	LogoURL      string
	LogoWidthPx  int
	LogoHeightPx int
	SiteLabel    string
	Author       string
	Creator      string
	Location     *time.Location
}

// ImageSource turns image URLs into embeddable images.
// Resolve never fails: it returns a placeholder when the image is unavailable.
type ImageSource interface {
	Resolve(ctx context.Context, url string) models.ImagePayload
	Fetch(ctx context.Context, url string) (models.ImagePayload, error)
}

// CoverData is what a cover page shows
type CoverData struct {
	Title      string
	Categories []string
	Date       time.Time
	LogoURL    string
	SiteLabel  string
}

// CoverSource renders a full page cover image
type CoverSource interface {
	RenderCover(ctx context.Context, data CoverData) (models.ImagePayload, error)
}

// PriceRow is one line of a variation table
type PriceRow struct {
	ProductID   int64         `json:"productId"`
	Code        string        `json:"code"`
	Description string        `json:"description"`
	Quote       pricing.Quote `json:"quote"`
}

// CardInfo describes one card placed on a page
type CardInfo struct {
	ProductIDs []int64          `json:"productIds"`
	Group      bool             `json:"group"`
	Row        int              `json:"row"`
	Column     int              `json:"column"`
	Tags       []models.TagKind `json:"tags"`
	Quote      *pricing.Quote   `json:"quote,omitempty"`
	Rows       []PriceRow       `json:"rows,omitempty"`
	HiddenRows int              `json:"hiddenRows,omitempty"`
}

// PageInfo describes one page of the output
type PageInfo struct {
	Number   int        `json:"number"`
	Category string     `json:"category,omitempty"`
	Cover    bool       `json:"cover,omitempty"`
	Cards    []CardInfo `json:"cards,omitempty"`
}

// Result is the manifest of a generated catalog
type Result struct {
	FileName string     `json:"fileName"`
	Pages    []PageInfo `json:"pages"`
}

// ProductCount returns how many products were placed across all pages
func (r *Result) ProductCount() int {
	n := 0
	for _, p := range r.Pages {
		for _, c := range p.Cards {
			n += len(c.ProductIDs)
		}
	}
	return n
}

// Generator renders catalogs. It is safe for concurrent use; each call to
// Generate works on its own document.
type Generator struct {
	cfg    Config
	images ImageSource
	cover  CoverSource
	log    *zap.Logger
	now    func() time.Time
}

// NewGenerator creates a generator. cover may be nil when cover pages are not supported.
func NewGenerator(cfg Config, images ImageSource, cover CoverSource, log *zap.Logger) *Generator {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Creator == "" {
		cfg.Creator = "hecho-adm"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{cfg: cfg, images: images, cover: cover, log: log, now: time.Now}
}

type renderer struct {
	ctx         context.Context
	doc         *document
	cfg         Config
	opts        models.RenderOptions
	images      ImageSource
	promotions  pricing.PromotionIndex
	bestSellers catalog.BestSellerSet
	now         time.Time
	logo        *registeredImage
	imageByURL  map[string]models.ImagePayload
	pages       []PageInfo
	log         *zap.Logger
}

// Generate lays out products according to opts and writes the PDF to w
func (g *Generator) Generate(ctx context.Context, products []models.Product, opts models.RenderOptions, w io.Writer) (*Result, error) {
	if len(products) == 0 {
		return nil, ErrNoProducts
	}
	if opts.Layout != models.LayoutSingle && opts.Layout != models.LayoutGrid {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, opts.Layout)
	}
	if !opts.PriceTier.Valid() {
		opts.PriceTier = models.PriceTierRetail
	}

	r := &renderer{
		ctx:         ctx,
		doc:         newDocument(),
		cfg:         g.cfg,
		opts:        opts,
		images:      g.images,
		promotions:  pricing.IndexPromotions(opts.Promotions),
		bestSellers: catalog.NewBestSellerSet(opts.BestSellers),
		now:         g.now().In(g.cfg.Location),
		imageByURL:  make(map[string]models.ImagePayload),
		log:         g.log,
	}

	buckets := catalog.PartitionByCategory(products)
	groups := make([][]models.ProductGroup, len(buckets))
	for i, b := range buckets {
		groups[i] = catalog.GroupProducts(b.Products)
	}

	r.loadLogo()
	r.setMetadata(buckets)

	if opts.IncludeCover {
		if err := g.drawCover(r, buckets); err != nil {
			return nil, err
		}
	}

	var err error
	switch opts.Layout {
	case models.LayoutSingle:
		err = r.renderSingle(buckets, groups)
	case models.LayoutGrid:
		err = r.renderGrid(buckets, groups)
	}
	if err != nil {
		return nil, err
	}

	if err := r.doc.pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to lay out catalog: %w", err)
	}
	if err := r.doc.pdf.Output(w); err != nil {
		return nil, fmt.Errorf("failed to write catalog: %w", err)
	}

	g.log.Info("catalog generated",
		zap.String("layout", string(opts.Layout)),
		zap.Int("products", len(products)),
		zap.Int("pages", len(r.pages)),
		zap.Int("images", len(r.imageByURL)))

	return &Result{FileName: utils.CatalogFileName(opts.Title), Pages: r.pages}, nil
}

func (r *renderer) setMetadata(buckets []models.CategoryBucket) {
	pdf := r.doc.pdf
	pdf.SetTitle(r.opts.Title, true)
	pdf.SetSubject(catalogSubject, true)
	if r.cfg.Author != "" {
		pdf.SetAuthor(r.cfg.Author, true)
	}
	names := make([]string, 0, len(buckets))
	for _, b := range buckets {
		names = append(names, b.Name)
	}
	pdf.SetKeywords(strings.Join(names, ", "), true)
	pdf.SetCreator(r.cfg.Creator, true)
	pdf.SetCreationDate(r.now)
}

// loadLogo fetches the header logo once; the header is drawn without it on failure
func (r *renderer) loadLogo() {
	if r.cfg.LogoURL == "" || r.images == nil || r.cfg.LogoWidthPx <= 0 || r.cfg.LogoHeightPx <= 0 {
		return
	}
	img, err := r.images.Fetch(r.ctx, r.cfg.LogoURL)
	if err != nil {
		r.log.Warn("logo unavailable, header drawn without it", zap.String("url", r.cfg.LogoURL), zap.Error(err))
		return
	}
	reg, err := r.doc.registerImage("logo", img)
	if err != nil {
		r.log.Warn("logo could not be embedded", zap.Error(err))
		return
	}
	r.logo = &reg
}

// drawCover adds a full page cover before the catalog pages. A failed cover
// is logged and skipped.
func (g *Generator) drawCover(r *renderer, buckets []models.CategoryBucket) error {
	if g.cover == nil {
		r.log.Warn("cover requested but no cover renderer is configured")
		return nil
	}
	names := make([]string, 0, len(buckets))
	for _, b := range buckets {
		names = append(names, b.Name)
	}
	img, err := g.cover.RenderCover(r.ctx, CoverData{
		Title:      r.opts.Title,
		Categories: names,
		Date:       r.now,
		LogoURL:    g.cfg.LogoURL,
		SiteLabel:  g.cfg.SiteLabel,
	})
	if err != nil {
		if ctxErr := r.ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		r.log.Warn("cover page skipped", zap.Error(err))
		return nil
	}
	reg, err := r.doc.registerImage("cover", img)
	if err != nil {
		r.log.Warn("cover page skipped", zap.Error(err))
		return nil
	}
	r.doc.pdf.AddPage()
	r.doc.drawImage(reg, rect{X: 0, Y: 0, W: pageWidth, H: pageHeight})
	r.pages = append(r.pages, PageInfo{Number: r.doc.pdf.PageNo(), Cover: true})
	return nil
}

// image resolves a URL once per run
func (r *renderer) image(url string) models.ImagePayload {
	if img, ok := r.imageByURL[url]; ok {
		return img
	}
	var img models.ImagePayload
	if r.images != nil {
		img = r.images.Resolve(r.ctx, url)
	}
	r.imageByURL[url] = img
	return img
}

// drawProductImage draws the framed product image inside box, inset by pad.
// The "Sem imagem" box is drawn only when no image source is configured or
// the image cannot be embedded.
func (r *renderer) drawProductImage(url string, box rect, pad float64) {
	d := r.doc
	d.drawColor(colorBorder)
	d.fillColor(colorWhite)
	d.pdf.SetLineWidth(0.2)
	d.pdf.Rect(box.X, box.Y, box.W, box.H, "FD")

	inner := rect{X: box.X + pad, Y: box.Y + pad, W: box.W - 2*pad, H: box.H - 2*pad}
	// an empty url still goes through the source, which answers with its placeholder
	img := r.image(url)
	if len(img.Data) == 0 {
		r.drawMissingImage(inner)
		return
	}
	key := url
	if img.Placeholder {
		key = "placeholder"
	}
	reg, err := d.registerImage(key, img)
	if err != nil {
		r.log.Warn("image could not be embedded", zap.String("url", url), zap.Error(err))
		r.drawMissingImage(inner)
		return
	}
	d.drawImage(reg, inner)
}

func (r *renderer) drawMissingImage(box rect) {
	d := r.doc
	d.fillColor(colorBorder)
	d.pdf.Rect(box.X, box.Y, box.W, box.H, "F")
	d.textColor(colorMuted)
	d.font("", 7)
	d.cell(box.X, box.Y, box.W, box.H, "Sem imagem", "CM", false)
}
