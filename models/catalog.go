package models

// LayoutMode selects how products are laid out in the catalog PDF
type LayoutMode string

const (
	LayoutSingle LayoutMode = "single" // one product per page
	LayoutGrid   LayoutMode = "grid"   // 4-column grid per category
)

// UncategorizedLabel is the bucket name used for products without a category
const UncategorizedLabel = "Sem Categoria"

// ProductGroup collapses products sharing a normalized name.
// Main is the earliest created member; Variations holds every member ordered by creation.
type ProductGroup struct {
	Key              string    `json:"key"`
	Main             Product   `json:"main"`
	Variations       []Product `json:"variations"`
	IsVariationGroup bool      `json:"isVariationGroup"`
}

// CategoryBucket holds the products of one category in first-seen order
type CategoryBucket struct {
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}

// RenderOptions holds the caller supplied options for one catalog generation
type RenderOptions struct {
	Layout       LayoutMode   `json:"layout"`
	IncludePrice bool         `json:"includePrice"`
	Title        string       `json:"title"`
	PriceTier    PriceTier    `json:"priceTier"`
	Promotions   []Promotion  `json:"promotions"`
	BestSellers  []BestSeller `json:"bestSellers"`
	IncludeCover bool         `json:"includeCover"`
}

// TagKind identifies a badge drawn on a product card
type TagKind string

const (
	TagPromotion  TagKind = "PROMOTION"
	TagBestSeller TagKind = "BEST_SELLER"
	TagNew        TagKind = "NEW"
)

// RGB is a color in 0-255 components
type RGB struct {
	R, G, B int
}

// Tag is a badge with its color and label
type Tag struct {
	Kind  TagKind `json:"kind"`
	Label string  `json:"label"`
	Color RGB     `json:"color"`
}

// GenerateCatalogRequest represents the request body for POST /admin/catalog/pdf
// Example: {"layout": "grid", "includePrice": true, "title": "Catálogo Verão", "priceType": "retail"}
type GenerateCatalogRequest struct {
	Layout       LayoutMode `json:"layout" validate:"required,oneof=single grid"`
	IncludePrice bool       `json:"includePrice"`
	Title        string     `json:"title" validate:"required,max=120"`
	PriceType    PriceTier  `json:"priceType" validate:"omitempty,oneof=retail wholesale reseller"`
	CategoryIDs  []int64    `json:"categoryIds" validate:"omitempty,dive,gt=0"`
	ProductIDs   []int64    `json:"productIds" validate:"omitempty,dive,gt=0"`
	IncludeCover bool       `json:"includeCover"`
}

// ImageProxyRequest represents the request body for POST /admin/image-proxy
type ImageProxyRequest struct {
	ImageURL string `json:"imageUrl"`
}

// ImageProxyResponse represents the image proxy response.
// Data is a data URI or nil when the image could not be fetched.
type ImageProxyResponse struct {
	Data  *string `json:"data"`
	Error string  `json:"error,omitempty"`
}
