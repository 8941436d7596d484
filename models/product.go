package models

import "time"

// Product represents a product row as read for the catalog
type Product struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Code            string    `json:"code" db:"code"`
	Barcode         string    `json:"barcode,omitempty" db:"barcode"`
	Description     string    `json:"description,omitempty" db:"description"`
	Info            string    `json:"info,omitempty" db:"info"`
	PackageQuantity string    `json:"packageQuantity,omitempty" db:"package_quantity"`
	PriceRetail     int64     `json:"priceRetail" db:"price_retail"`       // cents
	PriceWholesale  int64     `json:"priceWholesale" db:"price_wholesale"` // cents
	PriceReseller   int64     `json:"priceReseller" db:"price_reseller"`   // cents
	Stock           int       `json:"stock" db:"stock"`
	ImageURL        string    `json:"imageUrl,omitempty" db:"image_url"`
	CategoryID      int64     `json:"categoryId,omitempty" db:"category_id"` // 0 when the product has no category
	CategoryName    string    `json:"categoryName,omitempty" db:"category_name"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// PriceTier selects which named price field of a product is shown
type PriceTier string

const (
	PriceTierRetail    PriceTier = "retail"
	PriceTierWholesale PriceTier = "wholesale"
	PriceTierReseller  PriceTier = "reseller"
)

// Valid reports whether t is one of the known tiers
func (t PriceTier) Valid() bool {
	switch t {
	case PriceTierRetail, PriceTierWholesale, PriceTierReseller:
		return true
	}
	return false
}
