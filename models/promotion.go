package models

// DiscountType tells how Promotion.DiscountValue is expressed
type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"      // currency units (reais)
	DiscountPercentage DiscountType = "percentage" // percent, e.g. 15 for 15%
)

// Promotion represents a promotional price attached to a product
type Promotion struct {
	ID               int64        `json:"id" db:"id"`
	ProductID        int64        `json:"productId" db:"product_id"`
	PromotionalPrice int64        `json:"promotionalPrice" db:"promotional_price"` // cents
	DiscountValue    float64      `json:"discountValue" db:"discount_value"`
	DiscountType     DiscountType `json:"discountType" db:"discount_type"`
	Active           bool         `json:"active" db:"active"`
}

// BestSellerSource tells where a best seller entry came from
type BestSellerSource string

const (
	BestSellerManual   BestSellerSource = "manual"
	BestSellerComputed BestSellerSource = "computed"
)

// BestSeller flags a product as a best seller
type BestSeller struct {
	ProductID    int64            `json:"productId" db:"product_id"`
	Active       bool             `json:"active" db:"active"`
	Source       BestSellerSource `json:"source" db:"source"`
	QuantitySold int64            `json:"quantitySold,omitempty" db:"quantity_sold"` // computed entries only
}
