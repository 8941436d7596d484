package pricing

import (
	"math"
	"strconv"
	"strings"

	"github.com/yansassi/hecho-adm-sub001/models"
	"github.com/yansassi/hecho-adm-sub001/utils"
)

// TierPrice returns the price field selected by tier, in cents.
// Unknown tiers fall back to the retail price.
func TierPrice(p models.Product, tier models.PriceTier) int64 {
	switch tier {
	case models.PriceTierWholesale:
		return p.PriceWholesale
	case models.PriceTierReseller:
		return p.PriceReseller
	default:
		return p.PriceRetail
	}
}

// PromotionIndex maps a product ID to its applicable promotion
type PromotionIndex map[int64]models.Promotion

// IndexPromotions keeps the first active promotion found for each product.
// Entries without a promotional price are ignored.
func IndexPromotions(promotions []models.Promotion) PromotionIndex {
	index := make(PromotionIndex, len(promotions))
	for _, promo := range promotions {
		if !promo.Active || promo.PromotionalPrice <= 0 {
			continue
		}
		if _, exists := index[promo.ProductID]; exists {
			continue
		}
		index[promo.ProductID] = promo
	}
	return index
}

// For returns the promotion for productID, if any
func (ix PromotionIndex) For(productID int64) (models.Promotion, bool) {
	promo, ok := ix[productID]
	return promo, ok
}

// Quote is the price shown for a product
type Quote struct {
	Base      int64             `json:"base"`                // selected tier price
	Final     int64             `json:"final"`               // promotional price when a promotion applies, Base otherwise
	Savings   int64             `json:"savings"`             // Base - Final, never negative
	Promotion *models.Promotion `json:"promotion,omitempty"` // nil without promotion
}

// HasPromotion reports whether the quote carries a promotion
func (q Quote) HasPromotion() bool {
	return q.Promotion != nil
}

// QuoteFor computes the price block values for a product
func QuoteFor(p models.Product, tier models.PriceTier, promotions PromotionIndex) Quote {
	base := TierPrice(p, tier)
	q := Quote{Base: base, Final: base}

	promo, ok := promotions.For(p.ID)
	if !ok || promo.PromotionalPrice <= 0 {
		return q
	}

	q.Promotion = &promo
	q.Final = promo.PromotionalPrice
	if savings := base - promo.PromotionalPrice; savings > 0 {
		q.Savings = savings
	}
	return q
}

// DiscountLabel renders the discount badge text, e.g. "-15%" or "-R$ 10,00".
// Returns "" when the quote has no promotion.
func DiscountLabel(q Quote) string {
	if q.Promotion == nil {
		return ""
	}
	promo := q.Promotion
	switch {
	case promo.DiscountType == models.DiscountFixed && promo.DiscountValue > 0:
		return "-" + utils.FormatBRL(int64(math.Round(promo.DiscountValue*100)))
	case promo.DiscountType == models.DiscountPercentage && promo.DiscountValue > 0:
		return "-" + formatPercent(promo.DiscountValue)
	case q.Base > 0 && q.Savings > 0:
		return "-" + formatPercent(math.Round(float64(q.Savings)*100/float64(q.Base)))
	}
	return ""
}

// formatPercent prints 15 as "15%" and 12.5 as "12,5%"
func formatPercent(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return strings.Replace(s, ".", ",", 1) + "%"
}
