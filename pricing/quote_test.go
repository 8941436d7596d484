package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yansassi/hecho-adm-sub001/models"
)

func sampleProduct() models.Product {
	return models.Product{ID: 7, Name: "Caneca", PriceRetail: 4990, PriceWholesale: 3990, PriceReseller: 3490}
}

func TestTierPrice(t *testing.T) {
	p := sampleProduct()
	assert.Equal(t, int64(4990), TierPrice(p, models.PriceTierRetail))
	assert.Equal(t, int64(3990), TierPrice(p, models.PriceTierWholesale))
	assert.Equal(t, int64(3490), TierPrice(p, models.PriceTierReseller))
	assert.Equal(t, int64(4990), TierPrice(p, models.PriceTier("unknown")))
}

func TestIndexPromotionsFirstActiveWins(t *testing.T) {
	ix := IndexPromotions([]models.Promotion{
		{ID: 1, ProductID: 7, PromotionalPrice: 3000, Active: false},
		{ID: 2, ProductID: 7, PromotionalPrice: 3500, Active: true},
		{ID: 3, ProductID: 7, PromotionalPrice: 2000, Active: true},
	})
	promo, ok := ix.For(7)
	require.True(t, ok)
	assert.Equal(t, int64(2), promo.ID)

	_, ok = ix.For(8)
	assert.False(t, ok)
}

func TestQuoteFor(t *testing.T) {
	p := sampleProduct()

	plain := QuoteFor(p, models.PriceTierWholesale, nil)
	assert.False(t, plain.HasPromotion())
	assert.Equal(t, int64(3990), plain.Final)
	assert.Zero(t, plain.Savings)

	ix := IndexPromotions([]models.Promotion{{ProductID: 7, PromotionalPrice: 3990, DiscountValue: 20, DiscountType: models.DiscountPercentage, Active: true}})
	promo := QuoteFor(p, models.PriceTierRetail, ix)
	require.True(t, promo.HasPromotion())
	assert.Equal(t, int64(4990), promo.Base)
	assert.Equal(t, int64(3990), promo.Final)
	assert.Equal(t, int64(1000), promo.Savings)
	assert.Equal(t, "-20%", DiscountLabel(promo))

	// promotional price above the selected tier never yields negative savings
	above := QuoteFor(p, models.PriceTierReseller, ix)
	assert.Zero(t, above.Savings)
}

func TestDiscountLabel(t *testing.T) {
	fixed := Quote{Base: 5000, Final: 4000, Savings: 1000, Promotion: &models.Promotion{DiscountType: models.DiscountFixed, DiscountValue: 10}}
	assert.Equal(t, "-R$ 10,00", DiscountLabel(fixed))

	fractional := Quote{Base: 8000, Final: 7000, Savings: 1000, Promotion: &models.Promotion{DiscountType: models.DiscountPercentage, DiscountValue: 12.5}}
	assert.Equal(t, "-12,5%", DiscountLabel(fractional))

	derived := Quote{Base: 8000, Final: 6000, Savings: 2000, Promotion: &models.Promotion{}}
	assert.Equal(t, "-25%", DiscountLabel(derived))

	assert.Equal(t, "", DiscountLabel(Quote{Base: 100, Final: 100}))
}
