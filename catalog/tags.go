package catalog

import (
	"time"

	"github.com/yansassi/hecho-adm-sub001/models"
	"github.com/yansassi/hecho-adm-sub001/pricing"
)

const (
	// NewProductWindowDays is how many calendar days a product is shown as new
	NewProductWindowDays = 21
	// MaxTags is the badge cap per card
	MaxTags = 2
)

var (
	promotionTag  = models.Tag{Kind: models.TagPromotion, Label: "PROMOÇÃO", Color: models.RGB{R: 220, G: 38, B: 38}}
	bestSellerTag = models.Tag{Kind: models.TagBestSeller, Label: "MAIS VENDIDO", Color: models.RGB{R: 245, G: 158, B: 11}}
	newTag        = models.Tag{Kind: models.TagNew, Label: "NOVIDADE", Color: models.RGB{R: 22, G: 163, B: 74}}
)

// IsNew reports whether createdAt falls within the new-product window.
// Days are counted on the calendar of now's location, so a product created
// exactly 21 days ago is still new and one created 22 days ago is not.
func IsNew(createdAt, now time.Time) bool {
	if createdAt.IsZero() {
		return false
	}
	return calendarDays(createdAt.In(now.Location()), now) <= NewProductWindowDays
}

func calendarDays(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// TagsFor returns the badges of a single product, promotion first, best seller
// second, new third, capped at MaxTags.
func TagsFor(p models.Product, promotions pricing.PromotionIndex, bestSellers BestSellerSet, now time.Time) []models.Tag {
	_, promo := promotions.For(p.ID)
	return composeTags(promo, bestSellers.Has(p.ID), IsNew(p.CreatedAt, now))
}

// GroupTags returns the badges of a variation group; a condition holds when it
// holds for any member.
func GroupTags(g models.ProductGroup, promotions pricing.PromotionIndex, bestSellers BestSellerSet, now time.Time) []models.Tag {
	var promo, best, fresh bool
	for _, p := range g.Variations {
		if _, ok := promotions.For(p.ID); ok {
			promo = true
		}
		if bestSellers.Has(p.ID) {
			best = true
		}
		if IsNew(p.CreatedAt, now) {
			fresh = true
		}
	}
	return composeTags(promo, best, fresh)
}

func composeTags(promo, best, fresh bool) []models.Tag {
	tags := make([]models.Tag, 0, MaxTags)
	if promo {
		tags = append(tags, promotionTag)
	}
	if best {
		tags = append(tags, bestSellerTag)
	}
	if fresh && len(tags) < MaxTags {
		tags = append(tags, newTag)
	}
	return tags
}
