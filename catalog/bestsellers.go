package catalog

import "github.com/yansassi/hecho-adm-sub001/models"

// TopSellersLimit is how many products the computed ranking keeps
const TopSellersLimit = 20

// MergeBestSellers combines curated and computed best sellers.
// A manual entry wins over a computed one for the same product, including an
// inactive manual entry, which removes the product from the set.
func MergeBestSellers(manual, computed []models.BestSeller) []models.BestSeller {
	seen := make(map[int64]bool, len(manual)+len(computed))
	merged := make([]models.BestSeller, 0, len(manual)+len(computed))
	for _, b := range manual {
		if seen[b.ProductID] {
			continue
		}
		seen[b.ProductID] = true
		b.Source = models.BestSellerManual
		merged = append(merged, b)
	}
	for _, b := range computed {
		if seen[b.ProductID] {
			continue
		}
		seen[b.ProductID] = true
		b.Source = models.BestSellerComputed
		merged = append(merged, b)
	}
	return merged
}

// BestSellerSet holds the product IDs flagged as active best sellers
type BestSellerSet map[int64]struct{}

// NewBestSellerSet indexes the active entries
func NewBestSellerSet(entries []models.BestSeller) BestSellerSet {
	set := make(BestSellerSet, len(entries))
	for _, b := range entries {
		if b.Active {
			set[b.ProductID] = struct{}{}
		}
	}
	return set
}

// Has reports whether productID is an active best seller
func (s BestSellerSet) Has(productID int64) bool {
	_, ok := s[productID]
	return ok
}
