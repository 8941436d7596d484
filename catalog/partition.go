package catalog

import (
	"strings"

	"github.com/yansassi/hecho-adm-sub001/models"
)

// CategoryLabel returns the display name of a product's category
func CategoryLabel(p models.Product) string {
	if name := strings.TrimSpace(p.CategoryName); name != "" {
		return name
	}
	return models.UncategorizedLabel
}

// PartitionByCategory splits products into buckets keyed by category name.
// Buckets keep first-seen order and products keep their relative input order.
func PartitionByCategory(products []models.Product) []models.CategoryBucket {
	buckets := []models.CategoryBucket{}
	index := make(map[string]int)
	for _, p := range products {
		name := CategoryLabel(p)
		i, ok := index[name]
		if !ok {
			i = len(buckets)
			index[name] = i
			buckets = append(buckets, models.CategoryBucket{Name: name})
		}
		buckets[i].Products = append(buckets[i].Products, p)
	}
	return buckets
}
