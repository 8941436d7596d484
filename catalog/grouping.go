// Package catalog derives the render-time views of a product list: variation
// groups, category buckets, best seller sets and card badges.
package catalog

import (
	"sort"
	"strings"

	"github.com/yansassi/hecho-adm-sub001/models"
)

// NormalizeName returns the grouping key of a product name
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// GroupProducts collapses products that share a normalized name.
// Groups come out in order of first occurrence; members are sorted by creation
// time (input order on ties) and the earliest becomes Main.
func GroupProducts(products []models.Product) []models.ProductGroup {
	if len(products) == 0 {
		return []models.ProductGroup{}
	}

	var order []string
	members := make(map[string][]models.Product)
	for _, p := range products {
		key := NormalizeName(p.Name)
		if _, seen := members[key]; !seen {
			order = append(order, key)
		}
		members[key] = append(members[key], p)
	}

	groups := make([]models.ProductGroup, 0, len(order))
	for _, key := range order {
		variations := members[key]
		sort.SliceStable(variations, func(i, j int) bool {
			return variations[i].CreatedAt.Before(variations[j].CreatedAt)
		})
		groups = append(groups, models.ProductGroup{
			Key:              key,
			Main:             variations[0],
			Variations:       variations,
			IsVariationGroup: len(variations) > 1,
		})
	}
	return groups
}

// Flatten lists the members of groups in group order
func Flatten(groups []models.ProductGroup) []models.Product {
	var out []models.Product
	for _, g := range groups {
		out = append(out, g.Variations...)
	}
	return out
}
