// Package derived computes presentation data from loaded collections.
// Every function is pure: inputs are never modified and nothing is cached.
package derived

import (
	"cmp"
	"slices"
	"strings"

	"veluna/internal/domain/entity"
)

// CategoryAll matches every category.
const CategoryAll = "all"

// PriceRange is an inclusive price bound.
type PriceRange struct {
	Min float64 `query:"minPrice" json:"min"`
	Max float64 `query:"maxPrice" json:"max"`
}

// ProductFilter selects products. Zero fields do not filter.
type ProductFilter struct {
	Category   string
	PriceRange *PriceRange
	InStock    bool
	Search     string
}

// FilterProducts returns the products matching every set criterion, in input order.
func FilterProducts(products []entity.Product, filter ProductFilter) []entity.Product {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	result := make([]entity.Product, 0, len(products))

	for _, p := range products {
		if filter.Category != "" && filter.Category != CategoryAll && p.Category != filter.Category {
			continue
		}
		if filter.PriceRange != nil && !filter.PriceRange.contains(p.Price) {
			continue
		}
		if filter.InStock && !p.InStock {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Category), search) {
			continue
		}
		result = append(result, p)
	}

	return result
}

func (r PriceRange) contains(price float64) bool {
	if price < r.Min {
		return false
	}

	// A zero max means no upper bound.
	return r.Max <= 0 || price <= r.Max
}

// SortKey names a product ordering.
type SortKey string

const (
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortNewest    SortKey = "newest"
	SortPopular   SortKey = "popular"
	SortRating    SortKey = "rating"
)

// SortProducts returns a sorted copy. Unknown keys keep input order.
func SortProducts(products []entity.Product, key SortKey) []entity.Product {
	sorted := slices.Clone(products)
	if sorted == nil {
		sorted = []entity.Product{}
	}

	var compare func(a, b entity.Product) int
	switch key {
	case SortPriceLow:
		compare = func(a, b entity.Product) int { return cmp.Compare(a.Price, b.Price) }
	case SortPriceHigh:
		compare = func(a, b entity.Product) int { return cmp.Compare(b.Price, a.Price) }
	case SortNewest:
		compare = func(a, b entity.Product) int { return cmp.Compare(b.ID, a.ID) }
	case SortPopular:
		compare = func(a, b entity.Product) int { return cmp.Compare(b.Reviews, a.Reviews) }
	case SortRating:
		compare = func(a, b entity.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		return sorted
	}

	slices.SortStableFunc(sorted, compare)

	return sorted
}

// InventorySummary counts catalog stock.
type InventorySummary struct {
	Total          int     `json:"total"`
	InStock        int     `json:"inStock"`
	OutOfStock     int     `json:"outOfStock"`
	LowStock       int     `json:"lowStock"`
	InventoryValue float64 `json:"inventoryValue"`
}

// LowStockThreshold is the stock level at or below which a product counts as low.
const LowStockThreshold = 5

// Inventory summarizes products. InStock follows the inStock flag, not the stock count.
func Inventory(products []entity.Product) InventorySummary {
	summary := InventorySummary{Total: len(products)}

	for _, p := range products {
		if p.InStock {
			summary.InStock++
		} else {
			summary.OutOfStock++
		}
		if p.Stock != nil && *p.Stock <= LowStockThreshold {
			summary.LowStock++
		}
		summary.InventoryValue += p.Price * float64(p.StockCount())
	}

	return summary
}
