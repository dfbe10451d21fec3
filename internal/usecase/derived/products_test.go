package derived

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veluna/internal/domain/entity"
	"veluna/internal/domain/seed"
)

func TestFilterProducts(t *testing.T) {
	products := seed.Products()

	tests := []struct {
		name    string
		input   []entity.Product
		filter  ProductFilter
		wantIDs []int64
	}{
		{
			name:  "electronics in price range and in stock",
			input: products,
			filter: ProductFilter{
				Category:   "electronics",
				PriceRange: &PriceRange{Min: 100_000, Max: 500_000},
				InStock:    true,
			},
			wantIDs: []int64{2},
		},
		{
			name:    "books",
			input:   products,
			filter:  ProductFilter{Category: "books"},
			wantIDs: []int64{9, 10},
		},
		{
			name:    "all category keeps everything",
			input:   products[:3],
			filter:  ProductFilter{Category: CategoryAll},
			wantIDs: []int64{1, 2, 3},
		},
		{
			name:    "search is case insensitive",
			input:   products,
			filter:  ProductFilter{Search: "  KROSSOVKA "},
			wantIDs: []int64{6},
		},
		{
			name:    "search matches category",
			input:   products,
			filter:  ProductFilter{Search: "sport"},
			wantIDs: []int64{11, 12},
		},
		{
			name:    "zero max is unbounded",
			input:   products,
			filter:  ProductFilter{PriceRange: &PriceRange{Min: 2_000_000}},
			wantIDs: []int64{1, 8},
		},
		{
			name:    "empty input",
			input:   nil,
			filter:  ProductFilter{Category: "electronics", InStock: true},
			wantIDs: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterProducts(tt.input, tt.filter)

			ids := make([]int64, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilterProducts_EveryResultMatches(t *testing.T) {
	filter := ProductFilter{
		Category:   "electronics",
		PriceRange: &PriceRange{Min: 100_000, Max: 500_000},
		InStock:    true,
	}

	for _, p := range FilterProducts(seed.Products(), filter) {
		assert.Equal(t, "electronics", p.Category)
		assert.GreaterOrEqual(t, p.Price, 100_000.0)
		assert.LessOrEqual(t, p.Price, 500_000.0)
		assert.True(t, p.InStock)
	}
}

func TestSortProducts(t *testing.T) {
	products := seed.Products()

	t.Run("price-low is non-decreasing", func(t *testing.T) {
		sorted := SortProducts(products, SortPriceLow)
		require.Len(t, sorted, len(products))
		for i := 1; i < len(sorted); i++ {
			assert.LessOrEqual(t, sorted[i-1].Price, sorted[i].Price)
		}
	})

	t.Run("price-high is non-increasing", func(t *testing.T) {
		sorted := SortProducts(products, SortPriceHigh)
		for i := 1; i < len(sorted); i++ {
			assert.GreaterOrEqual(t, sorted[i-1].Price, sorted[i].Price)
		}
	})

	t.Run("newest is non-increasing id", func(t *testing.T) {
		sorted := SortProducts(products, SortNewest)
		for i := 1; i < len(sorted); i++ {
			assert.GreaterOrEqual(t, sorted[i-1].ID, sorted[i].ID)
		}
		assert.Equal(t, int64(12), sorted[0].ID)
	})

	t.Run("popular is non-increasing reviews", func(t *testing.T) {
		sorted := SortProducts(products, SortPopular)
		for i := 1; i < len(sorted); i++ {
			assert.GreaterOrEqual(t, sorted[i-1].Reviews, sorted[i].Reviews)
		}
	})

	t.Run("rating is non-increasing", func(t *testing.T) {
		sorted := SortProducts(products, SortRating)
		for i := 1; i < len(sorted); i++ {
			assert.GreaterOrEqual(t, sorted[i-1].Rating, sorted[i].Rating)
		}
	})

	t.Run("unknown key keeps order", func(t *testing.T) {
		assert.Equal(t, products, SortProducts(products, "random"))
	})

	t.Run("input is not modified", func(t *testing.T) {
		before := seed.Products()
		SortProducts(products, SortPriceHigh)
		assert.Equal(t, before, products)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, SortProducts(nil, SortNewest))
	})
}

func TestInventory(t *testing.T) {
	stock := 3
	zero := 0
	products := []entity.Product{
		{ID: 1, Price: 100, InStock: true, Stock: &stock},
		// stock and inStock disagree on purpose
		{ID: 2, Price: 50, InStock: true, Stock: &zero},
		{ID: 3, Price: 10, InStock: false},
	}

	got := Inventory(products)

	assert.Equal(t, InventorySummary{
		Total:          3,
		InStock:        2,
		OutOfStock:     1,
		LowStock:       2,
		InventoryValue: 300,
	}, got)
}
