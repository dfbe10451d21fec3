package derived

import (
	"cmp"
	"slices"

	"veluna/internal/domain/entity"
	"veluna/internal/util"
)

// OrderSummary aggregates the order list for the dashboard.
type OrderSummary struct {
	TotalOrders       int                        `json:"totalOrders"`
	Revenue           float64                    `json:"revenue"`
	ByStatus          map[entity.OrderStatus]int `json:"byStatus"`
	DeliveredPercent  string                     `json:"deliveredPercent"`
	CancelledPercent  string                     `json:"cancelledPercent"`
	AverageOrderValue string                     `json:"averageOrderValue"`
}

// OrderStats sums revenue over every order that was not cancelled.
func OrderStats(orders []entity.Order) OrderSummary {
	summary := OrderSummary{
		TotalOrders: len(orders),
		ByStatus:    make(map[entity.OrderStatus]int, len(entity.OrderStatuses)),
	}
	for _, status := range entity.OrderStatuses {
		summary.ByStatus[status] = 0
	}

	paid := 0
	for _, o := range orders {
		summary.ByStatus[o.Status]++
		if o.Status == entity.OrderStatusCancelled {
			continue
		}
		summary.Revenue += o.Amount
		paid++
	}

	total := float64(len(orders))
	summary.DeliveredPercent = util.FormatFixed(util.Percent(float64(summary.ByStatus[entity.OrderStatusDelivered]), total), 1)
	summary.CancelledPercent = util.FormatFixed(util.Percent(float64(summary.ByStatus[entity.OrderStatusCancelled]), total), 1)

	average := 0.0
	if paid > 0 {
		average = summary.Revenue / float64(paid)
	}
	summary.AverageOrderValue = util.FormatFixed(average, 2)

	return summary
}

// CategorySlice is one category's share of the catalog.
type CategorySlice struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Percent  string `json:"percent"`
}

// CategoryShare returns the product count per category, largest first,
// ties broken by name.
func CategoryShare(products []entity.Product) []CategorySlice {
	counts := make(map[string]int)
	for _, p := range products {
		counts[p.Category]++
	}

	shares := make([]CategorySlice, 0, len(counts))
	for category, count := range counts {
		shares = append(shares, CategorySlice{
			Category: category,
			Count:    count,
			Percent:  util.FormatFixed(util.Percent(float64(count), float64(len(products))), 1),
		})
	}

	slices.SortFunc(shares, func(a, b CategorySlice) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		return cmp.Compare(a.Category, b.Category)
	})

	return shares
}

// RevenuePoint is the revenue of one day.
type RevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// RevenueSeries groups non-cancelled orders by date, oldest first.
func RevenueSeries(orders []entity.Order) []RevenuePoint {
	byDate := make(map[string]*RevenuePoint)
	for _, o := range orders {
		if o.Status == entity.OrderStatusCancelled {
			continue
		}
		point, ok := byDate[o.Date]
		if !ok {
			point = &RevenuePoint{Date: o.Date}
			byDate[o.Date] = point
		}
		point.Revenue += o.Amount
		point.Orders++
	}

	series := make([]RevenuePoint, 0, len(byDate))
	for _, point := range byDate {
		series = append(series, *point)
	}
	slices.SortFunc(series, func(a, b RevenuePoint) int { return cmp.Compare(a.Date, b.Date) })

	return series
}

// CartSummary is the priced cart.
type CartSummary struct {
	Items    int     `json:"items"`
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// CartTotals prices the cart with a percentage discount clamped to 0..100.
func CartTotals(items []entity.CartItem, discountPercent int) CartSummary {
	discountPercent = min(max(discountPercent, 0), 100)

	var summary CartSummary
	for _, item := range items {
		summary.Items += item.Quantity
		summary.Subtotal += item.LineTotal()
	}

	summary.Discount = summary.Subtotal * float64(discountPercent) / 100
	summary.Total = summary.Subtotal - summary.Discount

	return summary
}

// CustomerSummary aggregates the customer list.
type CustomerSummary struct {
	Total        int     `json:"total"`
	Blocked      int     `json:"blocked"`
	TotalSpent   float64 `json:"totalSpent"`
	AverageSpent string  `json:"averageSpent"`
}

// Customers summarizes users from their snapshot counters.
func Customers(users []entity.User) CustomerSummary {
	summary := CustomerSummary{Total: len(users)}
	for _, u := range users {
		if u.Blocked {
			summary.Blocked++
		}
		summary.TotalSpent += u.TotalSpent
	}

	average := 0.0
	if len(users) > 0 {
		average = summary.TotalSpent / float64(len(users))
	}
	summary.AverageSpent = util.FormatFixed(average, 2)

	return summary
}
