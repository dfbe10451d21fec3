// Package entity contains the core business objects of the storefront.
package entity

// Product is a catalog item as persisted under <ns>_admin_products.
// InStock and Stock are independently settable and may disagree.
type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name" validate:"required"`
	Price         float64  `json:"price" validate:"gte=0"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
	Category      string   `json:"category"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	InStock       bool     `json:"inStock"`
	Stock         *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Sizes         []string `json:"sizes,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Description   string   `json:"description,omitempty"`
}

func (p Product) GetID() int64 { return p.ID }

// StockCount returns the stock value, or 0 when it was never set.
func (p Product) StockCount() int {
	if p.Stock == nil {
		return 0
	}

	return *p.Stock
}

// Discount returns the percentage off the original price, 0 when there is none.
func (p Product) Discount() int {
	if p.OriginalPrice == nil || *p.OriginalPrice <= 0 || *p.OriginalPrice <= p.Price {
		return 0
	}

	return int((*p.OriginalPrice - p.Price) / *p.OriginalPrice * 100)
}

// Category is a catalog category managed from the back-office.
type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name" validate:"required"`
	Slug         string `json:"slug" validate:"required"`
	Icon         string `json:"icon,omitempty"`
	ProductCount int    `json:"productCount"`
}

func (c Category) GetID() int64 { return c.ID }

func (c *Category) SetID(id int64) { c.ID = id }

// Review is a customer review awaiting or past moderation.
type Review struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"productId" validate:"required"`
	Author    string `json:"author" validate:"required"`
	Rating    int    `json:"rating" validate:"min=1,max=5"`
	Text      string `json:"text"`
	Date      string `json:"date"`
	Approved  bool   `json:"approved"`
}

func (r Review) GetID() int64 { return r.ID }

func (r *Review) SetID(id int64) { r.ID = id }
