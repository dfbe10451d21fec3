package entity

// ShippingZone is a delivery zone with its pricing.
type ShippingZone struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name" validate:"required"`
	Regions  []string `json:"regions"`
	Price    float64  `json:"price" validate:"gte=0"`
	FreeFrom float64  `json:"freeFrom"`
	Days     string   `json:"days"`
	Active   bool     `json:"active"`
}

func (z ShippingZone) GetID() int64 { return z.ID }

func (z *ShippingZone) SetID(id int64) { z.ID = id }

// PaymentMethod is a payment gateway configuration.
type PaymentMethod struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name" validate:"required"`
	Provider   string  `json:"provider" validate:"required"`
	MerchantID string  `json:"merchantId"`
	SecretKey  string  `json:"secretKey"`
	Commission float64 `json:"commission" validate:"gte=0"`
	Enabled    bool    `json:"enabled"`
	TestMode   bool    `json:"testMode"`
}

func (p PaymentMethod) GetID() int64 { return p.ID }

func (p *PaymentMethod) SetID(id int64) { p.ID = id }
