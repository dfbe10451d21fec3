package entity

// OrderStatus is the delivery state of an order. Any transition is allowed.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Kutilmoqda"
	OrderStatusShipping  OrderStatus = "Yo'lda"
	OrderStatusDelivered OrderStatus = "Yetkazildi"
	OrderStatusCancelled OrderStatus = "Bekor qilindi"
)

// OrderStatuses lists every known status in display order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusShipping,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}

	return false
}

// Order is a placed order. Product is a display summary of the ordered items.
type Order struct {
	ID            string      `json:"id"`
	Customer      string      `json:"customer"`
	Email         string      `json:"email"`
	Product       string      `json:"product"`
	Amount        float64     `json:"amount"`
	Status        OrderStatus `json:"status"`
	Date          string      `json:"date"`
	Time          string      `json:"time"`
	Items         []CartItem  `json:"items,omitempty"`
	Address       string      `json:"address,omitempty"`
	Phone         string      `json:"phone,omitempty"`
	PaymentMethod string      `json:"paymentMethod,omitempty"`
	PromoCode     string      `json:"promoCode,omitempty"`
}
