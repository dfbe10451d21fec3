package entity

// Notification types
const (
	NotificationTypeOrder    = "order"
	NotificationTypePromo    = "promo"
	NotificationTypeSystem   = "system"
	NotificationTypeDelivery = "delivery"
)

// Notification is a storefront notification. Read only moves false -> true
// through the system; users may clear it themselves.
type Notification struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Date     string `json:"date"`
	Read     bool   `json:"read"`
	Discount *int   `json:"discount,omitempty"`
}
