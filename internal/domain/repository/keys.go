package repository

import "strings"

// Keys builds the namespaced storage keys of every collection.
type Keys struct {
	ns string
}

// NewKeys returns the key set for namespace ns.
func NewKeys(ns string) Keys {
	return Keys{ns: ns}
}

func (k Keys) key(name string) string {
	return k.ns + "_" + name
}

func (k Keys) Namespace() string      { return k.ns }
func (k Keys) Products() string       { return k.key("admin_products") }
func (k Keys) Orders() string         { return k.key("orders") }
func (k Keys) Cart() string           { return k.key("cart") }
func (k Keys) Wishlist() string       { return k.key("wishlist") }
func (k Keys) Compare() string        { return k.key("compare") }
func (k Keys) Viewed() string         { return k.key("viewed") }
func (k Keys) Banners() string        { return k.key("banners") }
func (k Keys) PromoCodes() string     { return k.key("promo_codes") }
func (k Keys) SiteSettings() string   { return k.key("site_settings") }
func (k Keys) Users() string          { return k.key("admin_users") }
func (k Keys) AllChats() string       { return k.key("all_chats") }
func (k Keys) Categories() string     { return k.key("categories") }
func (k Keys) Notifications() string  { return k.key("notifications") }
func (k Keys) Admins() string         { return k.key("admins") }
func (k Keys) Couriers() string       { return k.key("couriers") }
func (k Keys) ShippingZones() string  { return k.key("shipping_zones") }
func (k Keys) PaymentMethods() string { return k.key("payment_methods") }
func (k Keys) EmailCampaigns() string { return k.key("email_campaigns") }
func (k Keys) Reviews() string        { return k.key("reviews") }
func (k Keys) ActivityLog() string    { return k.key("activity_log") }

// Chat returns the message list key of one user.
func (k Keys) Chat(userID string) string {
	return k.key("chat_" + userID)
}

// IsChat reports whether key is a per-user chat key and returns the user id.
func (k Keys) IsChat(key string) (string, bool) {
	prefix := k.key("chat_")
	if !strings.HasPrefix(key, prefix) {
		return "", false
	}

	return strings.TrimPrefix(key, prefix), true
}

// Clearable lists the keys removed by the admin "clear all data" action.
// Products, admins and settings survive so the shop stays operable.
func (k Keys) Clearable() []string {
	return []string{
		k.Orders(),
		k.Cart(),
		k.Wishlist(),
		k.Compare(),
		k.Viewed(),
		k.Notifications(),
		k.Users(),
		k.AllChats(),
		k.ActivityLog(),
	}
}
