package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	keys := NewKeys("veluna")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "products", got: keys.Products(), want: "veluna_admin_products"},
		{name: "orders", got: keys.Orders(), want: "veluna_orders"},
		{name: "promo codes", got: keys.PromoCodes(), want: "veluna_promo_codes"},
		{name: "site settings", got: keys.SiteSettings(), want: "veluna_site_settings"},
		{name: "users", got: keys.Users(), want: "veluna_admin_users"},
		{name: "all chats", got: keys.AllChats(), want: "veluna_all_chats"},
		{name: "chat", got: keys.Chat("u42"), want: "veluna_chat_u42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestKeys_IsChat(t *testing.T) {
	keys := NewKeys("shop")

	userID, ok := keys.IsChat("shop_chat_u1")
	assert.True(t, ok)
	assert.Equal(t, "u1", userID)

	_, ok = keys.IsChat("shop_cart")
	assert.False(t, ok)

	_, ok = keys.IsChat("veluna_chat_u1")
	assert.False(t, ok)
}

func TestKeys_ClearableKeepsCatalog(t *testing.T) {
	keys := NewKeys("veluna")

	clearable := keys.Clearable()
	assert.Contains(t, clearable, keys.Orders())
	assert.Contains(t, clearable, keys.Cart())
	assert.NotContains(t, clearable, keys.Products())
	assert.NotContains(t, clearable, keys.Admins())
}
