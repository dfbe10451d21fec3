package entity

// SiteSettings are the storefront contact details.
type SiteSettings struct {
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required"`
}
