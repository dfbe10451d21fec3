package entity

// Banner is a storefront hero banner.
type Banner struct {
	ID       int64  `json:"id"`
	Title    string `json:"title" validate:"required"`
	Subtitle string `json:"subtitle"`
	Image    string `json:"image"`
	Link     string `json:"link"`
	Active   bool   `json:"active"`
	Position int    `json:"position"`
}

func (b Banner) GetID() int64 { return b.ID }

// PromoCode is a percentage discount code.
type PromoCode struct {
	ID         int64  `json:"id"`
	Code       string `json:"code" validate:"required,alphanum"`
	Discount   int    `json:"discount" validate:"min=1,max=100"`
	Active     bool   `json:"active"`
	UsageCount int    `json:"usageCount"`
	UsageLimit int    `json:"usageLimit,omitempty"`
	ExpiresAt  string `json:"expiresAt,omitempty"`
}

func (p PromoCode) GetID() int64 { return p.ID }

// EmailCampaign is an email marketing campaign.
type EmailCampaign struct {
	ID         int64  `json:"id"`
	Subject    string `json:"subject" validate:"required"`
	Body       string `json:"body"`
	Audience   string `json:"audience"`
	Status     string `json:"status"`
	SentAt     string `json:"sentAt,omitempty"`
	Recipients int    `json:"recipients"`
	Opened     int    `json:"opened"`
}

func (e EmailCampaign) GetID() int64 { return e.ID }

func (e *EmailCampaign) SetID(id int64) { e.ID = id }
