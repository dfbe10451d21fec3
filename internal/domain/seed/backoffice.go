package seed

import "veluna/internal/domain/entity"

// Banners returns the initial storefront banners.
func Banners() []entity.Banner {
	return []entity.Banner{
		{ID: 1, Title: "Yangi kolleksiya", Subtitle: "Qish mavsumi uchun", Image: "/images/banners/winter.jpg", Link: "/catalog?category=clothing", Active: true, Position: 1},
		{ID: 2, Title: "Elektronika haftaligi", Subtitle: "30% gacha chegirmalar", Image: "/images/banners/electronics.jpg", Link: "/catalog?category=electronics", Active: true, Position: 2},
		{ID: 3, Title: "Kitob bayrami", Subtitle: "Har ikkinchi kitob yarim narxda", Image: "/images/banners/books.jpg", Link: "/catalog?category=books", Active: false, Position: 3},
	}
}

// PromoCodes returns the initial promo codes.
func PromoCodes() []entity.PromoCode {
	return []entity.PromoCode{
		{ID: 1, Code: "VELUNA10", Discount: 10, Active: true, UsageCount: 42},
		{ID: 2, Code: "NEWYEAR25", Discount: 25, Active: false, UsageCount: 0, ExpiresAt: "2025-01-10"},
	}
}

// Couriers returns the initial couriers.
func Couriers() []entity.Courier {
	return []entity.Courier{
		{ID: 1, Name: "Bekzod Aliyev", Phone: "+998 90 555 66 77", Vehicle: "Damas", Zone: "Toshkent", Active: true, Deliveries: 312},
		{ID: 2, Name: "Sardor Qodirov", Phone: "+998 97 777 88 99", Vehicle: "Skuter", Zone: "Toshkent", Active: true, Deliveries: 158},
	}
}

// ShippingZones returns the initial delivery zones.
func ShippingZones() []entity.ShippingZone {
	return []entity.ShippingZone{
		{ID: 1, Name: "Toshkent shahri", Regions: []string{"Toshkent"}, Price: 20_000, FreeFrom: 500_000, Days: "1", Active: true},
		{ID: 2, Name: "Viloyatlar", Regions: []string{"Samarqand", "Buxoro", "Farg'ona", "Andijon"}, Price: 45_000, FreeFrom: 1_000_000, Days: "2-4", Active: true},
	}
}

// PaymentMethods returns the initial payment gateway configuration.
func PaymentMethods() []entity.PaymentMethod {
	return []entity.PaymentMethod{
		{ID: 1, Name: "Click", Provider: "click", Commission: 1, Enabled: true, TestMode: true},
		{ID: 2, Name: "Payme", Provider: "payme", Commission: 1, Enabled: true, TestMode: true},
		{ID: 3, Name: "Naqd pul", Provider: "cash", Commission: 0, Enabled: true},
	}
}

// EmailCampaigns returns the initial email campaigns.
func EmailCampaigns() []entity.EmailCampaign {
	return []entity.EmailCampaign{
		{ID: 1, Subject: "Qishki chegirmalar boshlandi", Body: "Barcha kiyimlarga 20% chegirma", Audience: "all", Status: "sent", SentAt: "2024-12-01", Recipients: 1250, Opened: 430},
		{ID: 2, Subject: "Yangi yil sovg'alari", Body: "Sovg'alar katalogi tayyor", Audience: "active", Status: "draft"},
	}
}
