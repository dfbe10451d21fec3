package seed

import "veluna/internal/domain/entity"

// Orders returns the initial order history shown in the back-office.
func Orders() []entity.Order {
	return []entity.Order{
		{ID: "ORD-1001", Customer: "Aziz Karimov", Email: "aziz@mail.uz", Product: "Smartfon Veluna X12", Amount: 4_990_000, Status: entity.OrderStatusDelivered, Date: "2024-12-01", Time: "10:24"},
		{ID: "ORD-1002", Customer: "Malika Tosheva", Email: "malika@mail.uz", Product: "Ayollar ko'ylagi", Amount: 390_000, Status: entity.OrderStatusShipping, Date: "2024-12-02", Time: "14:05"},
		{ID: "ORD-1003", Customer: "Javlon Rahimov", Email: "javlon@mail.uz", Product: "Krossovka RunLite", Amount: 560_000, Status: entity.OrderStatusPending, Date: "2024-12-02", Time: "18:40"},
		{ID: "ORD-1004", Customer: "Dilnoza Yusupova", Email: "dilnoza@mail.uz", Product: "Kofe mashinasi BrewMax", Amount: 1_850_000, Status: entity.OrderStatusCancelled, Date: "2024-12-03", Time: "09:12"},
	}
}

// Users returns the initial customer list.
func Users() []entity.User {
	return []entity.User{
		{ID: 1, Name: "Aziz Karimov", Email: "aziz@mail.uz", Phone: "+998 90 111 22 33", JoinDate: "2024-03-15", Orders: 5, TotalSpent: 7_450_000},
		{ID: 2, Name: "Malika Tosheva", Email: "malika@mail.uz", Phone: "+998 91 222 33 44", JoinDate: "2024-05-20", Orders: 3, TotalSpent: 1_120_000},
		{ID: 3, Name: "Javlon Rahimov", Email: "javlon@mail.uz", Phone: "+998 93 333 44 55", JoinDate: "2024-08-01", Orders: 1, TotalSpent: 560_000},
		{ID: 4, Name: "Dilnoza Yusupova", Email: "dilnoza@mail.uz", Phone: "+998 94 444 55 66", JoinDate: "2024-10-11", Orders: 2, TotalSpent: 2_300_000, Blocked: true},
	}
}

// Notifications returns the initial storefront notifications.
func Notifications() []entity.Notification {
	discount := 20

	return []entity.Notification{
		{ID: "n-1", Type: entity.NotificationTypePromo, Title: "Qishki chegirma", Message: "Barcha kiyimlarga 20% chegirma", Date: "2024-12-01", Read: false, Discount: &discount},
		{ID: "n-2", Type: entity.NotificationTypeDelivery, Title: "Buyurtma yo'lda", Message: "ORD-1002 buyurtmangiz yo'lga chiqdi", Date: "2024-12-02", Read: false},
		{ID: "n-3", Type: entity.NotificationTypeSystem, Title: "Xush kelibsiz", Message: "Veluna Market'ga xush kelibsiz", Date: "2024-11-20", Read: true},
	}
}

// SiteSettings returns the initial contact details.
func SiteSettings() entity.SiteSettings {
	return entity.SiteSettings{
		Phone:   "+998 71 200 00 00",
		Email:   "info@veluna.uz",
		Address: "Toshkent sh., Amir Temur ko'chasi 1",
	}
}
