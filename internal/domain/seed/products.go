// Package seed holds the initial documents written on first run when a
// collection key is absent.
package seed

import "veluna/internal/domain/entity"

func intPtr(v int) *int { return &v }

func pricePtr(v float64) *float64 { return &v }

// Products returns the initial catalog. Product ids 9 and 10 are the books.
func Products() []entity.Product {
	return []entity.Product{
		{
			ID: 1, Name: "Smartfon Veluna X12", Price: 4_990_000, OriginalPrice: pricePtr(5_690_000),
			Image: "/images/products/phone-x12.jpg", Category: "electronics",
			Rating: 4.8, Reviews: 324, InStock: true, Stock: intPtr(25),
			Colors: []string{"Qora", "Kumush"},
		},
		{
			ID: 2, Name: "Simsiz quloqchinlar AirBeat", Price: 450_000, OriginalPrice: pricePtr(590_000),
			Image: "/images/products/airbeat.jpg", Category: "electronics",
			Rating: 4.6, Reviews: 189, InStock: true, Stock: intPtr(60),
			Colors: []string{"Oq", "Qora"},
		},
		{
			ID: 3, Name: "Aqlli soat FitPulse", Price: 320_000,
			Image: "/images/products/fitpulse.jpg", Category: "electronics",
			Rating: 4.3, Reviews: 97, InStock: false, Stock: intPtr(0),
		},
		{
			ID: 4, Name: "Erkaklar kurtkasi", Price: 780_000, OriginalPrice: pricePtr(950_000),
			Image: "/images/products/jacket.jpg", Category: "clothing",
			Rating: 4.5, Reviews: 142, InStock: true, Stock: intPtr(18),
			Sizes: []string{"S", "M", "L", "XL"}, Colors: []string{"Qora", "Jigarrang"},
		},
		{
			ID: 5, Name: "Ayollar ko'ylagi", Price: 390_000,
			Image: "/images/products/dress.jpg", Category: "clothing",
			Rating: 4.7, Reviews: 211, InStock: true, Stock: intPtr(34),
			Sizes: []string{"XS", "S", "M", "L"}, Colors: []string{"Qizil", "Ko'k"},
		},
		{
			ID: 6, Name: "Krossovka RunLite", Price: 560_000, OriginalPrice: pricePtr(640_000),
			Image: "/images/products/runlite.jpg", Category: "clothing",
			Rating: 4.4, Reviews: 176, InStock: true, Stock: intPtr(40),
			Sizes: []string{"40", "41", "42", "43", "44"},
		},
		{
			ID: 7, Name: "Kofe mashinasi BrewMax", Price: 1_850_000,
			Image: "/images/products/brewmax.jpg", Category: "home",
			Rating: 4.6, Reviews: 88, InStock: true, Stock: intPtr(12),
		},
		{
			ID: 8, Name: "Changyutgich CleanAir", Price: 2_300_000, OriginalPrice: pricePtr(2_700_000),
			Image: "/images/products/cleanair.jpg", Category: "home",
			Rating: 4.2, Reviews: 64, InStock: true, Stock: intPtr(9),
		},
		{
			ID: 9, Name: "O'tkan kunlar", Price: 65_000,
			Image: "/images/products/otkan-kunlar.jpg", Category: "books",
			Rating: 4.9, Reviews: 402, InStock: true, Stock: intPtr(150),
		},
		{
			ID: 10, Name: "Go dasturlash tili", Price: 120_000,
			Image: "/images/products/go-book.jpg", Category: "books",
			Rating: 4.7, Reviews: 58, InStock: true, Stock: intPtr(45),
		},
		{
			ID: 11, Name: "Futbol to'pi ProKick", Price: 210_000,
			Image: "/images/products/prokick.jpg", Category: "sports",
			Rating: 4.5, Reviews: 133, InStock: true, Stock: intPtr(70),
		},
		{
			ID: 12, Name: "Yoga gilamchasi", Price: 150_000, OriginalPrice: pricePtr(190_000),
			Image: "/images/products/yoga-mat.jpg", Category: "sports",
			Rating: 4.4, Reviews: 79, InStock: true, Stock: intPtr(55),
			Colors: []string{"Binafsha", "Yashil"},
		},
	}
}

// Categories returns the initial category list.
func Categories() []entity.Category {
	return []entity.Category{
		{ID: 1, Name: "Elektronika", Slug: "electronics", Icon: "smartphone", ProductCount: 3},
		{ID: 2, Name: "Kiyim-kechak", Slug: "clothing", Icon: "shirt", ProductCount: 3},
		{ID: 3, Name: "Uy-ro'zg'or", Slug: "home", Icon: "home", ProductCount: 2},
		{ID: 4, Name: "Kitoblar", Slug: "books", Icon: "book", ProductCount: 2},
		{ID: 5, Name: "Sport", Slug: "sports", Icon: "dumbbell", ProductCount: 2},
	}
}

// Reviews returns the initial reviews.
func Reviews() []entity.Review {
	return []entity.Review{
		{ID: 1, ProductID: 1, Author: "Aziz", Rating: 5, Text: "Juda zo'r telefon", Date: "2024-11-02", Approved: true},
		{ID: 2, ProductID: 9, Author: "Malika", Rating: 5, Text: "Sevimli kitobim", Date: "2024-11-10", Approved: true},
		{ID: 3, ProductID: 6, Author: "Javlon", Rating: 3, Text: "O'lchami biroz kichik", Date: "2024-12-01", Approved: false},
	}
}
