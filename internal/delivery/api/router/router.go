// Package router contains routing for the HTTP API.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"veluna/internal/delivery/api/middleware"
	"veluna/internal/delivery/api/router/handler"
	"veluna/internal/domain/entity"
	"veluna/internal/usecase"
)

type RouterParams struct {
	fx.In

	CatalogHandler      *handler.CatalogHandler
	ShoppingHandler     *handler.ShoppingHandler
	OrderHandler        *handler.OrderHandler
	NotificationHandler *handler.NotificationHandler
	MarketingHandler    *handler.MarketingHandler
	SettingsHandler     *handler.SettingsHandler
	CustomerHandler     *handler.CustomerHandler
	ChatHandler         *handler.ChatHandler
	AdminHandler        *handler.AdminHandler
	RecordHandlers      *handler.RecordHandlers
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{RouterParams: params}
}

type recordRoutes interface {
	List(c echo.Context) error
	Get(c echo.Context) error
	Create(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
}

func registerRecords(g *echo.Group, path string, h recordRoutes) {
	g.GET(path, h.List)
	g.POST(path, h.Create)
	g.GET(path+"/:id", h.Get)
	g.PUT(path+"/:id", h.Update)
	g.DELETE(path+"/:id", h.Delete)
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	r.registerStorefront(e.Group("/api"))
	r.registerAdmin(e.Group("/admin"))
}

func (r *router) registerStorefront(api *echo.Group) {
	// Catalog
	api.GET("/products", r.CatalogHandler.ListProducts)
	api.GET("/products/:id", r.CatalogHandler.GetProduct)
	api.GET("/categories", r.RecordHandlers.Categories.List)
	api.GET("/reviews", r.RecordHandlers.Reviews.List)
	api.GET("/banners", r.MarketingHandler.ListActiveBanners)
	api.GET("/settings", r.SettingsHandler.GetSettings)

	// Cart
	api.GET("/cart", r.ShoppingHandler.GetCart)
	api.POST("/cart", r.ShoppingHandler.AddToCart)
	api.PATCH("/cart", r.ShoppingHandler.UpdateCartItem)
	api.DELETE("/cart", r.ShoppingHandler.RemoveFromCart)

	// Wishlist and compare
	for _, list := range []usecase.ProductList{usecase.ListWishlist, usecase.ListCompare} {
		path := "/" + string(list)
		api.GET(path, r.ShoppingHandler.ListProducts(list))
		api.DELETE(path, r.ShoppingHandler.ClearProducts(list))
		api.POST(path+"/:productId", r.ShoppingHandler.ToggleProduct(list))
		api.DELETE(path+"/:productId", r.ShoppingHandler.RemoveProduct(list))
	}

	// Recently viewed
	api.GET("/viewed", r.ShoppingHandler.ListProducts(usecase.ListViewed))
	api.DELETE("/viewed", r.ShoppingHandler.ClearProducts(usecase.ListViewed))
	api.POST("/viewed/:productId", r.ShoppingHandler.RecordView)

	// Checkout and promo codes
	api.POST("/checkout", r.OrderHandler.Checkout)
	api.POST("/promo/apply", r.MarketingHandler.ApplyPromoCode)
	api.POST("/promo/scan", r.MarketingHandler.ScanPromoQR)

	// Notifications
	api.GET("/notifications", r.NotificationHandler.ListNotifications)
	api.POST("/notifications/read-all", r.NotificationHandler.MarkAllAsRead)
	api.POST("/notifications/:id/read", r.NotificationHandler.MarkAsRead)
	api.DELETE("/notifications/:id", r.NotificationHandler.DeleteNotification)

	// Support chat
	api.GET("/chat/:userId", r.ChatHandler.Messages)
	api.POST("/chat/:userId", r.ChatHandler.SendMessage)
}

func (r *router) registerAdmin(admin *echo.Group) {
	admin.POST("/login", r.AdminHandler.Login)

	// Every other back-office route requires a valid token
	authed := admin.Group("", r.AuthMiddleware.Authenticate)
	authed.GET("/me", r.AdminHandler.Me)

	// Support staff only answer chats
	chats := authed.Group("/chats")
	chats.GET("", r.ChatHandler.Threads)
	chats.GET("/:userId", r.ChatHandler.Messages)
	chats.POST("/:userId/reply", r.ChatHandler.Reply)
	chats.POST("/:userId/read", r.ChatHandler.MarkRead)

	staff := authed.Group("", r.AuthMiddleware.RequireRole(entity.RoleAdmin, entity.RoleManager))

	staff.GET("/products", r.CatalogHandler.ListProducts)
	staff.POST("/products", r.CatalogHandler.CreateProduct)
	staff.GET("/products/export", r.CatalogHandler.ExportProducts)
	staff.POST("/products/import", r.CatalogHandler.ImportProducts)
	staff.GET("/products/inventory", r.CatalogHandler.Inventory)
	staff.PUT("/products/:id", r.CatalogHandler.UpdateProduct)
	staff.DELETE("/products/:id", r.CatalogHandler.DeleteProduct)

	staff.GET("/orders", r.OrderHandler.ListOrders)
	staff.PATCH("/orders/:id/status", r.OrderHandler.UpdateStatus)
	staff.DELETE("/orders/:id", r.OrderHandler.DeleteOrder)

	staff.GET("/users", r.CustomerHandler.ListCustomers)
	staff.GET("/users/summary", r.CustomerHandler.Summary)
	staff.PATCH("/users/:id/block", r.CustomerHandler.SetBlocked)
	staff.DELETE("/users/:id", r.CustomerHandler.DeleteCustomer)

	staff.GET("/banners", r.MarketingHandler.ListBanners)
	staff.POST("/banners", r.MarketingHandler.SaveBanner)
	staff.PUT("/banners/:id", r.MarketingHandler.SaveBanner)
	staff.DELETE("/banners/:id", r.MarketingHandler.DeleteBanner)

	staff.GET("/promo-codes", r.MarketingHandler.ListPromoCodes)
	staff.POST("/promo-codes", r.MarketingHandler.CreatePromoCode)
	staff.PUT("/promo-codes/:id", r.MarketingHandler.UpdatePromoCode)
	staff.DELETE("/promo-codes/:id", r.MarketingHandler.DeletePromoCode)
	staff.POST("/promo-codes/:id/toggle", r.MarketingHandler.TogglePromoCode)
	staff.GET("/promo-codes/:id/qr", r.MarketingHandler.PromoCodeQR)

	staff.POST("/notifications", r.NotificationHandler.PushNotification)

	registerRecords(staff, "/couriers", r.RecordHandlers.Couriers)
	registerRecords(staff, "/shipping-zones", r.RecordHandlers.ShippingZones)
	registerRecords(staff, "/payment-methods", r.RecordHandlers.PaymentMethods)
	registerRecords(staff, "/email-campaigns", r.RecordHandlers.EmailCampaigns)
	registerRecords(staff, "/reviews", r.RecordHandlers.Reviews)
	registerRecords(staff, "/categories", r.RecordHandlers.Categories)

	staff.GET("/analytics", r.AdminHandler.Analytics)
	staff.GET("/activity-log", r.AdminHandler.ActivityLog)

	// Account management and destructive operations need the admin role
	owners := authed.Group("", r.AuthMiddleware.RequireRole(entity.RoleAdmin))
	owners.GET("/settings", r.SettingsHandler.GetSettings)
	owners.PUT("/settings", r.SettingsHandler.UpdateSettings)
	owners.GET("/admins", r.AdminHandler.ListAdmins)
	owners.POST("/admins", r.AdminHandler.CreateAdmin)
	owners.PATCH("/admins/:id/active", r.AdminHandler.SetAdminActive)
	owners.POST("/clear-data", r.AdminHandler.ClearData)
}
