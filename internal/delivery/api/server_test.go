package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"golang.org/x/crypto/bcrypt"

	"veluna/config"
	"veluna/internal/delivery/api/middleware"
	"veluna/internal/delivery/api/router/handler"
	"veluna/internal/domain/constants"
	"veluna/internal/domain/service"
	"veluna/internal/infra/auth"
	"veluna/internal/infra/broadcast"
	"veluna/internal/infra/chatnotify"
	"veluna/internal/infra/qrcode"
	"veluna/internal/infra/storage"
	"veluna/internal/usecase/impl"
	"veluna/internal/usecase/state"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Storage: &config.StorageConfig{Provider: constants.StorageProviderMemory, Namespace: "veluna"},
		Sync: &config.SyncConfig{
			ProductInterval:   time.Hour,
			SettingsInterval:  time.Hour,
			ChatInterval:      time.Hour,
			ChatListInterval:  time.Hour,
			RelayChatInterval: time.Hour,
		},
		Admin: &config.AdminConfig{Email: "admin@veluna.uz", Password: "admin123", TokenTTL: time.Hour},
	}
	cfg.SecretKey.Access = "test-secret"

	return cfg
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	var e *echo.Echo
	app := fxtest.New(t,
		fx.Supply(newTestConfig()),
		fx.Provide(
			func() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) },
			func() service.PasswordHasher { return auth.NewBcryptHasherWithCost(bcrypt.MinCost) },
			auth.NewJWTService,
			func() service.QRCodeService { return qrcode.NewQRCodeService(128, "M") },
		),
		storage.Module,
		broadcast.Module,
		chatnotify.Module,
		state.Module,
		fx.Provide(
			impl.NewCatalogService,
			impl.NewCartService,
			impl.NewProductListService,
			impl.NewOrderService,
			impl.NewNotificationService,
			impl.NewMarketingService,
			impl.NewSettingsService,
			impl.NewCustomerService,
			impl.NewChatService,
			impl.NewAdminService,
			impl.NewAnalyticsService,
			impl.NewCourierService,
			impl.NewShippingZoneService,
			impl.NewPaymentMethodService,
			impl.NewEmailCampaignService,
			impl.NewReviewService,
			impl.NewCategoryService,
			middleware.NewAuthMiddleware,
			handler.NewCatalogHandler,
			handler.NewShoppingHandler,
			handler.NewOrderHandler,
			handler.NewNotificationHandler,
			handler.NewMarketingHandler,
			handler.NewSettingsHandler,
			handler.NewCustomerHandler,
			handler.NewChatHandler,
			handler.NewAdminHandler,
			handler.NewRecordHandlers,
			NewEcho,
		),
		fx.Populate(&e),
	)
	app.RequireStart()
	t.Cleanup(app.RequireStop)

	return e
}

func do(t *testing.T, e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}

	return env
}

func login(t *testing.T, e *echo.Echo, email, password string) string {
	t.Helper()

	rec := do(t, e, http.MethodPost, "/admin/login", `{"email":"`+email+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result struct {
		Token string `json:"token"`
	}
	decode(t, rec, &result)
	require.NotEmpty(t, result.Token)

	return result.Token
}

func TestServer_HealthCarriesRequestID(t *testing.T) {
	e := newTestEcho(t)

	rec := do(t, e, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	requestID := rec.Header().Get("X-Request-Id")
	assert.NotEmpty(t, requestID)
	assert.Equal(t, requestID, decode(t, rec, nil).Meta.RequestID)
}

func TestServer_ListProducts(t *testing.T) {
	e := newTestEcho(t)

	rec := do(t, e, http.MethodGet, "/api/products?perPage=5", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Items []struct {
			ID int64 `json:"id"`
		} `json:"items"`
		Page struct {
			TotalItems int `json:"totalItems"`
			TotalPages int `json:"totalPages"`
		} `json:"page"`
	}
	decode(t, rec, &page)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 12, page.Page.TotalItems)
	assert.Equal(t, 3, page.Page.TotalPages)

	rec = do(t, e, http.MethodGet, "/api/products?sort=cheapest", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decode(t, rec, nil).Error.Code)

	rec = do(t, e, http.MethodGet, "/api/products/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_CartFlow(t *testing.T) {
	e := newTestEcho(t)

	rec := do(t, e, http.MethodPost, "/api/cart", `{"productId":1,"quantity":2}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cart struct {
		Items []struct {
			ID       int64 `json:"id"`
			Quantity int   `json:"quantity"`
		} `json:"items"`
		Summary struct {
			Items    int     `json:"items"`
			Subtotal float64 `json:"subtotal"`
			Total    float64 `json:"total"`
		} `json:"summary"`
	}
	decode(t, rec, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Summary.Items)
	assert.InDelta(t, 9_980_000, cart.Summary.Subtotal, 0.001)

	rec = do(t, e, http.MethodGet, "/api/cart?promoCode=veluna10", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &cart)
	assert.InDelta(t, 8_982_000, cart.Summary.Total, 0.001)

	rec = do(t, e, http.MethodGet, "/api/cart?promoCode=NEWYEAR25", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "PROMO_CODE_INACTIVE", decode(t, rec, nil).Error.Code)

	rec = do(t, e, http.MethodPost, "/api/cart", `{"productId":0}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodDelete, "/api/cart", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &cart)
	assert.Empty(t, cart.Items)
}

func TestServer_AdminRequiresToken(t *testing.T) {
	e := newTestEcho(t)

	rec := do(t, e, http.MethodGet, "/admin/products", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MISSING_TOKEN", decode(t, rec, nil).Error.Code)

	rec = do(t, e, http.MethodGet, "/admin/products", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, e, http.MethodPost, "/admin/login", `{"email":"admin@veluna.uz","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decode(t, rec, nil).Error.Code)

	token := login(t, e, "admin@veluna.uz", "admin123")

	rec = do(t, e, http.MethodGet, "/admin/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		Email string   `json:"email"`
		Roles []string `json:"roles"`
	}
	decode(t, rec, &me)
	assert.Equal(t, "admin@veluna.uz", me.Email)
	assert.Equal(t, []string{"admin"}, me.Roles)

	rec = do(t, e, http.MethodGet, "/admin/products", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_SupportRoleLimitedToChats(t *testing.T) {
	e := newTestEcho(t)
	adminToken := login(t, e, "admin@veluna.uz", "admin123")

	rec := do(t, e, http.MethodPost, "/admin/admins",
		`{"name":"Dilnoza","email":"support@veluna.uz","role":"support","password":"support1"}`, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	token := login(t, e, "support@veluna.uz", "support1")

	rec = do(t, e, http.MethodGet, "/admin/chats", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodGet, "/admin/orders", "", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, e, http.MethodPost, "/admin/clear-data", "", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, e, http.MethodGet, "/admin/activity-log", "", adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "support@veluna.uz")
}

func TestServer_PromoCodeQR(t *testing.T) {
	e := newTestEcho(t)
	token := login(t, e, "admin@veluna.uz", "admin123")

	rec := do(t, e, http.MethodGet, "/admin/promo-codes/1/qr", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "\x89PNG", rec.Body.String()[:4])

	rec = do(t, e, http.MethodGet, "/admin/promo-codes/99/qr", "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, http.MethodPost, "/api/promo/scan", `{"qrData":"{\"code\":\"VELUNA10\",\"type\":\"promo\"}"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "VELUNA10")

	rec = do(t, e, http.MethodPost, "/api/promo/scan", `{"qrData":"garbage"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
