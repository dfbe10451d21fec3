package impl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"golang.org/x/crypto/bcrypt"

	"veluna/config"
	"veluna/internal/domain/entity"
	domainerrors "veluna/internal/domain/errors"
	"veluna/internal/domain/service"
	"veluna/internal/errors"
	"veluna/internal/infra/auth"
	"veluna/internal/infra/storage"
	mockService "veluna/internal/mocks/service"
	"veluna/internal/usecase"
)

type adminServiceFixtures struct {
	service usecase.AdminUsecase
	tokens  *mockService.MockTokenService
	state   stateFixture
}

func createTestAdminService(t *testing.T) adminServiceFixtures {
	t.Helper()

	fx := newTestState(t)
	tokens := mockService.NewMockTokenService(t)
	lc := fxtest.NewLifecycle(t)

	svc := NewAdminService(AdminServiceParams{
		Lc:           lc,
		State:        fx.state,
		Store:        fx.tab,
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenService: tokens,
		Config: &config.Config{Admin: &config.AdminConfig{
			Email:    "Admin@Veluna.uz",
			Password: "admin123",
		}},
		Logger: newDiscardLogger(),
	})
	lc.RequireStart()
	t.Cleanup(lc.RequireStop)

	return adminServiceFixtures{service: svc, tokens: tokens, state: fx}
}

func TestAdminService_BootstrapAdmin(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()

	admins, err := fx.service.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@veluna.uz", admins[0].Email)
	assert.Equal(t, entity.RoleAdmin, admins[0].Role)
	assert.Empty(t, admins[0].PasswordHash)

	// Running it again must not add a second account.
	require.NoError(t, fx.service.EnsureBootstrapAdmin(ctx))
	assert.Len(t, fx.state.state.Admins.Items(), 1)
}

func TestAdminService_Login(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()

	fx.tokens.EXPECT().GenerateToken(fx.state.state.Admins.Items()[0].ID, "admin@veluna.uz", []string{"admin"}).Return("signed-token", nil)
	fx.tokens.EXPECT().TokenTTL().Return(time.Hour)

	result, err := fx.service.Login(ctx, "admin@veluna.uz", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", result.Token)
	assert.Empty(t, result.Admin.PasswordHash)
	assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, time.Minute)

	_, err = fx.service.Login(ctx, "admin@veluna.uz", "wrong")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = fx.service.Login(ctx, "ghost@veluna.uz", "admin123")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAdminService_Login_InactiveAdmin(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()

	created, err := fx.service.CreateAdmin(ctx, entity.Admin{Name: "Malika", Email: "malika@veluna.uz", Role: entity.RoleManager}, "secret1")
	require.NoError(t, err)
	assert.True(t, created.Active)

	_, err = fx.service.SetAdminActive(ctx, created.ID, false)
	require.NoError(t, err)

	_, err = fx.service.Login(ctx, "malika@veluna.uz", "secret1")
	assert.ErrorIs(t, err, domainerrors.ErrAdminInactive)
}

func TestAdminService_CreateAdmin_Rejected(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()

	_, err := fx.service.CreateAdmin(ctx, entity.Admin{Name: "Short", Email: "short@veluna.uz", Role: entity.RoleSupport}, "123")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = fx.service.CreateAdmin(ctx, entity.Admin{Name: "Copy", Email: "ADMIN@veluna.uz", Role: entity.RoleSupport}, "secret1")
	assert.ErrorIs(t, err, domainerrors.ErrAdminExists)

	_, err = fx.service.CreateAdmin(ctx, entity.Admin{Name: "Bad", Email: "bad@veluna.uz", Role: "owner"}, "secret1")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAdminService_Authenticate(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()

	claims := &service.Claims{AdminID: 1, Email: "admin@veluna.uz", Roles: []string{"admin"}}
	fx.tokens.EXPECT().ValidateToken("good").Return(claims, nil)
	fx.tokens.EXPECT().ValidateToken("bad").Return(nil, errors.New("token is expired"))

	got, err := fx.service.Authenticate(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, claims, got)

	_, err = fx.service.Authenticate(ctx, "bad")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAdminService_ActivityLog(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()

	require.NoError(t, fx.service.LogActivity(ctx, "admin@veluna.uz", "create", "product 13"))
	require.NoError(t, fx.service.LogActivity(ctx, "admin@veluna.uz", "delete", "order ORD-1004"))

	entries, err := fx.service.ActivityLog(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "delete", entries[0].Action)
	assert.Equal(t, "create", entries[1].Action)
}

func TestAdminService_ClearData(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()

	chats := &chatService{state: fx.state.state, now: fixedClock(), logger: newDiscardLogger()}
	_, err := chats.Reply(ctx, "user-1", "Salom")
	require.NoError(t, err)
	require.Equal(t, 1, fx.state.state.OpenChats())

	_, err = fx.state.state.Orders.Mutate(ctx, func([]entity.Order) ([]entity.Order, error) {
		return []entity.Order{}, nil
	})
	require.NoError(t, err)
	require.NoError(t, fx.service.LogActivity(ctx, "admin@veluna.uz", "clear", "all"))

	removed, err := fx.service.ClearData(ctx)
	require.NoError(t, err)

	chatKey := fx.state.keys.Chat("user-1")
	assert.Contains(t, removed, chatKey)
	assert.Contains(t, removed, fx.state.keys.Orders())
	assert.NotContains(t, fx.state.storage.Keys(), chatKey)
	assert.Zero(t, fx.state.state.OpenChats())

	// Seeded collections come back; admins survive.
	assert.Len(t, fx.state.state.Orders.Items(), 4)
	assert.Empty(t, fx.state.state.AllChats.Items())
	assert.Empty(t, fx.state.state.ActivityLog.Items())
	assert.Len(t, fx.state.state.Admins.Items(), 1)

	stored, err := storage.GetJSON[[]entity.Order](ctx, fx.state.tab, fx.state.keys.Orders())
	require.NoError(t, err)
	assert.Len(t, stored, 4)
}
