package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"go.uber.org/fx"

	"veluna/config"
	"veluna/internal/domain/entity"
	domainerrors "veluna/internal/domain/errors"
	"veluna/internal/domain/repository"
	"veluna/internal/domain/service"
	"veluna/internal/infra/storage"
	"veluna/internal/usecase"
	"veluna/internal/usecase/collection"
	"veluna/internal/usecase/state"
)

const (
	maxActivityLog    = 500
	minPasswordLength = 6
	bootstrapName     = "Administrator"
	logTimeLayout     = "2006-01-02 15:04"
)

type adminService struct {
	state  *state.State
	store  repository.KeyedStore
	hasher service.PasswordHasher
	tokens service.TokenService
	cfg    *config.AdminConfig
	now    clock
	logger *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	Lc           fx.Lifecycle
	State        *state.State
	Store        repository.KeyedStore
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAdminService creates a new admin service instance. The bootstrap admin
// is ensured once the state has been mounted.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	svc := &adminService{
		state:  params.State,
		store:  params.Store,
		hasher: params.Hasher,
		tokens: params.TokenService,
		cfg:    params.Config.Admin,
		now:    time.Now,
		logger: params.Logger,
	}

	params.Lc.Append(fx.Hook{
		OnStart: svc.EnsureBootstrapAdmin,
	})

	return svc
}

// EnsureBootstrapAdmin creates the configured admin when no admin exists
func (s *adminService) EnsureBootstrapAdmin(ctx context.Context) error {
	if s.cfg == nil || s.cfg.Email == "" || s.cfg.Password == "" {
		s.logger.Warn("No bootstrap admin configured")

		return nil
	}

	if len(s.state.Admins.Items()) > 0 {
		return nil
	}

	hash, err := s.hasher.Hash(s.cfg.Password)
	if err != nil {
		return err
	}

	admin := entity.Admin{
		ID:           collection.NewID(),
		Name:         bootstrapName,
		Email:        strings.ToLower(s.cfg.Email),
		Role:         entity.RoleAdmin,
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    s.now.today(),
	}

	if _, err := mutate(ctx, s.state.Admins, func(admins []entity.Admin) ([]entity.Admin, error) {
		if len(admins) > 0 {
			return nil, errUnchanged
		}

		return append(admins, admin), nil
	}); err != nil {
		return err
	}

	s.logger.Info("Bootstrap admin created", slog.String("email", admin.Email))

	return nil
}

// Login checks credentials and issues a token
func (s *adminService) Login(ctx context.Context, email, password string) (*usecase.LoginResult, error) {
	admins := s.state.Admins.Items()

	i := slices.IndexFunc(admins, func(a entity.Admin) bool { return strings.EqualFold(a.Email, strings.TrimSpace(email)) })
	if i < 0 || !s.hasher.Check(password, admins[i].PasswordHash) {
		loggerFrom(ctx, s.logger).Warn("Admin login failed", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials
	}

	admin := admins[i]
	if !admin.Active {
		return nil, domainerrors.ErrAdminInactive
	}

	token, err := s.tokens.GenerateToken(admin.ID, admin.Email, []string{admin.Role.String()})
	if err != nil {
		return nil, err
	}

	admin.PasswordHash = ""

	return &usecase.LoginResult{
		Token:     token,
		ExpiresAt: s.now().Add(s.tokens.TokenTTL()),
		Admin:     admin,
	}, nil
}

// Authenticate validates a token
func (s *adminService) Authenticate(_ context.Context, token string) (*service.Claims, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized.WithDetails(err.Error())
	}

	return claims, nil
}

// ListAdmins returns the accounts without password hashes
func (s *adminService) ListAdmins(_ context.Context) ([]entity.Admin, error) {
	admins := s.state.Admins.Items()
	for i := range admins {
		admins[i].PasswordHash = ""
	}

	return admins, nil
}

// CreateAdmin adds an account with a hashed password
func (s *adminService) CreateAdmin(ctx context.Context, admin entity.Admin, password string) (*entity.Admin, error) {
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	if err := validateEntity(admin); err != nil {
		return nil, err
	}
	if len(password) < minPasswordLength {
		return nil, domainerrors.ErrValidationFailed.WithDetails("password is too short")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	admin.ID = collection.NewID()
	admin.PasswordHash = hash
	admin.Active = true
	admin.CreatedAt = s.now.today()

	if _, err := s.state.Admins.Mutate(ctx, func(admins []entity.Admin) ([]entity.Admin, error) {
		if slices.ContainsFunc(admins, func(a entity.Admin) bool { return strings.EqualFold(a.Email, admin.Email) }) {
			return nil, domainerrors.ErrAdminExists
		}

		return append(admins, admin), nil
	}); err != nil {
		return nil, err
	}

	admin.PasswordHash = ""

	return &admin, nil
}

// SetAdminActive enables or disables an account
func (s *adminService) SetAdminActive(ctx context.Context, id int64, active bool) (*entity.Admin, error) {
	var updated entity.Admin
	if _, err := s.state.Admins.Mutate(ctx, func(admins []entity.Admin) ([]entity.Admin, error) {
		i := collection.IndexOf(admins, id)
		if i < 0 {
			return nil, domainerrors.ErrNotFound.WithDetails("admin")
		}
		admins[i].Active = active
		updated = admins[i]

		return admins, nil
	}); err != nil {
		return nil, err
	}

	updated.PasswordHash = ""

	return &updated, nil
}

// LogActivity prepends an activity log entry, keeping the newest maxActivityLog entries
func (s *adminService) LogActivity(ctx context.Context, admin, action, target string) error {
	entry := entity.LogEntry{
		ID:     collection.NewID(),
		Admin:  admin,
		Action: action,
		Target: target,
		Time:   s.now().Format(logTimeLayout),
	}

	_, err := s.state.ActivityLog.Mutate(ctx, func(entries []entity.LogEntry) ([]entity.LogEntry, error) {
		entries = slices.Insert(entries, 0, entry)
		if len(entries) > maxActivityLog {
			entries = entries[:maxActivityLog]
		}

		return entries, nil
	})

	return err
}

// ActivityLog returns the activity log, most recent first
func (s *adminService) ActivityLog(_ context.Context) ([]entity.LogEntry, error) {
	return s.state.ActivityLog.Items(), nil
}

// ClearData removes the clearable keys and every chat conversation, then
// reloads the views so seeded collections are written back.
func (s *adminService) ClearData(ctx context.Context) ([]string, error) {
	keys := s.state.Keys()

	users := make(map[string]struct{})
	for userID := range s.state.AllChats.Items() {
		users[userID] = struct{}{}
	}
	for _, userID := range s.state.OpenChatUsers() {
		users[userID] = struct{}{}
	}

	removed := keys.Clearable()
	for userID := range users {
		removed = append(removed, keys.Chat(userID))
		s.state.CloseChat(userID)
	}

	for _, key := range removed {
		if err := storage.Remove(ctx, s.store, key); err != nil {
			return nil, err
		}
	}

	if err := s.state.Reload(ctx); err != nil {
		return removed, err
	}

	loggerFrom(ctx, s.logger).Warn("Data cleared", slog.Int("keys", len(removed)))

	return removed, nil
}
