package usecase

import (
	"context"
	"time"

	"veluna/internal/domain/entity"
	"veluna/internal/domain/service"
	"veluna/internal/usecase/derived"
)

// LoginResult carries the issued access token
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Admin     entity.Admin `json:"admin"`
}

// AdminUsecase defines back-office account and maintenance use cases
type AdminUsecase interface {
	// EnsureBootstrapAdmin creates the configured admin when no admin exists
	EnsureBootstrapAdmin(ctx context.Context) error

	// Login checks credentials and issues a token
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Authenticate validates a token
	Authenticate(ctx context.Context, token string) (*service.Claims, error)

	// ListAdmins returns the accounts without password hashes
	ListAdmins(ctx context.Context) ([]entity.Admin, error)

	// CreateAdmin adds an account with a hashed password
	CreateAdmin(ctx context.Context, admin entity.Admin, password string) (*entity.Admin, error)

	// SetAdminActive enables or disables an account
	SetAdminActive(ctx context.Context, id int64, active bool) (*entity.Admin, error)

	// LogActivity prepends an activity log entry
	LogActivity(ctx context.Context, admin, action, target string) error

	// ActivityLog returns the activity log, most recent first
	ActivityLog(ctx context.Context) ([]entity.LogEntry, error)

	// ClearData removes the clearable keys; seeded collections come back with defaults
	ClearData(ctx context.Context) ([]string, error)
}

// RecordUsecase defines generic CRUD over a back-office collection
type RecordUsecase[T entity.Record] interface {
	// List returns every record
	List(ctx context.Context) ([]T, error)

	// Get returns one record
	Get(ctx context.Context, id int64) (*T, error)

	// Save validates the record, assigns an id when it is zero and upserts it
	Save(ctx context.Context, record T) (*T, error)

	// Delete removes a record
	Delete(ctx context.Context, id int64) error
}

// Dashboard is the analytics overview of the back-office
type Dashboard struct {
	Orders     derived.OrderSummary     `json:"orders"`
	Categories []derived.CategorySlice  `json:"categories"`
	Revenue    []derived.RevenuePoint   `json:"revenue"`
	Inventory  derived.InventorySummary `json:"inventory"`
	Customers  derived.CustomerSummary  `json:"customers"`
}

// AnalyticsUsecase defines the read-only analytics use cases
type AnalyticsUsecase interface {
	// Dashboard computes the overview from the current collections
	Dashboard(ctx context.Context) Dashboard
}
