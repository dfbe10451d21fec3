package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims for admin access tokens.
type Claims struct {
	AdminID int64    `json:"aid"`
	Email   string   `json:"email"`
	Roles   []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
type TokenService interface {
	// GenerateToken creates a signed access token for an admin.
	GenerateToken(adminID int64, email string, roles []string) (string, error)

	// ValidateToken checks the validity of a token string.
	ValidateToken(tokenString string) (*Claims, error)

	// TokenTTL returns the configured access token lifetime.
	TokenTTL() time.Duration
}
