package middleware

import (
	"slices"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"veluna/internal/delivery/api/response"
	"veluna/internal/domain/entity"
	"veluna/internal/domain/service"
	"veluna/internal/usecase"
)

const claimsKey = "claims"

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	AdminUC usecase.AdminUsecase
}

// AuthMiddleware validates admin bearer tokens and checks roles.
type AuthMiddleware struct {
	adminUC usecase.AdminUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{adminUC: params.AdminUC}
}

// Authenticate validates the bearer token and stores its claims on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		claims, err := m.adminUC.Authenticate(c.Request().Context(), tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		c.Set(claimsKey, claims)

		return next(c)
	}
}

// RequireRole rejects requests whose token carries none of roles.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := GetClaims(c)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: role information missing")
			}

			if !slices.ContainsFunc(roles, func(r entity.Role) bool { return slices.Contains(claims.Roles, r.String()) }) {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: role not allowed")
			}

			return next(c)
		}
	}
}

// GetClaims returns the token claims set by Authenticate
func GetClaims(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*service.Claims)

	return claims, ok && claims != nil
}

// GetAdminEmail returns the email of the authenticated admin
func GetAdminEmail(c echo.Context) (string, bool) {
	claims, ok := GetClaims(c)
	if !ok {
		return "", false
	}

	return claims.Email, true
}
