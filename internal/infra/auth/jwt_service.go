package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"veluna/config"
	"veluna/internal/domain/service"
	"veluna/internal/errors"
)

const (
	defaultTokenTTL = 12 * time.Hour
	tokenIssuer     = "veluna-market"
)

// jwtService implements TokenService with HMAC signed JWTs.
type jwtService struct {
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// NewJWTService creates a token service from the access secret and admin token TTL.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt access secret must be provided")
	}

	ttl := defaultTokenTTL
	if cfg.Admin != nil && cfg.Admin.TokenTTL > 0 {
		ttl = cfg.Admin.TokenTTL
	}

	return &jwtService{
		secret:   []byte(cfg.SecretKey.Access),
		tokenTTL: ttl,
		now:      time.Now,
	}, nil
}

// GenerateToken creates a signed access token for an admin.
func (s *jwtService) GenerateToken(adminID int64, email string, roles []string) (string, error) {
	now := s.now()
	claims := service.Claims{
		AdminID: adminID,
		Email:   email,
		Roles:   roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(adminID, 10),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// ValidateToken parses tokenString and verifies signature, issuer and expiry.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrap(err, "invalid token")
	}

	return claims, nil
}

// TokenTTL returns the configured access token lifetime.
func (s *jwtService) TokenTTL() time.Duration {
	return s.tokenTTL
}
