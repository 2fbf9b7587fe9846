package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/notablyhq/notably/pkg/domain"
)

// DefaultTokenTTL is the fixed bearer token lifetime.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims is the identity assertion carried by a bearer token. Identity
// is always re-derived from these verified claims per request, never
// from client-supplied body fields.
type Claims struct {
	jwt.RegisteredClaims
	TenantID string      `json:"tenant_id"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
}

// TokenConfig holds token codec configuration.
type TokenConfig struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// TokenService issues and validates signed identity tokens. There is no
// revocation; logout is client-side discard.
type TokenService struct {
	config TokenConfig
}

// NewTokenService creates a token service. The signing secret must be
// non-empty; config loading enforces that before this is reached.
func NewTokenService(config TokenConfig) *TokenService {
	if config.TTL == 0 {
		config.TTL = DefaultTokenTTL
	}
	return &TokenService{config: config}
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.config.TTL
}

// Issue signs a token carrying the user's identity context.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TTL)),
			Issuer:    s.config.Issuer,
		},
		TenantID: user.TenantID.String(),
		Email:    user.Email,
		Role:     user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.config.Secret)
}

// Validate verifies a token's signature and expiry and returns its
// claims. Every failure mode (malformed, expired, bad signature, wrong
// algorithm) collapses into domain.ErrInvalidToken.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return s.config.Secret, nil
	})
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}

// Identity is the authenticated caller's context for one request.
type Identity struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Email    string
	Role     domain.Role
}

// IdentityFromClaims converts verified claims into an identity context.
func IdentityFromClaims(claims *Claims) (*Identity, error) {
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	if !claims.Role.Valid() {
		return nil, domain.ErrInvalidToken
	}
	return &Identity{
		UserID:   userID,
		TenantID: tenantID,
		Email:    claims.Email,
		Role:     claims.Role,
	}, nil
}
