package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"taskhub-service/internal/models"
)

// TokenService issues and validates signed session tokens. Tokens are
// self-contained HS256 claims with a fixed expiry; there is no server-side
// session store and no revocation.
type TokenService struct {
	secret     string
	expiryTime time.Duration
}

// Claims carries the caller's identity, tenant, and role
type Claims struct {
	UserID   uuid.UUID       `json:"user_id"`
	TenantID *uuid.UUID      `json:"tenant_id,omitempty"`
	Role     models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// NewTokenService creates a new token service
func NewTokenService(secret string, expiryHours int) *TokenService {
	return &TokenService{
		secret:     secret,
		expiryTime: time.Duration(expiryHours) * time.Hour,
	}
}

// IssueToken creates a signed token for a user. TenantID is nil for super
// admins, who are not scoped to any tenant.
func (t *TokenService) IssueToken(userID uuid.UUID, tenantID *uuid.UUID, role models.UserRole) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		TenantID: tenantID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiryTime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "taskhub",
			Subject:   userID.String(),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.secret))
}

// VerifyToken validates a token and returns its claims. Bad signatures,
// malformed tokens, and expired tokens all collapse to ErrInvalidToken.
func (t *TokenService) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(t.secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// SessionFromClaims converts verified claims into a typed session
func SessionFromClaims(claims *Claims) Session {
	return Session{
		UserID:   claims.UserID,
		TenantID: claims.TenantID,
		Role:     claims.Role,
	}
}

// TokenExpiry returns the configured token lifetime
func (t *TokenService) TokenExpiry() time.Duration {
	return t.expiryTime
}
