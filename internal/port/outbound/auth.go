package outbound

import (
	"github.com/google/uuid"
)

// JWTClaims represents JWT token claims.
type JWTClaims struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// TokenValidatorPort validates access tokens issued by the auth service.
type TokenValidatorPort interface {
	ValidateToken(token string) (*JWTClaims, error)
}
