package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/propmarket/server/internal/port/outbound"
)

// ErrInvalidToken is returned for any token that fails validation.
var ErrInvalidToken = errors.New("invalid token")

// DefaultRole is assumed when a token carries no role claim.
const DefaultRole = "buyer"

// Config holds token validation settings.
type Config struct {
	Secret string
	// Issuer, when set, must match the iss claim.
	Issuer string
}

// validator implements outbound.TokenValidatorPort for HS256 access tokens.
type validator struct {
	secret []byte
	parser *jwt.Parser
}

// NewValidator creates a new access-token validator.
func NewValidator(cfg Config) outbound.TokenValidatorPort {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	return &validator{
		secret: []byte(cfg.Secret),
		parser: jwt.NewParser(opts...),
	}
}

func (v *validator) ValidateToken(tokenString string) (*outbound.JWTClaims, error) {
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("%w: no signing secret configured", ErrInvalidToken)
	}

	token, err := v.parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		role = DefaultRole
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrInvalidToken)
	}

	return &outbound.JWTClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
	}, nil
}

// Compile-time check
var _ outbound.TokenValidatorPort = (*validator)(nil)
