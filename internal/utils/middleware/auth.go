package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/outbound"
	apperrors "github.com/propmarket/server/internal/utils/errors"
)

// Gin context keys of the authenticated caller.
const (
	UserIDKey = "user_id"
	EmailKey  = "email"
	RoleKey   = "role"
)

const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
)

// Auth validates the bearer token and stores the caller on the gin context.
// With optional set, anonymous callers and bad tokens pass through unauthenticated.
func Auth(validator outbound.TokenValidatorPort, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authenticate(validator, c.GetHeader(AuthorizationHeader))
		if err != nil {
			if optional {
				c.Next()
				return
			}
			abort(c, err)
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Set(RoleKey, model.UserRole(claims.Role))
		c.Next()
	}
}

// RequireAuth rejects requests without a valid token with 401 UNAUTHORIZED.
func RequireAuth(validator outbound.TokenValidatorPort) gin.HandlerFunc {
	return Auth(validator, false)
}

func authenticate(validator outbound.TokenValidatorPort, header string) (*outbound.JWTClaims, *apperrors.AppError) {
	token, ok := strings.CutPrefix(header, BearerPrefix)
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return nil, apperrors.Unauthorized("Authorization header required")
	}
	claims, err := validator.ValidateToken(token)
	if err != nil || claims.UserID == uuid.Nil {
		return nil, apperrors.Unauthorized("Invalid or expired token")
	}
	return claims, nil
}

// GetUserID returns the caller's ID, uuid.Nil when unauthenticated.
func GetUserID(c *gin.Context) uuid.UUID {
	id, _ := c.Value(UserIDKey).(uuid.UUID)
	return id
}

func GetEmail(c *gin.Context) string {
	return c.GetString(EmailKey)
}

func GetRole(c *gin.Context) model.UserRole {
	role, _ := c.Value(RoleKey).(model.UserRole)
	return role
}

// GetActor returns the authenticated caller as the domain sees it.
func GetActor(c *gin.Context) model.Actor {
	return model.Actor{UserID: GetUserID(c), Email: GetEmail(c), Role: GetRole(c)}
}

func IsAuthenticated(c *gin.Context) bool {
	return GetUserID(c) != uuid.Nil
}
