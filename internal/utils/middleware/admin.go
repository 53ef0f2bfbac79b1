package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/propmarket/server/internal/model"
	apperrors "github.com/propmarket/server/internal/utils/errors"
)

// AdminAuthorizer grants the admin role to configured accounts on top of the token role.
type AdminAuthorizer struct {
	emails  map[string]struct{}
	userIDs map[uuid.UUID]struct{}
}

// NewAdminAuthorizer creates an authorizer from allowlisted emails and user IDs.
// Malformed IDs are ignored.
func NewAdminAuthorizer(emails, userIDs []string) *AdminAuthorizer {
	return &AdminAuthorizer{
		emails:  normalizeEmailSet(emails),
		userIDs: parseUUIDSet(userIDs),
	}
}

// IsAdmin reports whether the actor holds the admin role or is allowlisted.
func (a *AdminAuthorizer) IsAdmin(actor model.Actor) bool {
	if actor.IsAdmin() {
		return true
	}
	if a == nil {
		return false
	}
	if _, ok := a.userIDs[actor.UserID]; ok && actor.UserID != uuid.Nil {
		return true
	}
	if email := normalizeEmail(actor.Email); email != "" {
		if _, ok := a.emails[email]; ok {
			return true
		}
	}
	return false
}

// ResolveRole upgrades allowlisted callers to the admin role. It must run after Auth.
func ResolveRole(authorizer *AdminAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAuthenticated(c) && authorizer.IsAdmin(GetActor(c)) {
			c.Set(RoleKey, model.UserRoleAdmin)
		}
		c.Next()
	}
}

// RequireAdmin rejects callers without the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) {
			abort(c, apperrors.Unauthorized("User not authenticated"))
			return
		}
		if GetRole(c) != model.UserRoleAdmin {
			abort(c, apperrors.Forbidden("Insufficient permissions"))
			return
		}
		c.Next()
	}
}

func normalizeEmailSet(emails []string) map[string]struct{} {
	out := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		if e = normalizeEmail(e); e != "" {
			out[e] = struct{}{}
		}
	}
	return out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func parseUUIDSet(ids []string) map[uuid.UUID]struct{} {
	out := make(map[uuid.UUID]struct{}, len(ids))
	for _, s := range ids {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			continue
		}
		out[id] = struct{}{}
	}
	return out
}
