package model

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents the marketplace role of a user.
type UserRole string

const (
	UserRoleBuyer  UserRole = "buyer"
	UserRoleSeller UserRole = "seller"
	UserRoleAdmin  UserRole = "admin"
)

// User is the payment core's read projection of a registered user.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Role      UserRole  `json:"role" gorm:"not null;default:buyer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "users"
}

// Actor is the authenticated caller of an operation, resolved upstream.
type Actor struct {
	UserID uuid.UUID
	Email  string
	Role   UserRole
}

// IsAdmin returns true if the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == UserRoleAdmin
}

// CanActOn returns true if the actor is the owner or an admin.
func (a Actor) CanActOn(ownerID uuid.UUID) bool {
	return a.UserID == ownerID || a.IsAdmin()
}
