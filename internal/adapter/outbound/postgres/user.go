package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/outbound"
	"gorm.io/gorm"
)

// userAdapter reads the users table owned by the account service.
// The payment core never writes it.
type userAdapter struct {
	db *gorm.DB
}

func NewUserAdapter(db *gorm.DB) outbound.UserReaderPort {
	return &userAdapter{db: db}
}

// FindByID loads the contact fields of a user, nil when unknown.
func (a *userAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := conn(ctx, a.db).
		Select("id", "email", "name", "role").
		Where("id = ?", id).
		Take(&u).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return &u, nil
}
