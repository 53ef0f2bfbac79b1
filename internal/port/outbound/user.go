package outbound

import (
	"context"

	"github.com/google/uuid"
	"github.com/propmarket/server/internal/model"
)

// UserReaderPort reads user details for notifications and gateway metadata.
type UserReaderPort interface {
	// FindByID finds a user by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}
