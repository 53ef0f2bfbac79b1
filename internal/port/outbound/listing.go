package outbound

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/propmarket/server/internal/model"
)

// ErrListingNotFound is returned when a listing update matches no row.
var ErrListingNotFound = errors.New("listing not found")

// ListingDatabasePort defines the listing operations the payment core needs.
type ListingDatabasePort interface {
	// FindByID finds a listing by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Listing, error)

	// UpdateFields applies a partial update. Returns ErrListingNotFound if no row matched.
	UpdateFields(ctx context.Context, id uuid.UUID, patch *model.ListingPatch) error
}
