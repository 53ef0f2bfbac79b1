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

// listingAdapter implements outbound.ListingDatabasePort.
type listingAdapter struct {
	db *gorm.DB
}

// NewListingAdapter creates a new listing database adapter.
func NewListingAdapter(db *gorm.DB) outbound.ListingDatabasePort {
	return &listingAdapter{db: db}
}

func (a *listingAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.Listing, error) {
	var listing model.Listing
	err := conn(ctx, a.db).First(&listing, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find listing: %w", err)
	}
	return &listing, nil
}

func (a *listingAdapter) UpdateFields(ctx context.Context, id uuid.UUID, patch *model.ListingPatch) error {
	cols := patch.Columns()
	if len(cols) == 0 {
		return nil
	}

	result := conn(ctx, a.db).
		Model(&model.Listing{}).
		Where("id = ?", id).
		Updates(cols)
	if result.Error != nil {
		return fmt.Errorf("update listing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return outbound.ErrListingNotFound
	}
	return nil
}

// Compile-time check
var _ outbound.ListingDatabasePort = (*listingAdapter)(nil)
