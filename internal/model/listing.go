package model

import (
	"time"

	"github.com/google/uuid"
)

// ListingStatus represents the moderation status of a listing.
type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "pending"
	ListingStatusApproved ListingStatus = "approved"
	ListingStatusRejected ListingStatus = "rejected"
)

// Listing is the payment core's projection of a marketplace listing.
// Listing CRUD lives elsewhere; only the paid-for fields are written here.
type Listing struct {
	ID                 uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID            uuid.UUID     `json:"owner_id" gorm:"type:uuid;not null;index"`
	Name               string        `json:"name" gorm:"not null"`
	Status             ListingStatus `json:"status" gorm:"not null;default:pending"`
	IsVerified         bool          `json:"is_verified" gorm:"not null;default:false"`
	IsFeatured         bool          `json:"is_featured" gorm:"not null;default:false"`
	FeaturedUntil      *time.Time    `json:"featured_until,omitempty"`
	InspectionBooked   bool          `json:"inspection_booked" gorm:"not null;default:false"`
	InspectionBookedAt *time.Time    `json:"inspection_booked_at,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Listing) TableName() string {
	return "listings"
}

// IsOwnedBy returns true if the user owns the listing.
func (l *Listing) IsOwnedBy(userID uuid.UUID) bool {
	return l.OwnerID == userID
}

// ListingPatch carries the listing fields a payment effect may set.
// Nil fields are left untouched.
type ListingPatch struct {
	IsVerified         *bool
	IsFeatured         *bool
	FeaturedUntil      *time.Time
	InspectionBooked   *bool
	InspectionBookedAt *time.Time
}

// Columns returns the column map for a partial update.
func (p *ListingPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if p.IsVerified != nil {
		cols["is_verified"] = *p.IsVerified
	}
	if p.IsFeatured != nil {
		cols["is_featured"] = *p.IsFeatured
	}
	if p.FeaturedUntil != nil {
		cols["featured_until"] = *p.FeaturedUntil
	}
	if p.InspectionBooked != nil {
		cols["inspection_booked"] = *p.InspectionBooked
	}
	if p.InspectionBookedAt != nil {
		cols["inspection_booked_at"] = *p.InspectionBookedAt
	}
	return cols
}
