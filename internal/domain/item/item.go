package item

import (
	"time"

	"github.com/google/uuid"
	"github.com/shareit-go/shareit-server/internal/domain"
)

// Item is a shareable thing listed by its owner. The booking engine never
// mutates items; it only reads the available flag and the owner.
type Item struct {
	id          uuid.UUID
	name        string
	description string
	available   bool
	ownerID     uuid.UUID
	createdAt   time.Time
	updatedAt   time.Time
}

// NewItem creates a new item owned by ownerID.
func NewItem(name, description string, available bool, ownerID uuid.UUID) (*Item, error) {
	if name == "" {
		return nil, domain.NewValidationError("item name is required")
	}
	if description == "" {
		return nil, domain.NewValidationError("item description is required")
	}
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}

	now := time.Now().UTC()
	return &Item{
		id:          uuid.New(),
		name:        name,
		description: description,
		available:   available,
		ownerID:     ownerID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, description string, available bool, ownerID uuid.UUID, createdAt, updatedAt time.Time) *Item {
	return &Item{
		id:          id,
		name:        name,
		description: description,
		available:   available,
		ownerID:     ownerID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the item's unique identifier.
func (i *Item) ID() uuid.UUID { return i.id }

// Name returns the item name.
func (i *Item) Name() string { return i.name }

// Description returns the item description.
func (i *Item) Description() string { return i.description }

// Available reports whether the item can currently be booked.
func (i *Item) Available() bool { return i.available }

// OwnerID returns the owning user's ID.
func (i *Item) OwnerID() uuid.UUID { return i.ownerID }

// CreatedAt returns the creation timestamp.
func (i *Item) CreatedAt() time.Time { return i.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }

// IsOwnedBy reports whether userID owns the item.
func (i *Item) IsOwnedBy(userID uuid.UUID) bool { return i.ownerID == userID }

// Patch applies a partial update. Nil fields keep their current value.
func (i *Item) Patch(name, description *string, available *bool) {
	if name != nil {
		i.name = *name
	}
	if description != nil {
		i.description = *description
	}
	if available != nil {
		i.available = *available
	}
	i.updatedAt = time.Now().UTC()
}
