package item

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for items. The booking engine
// uses it as its item directory: FindByID resolves the available flag and
// the owner.
type Repository interface {
	Save(ctx context.Context, i *Item) error
	Update(ctx context.Context, i *Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByOwner returns the owner's items ordered by creation.
	FindByOwner(ctx context.Context, ownerID uuid.UUID, from, size int) ([]*Item, error)

	// Search returns available items whose name or description contains
	// the text, case-insensitively.
	Search(ctx context.Context, text string, from, size int) ([]*Item, error)
}

// CommentRepository defines the persistence contract for item comments.
type CommentRepository interface {
	Save(ctx context.Context, c *Comment) error

	// FindByItems returns all comments for the given items, newest first.
	FindByItems(ctx context.Context, itemIDs []uuid.UUID) ([]*Comment, error)
}
