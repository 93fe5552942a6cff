package item

import (
	"time"

	"github.com/google/uuid"
	"github.com/shareit-go/shareit-server/internal/domain"
)

// Comment is feedback left on an item by a user whose approved booking of
// that item has already finished.
type Comment struct {
	id         uuid.UUID
	text       string
	itemID     uuid.UUID
	authorID   uuid.UUID
	authorName string
	createdAt  time.Time
}

// NewComment creates a comment by the given author.
func NewComment(text string, itemID, authorID uuid.UUID, authorName string) (*Comment, error) {
	if text == "" {
		return nil, domain.NewValidationError("comment text is required")
	}
	return &Comment{
		id:         uuid.New(),
		text:       text,
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		createdAt:  time.Now().UTC(),
	}, nil
}

// ReconstructComment rebuilds a Comment from persistence data.
func ReconstructComment(id uuid.UUID, text string, itemID, authorID uuid.UUID, authorName string, createdAt time.Time) *Comment {
	return &Comment{
		id:         id,
		text:       text,
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		createdAt:  createdAt,
	}
}

// ID returns the comment's unique identifier.
func (c *Comment) ID() uuid.UUID { return c.id }

// Text returns the comment body.
func (c *Comment) Text() string { return c.text }

// ItemID returns the commented item's ID.
func (c *Comment) ItemID() uuid.UUID { return c.itemID }

// AuthorID returns the author's user ID.
func (c *Comment) AuthorID() uuid.UUID { return c.authorID }

// AuthorName returns the author's display name.
func (c *Comment) AuthorName() string { return c.authorName }

// CreatedAt returns the creation timestamp.
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
