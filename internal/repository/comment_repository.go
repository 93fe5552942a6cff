package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shareit-go/shareit-server/internal/domain"
	itemDomain "github.com/shareit-go/shareit-server/internal/domain/item"
)

// CommentModel is the GORM model for the comments table. The author name is
// denormalized at write time so listings need no extra join.
type CommentModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Text       string    `gorm:"not null;size:2000"`
	ItemID     uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null"`
	AuthorName string    `gorm:"not null;size:255"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (CommentModel) TableName() string {
	return "comments"
}

// GormCommentRepository is the GORM-based implementation of the comment
// repository.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Save persists a new comment.
func (r *GormCommentRepository) Save(ctx context.Context, c *itemDomain.Comment) error {
	model := CommentModel{
		ID:         c.ID(),
		Text:       c.Text(),
		ItemID:     c.ItemID(),
		AuthorID:   c.AuthorID(),
		AuthorName: c.AuthorName(),
		CreatedAt:  c.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.NewStorageError("save comment", err)
	}
	return nil
}

// FindByItems returns all comments for the given items, newest first.
func (r *GormCommentRepository) FindByItems(ctx context.Context, itemIDs []uuid.UUID) ([]*itemDomain.Comment, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	var models []CommentModel
	err := r.db.WithContext(ctx).
		Where("item_id IN ?", itemIDs).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, domain.NewStorageError("find comments by items", err)
	}

	comments := make([]*itemDomain.Comment, len(models))
	for i, m := range models {
		comments[i] = itemDomain.ReconstructComment(m.ID, m.Text, m.ItemID, m.AuthorID, m.AuthorName, m.CreatedAt)
	}
	return comments, nil
}
