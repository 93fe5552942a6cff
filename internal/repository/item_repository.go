package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shareit-go/shareit-server/internal/domain"
	itemDomain "github.com/shareit-go/shareit-server/internal/domain/item"
)

// ItemModel is the GORM model for the items table.
type ItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null;size:255"`
	Description string    `gorm:"not null;size:1000"`
	Available   bool      `gorm:"not null"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ItemModel) TableName() string {
	return "items"
}

// GormItemRepository is the GORM-based implementation of the item repository.
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository.
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// Save persists a new item.
func (r *GormItemRepository) Save(ctx context.Context, itm *itemDomain.Item) error {
	model := toItemModel(itm)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.NewStorageError("save item", err)
	}
	return nil
}

// Update persists changes to an existing item.
func (r *GormItemRepository) Update(ctx context.Context, itm *itemDomain.Item) error {
	result := r.db.WithContext(ctx).
		Model(&ItemModel{}).
		Where("id = ?", itm.ID()).
		Updates(map[string]interface{}{
			"name":        itm.Name(),
			"description": itm.Description(),
			"available":   itm.Available(),
			"updated_at":  itm.UpdatedAt(),
		})
	if result.Error != nil {
		return domain.NewStorageError("update item", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("item", itm.ID().String())
	}
	return nil
}

// FindByID retrieves an item by its unique identifier.
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	var model ItemModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("item", id.String())
		}
		return nil, domain.NewStorageError("find item by id", err)
	}
	return toDomainItem(&model), nil
}

// FindByOwner returns the owner's items ordered by creation.
func (r *GormItemRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, from, size int) ([]*itemDomain.Item, error) {
	var models []ItemModel
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Offset(pageOffset(from, size)).
		Limit(size).
		Find(&models).Error
	if err != nil {
		return nil, domain.NewStorageError("find items by owner", err)
	}
	return toDomainItems(models), nil
}

// Search returns available items whose name or description contains the
// text, case-insensitively.
func (r *GormItemRepository) Search(ctx context.Context, text string, from, size int) ([]*itemDomain.Item, error) {
	var models []ItemModel
	pattern := "%" + text + "%"
	err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Where("name ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("created_at ASC").
		Offset(pageOffset(from, size)).
		Limit(size).
		Find(&models).Error
	if err != nil {
		return nil, domain.NewStorageError("search items", err)
	}
	return toDomainItems(models), nil
}

func toItemModel(itm *itemDomain.Item) ItemModel {
	return ItemModel{
		ID:          itm.ID(),
		Name:        itm.Name(),
		Description: itm.Description(),
		Available:   itm.Available(),
		OwnerID:     itm.OwnerID(),
		CreatedAt:   itm.CreatedAt(),
		UpdatedAt:   itm.UpdatedAt(),
	}
}

func toDomainItem(m *ItemModel) *itemDomain.Item {
	return itemDomain.Reconstruct(m.ID, m.Name, m.Description, m.Available, m.OwnerID, m.CreatedAt, m.UpdatedAt)
}

func toDomainItems(models []ItemModel) []*itemDomain.Item {
	items := make([]*itemDomain.Item, len(models))
	for i := range models {
		items[i] = toDomainItem(&models[i])
	}
	return items
}
