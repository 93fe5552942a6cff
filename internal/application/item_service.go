package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shareit-go/shareit-server/internal/domain"
	bookingDomain "github.com/shareit-go/shareit-server/internal/domain/booking"
	itemDomain "github.com/shareit-go/shareit-server/internal/domain/item"
	userDomain "github.com/shareit-go/shareit-server/internal/domain/user"
)

// CreateItemRequest holds the data needed to list a new item.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
}

// UpdateItemRequest is a partial item update; nil fields are left unchanged.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// CreateCommentRequest holds the text of a new item comment.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ItemDTO is the plain response representation of an item.
type ItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	OwnerID     uuid.UUID `json:"ownerId"`
}

// BookingRefDTO annotates an item with one nearest booking.
type BookingRefDTO struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// CommentDTO is the response representation of an item comment.
type CommentDTO struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// ItemDetailDTO is an item decorated with its nearest bookings and comments.
// The booking annotations are only filled for the item's owner.
type ItemDetailDTO struct {
	ItemDTO
	LastBooking *BookingRefDTO `json:"lastBooking"`
	NextBooking *BookingRefDTO `json:"nextBooking"`
	Comments    []CommentDTO   `json:"comments"`
}

// nearestResolver resolves per-item last/next approved bookings in one
// batched call per direction.
type nearestResolver interface {
	LastAndNextForItems(ctx context.Context, itemIDs []uuid.UUID, asOf time.Time) (map[uuid.UUID]*bookingDomain.Booking, map[uuid.UUID]*bookingDomain.Booking, error)
}

// ItemService orchestrates the item catalog use cases.
type ItemService struct {
	items    itemDomain.Repository
	comments itemDomain.CommentRepository
	users    userDomain.Repository
	bookings bookingDomain.Repository
	resolver nearestResolver
	clock    domain.Clock
	logger   *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.Repository,
	comments itemDomain.CommentRepository,
	users userDomain.Repository,
	bookings bookingDomain.Repository,
	resolver nearestResolver,
	clock domain.Clock,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		comments: comments,
		users:    users,
		bookings: bookings,
		resolver: resolver,
		clock:    clock,
		logger:   logger,
	}
}

// AddItem lists a new item for the given owner.
func (s *ItemService) AddItem(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	exists, err := s.users.ExistsByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("user", ownerID.String())
	}

	available := false
	if req.Available != nil {
		available = *req.Available
	}
	itm, err := itemDomain.NewItem(req.Name, req.Description, available, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.items.Save(ctx, itm); err != nil {
		return nil, err
	}

	s.logger.Info("item added",
		zap.String("item_id", itm.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)
	result := toItemDTO(itm)
	return &result, nil
}

// UpdateItem applies a partial update; only the owner may update an item.
func (s *ItemService) UpdateItem(ctx context.Context, itemID, ownerID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	exists, err := s.users.ExistsByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("user", ownerID.String())
	}

	itm, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !itm.IsOwnedBy(ownerID) {
		return nil, domain.NewForbiddenError("only the owner can update an item")
	}

	itm.Patch(req.Name, req.Description, req.Available)
	if err := s.items.Update(ctx, itm); err != nil {
		return nil, err
	}

	result := toItemDTO(itm)
	return &result, nil
}

// GetItem returns one item with its comments. The owner additionally sees
// the last and next approved booking.
func (s *ItemService) GetItem(ctx context.Context, itemID, requesterID uuid.UUID) (*ItemDetailDTO, error) {
	itm, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	details, err := s.decorate(ctx, []*itemDomain.Item{itm}, itm.IsOwnedBy(requesterID))
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// GetOwnerItems returns the owner's items, each decorated with its last and
// next approved booking and its comments.
func (s *ItemService) GetOwnerItems(ctx context.Context, ownerID uuid.UUID, from, size int) ([]ItemDetailDTO, error) {
	exists, err := s.users.ExistsByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("user", ownerID.String())
	}

	items, err := s.items.FindByOwner(ctx, ownerID, from, size)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, items, true)
}

// SearchItems finds available items by a case-insensitive substring of name
// or description. A blank query returns an empty list, not an error.
func (s *ItemService) SearchItems(ctx context.Context, text string, from, size int) ([]ItemDTO, error) {
	if text == "" {
		return []ItemDTO{}, nil
	}

	items, err := s.items.Search(ctx, text, from, size)
	if err != nil {
		return nil, err
	}

	dtos := make([]ItemDTO, len(items))
	for i, itm := range items {
		dtos[i] = toItemDTO(itm)
	}
	return dtos, nil
}

// AddComment records feedback on an item. Allowed only for a user whose
// approved booking of the item already finished.
func (s *ItemService) AddComment(ctx context.Context, itemID, authorID uuid.UUID, req CreateCommentRequest) (*CommentDTO, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	itm, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	finished, err := s.bookings.FindFinished(ctx, itm.ID(), authorID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if finished == nil {
		return nil, domain.NewValidationError("user has no finished booking of this item")
	}

	comment, err := itemDomain.NewComment(req.Text, itm.ID(), author.ID(), author.Name())
	if err != nil {
		return nil, err
	}
	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, err
	}

	result := toCommentDTO(comment)
	return &result, nil
}

// decorate attaches comments to every item and, when withBookings is set,
// the last/next approved booking resolved in one batch.
func (s *ItemService) decorate(ctx context.Context, items []*itemDomain.Item, withBookings bool) ([]ItemDetailDTO, error) {
	itemIDs := make([]uuid.UUID, len(items))
	for i, itm := range items {
		itemIDs[i] = itm.ID()
	}

	var last, next map[uuid.UUID]*bookingDomain.Booking
	if withBookings {
		var err error
		last, next, err = s.resolver.LastAndNextForItems(ctx, itemIDs, s.clock.Now())
		if err != nil {
			return nil, err
		}
	}

	comments, err := s.comments.FindByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[uuid.UUID][]CommentDTO)
	for _, c := range comments {
		commentsByItem[c.ItemID()] = append(commentsByItem[c.ItemID()], toCommentDTO(c))
	}

	details := make([]ItemDetailDTO, len(items))
	for i, itm := range items {
		detail := ItemDetailDTO{
			ItemDTO:  toItemDTO(itm),
			Comments: commentsByItem[itm.ID()],
		}
		if detail.Comments == nil {
			detail.Comments = []CommentDTO{}
		}
		if withBookings {
			detail.LastBooking = toBookingRefDTO(last[itm.ID()])
			detail.NextBooking = toBookingRefDTO(next[itm.ID()])
		}
		details[i] = detail
	}
	return details, nil
}

func toItemDTO(itm *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          itm.ID(),
		Name:        itm.Name(),
		Description: itm.Description(),
		Available:   itm.Available(),
		OwnerID:     itm.OwnerID(),
	}
}

func toBookingRefDTO(bk *bookingDomain.Booking) *BookingRefDTO {
	if bk == nil {
		return nil
	}
	return &BookingRefDTO{
		ID:       bk.ID(),
		BookerID: bk.Booker().ID,
		Start:    bk.Start(),
		End:      bk.End(),
	}
}

func toCommentDTO(c *itemDomain.Comment) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		Text:       c.Text(),
		AuthorName: c.AuthorName(),
		Created:    c.CreatedAt(),
	}
}
