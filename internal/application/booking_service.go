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
	"github.com/shareit-go/shareit-server/internal/events"
)

// hideExistence is the authorization-as-not-found policy: access failures on
// bookings (self-booking, deciding or reading someone else's booking) are
// reported as not-found so non-owners cannot probe for existence.
const hideExistence = true

// CreateBookingRequest holds the data needed to reserve an item.
type CreateBookingRequest struct {
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
	ItemID uuid.UUID `json:"itemId" binding:"required"`
}

// ItemShortDTO is the item snapshot rendered inside a booking response.
type ItemShortDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UserShortDTO is the user snapshot rendered inside a booking response.
type UserShortDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID     uuid.UUID    `json:"id"`
	Start  time.Time    `json:"start"`
	End    time.Time    `json:"end"`
	Status string       `json:"status"`
	Item   ItemShortDTO `json:"item"`
	Booker UserShortDTO `json:"booker"`
}

// BookingService orchestrates the reservation, approval and availability
// query use cases over the booking store.
type BookingService struct {
	bookings bookingDomain.Repository
	items    itemDomain.Repository
	users    userDomain.Repository
	clock    domain.Clock
	producer events.Publisher
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService. producer may be nil, in
// which case lifecycle events are not published.
func NewBookingService(
	bookings bookingDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	clock domain.Clock,
	producer events.Publisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		clock:    clock,
		producer: producer,
		logger:   logger,
	}
}

// CreateBooking validates and persists a new reservation in the WAITING
// state. Checks are fail-fast and run before the single store write.
func (s *BookingService) CreateBooking(ctx context.Context, bookerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	if !req.End.After(req.Start) {
		return nil, domain.NewInvalidRangeError("end date must be after start date")
	}

	itm, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !itm.Available() {
		return nil, domain.NewNotAvailableError("item with id=" + itm.ID().String() + " not available")
	}

	existing, err := s.bookings.FindOverlapping(ctx, itm.ID(), req.Start, req.End)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewNotAvailableError("item with id=" + itm.ID().String() + " is already booked for this period")
	}

	if itm.IsOwnedBy(bookerID) {
		// The owner booking their own item is hidden, not explained.
		if hideExistence {
			return nil, domain.NewNotFoundError("item", itm.ID().String())
		}
		return nil, domain.NewForbiddenError("owner cannot book own item")
	}

	booker, err := s.users.FindByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	bk, err := bookingDomain.NewBooking(
		req.Start,
		req.End,
		bookingDomain.ItemRef{ID: itm.ID(), Name: itm.Name(), OwnerID: itm.OwnerID()},
		bookingDomain.BookerRef{ID: booker.ID(), Name: booker.Name()},
	)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", bk.ID().String()),
		zap.String("item_id", itm.ID().String()),
		zap.String("booker_id", bookerID.String()),
	)
	s.publishLifecycle(ctx, events.BookingCreated, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// DecideBooking applies the item owner's approval decision to a waiting
// booking. Re-approving an approved booking is a conflict; any other
// decision on a non-waiting booking conflicts with the one-shot transition.
func (s *BookingService) DecideBooking(ctx context.Context, bookingID, ownerID uuid.UUID, approved bool) (*BookingDTO, error) {
	exists, err := s.users.ExistsByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("user", ownerID.String())
	}

	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if bk.Item().OwnerID != ownerID {
		if hideExistence {
			return nil, domain.NewNotFoundError("booking", bookingID.String())
		}
		return nil, domain.NewForbiddenError("only the item owner can decide a booking")
	}

	if approved {
		err = bk.Approve()
	} else {
		err = bk.Reject()
	}
	if err != nil {
		return nil, err
	}

	if err := s.bookings.UpdateStatus(ctx, bk); err != nil {
		return nil, err
	}

	eventType := events.BookingRejected
	if approved {
		eventType = events.BookingApproved
	}
	s.logger.Info("booking decided",
		zap.String("booking_id", bk.ID().String()),
		zap.String("status", bk.Status().String()),
	)
	s.publishLifecycle(ctx, eventType, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// CancelBooking lets the booker withdraw a waiting booking.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, bookerID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if bk.Booker().ID != bookerID {
		if hideExistence {
			return nil, domain.NewNotFoundError("booking", bookingID.String())
		}
		return nil, domain.NewForbiddenError("only the booker can cancel a booking")
	}

	if err := bk.Cancel(); err != nil {
		return nil, err
	}
	if err := s.bookings.UpdateStatus(ctx, bk); err != nil {
		return nil, err
	}

	s.logger.Info("booking canceled", zap.String("booking_id", bk.ID().String()))
	s.publishLifecycle(ctx, events.BookingCanceled, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking returns a booking visible only to its booker or the item owner.
func (s *BookingService) GetBooking(ctx context.Context, bookingID, userID uuid.UUID) (*BookingDTO, error) {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("user", userID.String())
	}

	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if bk.Booker().ID != userID && bk.Item().OwnerID != userID {
		return nil, domain.NewNotFoundError("booking", bookingID.String())
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBookerBookings lists the user's own bookings filtered by temporal
// state, most recent start first.
func (s *BookingService) GetBookerBookings(ctx context.Context, bookerID uuid.UUID, state bookingDomain.TemporalState, from, size int) ([]BookingDTO, error) {
	exists, err := s.users.ExistsByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("user", bookerID.String())
	}

	bookings, err := s.bookings.ListByBooker(ctx, bookerID, state, s.clock.Now(), from, size)
	if err != nil {
		return nil, err
	}
	return toBookingDTOs(bookings), nil
}

// GetOwnerBookings lists bookings on all items the user owns, filtered by
// temporal state, most recent start first.
func (s *BookingService) GetOwnerBookings(ctx context.Context, ownerID uuid.UUID, state bookingDomain.TemporalState, from, size int) ([]BookingDTO, error) {
	exists, err := s.users.ExistsByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("user", ownerID.String())
	}

	bookings, err := s.bookings.ListByOwner(ctx, ownerID, state, s.clock.Now(), from, size)
	if err != nil {
		return nil, err
	}
	return toBookingDTOs(bookings), nil
}

// LastAndNextForItems resolves, per item, the most recent past approved
// booking and the nearest future approved booking relative to asOf. Each
// map holds at most one booking per item id; items without a match are
// simply absent. One batched query per direction, no per-item round trips.
func (s *BookingService) LastAndNextForItems(ctx context.Context, itemIDs []uuid.UUID, asOf time.Time) (map[uuid.UUID]*bookingDomain.Booking, map[uuid.UUID]*bookingDomain.Booking, error) {
	if len(itemIDs) == 0 {
		return map[uuid.UUID]*bookingDomain.Booking{}, map[uuid.UUID]*bookingDomain.Booking{}, nil
	}

	lastRows, err := s.bookings.FindLastForItems(ctx, itemIDs, asOf)
	if err != nil {
		return nil, nil, err
	}
	nextRows, err := s.bookings.FindNextForItems(ctx, itemIDs, asOf)
	if err != nil {
		return nil, nil, err
	}

	last := make(map[uuid.UUID]*bookingDomain.Booking, len(lastRows))
	for _, bk := range lastRows {
		last[bk.Item().ID] = bk
	}
	next := make(map[uuid.UUID]*bookingDomain.Booking, len(nextRows))
	for _, bk := range nextRows {
		next[bk.Item().ID] = bk
	}
	return last, next, nil
}

func (s *BookingService) publishLifecycle(ctx context.Context, eventType string, bk *bookingDomain.Booking) {
	if s.producer == nil {
		return
	}
	evt := events.BookingLifecycleEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.Item().ID,
		BookerID:   bk.Booker().ID,
		OwnerID:    bk.Item().OwnerID,
		Start:      bk.Start(),
		End:        bk.End(),
		Status:     bk.Status().String(),
		OccurredAt: time.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, events.TopicBookingEvents, eventType, bk.ID().String(), evt); err != nil {
		s.logger.Error("failed to publish booking event",
			zap.String("event_type", eventType),
			zap.String("booking_id", bk.ID().String()),
			zap.Error(err),
		)
	}
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:     bk.ID(),
		Start:  bk.Start(),
		End:    bk.End(),
		Status: bk.Status().String(),
		Item:   ItemShortDTO{ID: bk.Item().ID, Name: bk.Item().Name},
		Booker: UserShortDTO{ID: bk.Booker().ID, Name: bk.Booker().Name},
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}
