package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shareit-go/shareit-server/internal/domain"
	bookingDomain "github.com/shareit-go/shareit-server/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table. Item and booker
// are referenced by id only; their snapshots are read through via joins.
type BookingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	StartDate time.Time `gorm:"not null;index:idx_bookings_item_window,priority:2"`
	EndDate   time.Time `gorm:"not null;index:idx_bookings_item_window,priority:3"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index:idx_bookings_item_window,priority:1"`
	BookerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"not null;size:20;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// bookingRow is a booking joined with its item and booker snapshots.
type bookingRow struct {
	BookingModel
	ItemName    string
	ItemOwnerID uuid.UUID
	BookerName  string
}

const bookingColumns = "bookings.id, bookings.start_date, bookings.end_date, " +
	"bookings.item_id, bookings.booker_id, bookings.status, " +
	"bookings.created_at, bookings.updated_at, " +
	"items.name AS item_name, items.owner_id AS item_owner_id, " +
	"users.name AS booker_name"

// temporalScopes maps each temporal state to the query scope realizing it.
// The map keeps the dispatch exhaustive: every recognized state has exactly
// one entry. CURRENT reads as start <= now < end.
var temporalScopes = map[bookingDomain.TemporalState]func(db *gorm.DB, now time.Time) *gorm.DB{
	bookingDomain.StateAll: func(db *gorm.DB, _ time.Time) *gorm.DB {
		return db
	},
	bookingDomain.StatePast: func(db *gorm.DB, now time.Time) *gorm.DB {
		return db.Where("bookings.end_date < ?", now)
	},
	bookingDomain.StateFuture: func(db *gorm.DB, now time.Time) *gorm.DB {
		return db.Where("bookings.start_date > ?", now)
	},
	bookingDomain.StateCurrent: func(db *gorm.DB, now time.Time) *gorm.DB {
		return db.Where("bookings.start_date <= ? AND bookings.end_date > ?", now, now)
	},
	bookingDomain.StateWaiting: func(db *gorm.DB, _ time.Time) *gorm.DB {
		return db.Where("bookings.status = ?", bookingDomain.StatusWaiting)
	},
	bookingDomain.StateRejected: func(db *gorm.DB, _ time.Time) *gorm.DB {
		return db.Where("bookings.status = ?", bookingDomain.StatusRejected)
	},
}

// GormBookingRepository is the GORM-based implementation of the booking
// repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.NewStorageError("save booking", err)
	}
	return nil
}

// UpdateStatus persists a status change of an existing booking.
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, bk *bookingDomain.Booking) error {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ?", bk.ID()).
		Updates(map[string]interface{}{
			"status":     bk.Status().String(),
			"updated_at": bk.UpdatedAt(),
		})
	if result.Error != nil {
		return domain.NewStorageError("update booking status", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("booking", bk.ID().String())
	}
	return nil
}

// FindByID retrieves a booking with its item/booker snapshots.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var row bookingRow
	err := r.joined(ctx).
		Where("bookings.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id.String())
		}
		return nil, domain.NewStorageError("find booking by id", err)
	}
	return toDomainBooking(&row)
}

// FindOverlapping returns one waiting or approved booking on the item whose
// window intersects [start, end), or nil if the window is free.
func (r *GormBookingRepository) FindOverlapping(ctx context.Context, itemID uuid.UUID, start, end time.Time) (*bookingDomain.Booking, error) {
	var rows []bookingRow
	err := r.joined(ctx).
		Where("bookings.item_id = ?", itemID).
		Where("bookings.status IN ?", []string{
			bookingDomain.StatusWaiting.String(),
			bookingDomain.StatusApproved.String(),
		}).
		Where("bookings.start_date < ? AND bookings.end_date > ?", end, start).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, domain.NewStorageError("find overlapping booking", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return toDomainBooking(&rows[0])
}

// ListByBooker retrieves the booker's bookings filtered by temporal state,
// ordered by start descending.
func (r *GormBookingRepository) ListByBooker(ctx context.Context, bookerID uuid.UUID, state bookingDomain.TemporalState, now time.Time, from, size int) ([]*bookingDomain.Booking, error) {
	query := r.joined(ctx).Where("bookings.booker_id = ?", bookerID)
	return r.list(query, state, now, from, size)
}

// ListByOwner retrieves bookings on all items owned by ownerID, filtered by
// temporal state, ordered by start descending.
func (r *GormBookingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, state bookingDomain.TemporalState, now time.Time, from, size int) ([]*bookingDomain.Booking, error) {
	query := r.joined(ctx).Where("items.owner_id = ?", ownerID)
	return r.list(query, state, now, from, size)
}

func (r *GormBookingRepository) list(query *gorm.DB, state bookingDomain.TemporalState, now time.Time, from, size int) ([]*bookingDomain.Booking, error) {
	scope, ok := temporalScopes[state]
	if !ok {
		return nil, domain.NewValidationError("Unknown state: " + string(state))
	}

	var rows []bookingRow
	err := scope(query, now).
		Order("bookings.start_date DESC").
		Offset(pageOffset(from, size)).
		Limit(size).
		Find(&rows).Error
	if err != nil {
		return nil, domain.NewStorageError("list bookings", err)
	}
	return toDomainBookings(rows)
}

// FindLastForItems returns, per item, the approved booking with the greatest
// start before asOf. DISTINCT ON keeps exactly one row per item: two items
// may each need a different winning row in the same result set.
func (r *GormBookingRepository) FindLastForItems(ctx context.Context, itemIDs []uuid.UUID, asOf time.Time) ([]*bookingDomain.Booking, error) {
	return r.findNearest(ctx, itemIDs, asOf,
		"bookings.start_date < ?", "bookings.start_date DESC")
}

// FindNextForItems returns, per item, the approved booking with the smallest
// start at or after asOf.
func (r *GormBookingRepository) FindNextForItems(ctx context.Context, itemIDs []uuid.UUID, asOf time.Time) ([]*bookingDomain.Booking, error) {
	return r.findNearest(ctx, itemIDs, asOf,
		"bookings.start_date >= ?", "bookings.start_date ASC")
}

func (r *GormBookingRepository) findNearest(ctx context.Context, itemIDs []uuid.UUID, asOf time.Time, cond, order string) ([]*bookingDomain.Booking, error) {
	var rows []bookingRow
	err := r.joined(ctx).
		Select("DISTINCT ON (bookings.item_id) " + bookingColumns).
		Where("bookings.item_id IN ?", itemIDs).
		Where("bookings.status = ?", bookingDomain.StatusApproved).
		Where(cond, asOf).
		Order("bookings.item_id, " + order).
		Find(&rows).Error
	if err != nil {
		return nil, domain.NewStorageError("find nearest bookings", err)
	}
	return toDomainBookings(rows)
}

// FindFinished returns one approved booking of the item by the booker that
// ended before the given instant, or nil if none exists.
func (r *GormBookingRepository) FindFinished(ctx context.Context, itemID, bookerID uuid.UUID, before time.Time) (*bookingDomain.Booking, error) {
	var rows []bookingRow
	err := r.joined(ctx).
		Where("bookings.item_id = ? AND bookings.booker_id = ?", itemID, bookerID).
		Where("bookings.status = ?", bookingDomain.StatusApproved).
		Where("bookings.end_date < ?", before).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, domain.NewStorageError("find finished booking", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return toDomainBooking(&rows[0])
}

func (r *GormBookingRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("bookings").
		Select(bookingColumns).
		Joins("JOIN items ON items.id = bookings.item_id").
		Joins("JOIN users ON users.id = bookings.booker_id")
}

// --- Conversion helpers ---

func toBookingModel(bk *bookingDomain.Booking) BookingModel {
	return BookingModel{
		ID:        bk.ID(),
		StartDate: bk.Start(),
		EndDate:   bk.End(),
		ItemID:    bk.Item().ID,
		BookerID:  bk.Booker().ID,
		Status:    bk.Status().String(),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toDomainBooking(row *bookingRow) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseStatus(row.Status)
	if err != nil {
		return nil, domain.NewStorageError("decode booking", err)
	}
	return bookingDomain.Reconstruct(
		row.ID,
		row.StartDate,
		row.EndDate,
		bookingDomain.ItemRef{ID: row.ItemID, Name: row.ItemName, OwnerID: row.ItemOwnerID},
		bookingDomain.BookerRef{ID: row.BookerID, Name: row.BookerName},
		status,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}

func toDomainBookings(rows []bookingRow) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(rows))
	for i := range rows {
		bk, err := toDomainBooking(&rows[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}

// pageOffset converts a from/size window to a page-aligned offset
// (page index = from / size).
func pageOffset(from, size int) int {
	if size <= 0 {
		return 0
	}
	return (from / size) * size
}
