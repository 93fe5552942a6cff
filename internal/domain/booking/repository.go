package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for booking aggregates.
// Bookings are created by the reservation flow, mutated only by the approval
// flow, and never deleted.
type Repository interface {
	// Save persists a new booking.
	Save(ctx context.Context, b *Booking) error

	// UpdateStatus persists a status change of an existing booking.
	UpdateStatus(ctx context.Context, b *Booking) error

	// FindByID retrieves a booking with its item/booker snapshots.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindOverlapping returns one booking on the item that blocks the
	// half-open window [start, end), or nil if the window is free.
	// Rejected and canceled bookings do not block.
	FindOverlapping(ctx context.Context, itemID uuid.UUID, start, end time.Time) (*Booking, error)

	// ListByBooker retrieves the booker's bookings filtered by temporal
	// state relative to now, ordered by start descending. from/size is a
	// page-offset window (page index = from / size).
	ListByBooker(ctx context.Context, bookerID uuid.UUID, state TemporalState, now time.Time, from, size int) ([]*Booking, error)

	// ListByOwner retrieves bookings of all items owned by ownerID,
	// filtered and ordered the same way as ListByBooker.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, state TemporalState, now time.Time, from, size int) ([]*Booking, error)

	// FindLastForItems returns, per item, the approved booking with the
	// greatest start before asOf. At most one booking per item.
	FindLastForItems(ctx context.Context, itemIDs []uuid.UUID, asOf time.Time) ([]*Booking, error)

	// FindNextForItems returns, per item, the approved booking with the
	// smallest start at or after asOf. At most one booking per item.
	FindNextForItems(ctx context.Context, itemIDs []uuid.UUID, asOf time.Time) ([]*Booking, error)

	// FindFinished returns one approved booking of the item by the booker
	// that ended before the given instant, or nil if none exists.
	FindFinished(ctx context.Context, itemID, bookerID uuid.UUID, before time.Time) (*Booking, error)
}
