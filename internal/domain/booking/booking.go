package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shareit-go/shareit-server/internal/domain"
)

// ItemRef is the denormalized item snapshot carried by a booking. It is
// read through from the item record, never stored separately.
type ItemRef struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	OwnerID uuid.UUID `json:"ownerId"`
}

// BookerRef is the denormalized booker snapshot carried by a booking.
type BookerRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Booking is the aggregate root for a reservation of one item over the
// half-open interval [start, end).
type Booking struct {
	id        uuid.UUID
	start     time.Time
	end       time.Time
	item      ItemRef
	booker    BookerRef
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a booking in the WAITING state. The window must be a
// valid half-open interval: end strictly after start.
func NewBooking(start, end time.Time, item ItemRef, booker BookerRef) (*Booking, error) {
	if !end.After(start) {
		return nil, domain.NewInvalidRangeError("end date must be after start date")
	}
	if item.ID == uuid.Nil {
		return nil, domain.NewValidationError("item ID is required")
	}
	if booker.ID == uuid.Nil {
		return nil, domain.NewValidationError("booker ID is required")
	}

	now := time.Now().UTC()
	return &Booking{
		id:        uuid.New(),
		start:     start,
		end:       end,
		item:      item,
		booker:    booker,
		status:    StatusWaiting,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	start, end time.Time,
	item ItemRef,
	booker BookerRef,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		start:     start,
		end:       end,
		item:      item,
		booker:    booker,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// Start returns the inclusive start of the booked window.
func (b *Booking) Start() time.Time { return b.start }

// End returns the exclusive end of the booked window.
func (b *Booking) End() time.Time { return b.end }

// Item returns the booked item snapshot.
func (b *Booking) Item() ItemRef { return b.item }

// Booker returns the booker snapshot.
func (b *Booking) Booker() BookerRef { return b.booker }

// Status returns the current lifecycle status.
func (b *Booking) Status() Status { return b.status }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// Overlaps reports whether the booked window intersects [start, end).
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.start.Before(end) && b.end.After(start)
}

// Approve transitions the booking from WAITING to APPROVED. Re-approving an
// already approved booking is a conflict, not a no-op.
func (b *Booking) Approve() error {
	if b.status == StatusApproved {
		return domain.NewConflictError("booking is already approved")
	}
	return b.transition(StatusApproved)
}

// Reject transitions the booking from WAITING to REJECTED.
func (b *Booking) Reject() error {
	return b.transition(StatusRejected)
}

// Cancel transitions the booking from WAITING to CANCELED.
func (b *Booking) Cancel() error {
	return b.transition(StatusCanceled)
}

func (b *Booking) transition(target Status) error {
	if !b.status.CanTransitionTo(target) {
		return domain.NewConflictError("booking status " + b.status.String() + " cannot change to " + target.String())
	}
	b.status = target
	b.updatedAt = time.Now().UTC()
	return nil
}
