package events

import (
	"time"

	"github.com/google/uuid"
)

// Topic and event type constants for the booking lifecycle stream.
const (
	TopicBookingEvents = "booking.events"

	BookingCreated  = "booking.created"
	BookingApproved = "booking.approved"
	BookingRejected = "booking.rejected"
	BookingCanceled = "booking.canceled"
)

// BookingLifecycleEvent is published whenever a booking is created or its
// status changes. It is an integration event for downstream consumers, not
// a client-facing notification.
type BookingLifecycleEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	ItemID     uuid.UUID `json:"item_id"`
	BookerID   uuid.UUID `json:"booker_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
