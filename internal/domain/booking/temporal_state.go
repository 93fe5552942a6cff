package booking

import (
	"strings"
	"time"

	"github.com/shareit-go/shareit-server/internal/domain"
)

// TemporalState is a query-time classification of bookings relative to a
// reference instant and/or their status. It is never persisted.
type TemporalState string

const (
	StateAll      TemporalState = "ALL"
	StateCurrent  TemporalState = "CURRENT"
	StatePast     TemporalState = "PAST"
	StateFuture   TemporalState = "FUTURE"
	StateWaiting  TemporalState = "WAITING"
	StateRejected TemporalState = "REJECTED"
)

// matchers maps each state to its classification predicate. Keeping the
// dispatch in a map (rather than a conditional chain) makes the mapping
// exhaustive and testable per case.
var matchers = map[TemporalState]func(b *Booking, now time.Time) bool{
	StateAll:     func(*Booking, time.Time) bool { return true },
	StatePast:    func(b *Booking, now time.Time) bool { return b.End().Before(now) },
	StateFuture:  func(b *Booking, now time.Time) bool { return b.Start().After(now) },
	StateCurrent: func(b *Booking, now time.Time) bool { return !b.Start().After(now) && b.End().After(now) },
	StateWaiting: func(b *Booking, _ time.Time) bool { return b.Status() == StatusWaiting },
	StateRejected: func(b *Booking, _ time.Time) bool {
		return b.Status() == StatusRejected
	},
}

// Matches reports whether the booking falls into this state at the given
// instant. CURRENT uses the half-open reading start <= now < end.
func (s TemporalState) Matches(b *Booking, now time.Time) bool {
	match, ok := matchers[s]
	if !ok {
		return false
	}
	return match(b, now)
}

// IsValid returns true if the state is one of the recognized filters.
func (s TemporalState) IsValid() bool {
	_, ok := matchers[s]
	return ok
}

// ParseTemporalState converts a query string to a TemporalState. An empty
// string defaults to ALL; anything unrecognized is a validation error.
func ParseTemporalState(s string) (TemporalState, error) {
	if s == "" {
		return StateAll, nil
	}
	state := TemporalState(strings.ToUpper(s))
	if !state.IsValid() {
		return "", domain.NewValidationError("Unknown state: " + s)
	}
	return state, nil
}
