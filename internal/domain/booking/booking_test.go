package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit-go/shareit-server/internal/domain"
)

func testRefs() (ItemRef, BookerRef) {
	return ItemRef{ID: uuid.New(), Name: "drill", OwnerID: uuid.New()},
		BookerRef{ID: uuid.New(), Name: "alice"}
}

func TestNewBooking(t *testing.T) {
	item, booker := testRefs()
	start := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	b, err := NewBooking(start, end, item, booker)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, b.ID())
	assert.Equal(t, StatusWaiting, b.Status())
	assert.Equal(t, start, b.Start())
	assert.Equal(t, end, b.End())
	assert.Equal(t, item, b.Item())
	assert.Equal(t, booker, b.Booker())
}

func TestNewBookingInvalidRange(t *testing.T) {
	item, booker := testRefs()
	start := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
	}{
		{"end before start", start.Add(-time.Hour)},
		{"end equals start", start},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBooking(start, tt.end, item, booker)
			require.Error(t, err)
			assert.True(t, domain.IsInvalidRange(err))
		})
	}
}

func TestNewBookingMissingRefs(t *testing.T) {
	item, booker := testRefs()
	start := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	_, err := NewBooking(start, end, ItemRef{}, booker)
	assert.Error(t, err)

	_, err = NewBooking(start, end, item, BookerRef{})
	assert.Error(t, err)
}

func TestBookingOverlaps(t *testing.T) {
	item, booker := testRefs()
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	b, err := NewBooking(start, end, item, booker)
	require.NoError(t, err)

	tests := []struct {
		name     string
		qStart   time.Time
		qEnd     time.Time
		overlaps bool
	}{
		{"identical window", start, end, true},
		{"contained window", start.Add(time.Hour), end.Add(-time.Hour), true},
		{"overlaps tail", end.Add(-time.Hour), end.Add(time.Hour), true},
		{"overlaps head", start.Add(-time.Hour), start.Add(time.Hour), true},
		{"surrounds window", start.Add(-time.Hour), end.Add(time.Hour), true},
		{"touches at end", end, end.Add(time.Hour), false},
		{"touches at start", start.Add(-time.Hour), start, false},
		{"fully before", start.Add(-3 * time.Hour), start.Add(-time.Hour), false},
		{"fully after", end.Add(time.Hour), end.Add(3 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, b.Overlaps(tt.qStart, tt.qEnd))
		})
	}
}

func TestBookingApprove(t *testing.T) {
	item, booker := testRefs()
	b, err := NewBooking(time.Now().UTC(), time.Now().UTC().Add(time.Hour), item, booker)
	require.NoError(t, err)

	require.NoError(t, b.Approve())
	assert.Equal(t, StatusApproved, b.Status())
}

func TestBookingReApproveConflicts(t *testing.T) {
	item, booker := testRefs()
	b, err := NewBooking(time.Now().UTC(), time.Now().UTC().Add(time.Hour), item, booker)
	require.NoError(t, err)
	require.NoError(t, b.Approve())

	err = b.Approve()
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.Equal(t, StatusApproved, b.Status())
}

func TestBookingRejectAfterApproveConflicts(t *testing.T) {
	item, booker := testRefs()
	b, err := NewBooking(time.Now().UTC(), time.Now().UTC().Add(time.Hour), item, booker)
	require.NoError(t, err)
	require.NoError(t, b.Approve())

	err = b.Reject()
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.Equal(t, StatusApproved, b.Status())
}

func TestBookingCancel(t *testing.T) {
	item, booker := testRefs()
	b, err := NewBooking(time.Now().UTC(), time.Now().UTC().Add(time.Hour), item, booker)
	require.NoError(t, err)

	require.NoError(t, b.Cancel())
	assert.Equal(t, StatusCanceled, b.Status())

	err = b.Approve()
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
}
