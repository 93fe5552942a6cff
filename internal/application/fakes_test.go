package application

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shareit-go/shareit-server/internal/domain"
	bookingDomain "github.com/shareit-go/shareit-server/internal/domain/booking"
	itemDomain "github.com/shareit-go/shareit-server/internal/domain/item"
	userDomain "github.com/shareit-go/shareit-server/internal/domain/user"
)

// In-memory repository fakes mirroring the store contracts closely enough to
// exercise the services without a database.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*userDomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*userDomain.User)}
}

func (r *fakeUserRepo) Save(_ context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email() == u.Email() {
			return domain.NewConflictError("email already in use")
		}
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID()]; !ok {
		return domain.NewNotFoundError("user", u.ID().String())
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", id.String())
	}
	return u, nil
}

func (r *fakeUserRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*userDomain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.NewNotFoundError("user", id.String())
	}
	delete(r.users, id)
	return nil
}

type fakeItemRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*itemDomain.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]*itemDomain.Item)}
}

func (r *fakeItemRepo) Save(_ context.Context, i *itemDomain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[i.ID()] = i
	return nil
}

func (r *fakeItemRepo) Update(_ context.Context, i *itemDomain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[i.ID()]; !ok {
		return domain.NewNotFoundError("item", i.ID().String())
	}
	r.items[i.ID()] = i
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("item", id.String())
	}
	return i, nil
}

func (r *fakeItemRepo) FindByOwner(_ context.Context, ownerID uuid.UUID, from, size int) ([]*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*itemDomain.Item
	for _, i := range r.items {
		if i.OwnerID() == ownerID {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt().Before(out[b].CreatedAt()) })
	return paginate(out, from, size), nil
}

func (r *fakeItemRepo) Search(_ context.Context, text string, from, size int) ([]*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*itemDomain.Item
	for _, i := range r.items {
		if i.Available() && (containsFold(i.Name(), text) || containsFold(i.Description(), text)) {
			out = append(out, i)
		}
	}
	return paginate(out, from, size), nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*bookingDomain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{}
}

func (r *fakeBookingRepo) Save(_ context.Context, b *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, b *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.bookings {
		if existing.ID() == b.ID() {
			r.bookings[i] = b
			return nil
		}
	}
	return domain.NewNotFoundError("booking", b.ID().String())
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID() == id {
			return b, nil
		}
	}
	return nil, domain.NewNotFoundError("booking", id.String())
}

func (r *fakeBookingRepo) FindOverlapping(_ context.Context, itemID uuid.UUID, start, end time.Time) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.Item().ID == itemID && b.Status().Blocks() && b.Overlaps(start, end) {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) ListByBooker(_ context.Context, bookerID uuid.UUID, state bookingDomain.TemporalState, now time.Time, from, size int) ([]*bookingDomain.Booking, error) {
	return r.list(func(b *bookingDomain.Booking) bool { return b.Booker().ID == bookerID }, state, now, from, size)
}

func (r *fakeBookingRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, state bookingDomain.TemporalState, now time.Time, from, size int) ([]*bookingDomain.Booking, error) {
	return r.list(func(b *bookingDomain.Booking) bool { return b.Item().OwnerID == ownerID }, state, now, from, size)
}

func (r *fakeBookingRepo) list(match func(*bookingDomain.Booking) bool, state bookingDomain.TemporalState, now time.Time, from, size int) ([]*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, b := range r.bookings {
		if match(b) && state.Matches(b, now) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Start().After(out[b].Start()) })
	return paginate(out, from, size), nil
}

func (r *fakeBookingRepo) FindLastForItems(_ context.Context, itemIDs []uuid.UUID, asOf time.Time) ([]*bookingDomain.Booking, error) {
	return r.nearest(itemIDs, func(b *bookingDomain.Booking) bool { return b.Start().Before(asOf) }, func(a, b *bookingDomain.Booking) bool {
		return a.Start().After(b.Start())
	}), nil
}

func (r *fakeBookingRepo) FindNextForItems(_ context.Context, itemIDs []uuid.UUID, asOf time.Time) ([]*bookingDomain.Booking, error) {
	return r.nearest(itemIDs, func(b *bookingDomain.Booking) bool { return !b.Start().Before(asOf) }, func(a, b *bookingDomain.Booking) bool {
		return a.Start().Before(b.Start())
	}), nil
}

func (r *fakeBookingRepo) nearest(itemIDs []uuid.UUID, inWindow func(*bookingDomain.Booking) bool, closer func(a, b *bookingDomain.Booking) bool) []*bookingDomain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	best := make(map[uuid.UUID]*bookingDomain.Booking)
	for _, b := range r.bookings {
		if !wanted[b.Item().ID] || b.Status() != bookingDomain.StatusApproved || !inWindow(b) {
			continue
		}
		if cur, ok := best[b.Item().ID]; !ok || closer(b, cur) {
			best[b.Item().ID] = b
		}
	}
	out := make([]*bookingDomain.Booking, 0, len(best))
	for _, b := range best {
		out = append(out, b)
	}
	return out
}

func (r *fakeBookingRepo) FindFinished(_ context.Context, itemID, bookerID uuid.UUID, before time.Time) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.Item().ID == itemID && b.Booker().ID == bookerID &&
			b.Status() == bookingDomain.StatusApproved && b.End().Before(before) {
			return b, nil
		}
	}
	return nil, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []*itemDomain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (r *fakeCommentRepo) Save(_ context.Context, c *itemDomain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments = append(r.comments, c)
	return nil
}

func (r *fakeCommentRepo) FindByItems(_ context.Context, itemIDs []uuid.UUID) ([]*itemDomain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	var out []*itemDomain.Comment
	for _, c := range r.comments {
		if wanted[c.ItemID()] {
			out = append(out, c)
		}
	}
	return out, nil
}

type publishedEvent struct {
	topic     string
	eventType string
	key       string
	data      interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) Publish(_ context.Context, topic, eventType, key string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{topic: topic, eventType: eventType, key: key, data: data})
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.eventType
	}
	return out
}

func paginate[T any](in []T, from, size int) []T {
	if size <= 0 {
		return in
	}
	offset := (from / size) * size
	if offset >= len(in) {
		return nil
	}
	end := offset + size
	if end > len(in) {
		end = len(in)
	}
	return in[offset:end]
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
