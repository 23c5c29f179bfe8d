//go:build unit

package usecase_test

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"time"

	"lendshare/internal/domain/booking"
	"lendshare/internal/domain/comment"
	"lendshare/internal/domain/item"
	"lendshare/internal/domain/user"
	"lendshare/internal/infra"
	"lendshare/internal/usecase"
	"lendshare/internal/usecase/readmodel"

	"github.com/google/uuid"
)

// memStore backs the fake repositories. Booking filtering goes through
// the domain predicate so the fakes stay a faithful reference for the
// SQL implementations.
type memStore struct {
	users    map[uuid.UUID]*readmodel.UserView
	items    map[uuid.UUID]*readmodel.ItemView
	bookings []*readmodel.BookingView
	comments []*readmodel.CommentView
	calls    map[string]int
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[uuid.UUID]*readmodel.UserView),
		items: make(map[uuid.UUID]*readmodel.ItemView),
		calls: make(map[string]int),
	}
}

func (s *memStore) count(name string) {
	s.calls[name]++
}

func (s *memStore) addUser(name, email string) uuid.UUID {
	id := uuid.New()
	s.users[id] = &readmodel.UserView{ID: id, Name: name, Email: email}
	return id
}

func (s *memStore) addItem(ownerID uuid.UUID, name string, available bool) uuid.UUID {
	id := uuid.New()
	s.items[id] = &readmodel.ItemView{
		ID:          id,
		Name:        name,
		Description: name + " description",
		Available:   available,
		OwnerID:     ownerID,
	}
	return id
}

func (s *memStore) addBooking(itemID, bookerID uuid.UUID, start, end time.Time, status booking.Status) uuid.UUID {
	id := uuid.New()
	s.bookings = append(s.bookings, s.bookingView(id, itemID, bookerID, start, end, status))
	return id
}

func (s *memStore) bookingView(id, itemID, bookerID uuid.UUID, start, end time.Time, status booking.Status) *readmodel.BookingView {
	view := &readmodel.BookingView{
		ID:     id,
		Start:  start,
		End:    end,
		Status: status.String(),
		Booker: readmodel.UserRef{ID: bookerID},
		Item:   readmodel.ItemRef{ID: itemID},
	}
	if u, ok := s.users[bookerID]; ok {
		view.Booker.Name = u.Name
	}
	if it, ok := s.items[itemID]; ok {
		view.Item.Name = it.Name
		view.Item.OwnerID = it.OwnerID
	}
	return view
}

func (s *memStore) findBooking(id uuid.UUID) *readmodel.BookingView {
	for _, b := range s.bookings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func itemCopy(v *readmodel.ItemView) *readmodel.ItemView {
	c := *v
	c.NextBooking = nil
	c.LastBooking = nil
	c.Comments = nil
	return &c
}

func sortBookings(views []*readmodel.BookingView) {
	sort.Slice(views, func(i, j int) bool {
		if !views[i].Start.Equal(views[j].Start) {
			return views[i].Start.After(views[j].Start)
		}
		return bytes.Compare(views[i].ID[:], views[j].ID[:]) < 0
	})
}

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) (*readmodel.UserView, error) {
	for _, existing := range r.s.users {
		if existing.Email == u.Email() {
			return nil, infra.WrapRepoErr("email taken", nil, infra.KindDuplicateKey)
		}
	}
	view := &readmodel.UserView{ID: u.ID(), Name: u.Name(), Email: u.Email()}
	r.s.users[u.ID()] = view
	return view, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *user.User) (*readmodel.UserView, error) {
	if _, ok := r.s.users[u.ID()]; !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	for id, existing := range r.s.users {
		if id != u.ID() && existing.Email == u.Email() {
			return nil, infra.WrapRepoErr("email taken", nil, infra.KindDuplicateKey)
		}
	}
	view := &readmodel.UserView{ID: u.ID(), Name: u.Name(), Email: u.Email()}
	r.s.users[u.ID()] = view
	return view, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*readmodel.UserView, error) {
	view, ok := r.s.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return view, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*readmodel.UserView, error) {
	views := make([]*readmodel.UserView, 0, len(r.s.users))
	for _, v := range r.s.users {
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool {
		return bytes.Compare(views[i].ID[:], views[j].ID[:]) < 0
	})
	return views, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.users[id]; !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	delete(r.s.users, id)
	return nil
}

type fakeItemRepo struct{ s *memStore }

func (r *fakeItemRepo) Create(_ context.Context, it *item.Item) (*readmodel.ItemView, error) {
	view := &readmodel.ItemView{
		ID:          it.ID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		OwnerID:     it.OwnerID(),
		RequestID:   it.RequestID(),
	}
	r.s.items[it.ID()] = view
	return itemCopy(view), nil
}

func (r *fakeItemRepo) Update(_ context.Context, it *item.Item) (*readmodel.ItemView, error) {
	if _, ok := r.s.items[it.ID()]; !ok {
		return nil, infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return r.Create(context.Background(), it)
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*readmodel.ItemView, error) {
	view, ok := r.s.items[id]
	if !ok {
		return nil, infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return itemCopy(view), nil
}

func (r *fakeItemRepo) FindAllByOwner(_ context.Context, ownerID uuid.UUID) ([]*readmodel.ItemView, error) {
	views := make([]*readmodel.ItemView, 0)
	for _, v := range r.s.items {
		if v.OwnerID == ownerID {
			views = append(views, itemCopy(v))
		}
	}
	sort.Slice(views, func(i, j int) bool {
		return bytes.Compare(views[i].ID[:], views[j].ID[:]) < 0
	})
	return views, nil
}

func (r *fakeItemRepo) SearchAvailable(_ context.Context, text string) ([]*readmodel.ItemView, error) {
	needle := strings.ToLower(text)
	views := make([]*readmodel.ItemView, 0)
	for _, v := range r.s.items {
		if !v.Available {
			continue
		}
		if strings.Contains(strings.ToLower(v.Name), needle) ||
			strings.Contains(strings.ToLower(v.Description), needle) {
			views = append(views, itemCopy(v))
		}
	}
	sort.Slice(views, func(i, j int) bool {
		return bytes.Compare(views[i].ID[:], views[j].ID[:]) < 0
	})
	return views, nil
}

type fakeBookingRepo struct{ s *memStore }

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) (*readmodel.BookingView, error) {
	view := r.s.bookingView(b.ID(), b.ItemID(), b.BookerID(), b.Period().Start(), b.Period().End(), b.Status())
	r.s.bookings = append(r.s.bookings, view)
	return view, nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*readmodel.BookingView, error) {
	view := r.s.findBooking(id)
	if view == nil {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return view, nil
}

func (r *fakeBookingRepo) ResolveStatus(_ context.Context, id uuid.UUID, to booking.Status) (*readmodel.BookingView, error) {
	view := r.s.findBooking(id)
	if view == nil {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	if view.Status != booking.StatusWaiting.String() {
		return nil, infra.WrapRepoErr("booking already resolved", nil, infra.KindConflict)
	}
	view.Status = to.String()
	return view, nil
}

func (r *fakeBookingRepo) matchFiltered(pick func(*readmodel.BookingView) bool, filter booking.StateFilter, now time.Time, page *usecase.Page) []*readmodel.BookingView {
	views := make([]*readmodel.BookingView, 0)
	for _, b := range r.s.bookings {
		if !pick(b) {
			continue
		}
		entity := booking.ReconstructBooking(
			b.ID, b.Item.ID, b.Booker.ID,
			booking.ReconstructPeriod(b.Start, b.End),
			booking.Status(b.Status),
		)
		if entity.Matches(filter, now) {
			views = append(views, b)
		}
	}
	sortBookings(views)
	return usecase.Slice(views, page)
}

func (r *fakeBookingRepo) FindByBooker(_ context.Context, bookerID uuid.UUID, filter booking.StateFilter, now time.Time, page *usecase.Page) ([]*readmodel.BookingView, error) {
	return r.matchFiltered(func(b *readmodel.BookingView) bool {
		return b.Booker.ID == bookerID
	}, filter, now, page), nil
}

func (r *fakeBookingRepo) FindByOwner(_ context.Context, ownerID uuid.UUID, filter booking.StateFilter, now time.Time, page *usecase.Page) ([]*readmodel.BookingView, error) {
	return r.matchFiltered(func(b *readmodel.BookingView) bool {
		return b.Item.OwnerID == ownerID
	}, filter, now, page), nil
}

func (r *fakeBookingRepo) FindAllByItemOwner(_ context.Context, ownerID uuid.UUID) ([]*readmodel.BookingView, error) {
	r.s.count("booking.FindAllByItemOwner")
	views := make([]*readmodel.BookingView, 0)
	for _, b := range r.s.bookings {
		if b.Item.OwnerID == ownerID {
			views = append(views, b)
		}
	}
	sortBookings(views)
	return views, nil
}

func (r *fakeBookingRepo) FindAllByItem(_ context.Context, itemID uuid.UUID) ([]*readmodel.BookingView, error) {
	r.s.count("booking.FindAllByItem")
	views := make([]*readmodel.BookingView, 0)
	for _, b := range r.s.bookings {
		if b.Item.ID == itemID {
			views = append(views, b)
		}
	}
	sortBookings(views)
	return views, nil
}

func (r *fakeBookingRepo) HasFinishedApproved(_ context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error) {
	for _, b := range r.s.bookings {
		if b.Item.ID == itemID && b.Booker.ID == bookerID &&
			b.Status == booking.StatusApproved.String() && b.End.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

// racedBookingRepo simulates another approval landing between the
// status read and the conditional update: the read still reports
// WAITING, but the update finds the row already resolved.
type racedBookingRepo struct {
	*fakeBookingRepo
}

func (r *racedBookingRepo) ResolveStatus(_ context.Context, _ uuid.UUID, _ booking.Status) (*readmodel.BookingView, error) {
	return nil, infra.WrapRepoErr("booking already resolved", nil, infra.KindConflict)
}

type fakeCommentRepo struct{ s *memStore }

func (r *fakeCommentRepo) Create(_ context.Context, c *comment.Comment) (*readmodel.CommentView, error) {
	view := &readmodel.CommentView{
		ID:      c.ID(),
		Text:    c.Text(),
		ItemID:  c.ItemID(),
		Created: c.Created(),
	}
	if u, ok := r.s.users[c.AuthorID()]; ok {
		view.AuthorName = u.Name
	}
	r.s.comments = append(r.s.comments, view)
	return view, nil
}

func sortComments(views []*readmodel.CommentView) {
	sort.Slice(views, func(i, j int) bool {
		return views[i].Created.After(views[j].Created)
	})
}

func (r *fakeCommentRepo) FindAllByItem(_ context.Context, itemID uuid.UUID) ([]*readmodel.CommentView, error) {
	r.s.count("comment.FindAllByItem")
	views := make([]*readmodel.CommentView, 0)
	for _, c := range r.s.comments {
		if c.ItemID == itemID {
			views = append(views, c)
		}
	}
	sortComments(views)
	return views, nil
}

func (r *fakeCommentRepo) FindAllByItemOwner(_ context.Context, ownerID uuid.UUID) ([]*readmodel.CommentView, error) {
	r.s.count("comment.FindAllByItemOwner")
	views := make([]*readmodel.CommentView, 0)
	for _, c := range r.s.comments {
		if it, ok := r.s.items[c.ItemID]; ok && it.OwnerID == ownerID {
			views = append(views, c)
		}
	}
	sortComments(views)
	return views, nil
}
