package usecase

import (
	"context"
	"strings"
	"time"

	"lendshare/internal/domain/item"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/clock"
	"lendshare/internal/pkg/errs"
	"lendshare/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type CreateItemParams struct {
	Name        string
	Description string
	Available   bool
	RequestID   *uuid.UUID
}

type UpdateItemParams struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *uuid.UUID
}

// ItemUseCase covers item CRUD and the booking-enriched views. The
// next/last derivation lives here because it is pure selection over
// already-fetched bookings; the repositories only supply the feeds.
type ItemUseCase interface {
	Create(ctx context.Context, params CreateItemParams, actorID uuid.UUID) (*readmodel.ItemView, error)
	Update(ctx context.Context, itemID uuid.UUID, params UpdateItemParams, actorID uuid.UUID) (*readmodel.ItemView, error)
	// Get returns the extended item view. next/last are included only
	// when the viewer owns the item; comments are always included.
	Get(ctx context.Context, itemID, viewerID uuid.UUID) (*readmodel.ItemView, error)
	// ListByOwner returns extended views for every item the owner has,
	// computed from one booking query and one comment query.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page *Page) ([]*readmodel.ItemView, error)
	Search(ctx context.Context, text string) ([]*readmodel.ItemView, error)
}

type itemUseCaseImpl struct {
	itemRepo    ItemRepository
	userRepo    UserRepository
	bookingRepo BookingRepository
	commentRepo CommentRepository
	clock       clock.Clock
}

func NewItemUseCase(
	itemRepo ItemRepository,
	userRepo UserRepository,
	bookingRepo BookingRepository,
	commentRepo CommentRepository,
	clock clock.Clock,
) ItemUseCase {
	return &itemUseCaseImpl{
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		commentRepo: commentRepo,
		clock:       clock,
	}
}

func (u *itemUseCaseImpl) Create(ctx context.Context, params CreateItemParams, actorID uuid.UUID) (*readmodel.ItemView, error) {
	if _, err := u.userRepo.FindByID(ctx, actorID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to find owner")
	}

	entity, err := item.NewItem(actorID, params.Name, params.Description, params.Available, params.RequestID)
	if err != nil {
		return nil, err
	}

	view, err := u.itemRepo.Create(ctx, entity)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *itemUseCaseImpl) Update(ctx context.Context, itemID uuid.UUID, params UpdateItemParams, actorID uuid.UUID) (*readmodel.ItemView, error) {
	view, err := u.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Wrap(err, "failed to find item")
	}
	if view.OwnerID != actorID {
		return nil, ErrNotItemOwner
	}
	if params.RequestID != nil && (view.RequestID == nil || *params.RequestID != *view.RequestID) {
		return nil, ErrRequestImmutable
	}

	entity := item.ReconstructItem(view.ID, view.OwnerID, view.Name, view.Description, view.Available, view.RequestID)
	if err := entity.Patch(params.Name, params.Description, params.Available); err != nil {
		return nil, err
	}

	updated, err := u.itemRepo.Update(ctx, entity)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return updated, nil
}

func (u *itemUseCaseImpl) Get(ctx context.Context, itemID, viewerID uuid.UUID) (*readmodel.ItemView, error) {
	view, err := u.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Wrap(err, "failed to find item")
	}

	comments, err := u.commentRepo.FindAllByItem(ctx, itemID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load comments")
	}
	view.Comments = comments

	// Booking details are owner-only; other viewers get comments alone.
	if view.OwnerID != viewerID {
		return view, nil
	}

	bookings, err := u.bookingRepo.FindAllByItem(ctx, itemID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load item bookings")
	}
	view.NextBooking, view.LastBooking = deriveNextLast(bookings, u.clock.Now())
	return view, nil
}

func (u *itemUseCaseImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID, page *Page) ([]*readmodel.ItemView, error) {
	if _, err := u.userRepo.FindByID(ctx, ownerID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to find owner")
	}

	items, err := u.itemRepo.FindAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list items")
	}
	items = Slice(items, page)

	// One pass over the combined booking set and one over the comments;
	// cost stays linear in items + bookings instead of one query per item.
	bookings, err := u.bookingRepo.FindAllByItemOwner(ctx, ownerID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load owner bookings")
	}
	comments, err := u.commentRepo.FindAllByItemOwner(ctx, ownerID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load owner comments")
	}

	bookingsByItem := make(map[uuid.UUID][]*readmodel.BookingView, len(items))
	for _, b := range bookings {
		bookingsByItem[b.Item.ID] = append(bookingsByItem[b.Item.ID], b)
	}
	commentsByItem := make(map[uuid.UUID][]*readmodel.CommentView, len(items))
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], c)
	}

	now := u.clock.Now()
	for _, it := range items {
		it.NextBooking, it.LastBooking = deriveNextLast(bookingsByItem[it.ID], now)
		it.Comments = commentsByItem[it.ID]
	}
	return items, nil
}

func (u *itemUseCaseImpl) Search(ctx context.Context, text string) ([]*readmodel.ItemView, error) {
	if strings.TrimSpace(text) == "" {
		return []*readmodel.ItemView{}, nil
	}
	views, err := u.itemRepo.SearchAvailable(ctx, text)
	if err != nil {
		return nil, errs.Wrap(err, "failed to search items")
	}
	return views, nil
}

// deriveNextLast selects the nearest upcoming approved booking (minimum
// start after now) and the most recently concluded or ongoing one
// (maximum end among approved bookings started before now). The two are
// independent; neither implies anything about the other. Callers pass
// the bookings of exactly one item.
func deriveNextLast(bookings []*readmodel.BookingView, now time.Time) (next, last *readmodel.BookingRef) {
	for _, b := range bookings {
		if b.Status != "APPROVED" {
			continue
		}
		switch {
		case b.Start.After(now):
			if next == nil || b.Start.Before(next.Start) {
				next = toBookingRef(b)
			}
		case b.Start.Before(now):
			if last == nil || b.End.After(last.End) {
				last = toBookingRef(b)
			}
		}
	}
	return next, last
}

func toBookingRef(b *readmodel.BookingView) *readmodel.BookingRef {
	return &readmodel.BookingRef{
		ID:       b.ID,
		BookerID: b.Booker.ID,
		Start:    b.Start,
		End:      b.End,
	}
}
