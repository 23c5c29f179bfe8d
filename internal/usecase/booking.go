package usecase

import (
	"context"
	"time"

	"lendshare/internal/domain/booking"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/clock"
	"lendshare/internal/pkg/errs"
	"lendshare/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type AddBookingParams struct {
	ItemID uuid.UUID
	Start  time.Time
	End    time.Time
}

// BookingUseCase is the façade over the booking lifecycle: creation,
// the one-shot approval transition, and the temporal listing axes.
type BookingUseCase interface {
	Add(ctx context.Context, params AddBookingParams, actorID uuid.UUID) (*readmodel.BookingView, error)
	Approve(ctx context.Context, bookingID uuid.UUID, approved bool, actorID uuid.UUID) (*readmodel.BookingView, error)
	Get(ctx context.Context, bookingID, actorID uuid.UUID) (*readmodel.BookingView, error)
	ListByBooker(ctx context.Context, actorID uuid.UUID, stateToken string, page *Page) ([]*readmodel.BookingView, error)
	ListByOwner(ctx context.Context, actorID uuid.UUID, stateToken string, page *Page) ([]*readmodel.BookingView, error)
}

type bookingUseCaseImpl struct {
	bookingRepo BookingRepository
	userRepo    UserRepository
	itemRepo    ItemRepository
	clock       clock.Clock
}

func NewBookingUseCase(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	itemRepo ItemRepository,
	clock clock.Clock,
) BookingUseCase {
	return &bookingUseCaseImpl{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		itemRepo:    itemRepo,
		clock:       clock,
	}
}

func (u *bookingUseCaseImpl) Add(ctx context.Context, params AddBookingParams, actorID uuid.UUID) (*readmodel.BookingView, error) {
	if _, err := u.userRepo.FindByID(ctx, actorID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to find booker")
	}

	itemView, err := u.itemRepo.FindByID(ctx, params.ItemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Wrap(err, "failed to find item")
	}
	if !itemView.Available {
		return nil, ErrItemUnavailable
	}
	if itemView.OwnerID == actorID {
		return nil, ErrOwnItemBooking
	}

	period, err := booking.NewPeriod(params.Start, params.End, u.clock.Now())
	if err != nil {
		return nil, err
	}

	entity := booking.NewBooking(itemView.ID, actorID, period)
	view, err := u.bookingRepo.Create(ctx, entity)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *bookingUseCaseImpl) Approve(ctx context.Context, bookingID uuid.UUID, approved bool, actorID uuid.UUID) (*readmodel.BookingView, error) {
	view, err := u.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to find booking")
	}
	// A non-owner is told "not found", not "forbidden": approval rights
	// must not leak booking existence.
	if view.Item.OwnerID != actorID {
		return nil, errs.Wrapf(ErrBookingNotFound, "user %s does not own item %s", actorID, view.Item.ID)
	}

	entity := viewToEntity(view)
	if err := entity.Resolve(approved); err != nil {
		return nil, err
	}

	updated, err := u.bookingRepo.ResolveStatus(ctx, bookingID, entity.Status())
	if err != nil {
		// Lost the race against a concurrent approval: the conditional
		// update observed a non-WAITING status.
		if infra.IsKind(err, infra.KindConflict) {
			return nil, booking.ErrNotWaiting
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return updated, nil
}

func (u *bookingUseCaseImpl) Get(ctx context.Context, bookingID, actorID uuid.UUID) (*readmodel.BookingView, error) {
	view, err := u.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to find booking")
	}
	// Visible to exactly the booker and the item owner; everyone else
	// gets "not found" to avoid existence leakage.
	if view.Booker.ID != actorID && view.Item.OwnerID != actorID {
		return nil, ErrBookingNotFound
	}
	return view, nil
}

func (u *bookingUseCaseImpl) ListByBooker(ctx context.Context, actorID uuid.UUID, stateToken string, page *Page) ([]*readmodel.BookingView, error) {
	filter, err := booking.ParseStateFilter(stateToken)
	if err != nil {
		return nil, err
	}
	if _, err := u.userRepo.FindByID(ctx, actorID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to find booker")
	}

	views, err := u.bookingRepo.FindByBooker(ctx, actorID, filter, u.clock.Now(), page)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list bookings by booker")
	}
	return views, nil
}

func (u *bookingUseCaseImpl) ListByOwner(ctx context.Context, actorID uuid.UUID, stateToken string, page *Page) ([]*readmodel.BookingView, error) {
	filter, err := booking.ParseStateFilter(stateToken)
	if err != nil {
		return nil, err
	}
	if _, err := u.userRepo.FindByID(ctx, actorID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to find owner")
	}

	views, err := u.bookingRepo.FindByOwner(ctx, actorID, filter, u.clock.Now(), page)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list bookings by item owner")
	}
	return views, nil
}

func viewToEntity(view *readmodel.BookingView) *booking.Booking {
	return booking.ReconstructBooking(
		view.ID,
		view.Item.ID,
		view.Booker.ID,
		booking.ReconstructPeriod(view.Start, view.End),
		booking.Status(view.Status),
	)
}
