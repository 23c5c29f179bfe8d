package usecase

import (
	"context"

	"lendshare/internal/domain/booking"
	"lendshare/internal/domain/user"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/clock"
	"lendshare/internal/pkg/errs"
	"lendshare/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type UserUseCase interface {
	Create(ctx context.Context, name, email string) (*readmodel.UserView, error)
	Update(ctx context.Context, id uuid.UUID, name, email string) (*readmodel.UserView, error)
	Get(ctx context.Context, id uuid.UUID) (*readmodel.UserView, error)
	List(ctx context.Context) ([]*readmodel.UserView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userUseCaseImpl struct {
	userRepo    UserRepository
	itemRepo    ItemRepository
	bookingRepo BookingRepository
	clock       clock.Clock
}

func NewUserUseCase(
	userRepo UserRepository,
	itemRepo ItemRepository,
	bookingRepo BookingRepository,
	clock clock.Clock,
) UserUseCase {
	return &userUseCaseImpl{
		userRepo:    userRepo,
		itemRepo:    itemRepo,
		bookingRepo: bookingRepo,
		clock:       clock,
	}
}

func (u *userUseCaseImpl) Create(ctx context.Context, name, email string) (*readmodel.UserView, error) {
	entity, err := user.NewUser(name, email)
	if err != nil {
		return nil, err
	}
	view, err := u.userRepo.Create(ctx, entity)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *userUseCaseImpl) Update(ctx context.Context, id uuid.UUID, name, email string) (*readmodel.UserView, error) {
	view, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to find user")
	}

	entity := user.ReconstructUser(view.ID, view.Name, view.Email)
	if err := entity.Patch(name, email); err != nil {
		return nil, err
	}

	updated, err := u.userRepo.Update(ctx, entity)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return updated, nil
}

func (u *userUseCaseImpl) Get(ctx context.Context, id uuid.UUID) (*readmodel.UserView, error) {
	view, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to find user")
	}
	return view, nil
}

func (u *userUseCaseImpl) List(ctx context.Context) ([]*readmodel.UserView, error) {
	views, err := u.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list users")
	}
	return views, nil
}

// Delete refuses to remove a user who still owns items or has bookings
// in any state.
func (u *userUseCaseImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := u.userRepo.FindByID(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrUserNotFound
		}
		return errs.Wrap(err, "failed to find user")
	}

	items, err := u.itemRepo.FindAllByOwner(ctx, id)
	if err != nil {
		return errs.Wrap(err, "failed to check owned items")
	}
	if len(items) > 0 {
		return ErrUserHasActivity
	}

	bookings, err := u.bookingRepo.FindByBooker(ctx, id, booking.FilterAll, u.clock.Now(), nil)
	if err != nil {
		return errs.Wrap(err, "failed to check bookings")
	}
	if len(bookings) > 0 {
		return ErrUserHasActivity
	}

	if err := u.userRepo.Delete(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrUserNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
