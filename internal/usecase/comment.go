package usecase

import (
	"context"

	"lendshare/internal/domain/comment"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/clock"
	"lendshare/internal/pkg/errs"
	"lendshare/internal/usecase/readmodel"

	"github.com/google/uuid"
)

// CommentUseCase gates comment creation on booking history: only a
// renter with a completed, approved rental of the item may comment.
type CommentUseCase interface {
	Add(ctx context.Context, itemID uuid.UUID, text string, actorID uuid.UUID) (*readmodel.CommentView, error)
}

type commentUseCaseImpl struct {
	commentRepo CommentRepository
	bookingRepo BookingRepository
	userRepo    UserRepository
	itemRepo    ItemRepository
	clock       clock.Clock
}

func NewCommentUseCase(
	commentRepo CommentRepository,
	bookingRepo BookingRepository,
	userRepo UserRepository,
	itemRepo ItemRepository,
	clock clock.Clock,
) CommentUseCase {
	return &commentUseCaseImpl{
		commentRepo: commentRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		itemRepo:    itemRepo,
		clock:       clock,
	}
}

func (u *commentUseCaseImpl) Add(ctx context.Context, itemID uuid.UUID, text string, actorID uuid.UUID) (*readmodel.CommentView, error) {
	if _, err := u.userRepo.FindByID(ctx, actorID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to find comment author")
	}
	if _, err := u.itemRepo.FindByID(ctx, itemID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Wrap(err, "failed to find item")
	}

	now := u.clock.Now()
	eligible, err := u.bookingRepo.HasFinishedApproved(ctx, itemID, actorID, now)
	if err != nil {
		return nil, errs.Wrap(err, "failed to check booking history")
	}
	if !eligible {
		return nil, ErrNoCompletedBooking
	}

	entity, err := comment.NewComment(itemID, actorID, text, now)
	if err != nil {
		return nil, err
	}

	view, err := u.commentRepo.Create(ctx, entity)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}
