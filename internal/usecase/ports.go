package usecase

import (
	"context"
	"time"

	"lendshare/internal/domain/booking"
	"lendshare/internal/domain/comment"
	"lendshare/internal/domain/item"
	"lendshare/internal/domain/user"
	"lendshare/internal/usecase/readmodel"

	"github.com/google/uuid"
)

// Storage ports. Implementations live in internal/infra/repository and
// signal failures through infra.RepositoryError kinds; the usecases map
// those onto the sentinel errors of this package.

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (*readmodel.UserView, error)
	Update(ctx context.Context, u *user.User) (*readmodel.UserView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.UserView, error)
	FindAll(ctx context.Context) ([]*readmodel.UserView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ItemRepository interface {
	Create(ctx context.Context, it *item.Item) (*readmodel.ItemView, error)
	Update(ctx context.Context, it *item.Item) (*readmodel.ItemView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.ItemView, error)
	// FindAllByOwner returns the owner's items in a stable id order so
	// batch views paginate deterministically.
	FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]*readmodel.ItemView, error)
	SearchAvailable(ctx context.Context, text string) ([]*readmodel.ItemView, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (*readmodel.BookingView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.BookingView, error)
	// ResolveStatus performs the WAITING -> to transition as a
	// conditional update keyed on the observed WAITING status. A guard
	// failure (booking no longer WAITING) surfaces as KindConflict so
	// concurrent approvals cannot both succeed.
	ResolveStatus(ctx context.Context, id uuid.UUID, to booking.Status) (*readmodel.BookingView, error)
	// The two query axes of the temporal partition engine. Results are
	// ordered start DESC, id ASC; page == nil means unpaginated.
	FindByBooker(ctx context.Context, bookerID uuid.UUID, filter booking.StateFilter, now time.Time, page *Page) ([]*readmodel.BookingView, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter booking.StateFilter, now time.Time, page *Page) ([]*readmodel.BookingView, error)
	// FindAllByItemOwner feeds batch aggregation: every booking on any
	// of the owner's items, one query.
	FindAllByItemOwner(ctx context.Context, ownerID uuid.UUID) ([]*readmodel.BookingView, error)
	FindAllByItem(ctx context.Context, itemID uuid.UUID) ([]*readmodel.BookingView, error)
	// HasFinishedApproved reports whether booker holds at least one
	// APPROVED booking on the item that ended before now.
	HasFinishedApproved(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) (*readmodel.CommentView, error)
	// FindAllByItem returns comments ordered by creation time, newest first.
	FindAllByItem(ctx context.Context, itemID uuid.UUID) ([]*readmodel.CommentView, error)
	// FindAllByItemOwner is the batch feed: comments across all items of
	// one owner, newest first.
	FindAllByItemOwner(ctx context.Context, ownerID uuid.UUID) ([]*readmodel.CommentView, error)
}
