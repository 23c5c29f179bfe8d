package repository

import (
	"context"
	"errors"
	"time"

	"lendshare/internal/domain/booking"
	"lendshare/internal/infra"
	"lendshare/internal/usecase"
	"lendshare/internal/usecase/readmodel"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var bookingColumns = []string{
	"b.id", "b.start_date", "b.end_date", "b.status",
	"u.id", "u.name",
	"i.id", "i.name", "i.owner_id",
}

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (*readmodel.BookingView, error) {
	query, args, err := psql.Insert("bookings").
		Columns("id", "item_id", "booker_id", "start_date", "end_date", "status").
		Values(b.ID(), b.ItemID(), b.BookerID(), b.Period().Start(), b.Period().End(), b.Status().String()).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking insert", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return nil, classifyPgErr("failed to create booking", err)
	}
	return r.FindByID(ctx, b.ID())
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.BookingView, error) {
	query, args, err := bookingSelect().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking select", err)
	}

	view, err := scanBookingRow(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by id", err)
	}
	return view, nil
}

// ResolveStatus is the optimistic half of the approval guard: the
// update only matches while the row still reads WAITING, so of two
// concurrent approvals exactly one wins.
func (r *BookingRepository) ResolveStatus(ctx context.Context, id uuid.UUID, to booking.Status) (*readmodel.BookingView, error) {
	query, args, err := psql.Update("bookings").
		Set("status", to.String()).
		Where(squirrel.Eq{"id": id, "status": booking.StatusWaiting.String()}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build status update", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, infra.WrapRepoErr("booking status already resolved", nil, infra.KindConflict)
	}
	return r.FindByID(ctx, id)
}

func (r *BookingRepository) FindByBooker(ctx context.Context, bookerID uuid.UUID, filter booking.StateFilter, now time.Time, page *usecase.Page) ([]*readmodel.BookingView, error) {
	q := bookingSelect().Where(squirrel.Eq{"b.booker_id": bookerID})
	return r.queryFiltered(ctx, q, filter, now, page, "failed to list bookings by booker")
}

func (r *BookingRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter booking.StateFilter, now time.Time, page *usecase.Page) ([]*readmodel.BookingView, error) {
	q := bookingSelect().Where(squirrel.Eq{"i.owner_id": ownerID})
	return r.queryFiltered(ctx, q, filter, now, page, "failed to list bookings by item owner")
}

func (r *BookingRepository) FindAllByItemOwner(ctx context.Context, ownerID uuid.UUID) ([]*readmodel.BookingView, error) {
	q := bookingSelect().
		Where(squirrel.Eq{"i.owner_id": ownerID}).
		OrderBy("b.start_date DESC", "b.id ASC")
	return r.queryAll(ctx, q, "failed to load bookings for owner items")
}

func (r *BookingRepository) FindAllByItem(ctx context.Context, itemID uuid.UUID) ([]*readmodel.BookingView, error) {
	q := bookingSelect().
		Where(squirrel.Eq{"b.item_id": itemID}).
		OrderBy("b.start_date DESC", "b.id ASC")
	return r.queryAll(ctx, q, "failed to load bookings for item")
}

func (r *BookingRepository) HasFinishedApproved(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error) {
	query, args, err := psql.Select("1").
		From("bookings").
		Where(squirrel.Eq{
			"item_id":   itemID,
			"booker_id": bookerID,
			"status":    booking.StatusApproved.String(),
		}).
		Where(squirrel.Lt{"end_date": now}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build booking history query", err)
	}

	var one int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to check booking history", err)
	}
	return true, nil
}

func (r *BookingRepository) queryFiltered(ctx context.Context, q squirrel.SelectBuilder, filter booking.StateFilter, now time.Time, page *usecase.Page, msg string) ([]*readmodel.BookingView, error) {
	if pred := filterPredicate(filter, now); pred != nil {
		q = q.Where(pred)
	}
	q = q.OrderBy("b.start_date DESC", "b.id ASC")
	if page != nil {
		q = q.Offset(uint64(page.From)).Limit(uint64(page.Size))
	}
	return r.queryAll(ctx, q, msg)
}

func (r *BookingRepository) queryAll(ctx context.Context, q squirrel.SelectBuilder, msg string) ([]*readmodel.BookingView, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	defer rows.Close()

	views := []*readmodel.BookingView{}
	for rows.Next() {
		view, err := scanBookingRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return views, nil
}

// filterPredicate translates the state filter into SQL. It must agree
// with booking.Matches; the repository tests hold the two together.
func filterPredicate(filter booking.StateFilter, now time.Time) squirrel.Sqlizer {
	switch filter {
	case booking.FilterCurrent:
		return squirrel.And{
			squirrel.Lt{"b.start_date": now},
			squirrel.Gt{"b.end_date": now},
		}
	case booking.FilterPast:
		return squirrel.Lt{"b.end_date": now}
	case booking.FilterFuture:
		return squirrel.Gt{"b.start_date": now}
	case booking.FilterWaiting:
		return squirrel.Eq{"b.status": booking.StatusWaiting.String()}
	case booking.FilterRejected:
		return squirrel.Eq{"b.status": booking.StatusRejected.String()}
	default:
		// FilterAll
		return nil
	}
}

func bookingSelect() squirrel.SelectBuilder {
	return psql.Select(bookingColumns...).
		From("bookings b").
		Join("users u ON b.booker_id = u.id").
		Join("items i ON b.item_id = i.id")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingRow(row rowScanner) (*readmodel.BookingView, error) {
	var v readmodel.BookingView
	err := row.Scan(
		&v.ID, &v.Start, &v.End, &v.Status,
		&v.Booker.ID, &v.Booker.Name,
		&v.Item.ID, &v.Item.Name, &v.Item.OwnerID,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
