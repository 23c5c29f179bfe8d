package repository

import (
	"context"
	"errors"

	"lendshare/internal/domain/item"
	"lendshare/internal/infra"
	"lendshare/internal/usecase/readmodel"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var itemColumns = []string{"id", "name", "description", "available", "owner_id", "request_id"}

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

func (r *ItemRepository) Create(ctx context.Context, it *item.Item) (*readmodel.ItemView, error) {
	query, args, err := psql.Insert("items").
		Columns(itemColumns...).
		Values(it.ID(), it.Name(), it.Description(), it.Available(), it.OwnerID(), it.RequestID()).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build item insert", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return nil, classifyPgErr("failed to create item", err)
	}
	return itemToView(it), nil
}

func (r *ItemRepository) Update(ctx context.Context, it *item.Item) (*readmodel.ItemView, error) {
	query, args, err := psql.Update("items").
		Set("name", it.Name()).
		Set("description", it.Description()).
		Set("available", it.Available()).
		Where(squirrel.Eq{"id": it.ID()}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build item update", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, classifyPgErr("failed to update item", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return itemToView(it), nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.ItemView, error) {
	query, args, err := psql.Select(itemColumns...).
		From("items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build item select", err)
	}

	view, err := scanItemRow(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by id", err)
	}
	return view, nil
}

func (r *ItemRepository) FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]*readmodel.ItemView, error) {
	q := psql.Select(itemColumns...).
		From("items").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("id ASC")
	return r.queryAll(ctx, q, "failed to list items by owner")
}

func (r *ItemRepository) SearchAvailable(ctx context.Context, text string) ([]*readmodel.ItemView, error) {
	pattern := "%" + text + "%"
	q := psql.Select(itemColumns...).
		From("items").
		Where(squirrel.Eq{"available": true}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		}).
		OrderBy("id ASC")
	return r.queryAll(ctx, q, "failed to search items")
}

func (r *ItemRepository) queryAll(ctx context.Context, q squirrel.SelectBuilder, msg string) ([]*readmodel.ItemView, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build item query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	defer rows.Close()

	views := []*readmodel.ItemView{}
	for rows.Next() {
		view, err := scanItemRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan item row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return views, nil
}

func scanItemRow(row rowScanner) (*readmodel.ItemView, error) {
	var v readmodel.ItemView
	err := row.Scan(&v.ID, &v.Name, &v.Description, &v.Available, &v.OwnerID, &v.RequestID)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func itemToView(it *item.Item) *readmodel.ItemView {
	return &readmodel.ItemView{
		ID:          it.ID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		OwnerID:     it.OwnerID(),
		RequestID:   it.RequestID(),
	}
}
