package repository

import (
	"context"

	"lendshare/internal/domain/comment"
	"lendshare/internal/infra"
	"lendshare/internal/usecase/readmodel"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var commentColumns = []string{"c.id", "c.text", "c.item_id", "u.name", "c.created"}

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment) (*readmodel.CommentView, error) {
	query, args, err := psql.Insert("comments").
		Columns("id", "text", "item_id", "author_id", "created").
		Values(c.ID(), c.Text(), c.ItemID(), c.AuthorID(), c.Created()).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build comment insert", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return nil, classifyPgErr("failed to create comment", err)
	}

	// Re-read through the join to resolve the author name.
	sel, selArgs, err := commentSelect().Where(squirrel.Eq{"c.id": c.ID()}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build comment select", err)
	}
	view, err := scanCommentRow(r.pool.QueryRow(ctx, sel, selArgs...))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read back comment", err)
	}
	return view, nil
}

func (r *CommentRepository) FindAllByItem(ctx context.Context, itemID uuid.UUID) ([]*readmodel.CommentView, error) {
	q := commentSelect().
		Where(squirrel.Eq{"c.item_id": itemID}).
		OrderBy("c.created DESC")
	return r.queryAll(ctx, q, "failed to list comments for item")
}

func (r *CommentRepository) FindAllByItemOwner(ctx context.Context, ownerID uuid.UUID) ([]*readmodel.CommentView, error) {
	q := commentSelect().
		Join("items i ON c.item_id = i.id").
		Where(squirrel.Eq{"i.owner_id": ownerID}).
		OrderBy("c.created DESC")
	return r.queryAll(ctx, q, "failed to list comments for owner items")
}

func (r *CommentRepository) queryAll(ctx context.Context, q squirrel.SelectBuilder, msg string) ([]*readmodel.CommentView, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build comment query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	defer rows.Close()

	views := []*readmodel.CommentView{}
	for rows.Next() {
		view, err := scanCommentRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan comment row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return views, nil
}

func commentSelect() squirrel.SelectBuilder {
	return psql.Select(commentColumns...).
		From("comments c").
		Join("users u ON c.author_id = u.id")
}

func scanCommentRow(row rowScanner) (*readmodel.CommentView, error) {
	var v readmodel.CommentView
	err := row.Scan(&v.ID, &v.Text, &v.ItemID, &v.AuthorName, &v.Created)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
