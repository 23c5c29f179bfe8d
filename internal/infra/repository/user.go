package repository

import (
	"context"
	"errors"

	"lendshare/internal/domain/user"
	"lendshare/internal/infra"
	"lendshare/internal/usecase/readmodel"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) (*readmodel.UserView, error) {
	query, args, err := psql.Insert("users").
		Columns("id", "name", "email").
		Values(u.ID(), u.Name(), u.Email()).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user insert", err)
	}

	// Email uniqueness rides on the unique constraint; a violation
	// comes back as KindDuplicateKey.
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return nil, classifyPgErr("failed to create user", err)
	}
	return userToView(u), nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) (*readmodel.UserView, error) {
	query, args, err := psql.Update("users").
		Set("name", u.Name()).
		Set("email", u.Email()).
		Where(squirrel.Eq{"id": u.ID()}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user update", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, classifyPgErr("failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return userToView(u), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.UserView, error) {
	query, args, err := psql.Select("id", "name", "email").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user select", err)
	}

	var v readmodel.UserView
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&v.ID, &v.Name, &v.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by id", err)
	}
	return &v, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*readmodel.UserView, error) {
	query, args, err := psql.Select("id", "name", "email").
		From("users").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user list query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	defer rows.Close()

	views := []*readmodel.UserView{}
	for rows.Next() {
		var v readmodel.UserView
		if err := rows.Scan(&v.ID, &v.Name, &v.Email); err != nil {
			return nil, infra.WrapRepoErr("failed to scan user row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	return views, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build user delete", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return classifyPgErr("failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func userToView(u *user.User) *readmodel.UserView {
	return &readmodel.UserView{
		ID:    u.ID(),
		Name:  u.Name(),
		Email: u.Email(),
	}
}
