package components

import (
	repo_impl "lendshare/internal/infra/repository"
	"lendshare/internal/usecase"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(usecase.UserRepository)),
		),
		fx.Annotate(
			repo_impl.NewItemRepository,
			fx.As(new(usecase.ItemRepository)),
		),
		fx.Annotate(
			repo_impl.NewBookingRepository,
			fx.As(new(usecase.BookingRepository)),
		),
		fx.Annotate(
			repo_impl.NewCommentRepository,
			fx.As(new(usecase.CommentRepository)),
		),
	),
)
