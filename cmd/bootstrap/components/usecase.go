package components

import (
	"lendshare/internal/pkg/clock"
	"lendshare/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewUserUseCase,
		usecase.NewItemUseCase,
		usecase.NewBookingUseCase,
		usecase.NewCommentUseCase,
	),
)
