package update_option_order

import (
	"context"

	updateOrder "github.com/m04kA/SMC-SeasonalService/internal/usecase/update_option_order"
)

type UpdateOptionOrderUseCase interface {
	Execute(ctx context.Context, req *updateOrder.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
