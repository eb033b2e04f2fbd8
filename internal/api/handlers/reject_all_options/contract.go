package reject_all_options

import (
	"context"

	rejectOptions "github.com/m04kA/SMC-SeasonalService/internal/usecase/reject_all_options"
)

type RejectAllOptionsUseCase interface {
	Execute(ctx context.Context, req *rejectOptions.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
