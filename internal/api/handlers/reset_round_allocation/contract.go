package reset_round_allocation

import (
	"context"

	resetAllocation "github.com/m04kA/SMC-SeasonalService/internal/usecase/reset_round_allocation"
)

type ResetRoundAllocationUseCase interface {
	Execute(ctx context.Context, req *resetAllocation.Request) (*resetAllocation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
