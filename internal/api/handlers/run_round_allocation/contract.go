package run_round_allocation

import (
	"context"

	runAllocation "github.com/m04kA/SMC-SeasonalService/internal/usecase/run_round_allocation"
)

type RunRoundAllocationUseCase interface {
	Execute(ctx context.Context, req *runAllocation.Request) (*runAllocation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
