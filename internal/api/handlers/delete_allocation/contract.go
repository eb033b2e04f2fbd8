package delete_allocation

import (
	"context"

	deleteAllocation "github.com/m04kA/SMC-SeasonalService/internal/usecase/delete_allocation"
)

type DeleteAllocationUseCase interface {
	Execute(ctx context.Context, req *deleteAllocation.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
