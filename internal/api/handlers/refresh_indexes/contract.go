package refresh_indexes

import (
	"context"

	refreshIndexes "github.com/m04kA/SMC-SeasonalService/internal/usecase/refresh_indexes"
)

type RefreshIndexesUseCase interface {
	Execute(ctx context.Context, req *refreshIndexes.Request) (*refreshIndexes.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
