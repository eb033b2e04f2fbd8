package get_application

import (
	"context"

	getApplication "github.com/m04kA/SMC-SeasonalService/internal/usecase/get_application"
)

type GetApplicationUseCase interface {
	Execute(ctx context.Context, req *getApplication.Request) (*getApplication.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
