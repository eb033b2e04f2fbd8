package get_application_round

import (
	"context"

	getRound "github.com/m04kA/SMC-SeasonalService/internal/usecase/get_application_round"
)

type GetApplicationRoundUseCase interface {
	Execute(ctx context.Context, req *getRound.Request) (*getRound.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
