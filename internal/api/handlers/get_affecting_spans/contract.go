package get_affecting_spans

import (
	"context"

	getSpans "github.com/m04kA/SMC-SeasonalService/internal/usecase/get_affecting_spans"
)

type GetAffectingSpansUseCase interface {
	Execute(ctx context.Context, req *getSpans.Request) (*getSpans.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
