package create_section

import (
	"context"

	createSection "github.com/m04kA/SMC-SeasonalService/internal/usecase/create_section"
)

type CreateSectionUseCase interface {
	Execute(ctx context.Context, req *createSection.Request) (*createSection.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
