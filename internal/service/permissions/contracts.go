package permissions

import (
	"context"

	"github.com/m04kA/SMC-SeasonalService/internal/integrations/profileservice"
)

// ProfileServiceClient интерфейс клиента для ProfileService
type ProfileServiceClient interface {
	GetProfileWithGracefulDegradation(ctx context.Context, userID int64) (*profileservice.Profile, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
