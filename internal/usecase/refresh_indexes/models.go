package refresh_indexes

import (
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
)

// Request модель запроса пересборки индекса
type Request struct {
	Actor domain.Actor
}

// Response результат пересборки индекса
type Response struct {
	RefreshedAt time.Time
}
