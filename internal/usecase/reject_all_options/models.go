package reject_all_options

import "github.com/m04kA/SMC-SeasonalService/internal/domain"

// Request модель запроса на отклонение всех вариантов секции
type Request struct {
	Actor     domain.Actor
	SectionID int64
}
