package delete_allocation

import "github.com/m04kA/SMC-SeasonalService/internal/domain"

// Request модель запроса на удаление выделенного слота
type Request struct {
	Actor        domain.Actor
	AllocationID int64
}
