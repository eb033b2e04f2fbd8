package refresh_indexes

import (
	"time"

	refreshIndexes "github.com/m04kA/SMC-SeasonalService/internal/usecase/refresh_indexes"
)

// RefreshResponse HTTP response model
type RefreshResponse struct {
	RefreshedAt string `json:"refreshedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *refreshIndexes.Response) *RefreshResponse {
	return &RefreshResponse{
		RefreshedAt: resp.RefreshedAt.Format(time.RFC3339),
	}
}
