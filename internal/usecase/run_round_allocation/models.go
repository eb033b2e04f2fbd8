package run_round_allocation

import (
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
)

// Request модель запроса на массовую аллокацию раунда
type Request struct {
	Actor   domain.Actor
	RoundID int64
}

// Response результат массовой аллокации
type Response struct {
	RoundID int64

	// AllocatedSlots число слотов, выделенных этим запуском
	AllocatedSlots int
	// LockedOptions число вариантов, заблокированных как исчерпанные
	LockedOptions int
	// GeneratedReservations число сезонных броней, созданных из слотов раунда
	GeneratedReservations int

	HandledDate time.Time
}
