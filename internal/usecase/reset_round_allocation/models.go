package reset_round_allocation

import "github.com/m04kA/SMC-SeasonalService/internal/domain"

// Request модель запроса на сброс аллокации раунда
type Request struct {
	Actor   domain.Actor
	RoundID int64
}

// Response результат сброса аллокации
type Response struct {
	RoundID int64

	// DeletedSlots число удаленных выделенных слотов
	DeletedSlots int64
	// DeletedReservations число удаленных сезонных броней
	DeletedReservations int64
}
