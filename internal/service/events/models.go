package events

import "time"

// Имена очередей доменных событий
const (
	QueueAllocationCreated = "seasonal.allocation.created"
	QueueAllocationDeleted = "seasonal.allocation.deleted"
	QueueRoundReset        = "seasonal.round.reset"
	QueueRoundHandled      = "seasonal.round.handled"
)

// AllocationCreatedEvent событие выделения слота секции
type AllocationCreatedEvent struct {
	AllocationID         int64     `json:"allocation_id"`
	ApplicationSectionID int64     `json:"application_section_id"`
	ReservationUnitID    int64     `json:"reservation_unit_id"`
	DayOfTheWeek         string    `json:"day_of_the_week"`
	BeginTime            string    `json:"begin_time"`
	EndTime              string    `json:"end_time"`
	CreatedAt            time.Time `json:"created_at"`
}

// AllocationDeletedEvent событие удаления выделенного слота
type AllocationDeletedEvent struct {
	AllocationID         int64     `json:"allocation_id"`
	ApplicationSectionID int64     `json:"application_section_id"`
	DeletedAt            time.Time `json:"deleted_at"`
}

// RoundResetEvent событие сброса аллокации раунда
type RoundResetEvent struct {
	ApplicationRoundID int64     `json:"application_round_id"`
	DeletedSlots       int64     `json:"deleted_slots"`
	ResetAt            time.Time `json:"reset_at"`
}

// RoundHandledEvent событие завершения массовой аллокации раунда
type RoundHandledEvent struct {
	ApplicationRoundID int64     `json:"application_round_id"`
	AllocatedSlots     int       `json:"allocated_slots"`
	HandledAt          time.Time `json:"handled_at"`
}
