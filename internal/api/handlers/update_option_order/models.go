package update_option_order

import (
	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	updateOrder "github.com/m04kA/SMC-SeasonalService/internal/usecase/update_option_order"
)

// OptionOrderRequest новая позиция одного варианта
type OptionOrderRequest struct {
	ReservationUnitOptionID int64 `json:"reservationUnitOptionId"`
	PreferredOrder          int   `json:"preferredOrder"`
}

// UpdateOptionOrderRequest HTTP request model. Список должен покрывать
// все варианты секции
type UpdateOptionOrderRequest struct {
	Orders []OptionOrderRequest `json:"reservationUnitOptions"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateOptionOrderRequest) ToUseCaseRequest(actor domain.Actor, sectionID int64) *updateOrder.Request {
	orders := make([]updateOrder.OptionOrder, 0, len(r.Orders))
	for _, order := range r.Orders {
		orders = append(orders, updateOrder.OptionOrder{
			OptionID:       order.ReservationUnitOptionID,
			PreferredOrder: order.PreferredOrder,
		})
	}
	return &updateOrder.Request{
		Actor:     actor,
		SectionID: sectionID,
		Orders:    orders,
	}
}
