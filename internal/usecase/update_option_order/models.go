package update_option_order

import "github.com/m04kA/SMC-SeasonalService/internal/domain"

// OptionOrder новая позиция одного варианта
type OptionOrder struct {
	OptionID       int64
	PreferredOrder int
}

// Request модель запроса на пакетное обновление порядка вариантов секции.
// Запрос должен покрывать все варианты секции
type Request struct {
	Actor     domain.Actor
	SectionID int64
	Orders    []OptionOrder
}
