package update_option_order

import "errors"

var (
	// ErrSectionNotFound возвращается, когда секция не найдена
	ErrSectionNotFound = errors.New("update_option_order: application section not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("update_option_order: access denied")

	// ErrRoundFinalized возвращается, когда раунд уже обработан и заявка заморожена
	ErrRoundFinalized = errors.New("update_option_order: application round is finalized")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_option_order: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_option_order: internal error")
)

// OrderValidationError ошибка валидации порядка с точным воспроизводимым
// текстом, возвращаемым клиенту как есть
type OrderValidationError struct {
	Message string
}

func (e *OrderValidationError) Error() string {
	return e.Message
}
