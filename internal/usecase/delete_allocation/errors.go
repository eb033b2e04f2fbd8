package delete_allocation

import "errors"

var (
	// ErrAllocationNotFound возвращается, когда выделенный слот не найден
	ErrAllocationNotFound = errors.New("delete_allocation: allocated time slot not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("delete_allocation: access denied")

	// ErrRoundFinalized возвращается, когда раунд уже обработан и слоты заморожены
	ErrRoundFinalized = errors.New("delete_allocation: application round is finalized")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("delete_allocation: internal error")
)
