package reject_all_options

import "errors"

// MsgSectionHasAllocations точный текст ошибки для клиента: секцию с
// выделенными слотами отклонить нельзя
const MsgSectionHasAllocations = "Application section has allocated time slots and cannot be rejected."

var (
	// ErrSectionNotFound возвращается, когда секция не найдена
	ErrSectionNotFound = errors.New("reject_all_options: application section not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("reject_all_options: access denied")

	// ErrRoundFinalized возвращается, когда раунд уже обработан
	ErrRoundFinalized = errors.New("reject_all_options: application round is finalized")

	// ErrSectionHasAllocations возвращается, когда у секции уже есть выделенные слоты
	ErrSectionHasAllocations = errors.New("reject_all_options: section has allocated time slots")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reject_all_options: internal error")
)
