package create_section

import "errors"

var (
	// ErrApplicationNotFound возвращается, когда заявка не найдена
	ErrApplicationNotFound = errors.New("create_section: application not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("create_section: access denied")

	// ErrRoundNotOpen возвращается, когда период приема заявок не открыт
	ErrRoundNotOpen = errors.New("create_section: application round is not open")

	// ErrApplicationCancelled возвращается при добавлении секции в отмененную заявку
	ErrApplicationCancelled = errors.New("create_section: application is cancelled")

	// ErrInvalidDuration возвращается при нарушении ограничений длительности:
	// минимум больше максимума, не кратно 30 минутам или больше 24 часов
	ErrInvalidDuration = errors.New("create_section: invalid duration bounds")

	// ErrDatesOutsideRound возвращается, когда окно дат секции выходит за
	// период резервирования раунда
	ErrDatesOutsideRound = errors.New("create_section: dates are outside the round reservation period")

	// ErrUnitNotInRound возвращается, когда единица варианта не участвует в раунде
	ErrUnitNotInRound = errors.New("create_section: reservation unit is not part of the round")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_section: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_section: internal error")
)
