package create_application

import "errors"

var (
	// ErrRoundNotFound возвращается, когда раунд не найден
	ErrRoundNotFound = errors.New("create_application: application round not found")

	// ErrRoundNotOpen возвращается, когда период приема заявок не открыт
	ErrRoundNotOpen = errors.New("create_application: application round is not open")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("create_application: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_application: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_application: internal error")
)
