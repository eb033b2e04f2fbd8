package get_application_round

import "errors"

var (
	// ErrRoundNotFound возвращается, когда раунд не найден
	ErrRoundNotFound = errors.New("get_application_round: application round not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_application_round: internal error")
)
