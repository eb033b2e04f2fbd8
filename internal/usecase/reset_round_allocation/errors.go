package reset_round_allocation

import "errors"

var (
	// ErrRoundNotFound возвращается, когда раунд не найден
	ErrRoundNotFound = errors.New("reset_round_allocation: application round not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("reset_round_allocation: access denied")

	// ErrRoundNotStarted возвращается при сбросе раунда, еще не вошедшего в аллокацию
	ErrRoundNotStarted = errors.New("reset_round_allocation: application round has not entered allocation")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reset_round_allocation: internal error")
)
