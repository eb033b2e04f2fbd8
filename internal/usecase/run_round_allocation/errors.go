package run_round_allocation

import "errors"

var (
	// ErrRoundNotFound возвращается, когда раунд не найден
	ErrRoundNotFound = errors.New("run_round_allocation: application round not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("run_round_allocation: access denied")

	// ErrRoundNotInAllocation возвращается, когда раунд не находится в фазе аллокации
	ErrRoundNotInAllocation = errors.New("run_round_allocation: application round is not in allocation")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("run_round_allocation: internal error")
)
