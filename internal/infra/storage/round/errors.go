package round

import "errors"

var (
	// ErrRoundNotFound возвращается, когда раунд заявок не найден
	ErrRoundNotFound = errors.New("round.repository: application round not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("round.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("round.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("round.repository: failed to scan row")
)
