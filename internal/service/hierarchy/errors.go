package hierarchy

import "errors"

var (
	// ErrNotRefreshed возвращается, когда индекс запрошен до первой загрузки
	ErrNotRefreshed = errors.New("hierarchy index has not been refreshed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("hierarchy service: internal error")
)
