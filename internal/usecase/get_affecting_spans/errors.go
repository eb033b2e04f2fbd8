package get_affecting_spans

import "errors"

var (
	// ErrInvalidRange возвращается при некорректном диапазоне запроса
	ErrInvalidRange = errors.New("get_affecting_spans: invalid time range")

	// ErrUnitNotFound возвращается, когда площадка не найдена в индексе
	ErrUnitNotFound = errors.New("get_affecting_spans: reservation unit not found")

	// ErrIndexNotReady возвращается, когда индекс иерархии еще не построен
	ErrIndexNotReady = errors.New("get_affecting_spans: hierarchy index is not ready")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_affecting_spans: internal error")
)
