package get_application

import "errors"

var (
	// ErrApplicationNotFound возвращается, когда заявка не найдена
	ErrApplicationNotFound = errors.New("get_application: application not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на просмотр
	ErrAccessDenied = errors.New("get_application: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_application: internal error")
)
