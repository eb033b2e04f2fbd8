package refresh_indexes

import "errors"

var (
	// ErrAccessDenied возвращается при отсутствии прав на пересборку
	ErrAccessDenied = errors.New("refresh_indexes: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("refresh_indexes: internal error")
)
