package profileservice

// Profile профиль пользователя из ProfileService
type Profile struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`

	// ManagedUnitIDs организационные единицы, которыми управляет обработчик
	ManagedUnitIDs []int64 `json:"managed_unit_ids"`
}

// ErrorResponse модель ошибки от ProfileService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
