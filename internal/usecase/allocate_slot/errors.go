package allocate_slot

import "errors"

var (
	// ErrOptionNotFound возвращается, когда вариант единицы не найден
	ErrOptionNotFound = errors.New("allocate_slot: reservation unit option not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на аллокацию
	ErrAccessDenied = errors.New("allocate_slot: access denied")

	// ErrOptionLocked возвращается при попытке выделить слот на заблокированном варианте
	ErrOptionLocked = errors.New("allocate_slot: option is locked")

	// ErrOptionRejected возвращается при попытке выделить слот на отклоненном варианте
	ErrOptionRejected = errors.New("allocate_slot: option is rejected")

	// ErrRoundNotInAllocation возвращается, когда раунд не находится в фазе аллокации
	ErrRoundNotInAllocation = errors.New("allocate_slot: application round is not in allocation")

	// ErrInvalidDuration возвращается, когда длительность слота вне границ секции
	// или не кратна шагу в 30 минут
	ErrInvalidDuration = errors.New("allocate_slot: invalid slot duration")

	// ErrDayAlreadyAllocated возвращается, когда у секции уже есть слот на этот день недели
	ErrDayAlreadyAllocated = errors.New("allocate_slot: section already has an allocation on this weekday")

	// ErrQuotaReached возвращается, когда секция уже получила заявленное число слотов в неделю
	ErrQuotaReached = errors.New("allocate_slot: applied reservations per week quota reached")

	// ErrOverlap возвращается, когда слот пересекается с существующей занятостью
	// конфликтного множества единицы
	ErrOverlap = errors.New("allocate_slot: slot overlaps existing reservations or allocations")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("allocate_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("allocate_slot: internal error")
)
