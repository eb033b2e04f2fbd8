package update_option_order

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// validateOrders проверяет, что значения preferred_order уникальны и образуют
// плотную последовательность 0..N-1. Тексты ошибок воспроизводимы и именуют
// конкретные конфликтующие варианты
func validateOrders(orders []OptionOrder) error {
	byValue := make(map[int][]int64)
	for _, o := range orders {
		byValue[o.PreferredOrder] = append(byValue[o.PreferredOrder], o.OptionID)
	}

	values := make([]int, 0, len(byValue))
	for v := range byValue {
		values = append(values, v)
	}
	sort.Ints(values)

	// Дубликаты: называем вариант и всех его соседей по значению
	for _, v := range values {
		ids := byValue[v]
		if len(ids) < 2 {
			continue
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		others := make([]string, 0, len(ids)-1)
		for _, id := range ids[1:] {
			others = append(others, strconv.FormatInt(id, 10))
		}
		return &OrderValidationError{
			Message: fmt.Sprintf(
				"Reservation Unit Option %d has duplicate 'preferred_order' %d with these Reservation Unit Options: %s",
				ids[0], v, strings.Join(others, ", ")),
		}
	}

	// Пропуски: последовательность должна быть ровно 0..N-1
	for i, v := range values {
		if v != i {
			return &OrderValidationError{
				Message: fmt.Sprintf(
					"Reservation Unit Option %d has 'preferred_order' %d, expected %d",
					byValue[v][0], v, i),
			}
		}
	}
	return nil
}
