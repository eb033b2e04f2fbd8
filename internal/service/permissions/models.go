package permissions

// Action операция, на которую проверяются права
type Action string

const (
	ActionViewApplication    Action = "view_application"
	ActionCreateApplication  Action = "create_application"
	ActionCreateSection      Action = "create_section"
	ActionReorderOptions     Action = "reorder_options"
	ActionRejectOptions      Action = "reject_options"
	ActionCreateAllocation   Action = "create_allocation"
	ActionDeleteAllocation   Action = "delete_allocation"
	ActionRunAllocation      Action = "run_allocation"
	ActionResetAllocation    Action = "reset_allocation"
	ActionRefreshIndexes     Action = "refresh_indexes"
)

// Target объект проверки прав.
// ApplicationOwnerID владелец заявки (для операций заявителя),
// UnitIDs организационные единицы затронутых единиц бронирования
// (для операций обработчика)
type Target struct {
	ApplicationOwnerID *int64
	UnitIDs            []int64
}

// reserverActions операции, доступные заявителю над собственной заявкой
var reserverActions = map[Action]bool{
	ActionViewApplication:   true,
	ActionCreateApplication: true,
	ActionCreateSection:     true,
	ActionReorderOptions:    true,
	ActionRejectOptions:     true,
}
