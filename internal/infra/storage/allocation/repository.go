package allocation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	"github.com/m04kA/SMC-SeasonalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SeasonalService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с выделенными слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория выделенных слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

const allocationColumns = "id, reservation_unit_option_id, day_of_the_week, begin_time, end_time, created_at, updated_at"

// Create создает выделенный слот
// Вызывается только внутри сериализуемой транзакции usecase'а аллокации
func (r *Repository) Create(ctx context.Context, slot *domain.AllocatedTimeSlot) (*domain.AllocatedTimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("allocated_time_slots").
		Columns("reservation_unit_option_id", "day_of_the_week", "begin_time", "end_time").
		Values(slot.ReservationUnitOptionID, slot.DayOfTheWeek, slot.BeginTime, slot.EndTime).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time
	return slot, nil
}

// GetByID получает выделенный слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AllocatedTimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(allocationColumns).
		From("allocated_time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAllocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}
	return slot, nil
}

// GetBySectionID получает все выделенные слоты секции (по всем её вариантам)
func (r *Repository) GetBySectionID(ctx context.Context, sectionID int64) ([]*domain.AllocatedTimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"a.id",
		"a.reservation_unit_option_id",
		"a.day_of_the_week",
		"a.begin_time",
		"a.end_time",
		"a.created_at",
		"a.updated_at",
	).
		From("allocated_time_slots a").
		Join("reservation_unit_options o ON o.id = a.reservation_unit_option_id").
		Where(squirrel.Eq{"o.application_section_id": sectionID}).
		OrderBy("a.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySectionID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySectionID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// CountByOptionIDs возвращает количество выделенных слотов на указанных вариантах
func (r *Repository) CountByOptionIDs(ctx context.Context, optionIDs []int64) (int, error) {
	if len(optionIDs) == 0 {
		return 0, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("allocated_time_slots").
		Where(squirrel.Eq{"reservation_unit_option_id": optionIDs}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByOptionIDs - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByOptionIDs - scan count: %v", ErrScanRow, err)
	}
	return count, nil
}

// CountByRoundID возвращает количество выделенных слотов раунда
func (r *Repository) CountByRoundID(ctx context.Context, roundID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("allocated_time_slots a").
		Join("reservation_unit_options o ON o.id = a.reservation_unit_option_id").
		Join("application_sections s ON s.id = o.application_section_id").
		Join("applications ap ON ap.id = s.application_id").
		Where(squirrel.Eq{"ap.application_round_id": roundID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByRoundID - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByRoundID - scan count: %v", ErrScanRow, err)
	}
	return count, nil
}

// GetWindowsByUnitIDs получает выделенные слоты на указанных единицах вместе
// с окном дат, на котором слот повторяется (окно секции, обрезанное периодом
// резервирования раунда). Слот excludeAllocationID исключается из результата
// (проверка "пересекается ли что-то, кроме меня самого")
func (r *Repository) GetWindowsByUnitIDs(ctx context.Context, unitIDs []int64, excludeAllocationID *int64) ([]*domain.AllocatedSlotWindow, error) {
	if len(unitIDs) == 0 {
		return []*domain.AllocatedSlotWindow{}, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"a.id",
		"o.reservation_unit_id",
		"a.day_of_the_week",
		"a.begin_time",
		"a.end_time",
		"GREATEST(s.reservations_begin_date, r.reservation_period_begin)",
		"LEAST(s.reservations_end_date, r.reservation_period_end)",
	).
		From("allocated_time_slots a").
		Join("reservation_unit_options o ON o.id = a.reservation_unit_option_id").
		Join("application_sections s ON s.id = o.application_section_id").
		Join("applications ap ON ap.id = s.application_id").
		Join("application_rounds r ON r.id = ap.application_round_id").
		Where(squirrel.Eq{"o.reservation_unit_id": unitIDs})

	if excludeAllocationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"a.id": *excludeAllocationID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWindowsByUnitIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWindowsByUnitIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.AllocatedSlotWindow, 0)
	for rows.Next() {
		var w domain.AllocatedSlotWindow
		err := rows.Scan(
			&w.AllocationID,
			&w.ReservationUnitID,
			&w.DayOfTheWeek,
			&w.BeginTime,
			&w.EndTime,
			&w.WindowBegin,
			&w.WindowEnd,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWindowsByUnitIDs - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWindowsByUnitIDs - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// Delete удаляет выделенный слот
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("allocated_time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAllocationNotFound
	}
	return nil
}

// DeleteByRoundID удаляет все выделенные слоты раунда, возвращая число удаленных
func (r *Repository) DeleteByRoundID(ctx context.Context, roundID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("allocated_time_slots").
		Where(squirrel.Expr(
			"reservation_unit_option_id IN ("+
				"SELECT o.id FROM reservation_unit_options o "+
				"JOIN application_sections s ON s.id = o.application_section_id "+
				"JOIN applications a ON a.id = s.application_id "+
				"WHERE a.application_round_id = ?)", roundID)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByRoundID - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByRoundID - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByRoundID - get rows affected: %v", ErrExecQuery, err)
	}
	return rowsAffected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.AllocatedTimeSlot, error) {
	var slot domain.AllocatedTimeSlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.ReservationUnitOptionID,
		&slot.DayOfTheWeek,
		&slot.BeginTime,
		&slot.EndTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time
	return &slot, nil
}

func scanSlots(rows *sql.Rows) ([]*domain.AllocatedTimeSlot, error) {
	slots := make([]*domain.AllocatedTimeSlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}
	return slots, nil
}
