package reservation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	"github.com/m04kA/SMC-SeasonalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SeasonalService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с прямыми бронями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

const reservationColumns = "id, reservation_unit_id, begin_at, end_at, type, state, " +
	"allocated_time_slot_id, created_at, updated_at"

// GetActiveWithFilter получает активные брони по фильтру
// Возвращаются только брони, пересекающиеся с периодом [From, To)
func (r *Repository) GetActiveWithFilter(ctx context.Context, filter Filter) ([]*domain.Reservation, error) {
	if len(filter.ReservationUnitIDs) == 0 {
		return []*domain.Reservation{}, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inactiveStates := make([]string, len(domain.InactiveReservationStates))
	for i, s := range domain.InactiveReservationStates {
		inactiveStates[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(reservationColumns).
		From("reservations").
		Where(squirrel.Eq{"reservation_unit_id": filter.ReservationUnitIDs}).
		Where(squirrel.NotEq{"state": inactiveStates}).
		Where(squirrel.Lt{"begin_at": filter.To}).
		Where(squirrel.Gt{"end_at": filter.From}).
		OrderBy("begin_at ASC")

	if filter.ExcludeReservationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeReservationID})
	}
	if len(filter.ExcludeTypes) > 0 {
		excludeTypes := make([]string, len(filter.ExcludeTypes))
		for i, t := range filter.ExcludeTypes {
			excludeTypes[i] = string(t)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"type": excludeTypes})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// CreateBatch создает набор броней
// Используется при фиксации результатов раунда (генерация броней из слотов)
func (r *Repository) CreateBatch(ctx context.Context, reservations []*domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, res := range reservations {
		query, args, err := psqlbuilder.Insert("reservations").
			Columns("reservation_unit_id", "begin_at", "end_at", "type", "state", "allocated_time_slot_id").
			Values(res.ReservationUnitID, res.Begin, res.End, res.Type, res.State, res.AllocatedTimeSlotID).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
		}

		var createdAt, updatedAt sql.NullTime
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt); err != nil {
			return fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
		}
		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time
	}
	return nil
}

// DeleteSeasonalByRoundID удаляет брони, сгенерированные из слотов раунда
// Используется при сбросе аллокации уже обработанного раунда
func (r *Repository) DeleteSeasonalByRoundID(ctx context.Context, roundID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"type": domain.ReservationTypeSeasonal}).
		Where(squirrel.Expr(
			"allocated_time_slot_id IN ("+
				"SELECT a.id FROM allocated_time_slots a "+
				"JOIN reservation_unit_options o ON o.id = a.reservation_unit_option_id "+
				"JOIN application_sections s ON s.id = o.application_section_id "+
				"JOIN applications ap ON ap.id = s.application_id "+
				"WHERE ap.application_round_id = ?)", roundID)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteSeasonalByRoundID - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteSeasonalByRoundID - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteSeasonalByRoundID - get rows affected: %v", ErrExecQuery, err)
	}
	return rowsAffected, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		var res domain.Reservation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.ReservationUnitID,
			&res.Begin,
			&res.End,
			&res.Type,
			&res.State,
			&res.AllocatedTimeSlotID,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time
		reservations = append(reservations, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}
	return reservations, nil
}
