package round

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

// Repository репозиторий для работы с раундами заявок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория раундов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает раунд по ID вместе со списком единиц бронирования раунда
// Внутри транзакции строка раунда блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ApplicationRound, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"name",
		"application_period_begin",
		"application_period_end",
		"reservation_period_begin",
		"reservation_period_end",
		"handled_date",
		"sent_date",
		"created_at",
		"updated_at",
	).
		From("application_rounds").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var round domain.ApplicationRound
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&round.ID,
		&round.Name,
		&round.ApplicationPeriodBegin,
		&round.ApplicationPeriodEnd,
		&round.ReservationPeriodBegin,
		&round.ReservationPeriodEnd,
		&round.HandledDate,
		&round.SentDate,
		&round.CreatedAt,
		&round.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoundNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan round: %v", ErrScanRow, err)
	}

	unitIDs, err := r.getUnitIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	round.ReservationUnitIDs = unitIDs

	return &round, nil
}

// SetHandledDate проставляет дату обработки раунда
func (r *Repository) SetHandledDate(ctx context.Context, id int64) error {
	return r.setDate(ctx, id, "handled_date", "SetHandledDate")
}

// SetSentDate проставляет дату отправки результатов
func (r *Repository) SetSentDate(ctx context.Context, id int64) error {
	return r.setDate(ctx, id, "sent_date", "SetSentDate")
}

// ClearResultDates сбрасывает handled_date и sent_date
// Используется при сбросе аллокации раунда: раунд возвращается в IN_ALLOCATION
func (r *Repository) ClearResultDates(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("application_rounds").
		Set("handled_date", nil).
		Set("sent_date", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ClearResultDates - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ClearResultDates - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ClearResultDates - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRoundNotFound
	}
	return nil
}

func (r *Repository) setDate(ctx context.Context, id int64, column, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("application_rounds").
		Set(column, squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrRoundNotFound
	}
	return nil
}

// getUnitIDs получает список единиц бронирования, участвующих в раунде
func (r *Repository) getUnitIDs(ctx context.Context, roundID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("reservation_unit_id").
		From("application_round_units").
		Where(squirrel.Eq{"application_round_id": roundID}).
		OrderBy("reservation_unit_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getUnitIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getUnitIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	unitIDs := make([]int64, 0)
	for rows.Next() {
		var unitID int64
		if err := rows.Scan(&unitID); err != nil {
			return nil, fmt.Errorf("%w: getUnitIDs - scan row: %v", ErrScanRow, err)
		}
		unitIDs = append(unitIDs, unitID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getUnitIDs - rows error: %v", ErrScanRow, err)
	}

	return unitIDs, nil
}
