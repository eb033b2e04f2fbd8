package option

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

// Repository репозиторий для работы с вариантами единиц бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория вариантов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

const optionColumns = "id, application_section_id, reservation_unit_id, preferred_order, " +
	"locked, rejected, created_at, updated_at"

// CreateBatch создает варианты секции одним набором
func (r *Repository) CreateBatch(ctx context.Context, options []*domain.ReservationUnitOption) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, opt := range options {
		query, args, err := psqlbuilder.Insert("reservation_unit_options").
			Columns("application_section_id", "reservation_unit_id", "preferred_order", "locked", "rejected").
			Values(opt.ApplicationSectionID, opt.ReservationUnitID, opt.PreferredOrder, opt.Locked, opt.Rejected).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
		}

		var createdAt, updatedAt sql.NullTime
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&opt.ID, &createdAt, &updatedAt); err != nil {
			return fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
		}
		opt.CreatedAt = createdAt.Time
		opt.UpdatedAt = updatedAt.Time
	}
	return nil
}

// GetByID получает вариант по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ReservationUnitOption, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(optionColumns).
		From("reservation_unit_options").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	opt, err := scanOption(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan option: %v", ErrScanRow, err)
	}
	return opt, nil
}

// GetBySectionID получает варианты секции в порядке приоритета заявителя
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) GetBySectionID(ctx context.Context, sectionID int64) ([]*domain.ReservationUnitOption, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(optionColumns).
		From("reservation_unit_options").
		Where(squirrel.Eq{"application_section_id": sectionID}).
		OrderBy("preferred_order ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySectionID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySectionID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanOptions(rows)
}

// UpdatePreferredOrder обновляет порядок предпочтения одного варианта
func (r *Repository) UpdatePreferredOrder(ctx context.Context, id int64, preferredOrder int) error {
	return r.update(ctx, id, map[string]interface{}{"preferred_order": preferredOrder}, "UpdatePreferredOrder")
}

// SetLocked проставляет флаг locked
func (r *Repository) SetLocked(ctx context.Context, id int64, locked bool) error {
	return r.update(ctx, id, map[string]interface{}{"locked": locked}, "SetLocked")
}

// SetRejected проставляет флаг rejected
func (r *Repository) SetRejected(ctx context.Context, id int64, rejected bool) error {
	return r.update(ctx, id, map[string]interface{}{"rejected": rejected}, "SetRejected")
}

// RejectAllBySectionID отклоняет все варианты секции одним запросом
func (r *Repository) RejectAllBySectionID(ctx context.Context, sectionID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservation_unit_options").
		Set("rejected", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"application_section_id": sectionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RejectAllBySectionID - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RejectAllBySectionID - execute update: %v", ErrExecQuery, err)
	}
	return nil
}

// ClearFlagsByRoundID снимает locked/rejected со всех вариантов раунда
// Используется при сбросе аллокации
func (r *Repository) ClearFlagsByRoundID(ctx context.Context, roundID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservation_unit_options").
		Set("locked", false).
		Set("rejected", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Expr(
			"application_section_id IN ("+
				"SELECT s.id FROM application_sections s "+
				"JOIN applications a ON a.id = s.application_id "+
				"WHERE a.application_round_id = ?)", roundID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ClearFlagsByRoundID - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ClearFlagsByRoundID - execute update: %v", ErrExecQuery, err)
	}
	return nil
}

// CountLockedByRoundID возвращает количество заблокированных вариантов раунда
func (r *Repository) CountLockedByRoundID(ctx context.Context, roundID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservation_unit_options o").
		Join("application_sections s ON s.id = o.application_section_id").
		Join("applications a ON a.id = s.application_id").
		Where(squirrel.Eq{"a.application_round_id": roundID, "o.locked": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountLockedByRoundID - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountLockedByRoundID - scan count: %v", ErrScanRow, err)
	}
	return count, nil
}

func (r *Repository) update(ctx context.Context, id int64, sets map[string]interface{}, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("reservation_unit_options").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})
	for column, value := range sets {
		updateBuilder = updateBuilder.Set(column, value)
	}

	query, args, err := updateBuilder.ToSql()
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
		return ErrOptionNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOption(row rowScanner) (*domain.ReservationUnitOption, error) {
	var opt domain.ReservationUnitOption
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&opt.ID,
		&opt.ApplicationSectionID,
		&opt.ReservationUnitID,
		&opt.PreferredOrder,
		&opt.Locked,
		&opt.Rejected,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	opt.CreatedAt = createdAt.Time
	opt.UpdatedAt = updatedAt.Time
	return &opt, nil
}

func scanOptions(rows *sql.Rows) ([]*domain.ReservationUnitOption, error) {
	options := make([]*domain.ReservationUnitOption, 0)
	for rows.Next() {
		opt, err := scanOption(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanOptions - scan row: %v", ErrScanRow, err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanOptions - rows error: %v", ErrScanRow, err)
	}
	return options, nil
}
