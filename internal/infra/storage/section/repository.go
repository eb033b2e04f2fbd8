package section

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

// Repository репозиторий для работы с секциями заявок и их временными окнами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория секций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

const sectionColumns = "id, application_id, name, applied_reservations_per_week, " +
	"reservation_min_duration_minutes, reservation_max_duration_minutes, " +
	"reservations_begin_date, reservations_end_date, created_at, updated_at"

// Create создает секцию вместе с её подходящими временными окнами
// Вызывается внутри транзакции usecase'а создания секции
func (r *Repository) Create(ctx context.Context, section *domain.ApplicationSection, ranges []*domain.SuitableTimeRange) (*domain.ApplicationSection, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("application_sections").
		Columns(
			"application_id",
			"name",
			"applied_reservations_per_week",
			"reservation_min_duration_minutes",
			"reservation_max_duration_minutes",
			"reservations_begin_date",
			"reservations_end_date",
		).
		Values(
			section.ApplicationID,
			section.Name,
			section.AppliedReservationsPerWeek,
			section.ReservationMinDurationMinutes,
			section.ReservationMaxDurationMinutes,
			section.ReservationsBeginDate,
			section.ReservationsEndDate,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&section.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	section.CreatedAt = createdAt.Time
	section.UpdatedAt = updatedAt.Time

	for _, tr := range ranges {
		tr.ApplicationSectionID = section.ID
		if err := r.createTimeRange(ctx, tr); err != nil {
			return nil, err
		}
	}

	return section, nil
}

func (r *Repository) createTimeRange(ctx context.Context, tr *domain.SuitableTimeRange) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("suitable_time_ranges").
		Columns("application_section_id", "day_of_the_week", "begin_time", "end_time", "priority").
		Values(tr.ApplicationSectionID, tr.DayOfTheWeek, tr.BeginTime, tr.EndTime, tr.Priority).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: createTimeRange - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&tr.ID, &createdAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("%w: createTimeRange - execute insert: %v", ErrExecQuery, err)
	}
	tr.CreatedAt = createdAt.Time
	tr.UpdatedAt = updatedAt.Time
	return nil
}

// GetByID получает секцию по ID
// Внутри транзакции строка секции блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ApplicationSection, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sectionColumns).
		From("application_sections").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	section, err := scanSection(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan section: %v", ErrScanRow, err)
	}
	return section, nil
}

// GetByApplicationID получает все секции заявки
func (r *Repository) GetByApplicationID(ctx context.Context, applicationID int64) ([]*domain.ApplicationSection, error) {
	return r.list(ctx, squirrel.Eq{"application_id": applicationID}, "GetByApplicationID")
}

// GetByRoundID получает все секции всех неотмененных заявок раунда
// Используется движком массовой аллокации
func (r *Repository) GetByRoundID(ctx context.Context, roundID int64) ([]*domain.ApplicationSection, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.application_id",
		"s.name",
		"s.applied_reservations_per_week",
		"s.reservation_min_duration_minutes",
		"s.reservation_max_duration_minutes",
		"s.reservations_begin_date",
		"s.reservations_end_date",
		"s.created_at",
		"s.updated_at",
	).
		From("application_sections s").
		Join("applications a ON a.id = s.application_id").
		Where(squirrel.Eq{"a.application_round_id": roundID}).
		Where(squirrel.Eq{"a.cancelled_date": nil}).
		Where(squirrel.NotEq{"a.sent_date": nil}).
		OrderBy("s.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoundID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoundID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSections(rows)
}

// GetTimeRanges получает подходящие временные окна секции
// Сортировка: primary раньше secondary, затем по дню недели и времени начала
func (r *Repository) GetTimeRanges(ctx context.Context, sectionID int64) ([]*domain.SuitableTimeRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"application_section_id",
		"day_of_the_week",
		"begin_time",
		"end_time",
		"priority",
		"created_at",
		"updated_at",
	).
		From("suitable_time_ranges").
		Where(squirrel.Eq{"application_section_id": sectionID}).
		OrderBy("CASE priority WHEN 'primary' THEN 0 ELSE 1 END ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeRanges - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeRanges - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ranges := make([]*domain.SuitableTimeRange, 0)
	for rows.Next() {
		var tr domain.SuitableTimeRange
		var createdAt, updatedAt sql.NullTime
		err := rows.Scan(
			&tr.ID,
			&tr.ApplicationSectionID,
			&tr.DayOfTheWeek,
			&tr.BeginTime,
			&tr.EndTime,
			&tr.Priority,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetTimeRanges - scan row: %v", ErrScanRow, err)
		}
		tr.CreatedAt = createdAt.Time
		tr.UpdatedAt = updatedAt.Time
		ranges = append(ranges, &tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTimeRanges - rows error: %v", ErrScanRow, err)
	}

	return ranges, nil
}

func (r *Repository) list(ctx context.Context, where squirrel.Eq, op string) ([]*domain.ApplicationSection, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sectionColumns).
		From("application_sections").
		Where(where).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanSections(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSection(row rowScanner) (*domain.ApplicationSection, error) {
	var s domain.ApplicationSection
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.ApplicationID,
		&s.Name,
		&s.AppliedReservationsPerWeek,
		&s.ReservationMinDurationMinutes,
		&s.ReservationMaxDurationMinutes,
		&s.ReservationsBeginDate,
		&s.ReservationsEndDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return &s, nil
}

func scanSections(rows *sql.Rows) ([]*domain.ApplicationSection, error) {
	sections := make([]*domain.ApplicationSection, 0)
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSections - scan row: %v", ErrScanRow, err)
		}
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSections - rows error: %v", ErrScanRow, err)
	}
	return sections, nil
}
