package application

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

// Repository репозиторий для работы с заявками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

const applicationColumns = "id, application_round_id, user_id, applicant_type, contact_name, " +
	"contact_email, contact_phone, additional_information, sent_date, cancelled_date, created_at, updated_at"

// Create создает новую заявку
func (r *Repository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("applications").
		Columns(
			"application_round_id",
			"user_id",
			"applicant_type",
			"contact_name",
			"contact_email",
			"contact_phone",
			"additional_information",
			"sent_date",
		).
		Values(
			app.ApplicationRoundID,
			app.UserID,
			app.ApplicantType,
			app.ContactName,
			app.ContactEmail,
			app.ContactPhone,
			app.AdditionalInformation,
			app.SentDate,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&app.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	app.CreatedAt = createdAt.Time
	app.UpdatedAt = updatedAt.Time
	return app, nil
}

// GetByID получает заявку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(applicationColumns).
		From("applications").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	app, err := r.scanApplication(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan application: %v", ErrScanRow, err)
	}
	return app, nil
}

// GetByRoundID получает все заявки раунда
// Отмененные заявки исключаются, если includeCancelled = false
func (r *Repository) GetByRoundID(ctx context.Context, roundID int64, includeCancelled bool) ([]*domain.Application, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(applicationColumns).
		From("applications").
		Where(squirrel.Eq{"application_round_id": roundID}).
		OrderBy("id ASC")

	if !includeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"cancelled_date": nil})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoundID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoundID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	apps := make([]*domain.Application, 0)
	for rows.Next() {
		app, err := r.scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByRoundID - scan row: %v", ErrScanRow, err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByRoundID - rows error: %v", ErrScanRow, err)
	}

	return apps, nil
}

// SetSentDate проставляет дату подачи заявки
func (r *Repository) SetSentDate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("applications").
		Set("sent_date", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetSentDate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetSentDate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetSentDate - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanApplication(row rowScanner) (*domain.Application, error) {
	var app domain.Application
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&app.ID,
		&app.ApplicationRoundID,
		&app.UserID,
		&app.ApplicantType,
		&app.ContactName,
		&app.ContactEmail,
		&app.ContactPhone,
		&app.AdditionalInformation,
		&app.SentDate,
		&app.CancelledDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	app.CreatedAt = createdAt.Time
	app.UpdatedAt = updatedAt.Time
	return &app, nil
}
