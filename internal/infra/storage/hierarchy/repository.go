package hierarchy

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	"github.com/m04kA/SMC-SeasonalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SeasonalService/pkg/psqlbuilder"
)

// Repository репозиторий исходных данных иерархии:
// пространства, ресурсы и их привязки к единицам бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория иерархии
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListSpaces возвращает все пространства с родительскими связями
func (r *Repository) ListSpaces(ctx context.Context) ([]*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "parent_id").
		From("spaces").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListSpaces - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSpaces - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	spaces := make([]*domain.Space, 0)
	for rows.Next() {
		var space domain.Space
		if err := rows.Scan(&space.ID, &space.Name, &space.ParentID); err != nil {
			return nil, fmt.Errorf("%w: ListSpaces - scan row: %v", ErrScanRow, err)
		}
		spaces = append(spaces, &space)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSpaces - rows error: %v", ErrScanRow, err)
	}

	return spaces, nil
}

// ListResources возвращает все ресурсы
func (r *Repository) ListResources(ctx context.Context) ([]*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "space_id").
		From("resources").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListResources - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListResources - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	resources := make([]*domain.Resource, 0)
	for rows.Next() {
		var resource domain.Resource
		if err := rows.Scan(&resource.ID, &resource.Name, &resource.SpaceID); err != nil {
			return nil, fmt.Errorf("%w: ListResources - scan row: %v", ErrScanRow, err)
		}
		resources = append(resources, &resource)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListResources - rows error: %v", ErrScanRow, err)
	}

	return resources, nil
}

// ListReservationUnits возвращает все единицы бронирования вместе с их
// привязками к пространствам и ресурсам
func (r *Repository) ListReservationUnits(ctx context.Context) ([]*domain.ReservationUnit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"unit_id",
		"buffer_time_before_minutes",
		"buffer_time_after_minutes",
		"created_at",
		"updated_at",
	).
		From("reservation_units").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListReservationUnits - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListReservationUnits - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	units := make([]*domain.ReservationUnit, 0)
	byID := make(map[int64]*domain.ReservationUnit)
	for rows.Next() {
		var unit domain.ReservationUnit
		err := rows.Scan(
			&unit.ID,
			&unit.Name,
			&unit.UnitID,
			&unit.BufferTimeBeforeMinutes,
			&unit.BufferTimeAfterMinutes,
			&unit.CreatedAt,
			&unit.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListReservationUnits - scan row: %v", ErrScanRow, err)
		}
		units = append(units, &unit)
		byID[unit.ID] = &unit
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListReservationUnits - rows error: %v", ErrScanRow, err)
	}

	if err := r.attachSpaces(ctx, byID); err != nil {
		return nil, err
	}
	if err := r.attachResources(ctx, byID); err != nil {
		return nil, err
	}

	return units, nil
}

// attachSpaces подгружает привязки единиц к пространствам
func (r *Repository) attachSpaces(ctx context.Context, units map[int64]*domain.ReservationUnit) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("reservation_unit_id", "space_id").
		From("reservation_unit_spaces").
		OrderBy("reservation_unit_id ASC, space_id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachSpaces - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachSpaces - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var unitID, spaceID int64
		if err := rows.Scan(&unitID, &spaceID); err != nil {
			return fmt.Errorf("%w: attachSpaces - scan row: %v", ErrScanRow, err)
		}
		if unit, ok := units[unitID]; ok {
			unit.SpaceIDs = append(unit.SpaceIDs, spaceID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachSpaces - rows error: %v", ErrScanRow, err)
	}
	return nil
}

// attachResources подгружает привязки единиц к ресурсам
func (r *Repository) attachResources(ctx context.Context, units map[int64]*domain.ReservationUnit) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("reservation_unit_id", "resource_id").
		From("reservation_unit_resources").
		OrderBy("reservation_unit_id ASC, resource_id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachResources - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachResources - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var unitID, resourceID int64
		if err := rows.Scan(&unitID, &resourceID); err != nil {
			return fmt.Errorf("%w: attachResources - scan row: %v", ErrScanRow, err)
		}
		if unit, ok := units[unitID]; ok {
			unit.ResourceIDs = append(unit.ResourceIDs, resourceID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachResources - rows error: %v", ErrScanRow, err)
	}
	return nil
}
