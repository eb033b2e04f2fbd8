package refresh_indexes

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeasonalService/internal/service/permissions"
)

// UseCase use case пересборки индекса иерархии
type UseCase struct {
	hierarchy   HierarchyIndex
	permissions PermissionService
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(hierarchy HierarchyIndex, permissionSvc PermissionService, logger Logger) *UseCase {
	return &UseCase{
		hierarchy:   hierarchy,
		permissions: permissionSvc,
		logger:      logger,
	}
}

// Execute пересобирает снимок индекса иерархии из хранилища
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RefreshIndexes: user=%d", req.Actor.UserID)

	if err := uc.permissions.Authorize(ctx, req.Actor, permissions.ActionRefreshIndexes, permissions.Target{}); err != nil {
		if errors.Is(err, permissions.ErrAccessDenied) {
			uc.logger.Warn("RefreshIndexes: access denied for user=%d", req.Actor.UserID)
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("%w: authorization failed: %v", ErrInternal, err)
	}

	if err := uc.hierarchy.Refresh(ctx); err != nil {
		uc.logger.Error("RefreshIndexes: refresh failed: %v", err)
		return nil, fmt.Errorf("%w: refresh failed: %v", ErrInternal, err)
	}

	uc.logger.Info("RefreshIndexes: snapshot rebuilt at %s", uc.hierarchy.RefreshedAt().Format("2006-01-02T15:04:05Z07:00"))
	return &Response{RefreshedAt: uc.hierarchy.RefreshedAt()}, nil
}
