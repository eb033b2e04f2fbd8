package hierarchy

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
)

// Service индекс физических конфликтов между единицами бронирования.
//
// Снимок иерархии (пространства, ресурсы, единицы) загружается целиком
// в память и пересобирается только через Refresh. Между обновлениями
// чтение отвечает по последнему снимку без обращений к БД.
type Service struct {
	repo   HierarchyRepository
	logger Logger

	mu   sync.RWMutex
	snap *snapshot
}

type snapshot struct {
	units        map[int64]*domain.ReservationUnit
	conflictSets map[int64][]int64
	refreshedAt  time.Time
}

// NewService создает новый экземпляр индекса иерархии
func NewService(repo HierarchyRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Refresh полностью пересобирает снимок индекса из БД.
// Вызов идемпотентен: повторная сборка на неизменных данных дает тот же результат
func (s *Service) Refresh(ctx context.Context) error {
	started := time.Now()

	spaces, err := s.repo.ListSpaces(ctx)
	if err != nil {
		s.logger.Error("Refresh: failed to load spaces: %v", err)
		return fmt.Errorf("%w: Refresh - load spaces: %v", ErrInternal, err)
	}
	resources, err := s.repo.ListResources(ctx)
	if err != nil {
		s.logger.Error("Refresh: failed to load resources: %v", err)
		return fmt.Errorf("%w: Refresh - load resources: %v", ErrInternal, err)
	}
	units, err := s.repo.ListReservationUnits(ctx)
	if err != nil {
		s.logger.Error("Refresh: failed to load reservation units: %v", err)
		return fmt.Errorf("%w: Refresh - load reservation units: %v", ErrInternal, err)
	}

	snap := buildSnapshot(spaces, resources, units)
	snap.refreshedAt = time.Now()

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.logger.Info("Refresh: hierarchy index rebuilt in %s (spaces=%d, resources=%d, units=%d)",
		time.Since(started), len(spaces), len(resources), len(units))
	return nil
}

// ConflictSet возвращает ID всех единиц, разделяющих физическую емкость
// с указанной единицей, включая её саму. Для единицы без пространств и
// ресурсов (или неизвестной индексу) возвращается одноэлементное множество
func (s *Service) ConflictSet(unitID int64) ([]int64, error) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	if snap == nil {
		return nil, ErrNotRefreshed
	}

	set, ok := snap.conflictSets[unitID]
	if !ok {
		return []int64{unitID}, nil
	}

	out := make([]int64, len(set))
	copy(out, set)
	return out, nil
}

// Unit возвращает единицу бронирования из текущего снимка
func (s *Service) Unit(unitID int64) (*domain.ReservationUnit, bool) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	if snap == nil {
		return nil, false
	}
	unit, ok := snap.units[unitID]
	return unit, ok
}

// RefreshedAt возвращает время последней пересборки снимка
// (нулевое время, если Refresh еще не вызывался)
func (s *Service) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return time.Time{}
	}
	return s.snap.refreshedAt
}

func buildSnapshot(spaces []*domain.Space, resources []*domain.Resource, units []*domain.ReservationUnit) *snapshot {
	parent := make(map[int64]*int64, len(spaces))
	children := make(map[int64][]int64, len(spaces))
	for _, sp := range spaces {
		parent[sp.ID] = sp.ParentID
		if sp.ParentID != nil {
			children[*sp.ParentID] = append(children[*sp.ParentID], sp.ID)
		}
	}

	// Семейство пространства: предки, само пространство и все потомки.
	// Обход итеративный, с защитой от циклов в parent_id
	family := make(map[int64][]int64, len(spaces))
	for _, sp := range spaces {
		seen := map[int64]bool{sp.ID: true}

		p := parent[sp.ID]
		for p != nil && !seen[*p] {
			seen[*p] = true
			p = parent[*p]
		}

		queue := append([]int64(nil), children[sp.ID]...)
		for len(queue) > 0 {
			next := queue[0]
			queue = queue[1:]
			if seen[next] {
				continue
			}
			seen[next] = true
			queue = append(queue, children[next]...)
		}

		ids := make([]int64, 0, len(seen))
		for id := range seen {
			ids = append(ids, id)
		}
		family[sp.ID] = ids
	}

	unitsBySpace := make(map[int64][]int64)
	unitsByResource := make(map[int64][]int64)
	unitsByID := make(map[int64]*domain.ReservationUnit, len(units))
	for _, u := range units {
		unitsByID[u.ID] = u
		for _, spaceID := range u.SpaceIDs {
			unitsBySpace[spaceID] = append(unitsBySpace[spaceID], u.ID)
		}
		for _, resourceID := range u.ResourceIDs {
			unitsByResource[resourceID] = append(unitsByResource[resourceID], u.ID)
		}
	}

	conflictSets := make(map[int64][]int64, len(units))
	for _, u := range units {
		related := map[int64]bool{u.ID: true}

		for _, spaceID := range u.SpaceIDs {
			for _, familyID := range family[spaceID] {
				for _, unitID := range unitsBySpace[familyID] {
					related[unitID] = true
				}
			}
		}
		for _, resourceID := range u.ResourceIDs {
			for _, unitID := range unitsByResource[resourceID] {
				related[unitID] = true
			}
		}

		set := make([]int64, 0, len(related))
		for id := range related {
			set = append(set, id)
		}
		sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
		conflictSets[u.ID] = set
	}

	return &snapshot{
		units:        unitsByID,
		conflictSets: conflictSets,
	}
}
