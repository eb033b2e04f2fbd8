package hierarchy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	"github.com/m04kA/SMC-SeasonalService/pkg/ptr"
)

type fakeRepo struct {
	spaces    []*domain.Space
	resources []*domain.Resource
	units     []*domain.ReservationUnit
}

func (f *fakeRepo) ListSpaces(_ context.Context) ([]*domain.Space, error) {
	return f.spaces, nil
}

func (f *fakeRepo) ListResources(_ context.Context) ([]*domain.Resource, error) {
	return f.resources, nil
}

func (f *fakeRepo) ListReservationUnits(_ context.Context) ([]*domain.ReservationUnit, error) {
	return f.units, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRefreshed(t *testing.T, repo *fakeRepo) *Service {
	t.Helper()
	svc := NewService(repo, nopLogger{})
	require.NoError(t, svc.Refresh(context.Background()))
	return svc
}

func TestConflictSet_NotRefreshed(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	_, err := svc.ConflictSet(1)
	assert.ErrorIs(t, err, ErrNotRefreshed)
}

func TestConflictSet_SharedResource(t *testing.T) {
	repo := &fakeRepo{
		resources: []*domain.Resource{
			{ID: 10, Name: "projector"},
			{ID: 11, Name: "piano"},
		},
		units: []*domain.ReservationUnit{
			{ID: 1, ResourceIDs: []int64{10}},
			{ID: 2, ResourceIDs: []int64{10}},
			{ID: 3, ResourceIDs: []int64{11}},
		},
	}
	svc := newRefreshed(t, repo)

	set, err := svc.ConflictSet(1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, set)

	set, err = svc.ConflictSet(3)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, set)
}

func TestConflictSet_SpaceTree(t *testing.T) {
	// S1 корень; S2 и S3 его дети; S4 ребенок S2
	repo := &fakeRepo{
		spaces: []*domain.Space{
			{ID: 1, Name: "building"},
			{ID: 2, Name: "hall", ParentID: ptr.Ptr(int64(1))},
			{ID: 3, Name: "studio", ParentID: ptr.Ptr(int64(1))},
			{ID: 4, Name: "hall corner", ParentID: ptr.Ptr(int64(2))},
		},
		units: []*domain.ReservationUnit{
			{ID: 100, SpaceIDs: []int64{1}},
			{ID: 200, SpaceIDs: []int64{2}},
			{ID: 300, SpaceIDs: []int64{3}},
			{ID: 400, SpaceIDs: []int64{4}},
		},
	}
	svc := newRefreshed(t, repo)

	// Единица на корне конфликтует со всем деревом
	set, err := svc.ConflictSet(100)
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 200, 300, 400}, set)

	// Единица на листе конфликтует с цепочкой предков, но не с соседней веткой
	set, err = svc.ConflictSet(400)
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 200, 400}, set)

	set, err = svc.ConflictSet(300)
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 300}, set)
}

func TestConflictSet_CombinedSpacesAndResources(t *testing.T) {
	repo := &fakeRepo{
		spaces: []*domain.Space{
			{ID: 1, Name: "hall"},
			{ID: 2, Name: "hall corner", ParentID: ptr.Ptr(int64(1))},
		},
		resources: []*domain.Resource{
			{ID: 10, Name: "sound system"},
		},
		units: []*domain.ReservationUnit{
			{ID: 1, SpaceIDs: []int64{2}},
			{ID: 2, SpaceIDs: []int64{1}, ResourceIDs: []int64{10}},
			{ID: 3, ResourceIDs: []int64{10}},
			{ID: 4},
		},
	}
	svc := newRefreshed(t, repo)

	// Через пространство unit 1 связан с unit 2, но не с unit 3
	set, err := svc.ConflictSet(1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, set)

	// Unit 2 связан и через пространство, и через ресурс
	set, err = svc.ConflictSet(2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, set)

	// Единица без пространств и ресурсов конфликтует только с собой
	set, err = svc.ConflictSet(4)
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, set)
}

func TestConflictSet_UnknownUnit(t *testing.T) {
	svc := newRefreshed(t, &fakeRepo{})

	set, err := svc.ConflictSet(999)
	require.NoError(t, err)
	assert.Equal(t, []int64{999}, set)
}

func TestRefresh_Idempotent(t *testing.T) {
	repo := &fakeRepo{
		spaces: []*domain.Space{
			{ID: 1, Name: "hall"},
			{ID: 2, Name: "hall corner", ParentID: ptr.Ptr(int64(1))},
		},
		resources: []*domain.Resource{
			{ID: 10, Name: "sound system"},
		},
		units: []*domain.ReservationUnit{
			{ID: 1, SpaceIDs: []int64{2}},
			{ID: 2, SpaceIDs: []int64{1}, ResourceIDs: []int64{10}},
			{ID: 3, ResourceIDs: []int64{10}},
		},
	}
	svc := newRefreshed(t, repo)

	before := make(map[int64][]int64)
	for _, id := range []int64{1, 2, 3} {
		set, err := svc.ConflictSet(id)
		require.NoError(t, err)
		before[id] = set
	}

	// Повторное обновление без изменений данных дает те же множества
	require.NoError(t, svc.Refresh(context.Background()))
	for _, id := range []int64{1, 2, 3} {
		set, err := svc.ConflictSet(id)
		require.NoError(t, err)
		assert.Equal(t, before[id], set)
	}
}

func TestRefresh_ParentCycleDoesNotHang(t *testing.T) {
	repo := &fakeRepo{
		spaces: []*domain.Space{
			{ID: 1, ParentID: ptr.Ptr(int64(2))},
			{ID: 2, ParentID: ptr.Ptr(int64(1))},
		},
		units: []*domain.ReservationUnit{
			{ID: 1, SpaceIDs: []int64{1}},
			{ID: 2, SpaceIDs: []int64{2}},
		},
	}
	svc := newRefreshed(t, repo)

	set, err := svc.ConflictSet(1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, set)
}
