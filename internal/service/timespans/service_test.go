package timespans

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/reservation"
)

type fakeHierarchy struct {
	sets  map[int64][]int64
	units map[int64]*domain.ReservationUnit
}

func (f *fakeHierarchy) ConflictSet(unitID int64) ([]int64, error) {
	if set, ok := f.sets[unitID]; ok {
		return set, nil
	}
	return []int64{unitID}, nil
}

func (f *fakeHierarchy) Unit(unitID int64) (*domain.ReservationUnit, bool) {
	unit, ok := f.units[unitID]
	return unit, ok
}

type fakeReservations struct {
	reservations []*domain.Reservation
	lastFilter   reservationRepo.Filter
}

func (f *fakeReservations) GetActiveWithFilter(_ context.Context, filter reservationRepo.Filter) ([]*domain.Reservation, error) {
	f.lastFilter = filter
	out := make([]*domain.Reservation, 0)
	for _, res := range f.reservations {
		if res.Begin.Before(filter.To) && res.End.After(filter.From) {
			out = append(out, res)
		}
	}
	return out, nil
}

type fakeAllocations struct {
	windows []*domain.AllocatedSlotWindow
}

func (f *fakeAllocations) GetWindowsByUnitIDs(_ context.Context, _ []int64, excludeAllocationID *int64) ([]*domain.AllocatedSlotWindow, error) {
	out := make([]*domain.AllocatedSlotWindow, 0)
	for _, w := range f.windows {
		if excludeAllocationID != nil && w.AllocationID == *excludeAllocationID {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func newService(hierarchy *fakeHierarchy, reservations *fakeReservations, allocations *fakeAllocations) *Service {
	if hierarchy == nil {
		hierarchy = &fakeHierarchy{}
	}
	if reservations == nil {
		reservations = &fakeReservations{}
	}
	if allocations == nil {
		allocations = &fakeAllocations{}
	}
	return NewService(hierarchy, reservations, allocations, nopLogger{})
}

func TestAffectingSpans_EmptyRange(t *testing.T) {
	svc := newService(nil, nil, nil)

	from := at(t, "2025-10-06T10:00:00Z")
	spans, err := svc.AffectingSpans(context.Background(), 1, from, from, Options{})
	require.NoError(t, err)
	assert.Empty(t, spans)
}

func TestAffectingSpans_MergesOverlappingReservations(t *testing.T) {
	reservations := &fakeReservations{
		reservations: []*domain.Reservation{
			{ID: 1, ReservationUnitID: 1, Begin: at(t, "2025-10-06T10:00:00Z"), End: at(t, "2025-10-06T12:00:00Z")},
			{ID: 2, ReservationUnitID: 2, Begin: at(t, "2025-10-06T11:00:00Z"), End: at(t, "2025-10-06T13:00:00Z")},
			{ID: 3, ReservationUnitID: 1, Begin: at(t, "2025-10-06T15:00:00Z"), End: at(t, "2025-10-06T16:00:00Z")},
		},
	}
	hierarchy := &fakeHierarchy{sets: map[int64][]int64{1: {1, 2}}}
	svc := newService(hierarchy, reservations, nil)

	spans, err := svc.AffectingSpans(context.Background(), 1,
		at(t, "2025-10-06T00:00:00Z"), at(t, "2025-10-07T00:00:00Z"), Options{})
	require.NoError(t, err)

	require.Len(t, spans, 2)
	assert.Equal(t, at(t, "2025-10-06T10:00:00Z"), spans[0].Start)
	assert.Equal(t, at(t, "2025-10-06T13:00:00Z"), spans[0].End)
	assert.Equal(t, at(t, "2025-10-06T15:00:00Z"), spans[1].Start)
	assert.Equal(t, at(t, "2025-10-06T16:00:00Z"), spans[1].End)
}

func TestAffectingSpans_AppliesUnitBuffers(t *testing.T) {
	reservations := &fakeReservations{
		reservations: []*domain.Reservation{
			{ID: 1, ReservationUnitID: 2, Begin: at(t, "2025-10-06T10:00:00Z"), End: at(t, "2025-10-06T11:00:00Z")},
		},
	}
	hierarchy := &fakeHierarchy{
		sets: map[int64][]int64{1: {1, 2}},
		units: map[int64]*domain.ReservationUnit{
			2: {ID: 2, BufferTimeBeforeMinutes: 30, BufferTimeAfterMinutes: 15},
		},
	}
	svc := newService(hierarchy, reservations, nil)

	spans, err := svc.AffectingSpans(context.Background(), 1,
		at(t, "2025-10-06T00:00:00Z"), at(t, "2025-10-07T00:00:00Z"), Options{})
	require.NoError(t, err)

	require.Len(t, spans, 1)
	assert.Equal(t, at(t, "2025-10-06T09:30:00Z"), spans[0].Start)
	assert.Equal(t, at(t, "2025-10-06T11:15:00Z"), spans[0].End)
}

func TestAffectingSpans_ExpandsAllocatedSlots(t *testing.T) {
	// Понедельники 2025-10-06, 13 и 20; окно слота кончается 2025-10-15
	allocations := &fakeAllocations{
		windows: []*domain.AllocatedSlotWindow{
			{
				AllocationID:      7,
				ReservationUnitID: 1,
				DayOfTheWeek:      domain.Monday,
				BeginTime:         "10:00",
				EndTime:           "12:00",
				WindowBegin:       at(t, "2025-10-01T00:00:00Z"),
				WindowEnd:         at(t, "2025-10-15T00:00:00Z"),
			},
		},
	}
	svc := newService(nil, nil, allocations)

	spans, err := svc.AffectingSpans(context.Background(), 1,
		at(t, "2025-10-01T00:00:00Z"), at(t, "2025-10-31T00:00:00Z"), Options{})
	require.NoError(t, err)

	require.Len(t, spans, 2)
	assert.Equal(t, at(t, "2025-10-06T10:00:00Z"), spans[0].Start)
	assert.Equal(t, at(t, "2025-10-06T12:00:00Z"), spans[0].End)
	assert.Equal(t, at(t, "2025-10-13T10:00:00Z"), spans[1].Start)
	assert.Equal(t, at(t, "2025-10-13T12:00:00Z"), spans[1].End)
}

func TestAffectingSpans_ExcludesOwnAllocation(t *testing.T) {
	allocations := &fakeAllocations{
		windows: []*domain.AllocatedSlotWindow{
			{
				AllocationID:      7,
				ReservationUnitID: 1,
				DayOfTheWeek:      domain.Monday,
				BeginTime:         "10:00",
				EndTime:           "12:00",
				WindowBegin:       at(t, "2025-10-01T00:00:00Z"),
				WindowEnd:         at(t, "2025-10-31T00:00:00Z"),
			},
		},
	}
	svc := newService(nil, nil, allocations)

	exclude := int64(7)
	spans, err := svc.AffectingSpans(context.Background(), 1,
		at(t, "2025-10-01T00:00:00Z"), at(t, "2025-10-31T00:00:00Z"),
		Options{ExcludeAllocationID: &exclude})
	require.NoError(t, err)
	assert.Empty(t, spans)
}

func TestAffectingSpans_ClampsToRange(t *testing.T) {
	reservations := &fakeReservations{
		reservations: []*domain.Reservation{
			{ID: 1, ReservationUnitID: 1, Begin: at(t, "2025-10-05T23:00:00Z"), End: at(t, "2025-10-06T02:00:00Z")},
		},
	}
	svc := newService(nil, reservations, nil)

	spans, err := svc.AffectingSpans(context.Background(), 1,
		at(t, "2025-10-06T00:00:00Z"), at(t, "2025-10-06T01:00:00Z"), Options{})
	require.NoError(t, err)

	require.Len(t, spans, 1)
	assert.Equal(t, at(t, "2025-10-06T00:00:00Z"), spans[0].Start)
	assert.Equal(t, at(t, "2025-10-06T01:00:00Z"), spans[0].End)
}
