package run_round_allocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	"github.com/m04kA/SMC-SeasonalService/internal/service/events"
	"github.com/m04kA/SMC-SeasonalService/internal/service/permissions"
	"github.com/m04kA/SMC-SeasonalService/internal/service/timespans"
	"github.com/m04kA/SMC-SeasonalService/pkg/types"
)

type fakeRounds struct {
	round      *domain.ApplicationRound
	handledSet bool
}

func (f *fakeRounds) GetByID(_ context.Context, _ int64) (*domain.ApplicationRound, error) {
	return f.round, nil
}

func (f *fakeRounds) SetHandledDate(_ context.Context, _ int64) error {
	f.handledSet = true
	return nil
}

type fakeSections struct {
	sections []*domain.ApplicationSection
	ranges   map[int64][]*domain.SuitableTimeRange
}

func (f *fakeSections) GetByRoundID(_ context.Context, _ int64) ([]*domain.ApplicationSection, error) {
	return f.sections, nil
}

func (f *fakeSections) GetTimeRanges(_ context.Context, sectionID int64) ([]*domain.SuitableTimeRange, error) {
	return f.ranges[sectionID], nil
}

type fakeOptions struct {
	bySection map[int64][]*domain.ReservationUnitOption
	locked    []int64
}

func (f *fakeOptions) GetBySectionID(_ context.Context, sectionID int64) ([]*domain.ReservationUnitOption, error) {
	return f.bySection[sectionID], nil
}

func (f *fakeOptions) SetLocked(_ context.Context, id int64, locked bool) error {
	f.locked = append(f.locked, id)
	for _, opts := range f.bySection {
		for _, opt := range opts {
			if opt.ID == id {
				opt.Locked = locked
			}
		}
	}
	return nil
}

type fakeAllocations struct {
	sectionByOption map[int64]int64
	created         []*domain.AllocatedTimeSlot
	nextID          int64
}

func (f *fakeAllocations) Create(_ context.Context, slot *domain.AllocatedTimeSlot) (*domain.AllocatedTimeSlot, error) {
	f.nextID++
	slot.ID = f.nextID
	f.created = append(f.created, slot)
	return slot, nil
}

func (f *fakeAllocations) GetBySectionID(_ context.Context, sectionID int64) ([]*domain.AllocatedTimeSlot, error) {
	out := make([]*domain.AllocatedTimeSlot, 0)
	for _, slot := range f.created {
		if f.sectionByOption[slot.ReservationUnitOptionID] == sectionID {
			out = append(out, slot)
		}
	}
	return out, nil
}

type fakeReservations struct {
	created []*domain.Reservation
}

func (f *fakeReservations) CreateBatch(_ context.Context, reservations []*domain.Reservation) error {
	f.created = append(f.created, reservations...)
	return nil
}

type fakeTimespans struct {
	busyByUnit map[int64][]domain.TimeSpan
}

func (f *fakeTimespans) AffectingSpans(_ context.Context, unitID int64, _, _ time.Time, _ timespans.Options) ([]domain.TimeSpan, error) {
	return f.busyByUnit[unitID], nil
}

type fakeHierarchy struct {
	units map[int64]*domain.ReservationUnit
}

func (f *fakeHierarchy) Unit(unitID int64) (*domain.ReservationUnit, bool) {
	unit, ok := f.units[unitID]
	return unit, ok
}

type fakePermissions struct {
	denied bool
}

func (f *fakePermissions) Authorize(_ context.Context, _ domain.Actor, _ permissions.Action, _ permissions.Target) error {
	if f.denied {
		return permissions.ErrAccessDenied
	}
	return nil
}

type fakeEvents struct {
	published []events.RoundHandledEvent
}

func (f *fakeEvents) PublishRoundHandled(_ context.Context, event events.RoundHandledEvent) error {
	f.published = append(f.published, event)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc           *UseCase
	rounds       *fakeRounds
	sections     *fakeSections
	options      *fakeOptions
	allocations  *fakeAllocations
	reservations *fakeReservations
	timespans    *fakeTimespans
	permissions  *fakePermissions
	events       *fakeEvents
}

// Раунд с коротким двухнедельным периодом резервирования
// 1 сен (понедельник) - 14 сен 2025; на 1 июля раунд в фазе аллокации
func newFixture() *fixture {
	round := &domain.ApplicationRound{
		ID:                     1,
		Name:                   "Autumn 2025",
		ApplicationPeriodBegin: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ApplicationPeriodEnd:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ReservationPeriodBegin: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		ReservationPeriodEnd:   time.Date(2025, 9, 14, 0, 0, 0, 0, time.UTC),
		ReservationUnitIDs:     []int64{10, 11},
	}

	f := &fixture{
		rounds:       &fakeRounds{round: round},
		sections:     &fakeSections{ranges: map[int64][]*domain.SuitableTimeRange{}},
		options:      &fakeOptions{bySection: map[int64][]*domain.ReservationUnitOption{}},
		allocations:  &fakeAllocations{sectionByOption: map[int64]int64{}},
		reservations: &fakeReservations{},
		timespans:    &fakeTimespans{busyByUnit: map[int64][]domain.TimeSpan{}},
		permissions:  &fakePermissions{},
		events:       &fakeEvents{},
	}
	f.uc = NewUseCase(
		f.rounds,
		f.sections,
		f.options,
		f.allocations,
		f.reservations,
		f.timespans,
		&fakeHierarchy{units: map[int64]*domain.ReservationUnit{
			10: {ID: 10, UnitID: 200},
			11: {ID: 11, UnitID: 200},
		}},
		f.permissions,
		f.events,
		fakeTxManager{},
		nopLogger{},
	)
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)}
	return f
}

func (f *fixture) addSection(id int64, perWeek int, options []*domain.ReservationUnitOption, ranges []*domain.SuitableTimeRange) {
	f.sections.sections = append(f.sections.sections, &domain.ApplicationSection{
		ID:                            id,
		ApplicationID:                 1,
		Name:                          "Section",
		AppliedReservationsPerWeek:    perWeek,
		ReservationMinDurationMinutes: 60,
		ReservationMaxDurationMinutes: 120,
		ReservationsBeginDate:         f.rounds.round.ReservationPeriodBegin,
		ReservationsEndDate:           f.rounds.round.ReservationPeriodEnd,
	})
	f.options.bySection[id] = options
	f.sections.ranges[id] = ranges
	for _, opt := range options {
		f.allocations.sectionByOption[opt.ID] = id
	}
}

func request() *Request {
	return &Request{
		Actor:   domain.Actor{UserID: 1, Role: domain.RoleAdmin},
		RoundID: 1,
	}
}

func TestExecute_AllocatesAndGeneratesReservations(t *testing.T) {
	f := newFixture()
	f.addSection(5, 2,
		[]*domain.ReservationUnitOption{
			{ID: 50, ApplicationSectionID: 5, ReservationUnitID: 10, PreferredOrder: 0},
		},
		[]*domain.SuitableTimeRange{
			{ID: 1, ApplicationSectionID: 5, DayOfTheWeek: domain.Monday, BeginTime: "10:00", EndTime: "12:00", Priority: domain.PriorityPrimary},
			{ID: 2, ApplicationSectionID: 5, DayOfTheWeek: domain.Wednesday, BeginTime: "10:00", EndTime: "12:00", Priority: domain.PrioritySecondary},
		},
	)

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.AllocatedSlots)
	assert.Equal(t, 0, resp.LockedOptions)
	assert.True(t, f.rounds.handledSet)

	require.Len(t, f.allocations.created, 2)
	assert.Equal(t, domain.Monday, f.allocations.created[0].DayOfTheWeek)
	assert.Equal(t, types.TimeString("10:00"), f.allocations.created[0].BeginTime)
	assert.Equal(t, types.TimeString("11:00"), f.allocations.created[0].EndTime)
	assert.Equal(t, domain.Wednesday, f.allocations.created[1].DayOfTheWeek)

	// Две недели окна: понедельники 1 и 8 сентября, среды 3 и 10 сентября
	assert.Equal(t, 4, resp.GeneratedReservations)
	require.Len(t, f.reservations.created, 4)
	for _, res := range f.reservations.created {
		assert.Equal(t, domain.ReservationTypeSeasonal, res.Type)
		assert.Equal(t, domain.ReservationStateConfirmed, res.State)
		require.NotNil(t, res.AllocatedTimeSlotID)
	}

	require.Len(t, f.events.published, 1)
	assert.Equal(t, int64(1), f.events.published[0].ApplicationRoundID)
}

func TestExecute_SlidesPastBusySpan(t *testing.T) {
	f := newFixture()
	f.addSection(5, 1,
		[]*domain.ReservationUnitOption{
			{ID: 50, ApplicationSectionID: 5, ReservationUnitID: 10, PreferredOrder: 0},
		},
		[]*domain.SuitableTimeRange{
			{ID: 1, ApplicationSectionID: 5, DayOfTheWeek: domain.Monday, BeginTime: "10:00", EndTime: "12:00", Priority: domain.PriorityPrimary},
		},
	)
	// Начало диапазона занято в первый понедельник: кандидат 10:00-11:00
	// пересекается, движок сдвигается на 10:30
	f.timespans.busyByUnit[10] = []domain.TimeSpan{
		{
			Start: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC),
		},
	}

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.AllocatedSlots)
	require.Len(t, f.allocations.created, 1)
	assert.Equal(t, types.TimeString("10:30"), f.allocations.created[0].BeginTime)
	assert.Equal(t, types.TimeString("11:30"), f.allocations.created[0].EndTime)
	assert.Equal(t, 2, resp.GeneratedReservations)
}

func TestExecute_FallsBackToNextOption(t *testing.T) {
	f := newFixture()
	f.addSection(5, 1,
		[]*domain.ReservationUnitOption{
			{ID: 50, ApplicationSectionID: 5, ReservationUnitID: 10, PreferredOrder: 0},
			{ID: 51, ApplicationSectionID: 5, ReservationUnitID: 11, PreferredOrder: 1},
		},
		[]*domain.SuitableTimeRange{
			{ID: 1, ApplicationSectionID: 5, DayOfTheWeek: domain.Monday, BeginTime: "10:00", EndTime: "12:00", Priority: domain.PriorityPrimary},
		},
	)
	// Первая по порядку единица занята по понедельникам целиком
	f.timespans.busyByUnit[10] = []domain.TimeSpan{
		{
			Start: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			Start: time.Date(2025, 9, 8, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 9, 8, 12, 0, 0, 0, time.UTC),
		},
	}

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.AllocatedSlots)
	require.Len(t, f.allocations.created, 1)
	assert.Equal(t, int64(51), f.allocations.created[0].ReservationUnitOptionID)
}

func TestExecute_LocksExhaustedOptions(t *testing.T) {
	f := newFixture()
	f.addSection(5, 1,
		[]*domain.ReservationUnitOption{
			{ID: 50, ApplicationSectionID: 5, ReservationUnitID: 10, PreferredOrder: 0},
		},
		[]*domain.SuitableTimeRange{
			{ID: 1, ApplicationSectionID: 5, DayOfTheWeek: domain.Monday, BeginTime: "10:00", EndTime: "12:00", Priority: domain.PriorityPrimary},
		},
	)
	// Единица занята по понедельникам целиком: квота не добирается
	f.timespans.busyByUnit[10] = []domain.TimeSpan{
		{
			Start: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			Start: time.Date(2025, 9, 8, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 9, 8, 12, 0, 0, 0, time.UTC),
		},
	}

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, 0, resp.AllocatedSlots)
	assert.Equal(t, 1, resp.LockedOptions)
	assert.Equal(t, []int64{50}, f.options.locked)
	assert.Equal(t, 0, resp.GeneratedReservations)
	assert.True(t, f.rounds.handledSet)
}

func TestExecute_RoundNotInAllocation(t *testing.T) {
	f := newFixture()
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}

	_, err := f.uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrRoundNotInAllocation)
	assert.False(t, f.rounds.handledSet)
}

func TestExecute_AccessDenied(t *testing.T) {
	f := newFixture()
	f.permissions.denied = true

	_, err := f.uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrAccessDenied)
}
